package mathfont

import (
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2"
)

// Constants holds the MATH constants table. All values are in font units,
// except the two percentage scale-downs and RadicalDegreeBottomRaisePercent.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/math
type Constants struct {
	ScriptPercentScaleDown                   int16
	ScriptScriptPercentScaleDown             int16
	DelimitedSubFormulaMinHeight             uint16
	DisplayOperatorMinHeight                 uint16
	MathLeading                              int16
	AxisHeight                               int16
	AccentBaseHeight                         int16
	FlattenedAccentBaseHeight                int16
	SubscriptShiftDown                       int16
	SubscriptTopMax                          int16
	SubscriptBaselineDropMin                 int16
	SuperscriptShiftUp                       int16
	SuperscriptShiftUpCramped                int16
	SuperscriptBottomMin                     int16
	SuperscriptBaselineDropMax               int16
	SubSuperscriptGapMin                     int16
	SuperscriptBottomMaxWithSubscript        int16
	SpaceAfterScript                         int16
	UpperLimitGapMin                         int16
	UpperLimitBaselineRiseMin                int16
	LowerLimitGapMin                         int16
	LowerLimitBaselineDropMin                int16
	StackTopShiftUp                          int16
	StackTopDisplayStyleShiftUp              int16
	StackBottomShiftDown                     int16
	StackBottomDisplayStyleShiftDown         int16
	StackGapMin                              int16
	StackDisplayStyleGapMin                  int16
	StretchStackTopShiftUp                   int16
	StretchStackBottomShiftDown              int16
	StretchStackGapAboveMin                  int16
	StretchStackGapBelowMin                  int16
	FractionNumeratorShiftUp                 int16
	FractionNumeratorDisplayStyleShiftUp     int16
	FractionDenominatorShiftDown             int16
	FractionDenominatorDisplayStyleShiftDown int16
	FractionNumeratorGapMin                  int16
	FractionNumDisplayStyleGapMin            int16
	FractionRuleThickness                    int16
	FractionDenominatorGapMin                int16
	FractionDenomDisplayStyleGapMin          int16
	SkewedFractionHorizontalGap              int16
	SkewedFractionVerticalGap                int16
	OverbarVerticalGap                       int16
	OverbarRuleThickness                     int16
	OverbarExtraAscender                     int16
	UnderbarVerticalGap                      int16
	UnderbarRuleThickness                    int16
	UnderbarExtraDescender                   int16
	RadicalVerticalGap                       int16
	RadicalDisplayStyleVerticalGap           int16
	RadicalRuleThickness                     int16
	RadicalExtraAscender                     int16
	RadicalKernBeforeDegree                  int16
	RadicalKernAfterDegree                   int16
	RadicalDegreeBottomRaisePercent          int16
}

// GlyphPart is one piece of a glyph assembly.
type GlyphPart struct {
	GlyphID        uint16
	StartConnector uint16
	EndConnector   uint16
	FullAdvance    uint16
	Extender       bool
}

type assembly struct {
	italicCorrection int16
	parts            []GlyphPart
}

type sizeVariant struct {
	glyphID uint16
	advance uint16
}

type construction struct {
	variants []sizeVariant
	assembly *assembly
}

// variantFor returns the smallest precomputed variant at least size font
// units long, or false when the construction has no variant that large.
func (c *construction) variantFor(size float64) (uint16, bool) {
	for _, v := range c.variants {
		if size <= float64(v.advance) {
			return v.glyphID, true
		}
	}
	return 0, false
}

func (c *construction) largest() (uint16, bool) {
	if len(c.variants) == 0 {
		return 0, false
	}
	return c.variants[len(c.variants)-1].glyphID, true
}

// coverage is an OpenType coverage table mapping glyph IDs to indices.
type coverage struct {
	format uint16
	// format 1
	glyphs []uint16
	// format 2
	starts, ends, indices []uint16
}

func (c *coverage) index(glyphID uint16) (int, bool) {
	if c.format == 1 {
		lo, hi := 0, len(c.glyphs)
		for lo < hi {
			mid := (lo + hi) / 2
			if c.glyphs[mid] < glyphID {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo < len(c.glyphs) && c.glyphs[lo] == glyphID {
			return lo, true
		}
		return 0, false
	}
	for i := 0; i < len(c.starts); i++ {
		if c.starts[i] <= glyphID && glyphID <= c.ends[i] {
			return int(c.indices[i]) + int(glyphID-c.starts[i]), true
		}
	}
	return 0, false
}

func parseCoverage(b []byte) (coverage, error) {
	if len(b) < 4 {
		return coverage{}, fmt.Errorf("coverage: bad table")
	}
	r := parse.NewBinaryReaderBytes(b)
	cov := coverage{format: r.ReadUint16()}
	count := r.ReadUint16()
	switch cov.format {
	case 1:
		if uint32(len(b)) < 4+2*uint32(count) {
			return coverage{}, fmt.Errorf("coverage: bad table")
		}
		cov.glyphs = make([]uint16, count)
		for i := range cov.glyphs {
			cov.glyphs[i] = r.ReadUint16()
		}
	case 2:
		if uint32(len(b)) < 4+6*uint32(count) {
			return coverage{}, fmt.Errorf("coverage: bad table")
		}
		cov.starts = make([]uint16, count)
		cov.ends = make([]uint16, count)
		cov.indices = make([]uint16, count)
		for i := 0; i < int(count); i++ {
			cov.starts[i] = r.ReadUint16()
			cov.ends[i] = r.ReadUint16()
			cov.indices[i] = r.ReadUint16()
		}
	default:
		return coverage{}, fmt.Errorf("coverage: unknown format %d", cov.format)
	}
	return cov, nil
}

// mathKern is a per-corner kerning table: a sequence of correction heights
// with one kern value per interval.
type mathKern struct {
	heights []int16
	values  []int16
}

// at returns the kern value for the given correction height in font units.
func (k *mathKern) at(height float64) int16 {
	if len(k.values) == 0 {
		return 0
	}
	i := 0
	for i < len(k.heights) && float64(k.heights[i]) <= height {
		i++
	}
	return k.values[i]
}

type kernInfoRecord struct {
	topRight, topLeft, bottomRight, bottomLeft mathKern
}

type mathValues struct {
	cov    coverage
	values []int16
}

func (t *mathValues) value(glyphID uint16) (int16, bool) {
	i, ok := t.cov.index(glyphID)
	if !ok || len(t.values) <= i {
		return 0, false
	}
	return t.values[i], true
}

type mathTable struct {
	consts              Constants
	minConnectorOverlap uint16

	italics   mathValues
	topAccent mathValues
	extended  coverage

	kernCov coverage
	kerns   []kernInfoRecord

	vertCov  coverage
	vert     []construction
	horzCov  coverage
	horz     []construction
}

// readMathValue reads a MathValueRecord, ignoring the device table offset.
func readMathValue(r *parse.BinaryReader) int16 {
	v := r.ReadInt16()
	r.ReadUint16()
	return v
}

func parseMath(b []byte) (*mathTable, error) {
	if len(b) < 10 {
		return nil, fmt.Errorf("MATH: bad table")
	}
	r := parse.NewBinaryReaderBytes(b)
	major := r.ReadUint16()
	_ = r.ReadUint16() // minor
	if major != 1 {
		return nil, fmt.Errorf("MATH: unsupported version %d", major)
	}
	constsOffset := r.ReadUint16()
	glyphInfoOffset := r.ReadUint16()
	variantsOffset := r.ReadUint16()

	math := &mathTable{}
	if err := math.parseConstants(b, constsOffset); err != nil {
		return nil, err
	}
	if err := math.parseGlyphInfo(b, glyphInfoOffset); err != nil {
		return nil, err
	}
	if err := math.parseVariants(b, variantsOffset); err != nil {
		return nil, err
	}
	return math, nil
}

func (t *mathTable) parseConstants(b []byte, offset uint16) error {
	// 2 int16, 2 uint16, 51 MathValueRecords, 1 int16
	if len(b) < int(offset)+2*4+4*51+2 {
		return fmt.Errorf("MATH: bad constants table")
	}
	r := parse.NewBinaryReaderBytes(b[offset:])
	c := &t.consts
	c.ScriptPercentScaleDown = r.ReadInt16()
	c.ScriptScriptPercentScaleDown = r.ReadInt16()
	c.DelimitedSubFormulaMinHeight = r.ReadUint16()
	c.DisplayOperatorMinHeight = r.ReadUint16()
	for _, v := range []*int16{
		&c.MathLeading, &c.AxisHeight, &c.AccentBaseHeight, &c.FlattenedAccentBaseHeight,
		&c.SubscriptShiftDown, &c.SubscriptTopMax, &c.SubscriptBaselineDropMin,
		&c.SuperscriptShiftUp, &c.SuperscriptShiftUpCramped, &c.SuperscriptBottomMin,
		&c.SuperscriptBaselineDropMax, &c.SubSuperscriptGapMin,
		&c.SuperscriptBottomMaxWithSubscript, &c.SpaceAfterScript,
		&c.UpperLimitGapMin, &c.UpperLimitBaselineRiseMin,
		&c.LowerLimitGapMin, &c.LowerLimitBaselineDropMin,
		&c.StackTopShiftUp, &c.StackTopDisplayStyleShiftUp,
		&c.StackBottomShiftDown, &c.StackBottomDisplayStyleShiftDown,
		&c.StackGapMin, &c.StackDisplayStyleGapMin,
		&c.StretchStackTopShiftUp, &c.StretchStackBottomShiftDown,
		&c.StretchStackGapAboveMin, &c.StretchStackGapBelowMin,
		&c.FractionNumeratorShiftUp, &c.FractionNumeratorDisplayStyleShiftUp,
		&c.FractionDenominatorShiftDown, &c.FractionDenominatorDisplayStyleShiftDown,
		&c.FractionNumeratorGapMin, &c.FractionNumDisplayStyleGapMin,
		&c.FractionRuleThickness, &c.FractionDenominatorGapMin,
		&c.FractionDenomDisplayStyleGapMin, &c.SkewedFractionHorizontalGap,
		&c.SkewedFractionVerticalGap, &c.OverbarVerticalGap,
		&c.OverbarRuleThickness, &c.OverbarExtraAscender,
		&c.UnderbarVerticalGap, &c.UnderbarRuleThickness, &c.UnderbarExtraDescender,
		&c.RadicalVerticalGap, &c.RadicalDisplayStyleVerticalGap,
		&c.RadicalRuleThickness, &c.RadicalExtraAscender,
		&c.RadicalKernBeforeDegree, &c.RadicalKernAfterDegree,
	} {
		*v = readMathValue(r)
	}
	c.RadicalDegreeBottomRaisePercent = r.ReadInt16()
	return nil
}

func (t *mathTable) parseGlyphInfo(b []byte, offset uint16) error {
	if len(b) < int(offset)+8 {
		return fmt.Errorf("MATH: bad glyph info table")
	}
	sub := b[offset:]
	r := parse.NewBinaryReaderBytes(sub)
	italicsOffset := r.ReadUint16()
	topAccentOffset := r.ReadUint16()
	extendedOffset := r.ReadUint16()
	kernOffset := r.ReadUint16()

	var err error
	if italicsOffset != 0 {
		if t.italics, err = parseMathValues(sub, italicsOffset); err != nil {
			return err
		}
	}
	if topAccentOffset != 0 {
		if t.topAccent, err = parseMathValues(sub, topAccentOffset); err != nil {
			return err
		}
	}
	if extendedOffset != 0 {
		if t.extended, err = parseCoverage(sub[extendedOffset:]); err != nil {
			return err
		}
	}
	if kernOffset != 0 {
		if err = t.parseKernInfo(sub[kernOffset:]); err != nil {
			return err
		}
	}
	return nil
}

func parseMathValues(b []byte, offset uint16) (mathValues, error) {
	if len(b) < int(offset)+4 {
		return mathValues{}, fmt.Errorf("MATH: bad value table")
	}
	sub := b[offset:]
	r := parse.NewBinaryReaderBytes(sub)
	covOffset := r.ReadUint16()
	count := r.ReadUint16()
	if uint32(len(sub)) < 4+4*uint32(count) {
		return mathValues{}, fmt.Errorf("MATH: bad value table")
	}
	values := make([]int16, count)
	for i := range values {
		values[i] = readMathValue(r)
	}
	cov, err := parseCoverage(sub[covOffset:])
	if err != nil {
		return mathValues{}, err
	}
	return mathValues{cov: cov, values: values}, nil
}

func (t *mathTable) parseKernInfo(b []byte) error {
	if len(b) < 4 {
		return fmt.Errorf("MATH: bad kern info table")
	}
	r := parse.NewBinaryReaderBytes(b)
	covOffset := r.ReadUint16()
	count := r.ReadUint16()
	if uint32(len(b)) < 4+8*uint32(count) {
		return fmt.Errorf("MATH: bad kern info table")
	}
	t.kerns = make([]kernInfoRecord, count)
	for i := 0; i < int(count); i++ {
		for _, corner := range []*mathKern{
			&t.kerns[i].topRight, &t.kerns[i].topLeft,
			&t.kerns[i].bottomRight, &t.kerns[i].bottomLeft,
		} {
			kernOffset := r.ReadUint16()
			if kernOffset == 0 {
				continue
			}
			k, err := parseMathKern(b[kernOffset:])
			if err != nil {
				return err
			}
			*corner = k
		}
	}
	var err error
	t.kernCov, err = parseCoverage(b[covOffset:])
	return err
}

func parseMathKern(b []byte) (mathKern, error) {
	if len(b) < 2 {
		return mathKern{}, fmt.Errorf("MATH: bad kern table")
	}
	r := parse.NewBinaryReaderBytes(b)
	count := r.ReadUint16()
	if uint32(len(b)) < 2+4*uint32(count)+4*(uint32(count)+1) {
		return mathKern{}, fmt.Errorf("MATH: bad kern table")
	}
	k := mathKern{
		heights: make([]int16, count),
		values:  make([]int16, count+1),
	}
	for i := range k.heights {
		k.heights[i] = readMathValue(r)
	}
	for i := range k.values {
		k.values[i] = readMathValue(r)
	}
	return k, nil
}

func (t *mathTable) parseVariants(b []byte, offset uint16) error {
	if len(b) < int(offset)+10 {
		return fmt.Errorf("MATH: bad variants table")
	}
	sub := b[offset:]
	r := parse.NewBinaryReaderBytes(sub)
	t.minConnectorOverlap = r.ReadUint16()
	vertCovOffset := r.ReadUint16()
	horzCovOffset := r.ReadUint16()
	vertCount := r.ReadUint16()
	horzCount := r.ReadUint16()
	if uint32(len(sub)) < 10+2*(uint32(vertCount)+uint32(horzCount)) {
		return fmt.Errorf("MATH: bad variants table")
	}

	t.vert = make([]construction, vertCount)
	for i := range t.vert {
		conOffset := r.ReadUint16()
		con, err := parseConstruction(sub, conOffset)
		if err != nil {
			return err
		}
		t.vert[i] = con
	}
	t.horz = make([]construction, horzCount)
	for i := range t.horz {
		conOffset := r.ReadUint16()
		con, err := parseConstruction(sub, conOffset)
		if err != nil {
			return err
		}
		t.horz[i] = con
	}

	var err error
	if vertCovOffset != 0 {
		if t.vertCov, err = parseCoverage(sub[vertCovOffset:]); err != nil {
			return err
		}
	}
	if horzCovOffset != 0 {
		if t.horzCov, err = parseCoverage(sub[horzCovOffset:]); err != nil {
			return err
		}
	}
	return nil
}

func parseConstruction(b []byte, offset uint16) (construction, error) {
	if len(b) < int(offset)+4 {
		return construction{}, fmt.Errorf("MATH: bad construction table")
	}
	sub := b[offset:]
	r := parse.NewBinaryReaderBytes(sub)
	assemblyOffset := r.ReadUint16()
	count := r.ReadUint16()
	if uint32(len(sub)) < 4+4*uint32(count) {
		return construction{}, fmt.Errorf("MATH: bad construction table")
	}
	con := construction{variants: make([]sizeVariant, count)}
	for i := range con.variants {
		con.variants[i].glyphID = r.ReadUint16()
		con.variants[i].advance = r.ReadUint16()
	}
	if assemblyOffset != 0 {
		asm, err := parseAssembly(sub[assemblyOffset:])
		if err != nil {
			return construction{}, err
		}
		con.assembly = asm
	}
	return con, nil
}

func parseAssembly(b []byte) (*assembly, error) {
	if len(b) < 6 {
		return nil, fmt.Errorf("MATH: bad assembly table")
	}
	r := parse.NewBinaryReaderBytes(b)
	asm := &assembly{italicCorrection: readMathValue(r)}
	count := r.ReadUint16()
	if uint32(len(b)) < 6+10*uint32(count) {
		return nil, fmt.Errorf("MATH: bad assembly table")
	}
	asm.parts = make([]GlyphPart, count)
	for i := range asm.parts {
		asm.parts[i].GlyphID = r.ReadUint16()
		asm.parts[i].StartConnector = r.ReadUint16()
		asm.parts[i].EndConnector = r.ReadUint16()
		asm.parts[i].FullAdvance = r.ReadUint16()
		asm.parts[i].Extender = r.ReadUint16()&0x0001 != 0
	}
	return asm, nil
}

// assemblyLayout determines the parts and their offsets along the stretch
// axis needed to reach at least target font units. Extender parts are
// replicated; each repetition strictly grows the result. Adjacent parts
// overlap by at least minOverlap, stretched evenly to land on target.
func assemblyLayout(parts []GlyphPart, target, minOverlap float64) ([]GlyphPart, []float64, float64) {
	var chosen []GlyphPart
	size := 0.0
	for n := 1; ; n++ {
		chosen = chosen[:0]
		for _, part := range parts {
			if part.Extender {
				for i := 0; i < n; i++ {
					chosen = append(chosen, part)
				}
			} else {
				chosen = append(chosen, part)
			}
		}
		size = 0.0
		for i, part := range chosen {
			if 0 < i {
				size -= minOverlap
			}
			size += float64(part.FullAdvance)
		}
		if target <= size || 1000 < n {
			break
		}
	}

	// Spread the excess over the connections to land on the target, but a
	// joint never overlaps beyond its connector lengths.
	extra := 0.0
	if 1 < len(chosen) {
		extra = (size - target) / float64(len(chosen)-1)
	}
	offsets := make([]float64, len(chosen))
	pos := 0.0
	for i, part := range chosen {
		if 0 < i {
			overlap := minOverlap + extra
			limit := math.Max(minOverlap,
				math.Min(float64(chosen[i-1].EndConnector), float64(part.StartConnector)))
			if limit < overlap {
				overlap = limit
			}
			pos -= overlap
		}
		offsets[i] = pos
		pos += float64(part.FullAdvance)
	}
	return chosen, offsets, pos
}

// validateAssemblies rejects glyph-assembly recipes that reference the glyph
// they construct, which would recurse while building.
func (t *mathTable) validateAssemblies() error {
	check := func(cov coverage, cons []construction) error {
		for gi, con := range cons {
			if con.assembly == nil {
				continue
			}
			for _, part := range con.assembly.parts {
				if i, ok := cov.index(part.GlyphID); ok && i == gi {
					return fmt.Errorf("MATH: assembly for glyph %d references itself", part.GlyphID)
				}
			}
		}
		return nil
	}
	if err := check(t.vertCov, t.vert); err != nil {
		return err
	}
	return check(t.horzCov, t.horz)
}

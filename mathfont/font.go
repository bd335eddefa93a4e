// Package mathfont loads OpenType fonts with a MATH table and answers the
// queries math layout needs: glyph outlines and metrics, italic correction,
// top-accent attachment, size variants, glyph assemblies, corner kerning,
// and the MATH constants.
package mathfont

import (
	"fmt"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/tdewolff/font"
)

// ErrNoMathTable is returned when a font lacks the MATH typesetting table.
var ErrNoMathTable = fmt.Errorf("font has no MATH table")

// Font is an OpenType font with a MATH table.
type Font struct {
	SFNT *font.SFNT

	math *mathTable
	upem float64

	mu     sync.Mutex
	glyphs map[string]*Glyph
}

// Glyph is a resolved glyph: its outline as SVG path data in font units with
// the y-axis pointing down, and its metrics in font units.
type Glyph struct {
	ID      uint16
	Name    string // symbol id, unique also for assembled glyphs
	Advance float64
	XMin    float64
	YMin    float64
	XMax    float64
	YMax    float64
	Path    string
}

// Parse parses an OpenType font and its MATH table.
func Parse(b []byte) (*Font, error) {
	sfnt, err := font.ParseSFNT(b, 0)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	raw, ok := sfnt.Tables["MATH"]
	if !ok {
		return nil, ErrNoMathTable
	}
	math, err := parseMath(raw)
	if err != nil {
		return nil, err
	}
	if err := math.validateAssemblies(); err != nil {
		return nil, err
	}
	return &Font{
		SFNT:   sfnt,
		math:   math,
		upem:   float64(sfnt.Head.UnitsPerEm),
		glyphs: map[string]*Glyph{},
	}, nil
}

// LoadFile loads a MATH font from a file.
func LoadFile(filename string) (*Font, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

var (
	fontCacheMu sync.Mutex
	fontCache   = map[string]*Font{}
)

// defaultNames are tried in order when no font is configured.
var defaultNames = []string{
	"STIXTwoMath-Regular.otf",
	"STIXTwoMath-Regular.ttf",
	"STIX2Math.otf",
	"latinmodern-math.otf",
}

// Load returns the font at filename, loading it on first use. Fonts are
// cached process-wide; a Font is read-only after construction and safe to
// share between goroutines.
func Load(filename string) (*Font, error) {
	fontCacheMu.Lock()
	defer fontCacheMu.Unlock()
	if f, ok := fontCache[filename]; ok {
		return f, nil
	}
	f, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}
	fontCache[filename] = f
	return f, nil
}

// Default locates a math font on the host, preferring STIX Two Math.
func Default() (*Font, error) {
	fontCacheMu.Lock()
	defer fontCacheMu.Unlock()
	if f, ok := fontCache[""]; ok {
		return f, nil
	}
	for _, name := range defaultNames {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		f, err := LoadFile(path)
		if err != nil {
			continue
		}
		fontCache[""] = f
		return f, nil
	}
	return nil, fmt.Errorf("no math font found, install STIX Two Math or pass a font file")
}

// UnitsPerEm returns the font's design units per em.
func (f *Font) UnitsPerEm() float64 {
	return f.upem
}

// Consts returns the MATH constants in font units.
func (f *Font) Consts() *Constants {
	return &f.math.consts
}

// MinConnectorOverlap returns the minimum connector overlap for assemblies.
func (f *Font) MinConnectorOverlap() float64 {
	return float64(f.math.minConnectorOverlap)
}

// GlyphIndex returns the glyph ID for a rune, or 0 when unmapped.
func (f *Font) GlyphIndex(r rune) uint16 {
	return f.SFNT.GlyphIndex(r)
}

// Glyph resolves a rune to its glyph. Unmapped runes return an error; the
// caller decides how to render a replacement.
func (f *Font) Glyph(r rune) (*Glyph, error) {
	glyphID := f.SFNT.GlyphIndex(r)
	if glyphID == 0 {
		return nil, fmt.Errorf("no glyph for %q", r)
	}
	return f.glyph(glyphID), nil
}

func (f *Font) glyph(glyphID uint16) *Glyph {
	name := fmt.Sprintf("g%d", glyphID)
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.glyphs[name]; ok {
		return g
	}
	p := &pathBuilder{}
	f.SFNT.GlyphPath(p, glyphID, 0, 0.0, 0.0, 1.0, font.NoHinting)
	g := &Glyph{
		ID:      glyphID,
		Name:    name,
		Advance: float64(f.SFNT.GlyphAdvance(glyphID)),
		Path:    p.String(),
	}
	xmin, ymin, xmax, ymax := f.SFNT.GlyphBounds(glyphID)
	g.XMin, g.YMin = float64(xmin), float64(ymin)
	g.XMax, g.YMax = float64(xmax), float64(ymax)
	f.glyphs[name] = g
	return g
}

// ItalicCorrection returns the italic correction for a glyph in font units.
func (f *Font) ItalicCorrection(glyphID uint16) float64 {
	v, _ := f.math.italics.value(glyphID)
	return float64(v)
}

// TopAccent returns the top-accent attachment x position for a glyph.
func (f *Font) TopAccent(glyphID uint16) (float64, bool) {
	v, ok := f.math.topAccent.value(glyphID)
	return float64(v), ok
}

// IsExtended reports whether the glyph is an extended shape, one that
// stretches with its context.
func (f *Font) IsExtended(glyphID uint16) bool {
	_, ok := f.math.extended.index(glyphID)
	return ok
}

// Variant returns the glyph to use when the base glyph must cover size font
// units vertically (or horizontally). It picks the smallest precomputed
// variant that is large enough, builds an assembly when none is, and falls
// back to the largest variant or the base glyph.
func (f *Font) Variant(glyphID uint16, size float64, vert bool) *Glyph {
	cov, cons := f.math.vertCov, f.math.vert
	if !vert {
		cov, cons = f.math.horzCov, f.math.horz
	}
	i, ok := cov.index(glyphID)
	if !ok || len(cons) <= i {
		return f.glyph(glyphID)
	}
	con := &cons[i]
	if variantID, ok := con.variantFor(size); ok {
		return f.glyph(variantID)
	}
	if con.assembly != nil {
		return f.assemble(glyphID, con.assembly, size, vert)
	}
	if largestID, ok := con.largest(); ok {
		return f.glyph(largestID)
	}
	return f.glyph(glyphID)
}

// assemble builds an arbitrarily long glyph from assembly parts. Vertical
// assemblies are centered on the math axis; horizontal ones start at x=0.
func (f *Font) assemble(glyphID uint16, asm *assembly, size float64, vert bool) *Glyph {
	name := fmt.Sprintf("g%d.%d", glyphID, int(size))
	if !vert {
		name += "h"
	}
	f.mu.Lock()
	if g, ok := f.glyphs[name]; ok {
		f.mu.Unlock()
		return g
	}
	f.mu.Unlock()

	parts, offsets, total := assemblyLayout(asm.parts, size, f.MinConnectorOverlap())

	base := 0.0
	if vert {
		base = -total/2.0 + float64(f.math.consts.AxisHeight)
	}
	p := &pathBuilder{}
	g := &Glyph{ID: glyphID, Name: name}
	first := true
	for i, part := range parts {
		pg := f.glyph(part.GlyphID)
		var dx, dy float64
		if vert {
			dy = base + offsets[i]
		} else {
			dx = offsets[i]
		}
		f.SFNT.GlyphPath(p, part.GlyphID, 0, dx, dy, 1.0, font.NoHinting)
		if first {
			g.XMin, g.YMin = pg.XMin+dx, pg.YMin+dy
			g.XMax, g.YMax = pg.XMax+dx, pg.YMax+dy
			first = false
		} else {
			g.XMin = min(g.XMin, pg.XMin+dx)
			g.YMin = min(g.YMin, pg.YMin+dy)
			g.XMax = max(g.XMax, pg.XMax+dx)
			g.YMax = max(g.YMax, pg.YMax+dy)
		}
	}
	g.Path = p.String()
	if vert {
		g.YMax = base + total
		g.Advance = g.XMax
	} else {
		g.XMax = total
		g.Advance = total
	}

	f.mu.Lock()
	f.glyphs[name] = g
	f.mu.Unlock()
	return g
}

// KernSuper returns the (kern, shift-up) pair for placing a superscript
// starting with glyph sup after a base ending in glyph base, in font units.
func (f *Font) KernSuper(base, sup *Glyph) (float64, float64) {
	shiftUp := float64(f.math.consts.SuperscriptShiftUp)
	if f.IsExtended(base.ID) {
		// Extended shapes are tall; raise relative to their top instead.
		shiftUp = base.YMax - float64(f.math.consts.SuperscriptShiftUp)/2.0
	}

	scale := float64(f.math.consts.ScriptPercentScaleDown) / 100.0
	h1 := shiftUp + sup.YMin*scale
	h2 := base.YMax - shiftUp
	k1, k2 := 0.0, 0.0
	if rec, ok := f.kernRecord(base.ID); ok {
		k1 += float64(rec.topRight.at(h1))
		k2 += float64(rec.topRight.at(h2))
	}
	if rec, ok := f.kernRecord(sup.ID); ok {
		k1 += float64(rec.bottomLeft.at(h1))
		k2 += float64(rec.bottomLeft.at(h2))
	}
	return min(k1, k2), shiftUp
}

// KernSub returns the (kern, shift-down) pair for placing a subscript
// starting with glyph sub after a base ending in glyph base, in font units.
func (f *Font) KernSub(base, sub *Glyph) (float64, float64) {
	shiftDown := float64(f.math.consts.SubscriptShiftDown) - base.YMin
	scale := float64(f.math.consts.ScriptPercentScaleDown) / 100.0
	h1 := -shiftDown + sub.YMax*scale
	h2 := base.YMin + shiftDown
	k1, k2 := 0.0, 0.0
	if rec, ok := f.kernRecord(base.ID); ok {
		k1 += float64(rec.bottomRight.at(h1))
		k2 += float64(rec.bottomRight.at(h2))
	}
	if rec, ok := f.kernRecord(sub.ID); ok {
		k1 += float64(rec.topLeft.at(h1))
		k2 += float64(rec.topLeft.at(h2))
	}
	return min(k1, k2), shiftDown
}

// HasKernInfo reports whether the font provides corner kerning tables.
func (f *Font) HasKernInfo() bool {
	return 0 < len(f.math.kerns)
}

func (f *Font) kernRecord(glyphID uint16) (*kernInfoRecord, bool) {
	i, ok := f.math.kernCov.index(glyphID)
	if !ok || len(f.math.kerns) <= i {
		return nil, false
	}
	return &f.math.kerns[i], true
}

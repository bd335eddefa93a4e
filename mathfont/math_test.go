package mathfont

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestCoverageFormat1(t *testing.T) {
	cov := coverage{format: 1, glyphs: []uint16{3, 7, 10, 42}}
	var tts = []struct {
		glyphID uint16
		index   int
		ok      bool
	}{
		{3, 0, true},
		{7, 1, true},
		{42, 3, true},
		{4, 0, false},
		{100, 0, false},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			index, ok := cov.index(tt.glyphID)
			test.T(t, ok, tt.ok)
			if ok {
				test.T(t, index, tt.index)
			}
		})
	}
}

func TestCoverageFormat2(t *testing.T) {
	cov := coverage{
		format:  2,
		starts:  []uint16{10, 30},
		ends:    []uint16{14, 32},
		indices: []uint16{0, 5},
	}
	var tts = []struct {
		glyphID uint16
		index   int
		ok      bool
	}{
		{10, 0, true},
		{14, 4, true},
		{30, 5, true},
		{32, 7, true},
		{15, 0, false},
		{9, 0, false},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			index, ok := cov.index(tt.glyphID)
			test.T(t, ok, tt.ok)
			if ok {
				test.T(t, index, tt.index)
			}
		})
	}
}

func TestMathKernAt(t *testing.T) {
	kern := mathKern{
		heights: []int16{100, 300},
		values:  []int16{-10, -20, -30},
	}
	var tts = []struct {
		height float64
		kern   int16
	}{
		{0.0, -10},
		{99.0, -10},
		{100.0, -20},
		{299.0, -20},
		{300.0, -30},
		{1000.0, -30},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, kern.at(tt.height), tt.kern)
		})
	}

	empty := mathKern{}
	test.T(t, empty.at(100.0), int16(0))
}

func TestVariantFor(t *testing.T) {
	con := construction{variants: []sizeVariant{
		{glyphID: 1, advance: 700},
		{glyphID: 2, advance: 1000},
		{glyphID: 3, advance: 1500},
	}}
	var tts = []struct {
		size    float64
		glyphID uint16
		ok      bool
	}{
		{500.0, 1, true},
		{700.0, 1, true},
		{701.0, 2, true},
		{1500.0, 3, true},
		{1501.0, 0, false},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			glyphID, ok := con.variantFor(tt.size)
			test.T(t, ok, tt.ok)
			if ok {
				test.T(t, glyphID, tt.glyphID)
			}
		})
	}

	largest, ok := con.largest()
	test.T(t, ok, true)
	test.T(t, largest, uint16(3))
}

var braceParts = []GlyphPart{
	{GlyphID: 10, FullAdvance: 500, StartConnector: 100, EndConnector: 100},                 // bottom
	{GlyphID: 11, FullAdvance: 400, StartConnector: 100, EndConnector: 100, Extender: true}, // extender
	{GlyphID: 12, FullAdvance: 300, StartConnector: 100, EndConnector: 100},                 // middle
	{GlyphID: 11, FullAdvance: 400, StartConnector: 100, EndConnector: 100, Extender: true}, // extender
	{GlyphID: 13, FullAdvance: 500, StartConnector: 100, EndConnector: 0},                   // top
}

func TestAssemblyLayoutReachesTarget(t *testing.T) {
	var tts = []float64{100.0, 1000.0, 2000.0, 5000.0, 10000.0}
	for i, target := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			parts, offsets, size := assemblyLayout(braceParts, target, 50.0)
			test.That(t, target <= size+1e-9, "size covers target")
			test.T(t, len(parts), len(offsets))
			// offsets grow monotonically along the axis
			for j := 1; j < len(offsets); j++ {
				test.That(t, offsets[j-1] < offsets[j], "offsets ascend")
			}
		})
	}
}

func TestAssemblyLayoutMonotonic(t *testing.T) {
	prev := 0.0
	for target := 500.0; target < 8000.0; target += 250.0 {
		_, _, size := assemblyLayout(braceParts, target, 50.0)
		test.That(t, prev <= size+1e-9, "built size grows with target")
		prev = size
	}
}

func TestAssemblyLayoutOverlap(t *testing.T) {
	minOverlap := 50.0
	parts, offsets, _ := assemblyLayout(braceParts, 3000.0, minOverlap)
	for j := 1; j < len(offsets); j++ {
		overlap := offsets[j-1] + float64(parts[j-1].FullAdvance) - offsets[j]
		test.That(t, minOverlap <= overlap+1e-9, "connectors overlap at least the minimum")
	}
}

func TestValidateAssemblies(t *testing.T) {
	table := &mathTable{
		vertCov: coverage{format: 1, glyphs: []uint16{20}},
		vert: []construction{{
			assembly: &assembly{parts: []GlyphPart{{GlyphID: 21}, {GlyphID: 22, Extender: true}}},
		}},
	}
	test.Error(t, table.validateAssemblies())

	table.vert[0].assembly.parts[0].GlyphID = 20 // references itself
	test.That(t, table.validateAssemblies() != nil, "self-referential assembly rejected")
}

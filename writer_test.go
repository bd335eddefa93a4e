package mathsvg

import (
	"strings"
	"testing"

	"github.com/tdewolff/test"

	"github.com/mathsvg/mathsvg/mathfont"
)

func TestNumberFormatting(t *testing.T) {
	test.String(t, num{3.14159265, 4}.String(), "3.142")
	test.String(t, num{100.0, 6}.String(), "100")
	test.String(t, dec{1.50000, 6}.String(), "1.5")
	test.String(t, dec{-0.25, 6}.String(), "-.25")
	test.String(t, dec{0.0, 6}.String(), "0")
}

func TestWriterSVG2(t *testing.T) {
	cfg := snapshot()
	cfg.svg2 = true
	cfg.precision = 6
	w := newWriter(&cfg)
	g := &mathfont.Glyph{Name: "g7", Path: "M 0 0 L 10 0z"}
	w.glyph(g, 1.0, 2.0, 0.01, "")
	w.glyph(g, 5.0, 2.0, 0.01, "red")

	sb := &strings.Builder{}
	test.Error(t, w.writeTo(sb, 0.0, -10.0, 20.0, 12.0))
	svg := sb.String()
	test.That(t, strings.Contains(svg, `<symbol id="g7"`), "one symbol per distinct glyph")
	test.T(t, strings.Count(svg, "<symbol"), 1)
	test.T(t, strings.Count(svg, "<use"), 2)
	test.That(t, strings.Contains(svg, `fill="red"`), "color applied")
	test.That(t, strings.Contains(svg, `viewBox="0 -10 20 12"`), "viewbox written")
	test.That(t, strings.HasPrefix(svg, `<svg width="20" height="12"`), "dimensions written")
}

func TestWriterSVG11(t *testing.T) {
	cfg := snapshot()
	cfg.svg2 = false
	w := newWriter(&cfg)
	g := &mathfont.Glyph{Name: "g7", Path: "M 0 0 L 10 0z"}
	w.glyph(g, 1.0, 2.0, 0.01, "")
	w.glyph(g, 5.0, 2.0, 0.01, "")

	sb := &strings.Builder{}
	test.Error(t, w.writeTo(sb, 0.0, -10.0, 20.0, 12.0))
	svg := sb.String()
	test.That(t, !strings.Contains(svg, "<symbol"), "no symbols in SVG 1.1 mode")
	test.T(t, strings.Count(svg, "<path"), 2)
	test.That(t, strings.Contains(svg, "xmlns:xlink"), "xlink namespace declared")
}

func TestWriterPrecision(t *testing.T) {
	cfg := snapshot()
	cfg.precision = 2
	w := newWriter(&cfg)
	test.String(t, w.dec(1.23456).String(), "1.23")
}

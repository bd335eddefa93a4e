package mathsvg

import (
	"strings"
	"testing"

	"github.com/tdewolff/test"

	"github.com/mathsvg/mathsvg/mathfont"
)

// Layout tests need a MATH-enabled font on the host.
func needFont(t *testing.T) *mathfont.Font {
	t.Helper()
	fnt, err := mathfont.Default()
	if err != nil {
		t.Skip("no math font installed:", err)
	}
	return fnt
}

// findNodes collects typeset nodes with the given tag, depth first.
func findNodes(d Drawable, tag string) []*node {
	out := []*node{}
	if n, ok := d.(*node); ok {
		if n.tag == tag {
			out = append(out, n)
		}
		for _, c := range n.children {
			out = append(out, findNodes(c, tag)...)
		}
	}
	return out
}

// checkBoxInvariant asserts that every box contains its placed children.
func checkBoxInvariant(t *testing.T, d Drawable) {
	t.Helper()
	n, ok := d.(*node)
	if !ok {
		return
	}
	for i, c := range n.children {
		cb := c.BBox()
		up := -n.childpos[i].y
		test.That(t, up+cb.YMax <= n.bbox.YMax+0.01, "child ascent contained")
		test.That(t, -cb.YMin-up <= -n.bbox.YMin+0.01, "child descent contained")
		checkBoxInvariant(t, c)
	}
}

func TestSuperscriptPlacement(t *testing.T) {
	needFont(t)
	m, err := Parse(`<math><msup><mi>x</mi><mn>2</mn></msup></math>`)
	test.Error(t, err)

	sups := findNodes(m.node, "msup")
	test.T(t, len(sups), 1)
	sup := sups[0]
	test.T(t, len(sup.children), 2)

	base, script := sup.children[0], sup.children[1]
	scriptPos := sup.childpos[1]
	test.That(t, scriptPos.y < 0.0, "superscript raised above the baseline")
	test.That(t, base.BBox().XMax*0.5 < scriptPos.x, "superscript right of the base")

	// the script shrinks by the script scale
	baseNode, scriptNode := base.(*node), script.(*node)
	test.That(t, scriptNode.glyphsize < baseNode.glyphsize, "script is smaller")

	// raised by at least half the superscript shift at script scale
	consts := sup.consts()
	minShift := float64(consts.SuperscriptShiftUp) * scriptNode.emscale / 2.0
	test.That(t, minShift <= -scriptPos.y, "raised by a meaningful shift")

	checkBoxInvariant(t, m.node)
}

func TestScriptSizeClamp(t *testing.T) {
	needFont(t)
	mml := `<math><msup><mi>a</mi><msup><mi>b</mi><msup><mi>c</mi><msup><mi>d</mi><msup><mi>e</mi><mn>2</mn></msup></msup></msup></msup></msup></math>`
	m, err := Parse(mml, Size(24.0))
	test.Error(t, err)

	sups := findNodes(m.node, "msup")
	test.T(t, len(sups), 5)
	for _, s := range sups {
		for _, c := range s.children {
			if cn, ok := c.(*node); ok {
				test.That(t, 24.0*MinSizeFraction <= cn.glyphsize+1e-9, "size clamped at the minimum fraction")
			}
		}
	}
	checkBoxInvariant(t, m.node)
}

func TestFractionLayout(t *testing.T) {
	needFont(t)
	m, err := Parse(`<math><mfrac><mn>1</mn><mn>2</mn></mfrac></math>`)
	test.Error(t, err)

	fracs := findNodes(m.node, "mfrac")
	test.T(t, len(fracs), 1)
	frac := fracs[0]
	test.T(t, len(frac.children), 3)

	num, den := frac.children[0], frac.children[1]
	bar, ok := frac.children[2].(*hline)
	test.That(t, ok, "third child is the fraction rule")

	expected := float64(frac.consts().FractionRuleThickness) * frac.emscale
	test.Float(t, bar.lw, expected)

	// numerator above, denominator below, bar wide enough for both
	test.That(t, frac.childpos[0].y < 0.0, "numerator raised")
	test.That(t, 0.0 < frac.childpos[1].y, "denominator lowered")
	test.That(t, num.BBox().XMax <= bar.length+0.01, "rule spans the numerator")
	test.That(t, den.BBox().XMax <= bar.length+0.01, "rule spans the denominator")

	checkBoxInvariant(t, m.node)
}

func TestRadicalLayout(t *testing.T) {
	needFont(t)
	m, err := Parse(`<math><mroot><mrow><mi>x</mi><mo>+</mo><mn>1</mn></mrow><mn>3</mn></mroot></math>`)
	test.Error(t, err)

	roots := findNodes(m.node, "mroot")
	test.T(t, len(roots), 1)
	root := roots[0]

	// children: degree, radical glyph, radicand, overbar
	test.T(t, len(root.children), 4)
	degree := root.children[0]
	radicand := root.children[2]
	bar, ok := root.children[3].(*hline)
	test.That(t, ok, "last child is the overbar")

	consts := root.consts()
	gap := float64(consts.RadicalDisplayStyleVerticalGap) * root.emscale
	thickness := float64(consts.RadicalRuleThickness) * root.emscale
	test.Float(t, bar.lw, thickness)

	rb := radicand.BBox()
	test.That(t, rb.YMax+gap <= root.bbox.YMax+0.01, "rule clears the radicand")
	test.That(t, rb.XMax-rb.XMin <= bar.length+0.01, "overbar spans the radicand")
	test.That(t, root.childpos[0].y < 0.0, "degree raised along the radical")
	test.That(t, degree.(*node).scriptlevel == 2, "degree is two script levels down")
}

func TestFenceStretch(t *testing.T) {
	needFont(t)
	mml := `<math><mrow><mo>(</mo><mfrac><mi>x</mi><mi>y</mi></mfrac><mo>)</mo></mrow></math>`
	m, err := Parse(mml)
	test.Error(t, err)

	fracs := findNodes(m.node, "mfrac")
	test.T(t, len(fracs), 1)
	fracHeight := fracs[0].bbox.YMax - fracs[0].bbox.YMin

	// the open paren stretches whether it became an mfenced or stayed an mo
	fenceHeight := 0.0
	if fences := findNodes(m.node, "mfenced"); 0 < len(fences) {
		open, ok := fences[0].children[0].(*glyphBox)
		test.That(t, ok, "first fence child is the open glyph")
		fenceHeight = open.bbox.YMax - open.bbox.YMin
	} else {
		for _, mo := range findNodes(m.node, "mo") {
			if mo.elem.text() == "(" {
				fenceHeight = mo.bbox.YMax - mo.bbox.YMin
			}
		}
	}
	test.That(t, fracHeight <= fenceHeight+1.0, "fence covers the fraction")
}

func TestNoneEqualsEmptyMrow(t *testing.T) {
	needFont(t)
	a, err := Parse(`<math><none/></math>`)
	test.Error(t, err)
	b, err := Parse(`<math><mrow></mrow></math>`)
	test.Error(t, err)

	ab, bb := a.node.BBox(), b.node.BBox()
	test.Float(t, ab.XMax-ab.XMin, bb.XMax-bb.XMin)
	test.Float(t, ab.YMax-ab.YMin, bb.YMax-bb.YMin)
}

func TestRenderIdempotent(t *testing.T) {
	needFont(t)
	mml := `<math><mrow><mi>x</mi><mo>+</mo><mfrac><mn>1</mn><mn>2</mn></mfrac></mrow></math>`
	first, err := MathML2SVG(mml)
	test.Error(t, err)
	second, err := MathML2SVG(mml)
	test.Error(t, err)
	test.String(t, second, first)
}

func TestDecimalComma(t *testing.T) {
	needFont(t)
	mml := `<math><mrow><mn>1</mn><mo>,</mo><mn>2</mn></mrow></math>`

	m, err := Parse(mml)
	test.Error(t, err)
	wide := m.node.BBox().XMax

	DecimalSeparator = ","
	defer func() { DecimalSeparator = "." }()
	m, err = Parse(mml)
	test.Error(t, err)
	narrow := m.node.BBox().XMax

	test.That(t, narrow < wide, "decimal comma suppresses the separator space")
}

func TestAutonumber(t *testing.T) {
	needFont(t)
	Numbering.Autonumber = true
	defer func() { Numbering.Autonumber = false }()
	ResetNumbering(1)

	a, err := Parse(`<math><mi>x</mi></math>`)
	test.Error(t, err)
	b, err := Parse(`<math><mi>y</mi></math>`)
	test.Error(t, err)
	test.String(t, a.number, "(1)")
	test.String(t, b.number, "(2)")

	svg, err := a.SVG()
	test.Error(t, err)
	columnWidth, err := parseLength(Numbering.ColumnWidth, a.size)
	test.Error(t, err)
	w := newWriter(&a.ctx.cfg)
	test.That(t, strings.Contains(svg, `width="`+w.dec(columnWidth+2.0).String()+`"`),
		"numbered equation spans the column")
}

func TestMissingGlyph(t *testing.T) {
	needFont(t)
	m, err := Parse(`<math><mi>🦄</mi></math>`)
	test.Error(t, err)
	test.That(t, 0 < len(m.Warnings()), "missing glyph warns")
	bb := m.node.BBox()
	test.That(t, 0.0 < bb.XMax, "replacement box takes space")
}

func TestUnknownElement(t *testing.T) {
	needFont(t)
	m, err := Parse(`<math><mfancy><mi>x</mi></mfancy></math>`)
	test.Error(t, err)
	test.That(t, 0 < len(m.Warnings()), "unknown element warns")
	test.That(t, 0.0 < m.node.BBox().XMax, "content still renders")
}

func TestStretchyRowOperator(t *testing.T) {
	needFont(t)
	// a middle divider stretches to the row height
	mml := `<math><mrow><mfrac><mn>1</mn><mn>2</mn></mfrac><mo stretchy="true">|</mo><mi>x</mi></mrow></math>`
	m, err := Parse(mml)
	test.Error(t, err)

	var divider *node
	for _, c := range findNodes(m.node, "mo") {
		if c.elem.text() == "|" {
			divider = c
		}
	}
	test.That(t, divider != nil, "divider found")
	fracs := findNodes(m.node, "mfrac")
	test.T(t, len(fracs), 1)
	fracHeight := fracs[0].bbox.YMax - fracs[0].bbox.YMin
	dividerHeight := divider.bbox.YMax - divider.bbox.YMin
	test.That(t, fracHeight <= dividerHeight+1.0, "divider covers the fraction")
}

func TestDrawOn(t *testing.T) {
	needFont(t)
	m, err := Parse(`<math><mi>x</mi></math>`)
	test.Error(t, err)
	sb := &strings.Builder{}
	test.Error(t, m.DrawOn(sb, 10.0, 20.0, "left", "baseline"))
	frag := sb.String()
	test.That(t, strings.HasPrefix(frag, `<g transform="translate(10 20)"`), "group translated")
	test.That(t, strings.Contains(frag, "<path"), "glyphs inlined")
	test.That(t, !strings.Contains(frag, "<use"), "fragments do not reference symbols")
}

func TestDisplayVsInline(t *testing.T) {
	needFont(t)
	mml := `<math><mrow><munder><mo>∑</mo><mi>i</mi></munder></mrow></math>`
	display, err := Parse(mml)
	test.Error(t, err)
	inline, err := Parse(mml, Inline())
	test.Error(t, err)

	// display style grows the operator and hangs the limit below
	dh := display.node.BBox().YMax - display.node.BBox().YMin
	ih := inline.node.BBox().YMax - inline.node.BBox().YMin
	test.That(t, ih < dh+0.01, "display style at least as tall")
}

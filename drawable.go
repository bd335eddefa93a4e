package mathsvg

import (
	"math"

	"github.com/mathsvg/mathsvg/mathfont"
)

// glyphBox is a single placed glyph.
type glyphBox struct {
	glyph   *mathfont.Glyph
	r       rune
	size    float64
	emscale float64
	style   Style
	phantom bool
	bbox    BBox
}

func newGlyphBox(g *mathfont.Glyph, r rune, n *node, fl flags) *glyphBox {
	return &glyphBox{
		glyph:   g,
		r:       r,
		size:    n.glyphsize,
		emscale: n.emscale,
		style:   n.style,
		phantom: fl.phantom,
		bbox: BBox{
			XMin: g.XMin * n.emscale,
			XMax: g.XMax * n.emscale,
			YMin: g.YMin * n.emscale,
			YMax: g.YMax * n.emscale,
		},
	}
}

func (g *glyphBox) BBox() BBox { return g.bbox }

func (g *glyphBox) XAdvance() float64 {
	return g.glyph.Advance * g.emscale
}

func (g *glyphBox) FirstGlyph() *mathfont.Glyph { return g.glyph }
func (g *glyphBox) LastGlyph() *mathfont.Glyph  { return g.glyph }
func (g *glyphBox) LastRune() rune              { return g.r }

func (g *glyphBox) Draw(x, y float64, w *writer) {
	if g.phantom {
		return
	}
	w.glyph(g.glyph, x, y, g.emscale, g.style.MathColor)
}

// replacementBox stands in for a missing glyph: a visible empty box of the
// current em square.
type replacementBox struct {
	size    float64
	style   Style
	phantom bool
}

func (b *replacementBox) BBox() BBox {
	return BBox{XMin: 0.0, XMax: b.size, YMin: 0.0, YMax: b.size}
}

func (b *replacementBox) XAdvance() float64             { return b.size }
func (b *replacementBox) FirstGlyph() *mathfont.Glyph   { return nil }
func (b *replacementBox) LastGlyph() *mathfont.Glyph    { return nil }
func (b *replacementBox) LastRune() rune                { return 0 }

func (b *replacementBox) Draw(x, y float64, w *writer) {
	if b.phantom {
		return
	}
	side := b.size
	w.box(x, y-side, side, side, b.size*0.05, 0.0, orCurrent(b.style.MathColor), "")
}

// hline is a horizontal rule drawn as a filled rectangle.
type hline struct {
	length  float64
	lw      float64
	style   Style
	phantom bool
}

func (l *hline) BBox() BBox {
	return BBox{XMin: 0.0, XMax: l.length, YMin: -l.lw, YMax: 0.0}
}

func (l *hline) XAdvance() float64           { return l.length }
func (l *hline) FirstGlyph() *mathfont.Glyph { return nil }
func (l *hline) LastGlyph() *mathfont.Glyph  { return nil }
func (l *hline) LastRune() rune              { return 0 }

func (l *hline) Draw(x, y float64, w *writer) {
	if l.phantom {
		return
	}
	w.rect(x, y, l.length, l.lw, l.style.MathColor, "hline")
}

// vline is a vertical rule drawn as a filled rectangle.
type vline struct {
	height  float64
	lw      float64
	style   Style
	phantom bool
}

func (l *vline) BBox() BBox {
	return BBox{XMin: -l.lw / 2.0, XMax: l.lw / 2.0, YMin: -l.height, YMax: 0.0}
}

func (l *vline) XAdvance() float64           { return l.lw }
func (l *vline) FirstGlyph() *mathfont.Glyph { return nil }
func (l *vline) LastGlyph() *mathfont.Glyph  { return nil }
func (l *vline) LastRune() rune              { return 0 }

func (l *vline) Draw(x, y float64, w *writer) {
	if l.phantom {
		return
	}
	w.rect(x-l.lw/2.0, y, l.lw, l.height, l.style.MathColor, "vline")
}

// boxPrim is a stroked box outline used by menclose.
type boxPrim struct {
	width, height float64
	lw            float64
	radius        float64
	style         Style
	phantom       bool
}

func (b *boxPrim) BBox() BBox {
	return BBox{XMin: 0.0, XMax: b.width, YMin: 0.0, YMax: b.height}
}

func (b *boxPrim) XAdvance() float64           { return b.width }
func (b *boxPrim) FirstGlyph() *mathfont.Glyph { return nil }
func (b *boxPrim) LastGlyph() *mathfont.Glyph  { return nil }
func (b *boxPrim) LastRune() rune              { return 0 }

func (b *boxPrim) Draw(x, y float64, w *writer) {
	if b.phantom {
		return
	}
	w.box(x, y-b.height, b.width, b.height, b.lw, b.radius, b.style.MathColor, b.style.MathBackground)
}

// ellipsePrim is a stroked ellipse used by menclose circle notation.
type ellipsePrim struct {
	width, height float64
	lw            float64
	style         Style
	phantom       bool
}

func (e *ellipsePrim) BBox() BBox {
	return BBox{XMin: 0.0, XMax: e.width, YMin: 0.0, YMax: e.height}
}

func (e *ellipsePrim) XAdvance() float64           { return e.width }
func (e *ellipsePrim) FirstGlyph() *mathfont.Glyph { return nil }
func (e *ellipsePrim) LastGlyph() *mathfont.Glyph  { return nil }
func (e *ellipsePrim) LastRune() rune              { return 0 }

func (e *ellipsePrim) Draw(x, y float64, w *writer) {
	if e.phantom {
		return
	}
	w.ellipse(x+e.width/2.0, y-e.height/2.0, e.width/2.0, e.height/2.0, e.lw, e.style.MathColor, e.style.MathBackground)
}

// diagonal is a strike or arrow from one box corner to another. A positive
// height runs downward, a negative one upward.
type diagonal struct {
	width, height float64
	lw            float64
	arrow         bool
	style         Style
	phantom       bool

	arrowW, arrowH float64
}

func newDiagonal(width, height, lw float64, arrow bool, style Style, fl flags) *diagonal {
	d := &diagonal{width: width, height: height, lw: lw, arrow: arrow, style: style, phantom: fl.phantom}
	if arrow {
		theta := math.Atan2(-height, width)
		d.arrowW = (10.0 + lw*2.0) * math.Cos(theta)
		d.arrowH = (10.0 + lw*2.0) * math.Sin(theta)
	}
	return d
}

func (d *diagonal) BBox() BBox {
	return BBox{XMin: 0.0, XMax: d.width, YMin: 0.0, YMax: d.height}
}

func (d *diagonal) XAdvance() float64           { return d.width }
func (d *diagonal) FirstGlyph() *mathfont.Glyph { return nil }
func (d *diagonal) LastGlyph() *mathfont.Glyph  { return nil }
func (d *diagonal) LastRune() rune              { return 0 }

func (d *diagonal) Draw(x, y float64, w *writer) {
	if d.phantom {
		return
	}
	w.line(x, y-d.height, x+d.width, y, d.lw, d.style.MathColor, d.arrow)
}

// Package mathsvg renders MathML and LaTeX math expressions into standalone
// SVG images. Glyph outlines come from an OpenType font carrying the MATH
// typesetting table, so recipients need neither the font nor a TeX engine.
package mathsvg

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mathsvg/mathsvg/mathfont"
)

// ErrFont reports a missing or unusable math font.
var ErrFont = fmt.Errorf("font error")

// Math is a typeset math expression ready to serialize.
type Math struct {
	root *Element
	ctx  *context
	node Drawable
	size float64

	number string // equation label, empty for none
}

// Option configures parsing and rendering.
type Option func(*options)

type options struct {
	size   float64
	font   string
	inline bool
	number string
}

// Size sets the base font size in pixels.
func Size(size float64) Option {
	return func(o *options) { o.size = size }
}

// WithFont selects a math font file, overriding the configured default.
func WithFont(filename string) Option {
	return func(o *options) { o.font = filename }
}

// Inline typesets in inline (text) style rather than display style.
func Inline() Option {
	return func(o *options) { o.inline = true }
}

// WithNumber attaches an equation label placed at the column edge.
func WithNumber(label string) Option {
	return func(o *options) { o.number = label }
}

// Parse parses a MathML document and typesets it.
func Parse(mathml string, opts ...Option) (*Math, error) {
	root, err := ParseMathMLString(mathml)
	if err != nil {
		return nil, err
	}
	return ParseElement(root, opts...)
}

// ParseElement typesets an already parsed MathML tree.
func ParseElement(root *Element, opts ...Option) (*Math, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	cfg := snapshot()

	fontfile := o.font
	if fontfile == "" {
		fontfile = cfg.math.MathFont
	}
	var fnt *mathfont.Font
	var err error
	if fontfile != "" {
		fnt, err = mathfont.Load(fontfile)
	} else {
		fnt, err = mathfont.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFont, err)
	}

	size := o.size
	if size == 0.0 {
		size = cfg.math.FontSize
	}
	if o.inline {
		root.Attrib["display"] = "inline"
	}

	ctx := &context{font: fnt, cfg: cfg, base: size}
	parent := &node{tag: "#root", elem: root, ctx: ctx, size: size}
	parent.style = rootStyle(root, &cfg)
	parent.glyphsize = size
	parent.emscale = size / fnt.UnitsPerEm()

	m := &Math{
		root:   root,
		ctx:    ctx,
		node:   makeNode(root, parent, 0, flags{}),
		size:   size,
		number: o.number,
	}
	if m.number == "" && cfg.numbering.Autonumber {
		m.number = cfg.numbering.label(nextEquationNumber())
	}
	return m, nil
}

// MathML2SVG renders a MathML string directly to SVG.
func MathML2SVG(mathml string, opts ...Option) (string, error) {
	m, err := Parse(mathml, opts...)
	if err != nil {
		return "", err
	}
	return m.SVG()
}

// Size returns the rendered width and height.
func (m *Math) Size() (float64, float64) {
	bb := m.node.BBox()
	return bb.XMax - bb.XMin, bb.YMax - bb.YMin
}

// Baseline returns the distance from the image top to the baseline.
func (m *Math) Baseline() float64 {
	return m.node.BBox().YMax + 1.0
}

// Warnings returns the non-fatal problems met while typesetting.
func (m *Math) Warnings() []string {
	return m.ctx.warnings
}

// SVG returns the expression as a standalone SVG document.
func (m *Math) SVG() (string, error) {
	sb := &strings.Builder{}
	if err := m.WriteSVG(sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteSVG writes the expression as a standalone SVG document. A numbered
// equation is centered in the configured column with its tag right-aligned
// at the column edge.
func (m *Math) WriteSVG(out io.Writer) error {
	w := newWriter(&m.ctx.cfg)
	bb := m.node.BBox()

	if m.number != "" {
		return m.writeNumbered(out, w)
	}

	m.node.Draw(1.0, 0.0, w)
	width := bb.XMax - bb.XMin + 2.0
	height := bb.YMax - bb.YMin + 2.0
	return w.writeTo(out, 0.0, -bb.YMax-1.0, width, height)
}

// DrawOn writes the expression as an SVG group for embedding in an existing
// document, translated to (x, y) with the requested alignment. Glyphs are
// inlined so the fragment does not depend on document definitions.
func (m *Math) DrawOn(out io.Writer, x, y float64, halign, valign string) error {
	bb := m.node.BBox()
	width, height := m.Size()

	switch halign {
	case "center":
		x -= width / 2.0
	case "right":
		x -= width
	}
	switch valign {
	case "top":
		y += bb.YMax
	case "center":
		y += height/2.0 + bb.YMin
	case "axis":
		y += float64(m.ctx.font.Consts().AxisHeight) * m.size / m.ctx.font.UnitsPerEm()
	case "bottom":
		y += bb.YMin
	}

	cfg := m.ctx.cfg
	cfg.svg2 = false // inline paths only in fragments
	w := newWriter(&cfg)
	m.node.Draw(0.0, 0.0, w)

	if _, err := fmt.Fprintf(out, `<g transform="translate(%v %v)"`, w.dec(x), w.dec(y)); err != nil {
		return err
	}
	if color := cfg.math.Color; color != "" {
		fmt.Fprintf(out, ` fill="%s"`, color)
	}
	fmt.Fprintf(out, `>`)
	if _, err := out.Write(w.body.Bytes()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, `</g>`)
	return err
}

// writeNumbered renders the expression centered at half the column width
// with the equation tag flush against the column edge.
func (m *Math) writeNumbered(out io.Writer, w *writer) error {
	cfg := &m.ctx.cfg
	columnWidth, err := parseLength(cfg.numbering.ColumnWidth, m.size)
	if err != nil || columnWidth <= 0.0 {
		m.ctx.warnf("numbering: bad columnwidth %q", cfg.numbering.ColumnWidth)
		columnWidth = m.node.BBox().XMax + m.size*4.0
	}

	tagElem := newElement("math")
	mtext := newElement("mtext")
	mtext.Text = m.number
	tagElem.Children = []*Element{mtext}
	parent := &node{tag: "#root", elem: tagElem, ctx: m.ctx, size: m.size}
	parent.style = rootStyle(tagElem, cfg)
	parent.glyphsize = m.size
	parent.emscale = m.size / m.ctx.font.UnitsPerEm()
	tag := makeNode(tagElem, parent, 0, flags{})

	bb := m.node.BBox()
	tb := tag.BBox()
	width, _ := m.Size()
	m.node.Draw(columnWidth/2.0-width/2.0, 0.0, w)
	tag.Draw(columnWidth-tb.XMax, 0.0, w)

	ymax := math.Max(bb.YMax, tb.YMax)
	ymin := math.Min(bb.YMin, tb.YMin)
	return w.writeTo(out, 0.0, -ymax-1.0, columnWidth+2.0, ymax-ymin+2.0)
}

package mathsvg

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mathsvg/mathsvg/mathfont"
)

// ErrLayout reports degraded layout such as an unreachable stretch target.
// Layout problems never abort a render; they surface as warnings.
var ErrLayout = fmt.Errorf("layout error")

// BBox is a bounding box relative to the baseline, y growing upward.
type BBox struct {
	XMin, XMax, YMin, YMax float64
}

// Drawable is anything that can be placed and drawn: a typeset node, a
// glyph, or a rule primitive. Child positions are SVG offsets, y growing
// downward, while bounding boxes grow upward; both measure from the
// baseline.
type Drawable interface {
	BBox() BBox
	XAdvance() float64
	FirstGlyph() *mathfont.Glyph
	LastGlyph() *mathfont.Glyph
	LastRune() rune
	Draw(x, y float64, w *writer)
}

// context is the per-render state shared by all nodes of one tree.
type context struct {
	font     *mathfont.Font
	cfg      config
	base     float64 // root font size
	warnings []string
}

func (ctx *context) warnf(format string, args ...interface{}) {
	ctx.warnings = append(ctx.warnings, fmt.Sprintf(format, args...))
}

// flags communicates placement context downward without touching Style.
type flags struct {
	sup     bool
	sub     bool
	frac    bool
	phantom bool
	width   float64 // horizontal stretch target for over/under scripts (the base width)
	height  float64 // vertical stretch target for row operators
}

type point struct {
	x, y float64
}

// node is one typeset MathML element: a bounding box plus placed children.
type node struct {
	tag    string
	elem   *Element
	ctx    *context
	parent *node

	size        float64
	scriptlevel int
	style       Style
	glyphsize   float64
	emscale     float64

	isOp       bool
	params     Operator
	form       Form
	spaceWidth float64
	lspaceUsed float64
	rspaceUsed float64

	children []Drawable
	childpos []point
	bbox     BBox
}

// newNode initializes the shared element state: inherited style, script
// level, and the derived glyph scale.
func newNode(elem *Element, parent *node, scriptlevel int) *node {
	n := &node{
		tag:         elem.Tag,
		elem:        elem,
		ctx:         parent.ctx,
		parent:      parent,
		size:        parent.size,
		scriptlevel: scriptlevel,
	}
	if v, ok := elem.Attrib["scriptlevel"]; ok {
		if lvl, err := strconv.Atoi(v); err == nil && 0 <= lvl {
			n.scriptlevel = lvl
		}
	}
	n.style = parseStyle(elem, parent.style, &n.ctx.cfg)
	n.glyphsize = scriptSize(n.size, n.scriptlevel, n.ctx)
	n.emscale = n.glyphsize / n.ctx.font.UnitsPerEm()
	return n
}

// scriptSize scales a font size for a script level, clamped to the minimum
// size fraction of the base size.
func scriptSize(size float64, level int, ctx *context) float64 {
	consts := ctx.font.Consts()
	scale := 1.0
	switch {
	case level == 1:
		scale = float64(consts.ScriptPercentScaleDown) / 100.0
	case 2 <= level:
		scale = math.Pow(float64(consts.ScriptScriptPercentScaleDown)/100.0, float64(level)-1.0)
	}
	return math.Max(size*scale, ctx.base*ctx.cfg.minSizeFraction)
}

// consts returns the font's MATH constants.
func (n *node) consts() *mathfont.Constants {
	return n.ctx.font.Consts()
}

// displaystyle reports whether the node lays out in display style.
func (n *node) displaystyle() bool {
	return n.style.DisplayStyle
}

// add places a child at an SVG offset from this node's origin.
func (n *node) add(child Drawable, x, y float64) {
	n.children = append(n.children, child)
	n.childpos = append(n.childpos, point{x, y})
}

// leftSibling returns the drawable placed just before this node in the
// enclosing row, looking through mstyle wrappers.
func (n *node) leftSibling() Drawable {
	parent := n.parent
	for parent != nil && parent.tag == "mstyle" {
		parent = parent.parent
	}
	if parent == nil || len(parent.children) == 0 {
		return nil
	}
	return parent.children[len(parent.children)-1]
}

// glyph resolves a rune in the render font. Missing glyphs warn and return
// nil; callers substitute a replacement box.
func (n *node) glyph(r rune) *mathfont.Glyph {
	g, err := n.ctx.font.Glyph(r)
	if err != nil {
		n.ctx.warnf("missing glyph for %q", r)
		return nil
	}
	return g
}

func (n *node) BBox() BBox {
	return n.bbox
}

func (n *node) XAdvance() float64 {
	return n.bbox.XMax
}

func (n *node) FirstGlyph() *mathfont.Glyph {
	for _, c := range n.children {
		// zero-width or negative space does not count as a leading glyph
		if cn, ok := c.(*node); ok && cn.tag == "mspace" && cn.spaceWidth <= 0.0 {
			continue
		}
		return c.FirstGlyph()
	}
	return nil
}

func (n *node) LastGlyph() *mathfont.Glyph {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1].LastGlyph()
}

func (n *node) LastRune() rune {
	if len(n.children) == 0 {
		return 0
	}
	return n.children[len(n.children)-1].LastRune()
}

func (n *node) Draw(x, y float64, w *writer) {
	if bg := n.style.MathBackground; bg != "" && bg != "none" {
		w.rect(x, y-n.bbox.YMax, n.bbox.XMax-n.bbox.XMin, n.bbox.YMax-n.bbox.YMin, bg, "background")
	}
	if n.ctx.cfg.debug {
		w.box(x, y-n.bbox.YMax, n.bbox.XMax-n.bbox.XMin, n.bbox.YMax-n.bbox.YMin, 0.2, 0.0, "blue", "")
		w.line(x, y, x+n.bbox.XMax, y, 0.2, "red", false)
	}
	for i, c := range n.children {
		c.Draw(x+n.childpos[i].x, y+n.childpos[i].y, w)
	}
}

// makeNode builds the typeset node for a MathML element.
func makeNode(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	if elem.Tag == "mi" && isOperatorName(elem.text()) {
		// function names arrive as identifiers from LaTeX converters
		elem.Tag = "mo"
	}
	switch elem.Tag {
	case "math", "mrow", "mtd":
		return buildRow(elem, parent, scriptlevel, fl)
	case "mstyle":
		return buildStyle(elem, parent, scriptlevel, fl)
	case "mi":
		return buildIdentifier(elem, parent, scriptlevel, fl)
	case "mn":
		return buildNumber(elem, parent, scriptlevel, fl)
	case "mo":
		if _, ok := elem.Attrib["form"]; !ok {
			elem.Attrib["form"] = Prefix.String()
		}
		return buildOperator(elem, parent, scriptlevel, fl)
	case "mtext":
		return buildText(elem, parent, scriptlevel, fl)
	case "ms":
		return buildString(elem, parent, scriptlevel, fl)
	case "mspace":
		return buildSpace(elem, parent, scriptlevel, fl)
	case "msup", "msub", "msubsup":
		return buildScripts(elem, parent, scriptlevel, fl)
	case "mover", "munder", "munderover":
		return buildOverUnder(elem, parent, scriptlevel, fl)
	case "mfrac":
		return buildFrac(elem, parent, scriptlevel, fl)
	case "msqrt", "mroot":
		return buildRadical(elem, parent, scriptlevel, fl)
	case "mfenced":
		return buildFenced(elem, parent, scriptlevel, fl)
	case "menclose":
		return buildEnclose(elem, parent, scriptlevel, fl)
	case "mpadded":
		return buildPadded(elem, parent, scriptlevel, fl)
	case "mphantom":
		return buildPhantom(elem, parent, scriptlevel, fl)
	case "mtable":
		return buildTable(elem, parent, scriptlevel, fl)
	case "mmultiscripts":
		return buildMultiscripts(elem, parent, scriptlevel, fl)
	case "none", "mprescripts":
		return newNode(elem, parent, scriptlevel)
	default:
		parent.ctx.warnf("unknown element <%s>, treating as mrow", elem.Tag)
		row := newElement("mrow")
		row.Children = elem.Children
		row.Attrib = elem.Attrib
		row.Text = elem.Text
		return buildRow(row, parent, scriptlevel, fl)
	}
}

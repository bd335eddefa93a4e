package mathsvg

import (
	"math"
	"strings"
)

// spaceAdvance returns the advance of whitespace characters that may have no
// glyph, in ems.
func spaceAdvance(r rune) (float64, bool) {
	switch r {
	case ' ', ' ':
		return 0.25, true
	case ' ': // thin space
		return 1.0 / 6.0, true
	case ' ': // en space
		return 0.5, true
	case ' ': // em space
		return 1.0, true
	}
	return 0.0, false
}

// layoutRun lays out a string as a run of glyphs with no inter-glyph
// spacing, setting the node's children and bounding box.
func (n *node) layoutRun(s string, fl flags) {
	ymin, ymax := math.Inf(1), math.Inf(-1)
	x := 0.0
	lastAdvance := 0.0
	for _, r := range s {
		g, err := n.ctx.font.Glyph(r)
		if err != nil {
			if adv, ok := spaceAdvance(r); ok {
				x += adv * n.glyphsize
				lastAdvance = 0.0
				continue
			}
			n.ctx.warnf("missing glyph for %q", r)
			rb := &replacementBox{size: n.glyphsize, style: n.style, phantom: fl.phantom}
			n.add(rb, x, 0.0)
			x += rb.XAdvance()
			lastAdvance = rb.XAdvance()
			ymin = math.Min(ymin, 0.0)
			ymax = math.Max(ymax, rb.BBox().YMax)
			continue
		}
		gb := newGlyphBox(g, r, n, fl)
		n.add(gb, x, 0.0)
		lastAdvance = gb.XAdvance()
		x += lastAdvance
		ymin = math.Min(ymin, g.YMin*n.emscale)
		ymax = math.Max(ymax, g.YMax*n.emscale)
	}

	if len(n.children) == 0 {
		n.bbox = BBox{0.0, x, 0.0, 0.0}
		return
	}
	xmin := n.children[0].BBox().XMin
	last := len(n.children) - 1
	xmax := n.childpos[last].x + math.Max(n.children[last].BBox().XMax, lastAdvance)
	n.bbox = BBox{xmin, xmax, ymin, ymax}
}

// buildIdentifier lays out <mi>. Single letters default to italic; longer
// identifiers render upright with a thin space before, and after unless the
// identifier is a direct child of msup, msub, msubsup or mmultiscripts.
func buildIdentifier(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	n := newNode(elem, parent, scriptlevel)
	text := elem.text()
	runes := []rune(text)
	if len(runes) == 1 && !n.style.Variant.Italic && !n.style.Variant.Normal && autoItalic(runes[0]) {
		n.style.Variant.Italic = true
	}
	if 1 < len(runes) {
		text = " " + text
		switch parent.tag {
		case "msup", "msub", "msubsup", "mmultiscripts":
		default:
			text += " "
		}
	}
	n.layoutRun(styledString(text, n.style.Variant), fl)
	return n
}

// buildNumber lays out <mn>. Numbers are upright unless styled explicitly.
func buildNumber(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	n := newNode(elem, parent, scriptlevel)
	n.layoutRun(styledString(elem.text(), n.style.Variant), fl)
	return n
}

// normalizeText prepares prose for layout: tabs become spaces and runs of
// three or more dashes collapse into an em dash.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	var sb strings.Builder
	run := 0
	flush := func() {
		if 3 <= run {
			sb.WriteRune('—')
		} else {
			for i := 0; i < run; i++ {
				sb.WriteRune('−')
			}
		}
		run = 0
	}
	for _, r := range s {
		if r == '-' || r == '−' {
			run++
			continue
		}
		flush()
		sb.WriteRune(r)
	}
	flush()
	return sb.String()
}

// buildText lays out <mtext>, preserving interior whitespace.
func buildText(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	n := newNode(elem, parent, scriptlevel)
	n.layoutRun(styledString(normalizeText(elem.Text), n.style.Variant), fl)
	return n
}

// buildString lays out <ms>, a quoted string literal.
func buildString(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	n := newNode(elem, parent, scriptlevel)
	lquote := elem.Attr("lquote", `"`)
	rquote := elem.Attr("rquote", `"`)
	n.layoutRun(styledString(lquote+normalizeText(elem.Text)+rquote, n.style.Variant), fl)
	return n
}

// buildSpace lays out <mspace>. A linebreak="newline" space is zero-width;
// the enclosing row splits on it.
func buildSpace(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	n := newNode(elem, parent, scriptlevel)
	width, err := parseLength(elem.Attr("width", "0"), n.glyphsize)
	if err != nil {
		n.ctx.warnf("mspace: %v", err)
	}
	height, err := parseLength(elem.Attr("height", "0"), n.glyphsize)
	if err != nil {
		n.ctx.warnf("mspace: %v", err)
	}
	depth, err := parseLength(elem.Attr("depth", "0"), n.glyphsize)
	if err != nil {
		n.ctx.warnf("mspace: %v", err)
	}
	if elem.Attr("linebreak", "") == "newline" {
		width, height, depth = 0.0, 0.0, 0.0
	}
	n.spaceWidth = width
	n.bbox = BBox{0.0, width, -depth, height}
	return n
}

// buildOperator lays out <mo>: spacing from the operator dictionary on both
// sides, large-operator growth in display style, and horizontal stretch when
// placed as an over/under script.
func buildOperator(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	n := newNode(elem, parent, scriptlevel)
	n.isOp = true
	text := elem.text()
	if f, ok := parseForm(elem.Attr("form", "")); ok {
		n.form = f
	}
	n.params = lookupOperator(text, n.form)
	applyOperatorAttrs(&n.params, elem)

	if text == "" {
		// InvisibleTimes and friends vanish during unescaping
		n.bbox = BBox{}
		return n
	}

	addspace := !fl.sup && !fl.sub
	lspace := muWidth(n.params.Lspace, n.glyphsize)
	rspace := muWidth(n.params.Rspace, n.glyphsize)
	if v, ok := elem.Attrib["lspace"]; ok {
		lspace = spaceEms(v) * n.glyphsize
	}
	if v, ok := elem.Attrib["rspace"]; ok {
		rspace = spaceEms(v) * n.glyphsize
	}

	// vertical stretch target from the row, clamped by minsize/maxsize
	height := fl.height
	if 0.0 < height {
		if v, ok := elem.Attrib["minsize"]; ok {
			if minsize, err := parseLength(v, n.glyphsize); err == nil {
				height = math.Max(height, minsize)
			}
		}
		if v, ok := elem.Attrib["maxsize"]; ok {
			if maxsize, err := parseLength(v, n.glyphsize); err == nil {
				height = math.Min(height, maxsize)
			}
		}
	}

	x := 0.0
	if addspace {
		x += lspace
		n.lspaceUsed = lspace
	}
	ymin, ymax := math.Inf(1), math.Inf(-1)
	xmin := x
	styled := styledString(text, n.style.Variant)
	first := true
	for _, r := range styled {
		g, err := n.ctx.font.Glyph(r)
		if err != nil {
			if adv, ok := spaceAdvance(r); ok {
				x += adv * n.glyphsize
				continue
			}
			n.ctx.warnf("missing glyph for %q", r)
			rb := &replacementBox{size: n.glyphsize, style: n.style, phantom: fl.phantom}
			n.add(rb, x, 0.0)
			x += rb.XAdvance()
			ymin = math.Min(ymin, 0.0)
			ymax = math.Max(ymax, rb.BBox().YMax)
			first = false
			continue
		}
		if n.params.LargeOp && n.displaystyle() {
			g = n.ctx.font.Variant(g.ID, float64(n.consts().DisplayOperatorMinHeight), true)
		}
		if 0.0 < fl.width {
			g = n.ctx.font.Variant(g.ID, fl.width/n.emscale, false)
		}
		if 0.0 < height {
			g = n.ctx.font.Variant(g.ID, height/n.emscale, true)
			if (g.YMax-g.YMin)*n.emscale < height/2.0 {
				n.ctx.warnf("%v: %q cannot stretch to %.3g", ErrLayout, r, height)
			}
		}
		dy := 0.0
		if 0.0 < height && n.params.Symmetric {
			// center on the math axis
			center := (g.YMax + g.YMin) / 2.0 * n.emscale
			dy = center - float64(n.consts().AxisHeight)*n.emscale
		}
		gb := newGlyphBox(g, r, n, fl)
		n.add(gb, x, dy)
		if first {
			xmin = x + g.XMin*n.emscale
			first = false
		}
		x += gb.XAdvance()
		ymin = math.Min(ymin, g.YMin*n.emscale-dy)
		ymax = math.Max(ymax, g.YMax*n.emscale-dy)
	}
	if addspace {
		x += rspace
		n.rspaceUsed = rspace
	}
	if math.IsInf(ymin, 1) {
		ymin, ymax = 0.0, 0.0
	}
	n.bbox = BBox{xmin, x, ymin, ymax}
	return n
}

// applyOperatorAttrs overrides dictionary flags from element attributes.
func applyOperatorAttrs(op *Operator, elem *Element) {
	boolAttr := func(name string, v *bool) {
		switch elem.Attr(name, "") {
		case "true":
			*v = true
		case "false":
			*v = false
		}
	}
	boolAttr("stretchy", &op.Stretchy)
	boolAttr("symmetric", &op.Symmetric)
	boolAttr("largeop", &op.LargeOp)
	boolAttr("movablelimits", &op.MovableLimits)
	boolAttr("accent", &op.Accent)
	boolAttr("fence", &op.Fence)
}

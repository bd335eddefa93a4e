package mathsvg

import "math"

// fracLineThickness resolves the linethickness attribute against the font's
// default rule thickness.
func fracLineThickness(elem *Element, n *node) float64 {
	thickness := float64(n.consts().FractionRuleThickness) * n.emscale
	if lt, ok := elem.Attrib["linethickness"]; ok {
		switch lt {
		case "thin":
			return thickness * 0.5
		case "medium":
			return thickness
		case "thick":
			return thickness * 2.0
		}
		if v, err := parseLength(lt, n.glyphsize); err == nil {
			return v
		}
		n.ctx.warnf("mfrac: bad linethickness %q", lt)
	}
	return thickness
}

// buildFrac lays out <mfrac>: numerator and denominator in script size when
// not in display style, centered over a rule on the math axis.
func buildFrac(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	level := scriptlevel
	if elem.Attr("displaystyle", "") != "true" {
		inherited := parseStyle(elem, parent.style, &parent.ctx.cfg)
		if fl.frac || fl.sup || fl.sub || !inherited.DisplayStyle {
			level++
		}
	}
	n := newNode(elem, parent, level)
	if len(elem.Children) < 2 {
		n.ctx.warnf("<mfrac> needs 2 children")
		return n
	}

	nfl := fl
	nfl.frac = true
	num := makeNode(elem.Children[0], n, n.scriptlevel, nfl)
	saved := n.style
	n.style.Cramped = true
	den := makeNode(elem.Children[1], n, n.scriptlevel, nfl)
	n.style = saved

	consts := n.consts()
	shiftUp := float64(consts.FractionNumeratorShiftUp)
	shiftDown := float64(consts.FractionDenominatorShiftDown)
	gapNum := float64(consts.FractionNumeratorGapMin)
	gapDen := float64(consts.FractionDenominatorGapMin)
	if n.displaystyle() {
		shiftUp = float64(consts.FractionNumeratorDisplayStyleShiftUp)
		shiftDown = float64(consts.FractionDenominatorDisplayStyleShiftDown)
		gapNum = float64(consts.FractionNumDisplayStyleGapMin)
		gapDen = float64(consts.FractionDenomDisplayStyleGapMin)
	}

	thickness := fracLineThickness(elem, n)
	axis := float64(consts.AxisHeight) * n.emscale
	numBox, denBox := num.BBox(), den.BBox()

	ynum := -shiftUp * n.emscale
	if bottom := -ynum + numBox.YMin; bottom < axis+thickness/2.0+gapNum*n.emscale {
		ynum -= axis + thickness/2.0 + gapNum*n.emscale - bottom
	}
	yden := shiftDown * n.emscale
	if top := -yden + denBox.YMax; axis-thickness/2.0-gapDen*n.emscale < top {
		yden += top - (axis - thickness/2.0 - gapDen*n.emscale)
	}

	// a fraction following other content gets a thin space of separation
	x := 0.0
	if sibling := n.leftSibling(); sibling != nil {
		if sn, ok := sibling.(*node); ok && sn.tag == "mfrac" {
			x = spaceEms("verythinmathspace") * n.glyphsize
		} else {
			x = spaceEms("thinmathspace") * n.glyphsize
		}
	}

	width := math.Max(numBox.XMax, denBox.XMax)
	n.add(num, x+(width-(numBox.XMax-numBox.XMin))/2.0, ynum)
	n.add(den, x+(width-(denBox.XMax-denBox.XMin))/2.0, yden)
	n.add(&hline{length: width, lw: thickness, style: n.style, phantom: fl.phantom}, x, -axis-thickness/2.0)

	xmax := x + width + spaceEms("thinmathspace")*n.glyphsize
	n.bbox = BBox{0.0, xmax, -yden + denBox.YMin, -ynum + numBox.YMax}
	return n
}

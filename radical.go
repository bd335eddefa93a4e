package mathsvg

import "math"

// buildRadical lays out <msqrt> and <mroot>: the radicand in cramped style
// behind a stretched radical glyph, under an overbar, with an optional
// degree raised along the radical's height.
func buildRadical(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	n := newNode(elem, parent, scriptlevel)
	if len(elem.Children) == 0 {
		n.ctx.warnf("<%s> needs a radicand", elem.Tag)
		return n
	}

	var baseElem *Element
	var degree Drawable
	if elem.Tag == "mroot" {
		if len(elem.Children) < 2 {
			n.ctx.warnf("<mroot> needs a radicand and a degree")
			return n
		}
		baseElem = elem.Children[0]
		degree = makeNode(elem.Children[1], n, n.scriptlevel+2, fl)
	} else if 1 < len(elem.Children) {
		baseElem = newElement("mrow")
		baseElem.Children = elem.Children
	} else {
		baseElem = elem.Children[0]
	}

	saved := n.style
	n.style.Cramped = true
	base := makeNode(baseElem, n, n.scriptlevel, fl)
	n.style = saved

	consts := n.consts()
	bb := base.BBox()
	gap := float64(consts.RadicalVerticalGap) * n.emscale
	if n.displaystyle() {
		gap = float64(consts.RadicalDisplayStyleVerticalGap) * n.emscale
	}
	thickness := float64(consts.RadicalRuleThickness) * n.emscale

	radicalGlyph := n.glyph('√')
	if radicalGlyph == nil {
		return n // degraded: radicand only
	}
	height := bb.YMax - bb.YMin
	rg := n.ctx.font.Variant(radicalGlyph.ID, height/n.emscale, true)

	// shift the radical so the rule clears the radicand by the minimum gap
	ruleTop := bb.YMax + gap + thickness
	yrad := 0.0
	if bb.YMin < rg.YMin*n.emscale || rg.YMax*n.emscale < bb.YMax+gap {
		yrad = -(ruleTop - rg.YMax*n.emscale)
	}
	tipTop := yrad - rg.YMax*n.emscale

	x := 0.0
	var ydeg float64
	if degree != nil {
		x += float64(consts.RadicalKernBeforeDegree) * n.emscale
		ydeg = tipTop * float64(consts.RadicalDegreeBottomRaisePercent) / 100.0
		n.add(degree, x, ydeg)
		x += degree.BBox().XMax
		x += float64(consts.RadicalKernAfterDegree) * n.emscale
	}

	rootBox := newGlyphBox(rg, '√', n, fl)
	n.add(rootBox, x, yrad)
	x += rootBox.BBox().XMax

	n.add(base, x, 0.0)

	// the overbar spans the radicand plus its trailing italic correction
	width := bb.XMax - bb.XMin
	if lastg := base.LastGlyph(); lastg != nil {
		if italicx := n.ctx.font.ItalicCorrection(lastg.ID); italicx != 0.0 {
			width += italicx * n.emscale
		}
	}
	n.add(&hline{length: width, lw: thickness, style: n.style, phantom: fl.phantom}, x, yrad-rg.YMax*n.emscale)

	xmin := rg.XMin * n.emscale
	xmax := x + width
	ymin := math.Min(-yrad+rg.YMin*n.emscale, bb.YMin)
	ymax := -yrad + rg.YMax*n.emscale
	if degree != nil {
		ymax = math.Max(ymax, -ydeg+degree.BBox().YMax)
	}
	n.bbox = BBox{xmin, xmax, ymin, ymax}
	return n
}

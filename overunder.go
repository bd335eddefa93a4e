package mathsvg

import "math"

// accentRunes render at the base's script level and collapse the vertical
// gap when marked as accents.
var accentRunes = map[rune]bool{
	0x005E: true, // hat
	0x02D9: true, // dot
	0x02C7: true, // check
	0x007E: true, // tilde
	0x00B4: true, // acute
	0x0060: true, // grave
	0x00A8: true, // double dot
	0x20DB: true, // triple dot
	0x20DC: true, // quad dot
	0x02D8: true, // breve
	0x00AF: true, // macron
	0x02DA: true, // ring
	0x0302: true, // combining hat
	0x0303: true, // combining tilde
	0x0305: true, // combining overline
	0x20D7: true, // combining right arrow
}

func isAccentElement(e *Element) bool {
	text := []rune(e.text())
	return len(text) == 1 && accentRunes[text[0]]
}

// placeOver computes the position of a node above a base: centered, or on
// the base's top-accent attachment point when the base is a single glyph.
func placeOver(base, over Drawable, n *node, gap float64) (float64, float64) {
	bb, ob := base.BBox(), over.BBox()
	x := ((bb.XMax-bb.XMin)-(ob.XMax-ob.XMin))/2.0 - ob.XMin
	if baseN, ok := base.(*node); ok && len(baseN.children) == 1 {
		if gb, ok := baseN.children[0].(*glyphBox); ok {
			if attach, ok := n.ctx.font.TopAccent(gb.glyph.ID); ok {
				x = attach*n.emscale - (ob.XMax-ob.XMin)/2.0
			}
		}
	}
	y := -bb.YMax - gap + ob.YMin
	return x, y
}

// placeUnder computes the position of a node below a base.
func placeUnder(base, under Drawable, n *node, gap float64) (float64, float64) {
	bb, ub := base.BBox(), under.BBox()
	x := ((bb.XMax-bb.XMin)-(ub.XMax-ub.XMin))/2.0 - ub.XMin
	y := -bb.YMin + gap + ub.YMax
	return x, y
}

// overGap picks the vertical gap above a base: zero for accents, the limit
// gap for big operators, the overbar gap otherwise.
func overGap(base Drawable, n *node, accent bool) float64 {
	if accent {
		return 0.0
	}
	if baseN, ok := base.(*node); ok && baseN.isOp && (baseN.params.LargeOp || baseN.params.MovableLimits) {
		return float64(n.consts().UpperLimitGapMin) * n.emscale
	}
	return float64(n.consts().OverbarVerticalGap) * n.emscale
}

func underGap(base Drawable, n *node, accent bool) float64 {
	if accent {
		return 0.0
	}
	if baseN, ok := base.(*node); ok && baseN.isOp && (baseN.params.LargeOp || baseN.params.MovableLimits) {
		return float64(n.consts().LowerLimitGapMin) * n.emscale
	}
	return float64(n.consts().UnderbarVerticalGap) * n.emscale
}

// buildOverUnder lays out <mover>, <munder>, and <munderover>. Operators
// with movable limits drop to sub/superscript placement in text style.
func buildOverUnder(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	n := newNode(elem, parent, scriptlevel)
	want := 2
	if elem.Tag == "munderover" {
		want = 3
	}
	if len(elem.Children) < want {
		n.ctx.warnf("<%s> needs %d children", elem.Tag, want)
		return n
	}

	baseElem := elem.Children[0]
	if baseElem.Tag == "mo" && !n.displaystyle() {
		op := lookupOperator(baseElem.text(), Prefix)
		applyOperatorAttrs(&op, baseElem)
		if op.MovableLimits {
			// limits become scripts in text style
			scripts := newElement(map[string]string{
				"mover": "msup", "munder": "msub", "munderover": "msubsup",
			}[elem.Tag])
			scripts.Attrib = elem.Attrib
			scripts.Children = elem.Children
			return buildScripts(scripts, parent, scriptlevel, fl)
		}
	}

	base := makeNode(baseElem, n, n.scriptlevel, fl)
	width := base.BBox().XMax - base.BBox().XMin

	var under, over Drawable
	underAccent, overAccent := false, false
	switch elem.Tag {
	case "mover":
		overAccent = isAccentElement(elem.Children[1]) || elem.Attr("accent", "") == "true"
		over = buildScriptChild(elem.Children[1], n, overAccent, width, false, fl)
	case "munder":
		underAccent = isAccentElement(elem.Children[1]) || elem.Attr("accentunder", "") == "true"
		under = buildScriptChild(elem.Children[1], n, underAccent, width, true, fl)
	case "munderover":
		underAccent = isAccentElement(elem.Children[1]) || elem.Attr("accentunder", "") == "true"
		overAccent = isAccentElement(elem.Children[2]) || elem.Attr("accent", "") == "true"
		under = buildScriptChild(elem.Children[1], n, underAccent, width, true, fl)
		over = buildScriptChild(elem.Children[2], n, overAccent, width, false, fl)
	}

	var overx, overy, underx, undery float64
	if over != nil {
		overx, overy = placeOver(base, over, n, overGap(base, n, overAccent))
	}
	if under != nil {
		underx, undery = placeUnder(base, under, n, underGap(base, n, underAccent))
	}

	basex := 0.0
	if overx < 0.0 || underx < 0.0 {
		basex = math.Max(-overx, -underx)
		shift := math.Min(overx, underx)
		if over != nil && under != nil {
			overx, underx = overx-shift, underx-shift
		} else {
			overx = math.Max(overx, 0.0)
			underx = math.Max(underx, 0.0)
		}
	}

	n.add(base, basex, 0.0)
	bb := base.BBox()
	xmin, xmax := basex+bb.XMin, basex+bb.XMax
	ymin, ymax := bb.YMin, bb.YMax
	if over != nil {
		n.add(over, overx, overy)
		xmin = math.Min(xmin, overx)
		xmax = math.Max(xmax, overx+over.BBox().XMax)
		ymax = -overy + over.BBox().YMax
	}
	if under != nil {
		n.add(under, underx, undery)
		xmin = math.Min(xmin, underx)
		xmax = math.Max(xmax, underx+under.BBox().XMax)
		ymin = -undery + under.BBox().YMin
	}
	n.bbox = BBox{xmin, xmax, ymin, ymax}
	return n
}

// buildScriptChild builds an over/under child: accents keep the base's
// script level, limits shrink one level; both receive the base width as
// their horizontal stretch target.
func buildScriptChild(elem *Element, n *node, accent bool, width float64, below bool, fl flags) Drawable {
	sfl := fl
	sfl.width = width
	level := n.scriptlevel + 1
	if accent {
		level = n.scriptlevel
	} else if below {
		sfl.sub = true
	} else {
		sfl.sup = true
	}
	return makeNode(elem, n, level, sfl)
}

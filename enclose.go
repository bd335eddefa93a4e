package mathsvg

import "strings"

// buildEnclose lays out <menclose>, overlaying the listed notations on the
// enclosed content.
func buildEnclose(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	n := newNode(elem, parent, scriptlevel)

	var baseElem *Element
	if 1 < len(elem.Children) {
		baseElem = newElement("mrow")
		baseElem.Children = elem.Children
	} else if len(elem.Children) == 1 {
		baseElem = elem.Children[0]
	} else {
		return n
	}
	base := makeNode(baseElem, n, n.scriptlevel, fl)
	notation := strings.Fields(elem.Attr("notation", "box"))
	has := func(names ...string) bool {
		for _, want := range names {
			for _, got := range notation {
				if got == want {
					return true
				}
			}
		}
		return false
	}

	bb := base.BBox()
	pad := 0.4 * n.glyphsize
	lw := float64(n.consts().RadicalRuleThickness) * n.emscale
	height := bb.YMax - bb.YMin + pad*2.0
	width := bb.XMax - bb.XMin + pad*2.0
	basex := pad
	xarrow, yarrow := 0.0, 0.0

	if has("box") {
		n.add(&boxPrim{width: width, height: height, lw: lw, style: n.style, phantom: fl.phantom},
			0.0, -bb.YMax+height-pad)
	}
	if has("roundedbox") {
		n.add(&boxPrim{width: width, height: height, lw: lw, radius: lw * 4.0, style: n.style, phantom: fl.phantom},
			0.0, -bb.YMax+height-pad)
	}
	if has("circle") {
		n.add(&ellipsePrim{width: width, height: height, lw: lw, style: n.style, phantom: fl.phantom},
			0.0, -bb.YMax+height-pad)
	}
	if has("top", "longdiv", "actuarial") {
		n.add(&hline{length: width, lw: lw, style: n.style, phantom: fl.phantom}, 0.0, -bb.YMax-pad)
	}
	if has("bottom", "madruwb", "phasorangle") {
		n.add(&hline{length: width, lw: lw, style: n.style, phantom: fl.phantom}, 0.0, -bb.YMin+pad)
	}
	if has("right", "madruwb", "actuarial") {
		n.add(&vline{height: height, lw: lw, style: n.style, phantom: fl.phantom}, bb.XMax+pad*2.0, -bb.YMax-pad)
	}
	if has("left", "longdiv") {
		n.add(&vline{height: height, lw: lw, style: n.style, phantom: fl.phantom}, 0.0, -bb.YMax-pad)
	}
	if has("verticalstrike") {
		n.add(&vline{height: height, lw: lw, style: n.style, phantom: fl.phantom}, width/2.0, -bb.YMax-pad)
	}
	if has("horizontalstrike") {
		n.add(&hline{length: width, lw: lw, style: n.style, phantom: fl.phantom}, 0.0, -bb.YMin-height/2.0)
	}
	if has("updiagonalstrike") {
		n.add(newDiagonal(width, -height, lw, false, n.style, fl), 0.0, -bb.YMin-height+pad)
	}
	if has("downdiagonalstrike") {
		n.add(newDiagonal(width, height, lw, false, n.style, fl), 0.0, -bb.YMin+pad)
	}
	if has("phasorangle") {
		n.add(newDiagonal(height/3.0, -height, lw, false, n.style, fl), 0.0, -bb.YMin-height+pad)
		basex += height / 4.0 // make room under the angle
	}
	if has("updiagonalarrow") {
		d := newDiagonal(width, -height, lw, true, n.style, fl)
		n.add(d, 0.0, -bb.YMin-height+pad)
		xarrow, yarrow = d.arrowW, d.arrowH
	}
	if has("radical") {
		rootElem := newElement("msqrt")
		rootElem.Children = []*Element{baseElem}
		return buildRadical(rootElem, parent, scriptlevel, fl)
	}

	n.add(base, basex, 0.0)
	n.bbox = BBox{0.0, basex + width + xarrow, bb.YMin - pad, height - pad + yarrow}
	return n
}

// buildPadded lays out <mpadded>: a row whose reported size is adjusted by
// width/height/depth/lspace attributes, absolute or relative.
func buildPadded(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	row := newElement("mrow")
	row.Attrib = elem.Attrib
	row.Children = elem.Children
	n := buildRow(row, parent, scriptlevel, fl).(*node)
	n.tag = "mpadded"

	adjust := func(valstr string, param float64) float64 {
		switch {
		case strings.HasPrefix(valstr, "+"):
			if v, err := parseLength(valstr[1:], n.glyphsize); err == nil {
				return param + v
			}
		case strings.HasPrefix(valstr, "-"):
			if v, err := parseLength(valstr[1:], n.glyphsize); err == nil {
				return param - v
			}
		case strings.HasSuffix(valstr, "%"):
			if f, err := parseLength(valstr[:len(valstr)-1], 1.0); err == nil {
				return param * f / 100.0
			}
		default:
			if v, err := parseLength(valstr, n.glyphsize); err == nil {
				return v
			}
		}
		n.ctx.warnf("mpadded: bad length %q", valstr)
		return param
	}

	bbox := n.bbox
	if v, ok := elem.Attrib["width"]; ok {
		bbox.XMax = adjust(v, bbox.XMax)
	}
	if v, ok := elem.Attrib["height"]; ok {
		bbox.YMax = adjust(v, bbox.YMax)
	}
	if v, ok := elem.Attrib["depth"]; ok {
		bbox.YMin = -adjust(v, -bbox.YMin)
	}
	if v, ok := elem.Attrib["lspace"]; ok {
		shift := adjust(v, 0.0)
		for i := range n.childpos {
			n.childpos[i].x += shift
		}
	}
	n.bbox = BBox{0.0, bbox.XMax, bbox.YMin, bbox.YMax}
	return n
}

// buildPhantom lays out <mphantom>: the content takes space but is not
// drawn.
func buildPhantom(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	fl.phantom = true
	row := newElement("mrow")
	row.Attrib = elem.Attrib
	row.Children = elem.Children
	n := buildRow(row, parent, scriptlevel, fl).(*node)
	n.tag = "mphantom"
	n.style.MathBackground = "none"
	return n
}

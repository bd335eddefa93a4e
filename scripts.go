package mathsvg

import "math"

// placeSuper positions a superscript after a base. Operators with movable
// limits in display style take the script centered above instead. Returns
// the script x offset relative to the base's right edge, the SVG y offset,
// and the x advance consumed.
func placeSuper(base, sup Drawable, n *node) (float64, float64, float64) {
	emscale := n.emscale
	consts := n.consts()
	baseN, _ := base.(*node)

	if baseN != nil && baseN.isOp && baseN.params.MovableLimits && n.displaystyle() {
		bb, sb := base.BBox(), sup.BBox()
		x := -(bb.XMax-bb.XMin)/2.0 - (sb.XMax-sb.XMin)/2.0
		supy := -bb.YMax - float64(consts.UpperLimitGapMin)*emscale + sb.YMin
		return x, supy, 0.0
	}

	x := 0.0
	if baseN != nil && baseN.isOp {
		x -= baseN.rspaceUsed
	}
	shiftup := float64(consts.SuperscriptShiftUp)
	if n.style.Cramped {
		shiftup = float64(consts.SuperscriptShiftUpCramped)
	}

	lastg := base.LastGlyph()
	if lastg != nil {
		if italicx := n.ctx.font.ItalicCorrection(lastg.ID); italicx != 0.0 && !integralChars[base.LastRune()] {
			x += italicx * emscale
		}
		firstg := sup.FirstGlyph()
		if firstg != nil {
			if n.ctx.font.HasKernInfo() {
				kern, shift := n.ctx.font.KernSuper(lastg, firstg)
				shiftup = shift
				x += kern * emscale
			} else {
				shiftup = lastg.YMax - (sup.BBox().YMax-sup.BBox().YMin)/2.0/emscale
			}
		} else { // e.g. a fraction in the exponent
			shiftup = lastg.YMax
		}
	}

	// keep the script's baseline high enough and its bottom clear of the axis
	shiftup = math.Max(shiftup, base.BBox().YMax/emscale-float64(consts.SuperscriptBaselineDropMax))
	clearance := (float64(consts.AxisHeight) + float64(consts.SuperscriptBottomMin)) * emscale
	if bottom := shiftup*emscale + sup.BBox().YMin; bottom < clearance {
		shiftup += (clearance - bottom) / emscale
	}

	supy := -shiftup * emscale
	xadvance := x + sup.BBox().XMax
	if baseN != nil && (baseN.tag == "mi" || baseN.tag == "mtext") && 1 < len([]rune(baseN.elem.text())) {
		xadvance += spaceEms("thinmathspace") * n.glyphsize
	}
	return x, supy, xadvance
}

// placeSub positions a subscript after a base, mirroring placeSuper.
func placeSub(base, sub Drawable, n *node) (float64, float64, float64) {
	emscale := n.emscale
	consts := n.consts()
	baseN, _ := base.(*node)

	if baseN != nil && baseN.isOp && baseN.params.MovableLimits && n.displaystyle() {
		bb, sb := base.BBox(), sub.BBox()
		x := -(bb.XMax-bb.XMin)/2.0 - (sb.XMax-sb.XMin)/2.0
		suby := -bb.YMin + float64(consts.LowerLimitGapMin)*emscale + sb.YMax
		return x, suby, 0.0
	}

	x := 0.0
	if baseN != nil && baseN.isOp {
		x -= baseN.rspaceUsed
	}
	shiftdn := float64(consts.SubscriptShiftDown)

	lastg := base.LastGlyph()
	if lastg != nil {
		if italicx := n.ctx.font.ItalicCorrection(lastg.ID); italicx != 0.0 && integralChars[base.LastRune()] {
			x -= italicx * emscale // tuck under the slanted bowl
		}
		firstg := sub.FirstGlyph()
		if firstg != nil {
			if n.ctx.font.HasKernInfo() {
				kern, shift := n.ctx.font.KernSub(lastg, firstg)
				shiftdn = shift
				x += kern * emscale
			} else {
				shiftdn = -lastg.YMin + (sub.BBox().YMax-sub.BBox().YMin)/2.0/emscale
			}
		} else {
			shiftdn = -lastg.YMin
		}
	}

	// drop far enough below a deep base, but keep the script top in range
	shiftdn = math.Max(shiftdn, -base.BBox().YMin/emscale+float64(consts.SubscriptBaselineDropMin))
	shiftdn = math.Max(shiftdn, sub.BBox().YMax/emscale-float64(consts.SubscriptTopMax))

	suby := shiftdn * emscale
	return x, suby, x + sub.BBox().XMax
}

// buildScripts lays out <msup>, <msub>, and <msubsup>.
func buildScripts(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	n := newNode(elem, parent, scriptlevel)
	want := 2
	if elem.Tag == "msubsup" {
		want = 3
	}
	if len(elem.Children) < want {
		n.ctx.warnf("<%s> needs %d children", elem.Tag, want)
		return n
	}
	baseElem := elem.Children[0]
	if baseElem.Tag == "mo" {
		if _, ok := baseElem.Attrib["form"]; !ok {
			baseElem.Attrib["form"] = "prefix" // script bases are prefix
		}
	}
	base := makeNode(baseElem, n, n.scriptlevel, fl)

	sfl := fl
	var sub, sup Drawable
	switch elem.Tag {
	case "msup":
		sfl.sup = true
		sup = makeNode(elem.Children[1], n, n.scriptlevel+1, sfl)
	case "msub":
		sfl.sub = true
		sub = makeNode(elem.Children[1], n, n.scriptlevel+1, sfl)
	case "msubsup":
		sfl.sup, sfl.sub = true, true
		sub = makeNode(elem.Children[1], n, n.scriptlevel+1, sfl)
		sup = makeNode(elem.Children[2], n, n.scriptlevel+1, sfl)
	}

	n.add(base, 0.0, 0.0)
	x := base.BBox().XMax

	var suby, supy, xadvSub, xadvSup, subx, supx float64
	if sub != nil {
		subx, suby, xadvSub = placeSub(base, sub, n)
	}
	if sup != nil {
		supx, supy, xadvSup = placeSuper(base, sup, n)
	}

	if sub != nil && sup != nil {
		// keep the two scripts apart
		gap := (suby - sub.BBox().YMax) - (supy - sup.BBox().YMin)
		if minGap := float64(n.consts().SubSuperscriptGapMin) * n.emscale; gap < minGap {
			diff := minGap - gap
			suby += diff / 2.0
			supy -= diff / 2.0
		}
	}
	if sub != nil {
		n.add(sub, x+subx, suby)
	}
	if sup != nil {
		n.add(sup, x+supx, supy)
	}

	bb := base.BBox()
	if bb.YMin < bb.YMax { // non-empty base
		n.bbox = BBox{XMin: bb.XMin, XMax: x + math.Max(xadvSub, xadvSup), YMin: bb.YMin, YMax: bb.YMax}
	} else {
		n.bbox = BBox{XMin: 0.0, XMax: x + math.Max(xadvSub, xadvSup)}
		if sup != nil {
			n.bbox.YMin = -supy
		} else {
			n.bbox.YMin = -suby
		}
	}
	if sub != nil {
		n.bbox.YMin = math.Min(n.bbox.YMin, -suby+sub.BBox().YMin)
		n.bbox.YMax = math.Max(n.bbox.YMax, -suby+sub.BBox().YMax)
	}
	if sup != nil {
		n.bbox.YMin = math.Min(n.bbox.YMin, -supy+sup.BBox().YMin)
		n.bbox.YMax = math.Max(n.bbox.YMax, -supy+sup.BBox().YMax)
	}
	return n
}

// buildMultiscripts lays out <mmultiscripts>: a base with pairs of post
// sub/superscripts, and pairs of prescripts after an <mprescripts/> marker.
func buildMultiscripts(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	n := newNode(elem, parent, scriptlevel)
	if len(elem.Children) == 0 {
		return n
	}

	type pair struct {
		sub, sup Drawable
	}
	sfl := fl
	sfl.sub, sfl.sup = true, true
	script := func(e *Element) Drawable {
		if e.Tag == "none" || e.Tag == "mprescripts" {
			return nil
		}
		return makeNode(e, n, n.scriptlevel+1, sfl)
	}

	base := makeNode(elem.Children[0], n, n.scriptlevel, fl)
	var post, pre []pair
	rest := elem.Children[1:]
	into := &post
	for i := 0; i < len(rest); i++ {
		if rest[i].Tag == "mprescripts" {
			into = &pre
			continue
		}
		p := pair{sub: script(rest[i])}
		if i+1 < len(rest) && rest[i+1].Tag != "mprescripts" {
			p.sup = script(rest[i+1])
			i++
		}
		*into = append(*into, p)
	}

	consts := n.consts()
	supShift := float64(consts.SuperscriptShiftUp) * n.emscale
	subShift := float64(consts.SubscriptShiftDown) * n.emscale
	gapMin := float64(consts.SubSuperscriptGapMin) * n.emscale
	spaceAfter := float64(consts.SpaceAfterScript) * n.emscale

	pairGeometry := func(p pair, suby, supy float64) (float64, float64, float64) {
		// push sub and sup apart when they would collide
		if p.sub != nil && p.sup != nil {
			gap := (suby - p.sub.BBox().YMax) - (supy - p.sup.BBox().YMin)
			if gap < gapMin {
				diff := gapMin - gap
				suby += diff / 2.0
				supy -= diff / 2.0
			}
		}
		width := 0.0
		if p.sub != nil {
			width = math.Max(width, p.sub.BBox().XMax)
		}
		if p.sup != nil {
			width = math.Max(width, p.sup.BBox().XMax)
		}
		return width, suby, supy
	}

	ymin, ymax := math.Inf(1), math.Inf(-1)
	extend := func(d Drawable, y float64) {
		if d == nil {
			return
		}
		ymin = math.Min(ymin, -y+d.BBox().YMin)
		ymax = math.Max(ymax, -y+d.BBox().YMax)
	}

	x := 0.0
	for _, p := range pre {
		width, suby, supy := pairGeometry(p, subShift, -supShift)
		// prescripts right-align against the base
		if p.sub != nil {
			n.add(p.sub, x+width-p.sub.BBox().XMax, suby)
			extend(p.sub, suby)
		}
		if p.sup != nil {
			n.add(p.sup, x+width-p.sup.BBox().XMax, supy)
			extend(p.sup, supy)
		}
		x += width + spaceAfter
	}

	n.add(base, x, 0.0)
	extend(base, 0.0)
	x += base.BBox().XMax

	for _, p := range post {
		subx, suby, supx, supy := 0.0, subShift, 0.0, -supShift
		if p.sub != nil {
			subx, suby, _ = placeSub(base, p.sub, n)
		}
		if p.sup != nil {
			supx, supy, _ = placeSuper(base, p.sup, n)
		}
		var width float64
		width, suby, supy = pairGeometry(p, suby, supy)
		if p.sub != nil {
			n.add(p.sub, x+subx, suby)
			extend(p.sub, suby)
		}
		if p.sup != nil {
			n.add(p.sup, x+supx, supy)
			extend(p.sup, supy)
		}
		x += width + spaceAfter
	}
	if math.IsInf(ymin, 1) {
		ymin, ymax = 0.0, 0.0
	}
	n.bbox = BBox{0.0, x, ymin, ymax}
	return n
}

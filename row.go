package mathsvg

import (
	"math"
	"unicode"
)

// setFormAttr infers the operator form of the i-th of count row children
// unless the element carries an explicit form.
func setFormAttr(i, count int, child *Element) {
	if _, ok := child.Attrib["form"]; !ok {
		child.Attrib["form"] = inferForm(i, count, false).String()
	}
}

// isStretchyFence reports whether an <mo> opens a stretchy fence: its glyph
// is an extended shape and stretching is not disabled.
func isStretchyFence(child *Element, n *node) bool {
	text := []rune(child.text())
	if len(text) == 0 || child.Attr("stretchy", "") == "false" {
		return false
	}
	glyphID := n.ctx.font.GlyphIndex(text[0])
	return glyphID != 0 && n.ctx.font.IsExtended(glyphID)
}

// isStretchyVertical reports whether an <mo> stretches vertically with its
// siblings (a lone or middle fence like the divider bar).
func isStretchyVertical(child *Element, form Form) bool {
	text := child.text()
	if text == "" || child.Attr("stretchy", "") == "false" {
		return false
	}
	op := lookupOperator(text, form)
	applyOperatorAttrs(&op, child)
	return op.Stretchy && !op.Horizontal
}

// buildRow lays out <mrow>, <math>, and <mtd>: children concatenate along
// the baseline with operator spacing, stretchy fences grow to the content,
// and <mspace linebreak="newline"> splits the row into stacked lines.
func buildRow(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	n := newNode(elem, parent, scriptlevel)

	// operator forms count only the non-space children
	items := []*Element{}
	for _, child := range elem.Children {
		if child.Tag == "mi" && isOperatorName(child.text()) {
			child.Tag = "mo"
		}
		if child.Tag != "mspace" {
			items = append(items, child)
		}
	}
	for i, child := range items {
		if child.Tag == "mo" {
			setFormAttr(i, len(items), child)
		}
	}

	// split into lines on newline spaces
	lines := [][]*Element{}
	line := []*Element{}
	for _, child := range elem.Children {
		if child.Tag == "mspace" && child.Attr("linebreak", "") == "newline" {
			lines = append(lines, line)
			line = []*Element{}
		} else {
			line = append(line, child)
		}
	}
	lines = append(lines, line)

	if 1 < len(lines) {
		n.layoutLines(lines, fl)
	} else {
		n.layoutLine(line, fl)
	}
	return n
}

// layoutLines stacks rows vertically with twice the math leading between.
func (n *node) layoutLines(lines [][]*Element, fl flags) {
	leading := 2.0 * float64(n.consts().MathLeading) * n.emscale
	rows := make([]*node, 0, len(lines))
	for _, line := range lines {
		rowElem := newElement("mrow")
		rowElem.Children = line
		rows = append(rows, buildRow(rowElem, n, n.scriptlevel, fl).(*node))
	}

	y := 0.0
	xmax := 0.0
	for i, row := range rows {
		if 0 < i {
			y += row.bbox.YMax - rows[i-1].bbox.YMin + leading
		}
		n.add(row, 0.0, y)
		xmax = math.Max(xmax, row.bbox.XMax)
	}
	n.bbox = BBox{0.0, xmax, -y + rows[len(rows)-1].bbox.YMin, rows[0].bbox.YMax}
}

// layoutLine lays out one line of row children.
func (n *node) layoutLine(line []*Element, fl flags) {
	type slot struct {
		elem     *Element
		drawable Drawable
		deferred bool // stretchy vertical operator, built after siblings
		form     Form
	}
	slots := []slot{}

	i := 0
	for i < len(line) {
		child := line[i]
		if child.Tag == "mo" {
			form, _ := parseForm(child.Attr("form", ""))
			text := child.text()
			if text == "" {
				i++
				continue
			}
			if form == Prefix && isStretchyFence(child, n) {
				fenced, next := synthesizeFence(line, i, child)
				slots = append(slots, slot{elem: fenced,
					drawable: buildFenced(fenced, n, n.scriptlevel, fl)})
				i = next
				continue
			}
			if isStretchyVertical(child, form) {
				slots = append(slots, slot{elem: child, deferred: true, form: form})
				i++
				continue
			}
		}
		d := makeNode(child, n, n.scriptlevel, fl)
		slots = append(slots, slot{elem: child, drawable: d})
		// expose built children so siblings can see what precedes them
		n.children = append(n.children, d)
		i++
	}

	// measure built children, then grow the deferred stretchy operators
	ymin, ymax := math.Inf(1), math.Inf(-1)
	fenced := false
	for _, s := range slots {
		if s.deferred {
			continue
		}
		bb := s.drawable.BBox()
		ymin = math.Min(ymin, bb.YMin)
		ymax = math.Max(ymax, bb.YMax)
		if s.elem.Tag == "mfenced" {
			fenced = true
		}
	}
	target := ymax - ymin
	if fenced {
		target = math.Max(target, float64(n.consts().DelimitedSubFormulaMinHeight)*n.emscale)
	}
	for j := range slots {
		if !slots[j].deferred {
			continue
		}
		sfl := fl
		if 0.0 < target && !math.IsInf(target, -1) {
			sfl.height = target
		}
		slots[j].drawable = buildOperator(slots[j].elem, n, n.scriptlevel, sfl)
	}

	// place children left to right
	n.children = n.children[:0]
	n.childpos = n.childpos[:0]
	ymin, ymax = math.Inf(1), math.Inf(-1)
	x := 0.0
	for j, s := range slots {
		bb := s.drawable.BBox()
		n.add(s.drawable, x, 0.0)
		advance := bb.XMax

		// with a decimal comma, 1,2 reads as one number
		if n.ctx.cfg.decimalSeparator == "," && s.elem.Tag == "mo" && s.elem.text() == "," {
			if op, ok := s.drawable.(*node); ok &&
				0 < j && digitEnd(slots[j-1].drawable) && j+1 < len(slots) && digitStart(slots[j+1].elem) {
				advance -= op.rspaceUsed
			}
		}
		x += advance
		ymin = math.Min(ymin, bb.YMin)
		ymax = math.Max(ymax, bb.YMax)
	}
	if math.IsInf(ymin, 1) {
		ymin, ymax = 0.0, 0.0
	}
	n.bbox = BBox{0.0, x, ymin, ymax}
}

// synthesizeFence wraps the span from a stretchy prefix operator to the next
// postfix operator in an <mfenced>, returning it and the index after the
// consumed span.
func synthesizeFence(line []*Element, i int, open *Element) (*Element, int) {
	fenced := newElement("mfenced")
	for k, v := range open.Attrib {
		fenced.Attrib[k] = v
	}
	fenced.Attrib["open"] = open.text()
	fenced.Attrib["separators"] = ""
	delete(fenced.Attrib, "form")

	var inner []*Element
	next := len(line)
	fenced.Attrib["close"] = ""
	for j := i + 1; j < len(line); j++ {
		if line[j].Tag == "mo" && line[j].Attr("form", "") == "postfix" {
			inner = line[i+1 : j]
			fenced.Attrib["close"] = line[j].text()
			next = j + 1
			break
		}
	}
	if next == len(line) && fenced.Attrib["close"] == "" {
		inner = line[i+1:]
	}
	if 0 < len(inner) {
		row := newElement("mrow")
		row.Children = inner
		fenced.Children = []*Element{row}
	}
	return fenced, next
}

func digitEnd(d Drawable) bool {
	return unicode.IsDigit(d.LastRune())
}

func digitStart(elem *Element) bool {
	text := []rune(elem.text())
	return 0 < len(text) && unicode.IsDigit(text[0])
}

// buildStyle handles <mstyle>: its attributes cascade onto the children and
// the element otherwise behaves as a row.
func buildStyle(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	for _, child := range elem.Children {
		for k, v := range elem.Attrib {
			if _, ok := child.Attrib[k]; !ok {
				child.Attrib[k] = v
			}
		}
	}
	row := newElement("mrow")
	row.Attrib = elem.Attrib
	row.Children = elem.Children
	node := buildRow(row, parent, scriptlevel, fl).(*node)
	node.tag = "mstyle"
	return node
}

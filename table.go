package mathsvg

import (
	"math"
	"strings"
)

// cellAlign picks the alignment for column i from a space-separated
// columnalign list, repeating the last entry.
func cellAlign(list []string, i int, def string) string {
	if len(list) == 0 {
		return def
	}
	if i < len(list) {
		return list[i]
	}
	return list[len(list)-1]
}

// buildTable lays out <mtable>: a first pass sizes rows and columns, a
// second places cells. The table baseline sits at its vertical center,
// offset to the math axis.
func buildTable(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	n := newNode(elem, parent, scriptlevel)

	rowspace, err := parseLength(elem.Attr("rowspacing", "0.2em"), n.glyphsize)
	if err != nil {
		n.ctx.warnf("mtable: %v", err)
		rowspace = 0.2 * n.glyphsize
	}
	colspace, err := parseLength(elem.Attr("columnspacing", "0.2em"), n.glyphsize)
	if err != nil {
		n.ctx.warnf("mtable: %v", err)
		colspace = 0.2 * n.glyphsize
	}
	tableColAlign := elem.Attr("columnalign", "center")
	tableRowAlign := elem.Attr("rowalign", "baseline")

	type cell struct {
		node  Drawable
		align string
	}

	// first pass: build cells, recording row heights/depths and column widths
	rows := [][]cell{}
	rowAligns := []string{}
	columns := 0
	for _, rowElem := range elem.Children {
		if rowElem.Tag != "mtr" && rowElem.Tag != "mlabeledtr" {
			n.ctx.warnf("mtable: unexpected <%s> row", rowElem.Tag)
			continue
		}
		rowColAlign := strings.Fields(rowElem.Attr("columnalign", tableColAlign))
		cells := []cell{}
		for i, cellElem := range rowElem.Children {
			if cellElem.Tag != "mtd" {
				n.ctx.warnf("mtable: unexpected <%s> cell", cellElem.Tag)
			}
			align := cellElem.Attr("columnalign", cellAlign(rowColAlign, i, "center"))
			cells = append(cells, cell{
				node:  makeNode(cellElem, n, n.scriptlevel, fl),
				align: align,
			})
		}
		rows = append(rows, cells)
		rowAligns = append(rowAligns, rowElem.Attr("rowalign", tableRowAlign))
		columns = max(columns, len(cells))
	}
	if len(rows) == 0 || columns == 0 {
		return n
	}

	// uneven rows pad with empty cells
	for r := range rows {
		for len(rows[r]) < columns {
			rows[r] = append(rows[r], cell{node: newNode(newElement("none"), n, n.scriptlevel), align: "center"})
		}
	}

	rowHeights := make([]float64, len(rows))
	rowDepths := make([]float64, len(rows))
	for r, row := range rows {
		height, depth := math.Inf(-1), math.Inf(1)
		for _, c := range row {
			height = math.Max(height, c.node.BBox().YMax)
			depth = math.Min(depth, c.node.BBox().YMin)
		}
		rowHeights[r], rowDepths[r] = height, depth
	}
	colWidths := make([]float64, columns)
	for c := 0; c < columns; c++ {
		for _, row := range rows {
			bb := row[c].node.BBox()
			colWidths[c] = math.Max(colWidths[c], bb.XMax-bb.XMin)
		}
	}

	if elem.Attr("equalrows", "") == "true" {
		height, depth := math.Inf(-1), math.Inf(1)
		for r := range rows {
			height = math.Max(height, rowHeights[r])
			depth = math.Min(depth, rowDepths[r])
		}
		for r := range rows {
			rowHeights[r], rowDepths[r] = height, depth
		}
	}
	if elem.Attr("equalcolumns", "") == "true" {
		width := 0.0
		for _, w := range colWidths {
			width = math.Max(width, w)
		}
		for c := range colWidths {
			colWidths[c] = width
		}
	}

	// second pass: place cells about the axis-centered baseline
	totalHeight := rowspace * float64(len(rows)-1)
	for r := range rows {
		totalHeight += rowHeights[r] - rowDepths[r]
	}
	width := colspace * float64(columns)
	for _, w := range colWidths {
		width += w
	}

	ytop := -totalHeight/2.0 - float64(n.consts().AxisHeight)*n.emscale
	baselines := make([]float64, len(rows))
	y := ytop
	for r := range rows {
		baselines[r] = y + rowHeights[r]
		y += rowHeights[r] - rowDepths[r] + rowspace
	}

	for r, row := range rows {
		align := rowAligns[r]
		x := colspace / 2.0
		for c, cl := range row {
			bb := cl.node.BBox()
			cellWidth := bb.XMax - bb.XMin
			xcell := x
			switch cl.align {
			case "center":
				xcell = x + colWidths[c]/2.0 - cellWidth/2.0
			case "right":
				xcell = x + colWidths[c] - cellWidth
			}
			ycell := baselines[r]
			switch align {
			case "top":
				ycell = baselines[r] - (rowHeights[r] - bb.YMax)
			case "bottom":
				ycell = baselines[r] + (bb.YMin - rowDepths[r])
			case "center":
				ycell = baselines[r] - (rowHeights[r]-bb.YMax)/2.0 + (bb.YMin-rowDepths[r])/2.0
			}
			n.add(cl.node, xcell, ycell)
			x += colWidths[c] + colspace
		}
	}

	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, c := range rows[len(rows)-1] {
		ymin = math.Min(ymin, c.node.BBox().YMin-baselines[len(rows)-1])
	}
	for _, c := range rows[0] {
		ymax = math.Max(ymax, -baselines[0]+c.node.BBox().YMax)
	}
	n.bbox = BBox{0.0, width, ymin, ymax}
	return n
}

package mathsvg

import (
	"math"
	"strings"
)

// buildFenced lays out <mfenced>: contents wrapped in stretched fence
// glyphs with separators between successive children.
func buildFenced(elem *Element, parent *node, scriptlevel int, fl flags) Drawable {
	n := newNode(elem, parent, scriptlevel)
	openChr := elem.Attr("open", "(")
	closeChr := elem.Attr("close", ")")
	separators := strings.ReplaceAll(elem.Attr("separators", ","), " ", "")

	// interleave children with separators, the last separator repeating
	inner := []*Element{}
	if 1 < len(elem.Children) && 0 < len(separators) {
		seps := []rune(separators)
		for i, child := range elem.Children {
			if 0 < i {
				sep := seps[min(i-1, len(seps)-1)]
				mo := newElement("mo")
				mo.Text = string(sep)
				inner = append(inner, mo)
			}
			inner = append(inner, child)
		}
	} else {
		inner = elem.Children
	}

	rowElem := newElement("mrow")
	rowElem.Children = inner
	row := buildRow(rowElem, n, n.scriptlevel, fl).(*node)

	var openGlyph *glyphBox
	openRunes := []rune(openChr)
	var height float64
	fenceBox := BBox{}
	if 0 < len(openRunes) {
		if g := n.glyph(openRunes[0]); g != nil {
			openGlyph = newGlyphBox(g, openRunes[0], n, fl)
		}
	}

	if len(row.children) == 0 {
		if openGlyph != nil {
			height = openGlyph.bbox.YMax - openGlyph.bbox.YMin
			fenceBox = openGlyph.bbox
		}
	} else {
		gb := BBox{}
		if openGlyph != nil {
			gb = openGlyph.bbox
		}
		height = math.Max(row.bbox.YMax, gb.YMax) - math.Min(row.bbox.YMin, gb.YMin)
		if openGlyph != nil {
			g := n.ctx.font.Variant(openGlyph.glyph.ID, height/n.emscale, true)
			openGlyph = newGlyphBox(g, openRunes[0], n, fl)
			if row.bbox.YMax > openGlyph.bbox.YMax || row.bbox.YMin < openGlyph.bbox.YMin {
				// grow symmetrically about the baseline to cover the contents
				height = math.Max(row.bbox.YMax, -row.bbox.YMin) * 2.0
				g = n.ctx.font.Variant(n.ctx.font.GlyphIndex(openRunes[0]), height/n.emscale, true)
				openGlyph = newGlyphBox(g, openRunes[0], n, fl)
			}
		}
		fenceBox = row.bbox
	}

	x := 0.0
	yglyphmin, yglyphmax := 0.0, 0.0
	if openGlyph != nil {
		n.add(openGlyph, x, 0.0)
		x += openGlyph.XAdvance()
		yglyphmin = math.Min(openGlyph.bbox.YMin, yglyphmin)
		yglyphmax = math.Max(openGlyph.bbox.YMax, yglyphmax)
	}
	if 0 < len(inner) {
		n.add(row, x, 0.0)
		x += fenceBox.XMax
	}
	if closeRunes := []rune(closeChr); 0 < len(closeRunes) {
		// a trailing fraction's tab space reads poorly inside a fence
		if 0 < len(row.children) {
			if last, ok := row.children[len(row.children)-1].(*node); ok && last.tag == "mfrac" {
				x -= spaceEms("thinmathspace") * n.glyphsize
			}
		}
		if g := n.glyph(closeRunes[0]); g != nil {
			g = n.ctx.font.Variant(g.ID, height/n.emscale, true)
			closeGlyph := newGlyphBox(g, closeRunes[0], n, fl)
			n.add(closeGlyph, x, 0.0)
			x += closeGlyph.XAdvance()
			yglyphmin = math.Min(closeGlyph.bbox.YMin, yglyphmin)
			yglyphmax = math.Max(closeGlyph.bbox.YMax, yglyphmax)
		}
	}
	n.bbox = BBox{0.0, x, math.Min(yglyphmin, fenceBox.YMin), math.Max(yglyphmax, fenceBox.YMax)}
	return n
}

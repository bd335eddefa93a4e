package mathsvg

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mathsvg/mathsvg/mathfont"
)

// Text typesets mixed prose and math: dollar-delimited math spans inside
// ordinary text, stacked into lines.
type Text struct {
	lines    [][]*Math
	size     float64
	halign   string
	rotation float64
	cfg      config
	warnings []string
}

// TextOption configures mixed-text layout.
type TextOption func(*textOptions)

type textOptions struct {
	size     float64
	halign   string
	rotation float64
}

// TextSize sets the base font size in pixels.
func TextSize(size float64) TextOption {
	return func(o *textOptions) { o.size = size }
}

// HAlign aligns lines left, center, or right within the block.
func HAlign(a string) TextOption {
	return func(o *textOptions) { o.halign = a }
}

// Rotation rotates the block by degrees counterclockwise about its anchor.
func Rotation(deg float64) TextOption {
	return func(o *textOptions) { o.rotation = deg }
}

type spanKind int

const (
	proseSpan spanKind = iota
	inlineSpan
	displaySpan
	lineBreak
)

type textSpan struct {
	kind spanKind
	text string
}

// tokenizeMixed splits a string into prose, $...$, and $$...$$ spans.
// Escaped \$ stays a literal dollar; newlines become line breaks.
func tokenizeMixed(s string) []textSpan {
	spans := []textSpan{}
	var prose strings.Builder
	flush := func() {
		if 0 < prose.Len() {
			spans = append(spans, textSpan{proseSpan, prose.String()})
			prose.Reset()
		}
	}

	rs := []rune(s)
	i := 0
	for i < len(rs) {
		switch {
		case rs[i] == '\\' && i+1 < len(rs) && rs[i+1] == '$':
			prose.WriteRune('$')
			i += 2
		case rs[i] == '\n':
			flush()
			spans = append(spans, textSpan{lineBreak, ""})
			i++
		case rs[i] == '$':
			display := i+1 < len(rs) && rs[i+1] == '$'
			open := 1
			if display {
				open = 2
			}
			j := i + open
			end := -1
			for j < len(rs) {
				if rs[j] == '\\' && j+1 < len(rs) && rs[j+1] == '$' {
					j += 2
					continue
				}
				if rs[j] == '$' {
					if !display || (j+1 < len(rs) && rs[j+1] == '$') {
						end = j
						break
					}
				}
				j++
			}
			if end == -1 { // unmatched dollar reads as prose
				prose.WriteRune(rs[i])
				i++
				continue
			}
			flush()
			kind := inlineSpan
			if display {
				kind = displaySpan
			}
			spans = append(spans, textSpan{kind, string(rs[i+open : end])})
			i = end + open
		default:
			prose.WriteRune(rs[i])
			i++
		}
	}
	flush()
	return spans
}

// xmlEscape escapes text for embedding in a MathML text element.
func xmlEscape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

// ParseText typesets a string containing zero or more dollar-delimited
// LaTeX math spans. Prose renders upright in the configured text style.
func ParseText(s string, opts ...TextOption) (*Text, error) {
	o := textOptions{halign: "left"}
	for _, opt := range opts {
		opt(&o)
	}
	cfg := snapshot()
	size := o.size
	if size == 0.0 {
		size = cfg.text.FontSize
	}

	// prose spans use the text font when it carries a MATH table
	textFont := cfg.text.TextFont
	if textFont != "" {
		if _, err := mathfont.Load(textFont); err != nil {
			textFont = ""
		}
	}

	t := &Text{size: size, halign: o.halign, rotation: o.rotation, cfg: cfg}
	line := []*Math{}
	for _, span := range tokenizeMixed(s) {
		switch span.kind {
		case lineBreak:
			t.lines = append(t.lines, line)
			line = []*Math{}
		case proseSpan:
			variant := cfg.text.Variant
			mml := fmt.Sprintf(`<math display="inline"><mtext mathvariant="%s" mathcolor="%s">%s</mtext></math>`,
				variant, cfg.text.Color, xmlEscape(span.text))
			mopts := []Option{Size(size)}
			if textFont != "" {
				mopts = append(mopts, WithFont(textFont))
			}
			m, err := Parse(mml, mopts...)
			if err != nil {
				return nil, err
			}
			t.warnings = append(t.warnings, m.Warnings()...)
			line = append(line, m)
		case inlineSpan, displaySpan:
			mopts := []Option{Size(size)}
			if span.kind == inlineSpan {
				mopts = append(mopts, Inline())
			}
			m, err := ParseLaTeX(span.text, mopts...)
			if err != nil {
				if errors.Is(err, ErrFont) {
					return nil, err
				}
				return nil, fmt.Errorf("math span %q: %w", span.text, err)
			}
			t.warnings = append(t.warnings, m.Warnings()...)
			line = append(line, m)
		}
	}
	t.lines = append(t.lines, line)
	return t, nil
}

// Warnings returns the non-fatal problems met while typesetting.
func (t *Text) Warnings() []string {
	return t.warnings
}

// SVG returns the block as a standalone SVG document.
func (t *Text) SVG() (string, error) {
	sb := &strings.Builder{}
	if err := t.WriteSVG(sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteSVG writes the block as a standalone SVG document. Lines stack with
// a leading of linespacing times the font size, aligned per halign, with an
// optional rotation about the block anchor.
func (t *Text) WriteSVG(out io.Writer) error {
	cfg := t.cfg
	if 1 < t.fontCount() {
		cfg.svg2 = false // avoid symbol id collisions between fonts
	}
	w := newWriter(&cfg)

	leading := cfg.text.LineSpacing * t.size
	if leading <= 0.0 {
		leading = t.size
	}

	type placedLine struct {
		width, ascent, descent float64
		spans                  []*Math
	}
	lines := make([]placedLine, 0, len(t.lines))
	blockWidth := 0.0
	for _, spans := range t.lines {
		pl := placedLine{spans: spans}
		for _, m := range spans {
			bb := m.node.BBox()
			pl.width += bb.XMax
			pl.ascent = math.Max(pl.ascent, bb.YMax)
			pl.descent = math.Max(pl.descent, -bb.YMin)
		}
		lines = append(lines, pl)
		blockWidth = math.Max(blockWidth, pl.width)
	}

	rotate := t.rotation != 0.0
	if rotate {
		fmt.Fprintf(&w.body, `<g transform="rotate(%v)">`, w.num(-t.rotation))
	}
	y := 0.0
	ymax, ymin := 0.0, 0.0
	for i, pl := range lines {
		if 0 < i {
			y += math.Max(leading, pl.ascent+lines[i-1].descent)
		}
		x := 1.0
		switch t.halign {
		case "center":
			x += (blockWidth - pl.width) / 2.0
		case "right":
			x += blockWidth - pl.width
		}
		for _, m := range pl.spans {
			m.node.Draw(x, y, w)
			x += m.node.BBox().XMax
		}
		ymax = math.Max(ymax, pl.ascent-y)
		ymin = math.Min(ymin, -y-pl.descent)
	}
	if rotate {
		w.body.WriteString(`</g>`)
	}

	width := blockWidth + 2.0
	height := ymax - ymin + 2.0
	if rotate {
		width, height, ymax = rotatedExtent(blockWidth, ymax, ymin, t.rotation)
	}
	return w.writeTo(out, 0.0, -ymax-1.0, width, height)
}

// rotatedExtent bounds the block's corners after rotation about the anchor.
func rotatedExtent(width, ymax, ymin, deg float64) (float64, float64, float64) {
	sin, cos := math.Sincos(deg * math.Pi / 180.0)
	xlo, xhi := math.Inf(1), math.Inf(-1)
	ylo, yhi := math.Inf(1), math.Inf(-1)
	for _, c := range [4][2]float64{{0.0, ymax}, {width, ymax}, {0.0, ymin}, {width, ymin}} {
		x := c[0]*cos - c[1]*sin
		y := c[0]*sin + c[1]*cos
		xlo, xhi = math.Min(xlo, x), math.Max(xhi, x)
		ylo, yhi = math.Min(ylo, y), math.Max(yhi, y)
	}
	return xhi - xlo + 2.0, yhi - ylo + 2.0, yhi
}

func (t *Text) fontCount() int {
	fonts := map[*mathfont.Font]bool{}
	for _, line := range t.lines {
		for _, m := range line {
			fonts[m.ctx.font] = true
		}
	}
	return len(fonts)
}

package mathsvg

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/tdewolff/minify/v2"

	"github.com/mathsvg/mathsvg/mathfont"
)

////////////////////////////////////////////////////////////////

type num struct {
	v float64
	p int
}

func (f num) String() string {
	s := fmt.Sprintf("%.*g", f.p, f.v)
	if float64(math.MaxInt32) < f.v || f.v < float64(math.MinInt32) {
		if i := strings.IndexAny(s, ".eE"); i == -1 {
			s += ".0"
		}
	}
	return string(minify.Number([]byte(s), f.p))
}

type dec struct {
	v float64
	p int
}

func (f dec) String() string {
	s := fmt.Sprintf("%.*f", f.p, f.v)
	s = string(minify.Decimal([]byte(s), f.p))
	if float64(math.MaxInt32) < f.v || f.v < float64(math.MinInt32) {
		if i := strings.IndexByte(s, '.'); i == -1 {
			s += ".0"
		}
	}
	return s
}

////////////////////////////////////////////////////////////////

// writer accumulates positioned SVG primitives for one render. In SVG 2 mode
// each distinct glyph becomes a <symbol> referenced with <use>; otherwise
// glyph outlines are inlined as <path> elements.
type writer struct {
	cfg     *config
	symbols []*mathfont.Glyph
	seen    map[string]bool
	defs    []string
	body    bytes.Buffer
}

func newWriter(cfg *config) *writer {
	return &writer{cfg: cfg, seen: map[string]bool{}}
}

func (w *writer) num(v float64) num { return num{v, w.cfg.precision} }
func (w *writer) dec(v float64) dec { return dec{v, w.cfg.precision} }

func (w *writer) class(s string) string {
	if w.cfg.svgClasses && s != "" {
		return fmt.Sprintf(` class="%s"`, s)
	}
	return ""
}

func (w *writer) fill(color string) string {
	if color != "" {
		return fmt.Sprintf(` fill="%s"`, color)
	}
	return ""
}

// addDef registers a raw definition, deduplicated by content.
func (w *writer) addDef(s string) {
	for _, d := range w.defs {
		if d == s {
			return
		}
	}
	w.defs = append(w.defs, s)
}

// glyph places a glyph at (x, y) baseline coordinates with the given scale.
func (w *writer) glyph(g *mathfont.Glyph, x, y, scale float64, color string) {
	if w.cfg.svg2 {
		if !w.seen[g.Name] {
			w.seen[g.Name] = true
			w.symbols = append(w.symbols, g)
		}
		fmt.Fprintf(&w.body, `<use href="#%s" transform="translate(%v %v) scale(%v)"%s%s/>`,
			g.Name, w.dec(x), w.dec(y), w.num(scale), w.fill(color), w.class("glyph"))
	} else {
		fmt.Fprintf(&w.body, `<path d="%s" transform="translate(%v %v) scale(%v)"%s%s/>`,
			g.Path, w.dec(x), w.dec(y), w.num(scale), w.fill(color), w.class("glyph"))
	}
}

// rect draws a filled rectangle; bars and backgrounds use fill rather than
// stroke so mathcolor applies uniformly.
func (w *writer) rect(x, y, width, height float64, color, class string) {
	fmt.Fprintf(&w.body, `<rect x="%v" y="%v" width="%v" height="%v"%s%s/>`,
		w.dec(x), w.dec(y), w.dec(width), w.dec(height), w.fill(color), w.class(class))
}

// box draws a stroked rectangle outline.
func (w *writer) box(x, y, width, height, lw, radius float64, stroke, fillColor string) {
	fmt.Fprintf(&w.body, `<rect x="%v" y="%v" width="%v" height="%v" fill="%s" stroke="%s" stroke-width="%v"`,
		w.dec(x), w.dec(y), w.dec(width), w.dec(height), orNone(fillColor), orCurrent(stroke), w.num(lw))
	if 0.0 < radius {
		fmt.Fprintf(&w.body, ` rx="%v"`, w.dec(radius))
	}
	fmt.Fprintf(&w.body, `%s/>`, w.class("box"))
}

func (w *writer) ellipse(cx, cy, rx, ry, lw float64, stroke, fillColor string) {
	fmt.Fprintf(&w.body, `<ellipse cx="%v" cy="%v" rx="%v" ry="%v" fill="%s" stroke="%s" stroke-width="%v"%s/>`,
		w.dec(cx), w.dec(cy), w.dec(rx), w.dec(ry), orNone(fillColor), orCurrent(stroke), w.num(lw), w.class("ellipse"))
}

// line draws a stroked line segment, optionally ending in an arrowhead.
func (w *writer) line(x1, y1, x2, y2, lw float64, stroke string, arrow bool) {
	marker := ""
	if arrow {
		w.addDef(`<marker id="arrowhead" markerWidth="10" markerHeight="7" refX="0" refY="3.5" orient="auto"><polygon points="0 0 10 3.5 0 7"/></marker>`)
		marker = ` marker-end="url(#arrowhead)"`
	}
	fmt.Fprintf(&w.body, `<path d="M %v %v L %v %v" stroke="%s" stroke-width="%v"%s%s/>`,
		w.dec(x1), w.dec(y1), w.dec(x2), w.dec(y2), orCurrent(stroke), w.num(lw), marker, w.class("dline"))
}

func orNone(color string) string {
	if color == "" {
		return "none"
	}
	return color
}

func orCurrent(color string) string {
	if color == "" {
		return "currentColor"
	}
	return color
}

// writeTo assembles the final document around the accumulated body.
func (w *writer) writeTo(out io.Writer, xmin, ymin, width, height float64) error {
	fmt.Fprintf(out, `<svg width="%v" height="%v" xmlns="http://www.w3.org/2000/svg"`,
		w.dec(width), w.dec(height))
	if !w.cfg.svg2 {
		fmt.Fprintf(out, ` xmlns:xlink="http://www.w3.org/1999/xlink"`)
	}
	fmt.Fprintf(out, ` viewBox="%v %v %v %v">`, w.dec(xmin), w.dec(ymin), w.dec(width), w.dec(height))
	if w.cfg.svgStyle != "" {
		fmt.Fprintf(out, `<style>%s</style>`, w.cfg.svgStyle)
	}
	if 0 < len(w.symbols) || 0 < len(w.defs) || w.cfg.svgDefs != "" {
		fmt.Fprintf(out, `<defs>`)
		for _, d := range w.defs {
			io.WriteString(out, d)
		}
		io.WriteString(out, w.cfg.svgDefs)
		for _, g := range w.symbols {
			fmt.Fprintf(out, `<symbol id="%s" overflow="visible"><path d="%s"/></symbol>`, g.Name, g.Path)
		}
		fmt.Fprintf(out, `</defs>`)
	}
	if _, err := out.Write(w.body.Bytes()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, `</svg>`)
	return err
}

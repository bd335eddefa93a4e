package mathfont

import (
	"strconv"
	"strings"
)

// pathBuilder collects a glyph outline as SVG path data. Font outlines have
// the y-axis pointing up; SVG points down, so y is negated while building.
type pathBuilder struct {
	sb strings.Builder
}

func (p *pathBuilder) num(v float64) {
	p.sb.WriteByte(' ')
	p.sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
}

func (p *pathBuilder) MoveTo(x, y float64) {
	p.sb.WriteByte('M')
	p.num(x)
	p.num(-y)
}

func (p *pathBuilder) LineTo(x, y float64) {
	p.sb.WriteByte('L')
	p.num(x)
	p.num(-y)
}

func (p *pathBuilder) QuadTo(cpx, cpy, x, y float64) {
	p.sb.WriteByte('Q')
	p.num(cpx)
	p.num(-cpy)
	p.num(x)
	p.num(-y)
}

func (p *pathBuilder) CubeTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	p.sb.WriteByte('C')
	p.num(cp1x)
	p.num(-cp1y)
	p.num(cp2x)
	p.num(-cp2y)
	p.num(x)
	p.num(-y)
}

func (p *pathBuilder) Close() {
	p.sb.WriteByte('z')
}

func (p *pathBuilder) String() string {
	return p.sb.String()
}

package mathsvg

import (
	"fmt"
	"strconv"

	"github.com/tdewolff/parse/v2"
)

// ErrConfig reports invalid configuration values such as unknown units.
var ErrConfig = fmt.Errorf("invalid configuration")

// namedSpaces are the MathML named space widths in ems.
var namedSpaces = map[string]float64{
	"veryverythinmathspace":          1.0 / 18.0,
	"verythinmathspace":              2.0 / 18.0,
	"thinmathspace":                  3.0 / 18.0,
	"mediummathspace":                4.0 / 18.0,
	"thickmathspace":                 5.0 / 18.0,
	"verythickmathspace":             6.0 / 18.0,
	"veryverythickmathspace":         7.0 / 18.0,
	"negativeveryverythinmathspace":  -1.0 / 18.0,
	"negativeverythinmathspace":      -2.0 / 18.0,
	"negativethinmathspace":          -3.0 / 18.0,
	"negativemediummathspace":        -4.0 / 18.0,
	"negativethickmathspace":         -5.0 / 18.0,
	"negativeverythickmathspace":     -6.0 / 18.0,
	"negativeveryverythickmathspace": -7.0 / 18.0,
}

// spaceEms returns a space in ems given a number with an em suffix or a
// named space width. Anything else is zero.
func spaceEms(space string) float64 {
	if v, ok := namedSpaces[space]; ok {
		return v
	}
	if len(space) > 2 && space[len(space)-2:] == "em" {
		if f, err := strconv.ParseFloat(space[:len(space)-2], 64); err == nil {
			return f
		}
	}
	return 0.0
}

// muWidth converts math units (1/18 em) to output units at a glyph size.
func muWidth(mu int, glyphsize float64) float64 {
	return float64(mu) / 18.0 * glyphsize
}

// parseLength converts a CSS-style length to output units (px). fontsize
// scales the font-relative units; named spaces are accepted too.
func parseLength(v string, fontsize float64) (float64, error) {
	if v == "" {
		return 0.0, nil
	}
	if ems, ok := namedSpaces[v]; ok {
		return ems * fontsize, nil
	}

	nn, _ := parse.Dimension([]byte(v))
	if nn == 0 {
		return 0.0, fmt.Errorf("%w: bad length %q", ErrConfig, v)
	}
	num, err := strconv.ParseFloat(v[:nn], 64)
	if err != nil {
		return 0.0, fmt.Errorf("%w: bad length %q", ErrConfig, v)
	}
	switch v[nn:] {
	case "", "px":
		return num, nil
	case "em":
		return num * fontsize, nil
	case "ex":
		return num * fontsize / 2.0, nil
	case "mu":
		return num / 18.0 * fontsize, nil
	case "pt":
		return num * 96.0 / 72.0, nil
	case "bp":
		return num * 96.0 / 72.0, nil
	case "pc":
		return num * 96.0 / 6.0, nil
	case "dd":
		return num * 1238.0 / 1157.0 * 96.0 / 72.0, nil
	case "mm":
		return num * 96.0 / 25.4, nil
	case "cm":
		return num * 10.0 * 96.0 / 25.4, nil
	case "in":
		return num * 96.0, nil
	case "%":
		return num / 100.0 * fontsize, nil
	}
	return 0.0, fmt.Errorf("%w: unknown unit in %q", ErrConfig, v)
}

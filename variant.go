package mathsvg

// Mapping of unstyled letters and digits onto the Unicode Mathematical
// Alphanumeric Symbols block. Offsets index the styled alphabets; zero means
// the character is kept as-is. See the table at
// https://en.wikipedia.org/wiki/Mathematical_Alphanumeric_Symbols
type styleKey struct {
	bold   bool
	italic bool
}

type charRange struct {
	lo, hi rune
	styles map[string]map[styleKey]rune
}

var latinCaps = charRange{0x41, 0x5A, map[string]map[styleKey]rune{
	"serif": {
		{false, false}: 0,
		{true, false}:  0x1D400,
		{false, true}:  0x1D434,
		{true, true}:   0x1D468,
	},
	"sans": {
		{false, false}: 0x1D5A0,
		{true, false}:  0x1D5D4,
		{false, true}:  0x1D608,
		{true, true}:   0x1D63C,
	},
	"script": {
		{false, false}: 0x1D49C,
		{true, false}:  0x1D4D0,
		{true, true}:   0x1D4D0, // no separate italic
	},
	"fraktur": {
		{false, false}: 0x1D504,
		{true, false}:  0x1D56C,
		{true, true}:   0x1D56C,
	},
	"mono":   {{false, false}: 0x1D670},
	"double": {{false, false}: 0x1D538},
}}

var latinSmall = charRange{0x61, 0x7A, map[string]map[styleKey]rune{
	"serif": {
		{false, false}: 0,
		{true, false}:  0x1D41A,
		{false, true}:  0x1D44E,
		{true, true}:   0x1D482,
	},
	"sans": {
		{false, false}: 0x1D5BA,
		{true, false}:  0x1D5EE,
		{false, true}:  0x1D622,
		{true, true}:   0x1D656,
	},
	"script": {
		{false, false}: 0x1D4B6,
		{true, false}:  0x1D4EA,
		{true, true}:   0x1D4EA,
	},
	"fraktur": {
		{false, false}: 0x1D51E,
		{true, false}:  0x1D586,
		{true, true}:   0x1D586,
	},
	"mono":   {{false, false}: 0x1D68A},
	"double": {{false, false}: 0x1D552},
}}

var greekCaps = charRange{0x0391, 0x03AA, map[string]map[styleKey]rune{
	"serif": {
		{false, false}: 0,
		{true, false}:  0x1D6A8,
		{false, true}:  0x1D6E2,
		{true, true}:   0x1D71C,
	},
	"sans": {
		{false, false}: 0,
		{true, false}:  0x1D756,
		{true, true}:   0x1D790,
	},
}}

var greekLower = charRange{0x03B1, 0x03D0, map[string]map[styleKey]rune{
	"serif": {
		{false, false}: 0,
		{true, false}:  0x1D6C2,
		{false, true}:  0x1D6FC,
		{true, true}:   0x1D736,
	},
	"sans": {
		{false, false}: 0,
		{true, false}:  0x1D770,
		{true, true}:   0x1D7AA,
	},
}}

var digits = charRange{0x30, 0x39, map[string]map[styleKey]rune{
	"serif": {
		{false, false}: 0,
		{true, false}:  0x1D7CE,
	},
	"double": {{false, false}: 0x1D7D8},
	"mono":   {{false, false}: 0x1D7F6},
	"sans": {
		{false, false}: 0x1D7E2,
		{true, false}:  0x1D7EC,
		{true, true}:   0x1D7EC,
	},
}}

var charRanges = []charRange{latinCaps, latinSmall, greekCaps, greekLower, digits}

// Symbols outside the contiguous alphabets that style as if appended to one.
var offsetExceptions = map[rune]rune{
	'ϴ': 0x0391 + 0x11,
	'∇': 0x0391 + 0x19,
	'∂': 0x03B1 + 0x19,
	'ϵ': 0x03B1 + 0x1A,
	'ϑ': 0x03B1 + 0x1B,
	'ϰ': 0x03B1 + 0x1C,
	'ϕ': 0x03B1 + 0x1D,
	'ϱ': 0x03B1 + 0x1E,
	'ϖ': 0x03B1 + 0x1F,
}

// Holes in the styled alphabets that Unicode filled from older blocks.
var holeExceptions = map[rune]rune{
	0x1D49C + 0x01: 'ℬ', // script caps
	0x1D49C + 0x04: 'ℰ',
	0x1D49C + 0x05: 'ℱ',
	0x1D49C + 0x07: 'ℋ',
	0x1D49C + 0x08: 'ℐ',
	0x1D49C + 0x0B: 'ℒ',
	0x1D49C + 0x0C: 'ℳ',
	0x1D49C + 0x11: 'ℛ',
	0x1D504 + 0x02: 'ℭ', // fraktur caps
	0x1D504 + 0x07: 'ℌ',
	0x1D504 + 0x08: 'ℑ',
	0x1D504 + 0x11: 'ℜ',
	0x1D504 + 0x19: 'ℨ',
	0x1D538 + 0x02: 'ℂ', // double-struck caps
	0x1D538 + 0x07: 'ℍ',
	0x1D538 + 0x0D: 'ℕ',
	0x1D538 + 0x0F: 'ℙ',
	0x1D538 + 0x10: 'ℚ',
	0x1D538 + 0x11: 'ℝ',
	0x1D538 + 0x19: 'ℤ',
	0x1D44E + 0x07: 'ℎ', // italic small h
	0x1D4B6 + 0x04: 'ℯ', // script smalls
	0x1D4B6 + 0x06: 'ℊ',
	0x1D4B6 + 0x0E: 'ℴ',
}

// autoItalic reports whether a lone identifier character defaults to italic.
func autoItalic(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' ||
		greekLower.lo <= r && r <= greekLower.hi
}

// styledRune converts a character to its styled variant codepoint.
func styledRune(r rune, v Variant) rune {
	base := r
	if o, ok := offsetExceptions[r]; ok {
		base = o
	}
	key := styleKey{v.Bold, v.Italic}
	for _, cr := range charRanges {
		if base < cr.lo || cr.hi < base {
			continue
		}
		table, ok := cr.styles[v.Style]
		if !ok {
			table = cr.styles["serif"]
		}
		offset, ok := table[key]
		if !ok {
			offset = table[styleKey{}]
		}
		styled := r
		if offset != 0 {
			styled = base - cr.lo + offset
		}
		if hole, ok := holeExceptions[styled]; ok {
			styled = hole
		}
		return styled
	}
	return r
}

// styledString applies styledRune to every character.
func styledString(s string, v Variant) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, styledRune(r, v))
	}
	return string(out)
}

package mathsvg

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestStyledRune(t *testing.T) {
	var tts = []struct {
		r      rune
		v      Variant
		styled rune
	}{
		{'A', Variant{Style: "serif"}, 'A'},
		{'A', Variant{Style: "serif", Bold: true}, 0x1D400},
		{'A', Variant{Style: "serif", Italic: true}, 0x1D434},
		{'z', Variant{Style: "serif", Bold: true, Italic: true}, 0x1D482 + 25},
		{'A', Variant{Style: "sans"}, 0x1D5A0},
		{'a', Variant{Style: "mono"}, 0x1D68A},
		{'0', Variant{Style: "double"}, 0x1D7D8},
		{'5', Variant{Style: "serif", Bold: true}, 0x1D7CE + 5},
		{'α', Variant{Style: "serif", Italic: true}, 0x1D6FC},
		{'Ω', Variant{Style: "serif", Bold: true}, 0x1D6A8 + 0x18},
		// unknown style falls back to serif
		{'A', Variant{Style: "nope", Bold: true}, 0x1D400},
		// symbols outside the alphabets pass through
		{'+', Variant{Style: "serif", Bold: true}, '+'},
		{'∑', Variant{Style: "serif", Italic: true}, '∑'},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, styledRune(tt.r, tt.v), tt.styled)
		})
	}
}

func TestStyledRuneExceptions(t *testing.T) {
	// holes in the styled alphabets come from older Unicode blocks
	test.T(t, styledRune('B', Variant{Style: "script"}), 'ℬ')
	test.T(t, styledRune('R', Variant{Style: "double"}), 'ℝ')
	test.T(t, styledRune('Z', Variant{Style: "double"}), 'ℤ')
	test.T(t, styledRune('C', Variant{Style: "fraktur"}), 'ℭ')
	test.T(t, styledRune('h', Variant{Style: "serif", Italic: true}), 'ℎ')
	test.T(t, styledRune('e', Variant{Style: "script"}), 'ℯ')

	// characters styled as if appended to an alphabet
	test.T(t, styledRune('∂', Variant{Style: "serif", Bold: true}), rune(0x1D6C2+0x19))
	test.T(t, styledRune('ϵ', Variant{Style: "serif", Italic: true}), rune(0x1D6FC+0x1A))
}

func TestAutoItalic(t *testing.T) {
	var tts = []struct {
		r  rune
		ok bool
	}{
		{'x', true},
		{'A', true},
		{'α', true},
		{'0', false},
		{'+', false},
		{'∑', false},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, autoItalic(tt.r), tt.ok)
		})
	}
}

func TestStyledString(t *testing.T) {
	test.String(t, styledString("abc", Variant{Style: "serif"}), "abc")
	test.String(t, styledString("AB", Variant{Style: "serif", Bold: true}),
		string([]rune{0x1D400, 0x1D401}))
}

func TestParseVariant(t *testing.T) {
	var tts = []struct {
		attr string
		want Variant
	}{
		{"bold", Variant{Style: "serif", Bold: true}},
		{"italic", Variant{Style: "serif", Italic: true}},
		{"bold-italic", Variant{Style: "serif", Bold: true, Italic: true}},
		{"sans-serif", Variant{Style: "sans"}},
		{"double-struck", Variant{Style: "double"}},
		{"fraktur", Variant{Style: "fraktur"}},
		{"monospace", Variant{Style: "mono"}},
		{"normal", Variant{Style: "serif", Normal: true}},
		{"script", Variant{Style: "script"}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, parseVariant(tt.attr, Variant{Style: "serif"}), tt.want)
		})
	}
}

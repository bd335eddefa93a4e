package mathsvg

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestSpaceEms(t *testing.T) {
	var tts = []struct {
		space string
		ems   float64
	}{
		{"thinmathspace", 3.0 / 18.0},
		{"mediummathspace", 4.0 / 18.0},
		{"thickmathspace", 5.0 / 18.0},
		{"negativethinmathspace", -3.0 / 18.0},
		{"0.5em", 0.5},
		{"-1em", -1.0},
		{"bogus", 0.0},
		{"", 0.0},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.Float(t, spaceEms(tt.space), tt.ems)
		})
	}
}

func TestParseLength(t *testing.T) {
	var tts = []struct {
		v        string
		fontsize float64
		length   float64
	}{
		{"", 24.0, 0.0},
		{"10", 24.0, 10.0},
		{"10px", 24.0, 10.0},
		{"2em", 24.0, 48.0},
		{"2ex", 24.0, 24.0},
		{"18mu", 24.0, 24.0},
		{"72pt", 24.0, 96.0},
		{"72bp", 24.0, 96.0},
		{"6pc", 24.0, 96.0},
		{"25.4mm", 24.0, 96.0},
		{"2.54cm", 24.0, 96.0},
		{"1in", 24.0, 96.0},
		{"6.5in", 24.0, 624.0},
		{"thinmathspace", 24.0, 4.0},
		{"-0.5em", 24.0, -12.0},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			length, err := parseLength(tt.v, tt.fontsize)
			test.Error(t, err)
			test.Float(t, length, tt.length)
		})
	}
}

func TestParseLengthBad(t *testing.T) {
	for i, v := range []string{"furlong", "10parsec", "em"} {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := parseLength(v, 24.0)
			test.That(t, err != nil, "bad length errors")
		})
	}
}

func TestMuWidth(t *testing.T) {
	test.Float(t, muWidth(18, 24.0), 24.0)
	test.Float(t, muWidth(5, 18.0), 5.0)
	test.Float(t, muWidth(0, 24.0), 0.0)
}

package mathsvg

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestTokenizeMixed(t *testing.T) {
	var tts = []struct {
		in    string
		spans []textSpan
	}{
		{"plain text", []textSpan{{proseSpan, "plain text"}}},
		{"$x$", []textSpan{{inlineSpan, "x"}}},
		{"a $x$ b", []textSpan{{proseSpan, "a "}, {inlineSpan, "x"}, {proseSpan, " b"}}},
		{"$$x^2$$", []textSpan{{displaySpan, "x^2"}}},
		{`price \$5`, []textSpan{{proseSpan, "price $5"}}},
		{"a\nb", []textSpan{{proseSpan, "a"}, {lineBreak, ""}, {proseSpan, "b"}}},
		{"lone $ dollar", []textSpan{{proseSpan, "lone $ dollar"}}},
		{"$a$$b$", []textSpan{{inlineSpan, "a"}, {inlineSpan, "b"}}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			spans := tokenizeMixed(tt.in)
			test.T(t, len(spans), len(tt.spans))
			for j := range spans {
				if j < len(tt.spans) {
					test.T(t, spans[j].kind, tt.spans[j].kind)
					test.String(t, spans[j].text, tt.spans[j].text)
				}
			}
		})
	}
}

func TestXMLEscape(t *testing.T) {
	test.String(t, xmlEscape("a<b & c>d"), "a&lt;b &amp; c&gt;d")
	test.String(t, xmlEscape("plain"), "plain")
}

func TestRotatedExtent(t *testing.T) {
	width, height, ymax := rotatedExtent(100.0, 10.0, -5.0, 0.0)
	test.Float(t, width, 102.0)
	test.Float(t, height, 17.0)
	test.Float(t, ymax, 10.0)

	width, height, _ = rotatedExtent(100.0, 10.0, -5.0, 90.0)
	test.Float(t, width, 17.0)
	test.Float(t, height, 102.0)
}

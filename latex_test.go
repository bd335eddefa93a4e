package mathsvg

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestExtractTag(t *testing.T) {
	var tts = []struct {
		in, tex, tag string
	}{
		{`x^2`, `x^2`, ``},
		{`x^2 \tag{3}`, `x^2`, `3`},
		{`\tag{a.1} E = mc^2`, `E = mc^2`, `a.1`},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			tex, tag := extractTag(tt.in)
			test.String(t, tex, tt.tex)
			test.String(t, tag, tt.tag)
		})
	}
}

func TestTexPreprocess(t *testing.T) {
	cfg := config{decimalSeparator: "."}
	test.String(t, texPreprocess(`\binom{n}{k}`, &cfg), `\left( n \atop k \right)`)
	test.String(t, texPreprocess(`||x||`, &cfg), `‖x‖`)
	test.String(t, texPreprocess(`1,2`, &cfg), `1,2`)

	cfg.decimalSeparator = ","
	test.String(t, texPreprocess(`1,2`, &cfg), `1{,}2`)
	test.String(t, texPreprocess(`f(x, y)`, &cfg), `f(x, y)`)
}

func TestTexPostprocess(t *testing.T) {
	test.String(t, texPostprocess(`<mover><mi>x</mi><mo>^</mo></mover>`),
		`<mover><mi>x</mi><mo>̂</mo></mover>`)
	test.String(t, texPostprocess(`<mo>&#x0005E;</mo>`), `<mo>&#x00302;</mo>`)
	test.String(t, texPostprocess(`<mo>+</mo>`), `<mo>+</mo>`)
}

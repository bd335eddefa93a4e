package mathsvg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestParseMathML(t *testing.T) {
	root, err := ParseMathMLString(`<math><mrow><mi>x</mi><mo>+</mo><mn>2</mn></mrow></math>`)
	test.Error(t, err)
	test.String(t, root.Tag, "math")
	test.T(t, len(root.Children), 1)

	row := root.Children[0]
	test.String(t, row.Tag, "mrow")
	test.T(t, len(row.Children), 3)
	test.String(t, row.Children[0].Tag, "mi")
	test.String(t, row.Children[0].text(), "x")
	test.String(t, row.Children[1].text(), "+")
	test.String(t, row.Children[2].Tag, "mn")
	test.String(t, row.Children[2].text(), "2")
}

func TestParseMathMLNamespace(t *testing.T) {
	root, err := ParseMathMLString(`<mml:math xmlns:mml="http://www.w3.org/1998/Math/MathML"><mml:mi>x</mml:mi></mml:math>`)
	test.Error(t, err)
	test.String(t, root.Tag, "math")
	test.String(t, root.Children[0].Tag, "mi")
}

func TestParseMathMLAttributes(t *testing.T) {
	root, err := ParseMathMLString(`<math display="inline"><mo stretchy="false" form="prefix">(</mo></math>`)
	test.Error(t, err)
	test.String(t, root.Attr("display", ""), "inline")
	mo := root.Children[0]
	test.String(t, mo.Attr("stretchy", ""), "false")
	test.String(t, mo.Attr("form", ""), "prefix")
	test.String(t, mo.Attr("missing", "default"), "default")
}

func TestParseMathMLVoid(t *testing.T) {
	root, err := ParseMathMLString(`<math><mrow><none/><mspace width="1em"/></mrow></math>`)
	test.Error(t, err)
	row := root.Children[0]
	test.T(t, len(row.Children), 2)
	test.String(t, row.Children[0].Tag, "none")
	test.String(t, row.Children[1].Attr("width", ""), "1em")
}

func TestParseMathMLEntities(t *testing.T) {
	root, err := ParseMathMLString(`<math><mi>&alpha;</mi><mo>&#x2211;</mo><mn>&#50;</mn></math>`)
	test.Error(t, err)
	test.String(t, root.Children[0].text(), "α")
	test.String(t, root.Children[1].text(), "∑")
	test.String(t, root.Children[2].text(), "2")
}

func TestParseMathMLErrors(t *testing.T) {
	var tts = []string{
		`<mrow><mi>x</mi></mrow>`, // root must be math
		`not xml at all`,
		``,
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := ParseMathMLString(tt)
			test.That(t, err != nil, "parse fails")
			test.That(t, errors.Is(err, ErrParse), "wrapped as parse error")
		})
	}
}

func TestUnescape(t *testing.T) {
	var tts = []struct {
		in, out string
	}{
		{"x", "x"},
		{"&alpha;", "α"},
		{"&#x3B1;", "α"},
		{"&#945;", "α"},
		{"&lt;&gt;&amp;", "<>&"},
		{"&InvisibleTimes;", ""},
		{"&notanentity;", "&notanentity;"},
		{"a&alpha;b", "aαb"},
		{"&unterminated", "&unterminated"},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.String(t, unescape(tt.in), tt.out)
		})
	}
}

func TestSymbolEscapes(t *testing.T) {
	test.String(t, symbolEscapes.Replace("a-b"), "a−b")
	test.String(t, symbolEscapes.Replace("a:=b"), "a≔b")
	test.String(t, symbolEscapes.Replace("a!=b"), "a≠b")
}

func TestNormalizeText(t *testing.T) {
	var tts = []struct {
		in, out string
	}{
		{"a\tb", "a b"},
		{"a---b", "a—b"},
		{"a−−−−b", "a—b"},
		{"a--b", "a−−b"},
		{"plain", "plain"},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.String(t, normalizeText(tt.in), tt.out)
		})
	}
}

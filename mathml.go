package mathsvg

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// ErrParse reports malformed MathML input.
var ErrParse = fmt.Errorf("mathml parse error")

// Element is a parsed MathML element.
type Element struct {
	Tag      string
	Attrib   map[string]string
	Children []*Element
	Text     string
}

// Attr returns an attribute value, or def when absent.
func (e *Element) Attr(name, def string) string {
	if v, ok := e.Attrib[name]; ok {
		return v
	}
	return def
}

// text returns the element's character payload with surrounding whitespace
// removed.
func (e *Element) text() string {
	return strings.TrimSpace(e.Text)
}

func newElement(tag string) *Element {
	return &Element{Tag: tag, Attrib: map[string]string{}}
}

// denamespace strips any namespace prefix so tags can be matched directly.
func denamespace(tag string) string {
	if i := strings.IndexByte(tag, ':'); i != -1 {
		return tag[i+1:]
	}
	return tag
}

// ParseMathML parses a MathML document into an element tree. The root
// element must be <math>; namespace prefixes are ignored.
func ParseMathML(r io.Reader) (*Element, error) {
	z := parse.NewInput(r)
	defer z.Restore()

	l := xml.NewLexer(z)
	var root *Element
	stack := []*Element{}
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return nil, fmt.Errorf("%w: %v", ErrParse, l.Err())
			}
			if root == nil {
				return nil, fmt.Errorf("%w: expected math tag", ErrParse)
			}
			if 0 < len(stack) {
				return nil, fmt.Errorf("%w: unclosed %s tag", ErrParse, stack[len(stack)-1].Tag)
			}
			return root, nil
		case xml.StartTagToken:
			elm := newElement(denamespace(string(data[1:])))
			for {
				tt, _ = l.Next()
				if tt != xml.AttributeToken {
					break
				}
				val := l.AttrVal()
				val = val[1 : len(val)-1]
				elm.Attrib[denamespace(string(l.Text()))] = unescape(string(val))
			}
			if root == nil {
				if elm.Tag != "math" {
					return nil, fmt.Errorf("%w: expected math tag, got %s", ErrParse, elm.Tag)
				}
				root = elm
			} else if 0 < len(stack) {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elm)
			}
			if tt != xml.StartTagCloseVoidToken {
				stack = append(stack, elm)
			}
		case xml.TextToken:
			if 0 < len(stack) {
				elm := stack[len(stack)-1]
				elm.Text += unescape(symbolEscapes.Replace(string(data)))
			}
		case xml.EndTagToken:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unexpected end tag", ErrParse)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				// ignore trailing content after the root closes
				if root != nil {
					return root, nil
				}
			}
		}
	}
}

// ParseMathMLString parses MathML from a string.
func ParseMathMLString(s string) (*Element, error) {
	return ParseMathML(strings.NewReader(s))
}

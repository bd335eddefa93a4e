package mathsvg

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestParseStyleChaining(t *testing.T) {
	cfg := snapshot()
	parent := Style{Variant: Variant{Style: "serif"}, DisplayStyle: true, ScriptLevel: -1}

	elem := newElement("mi")
	s := parseStyle(elem, parent, &cfg)
	test.T(t, s, parent)

	elem.Attrib["mathvariant"] = "bold"
	elem.Attrib["mathcolor"] = "red"
	s = parseStyle(elem, parent, &cfg)
	test.That(t, s.Variant.Bold, "bold set")
	test.String(t, s.MathColor, "red")
	test.That(t, s.DisplayStyle, "displaystyle inherited")

	child := newElement("mn")
	s2 := parseStyle(child, s, &cfg)
	test.That(t, s2.Variant.Bold, "bold inherited")
	test.String(t, s2.MathColor, "red")
}

func TestParseStyleDisplay(t *testing.T) {
	cfg := snapshot()
	parent := Style{DisplayStyle: true, ScriptLevel: -1}

	elem := newElement("mstyle")
	elem.Attrib["displaystyle"] = "false"
	test.That(t, !parseStyle(elem, parent, &cfg).DisplayStyle, "displaystyle=false")

	elem = newElement("math")
	elem.Attrib["display"] = "inline"
	test.That(t, !parseStyle(elem, parent, &cfg).DisplayStyle, "display=inline")

	elem = newElement("math")
	elem.Attrib["display"] = "block"
	test.That(t, parseStyle(elem, parent, &cfg).DisplayStyle, "display=block")
}

func TestParseStyleCSS(t *testing.T) {
	cfg := snapshot()
	elem := newElement("mrow")
	elem.Attrib["style"] = "color: blue; background: yellow"
	s := parseStyle(elem, Style{ScriptLevel: -1}, &cfg)
	test.String(t, s.MathColor, "blue")
	test.String(t, s.MathBackground, "yellow")
}

func TestParseStyleScriptLevel(t *testing.T) {
	cfg := snapshot()
	elem := newElement("mrow")
	elem.Attrib["scriptlevel"] = "2"
	s := parseStyle(elem, Style{ScriptLevel: -1}, &cfg)
	test.T(t, s.ScriptLevel, 2)
}

package mathsvg

import (
	"strconv"
	"strings"
)

// Variant is a math font variant: a script family plus bold/italic flags.
type Variant struct {
	Style  string // serif, sans, script, double, mono, fraktur
	Bold   bool
	Italic bool
	Normal bool
}

// Style carries the inherited typesetting state of a node.
type Style struct {
	Variant        Variant
	DisplayStyle   bool
	Cramped        bool
	MathColor      string
	MathBackground string
	MathSize       string
	ScriptLevel    int // explicit scriptlevel attribute, -1 when unset
}

// parseVariant merges a mathvariant attribute value with the parent variant.
func parseVariant(attr string, parent Variant) Variant {
	v := Variant{
		Style:  parent.Style,
		Bold:   parent.Bold || strings.Contains(attr, "bold"),
		Italic: parent.Italic || strings.Contains(attr, "italic"),
		Normal: parent.Normal || strings.Contains(attr, "normal"),
	}
	switch {
	case strings.Contains(attr, "double"):
		v.Style = "double"
	case strings.Contains(attr, "fraktur"):
		v.Style = "fraktur"
	case strings.Contains(attr, "script"):
		v.Style = "script"
	case strings.Contains(attr, "sans"):
		v.Style = "sans"
	case strings.Contains(attr, "mono"):
		v.Style = "mono"
	case strings.Contains(attr, "serif"):
		v.Style = "serif"
	}
	return v
}

// parseStyle reads an element's style attributes, chaining to the parent
// style for anything unset.
func parseStyle(elem *Element, parent Style, cfg *config) Style {
	s := parent
	if v, ok := elem.Attrib["mathvariant"]; ok {
		s.Variant = parseVariant(v, parent.Variant)
	}
	if v, ok := elem.Attrib["displaystyle"]; ok {
		s.DisplayStyle = strings.EqualFold(v, "true")
	} else if v, ok := elem.Attrib["display"]; ok {
		s.DisplayStyle = v != "inline"
	}
	if v, ok := elem.Attrib["mathcolor"]; ok {
		s.MathColor = v
	}
	if v, ok := elem.Attrib["mathbackground"]; ok {
		s.MathBackground = v
	}
	if v, ok := elem.Attrib["mathsize"]; ok {
		s.MathSize = v
	}
	if v, ok := elem.Attrib["scriptlevel"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			s.ScriptLevel = n
		}
	}

	// CSS style attribute shorthand for color and background.
	if css, ok := elem.Attrib["style"]; ok {
		for _, decl := range strings.Split(css, ";") {
			key, val, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			key = strings.ToLower(strings.TrimSpace(key))
			val = strings.TrimSpace(val)
			switch key {
			case "color":
				s.MathColor = val
			case "background":
				s.MathBackground = val
			}
		}
	}
	return s
}

// rootStyle builds the style of the <math> element from the configuration
// and the root attributes.
func rootStyle(elem *Element, cfg *config) Style {
	parent := Style{
		Variant:        parseVariant(cfg.math.variantOrDefault(), Variant{Style: "serif"}),
		DisplayStyle:   true,
		MathColor:      cfg.math.Color,
		MathBackground: cfg.math.Background,
		ScriptLevel:    -1,
	}
	if parent.MathBackground == "" {
		parent.MathBackground = "none"
	}
	return parseStyle(elem, parent, cfg)
}

func (m MathConfig) variantOrDefault() string {
	if m.Variant == "" {
		return "serif"
	}
	return m.Variant
}

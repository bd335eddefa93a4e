package mathsvg

import "sync"

// Form is the prefix/infix/postfix classification of an operator.
type Form int

const (
	Infix Form = iota
	Prefix
	Postfix
)

func parseForm(s string) (Form, bool) {
	switch s {
	case "infix":
		return Infix, true
	case "prefix":
		return Prefix, true
	case "postfix":
		return Postfix, true
	}
	return Infix, false
}

func (f Form) String() string {
	switch f {
	case Prefix:
		return "prefix"
	case Postfix:
		return "postfix"
	}
	return "infix"
}

// Operator is a resolved operator-dictionary record. Spacing is in math
// units of 1/18 em.
type Operator struct {
	Lspace        int
	Rspace        int
	LargeOp       bool
	Stretchy      bool
	Symmetric     bool
	Accent        bool
	Fence         bool
	MovableLimits bool
	Horizontal    bool // stretches along the inline axis
}

type opKey struct {
	char string
	form Form
}

// opTable is a compact rendition of the MathML operator dictionary covering
// the characters the engine meets in practice. Unlisted operators get
// defaultOperator.
var opTable = map[opKey]Operator{}

var defaultOperator = Operator{Lspace: 5, Rspace: 5}

func init() {
	set := func(chars string, form Form, op Operator) {
		for _, r := range chars {
			opTable[opKey{string(r), form}] = op
		}
	}

	// fences
	fence := Operator{Fence: true, Stretchy: true, Symmetric: true}
	set("([{⟨⌊⌈|‖", Prefix, fence)
	set(")]}⟩⌋⌉|‖", Postfix, fence)
	set("√", Prefix, Operator{Stretchy: true})

	// relations
	set("=≠<>≤≥≈≡∼≃≅∝≔⩵⩮∈∉∋⊂⊃⊆⊇⊄⊅∥∦⊥∣", Infix, Operator{Lspace: 5, Rspace: 5})

	// binary operators
	set("+−±∓", Infix, Operator{Lspace: 4, Rspace: 4})
	set("+−±∓", Prefix, Operator{Rspace: 1})
	set("×÷⋅·∘∗⊗⊕⊖⊙⊘∖", Infix, Operator{Lspace: 4, Rspace: 4})
	set("∩∪∧∨⊓⊔", Infix, Operator{Lspace: 4, Rspace: 4})
	set("/", Infix, Operator{Lspace: 1, Rspace: 1})

	// arrows stretch horizontally, e.g. over text or as extensible maps
	set("→←↔⇒⇐⇔↦⟶⟵⟷⟹⟸⟺", Infix, Operator{Lspace: 5, Rspace: 5, Stretchy: true, Horizontal: true})
	set("↑↓⇑⇓↕", Infix, Operator{Lspace: 5, Rspace: 5, Stretchy: true})

	// separators
	set(",;", Infix, Operator{Rspace: 3})
	set(":", Infix, Operator{Lspace: 1, Rspace: 2})
	set("!", Postfix, Operator{Lspace: 1})
	set("′″‴", Postfix, Operator{})

	// n-ary operators grow in display style and carry movable limits
	set("∑∏∐⋀⋁⋂⋃⨁⨂⨀⨄⨆", Prefix,
		Operator{Lspace: 1, Rspace: 2, LargeOp: true, Symmetric: true, MovableLimits: true})
	set("∫∬∭∮∯∰", Prefix,
		Operator{Lspace: 1, Rspace: 2, LargeOp: true, Symmetric: true})

	// quantifiers and differentials
	set("∀∃∄¬", Prefix, Operator{Rspace: 1})
	set("∂∇", Prefix, Operator{Rspace: 1})

	// accents; combining marks, their modifier-letter forms, and spanning marks
	accent := Operator{Accent: true}
	set("´`¨ˆˇ˘˙˚˜¯^~", Postfix, accent)
	set("̂̃̄̅̆̇̈̌⃗", Postfix, accent)
	wide := Operator{Accent: true, Stretchy: true, Horizontal: true}
	set("‾_⏞⏟⎴⎵⃗", Postfix, wide)
	set("→←↔", Postfix, wide) // over/under arrows

	// named function operators render upright with a thin following space
	for name := range operatorNames {
		opTable[opKey{name, Prefix}] = Operator{Rspace: 3}
	}
	for _, name := range []string{"lim", "liminf", "limsup", "max", "min", "sup", "inf", "det", "gcd", "Pr"} {
		opTable[opKey{name, Prefix}] = Operator{Rspace: 3, MovableLimits: true}
	}
	opTable[opKey{"mod", Infix}] = Operator{Lspace: 3, Rspace: 3}

	// invisible operators occupy no space
	set("⁡⁢⁣⁤", Infix, Operator{})
}

var operatorNamesMu sync.Mutex

// operatorNames lists identifiers that typeset as operators, as produced by
// LaTeX \sin, \log and friends coming through as <mi>.
var operatorNames = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true, "sec": true, "csc": true,
	"sinh": true, "cosh": true, "tanh": true, "coth": true,
	"arcsin": true, "arccos": true, "arctan": true,
	"arg": true, "deg": true, "det": true, "dim": true, "exp": true,
	"gcd": true, "hom": true, "inf": true, "ker": true, "lg": true,
	"lim": true, "liminf": true, "limsup": true, "ln": true, "log": true,
	"max": true, "min": true, "Pr": true, "sup": true, "mod": true,
}

// integralChars need their italic correction handled opposite to ordinary
// bases: subscripts tuck under the slanted bowl.
var integralChars = map[rune]bool{
	'∫': true, '∬': true, '∭': true, '∮': true, '∯': true, '∰': true,
}

func isOperatorName(s string) bool {
	operatorNamesMu.Lock()
	defer operatorNamesMu.Unlock()
	return operatorNames[s]
}

// lookupOperator resolves (char, form) against the dictionary, trying the
// other forms before falling back to default spacing.
func lookupOperator(char string, form Form) Operator {
	if op, ok := opTable[opKey{char, form}]; ok {
		return op
	}
	for _, f := range []Form{Infix, Prefix, Postfix} {
		if f == form {
			continue
		}
		if op, ok := opTable[opKey{char, f}]; ok {
			return op
		}
	}
	return defaultOperator
}

// inferForm resolves the form of the i-th of n row children: first non-space
// child prefix, last postfix, middle infix. Script bases are prefix.
func inferForm(i, n int, scriptBase bool) Form {
	if scriptBase {
		return Prefix
	}
	if i == 0 && 1 < n {
		return Prefix
	}
	if i == n-1 && 1 < n {
		return Postfix
	}
	return Infix
}

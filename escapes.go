package mathsvg

import (
	"strconv"
	"strings"
)

// Symbol shorthands replaced in element text as the XML is lexed, as in common MathML
// sources: a hyphen in math is a real minus, and a few ASCII digraphs map to
// single relation characters.
var symbolEscapes = strings.NewReplacer(
	":=", "≔",
	"*=", "⩮",
	"==", "⩵",
	"!=", "≠",
	"-", "−",
)

// entities names the character entities accepted beyond XML's built-in five.
var entities = map[string]rune{
	// greek
	"alpha": 'α', "beta": 'β', "gamma": 'γ', "delta": 'δ', "epsilon": 'ε',
	"zeta": 'ζ', "eta": 'η', "theta": 'θ', "iota": 'ι', "kappa": 'κ',
	"lambda": 'λ', "mu": 'μ', "nu": 'ν', "xi": 'ξ', "pi": 'π', "rho": 'ρ',
	"sigma": 'σ', "tau": 'τ', "upsilon": 'υ', "phi": 'φ', "chi": 'χ',
	"psi": 'ψ', "omega": 'ω',
	"Gamma": 'Γ', "Delta": 'Δ', "Theta": 'Θ', "Lambda": 'Λ', "Xi": 'Ξ',
	"Pi": 'Π', "Sigma": 'Σ', "Upsilon": 'Υ', "Phi": 'Φ', "Psi": 'Ψ',
	"Omega": 'Ω',
	// operators and relations
	"sum": '∑', "prod": '∏', "int": '∫', "pm": '±', "mp": '∓',
	"times": '×', "divide": '÷', "minus": '−', "sdot": '⋅', "middot": '·',
	"le": '≤', "leq": '≤', "ge": '≥', "geq": '≥', "ne": '≠', "equiv": '≡',
	"approx": '≈', "prop": '∝', "infin": '∞', "infty": '∞',
	"part": '∂', "partial": '∂', "nabla": '∇', "radic": '√',
	"isin": '∈', "notin": '∉', "sub": '⊂', "sup": '⊃', "sube": '⊆',
	"supe": '⊇', "cap": '∩', "cup": '∪', "and": '∧', "or": '∨',
	"forall": '∀', "exist": '∃', "empty": '∅', "oplus": '⊕', "otimes": '⊗',
	"perp": '⊥', "prime": '′', "Prime": '″', "hellip": '…', "ctdot": '⋯',
	"rarr": '→', "larr": '←', "harr": '↔', "rArr": '⇒', "lArr": '⇐',
	"hArr": '⇔', "mapsto": '↦', "uarr": '↑', "darr": '↓',
	"langle": '⟨', "rangle": '⟩', "lfloor": '⌊', "rfloor": '⌋',
	"lceil": '⌈', "rceil": '⌉', "Vert": '‖',
	// spacing
	"thinsp": ' ', "emsp": ' ', "ensp": ' ', "nbsp": ' ',
	// xml builtins
	"lt": '<', "gt": '>', "amp": '&', "quot": '"', "apos": '\'',
}

// Entities with no visual form; dropped entirely.
var invisibleEntities = map[string]bool{
	"InvisibleTimes": true,
	"InvisibleComma": true,
	"ApplyFunction":  true,
	"af":             true,
	"it":             true,
	"ic":             true,
}

// unescape decodes numeric and named character references. Unknown names are
// left as-is so the error surfaces in the output instead of disappearing.
func unescape(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	var sb strings.Builder
	for {
		i := strings.IndexByte(s, '&')
		if i == -1 {
			sb.WriteString(s)
			break
		}
		sb.WriteString(s[:i])
		s = s[i:]
		j := strings.IndexByte(s, ';')
		if j == -1 {
			sb.WriteString(s)
			break
		}
		name := s[1:j]
		if r, ok := decodeEntity(name); ok {
			sb.WriteRune(r)
		} else if invisibleEntities[name] {
			// drop
		} else {
			sb.WriteString(s[:j+1])
		}
		s = s[j+1:]
	}
	return sb.String()
}

func decodeEntity(name string) (rune, bool) {
	if strings.HasPrefix(name, "#x") || strings.HasPrefix(name, "#X") {
		n, err := strconv.ParseUint(name[2:], 16, 32)
		if err != nil {
			return 0, false
		}
		return rune(n), true
	} else if strings.HasPrefix(name, "#") {
		n, err := strconv.ParseUint(name[1:], 10, 32)
		if err != nil {
			return 0, false
		}
		return rune(n), true
	}
	r, ok := entities[name]
	return r, ok
}

package mathsvg

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/wyatt915/treeblood"
)

var (
	latexMu     sync.Mutex
	latexMacros = map[string]string{}
	pitziil     *treeblood.Pitziil
)

// DeclareOperator declares a new named operator, like LaTeX's
// \DeclareMathOperator. The name may carry a leading backslash:
//
//	DeclareOperator(`\median`)
func DeclareOperator(name string) {
	name = strings.TrimPrefix(name, `\`)
	if name == "" {
		return
	}
	operatorNamesMu.Lock()
	operatorNames[name] = true
	opTable[opKey{name, Prefix}] = Operator{Rspace: 3}
	operatorNamesMu.Unlock()

	latexMu.Lock()
	latexMacros[name] = `\operatorname{` + name + `}`
	pitziil = nil // rebuilt with the new macro on next use
	latexMu.Unlock()
}

var (
	binomRe = regexp.MustCompile(`\\binom\{(.+?)\}\{(.+?)\}`)
	tagRe   = regexp.MustCompile(`\\tag\{([^}]*)\}`)
	commaRe = regexp.MustCompile(`([0-9]),([0-9])`)
)

// extractTag splits a \tag{...} directive off a LaTeX expression.
func extractTag(tex string) (string, string) {
	tag := ""
	tex = tagRe.ReplaceAllStringFunc(tex, func(s string) string {
		tag = tagRe.FindStringSubmatch(s)[1]
		return ""
	})
	return strings.TrimSpace(tex), tag
}

// texPreprocess rewrites constructs the MathML conversion handles poorly.
func texPreprocess(tex string, cfg *config) string {
	tex = binomRe.ReplaceAllString(tex, `\left( $1 \atop $2 \right)`)
	tex = strings.ReplaceAll(tex, "||", "‖")
	if cfg.decimalSeparator == "," {
		// group the decimal comma so no operator space follows it
		tex = commaRe.ReplaceAllString(tex, `$1{,}$2`)
	}
	return tex
}

// texPostprocess swaps narrow accent characters for their stretchy
// combining forms so widehat and widetilde grow with their base.
func texPostprocess(mml string) string {
	mml = strings.ReplaceAll(mml, "<mo>^</mo>", "<mo>̂</mo>")
	mml = strings.ReplaceAll(mml, "<mo>&#x0005E;</mo>", "<mo>&#x00302;</mo>")
	mml = strings.ReplaceAll(mml, "<mo>~</mo>", "<mo>̃</mo>")
	mml = strings.ReplaceAll(mml, "<mo>&#x0007E;</mo>", "<mo>&#x00303;</mo>")
	return mml
}

// latexToMathML converts LaTeX math to MathML.
func latexToMathML(tex string, inline bool) (string, error) {
	latexMu.Lock()
	if pitziil == nil {
		pitziil = treeblood.NewDocument(latexMacros, false)
	}
	pitz := pitziil
	latexMu.Unlock()

	var mml string
	var err error
	if inline {
		mml, err = pitz.TextStyle(tex)
	} else {
		mml, err = pitz.DisplayStyle(tex)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}
	return texPostprocess(mml), nil
}

// ParseLaTeX converts a LaTeX math expression to MathML and typesets it.
// A \tag{...} directive becomes the equation label.
func ParseLaTeX(tex string, opts ...Option) (*Math, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	cfg := snapshot()

	tex, tag := extractTag(tex)
	tex = texPreprocess(tex, &cfg)
	mml, err := latexToMathML(tex, o.inline)
	if err != nil {
		return nil, err
	}
	if tag != "" {
		opts = append(opts, WithNumber(tag))
	}
	return Parse(mml, opts...)
}

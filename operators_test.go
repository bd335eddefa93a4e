package mathsvg

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestLookupOperator(t *testing.T) {
	plus := lookupOperator("+", Infix)
	test.T(t, plus.Lspace, 4)
	test.T(t, plus.Rspace, 4)

	neg := lookupOperator("−", Prefix)
	test.T(t, neg.Lspace, 0)
	test.T(t, neg.Rspace, 1)

	open := lookupOperator("(", Prefix)
	test.That(t, open.Fence, "parenthesis is a fence")
	test.That(t, open.Stretchy, "parenthesis stretches")
	test.That(t, open.Symmetric, "parenthesis is symmetric")

	sum := lookupOperator("∑", Prefix)
	test.That(t, sum.LargeOp, "sum is a large operator")
	test.That(t, sum.MovableLimits, "sum has movable limits")

	integral := lookupOperator("∫", Prefix)
	test.That(t, integral.LargeOp, "integral is a large operator")
	test.That(t, !integral.MovableLimits, "integral limits stay in script position")

	arrow := lookupOperator("→", Infix)
	test.That(t, arrow.Stretchy && arrow.Horizontal, "arrows stretch horizontally")

	// unknown operators receive default spacing and no flags
	def := lookupOperator("☃", Infix)
	test.T(t, def, defaultOperator)

	// a missing form falls back to the listed one
	closeFence := lookupOperator(")", Infix)
	test.That(t, closeFence.Fence, "close paren found through postfix entry")
}

func TestInferForm(t *testing.T) {
	var tts = []struct {
		i, n       int
		scriptBase bool
		form       Form
	}{
		{0, 3, false, Prefix},
		{1, 3, false, Infix},
		{2, 3, false, Postfix},
		{0, 1, false, Infix},
		{0, 5, true, Prefix},
		{4, 5, true, Prefix},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, inferForm(tt.i, tt.n, tt.scriptBase), tt.form)
		})
	}
}

func TestFormString(t *testing.T) {
	test.String(t, Prefix.String(), "prefix")
	test.String(t, Infix.String(), "infix")
	test.String(t, Postfix.String(), "postfix")

	form, ok := parseForm("postfix")
	test.That(t, ok, "postfix parses")
	test.T(t, form, Postfix)
	_, ok = parseForm("sideways")
	test.That(t, !ok, "unknown form rejected")
}

func TestOperatorNames(t *testing.T) {
	test.That(t, isOperatorName("sin"), "sin is an operator name")
	test.That(t, isOperatorName("lim"), "lim is an operator name")
	test.That(t, !isOperatorName("xyz"), "xyz is not an operator name")

	lim := lookupOperator("lim", Prefix)
	test.That(t, lim.MovableLimits, "lim has movable limits")
}

func TestDeclareOperator(t *testing.T) {
	test.That(t, !isOperatorName("median"), "median not predeclared")
	DeclareOperator(`\median`)
	test.That(t, isOperatorName("median"), "median declared")
	op := lookupOperator("median", Prefix)
	test.T(t, op.Rspace, 3)
}

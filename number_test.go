package mathsvg

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestEquationCounter(t *testing.T) {
	ResetNumbering(1)
	test.T(t, nextEquationNumber(), 1)
	test.T(t, nextEquationNumber(), 2)
	test.T(t, nextEquationNumber(), 3)

	ResetNumbering(10)
	test.T(t, nextEquationNumber(), 10)
}

func TestNumberingLabel(t *testing.T) {
	test.String(t, NumberingConfig{Format: "(%d)"}.label(3), "(3)")
	test.String(t, NumberingConfig{Format: "[%d]"}.label(7), "[7]")
	test.String(t, NumberingConfig{}.label(2), "(2)")

	roman := NumberingConfig{FormatFunc: func(i int) string {
		return map[int]string{1: "(i)", 2: "(ii)"}[i]
	}}
	test.String(t, roman.label(2), "(ii)")
}

package mathsvg

import (
	"fmt"
	"sync/atomic"
)

// The equation counter is the only process-wide mutable state in the
// package. It is decoupled from any render's data.
var eqCounter atomic.Int64

// ResetNumbering restarts automatic equation numbering so that the next
// equation receives number n.
func ResetNumbering(n int) {
	eqCounter.Store(int64(n) - 1)
}

func nextEquationNumber() int {
	return int(eqCounter.Add(1))
}

// label formats an equation number.
func (c NumberingConfig) label(i int) string {
	if c.FormatFunc != nil {
		return c.FormatFunc(i)
	}
	if c.Format == "" {
		return fmt.Sprintf("(%d)", i)
	}
	return fmt.Sprintf(c.Format, i)
}

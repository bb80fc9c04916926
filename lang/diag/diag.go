// Package diag collects the two diagnostic severities produced while
// compiling a unit: errors, which abort IR production, and warnings, which
// do not. Errors are accumulated in a go/scanner.ErrorList, so sorting and
// multi-error formatting come from the standard library for free; warnings
// have no equivalent stdlib type; a small slice does the job.
package diag

import (
	"fmt"
	"go/scanner"
	"go/token"
)

// Warning is a single non-fatal diagnostic, e.g. unreachable code.
type Warning struct {
	Pos     token.Position
	Message string
}

// Bag accumulates errors and warnings over the lowering of one compilation
// unit. A zero Bag is ready to use.
type Bag struct {
	Errors   scanner.ErrorList
	Warnings []Warning
}

// Errorf records an error at pos. Lowering continues after an error where it
// is safe to do so, to surface independent errors in the same unit, but the
// bag being non-empty at the end means no IR is produced.
func (b *Bag) Errorf(pos token.Position, format string, args ...any) {
	b.Errors.Add(pos, fmt.Sprintf(format, args...))
}

// Warnf records a non-fatal warning at pos.
func (b *Bag) Warnf(pos token.Position, format string, args ...any) {
	b.Warnings = append(b.Warnings, Warning{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any error was recorded.
func (b *Bag) HasErrors() bool {
	return len(b.Errors) > 0
}

// Sorted returns the accumulated errors sorted by position, as a
// scanner.ErrorList's Err() method expects to report them.
func (b *Bag) Sorted() *Bag {
	b.Errors.Sort()
	return b
}

// Err returns the accumulated errors as a single error (nil if none), with
// the same multi-error formatting behavior as go/scanner.ErrorList.Err.
func (b *Bag) Err() error {
	b.Errors.Sort()
	return b.Errors.Err()
}

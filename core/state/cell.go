// Package state provides the interior-mutability cell that lets the UI
// collaborator mutate one filter's criteria through a shared registry
// handle while the same render pass reads registry state. There is no
// real concurrency in the engine, only aliasing: the cell enforces a
// single-writer-at-a-time discipline per filter and treats a violation
// as a programming error.
package state

import "fmt"

// BorrowConflict reports a reentrant write to the same cell within one
// pass. It is raised via panic: the condition indicates a reentrancy
// bug in the caller, not a runtime state to recover from.
type BorrowConflict struct {
	Owner string
}

func (b *BorrowConflict) Error() string {
	return fmt.Sprintf("reentrant mutation of filter state %q", b.Owner)
}

// Cell holds one filter's mutable state behind a write guard. The zero
// value is usable once the value is set; callers normally use NewCell.
type Cell[S any] struct {
	owner    string
	value    S
	borrowed bool
}

// NewCell returns a cell owning value. The owner label identifies the
// cell in BorrowConflict panics.
func NewCell[S any](owner string, value S) *Cell[S] {
	return &Cell[S]{owner: owner, value: value}
}

// Get returns a copy of the current value. Reads are always permitted,
// including while a write is in progress higher up the stack.
func (c *Cell[S]) Get() S {
	return c.value
}

// With grants fn exclusive write access to the value. A nested With on
// the same cell panics with *BorrowConflict.
func (c *Cell[S]) With(fn func(*S)) {
	if c.borrowed {
		panic(&BorrowConflict{Owner: c.owner})
	}
	c.borrowed = true
	defer func() { c.borrowed = false }()
	fn(&c.value)
}

// Set replaces the value wholesale under the same write discipline.
func (c *Cell[S]) Set(value S) {
	c.With(func(v *S) { *v = value })
}

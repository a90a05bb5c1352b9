package filter

import "github.com/asaidimu/go-gridfilter/core/scalar"

// Bool filters rows by an extracted boolean. The criteria is tri-state:
// cleared means "either", otherwise the unwanted value sits in the
// deselected set and only its complement passes.
type Bool[T any] struct {
	base
	extract func(T) bool
}

// NewBool creates a boolean column filter in the "either" state.
func NewBool[T any](id string, extract func(T) bool) *Bool[T] {
	return &Bool[T]{base: newBase(id), extract: extract}
}

var _ ColumnFilter[any] = (*Bool[any])(nil)

// Exactly returns the criteria selecting only rows equal to want.
func Exactly(want bool) Criteria {
	return Deselect(scalar.Boolean(!want))
}

// Either is the cleared tri-state criteria matching every row.
func Either() Criteria {
	return Criteria{}
}

// Value projects the row to its boolean scalar.
func (f *Bool[T]) Value(row T) scalar.Scalar {
	return scalar.Boolean(f.extract(row))
}

// Evaluate passes rows whose boolean value is still selected.
func (f *Bool[T]) Evaluate(row T) bool {
	return f.selected(f.Value(row))
}

// SetCriteria replaces the criteria; boolean criteria cannot fail to
// parse.
func (f *Bool[T]) SetCriteria(c Criteria) error {
	f.setCriteria(c)
	return nil
}

// Options enumerates the boolean values present in the rows.
func (f *Bool[T]) Options(rows []T) []scalar.Scalar {
	return distinctOptions(rows, f.Value)
}

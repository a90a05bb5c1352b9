package filter

import "github.com/asaidimu/go-gridfilter/core/scalar"

// Number filters rows by an extracted integer, combining option-set
// membership with comparison terms (<, <=, >, >=) in the query text.
type Number[T any] struct {
	base
	extract func(T) int64
}

// NewNumber creates a numeric column filter with cleared criteria.
func NewNumber[T any](id string, extract func(T) int64) *Number[T] {
	return &Number[T]{base: newBase(id), extract: extract}
}

var _ ColumnFilter[any] = (*Number[any])(nil)

// Value projects the row to its integer scalar.
func (f *Number[T]) Value(row T) scalar.Scalar {
	return scalar.Int(f.extract(row))
}

// Evaluate passes rows whose value is selected and satisfies every
// comparison term of the query. Cleared criteria passes every row.
func (f *Number[T]) Evaluate(row T) bool {
	v := f.Value(row)
	if !f.selected(v) {
		return false
	}
	if q := f.query(); q != "" {
		return matchNumberPattern(q, v.I)
	}
	return true
}

// SetCriteria replaces the criteria. Malformed comparison terms are not
// an error: they degrade to prefix matching on the decimal rendering.
func (f *Number[T]) SetCriteria(c Criteria) error {
	f.setCriteria(c)
	return nil
}

// Options enumerates the distinct numeric values across the rows.
func (f *Number[T]) Options(rows []T) []scalar.Scalar {
	return distinctOptions(rows, f.Value)
}

package filter

import "github.com/asaidimu/go-gridfilter/core/scalar"

// String filters rows by membership of an extracted string in the
// selected option set, with optional comma-separated prefix patterns in
// the query text.
type String[T any] struct {
	base
	extract func(T) string
}

// NewString creates a string column filter with cleared criteria.
func NewString[T any](id string, extract func(T) string) *String[T] {
	return &String[T]{base: newBase(id), extract: extract}
}

var _ ColumnFilter[any] = (*String[any])(nil)

// Value projects the row to its string scalar.
func (f *String[T]) Value(row T) scalar.Scalar {
	return scalar.Str(f.extract(row))
}

// Evaluate passes rows whose value is selected and, when a query is
// set, matches one of its prefix terms. Cleared criteria passes every
// row.
func (f *String[T]) Evaluate(row T) bool {
	v := f.Value(row)
	if !f.selected(v) {
		return false
	}
	if q := f.query(); q != "" {
		return matchStringPattern(q, v.S)
	}
	return true
}

// SetCriteria replaces the criteria. String queries cannot fail to
// parse, so the error is always nil.
func (f *String[T]) SetCriteria(c Criteria) error {
	f.setCriteria(c)
	return nil
}

// Options enumerates the distinct string values across the rows.
func (f *String[T]) Options(rows []T) []scalar.Scalar {
	return distinctOptions(rows, f.Value)
}

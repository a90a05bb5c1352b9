package filter

import (
	"time"

	"github.com/asaidimu/go-gridfilter/core/scalar"
)

// Date filters rows by an extracted calendar date using inclusive or
// exclusive comparison terms in the M/D/YYYY mini-language. The domain
// is treated as continuous: there is no per-option enumeration, and
// availability degrades to a whole-filter match check.
type Date[T any] struct {
	base
	extract func(T) time.Time
}

// NewDate creates a date column filter with cleared criteria.
func NewDate[T any](id string, extract func(T) time.Time) *Date[T] {
	return &Date[T]{base: newBase(id), extract: extract}
}

var _ ColumnFilter[any] = (*Date[any])(nil)

// Value projects the row to its date scalar (UTC calendar date).
func (f *Date[T]) Value(row T) scalar.Scalar {
	return scalar.Date(f.extract(row))
}

// Evaluate passes rows whose date is selected and satisfies every
// comparison term of the query. Cleared criteria passes every row.
func (f *Date[T]) Evaluate(row T) bool {
	v := f.Value(row)
	if !f.selected(v) {
		return false
	}
	if q := f.query(); q != "" {
		return matchDatePattern(q, v.I)
	}
	return true
}

// SetCriteria replaces the criteria. Malformed comparison terms degrade
// to prefix matching on the formatted date.
func (f *Date[T]) SetCriteria(c Criteria) error {
	f.setCriteria(c)
	return nil
}

// Options returns nil: date ranges are continuous.
func (f *Date[T]) Options(rows []T) []scalar.Scalar {
	return nil
}

// Format renders date scalars in the M/D/YYYY mini-language layout and
// falls back to the scalar's own form for anything else.
func (f *Date[T]) Format(v scalar.Scalar) string {
	if v.Kind == scalar.KindDate {
		return v.Time().Format(scalar.DateLayout)
	}
	return v.String()
}

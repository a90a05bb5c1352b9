// Package filter defines the column filter capability interface and its
// concrete variants (string, number, date, boolean, custom). A column
// filter owns its criteria state and an extractor projecting an
// application row to the scalar domain the filter operates on. Concrete
// matching logic stays behind the ColumnFilter interface; the registry
// never sees a variant's value type.
package filter

import (
	"fmt"
	"sort"

	"github.com/asaidimu/go-gridfilter/core/scalar"
	"github.com/asaidimu/go-gridfilter/core/state"
)

// Criteria is the selection state of one column filter. The zero value
// is the cleared state: no deselected options and no query text, which
// imposes no constraint on any row.
type Criteria struct {
	// Deselected lists candidate options the user has unchecked. A row
	// whose extracted value appears here is hidden.
	Deselected []scalar.Scalar
	// Query is raw text in the variant's pattern mini-language: prefix
	// patterns for strings, comparison expressions for numbers and
	// dates, an arbitrary predicate source for custom filters.
	Query string
}

// IsZero reports whether the criteria is in its cleared state.
func (c Criteria) IsZero() bool {
	return len(c.Deselected) == 0 && c.Query == ""
}

// Deselect returns a criteria hiding the given option values.
func Deselect(values ...scalar.Scalar) Criteria {
	return Criteria{Deselected: values}
}

// Query returns a criteria carrying only pattern text.
func Query(q string) Criteria {
	return Criteria{Query: q}
}

// Only returns a criteria that keeps exactly the selected values out of
// the option universe, deselecting the rest. This is the checkbox-list
// gesture: the UI hands over every candidate option plus the checked
// subset.
func Only(options []scalar.Scalar, selected ...scalar.Scalar) Criteria {
	keep := make(map[scalar.Scalar]struct{}, len(selected))
	for _, v := range selected {
		keep[v] = struct{}{}
	}
	var out []scalar.Scalar
	for _, v := range options {
		if _, ok := keep[v]; !ok {
			out = append(out, v)
		}
	}
	return Criteria{Deselected: out}
}

// ColumnFilter is the uniform capability surface the registry works
// against. Implementations must treat cleared criteria as match-all:
// Evaluate returns true for every row while IsActive reports false.
type ColumnFilter[T any] interface {
	// ID is the stable identifier wiring this filter to a UI element.
	ID() string
	// Value projects a row into the filter's scalar domain.
	Value(row T) scalar.Scalar
	// Evaluate applies the current criteria to the row's value.
	Evaluate(row T) bool
	// IsActive reports whether the criteria restricts the row set.
	IsActive() bool
	// Reset returns the criteria to its cleared state.
	Reset()
	// Criteria returns a copy of the current criteria.
	Criteria() Criteria
	// SetCriteria replaces the criteria. Variants that compile their
	// query text report a *ParseError while still failing open.
	SetCriteria(c Criteria) error
	// Options enumerates the distinct extracted values across the
	// dataset, sorted, for checkbox population. Continuous variants
	// return nil.
	Options(rows []T) []scalar.Scalar
	// Format renders an option value in the variant's display form,
	// for option labels and inline criteria echoes.
	Format(v scalar.Scalar) string
}

// ParseError reports that a filter's query text failed to compile. The
// filter behaves as cleared for the bad input, so the error is
// advisory: callers may surface it inline or ignore it.
type ParseError struct {
	FilterID string
	Raw      string
	cause    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("filter %q: cannot parse criteria %q: %v", e.FilterID, e.Raw, e.cause)
}

func (e *ParseError) Unwrap() error { return e.cause }

// criteriaState is the per-filter mutable state kept behind a borrow
// guard. The deselected set is keyed for O(1) membership during
// evaluation.
type criteriaState struct {
	deselected map[scalar.Scalar]struct{}
	query      string
}

// base carries the id and guarded state shared by every variant.
type base struct {
	id   string
	cell *state.Cell[criteriaState]
}

func newBase(id string) base {
	return base{
		id:   id,
		cell: state.NewCell(id, criteriaState{deselected: map[scalar.Scalar]struct{}{}}),
	}
}

// ID returns the filter's registry key.
func (b *base) ID() string { return b.id }

// IsActive is derived from the criteria, never stored.
func (b *base) IsActive() bool {
	s := b.cell.Get()
	return len(s.deselected) > 0 || s.query != ""
}

// Reset clears both the deselected set and the query text.
func (b *base) Reset() {
	b.cell.With(func(s *criteriaState) {
		s.deselected = map[scalar.Scalar]struct{}{}
		s.query = ""
	})
}

// Criteria exports the current state with the deselected set sorted for
// deterministic comparison.
func (b *base) Criteria() Criteria {
	s := b.cell.Get()
	out := Criteria{Query: s.query}
	for v := range s.deselected {
		out.Deselected = append(out.Deselected, v)
	}
	sort.Slice(out.Deselected, func(i, j int) bool {
		return out.Deselected[i].Less(out.Deselected[j])
	})
	return out
}

func (b *base) setCriteria(c Criteria) {
	b.cell.With(func(s *criteriaState) {
		s.deselected = make(map[scalar.Scalar]struct{}, len(c.Deselected))
		for _, v := range c.Deselected {
			s.deselected[v] = struct{}{}
		}
		s.query = c.Query
	})
}

// Format renders an option value through the scalar's own display
// form. Variants with a richer rendering override it.
func (b *base) Format(v scalar.Scalar) string {
	return v.String()
}

func (b *base) selected(v scalar.Scalar) bool {
	_, deselected := b.cell.Get().deselected[v]
	return !deselected
}

func (b *base) query() string {
	return b.cell.Get().query
}

// distinctOptions enumerates sorted distinct values of extract across
// the rows, shared by the enumerable variants.
func distinctOptions[T any](rows []T, extract func(T) scalar.Scalar) []scalar.Scalar {
	seen := make(map[scalar.Scalar]struct{}, len(rows))
	out := make([]scalar.Scalar, 0, len(rows))
	for _, row := range rows {
		v := extract(row)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

package filter

import (
	"regexp"

	"github.com/asaidimu/go-gridfilter/core/scalar"
)

// Predicate is a compiled row predicate produced by a custom filter's
// compiler.
type Predicate[T any] func(row T) bool

// Compiler turns raw query text into a row predicate. Returning an
// error marks the text unparseable; the filter then fails open.
type Compiler[T any] func(raw string) (Predicate[T], error)

// Custom filters rows with a predicate compiled from raw query text by
// an application-supplied compiler (a regex, a CSV list, a date-range
// mini-language). Unparseable text degrades to the cleared state so the
// rest of the table stays usable; the failure is surfaced as a
// *ParseError once per distinct input. The domain is continuous: no
// per-option enumeration.
type Custom[T any] struct {
	base
	display  func(T) string
	compile  Compiler[T]
	compiled Predicate[T]
	lastErr  *ParseError
	reported string
}

// NewCustom creates a custom column filter. display renders a row for
// candidate listings and may be nil when the host never shows one.
func NewCustom[T any](id string, display func(T) string, compile Compiler[T]) *Custom[T] {
	return &Custom[T]{base: newBase(id), display: display, compile: compile}
}

// NewRegex creates a custom filter whose query text is compiled as a
// regular expression matched against the extracted string.
func NewRegex[T any](id string, extract func(T) string) *Custom[T] {
	return NewCustom(id, extract, func(raw string) (Predicate[T], error) {
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, err
		}
		return func(row T) bool { return re.MatchString(extract(row)) }, nil
	})
}

var _ ColumnFilter[any] = (*Custom[any])(nil)

// Value renders the row through the display function, or an empty
// string scalar when none was supplied.
func (f *Custom[T]) Value(row T) scalar.Scalar {
	if f.display == nil {
		return scalar.Str("")
	}
	return scalar.Str(f.display(row))
}

// Evaluate requires the row's display value to be selected and, when a
// predicate is compiled, the predicate to hold. With no query, or with
// text that failed to compile, only the deselected set constrains rows.
func (f *Custom[T]) Evaluate(row T) bool {
	if !f.selected(f.Value(row)) {
		return false
	}
	if f.compiled == nil {
		return true
	}
	return f.compiled(row)
}

// IsActive reports whether rows are constrained: display values have
// been deselected or a predicate is compiled. Text that failed to
// parse does not count as active.
func (f *Custom[T]) IsActive() bool {
	return len(f.cell.Get().deselected) > 0 || f.compiled != nil
}

// Reset clears the criteria, the compiled predicate and any recorded
// parse failure.
func (f *Custom[T]) Reset() {
	f.base.Reset()
	f.compiled = nil
	f.lastErr = nil
	f.reported = ""
}

// SetCriteria compiles the query text. On compile failure the filter
// keeps the raw text but behaves as cleared, returning a *ParseError
// the first time a given input fails.
func (f *Custom[T]) SetCriteria(c Criteria) error {
	f.setCriteria(c)
	f.compiled = nil
	if c.Query == "" {
		f.lastErr = nil
		f.reported = ""
		return nil
	}
	pred, err := f.compile(c.Query)
	if err != nil {
		f.lastErr = &ParseError{FilterID: f.id, Raw: c.Query, cause: err}
		if f.reported == c.Query {
			return nil
		}
		f.reported = c.Query
		return f.lastErr
	}
	f.compiled = pred
	f.lastErr = nil
	f.reported = ""
	return nil
}

// LastParseErr returns the parse failure for the current query text, or
// nil when the text compiled.
func (f *Custom[T]) LastParseErr() *ParseError {
	return f.lastErr
}

// Options returns nil: custom predicates are continuous.
func (f *Custom[T]) Options(rows []T) []scalar.Scalar {
	return nil
}

package filter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/asaidimu/go-gridfilter/core/scalar"
)

// Comparison pattern syntax for the query mini-language. A query is a
// comma-separated list of terms; numeric and date variants require all
// terms to hold, the string variant accepts any. A term that is not a
// well-formed comparison falls back to a prefix match on the value's
// display form, mirroring plain type-to-search.
var (
	numberLT  = regexp.MustCompile(`^<[0-9]+$`)
	numberLTE = regexp.MustCompile(`^<=[0-9]+$`)
	numberGT  = regexp.MustCompile(`^>[0-9]+$`)
	numberGTE = regexp.MustCompile(`^>=[0-9]+$`)

	dateLT  = regexp.MustCompile(`^<[0-9]{1,2}/[0-9]{1,2}/[0-9]{4}$`)
	dateLTE = regexp.MustCompile(`^<=[0-9]{1,2}/[0-9]{1,2}/[0-9]{4}$`)
	dateGT  = regexp.MustCompile(`^>[0-9]{1,2}/[0-9]{1,2}/[0-9]{4}$`)
	dateGTE = regexp.MustCompile(`^>=[0-9]{1,2}/[0-9]{1,2}/[0-9]{4}$`)
)

// matchStringPattern reports whether target matches any comma-separated
// prefix term of query.
func matchStringPattern(query, target string) bool {
	for _, term := range strings.Split(query, ",") {
		if strings.HasPrefix(target, term) {
			return true
		}
	}
	return false
}

// matchNumberPattern evaluates every comma-separated term of query
// against v. Comparison terms use <, <=, > and >= with an integer
// operand; anything else prefix-matches the decimal rendering.
func matchNumberPattern(query string, v int64) bool {
	display := strconv.FormatInt(v, 10)
	for _, term := range strings.Split(query, ",") {
		var ok bool
		switch {
		case numberLTE.MatchString(term):
			bound, _ := strconv.ParseInt(strings.TrimPrefix(term, "<="), 10, 64)
			ok = v <= bound
		case numberGTE.MatchString(term):
			bound, _ := strconv.ParseInt(strings.TrimPrefix(term, ">="), 10, 64)
			ok = v >= bound
		case numberLT.MatchString(term):
			bound, _ := strconv.ParseInt(strings.TrimPrefix(term, "<"), 10, 64)
			ok = v < bound
		case numberGT.MatchString(term):
			bound, _ := strconv.ParseInt(strings.TrimPrefix(term, ">"), 10, 64)
			ok = v > bound
		default:
			ok = strings.HasPrefix(display, term)
		}
		if !ok {
			return false
		}
	}
	return true
}

// matchDatePattern evaluates every comma-separated term of query
// against the epoch-day value. Comparison operands use the M/D/YYYY
// layout; other terms prefix-match the formatted date.
func matchDatePattern(query string, days int64) bool {
	display := scalar.Scalar{Kind: scalar.KindDate, I: days}.String()
	for _, term := range strings.Split(query, ",") {
		var ok bool
		switch {
		case dateLTE.MatchString(term):
			bound, err := scalar.ParseDate(strings.TrimPrefix(term, "<="))
			ok = err == nil && days <= bound.I
		case dateGTE.MatchString(term):
			bound, err := scalar.ParseDate(strings.TrimPrefix(term, ">="))
			ok = err == nil && days >= bound.I
		case dateLT.MatchString(term):
			bound, err := scalar.ParseDate(strings.TrimPrefix(term, "<"))
			ok = err == nil && days < bound.I
		case dateGT.MatchString(term):
			bound, err := scalar.ParseDate(strings.TrimPrefix(term, ">"))
			ok = err == nil && days > bound.I
		default:
			ok = strings.HasPrefix(display, term)
		}
		if !ok {
			return false
		}
	}
	return true
}

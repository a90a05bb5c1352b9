// Package scalar defines the comparable value union shared by every
// column filter variant. A Scalar projects one cell of an application
// row into a small set of kinds the engine can enumerate, order, and
// use as a map key.
package scalar

import (
	"fmt"
	"strconv"
	"time"
)

// Kind discriminates the value stored in a Scalar.
type Kind uint8

// Supported scalar kinds.
const (
	KindString Kind = iota
	KindInt
	KindBool
	KindDate
)

// DateLayout is the display and parse layout for date scalars.
// It accepts one- or two-digit month and day components.
const DateLayout = "1/2/2006"

// Scalar is a comparable value union. Dates are stored as days since
// the Unix epoch so that scalars of every kind stay valid map keys and
// order with plain integer comparison.
type Scalar struct {
	Kind Kind
	S    string
	I    int64
	B    bool
}

// Str wraps a string value.
func Str(s string) Scalar { return Scalar{Kind: KindString, S: s} }

// Int wraps an integer value.
func Int(i int64) Scalar { return Scalar{Kind: KindInt, I: i} }

// Boolean wraps a boolean value.
func Boolean(b bool) Scalar { return Scalar{Kind: KindBool, B: b} }

// Date wraps a calendar date, truncating t to its UTC date.
func Date(t time.Time) Scalar {
	return Scalar{Kind: KindDate, I: EpochDays(t)}
}

// EpochDays returns the number of days between the Unix epoch and t's
// UTC calendar date.
func EpochDays(t time.Time) int64 {
	u := t.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Unix() / 86400
}

// Time converts a date scalar back to a UTC midnight time.Time. The
// zero time is returned for non-date scalars.
func (s Scalar) Time() time.Time {
	if s.Kind != KindDate {
		return time.Time{}
	}
	return time.Unix(s.I*86400, 0).UTC()
}

// ParseDate parses a M/D/YYYY date string into a date scalar.
func ParseDate(raw string) (Scalar, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return Scalar{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return Date(t), nil
}

// Less reports whether s orders before other. Scalars of different
// kinds order by kind so that mixed option sets still sort stably.
func (s Scalar) Less(other Scalar) bool {
	if s.Kind != other.Kind {
		return s.Kind < other.Kind
	}
	switch s.Kind {
	case KindString:
		return s.S < other.S
	case KindBool:
		return !s.B && other.B
	default:
		return s.I < other.I
	}
}

// String renders the scalar in its display form.
func (s Scalar) String() string {
	switch s.Kind {
	case KindString:
		return s.S
	case KindInt:
		return strconv.FormatInt(s.I, 10)
	case KindBool:
		return strconv.FormatBool(s.B)
	case KindDate:
		return s.Time().Format(DateLayout)
	default:
		return fmt.Sprintf("scalar(kind=%d)", s.Kind)
	}
}

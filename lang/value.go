package lang

import (
	"math"
	"strconv"
	"strings"
	"time"
)

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

// Kind identifies which member of the [Value] union is populated.
type Kind int

const (
	// KindNull is the absent value. It is the zero Value.
	KindNull Kind = iota // null

	// KindNumber is a floating-point number. Results that are exactly
	// integral render without a decimal point.
	KindNumber // number

	// KindText is a string.
	KindText // text

	// KindBool is a boolean.
	KindBool // boolean

	// KindDate is a calendar date with no time of day.
	KindDate // date

	// KindDateTime is a calendar date with a time of day.
	KindDateTime // datetime

	// KindClock is a time of day with no date. Clock values are not
	// numerically coercible, matching spreadsheet behavior.
	KindClock // clock

	// KindSequence is an ordered, possibly nested list of values.
	KindSequence // sequence

	// KindLazy is a deferred binding: a zero-argument callable invoked
	// when the variable holding it is referenced.
	KindLazy // lazy
)

// Value is the tagged union of every type the engine operates on.
// The zero Value is Null.
type Value struct {
	kind Kind
	num  float64
	text string
	flag bool
	when time.Time
	seq  []Value
	lazy func() Value
}

// Null returns the absent value.
func Null() Value { return Value{} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns a numeric value from an integer.
func Int(n int) Value { return Number(float64(n)) }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Date returns a date value, discarding any time of day in t.
func Date(t time.Time) Value {
	y, m, d := t.Date()

	return Value{
		kind: KindDate,
		when: time.Date(y, m, d, 0, 0, 0, 0, t.Location()),
	}
}

// DateTime returns a combined date and time-of-day value.
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, when: t} }

// Clock returns a time-of-day value.
func Clock(hour, minute, second int) Value {
	return Value{
		kind: KindClock,
		when: time.Date(1, time.January, 1, hour, minute, second, 0, time.Local),
	}
}

// ClockOf returns a time-of-day value from the clock components of t.
func ClockOf(t time.Time) Value {
	return Clock(t.Hour(), t.Minute(), t.Second())
}

// Sequence returns an ordered list value.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, seq: items}
}

// Lazy returns a deferred binding that invokes fn when referenced.
func Lazy(fn func() Value) Value { return Value{kind: KindLazy, lazy: fn} }

// Kind reports which member of the union is populated.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the absent value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the numeric payload. Valid only for KindNumber.
func (v Value) Float() float64 { return v.num }

// Str returns the text payload. Valid only for KindText.
func (v Value) Str() string { return v.text }

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool { return v.flag }

// Time returns the temporal payload. Valid for KindDate, KindDateTime, and
// KindClock.
func (v Value) Time() time.Time { return v.when }

// Seq returns the sequence payload. Valid only for KindSequence.
func (v Value) Seq() []Value { return v.seq }

// Force resolves a lazy value by invoking its callable.
// Non-lazy values are returned unchanged.
func (v Value) Force() Value {
	if v.kind == KindLazy && v.lazy != nil {
		return v.lazy()
	}

	return v
}

// String renders v the way the concatenation operator and text built-ins see
// it: Null is empty, integral numbers have no decimal point, booleans render
// TRUE/FALSE, temporal values use ISO layouts, and sequences are joined with
// ", ".
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""

	case KindNumber:
		return formatNumber(v.num)

	case KindText:
		return v.text

	case KindBool:
		if v.flag {
			return "TRUE"
		}

		return "FALSE"

	case KindDate:
		return v.when.Format("2006-01-02")

	case KindDateTime:
		return v.when.Format("2006-01-02 15:04:05")

	case KindClock:
		return v.when.Format("15:04:05")

	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, item := range v.seq {
			parts[i] = item.String()
		}

		return strings.Join(parts, ", ")

	case KindLazy:
		return v.Force().String()

	default:
		return ""
	}
}

// Equal reports whether v and other are equal under the "=" comparator.
func (v Value) Equal(other Value) bool {
	eq, err := compareValues("=", v, other)

	return err == nil && eq.kind == KindBool && eq.flag
}

// formatNumber renders a float the way spreadsheet cells display it:
// integral values without a decimal point, everything else with the shortest
// round-trip representation.
func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case math.IsNaN(f):
		return "NaN"
	}

	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}

	if abs := math.Abs(f); abs >= 1e-4 && abs < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}

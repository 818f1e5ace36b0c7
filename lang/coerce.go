package lang

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// serialEpoch is the day-zero anchor for date serial numbers, matching the
// 1899-12-30 epoch used by spreadsheet applications.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ToNumber coerces v to a float64:
// Null is 0, booleans are 1/0, numbers pass through, dates and datetimes
// become their serial day count (time of day in the fraction), and text is
// parsed after trimming (blank text is 0). Clock, sequence, and lazy values
// are not numeric.
func ToNumber(v Value) (float64, error) {
	switch v.Kind() {
	case KindNull:
		return 0, nil

	case KindBool:
		if v.Bool() {
			return 1, nil
		}

		return 0, nil

	case KindNumber:
		return v.Float(), nil

	case KindDate, KindDateTime:
		return dateSerial(v.Time()), nil

	case KindText:
		return parseNumber(v.Str())

	default:
		return 0, ErrNotNumeric.
			Wrap(fmt.Errorf("%s value", v.Kind()))
	}
}

// parseNumber parses trimmed text as a number. Blank text is 0.
func parseNumber(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, nil
	}

	// strconv accepts hex floats, underscores, and inf/NaN spellings that a
	// formula should not.
	if strings.ContainsAny(trimmed, "xX_") {
		return 0, ErrNotNumeric.
			Wrap(fmt.Errorf("cannot convert %q", s))
	}

	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, ErrNotNumeric.
			Wrap(fmt.Errorf("cannot convert %q", s))
	}

	return f, nil
}

// dateSerial computes the serial day count of t since the 1899-12-30 epoch.
// The calculation uses civil components so the wall-clock date is stable
// across time zones and DST transitions.
func dateSerial(t time.Time) float64 {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	days := day.Sub(serialEpoch).Hours() / 24
	frac := float64(t.Hour()*3600+t.Minute()*60+t.Second()) / 86400

	return days + frac
}

// Truthy reports the boolean meaning of v: text is true iff non-blank after
// trimming, sequences are true iff non-empty, numbers are true iff non-zero,
// and temporal values are always true.
func Truthy(v Value) bool {
	switch v.Kind() {
	case KindNull:
		return false

	case KindBool:
		return v.Bool()

	case KindNumber:
		return v.Float() != 0

	case KindText:
		return strings.TrimSpace(v.Str()) != ""

	case KindSequence:
		return len(v.Seq()) > 0

	default:
		return true
	}
}

// IsBlank reports whether v is Null, blank text, or an empty sequence.
func IsBlank(v Value) bool {
	switch v.Kind() {
	case KindNull:
		return true

	case KindText:
		return strings.TrimSpace(v.Str()) == ""

	case KindSequence:
		return len(v.Seq()) == 0

	default:
		return false
	}
}

// cmpRep is the representation a value resolves to for comparison purposes.
type cmpRep int

const (
	cmpNumber cmpRep = iota
	cmpTime
	cmpText
)

type comparableValue struct {
	rep  cmpRep
	num  float64
	when time.Time
	text string
}

// toComparable resolves v for comparison: numeric coercion first, then
// temporal values by instant, Null as empty text, and anything else by its
// text representation.
func toComparable(v Value) comparableValue {
	if f, err := ToNumber(v); err == nil {
		return comparableValue{rep: cmpNumber, num: f}
	}

	switch v.Kind() {
	case KindClock:
		return comparableValue{rep: cmpTime, when: v.Time()}

	case KindNull:
		return comparableValue{rep: cmpText, text: ""}

	default:
		return comparableValue{rep: cmpText, text: v.String()}
	}
}

// asText renders a comparable for mixed-representation comparisons.
func (c comparableValue) asText() string {
	switch c.rep {
	case cmpNumber:
		return formatNumber(c.num)

	case cmpTime:
		return c.when.Format("15:04:05")

	default:
		return c.text
	}
}

// compareValues applies a comparison operator. Two operands are compared
// using whichever representation each individually resolved to: like
// representations compare directly, mixed ones compare as text.
func compareValues(op string, left, right Value) (Value, error) {
	lc := toComparable(left)
	rc := toComparable(right)

	var order int

	switch {
	case lc.rep == cmpNumber && rc.rep == cmpNumber:
		switch {
		case lc.num < rc.num:
			order = -1
		case lc.num > rc.num:
			order = 1
		}

	case lc.rep == cmpTime && rc.rep == cmpTime:
		switch {
		case lc.when.Before(rc.when):
			order = -1
		case lc.when.After(rc.when):
			order = 1
		}

	default:
		order = strings.Compare(lc.asText(), rc.asText())
	}

	switch op {
	case "=":
		return Bool(order == 0), nil
	case "<>":
		return Bool(order != 0), nil
	case ">":
		return Bool(order > 0), nil
	case ">=":
		return Bool(order >= 0), nil
	case "<":
		return Bool(order < 0), nil
	case "<=":
		return Bool(order <= 0), nil
	default:
		return Null(), ErrUnexpectedToken.
			Wrap(fmt.Errorf("comparison operator %q", op))
	}
}

// roundMode selects the tie and truncation behavior of roundAt.
type roundMode int

const (
	roundHalfUp roundMode = iota // ties round away from zero
	roundUp                      // any remainder rounds away from zero
	roundDown                    // remainder is discarded
)

// roundAt rounds f at the given decimal scale using the shortest decimal
// representation of f, so results match what the printed number suggests
// rather than binary floating-point accidents (2.40 scaled by 100 must not
// round up to 2.41).
func roundAt(f float64, digits int, mode roundMode) float64 {
	s := strconv.FormatFloat(f, 'f', -1, 64)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	ds := intPart + fracPart
	cut := len(intPart) + digits

	if cut >= len(ds) {
		return f
	}

	if cut < 0 {
		ds = strings.Repeat("0", -cut) + ds
		cut = 0
	}

	var bump bool

	switch mode {
	case roundHalfUp:
		bump = ds[cut] >= '5'

	case roundUp:
		bump = strings.ContainsFunc(ds[cut:], func(r rune) bool {
			return r != '0'
		})

	case roundDown:
	}

	kept := ds[:cut]
	if bump {
		kept = incrementDigits(kept)
	}

	if kept == "" {
		return 0
	}

	n, err := strconv.ParseFloat(kept, 64)
	if err != nil {
		return f
	}

	result := n / math.Pow(10, float64(digits))
	if neg {
		result = -result
	}

	return result
}

// incrementDigits adds one to a decimal digit string, carrying as needed.
func incrementDigits(s string) string {
	digits := []byte(s)

	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] < '9' {
			digits[i]++

			return string(digits)
		}

		digits[i] = '0'
	}

	return "1" + string(digits)
}

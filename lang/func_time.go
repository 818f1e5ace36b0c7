package lang

import (
	"fmt"
	"strings"
	"time"
)

// timeBuiltins returns the date and time functions.
func timeBuiltins() map[string]Func {
	return map[string]Func{
		"NOW":    funcNow,
		"TODAY":  funcToday,
		"DATE":   funcDate,
		"TIME":   funcTime,
		"YEAR":   componentFunc(func(t time.Time) int { return t.Year() }),
		"MONTH":  componentFunc(func(t time.Time) int { return int(t.Month()) }),
		"DAY":    componentFunc(func(t time.Time) int { return t.Day() }),
		"HOUR":   componentFunc(func(t time.Time) int { return t.Hour() }),
		"MINUTE": componentFunc(func(t time.Time) int { return t.Minute() }),
		"SECOND": componentFunc(func(t time.Time) int { return t.Second() }),
	}
}

// temporalLayouts are tried in order when normalizing text to a date/time.
// Layouts marked clockOnly carry no date and anchor to today.
var temporalLayouts = []struct {
	layout    string
	clockOnly bool
}{
	{layout: "2006-01-02T15:04:05Z07:00"},
	{layout: "2006-01-02T15:04:05"},
	{layout: "2006-01-02 15:04:05"},
	{layout: "2006-01-02"},
	{layout: "15:04:05", clockOnly: true},
	{layout: "15:04", clockOnly: true},
}

// normalizeDateTime resolves v to a concrete instant: temporal values pass
// through (a bare clock is anchored to today), and text is parsed against the
// supported ISO layouts.
func normalizeDateTime(v Value) (time.Time, error) {
	switch v.Kind() {
	case KindDate, KindDateTime:
		return v.Time(), nil

	case KindClock:
		clock := v.Time()
		y, m, d := time.Now().Date()

		return time.Date(y, m, d,
			clock.Hour(), clock.Minute(), clock.Second(), 0, time.Local), nil

	case KindText:
		text := strings.TrimSpace(v.Str())

		for _, candidate := range temporalLayouts {
			parsed, err := time.ParseInLocation(candidate.layout, text, time.Local)
			if err != nil {
				continue
			}

			if candidate.clockOnly {
				y, m, d := time.Now().Date()

				return time.Date(y, m, d,
					parsed.Hour(), parsed.Minute(), parsed.Second(), 0, time.Local), nil
			}

			return parsed, nil
		}
	}

	return time.Time{}, ErrNotDateTime.
		Wrap(fmt.Errorf("%q", v.String()))
}

// componentFunc builds a single-argument function extracting one date/time
// component.
func componentFunc(extract func(time.Time) int) Func {
	return func(inv *Invocation) (Value, error) {
		if err := inv.arity(1, 1); err != nil {
			return Null(), err
		}

		t, err := normalizeDateTime(inv.arg(0))
		if err != nil {
			return Null(), err
		}

		return Int(extract(t)), nil
	}
}

func funcNow(inv *Invocation) (Value, error) {
	if err := inv.arity(0, 0); err != nil {
		return Null(), err
	}

	return DateTime(time.Now()), nil
}

func funcToday(inv *Invocation) (Value, error) {
	if err := inv.arity(0, 0); err != nil {
		return Null(), err
	}

	return Date(time.Now()), nil
}

func funcDate(inv *Invocation) (Value, error) {
	if err := inv.arity(3, 3); err != nil {
		return Null(), err
	}

	year, err := inv.integer(0)
	if err != nil {
		return Null(), err
	}

	month, err := inv.integer(1)
	if err != nil {
		return Null(), err
	}

	day, err := inv.integer(2)
	if err != nil {
		return Null(), err
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)

	// Out-of-range components normalize silently (month 13 rolls into the
	// next year). Reject them instead.
	ty, tm, td := t.Date()
	if ty != year || int(tm) != month || td != day {
		return Null(), ErrInvalidArgument.
			Wrap(fmt.Errorf("DATE components %d-%d-%d out of range", year, month, day))
	}

	return Date(t), nil
}

func funcTime(inv *Invocation) (Value, error) {
	if err := inv.arity(2, 3); err != nil {
		return Null(), err
	}

	hour, err := inv.integer(0)
	if err != nil {
		return Null(), err
	}

	minute, err := inv.integer(1)
	if err != nil {
		return Null(), err
	}

	second := 0

	if len(inv.Args) > 2 {
		second, err = inv.integer(2)
		if err != nil {
			return Null(), err
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return Null(), ErrInvalidArgument.
			Wrap(fmt.Errorf("TIME components %d:%d:%d out of range", hour, minute, second))
	}

	return Clock(hour, minute, second), nil
}

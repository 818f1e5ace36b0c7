package lang

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// textBuiltins returns the string manipulation functions. Positions and
// lengths count runes, not bytes, and are 1-based on the formula side.
func textBuiltins() map[string]Func {
	return map[string]Func{
		"LEN":          funcLen,
		"CONCAT":       funcConcat,
		"CONCATENATE":  funcConcat,
		"TEXTJOIN":     funcTextJoin,
		"LOWER":        funcLower,
		"UPPER":        funcUpper,
		"PROPER":       funcProper,
		"TRIM":         funcTrim,
		"SUBSTITUTE":   funcSubstitute,
		"REPLACE":      funcReplace,
		"LEFT":         funcLeft,
		"RIGHT":        funcRight,
		"MID":          funcMid,
		"SEARCH":       funcSearch,
		"FIND":         funcFind,
		"REGEXREPLACE": funcRegexReplace,
		"SPLIT":        funcSplit,
		"ARRAYFORMULA": funcArrayFormula,
		"TO_TEXT":      funcToText,
		"TEXT":         funcText,
	}
}

func funcLen(inv *Invocation) (Value, error) {
	if err := inv.arity(1, 1); err != nil {
		return Null(), err
	}

	return Int(len([]rune(inv.text(0)))), nil
}

func funcConcat(inv *Invocation) (Value, error) {
	return Text(strings.Join(flattenText(inv.Args), "")), nil
}

func funcTextJoin(inv *Invocation) (Value, error) {
	if err := inv.arity(2, -1); err != nil {
		return Null(), err
	}

	sep := inv.text(0)

	// A text flag only counts as set when it spells TRUE or 1; any other
	// value falls back to general truthiness.
	var ignoreEmpty bool

	if flag := inv.arg(1); flag.Kind() == KindText {
		switch strings.ToUpper(strings.TrimSpace(flag.Str())) {
		case "TRUE", "1":
			ignoreEmpty = true
		}
	} else {
		ignoreEmpty = Truthy(flag)
	}

	var pieces []string

	for _, v := range flatten(inv.Args[2:]) {
		if ignoreEmpty && IsBlank(v) {
			continue
		}

		pieces = append(pieces, v.String())
	}

	return Text(strings.Join(pieces, sep)), nil
}

func funcLower(inv *Invocation) (Value, error) {
	if err := inv.arity(1, 1); err != nil {
		return Null(), err
	}

	return Text(strings.ToLower(inv.text(0))), nil
}

func funcUpper(inv *Invocation) (Value, error) {
	if err := inv.arity(1, 1); err != nil {
		return Null(), err
	}

	return Text(strings.ToUpper(inv.text(0))), nil
}

func funcProper(inv *Invocation) (Value, error) {
	if err := inv.arity(1, 1); err != nil {
		return Null(), err
	}

	words := strings.Fields(inv.text(0))
	for i, word := range words {
		words[i] = capitalize(word)
	}

	return Text(strings.Join(words, " ")), nil
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}

	return string(runes)
}

func funcTrim(inv *Invocation) (Value, error) {
	if err := inv.arity(1, 1); err != nil {
		return Null(), err
	}

	return Text(strings.Join(strings.Fields(inv.text(0)), " ")), nil
}

func funcSubstitute(inv *Invocation) (Value, error) {
	if err := inv.arity(3, 4); err != nil {
		return Null(), err
	}

	source := inv.text(0)
	old := inv.text(1)
	repl := inv.text(2)

	if len(inv.Args) < 4 || inv.arg(3).IsNull() {
		return Text(strings.ReplaceAll(source, old, repl)), nil
	}

	if old == "" {
		return Null(), ErrInvalidArgument.
			Wrap(fmt.Errorf("SUBSTITUTE search text must not be empty"))
	}

	nth, err := inv.integer(3)
	if err != nil {
		return Null(), err
	}

	if nth <= 0 {
		return Text(source), nil
	}

	parts := strings.Split(source, old)
	if len(parts) <= nth {
		return Text(source), nil
	}

	var sb strings.Builder

	for i, part := range parts[:len(parts)-1] {
		sb.WriteString(part)

		if i+1 == nth {
			sb.WriteString(repl)
		} else {
			sb.WriteString(old)
		}
	}

	sb.WriteString(parts[len(parts)-1])

	return Text(sb.String()), nil
}

func funcReplace(inv *Invocation) (Value, error) {
	if err := inv.arity(4, 4); err != nil {
		return Null(), err
	}

	source := []rune(inv.text(0))

	start, err := inv.integer(1)
	if err != nil {
		return Null(), err
	}

	length, err := inv.integer(2)
	if err != nil {
		return Null(), err
	}

	from := max(start-1, 0)
	if from > len(source) {
		from = len(source)
	}

	until := from + max(length, 0)
	if until > len(source) {
		until = len(source)
	}

	return Text(string(source[:from]) + inv.text(3) + string(source[until:])), nil
}

func funcLeft(inv *Invocation) (Value, error) {
	if err := inv.arity(1, 2); err != nil {
		return Null(), err
	}

	count := Int(1)
	if len(inv.Args) > 1 {
		count = inv.arg(1)
	}

	return vectorizeBinary(inv.arg(0), count, func(v, length Value) (Value, error) {
		n, err := ToNumber(length)
		if err != nil {
			return Null(), err
		}

		runes := []rune(v.String())

		size := max(int(n), 0)
		if size > len(runes) {
			size = len(runes)
		}

		return Text(string(runes[:size])), nil
	})
}

func funcRight(inv *Invocation) (Value, error) {
	if err := inv.arity(1, 2); err != nil {
		return Null(), err
	}

	count := Int(1)
	if len(inv.Args) > 1 {
		count = inv.arg(1)
	}

	return vectorizeBinary(inv.arg(0), count, func(v, length Value) (Value, error) {
		n, err := ToNumber(length)
		if err != nil {
			return Null(), err
		}

		runes := []rune(v.String())

		size := max(int(n), 0)
		if size == 0 {
			return Text(""), nil
		}

		if size > len(runes) {
			size = len(runes)
		}

		return Text(string(runes[len(runes)-size:])), nil
	})
}

func funcMid(inv *Invocation) (Value, error) {
	if err := inv.arity(3, 3); err != nil {
		return Null(), err
	}

	source := []rune(inv.text(0))

	start, err := inv.integer(1)
	if err != nil {
		return Null(), err
	}

	length, err := inv.integer(2)
	if err != nil {
		return Null(), err
	}

	from := max(start-1, 0)
	if from > len(source) {
		from = len(source)
	}

	until := from + max(length, 0)
	if until > len(source) {
		until = len(source)
	}

	return Text(string(source[from:until])), nil
}

// textSearch locates needle in haystack starting at the given 1-based rune
// offset and returns the 1-based rune position of the first match.
func textSearch(needle, haystack string, start int) (int, bool) {
	runes := []rune(haystack)

	from := max(start-1, 0)
	if from > len(runes) {
		return 0, false
	}

	idx := strings.Index(string(runes[from:]), needle)
	if idx < 0 {
		return 0, false
	}

	return from + len([]rune(string(runes[from:])[:idx])) + 1, true
}

func funcSearch(inv *Invocation) (Value, error) {
	if err := inv.arity(2, 3); err != nil {
		return Null(), err
	}

	start := 1

	if len(inv.Args) > 2 {
		var err error
		if start, err = inv.integer(2); err != nil {
			return Null(), err
		}
	}

	pos, ok := textSearch(strings.ToLower(inv.text(0)), strings.ToLower(inv.text(1)), start)
	if !ok {
		return Null(), ErrNoMatch.
			Wrap(fmt.Errorf("SEARCH could not find %q", inv.text(0)))
	}

	return Int(pos), nil
}

func funcFind(inv *Invocation) (Value, error) {
	if err := inv.arity(2, 3); err != nil {
		return Null(), err
	}

	start := 1

	if len(inv.Args) > 2 {
		var err error
		if start, err = inv.integer(2); err != nil {
			return Null(), err
		}
	}

	pos, ok := textSearch(inv.text(0), inv.text(1), start)
	if !ok {
		return Null(), ErrNoMatch.
			Wrap(fmt.Errorf("FIND could not find %q", inv.text(0)))
	}

	return Int(pos), nil
}

// funcRegexReplace substitutes every match of an RE2 pattern. The replacement
// string uses $1-style group references.
func funcRegexReplace(inv *Invocation) (Value, error) {
	if err := inv.arity(3, 3); err != nil {
		return Null(), err
	}

	re, err := regexp.Compile(inv.text(1))
	if err != nil {
		return Null(), ErrInvalidPattern.Wrap(err)
	}

	return Text(re.ReplaceAllString(inv.text(0), inv.text(2))), nil
}

func funcSplit(inv *Invocation) (Value, error) {
	if err := inv.arity(2, 2); err != nil {
		return Null(), err
	}

	delim := inv.text(1)
	if delim == "" {
		return Null(), ErrInvalidArgument.
			Wrap(fmt.Errorf("SPLIT delimiter must not be empty"))
	}

	parts := strings.Split(inv.text(0), delim)
	items := make([]Value, len(parts))

	for i, part := range parts {
		items[i] = Text(part)
	}

	return Sequence(items...), nil
}

// funcArrayFormula flattens its arguments into a sequence. A single scalar
// argument passes through unchanged, and no arguments yield an empty
// sequence.
func funcArrayFormula(inv *Invocation) (Value, error) {
	if len(inv.Args) == 0 {
		return Sequence(), nil
	}

	if len(inv.Args) == 1 && inv.Args[0].Kind() != KindSequence {
		return inv.Args[0], nil
	}

	return Sequence(flatten(inv.Args)...), nil
}

func funcToText(inv *Invocation) (Value, error) {
	if err := inv.arity(1, 1); err != nil {
		return Null(), err
	}

	return Text(inv.text(0)), nil
}

// textFormatTokens maps format tokens to native layout fragments, longest
// first so YYYY is consumed before YY.
var textFormatTokens = [...][2]string{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
}

func funcText(inv *Invocation) (Value, error) {
	if err := inv.arity(2, 2); err != nil {
		return Null(), err
	}

	v := inv.arg(0)
	pattern := inv.text(1)

	switch v.Kind() {
	case KindDate, KindDateTime, KindClock:
		t, err := normalizeDateTime(v)
		if err != nil {
			return Null(), err
		}

		layout := pattern
		for _, token := range textFormatTokens {
			layout = strings.ReplaceAll(layout, token[0], token[1])
		}

		return Text(t.Format(layout)), nil
	}

	n, err := ToNumber(v)
	if err != nil {
		return Text(v.String()), nil
	}

	if strings.ContainsAny(pattern, "#0") {
		if _, frac, ok := strings.Cut(pattern, "."); ok {
			decimals := len(frac)
			rounded := roundAt(n, decimals, roundHalfUp)

			return Text(strconv.FormatFloat(rounded, 'f', decimals, 64)), nil
		}

		return Text(formatNumber(roundAt(n, 0, roundHalfUp))), nil
	}

	return Text(formatNumber(n)), nil
}

package lang

import (
	"fmt"
)

// logicBuiltins returns the branching and predicate functions.
//
// All arguments arrive fully evaluated: IF, IFS, and SWITCH select among
// already-computed values and cannot short-circuit.
func logicBuiltins() map[string]Func {
	return map[string]Func{
		"IF":       funcIf,
		"IFS":      funcIfs,
		"SWITCH":   funcSwitch,
		"AND":      funcAnd,
		"OR":       funcOr,
		"NOT":      funcNot,
		"ISNUMBER": funcIsNumber,
		"ISTEXT":   funcIsText,
		"ISBLANK":  funcIsBlank,
	}
}

func funcIf(inv *Invocation) (Value, error) {
	if err := inv.arity(2, 3); err != nil {
		return Null(), err
	}

	if Truthy(inv.arg(0)) {
		return inv.arg(1), nil
	}

	return inv.arg(2), nil
}

func funcIfs(inv *Invocation) (Value, error) {
	if len(inv.Args) < 2 || len(inv.Args)%2 != 0 {
		return Null(), ErrInvalidArgument.
			Wrap(fmt.Errorf("IFS requires condition/value pairs, got %d argument(s)", len(inv.Args)))
	}

	for i := 0; i < len(inv.Args); i += 2 {
		if Truthy(inv.Args[i]) {
			return inv.Args[i+1], nil
		}
	}

	return Null(), ErrNoMatch.
		Wrap(fmt.Errorf("IFS did not match any condition"))
}

func funcSwitch(inv *Invocation) (Value, error) {
	if err := inv.arity(2, -1); err != nil {
		return Null(), err
	}

	expr := inv.arg(0)
	cases := inv.Args[1:]

	// An odd trailing argument is the default. A Null default behaves as if
	// absent.
	var fallback Value

	if len(cases)%2 == 1 {
		fallback = cases[len(cases)-1]
		cases = cases[:len(cases)-1]
	}

	for i := 0; i < len(cases); i += 2 {
		if expr.Equal(cases[i]) {
			return cases[i+1], nil
		}
	}

	if !fallback.IsNull() {
		return fallback, nil
	}

	return Null(), ErrNoMatch.
		Wrap(fmt.Errorf("SWITCH did not match any case"))
}

func funcAnd(inv *Invocation) (Value, error) {
	for _, v := range inv.Args {
		if !Truthy(v) {
			return Bool(false), nil
		}
	}

	return Bool(true), nil
}

func funcOr(inv *Invocation) (Value, error) {
	for _, v := range inv.Args {
		if Truthy(v) {
			return Bool(true), nil
		}
	}

	return Bool(false), nil
}

func funcNot(inv *Invocation) (Value, error) {
	if err := inv.arity(1, 1); err != nil {
		return Null(), err
	}

	return Bool(!Truthy(inv.arg(0))), nil
}

func funcIsNumber(inv *Invocation) (Value, error) {
	if err := inv.arity(1, 1); err != nil {
		return Null(), err
	}

	_, err := ToNumber(inv.arg(0))

	return Bool(err == nil), nil
}

func funcIsText(inv *Invocation) (Value, error) {
	if err := inv.arity(1, 1); err != nil {
		return Null(), err
	}

	return Bool(inv.arg(0).Kind() == KindText), nil
}

func funcIsBlank(inv *Invocation) (Value, error) {
	if err := inv.arity(1, 1); err != nil {
		return Null(), err
	}

	return Bool(IsBlank(inv.arg(0))), nil
}

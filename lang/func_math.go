package lang

import (
	"fmt"
)

// mathBuiltins returns the aggregation and rounding functions.
func mathBuiltins() map[string]Func {
	return map[string]Func{
		"SUM":       funcSum,
		"AVERAGE":   funcAverage,
		"MIN":       funcMin,
		"MAX":       funcMax,
		"ROUND":     funcRound,
		"ROUNDUP":   funcRoundUp,
		"ROUNDDOWN": funcRoundDown,
		"VALUE":     funcValue,
	}
}

// numericArgs flattens the arguments and coerces every scalar to a number.
func numericArgs(inv *Invocation) ([]float64, error) {
	flat := flatten(inv.Args)
	nums := make([]float64, len(flat))

	for i, v := range flat {
		f, err := ToNumber(v)
		if err != nil {
			return nil, err
		}

		nums[i] = f
	}

	return nums, nil
}

func funcSum(inv *Invocation) (Value, error) {
	nums, err := numericArgs(inv)
	if err != nil {
		return Null(), err
	}

	var total float64
	for _, f := range nums {
		total += f
	}

	return Number(total), nil
}

func funcAverage(inv *Invocation) (Value, error) {
	nums, err := numericArgs(inv)
	if err != nil {
		return Null(), err
	}

	if len(nums) == 0 {
		return Null(), ErrInvalidArgument.
			Wrap(fmt.Errorf("AVERAGE requires at least one numeric value"))
	}

	var total float64
	for _, f := range nums {
		total += f
	}

	return Number(total / float64(len(nums))), nil
}

func funcMin(inv *Invocation) (Value, error) {
	nums, err := numericArgs(inv)
	if err != nil {
		return Null(), err
	}

	if len(nums) == 0 {
		return Null(), ErrInvalidArgument.
			Wrap(fmt.Errorf("MIN requires at least one numeric value"))
	}

	least := nums[0]
	for _, f := range nums[1:] {
		if f < least {
			least = f
		}
	}

	return Number(least), nil
}

func funcMax(inv *Invocation) (Value, error) {
	nums, err := numericArgs(inv)
	if err != nil {
		return Null(), err
	}

	if len(nums) == 0 {
		return Null(), ErrInvalidArgument.
			Wrap(fmt.Errorf("MAX requires at least one numeric value"))
	}

	most := nums[0]
	for _, f := range nums[1:] {
		if f > most {
			most = f
		}
	}

	return Number(most), nil
}

// roundCall implements the shared shape of ROUND, ROUNDUP, and ROUNDDOWN: a
// number and an optional digit count (default 0).
func roundCall(inv *Invocation, mode roundMode) (Value, error) {
	if err := inv.arity(1, 2); err != nil {
		return Null(), err
	}

	f, err := inv.number(0)
	if err != nil {
		return Null(), err
	}

	digits := 0

	if len(inv.Args) > 1 {
		digits, err = inv.integer(1)
		if err != nil {
			return Null(), err
		}
	}

	return Number(roundAt(f, digits, mode)), nil
}

func funcRound(inv *Invocation) (Value, error) {
	return roundCall(inv, roundHalfUp)
}

func funcRoundUp(inv *Invocation) (Value, error) {
	return roundCall(inv, roundUp)
}

func funcRoundDown(inv *Invocation) (Value, error) {
	return roundCall(inv, roundDown)
}

func funcValue(inv *Invocation) (Value, error) {
	if err := inv.arity(1, 1); err != nil {
		return Null(), err
	}

	f, err := inv.number(0)
	if err != nil {
		return Null(), err
	}

	return Number(f), nil
}

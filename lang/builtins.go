package lang

// flatten expands nested sequences depth-first into a flat list of scalars.
func flatten(vals []Value) []Value {
	out := make([]Value, 0, len(vals))

	for _, v := range vals {
		if v.Kind() == KindSequence {
			out = append(out, flatten(v.Seq())...)

			continue
		}

		out = append(out, v)
	}

	return out
}

// flattenText renders flattened scalars as text, skipping Null entries.
func flattenText(vals []Value) []string {
	out := make([]string, 0, len(vals))

	for _, v := range flatten(vals) {
		if v.IsNull() {
			continue
		}

		out = append(out, v.String())
	}

	return out
}

// vectorizeUnary applies fn element-wise when v is a sequence, directly
// otherwise.
func vectorizeUnary(v Value, fn func(Value) (Value, error)) (Value, error) {
	if v.Kind() != KindSequence {
		return fn(v)
	}

	items := v.Seq()
	out := make([]Value, len(items))

	for i, item := range items {
		mapped, err := vectorizeUnary(item, fn)
		if err != nil {
			return Null(), err
		}

		out[i] = mapped
	}

	return Sequence(out...), nil
}

// vectorizeBinary applies fn element-wise when either operand is a sequence:
// two sequences pair by index (extra elements are dropped), and a scalar
// broadcasts against a sequence.
func vectorizeBinary(left, right Value, fn func(a, b Value) (Value, error)) (Value, error) {
	lseq := left.Kind() == KindSequence
	rseq := right.Kind() == KindSequence

	switch {
	case lseq && rseq:
		ls, rs := left.Seq(), right.Seq()

		n := len(ls)
		if len(rs) < n {
			n = len(rs)
		}

		out := make([]Value, n)

		for i := range n {
			mapped, err := vectorizeBinary(ls[i], rs[i], fn)
			if err != nil {
				return Null(), err
			}

			out[i] = mapped
		}

		return Sequence(out...), nil

	case lseq:
		out := make([]Value, len(left.Seq()))

		for i, item := range left.Seq() {
			mapped, err := vectorizeBinary(item, right, fn)
			if err != nil {
				return Null(), err
			}

			out[i] = mapped
		}

		return Sequence(out...), nil

	case rseq:
		out := make([]Value, len(right.Seq()))

		for i, item := range right.Seq() {
			mapped, err := vectorizeBinary(left, item, fn)
			if err != nil {
				return Null(), err
			}

			out[i] = mapped
		}

		return Sequence(out...), nil

	default:
		return fn(left, right)
	}
}

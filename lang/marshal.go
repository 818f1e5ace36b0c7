package lang

import (
	"fmt"
	"sort"
	"time"

	"github.com/goccy/go-yaml"
)

// VarsFromYAML parses a YAML document of variable bindings. Nested mappings
// flatten into dotted names, so
//
//	user:
//	  name: Ada
//
// binds {{user.name}}.
func VarsFromYAML(data []byte) (Vars, error) {
	var raw map[string]any

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, ErrInvalidArgument.
			Wrap(fmt.Errorf("parsing variable bindings: %w", err))
	}

	vars := make(Vars, len(raw))
	for name, value := range raw {
		bindNative(vars, name, value)
	}

	return vars, nil
}

// bindNative binds one native value under name, descending into mappings
// with dotted names.
func bindNative(vars Vars, name string, value any) {
	switch v := value.(type) {
	case map[string]any:
		for key, nested := range v {
			bindNative(vars, name+"."+key, nested)
		}

	case map[any]any:
		for key, nested := range v {
			bindNative(vars, fmt.Sprintf("%s.%v", name, key), nested)
		}

	default:
		vars[name] = FromNative(value)
	}
}

// FromNative converts a native Go value into an engine [Value].
func FromNative(value any) Value {
	switch v := value.(type) {
	case nil:
		return Null()

	case Value:
		return v

	case bool:
		return Bool(v)

	case string:
		return Text(v)

	case int:
		return Int(v)

	case int64:
		return Number(float64(v))

	case uint64:
		return Number(float64(v))

	case float32:
		return Number(float64(v))

	case float64:
		return Number(v)

	case time.Time:
		if h, m, s := v.Clock(); h == 0 && m == 0 && s == 0 {
			return Date(v)
		}

		return DateTime(v)

	case func() Value:
		return Lazy(v)

	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			items[i] = FromNative(item)
		}

		return Sequence(items...)

	case map[string]any:
		// A mapping inside a sequence has no dotted-name home; keep its
		// values in key order.
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		items := make([]Value, len(keys))
		for i, key := range keys {
			items[i] = FromNative(v[key])
		}

		return Sequence(items...)

	default:
		return Text(fmt.Sprint(v))
	}
}

// ToNative converts v into the plain Go value its kind corresponds to,
// suitable for YAML or JSON encoding. Integral numbers become int64 so they
// encode without a decimal point; temporal values encode as their ISO text.
func (v Value) ToNative() any {
	switch v.Kind() {
	case KindNull:
		return nil

	case KindNumber:
		f := v.Float()
		if f == float64(int64(f)) {
			return int64(f)
		}

		return f

	case KindText:
		return v.Str()

	case KindBool:
		return v.Bool()

	case KindDate, KindDateTime, KindClock:
		return v.String()

	case KindSequence:
		items := make([]any, len(v.Seq()))
		for i, item := range v.Seq() {
			items[i] = item.ToNative()
		}

		return items

	case KindLazy:
		return v.Force().ToNative()

	default:
		return nil
	}
}

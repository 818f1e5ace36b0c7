package lang

import (
	"errors"
	"strings"
	"testing"
)

func evalString(t *testing.T, formula string, vars Vars) Value {
	t.Helper()

	result, err := Evaluate(formula, vars)
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	return result
}

func TestEvaluate_Arithmetic(t *testing.T) {
	tests := []struct {
		formula string
		want    float64
	}{
		{formula: "1 + 2 * 3", want: 7},
		{formula: "(1 + 2) * 3", want: 9},
		{formula: "2 ^ 3 ^ 2", want: 512},
		{formula: "10 - 4 / 2", want: 8},
		{formula: "-3 + 5", want: 2},
		{formula: "=1 + 1", want: 2},
		// Unspaced arithmetic: a sign after a value is an operator,
		// not the start of a second literal.
		{formula: "=1+2*3", want: 7},
		{formula: "=10-4", want: 6},
		{formula: "1 -2", want: -1},
		{formula: "2--3", want: 5},
		{formula: "-2^2", want: 4},
		{formula: "=SUM(1;-2)", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			result := evalString(t, tt.formula, nil)

			if result.Kind() != KindNumber {
				t.Fatalf("expected number, got %s", result.Kind())
			}

			if got := result.Float(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEvaluate_BlankFormula(t *testing.T) {
	for _, formula := range []string{"", "   ", "=", "=   "} {
		result := evalString(t, formula, nil)

		if result.Kind() != KindText || result.Str() != "" {
			t.Errorf("formula %q: expected empty text, got %s %q",
				formula, result.Kind(), result.String())
		}
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	_, err := Evaluate("1 / 0", nil)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected division by zero error, got %v", err)
	}
}

func TestEvaluate_Variables(t *testing.T) {
	vars := Vars{
		"price": Number(19.99),
		"qty":   Int(3),
	}

	result := evalString(t, "{{price}} * {{qty}}", vars)

	if got := result.Float(); got != 59.97 {
		t.Errorf("expected 59.97, got %v", got)
	}
}

func TestEvaluate_UnknownVariable(t *testing.T) {
	_, err := Evaluate("{{missing}} + 1", nil)
	if !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("expected unknown variable error, got %v", err)
	}

	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("expected variable name in message, got %q", err.Error())
	}
}

func TestEvaluate_LazyVariable(t *testing.T) {
	calls := 0
	vars := Vars{
		"deferred": Lazy(func() Value {
			calls++

			return Int(42)
		}),
	}

	result := evalString(t, "{{deferred}} + 1", vars)

	if got := result.Float(); got != 43 {
		t.Errorf("expected 43, got %v", got)
	}

	if calls != 1 {
		t.Errorf("expected one invocation of the lazy binding, got %d", calls)
	}
}

func TestEvaluate_Concatenation(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		vars    Vars
		want    string
	}{
		{name: "text and number", formula: `"total: " & 42`, want: "total: 42"},
		{name: "null drops out", formula: `"a" & NULL & "b"`, want: "ab"},
		{
			name:    "sequence flattens",
			formula: `"items: " & {{items}}`,
			vars:    Vars{"items": Sequence(Int(1), Int(2), Int(3))},
			want:    "items: 123",
		},
		{name: "integral number has no decimal point", formula: `"n=" & 2.0`, want: "n=2"},
		{name: "boolean renders upper case", formula: `"" & TRUE`, want: "TRUE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evalString(t, tt.formula, tt.vars)

			if got := result.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEvaluate_Comparisons(t *testing.T) {
	tests := []struct {
		formula string
		vars    Vars
		want    bool
	}{
		{formula: "1 < 2", want: true},
		{formula: "2 <= 2", want: true},
		{formula: "3 <> 3", want: false},
		{formula: `"10" = 10`, want: true},
		{formula: `TRUE = 1`, want: true},
		{formula: `"abc" < "abd"`, want: true},
		{formula: `NULL = ""`, want: true},
		{formula: "(1 = 1) = TRUE", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			result := evalString(t, tt.formula, tt.vars)

			if result.Kind() != KindBool {
				t.Fatalf("expected boolean, got %s", result.Kind())
			}

			if got := result.Bool(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEvaluate_TextCoercionInArithmetic(t *testing.T) {
	result := evalString(t, `"2" + 3`, nil)

	if got := result.Float(); got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
}

func TestEvaluate_NonNumericTextFails(t *testing.T) {
	_, err := Evaluate(`"abc" + 1`, nil)
	if !errors.Is(err, ErrNotNumeric) {
		t.Errorf("expected numeric coercion error, got %v", err)
	}
}

func TestEvaluate_UnknownFunction(t *testing.T) {
	_, err := Evaluate("FOO(1)", nil)
	if !errors.Is(err, ErrUnknownFunction) {
		t.Fatalf("expected unknown function error, got %v", err)
	}

	if !strings.Contains(err.Error(), "FOO") {
		t.Errorf("expected function name in message, got %q", err.Error())
	}
}

func TestEvaluate_UnknownFunctionSuggestion(t *testing.T) {
	_, err := Evaluate("SUMM(1; 2)", nil)
	if !errors.Is(err, ErrUnknownFunction) {
		t.Fatalf("expected unknown function error, got %v", err)
	}

	if !strings.Contains(err.Error(), "SUM") {
		t.Errorf("expected a suggestion mentioning SUM, got %q", err.Error())
	}
}

func TestEvaluate_ErrorAbortsEvaluation(t *testing.T) {
	// The failing argument poisons the whole call chain.
	_, err := Evaluate("SUM(1; {{missing}}; 3)", nil)
	if !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("expected unknown variable error, got %v", err)
	}
}

func TestEvaluate_FunctionPanicIsReported(t *testing.T) {
	reg := NewRegistry()
	reg.Register("BOOM", func(inv *Invocation) (Value, error) {
		panic("kaput")
	})

	engine := New(WithRegistry(reg))

	_, err := engine.Evaluate("BOOM()", nil)
	if !errors.Is(err, ErrFunctionFailed) {
		t.Fatalf("expected function failure, got %v", err)
	}

	if !strings.Contains(err.Error(), "BOOM") {
		t.Errorf("expected function name in message, got %q", err.Error())
	}
}

func TestEvaluate_SentinelErrorsPassThrough(t *testing.T) {
	reg := NewRegistry()
	reg.Register("STRICT", func(inv *Invocation) (Value, error) {
		return Null(), ErrInvalidArgument.Wrap(errors.New("STRICT wants nothing"))
	})

	engine := New(WithRegistry(reg))

	_, err := engine.Evaluate("STRICT(1)", nil)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected the sentinel to survive, got %v", err)
	}

	if errors.Is(err, ErrFunctionFailed) {
		t.Errorf("sentinel error must not be re-wrapped as a function failure")
	}
}

func TestEvaluate_CustomFunctionOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register("SUM", func(inv *Invocation) (Value, error) {
		return Int(-1), nil
	})

	engine := New(WithRegistry(reg))

	result, err := engine.Evaluate("SUM(1; 2; 3)", nil)
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if got := result.Float(); got != -1 {
		t.Errorf("expected override result -1, got %v", got)
	}

	// The shared default registry is unaffected.
	fallback := evalString(t, "SUM(1; 2; 3)", nil)
	if got := fallback.Float(); got != 6 {
		t.Errorf("expected default SUM result 6, got %v", got)
	}
}

func TestEvaluate_DepthLimit(t *testing.T) {
	deep := strings.Repeat("(", 30) + "1" + strings.Repeat(")", 30)

	engine := New(WithMaxDepth(10))

	if _, err := engine.Evaluate(deep, nil); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("expected depth limit error, got %v", err)
	}
}

func TestEvaluate_CaseInsensitiveFunctionNames(t *testing.T) {
	result := evalString(t, "sum(1; 2)", nil)

	if got := result.Float(); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
}

func TestParse_EmptyFormulaIsError(t *testing.T) {
	if _, err := Parse("   "); !errors.Is(err, ErrEmptyFormula) {
		t.Errorf("expected empty formula error, got %v", err)
	}

	if _, err := Parse("="); !errors.Is(err, ErrEmptyFormula) {
		t.Errorf("expected empty formula error for bare '=', got %v", err)
	}
}

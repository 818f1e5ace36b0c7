package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
)

// Vars holds the variable bindings a formula evaluates against, keyed by the
// name appearing inside {{…}} placeholders. Names are case-sensitive.
type Vars map[string]Value

// DefaultMaxDepth bounds expression nesting when no explicit limit is
// configured.
const DefaultMaxDepth = 200

// Engine evaluates formulas against a function registry. Engines are cheap
// and safe to share across goroutines.
type Engine struct {
	funcs    *Registry
	maxDepth int
}

// Option configures an [Engine].
type Option func(*Engine)

// WithRegistry evaluates formulas against reg instead of the shared default
// registry.
func WithRegistry(reg *Registry) Option {
	return func(e *Engine) {
		if reg != nil {
			e.funcs = reg
		}
	}
}

// WithMaxDepth bounds expression nesting. Non-positive limits are ignored.
func WithMaxDepth(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.maxDepth = limit
		}
	}
}

// New returns an engine with the given options applied.
func New(opts ...Option) *Engine {
	e := &Engine{
		funcs:    DefaultRegistry(),
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Registry returns the function registry this engine dispatches through.
func (e *Engine) Registry() *Registry { return e.funcs }

// prepare trims the formula and strips one leading "=". The second return is
// true when nothing evaluable remains.
func prepare(formula string) (string, bool) {
	expr := strings.TrimSpace(formula)
	if expr == "" {
		return "", true
	}

	if rest, found := strings.CutPrefix(expr, "="); found {
		expr = strings.TrimSpace(rest)
	}

	return expr, expr == ""
}

// Parse parses a formula into its syntax tree without evaluating it.
// A blank formula is an error here, unlike [Engine.Evaluate].
func (e *Engine) Parse(formula string) (Node, error) {
	expr, blank := prepare(formula)
	if blank {
		return nil, ErrEmptyFormula
	}

	tokens, err := Tokenize(expr)
	if err != nil {
		return nil, err
	}

	return parseTokens(tokens, e.maxDepth)
}

// Evaluate parses and evaluates a formula against the given variable
// bindings. A blank formula (or a bare "=") evaluates to empty text.
func (e *Engine) Evaluate(formula string, vars Vars) (Value, error) {
	expr, blank := prepare(formula)
	if blank {
		return Text(""), nil
	}

	tokens, err := Tokenize(expr)
	if err != nil {
		return Null(), err
	}

	node, err := parseTokens(tokens, e.maxDepth)
	if err != nil {
		return Null(), err
	}

	ec := &evalContext{vars: vars, funcs: e.funcs, maxDepth: e.maxDepth}

	result, err := ec.eval(node)
	if err != nil {
		return Null(), err
	}

	logger().Debug("evaluated formula",
		slog.String("formula", expr),
		slog.String("kind", result.Kind().String()),
	)

	return result, nil
}

// defaultEngine backs the package-level helpers.
var defaultEngine = sync.OnceValue(func() *Engine { return New() })

// Evaluate runs a formula through the shared default engine.
func Evaluate(formula string, vars Vars) (Value, error) {
	return defaultEngine().Evaluate(formula, vars)
}

// Parse parses a formula through the shared default engine.
func Parse(formula string) (Node, error) {
	return defaultEngine().Parse(formula)
}

// Describe analyzes a formula through the shared default engine.
func Describe(formula string) (*Description, error) {
	return defaultEngine().Describe(formula)
}

// evalContext carries one evaluation through the tree.
type evalContext struct {
	vars     Vars
	funcs    *Registry
	depth    int
	maxDepth int
}

func (c *evalContext) eval(node Node) (Value, error) {
	c.depth++
	defer func() { c.depth-- }()

	if c.depth > c.maxDepth {
		return Null(), ErrMaxDepthExceeded
	}

	switch n := node.(type) {
	case *Literal:
		return n.Val, nil

	case *Variable:
		v, ok := c.vars[n.Name]
		if !ok {
			return Null(), ErrUnknownVariable.
				Wrap(fmt.Errorf("%q", n.Name))
		}

		return v.Force(), nil

	case *Unary:
		operand, err := c.eval(n.Operand)
		if err != nil {
			return Null(), err
		}

		f, err := ToNumber(operand)
		if err != nil {
			return Null(), err
		}

		if n.Op == "-" {
			f = -f
		}

		return Number(f), nil

	case *Binary:
		left, err := c.eval(n.Left)
		if err != nil {
			return Null(), err
		}

		right, err := c.eval(n.Right)
		if err != nil {
			return Null(), err
		}

		return applyBinary(n.Op, left, right)

	case *Compare:
		left, err := c.eval(n.Left)
		if err != nil {
			return Null(), err
		}

		right, err := c.eval(n.Right)
		if err != nil {
			return Null(), err
		}

		return compareValues(n.Op, left, right)

	case *Call:
		return c.call(n)

	default:
		return Null(), ErrUnexpectedToken.
			Wrap(fmt.Errorf("unsupported node type %T", node))
	}
}

// applyBinary applies an arithmetic or concatenation operator. Concatenation
// flattens both operands to text; everything else coerces to numbers.
func applyBinary(op string, left, right Value) (Value, error) {
	if op == "&" {
		return Text(strings.Join(flattenText([]Value{left, right}), "")), nil
	}

	lf, err := ToNumber(left)
	if err != nil {
		return Null(), err
	}

	rf, err := ToNumber(right)
	if err != nil {
		return Null(), err
	}

	switch op {
	case "+":
		return Number(lf + rf), nil
	case "-":
		return Number(lf - rf), nil
	case "*":
		return Number(lf * rf), nil
	case "/":
		if rf == 0 {
			return Null(), ErrDivisionByZero
		}

		return Number(lf / rf), nil
	case "^":
		return Number(math.Pow(lf, rf)), nil
	default:
		return Null(), ErrUnexpectedToken.
			Wrap(fmt.Errorf("binary operator %q", op))
	}
}

// call evaluates every argument eagerly, then dispatches through the
// registry. Errors already carrying an engine sentinel pass through
// unchanged; anything else, including a panic inside the function, is
// reported as a function execution failure.
func (c *evalContext) call(n *Call) (result Value, err error) {
	fn, ok := c.funcs.Lookup(n.Name)
	if !ok {
		detail := fmt.Errorf("%q", n.Name)
		if hint := c.funcs.Suggest(n.Name); hint != "" {
			detail = fmt.Errorf("%q (did you mean %s?)", n.Name, hint)
		}

		return Null(), ErrUnknownFunction.Wrap(detail)
	}

	args := make([]Value, len(n.Args))

	for i, argNode := range n.Args {
		arg, err := c.eval(argNode)
		if err != nil {
			return Null(), err
		}

		args[i] = arg
	}

	defer func() {
		if r := recover(); r != nil {
			result = Null()
			err = ErrFunctionFailed.
				Wrap(fmt.Errorf("%q: panic: %v", n.Name, r)).
				With(slog.String("function", n.Name))
		}
	}()

	result, err = fn(&Invocation{
		Name:  n.Name,
		Args:  args,
		Vars:  c.vars,
		Funcs: c.funcs,
	})
	if err != nil {
		ee := &Error{}
		if errors.As(err, &ee) {
			return Null(), err
		}

		return Null(), ErrFunctionFailed.
			Wrap(fmt.Errorf("%q: %w", n.Name, err)).
			With(slog.String("function", n.Name))
	}

	return result, nil
}

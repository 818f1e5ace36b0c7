package lang

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

// Func is the fixed signature shared by built-in and user-registered
// functions. Arguments arrive fully evaluated; a function that needs the
// active variable bindings or the registry reads them from the invocation.
type Func func(inv *Invocation) (Value, error)

// Invocation carries one evaluated function call across the registry
// boundary.
type Invocation struct {
	// Name is the canonical upper-cased function name being invoked.
	Name string

	// Args holds the evaluated positional arguments.
	Args []Value

	// Vars is the active evaluation context. Read-only.
	Vars Vars

	// Funcs is the registry the call was dispatched through.
	Funcs *Registry
}

// arg returns the i-th argument, or Null when absent.
func (inv *Invocation) arg(i int) Value {
	if i < 0 || i >= len(inv.Args) {
		return Null()
	}

	return inv.Args[i]
}

// number coerces the i-th argument to a number.
func (inv *Invocation) number(i int) (float64, error) {
	return ToNumber(inv.arg(i))
}

// integer coerces the i-th argument to a number and truncates it.
func (inv *Invocation) integer(i int) (int, error) {
	f, err := inv.number(i)
	if err != nil {
		return 0, err
	}

	return int(f), nil
}

// text renders the i-th argument as text (Null renders empty).
func (inv *Invocation) text(i int) string {
	return inv.arg(i).String()
}

// arity fails unless the argument count is within [min, max].
// A max of -1 allows any count at or above min.
func (inv *Invocation) arity(min, max int) error {
	n := len(inv.Args)
	if n < min || (max >= 0 && n > max) {
		return ErrInvalidArgument.
			Wrap(fmt.Errorf("%s accepts %s, got %d",
				inv.Name, arityRange(min, max), n))
	}

	return nil
}

func arityRange(min, max int) string {
	switch {
	case max < 0:
		return fmt.Sprintf("at least %d argument(s)", min)
	case min == max:
		return fmt.Sprintf("%d argument(s)", min)
	default:
		return fmt.Sprintf("%d to %d arguments", min, max)
	}
}

// defaultFuncs assembles the built-in function table once.
var defaultFuncs = sync.OnceValue(func() map[string]Func {
	table := make(map[string]Func, 64)

	for _, group := range []map[string]Func{
		logicBuiltins(),
		mathBuiltins(),
		textBuiltins(),
		timeBuiltins(),
	} {
		for name, fn := range group {
			table[name] = fn
		}
	}

	return table
})

// Registry is the table of built-in and user-registered functions, keyed by
// canonical upper-cased name. It is safe for concurrent use.
//
// A lookup that misses re-populates any built-in name still absent from the
// table with its default implementation, without touching names a caller
// explicitly registered. Built-ins therefore cannot be permanently removed:
// Unregister of a built-in name only lasts until the next lookup miss.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry returns a registry populated with every built-in function.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func, len(defaultFuncs()))}
	r.heal()

	return r
}

// defaultRegistry backs the package-level Evaluate and Describe helpers and
// any Engine constructed without WithRegistry.
var defaultRegistry = sync.OnceValue(NewRegistry)

// DefaultRegistry returns the process-wide shared registry.
func DefaultRegistry() *Registry { return defaultRegistry() }

// heal restores absent built-in defaults. Callers must hold mu.
func (r *Registry) heal() {
	for name, fn := range defaultFuncs() {
		if _, ok := r.funcs[name]; !ok {
			r.funcs[name] = fn
		}
	}
}

// Register binds fn under the upper-cased name, replacing any existing
// binding.
//
// All call arguments are evaluated eagerly before dispatch, so a registered
// function cannot short-circuit evaluation of its own arguments. Register
// every function before concurrent evaluation begins where possible;
// registration during evaluation is safe but its timing is unspecified.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.heal()
	r.funcs[strings.ToUpper(name)] = fn
}

// Unregister removes the binding for name. Built-in names reappear with
// their default implementation on the next lookup miss.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.funcs, strings.ToUpper(name))
}

// Lookup returns the function bound to name.
func (r *Registry) Lookup(name string) (Func, bool) {
	name = strings.ToUpper(name)

	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()

	if ok {
		return fn, true
	}

	// Miss: restore any absent defaults, then retry.
	r.mu.Lock()
	defer r.mu.Unlock()

	r.heal()
	fn, ok = r.funcs[name]

	return fn, ok
}

// Names returns every registered function name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Suggest returns the registered name closest to the given one, or "" when
// nothing is plausibly close.
func (r *Registry) Suggest(name string) string {
	name = strings.ToUpper(name)
	names := r.Names()

	if matches := fuzzy.Find(name, names); len(matches) > 0 {
		return matches[0].Str
	}

	// A typo longer than its target ("SUMM" for "SUM") cannot match in the
	// forward direction, so also try matching each registered name into the
	// input.
	var (
		best  string
		score = -1
	)

	for _, candidate := range names {
		if matches := fuzzy.Find(candidate, []string{name}); len(matches) > 0 {
			if matches[0].Score > score {
				best, score = candidate, matches[0].Score
			}
		}
	}

	return best
}

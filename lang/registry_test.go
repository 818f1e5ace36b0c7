package lang

import (
	"testing"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()

	reg.Register("double", func(inv *Invocation) (Value, error) {
		if err := inv.arity(1, 1); err != nil {
			return Null(), err
		}

		f, err := inv.number(0)
		if err != nil {
			return Null(), err
		}

		return Number(f * 2), nil
	})

	// Names canonicalize to upper case.
	if _, ok := reg.Lookup("DOUBLE"); !ok {
		t.Fatal("expected DOUBLE to resolve")
	}

	engine := New(WithRegistry(reg))

	result, err := engine.Evaluate("DOUBLE(21)", nil)
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if got := result.Float(); got != 42 {
		t.Errorf("expected 42, got %v", got)
	}
}

func TestRegistry_BuiltinsSelfHeal(t *testing.T) {
	reg := NewRegistry()

	reg.Unregister("SUM")

	// The built-in reappears on the next lookup miss.
	if _, ok := reg.Lookup("SUM"); !ok {
		t.Fatal("expected SUM to self-heal after unregistration")
	}
}

func TestRegistry_HealDoesNotClobberOverrides(t *testing.T) {
	reg := NewRegistry()

	reg.Register("SUM", func(inv *Invocation) (Value, error) {
		return Int(-1), nil
	})

	// A miss on another name triggers healing; the override must survive.
	reg.Lookup("NO_SUCH_FUNCTION")

	fn, ok := reg.Lookup("SUM")
	if !ok {
		t.Fatal("expected SUM to resolve")
	}

	result, err := fn(&Invocation{Name: "SUM"})
	if err != nil {
		t.Fatalf("call error: %v", err)
	}

	if got := result.Float(); got != -1 {
		t.Errorf("expected the override to survive healing, got %v", got)
	}
}

func TestRegistry_UnregisterCustom(t *testing.T) {
	reg := NewRegistry()

	reg.Register("CUSTOM", func(inv *Invocation) (Value, error) {
		return Null(), nil
	})

	reg.Unregister("CUSTOM")

	// Custom names have no default to heal back to.
	if _, ok := reg.Lookup("CUSTOM"); ok {
		t.Error("expected CUSTOM to stay unregistered")
	}
}

func TestRegistry_NamesSorted(t *testing.T) {
	names := NewRegistry().Names()

	if len(names) < 40 {
		t.Fatalf("expected the full built-in table, got %d names", len(names))
	}

	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestRegistry_Suggest(t *testing.T) {
	reg := NewRegistry()

	if got := reg.Suggest("SUMM"); got != "SUM" {
		t.Errorf("expected SUM, got %q", got)
	}

	if got := reg.Suggest("AVERGE"); got != "AVERAGE" {
		t.Errorf("expected AVERAGE, got %q", got)
	}
}

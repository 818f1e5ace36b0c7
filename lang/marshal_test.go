package lang

import (
	"testing"
)

func TestVarsFromYAML(t *testing.T) {
	doc := []byte(`
price: 19.99
qty: 3
name: Ada
active: true
missing: null
tags:
  - red
  - green
user:
  name: Grace
  address:
    city: Oslo
`)

	vars, err := VarsFromYAML(doc)
	if err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if got := vars["price"].Float(); got != 19.99 {
		t.Errorf("price: expected 19.99, got %v", got)
	}

	if got := vars["name"].Str(); got != "Ada" {
		t.Errorf("name: expected Ada, got %q", got)
	}

	if !vars["active"].Bool() {
		t.Error("active: expected true")
	}

	if !vars["missing"].IsNull() {
		t.Error("missing: expected null")
	}

	if got := vars["tags"].Kind(); got != KindSequence {
		t.Errorf("tags: expected sequence, got %s", got)
	}

	// Nested mappings flatten into dotted names.
	if got := vars["user.name"].Str(); got != "Grace" {
		t.Errorf("user.name: expected Grace, got %q", got)
	}

	if got := vars["user.address.city"].Str(); got != "Oslo" {
		t.Errorf("user.address.city: expected Oslo, got %q", got)
	}
}

func TestVarsFromYAML_DrivesEvaluation(t *testing.T) {
	vars, err := VarsFromYAML([]byte("price: 10\nqty: 4\n"))
	if err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	result, err := Evaluate("{{price}} * {{qty}}", vars)
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if got := result.Float(); got != 40 {
		t.Errorf("expected 40, got %v", got)
	}
}

func TestVarsFromYAML_Invalid(t *testing.T) {
	if _, err := VarsFromYAML([]byte(": not yaml : [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestToNative(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want any
	}{
		{name: "null", in: Null(), want: nil},
		{name: "integral number", in: Number(5.0), want: int64(5)},
		{name: "fraction", in: Number(2.5), want: 2.5},
		{name: "text", in: Text("x"), want: "x"},
		{name: "bool", in: Bool(true), want: true},
		{name: "clock", in: Clock(9, 30, 0), want: "09:30:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.ToNative(); got != tt.want {
				t.Errorf("expected %v (%T), got %v (%T)", tt.want, tt.want, got, got)
			}
		})
	}
}

func TestToNative_Sequence(t *testing.T) {
	native := Sequence(Int(1), Text("a")).ToNative()

	items, ok := native.([]any)
	if !ok {
		t.Fatalf("expected slice, got %T", native)
	}

	if len(items) != 2 || items[0] != int64(1) || items[1] != "a" {
		t.Errorf("unexpected conversion: %v", items)
	}
}

func TestFromNative_Lazy(t *testing.T) {
	v := FromNative(func() Value { return Int(7) })

	if v.Kind() != KindLazy {
		t.Fatalf("expected lazy, got %s", v.Kind())
	}

	if got := v.Force().Float(); got != 7 {
		t.Errorf("expected 7, got %v", got)
	}
}

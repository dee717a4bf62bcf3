package value

import (
	"testing"

	"scriptbox/internal/types"
)

func TestNewAssignsTypeID(t *testing.T) {
	reg := types.NewRegistry()
	v := New(reg, int64(42))
	if v.TypeID() == types.Invalid {
		t.Fatal("expected a non-invalid type id")
	}
	got, ok := Cast[int64](v)
	if !ok || got != 42 {
		t.Fatalf("got (%v,%v), want (42,true)", got, ok)
	}
}

func TestEmptyAdoptsTypeOnSet(t *testing.T) {
	reg := types.NewRegistry()
	slot := Empty()
	if !slot.IsEmpty() {
		t.Fatal("fresh value must be empty")
	}
	slot.Set(New(reg, "hello"))
	if slot.IsEmpty() {
		t.Fatal("value must not be empty after Set")
	}
	s, ok := Cast[string](slot)
	if !ok || s != "hello" {
		t.Fatalf("got (%v,%v), want (hello,true)", s, ok)
	}
}

func TestBorrowWritesThroughToHostVariable(t *testing.T) {
	reg := types.NewRegistry()
	var host int64 = 1
	borrowed := BorrowOf(reg, &host)

	borrowed.Set(New(reg, int64(99)))
	if host != 99 {
		t.Fatalf("expected write-through, host = %d", host)
	}

	got, ok := Cast[int64](borrowed)
	if !ok || got != 99 {
		t.Fatalf("got (%v,%v), want (99,true)", got, ok)
	}
}

func TestPlainValueSetFromBorrowedSource(t *testing.T) {
	reg := types.NewRegistry()
	var host int64 = 41
	borrowed := BorrowOf(reg, &host)

	plain := Empty()
	plain.Set(borrowed)
	got, ok := Cast[int64](plain)
	if !ok || got != 41 {
		t.Fatalf("got (%v,%v), want (41,true)", got, ok)
	}

	host = 99
	if got, _ := Cast[int64](plain); got != 41 {
		t.Fatalf("plain must hold a copy, not alias the borrow; got %d after host changed", got)
	}
}

func TestRefOfResolvesToTarget(t *testing.T) {
	reg := types.NewRegistry()
	target := New(reg, int64(7))
	ref := RefOf(target)

	if !ref.IsRef() {
		t.Fatal("expected IsRef() == true")
	}
	resolved := ref.ResolveRef()
	if resolved != target {
		t.Fatal("ResolveRef must yield the exact target pointer")
	}

	// Mutating through the resolved reference mutates the original target.
	resolved.Set(New(reg, int64(8)))
	got, _ := Cast[int64](target)
	if got != 8 {
		t.Fatalf("expected target mutated via resolved ref, got %d", got)
	}
}

func TestResolveRefIsIdempotentThroughAChain(t *testing.T) {
	reg := types.NewRegistry()
	target := New(reg, int64(3))
	once := RefOf(target)
	twice := RefOf(once)

	if twice.ResolveRef() != target {
		t.Fatal("expected chained ResolveRef to reach the ultimate target")
	}
	if twice.ResolveRef().ResolveRef() != twice.ResolveRef() {
		t.Fatal("ResolveRef must be idempotent")
	}
}

func TestCloneIsIndependentForOwnedValues(t *testing.T) {
	reg := types.NewRegistry()
	original := New(reg, int64(1))
	clone := original.Clone()

	clone.Set(New(reg, int64(2)))
	got, _ := Cast[int64](original)
	if got != 1 {
		t.Fatalf("mutating clone must not affect original, original = %d", got)
	}
}

func TestCastFailsOnTypeMismatch(t *testing.T) {
	reg := types.NewRegistry()
	v := New(reg, "not an int")
	if _, ok := Cast[int64](v); ok {
		t.Fatal("expected Cast[int64] to fail for a string payload")
	}
}

func TestTruthy(t *testing.T) {
	reg := types.NewRegistry()
	cases := []struct {
		v    *Value
		want bool
	}{
		{New(reg, true), true},
		{New(reg, false), false},
		{New(reg, int64(0)), false},
		{New(reg, int64(5)), true},
		{New(reg, 0.0), false},
		{New(reg, 1.5), true},
	}
	for _, c := range cases {
		got, ok := Truthy(c.v)
		if !ok || got != c.want {
			t.Errorf("Truthy(%v) = (%v,%v), want (%v,true)", c.v.Raw(), got, ok, c.want)
		}
	}
}

func TestVectorIsAPlainSliceOfBoxes(t *testing.T) {
	reg := types.NewRegistry()
	vec := &Vector{Items: []*Value{New(reg, int64(1)), New(reg, int64(2))}}
	boxed := New(reg, vec)

	got, ok := Cast[*Vector](boxed)
	if !ok || len(got.Items) != 2 {
		t.Fatalf("expected to extract the *Vector, got (%v,%v)", got, ok)
	}
}

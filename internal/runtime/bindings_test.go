package runtime

import (
	"reflect"
	"testing"

	"scriptbox/internal/types"
	"scriptbox/internal/value"
)

func typeOf(v any) reflect.Type { return reflect.TypeOf(v) }

func TestResolveSelectsByArityAndConversion(t *testing.T) {
	reg := types.NewRegistry()
	intID := reg.IDOf(typeOf(int64(0)))
	floatID := reg.IDOf(typeOf(float64(0)))

	unary := &Candidate{ParamTypes: []types.ID{intID}, ByRef: []bool{false}, Call: constCall("unary")}
	binary := &Candidate{ParamTypes: []types.ID{intID, intID}, ByRef: []bool{false, false}, Call: constCall("binary")}
	candidates := []*Candidate{unary, binary}

	convertible := func(from, to types.ID) bool { return from == floatID && to == intID }

	// foo(2) -> unary exact match.
	idx, err := Resolve(candidates, []*value.Value{value.New(reg, int64(2))}, convertible)
	if err != nil || candidates[idx] != unary {
		t.Fatalf("expected unary candidate, got idx=%d err=%v", idx, err)
	}

	// foo(2,3) -> binary exact match.
	idx, err = Resolve(candidates, []*value.Value{value.New(reg, int64(2)), value.New(reg, int64(3))}, convertible)
	if err != nil || candidates[idx] != binary {
		t.Fatalf("expected binary candidate, got idx=%d err=%v", idx, err)
	}

	// foo(2.0) -> unary via conversion (arity 1 only matches unary).
	idx, err = Resolve(candidates, []*value.Value{value.New(reg, 2.0)}, convertible)
	if err != nil || candidates[idx] != unary {
		t.Fatalf("expected unary-via-conversion, got idx=%d err=%v", idx, err)
	}
}

func TestResolveTieBreaksByRegistrationOrder(t *testing.T) {
	reg := types.NewRegistry()
	id := reg.IDOf(typeOf(int64(0)))
	first := &Candidate{ParamTypes: []types.ID{id}, ByRef: []bool{false}, Call: constCall("first")}
	second := &Candidate{ParamTypes: []types.ID{id}, ByRef: []bool{false}, Call: constCall("second")}

	idx, err := Resolve([]*Candidate{first, second}, []*value.Value{value.New(reg, int64(1))}, func(types.ID, types.ID) bool { return false })
	if err != nil {
		t.Fatal(err)
	}
	if idx != 0 {
		t.Fatalf("expected first-registered candidate to win the tie, got idx=%d", idx)
	}
}

func TestResolveRejectsIncompatibleArgument(t *testing.T) {
	reg := types.NewRegistry()
	id := reg.IDOf(typeOf(int64(0)))
	cand := &Candidate{ParamTypes: []types.ID{id}, ByRef: []bool{false}, Call: constCall("x")}

	_, err := Resolve([]*Candidate{cand}, []*value.Value{value.New(reg, "not an int")}, func(types.ID, types.ID) bool { return false })
	if err == nil {
		t.Fatal("expected no matching overload")
	}
}

func TestResolveByRefRequiresExact(t *testing.T) {
	reg := types.NewRegistry()
	intID := reg.IDOf(typeOf(int64(0)))
	floatID := reg.IDOf(typeOf(float64(0)))
	cand := &Candidate{ParamTypes: []types.ID{intID}, ByRef: []bool{true}, Call: constCall("x")}

	// Even though a conversion exists, a by-ref parameter requires EXACT.
	_, err := Resolve([]*Candidate{cand}, []*value.Value{value.New(reg, 1.0)},
		func(from, to types.ID) bool { return from == floatID && to == intID })
	if err == nil {
		t.Fatal("expected by-ref parameter to reject a convertible-only argument")
	}
}

func constCall(tag string) func([]*value.Value) (*value.Value, error) {
	return func(args []*value.Value) (*value.Value, error) { return nil, nil }
}

package types

import (
	"reflect"
	"testing"
)

func TestIDOfStableWithinRegistry(t *testing.T) {
	r := NewRegistry()
	id1 := r.IDOf(reflect.TypeOf(int64(0)))
	id2 := r.IDOf(reflect.TypeOf(int64(0)))
	if id1 != id2 {
		t.Fatalf("expected stable id, got %d and %d", id1, id2)
	}
}

func TestBareEqualForPointerAndValue(t *testing.T) {
	r := NewRegistry()

	var s string
	valueID := r.IDOf(reflect.TypeOf(s))
	ptrID := r.IDOf(reflect.TypeOf(&s))

	if valueID == ptrID {
		t.Fatalf("exact ids should differ: %d == %d", valueID, ptrID)
	}

	valueInfo := r.InfoOf(valueID)
	ptrInfo := r.InfoOf(ptrID)
	if !valueInfo.BareEqual(ptrInfo) {
		t.Fatalf("expected T and *T to be bare-equal")
	}
	if valueInfo.Equal(ptrInfo) {
		t.Fatalf("T and *T must not be exact-equal")
	}
}

func TestPairKeyIsOrdered(t *testing.T) {
	if PairKey(1, 2) == PairKey(2, 1) {
		t.Fatal("pair key must be order-sensitive")
	}
}

func TestDistinctTypesGetDistinctIDs(t *testing.T) {
	r := NewRegistry()
	a := r.IDOf(reflect.TypeOf(int64(0)))
	b := r.IDOf(reflect.TypeOf(float64(0)))
	if a == b {
		t.Fatal("distinct types must get distinct ids")
	}
}

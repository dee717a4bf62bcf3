// Package value implements the "value box": the polymorphic container that
// holds every runtime value a script manipulates, whether it is an owned
// copy, a borrow of a live host variable, or a reference to another box.
package value

import (
	"reflect"

	"scriptbox/internal/types"
)

// Value is the value box every script value travels in. Exactly one of
// its three storage forms is active at a time:
//
//   - payload holds an owned copy of a Go value (int64, float64, bool,
//     string, rune, *Vector, or an arbitrary registered host type);
//   - borrow holds a reflect.Value of pointer kind aliasing a host-owned
//     variable (RegisterVar uses this);
//   - ref points at another Value, modeling an lvalue during evaluation.
//
// A zero Value is "empty" and signals "no value"; assigning into an empty
// Value adopts the right-hand side's type (see Set).
type Value struct {
	typeID  types.ID
	payload any
	borrow  reflect.Value
	ref     *Value
}

// New boxes payload as an owned copy, assigning it a type ID from reg.
func New(reg *types.Registry, payload any) *Value {
	return &Value{typeID: reg.IDOf(reflect.TypeOf(payload)), payload: payload}
}

// Empty returns a fresh empty value box.
func Empty() *Value { return &Value{} }

// BorrowOf boxes a pointer to a host-owned variable. The caller is
// responsible for ensuring the pointee outlives every Value built from it
// — this is a registration contract, not enforced by the type system.
func BorrowOf(reg *types.Registry, ptr any) *Value {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Ptr {
		panic("value.BorrowOf: ptr must be a pointer")
	}
	return &Value{typeID: reg.IDOf(rv.Type()), borrow: rv}
}

// RefOf wraps target in a reference box. ResolveRef on the result yields
// target (after walking any further chain of references target itself may
// hold).
func RefOf(target *Value) *Value { return &Value{ref: target} }

// IsRef reports whether v is a reference box.
func (v *Value) IsRef() bool { return v.ref != nil }

// ResolveRef follows a chain of reference boxes to the underlying value.
// It is idempotent: ResolveRef(ResolveRef(v)) == ResolveRef(v).
func (v *Value) ResolveRef() *Value {
	cur := v
	for cur.ref != nil {
		cur = cur.ref
	}
	return cur
}

// IsEmpty reports whether v holds no value (and is not a reference).
func (v *Value) IsEmpty() bool {
	return v.typeID == types.Invalid && v.ref == nil && v.payload == nil && !v.borrow.IsValid()
}

// TypeID returns the type identity of the value currently stored. Callers
// must resolve references first; calling TypeID on a reference box itself
// is a programming error (the evaluator always resolves before dispatch).
func (v *Value) TypeID() types.ID {
	if v.ref != nil {
		panic("value.Value.TypeID: called on an unresolved reference box")
	}
	return v.typeID
}

// Raw returns the owned payload, or nil for a borrow/reference/empty box.
func (v *Value) Raw() any { return v.payload }

// Interface returns v's content as an any regardless of storage form,
// resolving references and dereferencing borrows first. Used by
// reflection-driven host marshaling (pkg/script's RegisterFunc argument
// conversion) where the target Go type is only known at runtime and the
// generic Cast[T] cannot be instantiated.
func (v *Value) Interface() any {
	rv := v.ResolveRef()
	if rv.borrow.IsValid() {
		return rv.borrow.Elem().Interface()
	}
	return rv.payload
}

// Clone returns a shallow copy of v: owned payloads are value-copied by Go
// assignment semantics, borrows keep aliasing the same host variable, and
// reference boxes keep pointing at the same target.
func (v *Value) Clone() *Value {
	nv := *v
	return &nv
}

// Set overwrites v's content from src (after resolving src's own
// references). If v is a borrow, the write goes through the aliased host
// variable. If v is empty, v adopts src's type — this is how a freshly
// declared script variable acquires its first type.
func (v *Value) Set(src *Value) {
	rv := src.ResolveRef()
	content := rv.Interface()

	if v.borrow.IsValid() {
		v.borrow.Elem().Set(reflect.ValueOf(content))
		return
	}

	v.typeID = rv.typeID
	v.payload = content
	v.borrow = reflect.Value{}
}

// Cast extracts a T from v, resolving references and dereferencing borrows.
// The second return is false if v does not store a T, *T, or a borrow of T.
func Cast[T any](v *Value) (T, bool) {
	var zero T
	rv := v.ResolveRef()

	if rv.borrow.IsValid() {
		elem := rv.borrow.Elem()
		if t, ok := elem.Interface().(T); ok {
			return t, true
		}
		return zero, false
	}

	if t, ok := rv.payload.(T); ok {
		return t, true
	}
	if p := reflect.ValueOf(rv.payload); p.Kind() == reflect.Ptr && !p.IsNil() {
		if t, ok := p.Elem().Interface().(T); ok {
			return t, true
		}
	}
	return zero, false
}

// Vector is the concrete representation of the language's vector literal
// ([ ... ]); member behavior (size, push_back, [] ...) is supplied by
// bindings registered against *Vector (see internal/builtins), but the core
// evaluator constructs this type directly for `VectorDecl` nodes, the way
// the reference implementation boxes a std::vector<BoxedValue> directly.
type Vector struct {
	Items []*Value
}

// Truthy implements the "truthy" rule If/While/For nodes use to decide a
// branch: bool-true, or any non-zero numeric kind this engine's builtins
// install.
func Truthy(v *Value) (bool, bool) {
	rv := v.ResolveRef()
	switch p := rv.payload.(type) {
	case bool:
		return p, true
	case int64:
		return p != 0, true
	case uint64:
		return p != 0, true
	case float64:
		return p != 0, true
	case float32:
		return p != 0, true
	case rune:
		return p != 0, true
	default:
		return false, false
	}
}

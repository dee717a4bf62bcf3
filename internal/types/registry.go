// Package types implements the engine's type identity registry: it assigns
// every host type a stable numeric ID, tracks its "bare" form (the type with
// one level of pointer stripped away), and packs ordered type pairs into a
// single lookup key for the operator and conversion tables.
package types

import "reflect"

// ID is the stable numeric identity of a registered host type.
type ID uint32

// Invalid is the zero ID, reserved for "no type" (an empty value box).
const Invalid ID = 0

// Any is a wildcard parameter ID: a Candidate using it accepts an argument
// of any type in that position, contributing no score (see Resolve). Used
// by bindings generic over the element type, such as a container's
// push_back.
const Any ID = ^ID(0)

// Info describes one registered type: its exact reflect.Type, the bare
// reflect.Type it reduces to, its own ID, and the ID of its bare form
// (the two IDs are equal only when the type is already bare).
type Info struct {
	ID       ID
	Exact    reflect.Type
	Bare     reflect.Type
	BareID   ID
	TypeName string
}

// Equal reports whether two Infos denote the exact same type, qualifiers
// included.
func (i Info) Equal(o Info) bool { return i.Exact == o.Exact }

// BareEqual reports whether two Infos share the same bare form (a *T and a
// T are bare-equal, for instance).
func (i Info) BareEqual(o Info) bool { return i.BareID == o.BareID }

// Registry assigns and caches type identities. It is not safe for
// concurrent use; registration never overlaps evaluation within one engine.
type Registry struct {
	byExact map[reflect.Type]ID
	infos   []Info // index 0 unused (Invalid)
}

// NewRegistry creates an empty type registry.
func NewRegistry() *Registry {
	return &Registry{
		byExact: make(map[reflect.Type]ID),
		infos:   make([]Info, 1), // reserve Invalid
	}
}

// bareOf strips one level of pointer from t. Go has no const/reference
// qualifiers on types the way C++ does, so stripping a pointer is the only
// qualifier this port needs to normalize (mirrors BareType_impl in the
// reference implementation).
func bareOf(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

// IDOf returns the stable ID for t, assigning one the first time t (or its
// bare form) is seen.
func (r *Registry) IDOf(t reflect.Type) ID {
	if id, ok := r.byExact[t]; ok {
		return id
	}

	bare := bareOf(t)
	bareID := r.idOfBare(bare)

	id := bareID
	if bare != t {
		// t is a pointer to an already-known bare type: it gets an ID of
		// its own and records that type's ID as its BareID.
		id = ID(len(r.infos))
		r.infos = append(r.infos, Info{
			ID: id, Exact: t, Bare: bare, BareID: bareID, TypeName: t.String(),
		})
	}

	r.byExact[t] = id
	return id
}

func (r *Registry) idOfBare(bare reflect.Type) ID {
	if id, ok := r.byExact[bare]; ok {
		return id
	}
	id := ID(len(r.infos))
	r.infos = append(r.infos, Info{ID: id, Exact: bare, Bare: bare, BareID: id, TypeName: bare.String()})
	r.byExact[bare] = id
	return id
}

// InfoOf returns the full Info for a previously-assigned ID.
func (r *Registry) InfoOf(id ID) Info {
	if int(id) >= len(r.infos) {
		return Info{}
	}
	return r.infos[id]
}

// Name returns the display name registered for id, or "<unknown>".
func (r *Registry) Name(id ID) string {
	info := r.InfoOf(id)
	if info.TypeName == "" {
		return "<unknown>"
	}
	return info.TypeName
}

// PairKey packs two bare IDs into one lookup key for operator/conversion
// tables, ordered (left, right) — (a, b) and (b, a) are different keys.
func PairKey(a, b ID) uint64 {
	return uint64(a)<<32 | uint64(b)
}

package runtime

import (
	"scriptbox/internal/ast"
	"scriptbox/internal/token"
	"scriptbox/internal/types"
	"scriptbox/internal/value"
)

// BinaryFunc implements one binary operator for a specific (left-type,
// right-type) pair.
type BinaryFunc func(left, right *value.Value) (*value.Value, error)

// UnaryFunc implements one unary operator for a specific operand type.
type UnaryFunc func(operand *value.Value) (*value.Value, error)

// ConvertFunc converts a value of one registered type to another.
type ConvertFunc func(v *value.Value) (*value.Value, error)

type binaryKey struct {
	op   token.Type
	pair uint64
}

// OperatorTable maps (operator, left-type-id, right-type-id) to a
// BinaryFunc.
type OperatorTable struct {
	fns map[binaryKey]BinaryFunc
}

func NewOperatorTable() *OperatorTable {
	return &OperatorTable{fns: make(map[binaryKey]BinaryFunc)}
}

func (t *OperatorTable) Register(op token.Type, left, right types.ID, fn BinaryFunc) {
	t.fns[binaryKey{op, types.PairKey(left, right)}] = fn
}

func (t *OperatorTable) Lookup(op token.Type, left, right types.ID) (BinaryFunc, bool) {
	fn, ok := t.fns[binaryKey{op, types.PairKey(left, right)}]
	return fn, ok
}

type unaryKey struct {
	op ast.UnaryOp
	id types.ID
}

// UnaryTable maps (operator, operand-type-id) to a UnaryFunc.
type UnaryTable struct {
	fns map[unaryKey]UnaryFunc
}

func NewUnaryTable() *UnaryTable {
	return &UnaryTable{fns: make(map[unaryKey]UnaryFunc)}
}

func (t *UnaryTable) Register(op ast.UnaryOp, id types.ID, fn UnaryFunc) {
	t.fns[unaryKey{op, id}] = fn
}

func (t *UnaryTable) Lookup(op ast.UnaryOp, id types.ID) (UnaryFunc, bool) {
	fn, ok := t.fns[unaryKey{op, id}]
	return fn, ok
}

// ConversionTable maps (from-type-id, to-type-id) to a ConvertFunc, keyed
// the way the overload resolver's CONVERTIBLE check looks them up.
type ConversionTable struct {
	fns map[uint64]ConvertFunc
}

func NewConversionTable() *ConversionTable {
	return &ConversionTable{fns: make(map[uint64]ConvertFunc)}
}

func (t *ConversionTable) Register(from, to types.ID, fn ConvertFunc) {
	t.fns[types.PairKey(from, to)] = fn
}

func (t *ConversionTable) Lookup(from, to types.ID) (ConvertFunc, bool) {
	fn, ok := t.fns[types.PairKey(from, to)]
	return fn, ok
}

// Has reports whether a conversion from "from" to "to" is registered; used
// by the overload resolver's CONVERTIBLE classification.
func (t *ConversionTable) Has(from, to types.ID) bool {
	_, ok := t.fns[types.PairKey(from, to)]
	return ok
}

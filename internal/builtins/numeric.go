// Package builtins installs the default operator, conversion, and member
// bindings every embeddable script engine of this shape ships out of the
// box: numeric arithmetic/bitwise/shift/comparison across
// {int64, uint64, float64, float32, rune}, including the cross-type pairs
// (int x float, int x uint64, etc.) a default installation also carries,
// plus bool logic, string operations and member bindings, vector member
// bindings, assertions, and a small math/print surface.
package builtins

import (
	"scriptbox/internal/ast"
	"scriptbox/internal/runtime"
	"scriptbox/internal/scripterr"
	"scriptbox/internal/token"
	"scriptbox/internal/types"
	"scriptbox/internal/value"
)

// numericIDs resolves and caches the type IDs for every numeric kind the
// defaults cover, computed once against the engine's registry.
type numericIDs struct {
	i64, u64, f64, f32, r, b types.ID
}

func idsOf(en *runtime.Engine) numericIDs {
	return numericIDs{
		i64: en.TypeID(typeOf(int64(0))),
		u64: en.TypeID(typeOf(uint64(0))),
		f64: en.TypeID(typeOf(float64(0))),
		f32: en.TypeID(typeOf(float32(0))),
		r:   en.TypeID(typeOf(rune(0))),
		b:   en.TypeID(typeOf(false)),
	}
}

func installNumeric(en *runtime.Engine) {
	ids := idsOf(en)

	installArithmetic(en, ids)
	installBitwiseAndShift(en, ids)
	installMixedArithmetic(en, ids)
	installComparisons(en, ids)
	installBoolLogic(en, ids)
	installSelfAssign(en, ids)
	installConversions(en, ids)
	installUnary(en, ids)
}

func installArithmetic(en *runtime.Engine, ids numericIDs) {
	// int64 x int64
	reg2(en, token.PLUS, ids.i64, func(a, b int64) int64 { return a + b })
	reg2(en, token.MINUS, ids.i64, func(a, b int64) int64 { return a - b })
	reg2(en, token.ASTERISK, ids.i64, func(a, b int64) int64 { return a * b })
	en.RegisterBinaryOp(token.SLASH, ids.i64, ids.i64, intDivide(en))
	en.RegisterBinaryOp(token.PERCENT, ids.i64, ids.i64, intModulo(en))

	// uint64 x uint64
	reg2u(en, token.PLUS, ids.u64, func(a, b uint64) uint64 { return a + b })
	reg2u(en, token.MINUS, ids.u64, func(a, b uint64) uint64 { return a - b })
	reg2u(en, token.ASTERISK, ids.u64, func(a, b uint64) uint64 { return a * b })
	en.RegisterBinaryOp(token.SLASH, ids.u64, ids.u64, uintDivide(en))
	en.RegisterBinaryOp(token.PERCENT, ids.u64, ids.u64, uintModulo(en))

	// float64 x float64
	regF(en, token.PLUS, ids.f64, func(a, b float64) float64 { return a + b })
	regF(en, token.MINUS, ids.f64, func(a, b float64) float64 { return a - b })
	regF(en, token.ASTERISK, ids.f64, func(a, b float64) float64 { return a * b })
	regF(en, token.SLASH, ids.f64, func(a, b float64) float64 { return a / b })

	// float32 x float32
	reg32(en, token.PLUS, ids.f32, func(a, b float32) float32 { return a + b })
	reg32(en, token.MINUS, ids.f32, func(a, b float32) float32 { return a - b })
	reg32(en, token.ASTERISK, ids.f32, func(a, b float32) float32 { return a * b })
	reg32(en, token.SLASH, ids.f32, func(a, b float32) float32 { return a / b })

	// rune x rune (add_integer_operations<char,char> in the original)
	regCross(en, token.PLUS, ids.r, ids.r, func(a, b rune) rune { return a + b })
	regCross(en, token.MINUS, ids.r, ids.r, func(a, b rune) rune { return a - b })
	regCross(en, token.ASTERISK, ids.r, ids.r, func(a, b rune) rune { return a * b })
	regCrossIntDivMod(en, token.SLASH, token.PERCENT, ids.r, ids.r,
		func(a, b rune) rune { return a / b },
		func(a, b rune) rune { return a % b },
		func(b rune) bool { return b == 0 })
}

func intDivide(en *runtime.Engine) runtime.BinaryFunc {
	return func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[int64](l)
		b, _ := value.Cast[int64](r)
		if b == 0 {
			return nil, scripterr.NewRuntimeErrorf("division by zero")
		}
		return en.NewValue(a / b), nil
	}
}

func intModulo(en *runtime.Engine) runtime.BinaryFunc {
	return func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[int64](l)
		b, _ := value.Cast[int64](r)
		if b == 0 {
			return nil, scripterr.NewRuntimeErrorf("modulo by zero")
		}
		return en.NewValue(a % b), nil
	}
}

func uintDivide(en *runtime.Engine) runtime.BinaryFunc {
	return func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[uint64](l)
		b, _ := value.Cast[uint64](r)
		if b == 0 {
			return nil, scripterr.NewRuntimeErrorf("division by zero")
		}
		return en.NewValue(a / b), nil
	}
}

func uintModulo(en *runtime.Engine) runtime.BinaryFunc {
	return func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[uint64](l)
		b, _ := value.Cast[uint64](r)
		if b == 0 {
			return nil, scripterr.NewRuntimeErrorf("modulo by zero")
		}
		return en.NewValue(a % b), nil
	}
}

func installBitwiseAndShift(en *runtime.Engine, ids numericIDs) {
	reg2(en, token.AMP, ids.i64, func(a, b int64) int64 { return a & b })
	reg2(en, token.PIPE, ids.i64, func(a, b int64) int64 { return a | b })
	reg2(en, token.CARET, ids.i64, func(a, b int64) int64 { return a ^ b })
	reg2(en, token.SHL, ids.i64, func(a, b int64) int64 { return a << uint64(b) })
	reg2(en, token.SHR, ids.i64, func(a, b int64) int64 { return a >> uint64(b) })

	reg2u(en, token.AMP, ids.u64, func(a, b uint64) uint64 { return a & b })
	reg2u(en, token.PIPE, ids.u64, func(a, b uint64) uint64 { return a | b })
	reg2u(en, token.CARET, ids.u64, func(a, b uint64) uint64 { return a ^ b })
	reg2u(en, token.SHL, ids.u64, func(a, b uint64) uint64 { return a << b })
	reg2u(en, token.SHR, ids.u64, func(a, b uint64) uint64 { return a >> b })

	// rune x rune (add_integer_operations<char,char> in the original)
	regCross(en, token.AMP, ids.r, ids.r, func(a, b rune) rune { return a & b })
	regCross(en, token.PIPE, ids.r, ids.r, func(a, b rune) rune { return a | b })
	regCross(en, token.CARET, ids.r, ids.r, func(a, b rune) rune { return a ^ b })
	regCross(en, token.SHL, ids.r, ids.r, func(a, b rune) rune { return a << uint64(b) })
	regCross(en, token.SHR, ids.r, ids.r, func(a, b rune) rune { return a >> uint64(b) })
}

// installMixedArithmetic registers the cross-type numeric pairs the original
// implementation's add_default_binary_operations wires by default (int,
// unsigned int, size_t, char, float, double), under this port's Go mapping
// (int64, uint64, float64, float32, rune). Each pair promotes to the wider
// type the way add_common_operations/add_integer_operations do: any float
// operand wins over an integer one, float64 wins over float32, int64 mixed
// with uint64 promotes to uint64 (matching the original's unsigned int/int
// ordering), and rune mixed with int64 or uint64 takes its partner's type.
func installMixedArithmetic(en *runtime.Engine, ids numericIDs) {
	// int64 x float64, float64 x int64 -> float64
	regCross(en, token.PLUS, ids.i64, ids.f64, func(a int64, b float64) float64 { return float64(a) + b })
	regCross(en, token.MINUS, ids.i64, ids.f64, func(a int64, b float64) float64 { return float64(a) - b })
	regCross(en, token.ASTERISK, ids.i64, ids.f64, func(a int64, b float64) float64 { return float64(a) * b })
	regCross(en, token.SLASH, ids.i64, ids.f64, func(a int64, b float64) float64 { return float64(a) / b })
	regCross(en, token.PLUS, ids.f64, ids.i64, func(a float64, b int64) float64 { return a + float64(b) })
	regCross(en, token.MINUS, ids.f64, ids.i64, func(a float64, b int64) float64 { return a - float64(b) })
	regCross(en, token.ASTERISK, ids.f64, ids.i64, func(a float64, b int64) float64 { return a * float64(b) })
	regCross(en, token.SLASH, ids.f64, ids.i64, func(a float64, b int64) float64 { return a / float64(b) })

	// int64 x float32, float32 x int64 -> float32
	regCross(en, token.PLUS, ids.i64, ids.f32, func(a int64, b float32) float32 { return float32(a) + b })
	regCross(en, token.MINUS, ids.i64, ids.f32, func(a int64, b float32) float32 { return float32(a) - b })
	regCross(en, token.ASTERISK, ids.i64, ids.f32, func(a int64, b float32) float32 { return float32(a) * b })
	regCross(en, token.SLASH, ids.i64, ids.f32, func(a int64, b float32) float32 { return float32(a) / b })
	regCross(en, token.PLUS, ids.f32, ids.i64, func(a float32, b int64) float32 { return a + float32(b) })
	regCross(en, token.MINUS, ids.f32, ids.i64, func(a float32, b int64) float32 { return a - float32(b) })
	regCross(en, token.ASTERISK, ids.f32, ids.i64, func(a float32, b int64) float32 { return a * float32(b) })
	regCross(en, token.SLASH, ids.f32, ids.i64, func(a float32, b int64) float32 { return a / float32(b) })

	// uint64 x float64, float64 x uint64 -> float64
	regCross(en, token.PLUS, ids.u64, ids.f64, func(a uint64, b float64) float64 { return float64(a) + b })
	regCross(en, token.MINUS, ids.u64, ids.f64, func(a uint64, b float64) float64 { return float64(a) - b })
	regCross(en, token.ASTERISK, ids.u64, ids.f64, func(a uint64, b float64) float64 { return float64(a) * b })
	regCross(en, token.SLASH, ids.u64, ids.f64, func(a uint64, b float64) float64 { return float64(a) / b })
	regCross(en, token.PLUS, ids.f64, ids.u64, func(a float64, b uint64) float64 { return a + float64(b) })
	regCross(en, token.MINUS, ids.f64, ids.u64, func(a float64, b uint64) float64 { return a - float64(b) })
	regCross(en, token.ASTERISK, ids.f64, ids.u64, func(a float64, b uint64) float64 { return a * float64(b) })
	regCross(en, token.SLASH, ids.f64, ids.u64, func(a float64, b uint64) float64 { return a / float64(b) })

	// uint64 x float32, float32 x uint64 -> float32
	regCross(en, token.PLUS, ids.u64, ids.f32, func(a uint64, b float32) float32 { return float32(a) + b })
	regCross(en, token.MINUS, ids.u64, ids.f32, func(a uint64, b float32) float32 { return float32(a) - b })
	regCross(en, token.ASTERISK, ids.u64, ids.f32, func(a uint64, b float32) float32 { return float32(a) * b })
	regCross(en, token.SLASH, ids.u64, ids.f32, func(a uint64, b float32) float32 { return float32(a) / b })
	regCross(en, token.PLUS, ids.f32, ids.u64, func(a float32, b uint64) float32 { return a + float32(b) })
	regCross(en, token.MINUS, ids.f32, ids.u64, func(a float32, b uint64) float32 { return a - float32(b) })
	regCross(en, token.ASTERISK, ids.f32, ids.u64, func(a float32, b uint64) float32 { return a * float32(b) })
	regCross(en, token.SLASH, ids.f32, ids.u64, func(a float32, b uint64) float32 { return a / float32(b) })

	// float32 x float64, float64 x float32 -> float64
	regCross(en, token.PLUS, ids.f32, ids.f64, func(a float32, b float64) float64 { return float64(a) + b })
	regCross(en, token.MINUS, ids.f32, ids.f64, func(a float32, b float64) float64 { return float64(a) - b })
	regCross(en, token.ASTERISK, ids.f32, ids.f64, func(a float32, b float64) float64 { return float64(a) * b })
	regCross(en, token.SLASH, ids.f32, ids.f64, func(a float32, b float64) float64 { return float64(a) / b })
	regCross(en, token.PLUS, ids.f64, ids.f32, func(a float64, b float32) float64 { return a + float64(b) })
	regCross(en, token.MINUS, ids.f64, ids.f32, func(a float64, b float32) float64 { return a - float64(b) })
	regCross(en, token.ASTERISK, ids.f64, ids.f32, func(a float64, b float32) float64 { return a * float64(b) })
	regCross(en, token.SLASH, ids.f64, ids.f32, func(a float64, b float32) float64 { return a / float64(b) })

	// int64 x uint64, uint64 x int64 -> uint64 (add_integer_operations<unsigned int, int>)
	regCross(en, token.PLUS, ids.i64, ids.u64, func(a int64, b uint64) uint64 { return uint64(a) + b })
	regCross(en, token.MINUS, ids.i64, ids.u64, func(a int64, b uint64) uint64 { return uint64(a) - b })
	regCross(en, token.ASTERISK, ids.i64, ids.u64, func(a int64, b uint64) uint64 { return uint64(a) * b })
	regCrossIntDivMod(en, token.SLASH, token.PERCENT, ids.i64, ids.u64,
		func(a int64, b uint64) uint64 { return uint64(a) / b },
		func(a int64, b uint64) uint64 { return uint64(a) % b },
		func(b uint64) bool { return b == 0 })
	regCross(en, token.PLUS, ids.u64, ids.i64, func(a uint64, b int64) uint64 { return a + uint64(b) })
	regCross(en, token.MINUS, ids.u64, ids.i64, func(a uint64, b int64) uint64 { return a - uint64(b) })
	regCross(en, token.ASTERISK, ids.u64, ids.i64, func(a uint64, b int64) uint64 { return a * uint64(b) })
	regCrossIntDivMod(en, token.SLASH, token.PERCENT, ids.u64, ids.i64,
		func(a uint64, b int64) uint64 { return a / uint64(b) },
		func(a uint64, b int64) uint64 { return a % uint64(b) },
		func(b int64) bool { return b == 0 })

	// int64 x rune, rune x int64 -> int64 (add_integer_operations<char, int>)
	regCross(en, token.PLUS, ids.i64, ids.r, func(a int64, b rune) int64 { return a + int64(b) })
	regCross(en, token.MINUS, ids.i64, ids.r, func(a int64, b rune) int64 { return a - int64(b) })
	regCross(en, token.ASTERISK, ids.i64, ids.r, func(a int64, b rune) int64 { return a * int64(b) })
	regCrossIntDivMod(en, token.SLASH, token.PERCENT, ids.i64, ids.r,
		func(a int64, b rune) int64 { return a / int64(b) },
		func(a int64, b rune) int64 { return a % int64(b) },
		func(b rune) bool { return b == 0 })
	regCross(en, token.PLUS, ids.r, ids.i64, func(a rune, b int64) int64 { return int64(a) + b })
	regCross(en, token.MINUS, ids.r, ids.i64, func(a rune, b int64) int64 { return int64(a) - b })
	regCross(en, token.ASTERISK, ids.r, ids.i64, func(a rune, b int64) int64 { return int64(a) * b })
	regCrossIntDivMod(en, token.SLASH, token.PERCENT, ids.r, ids.i64,
		func(a rune, b int64) int64 { return int64(a) / b },
		func(a rune, b int64) int64 { return int64(a) % b },
		func(b int64) bool { return b == 0 })

	// uint64 x rune, rune x uint64 -> uint64 (add_integer_operations<char, unsigned int>)
	regCross(en, token.PLUS, ids.u64, ids.r, func(a uint64, b rune) uint64 { return a + uint64(b) })
	regCross(en, token.MINUS, ids.u64, ids.r, func(a uint64, b rune) uint64 { return a - uint64(b) })
	regCross(en, token.ASTERISK, ids.u64, ids.r, func(a uint64, b rune) uint64 { return a * uint64(b) })
	regCrossIntDivMod(en, token.SLASH, token.PERCENT, ids.u64, ids.r,
		func(a uint64, b rune) uint64 { return a / uint64(b) },
		func(a uint64, b rune) uint64 { return a % uint64(b) },
		func(b rune) bool { return b == 0 })
	regCross(en, token.PLUS, ids.r, ids.u64, func(a rune, b uint64) uint64 { return uint64(a) + b })
	regCross(en, token.MINUS, ids.r, ids.u64, func(a rune, b uint64) uint64 { return uint64(a) - b })
	regCross(en, token.ASTERISK, ids.r, ids.u64, func(a rune, b uint64) uint64 { return uint64(a) * b })
	regCrossIntDivMod(en, token.SLASH, token.PERCENT, ids.r, ids.u64,
		func(a rune, b uint64) uint64 { return uint64(a) / b },
		func(a rune, b uint64) uint64 { return uint64(a) % b },
		func(b uint64) bool { return b == 0 })
}

// installComparisons registers same-kind comparisons for every numeric
// kind plus rune, and a value-correct mixed signed/unsigned comparison:
// any negative signed operand compares less than any unsigned operand
// and is never equal to any unsigned one; otherwise values are compared
// as unsigned.
func installComparisons(en *runtime.Engine, ids numericIDs) {
	registerComparisons(en, ids.i64, ids.i64, func(l, r *value.Value) int {
		a, _ := value.Cast[int64](l)
		b, _ := value.Cast[int64](r)
		return cmpOrdered(a, b)
	})
	registerComparisons(en, ids.u64, ids.u64, func(l, r *value.Value) int {
		a, _ := value.Cast[uint64](l)
		b, _ := value.Cast[uint64](r)
		return cmpOrdered(a, b)
	})
	registerComparisons(en, ids.f64, ids.f64, func(l, r *value.Value) int {
		a, _ := value.Cast[float64](l)
		b, _ := value.Cast[float64](r)
		return cmpOrdered(a, b)
	})
	registerComparisons(en, ids.f32, ids.f32, func(l, r *value.Value) int {
		a, _ := value.Cast[float32](l)
		b, _ := value.Cast[float32](r)
		return cmpOrdered(a, b)
	})
	registerComparisons(en, ids.r, ids.r, func(l, r *value.Value) int {
		a, _ := value.Cast[rune](l)
		b, _ := value.Cast[rune](r)
		return cmpOrdered(a, b)
	})

	registerComparisons(en, ids.i64, ids.u64, func(l, r *value.Value) int {
		a, _ := value.Cast[int64](l)
		b, _ := value.Cast[uint64](r)
		return cmpSignedUnsigned(a, b)
	})
	registerComparisons(en, ids.u64, ids.i64, func(l, r *value.Value) int {
		a, _ := value.Cast[uint64](l)
		b, _ := value.Cast[int64](r)
		return -cmpSignedUnsigned(b, a)
	})

	// int/size_t x float comparisons (add_comparison_operations<int,float>,
	// <size_t,float> in the original).
	registerComparisons(en, ids.i64, ids.f64, func(l, r *value.Value) int {
		a, _ := value.Cast[int64](l)
		b, _ := value.Cast[float64](r)
		return cmpOrdered(float64(a), b)
	})
	registerComparisons(en, ids.f64, ids.i64, func(l, r *value.Value) int {
		a, _ := value.Cast[float64](l)
		b, _ := value.Cast[int64](r)
		return cmpOrdered(a, float64(b))
	})
	registerComparisons(en, ids.u64, ids.f64, func(l, r *value.Value) int {
		a, _ := value.Cast[uint64](l)
		b, _ := value.Cast[float64](r)
		return cmpOrdered(float64(a), b)
	})
	registerComparisons(en, ids.f64, ids.u64, func(l, r *value.Value) int {
		a, _ := value.Cast[float64](l)
		b, _ := value.Cast[uint64](r)
		return cmpOrdered(a, float64(b))
	})
}

func cmpOrdered[T int64 | uint64 | float64 | float32 | rune](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// cmpSignedUnsigned compares a signed value against an unsigned one the
// way the mathematical integers they represent compare: any negative a
// is less than every b, otherwise compare as unsigned magnitudes.
func cmpSignedUnsigned(a int64, b uint64) int {
	if a < 0 {
		return -1
	}
	return cmpOrdered(uint64(a), b)
}

func registerComparisons(en *runtime.Engine, left, right types.ID, cmp func(l, r *value.Value) int) {
	en.RegisterBinaryOp(token.EQ, left, right, func(l, r *value.Value) (*value.Value, error) {
		return en.NewValue(cmp(l, r) == 0), nil
	})
	en.RegisterBinaryOp(token.NOT_EQ, left, right, func(l, r *value.Value) (*value.Value, error) {
		return en.NewValue(cmp(l, r) != 0), nil
	})
	en.RegisterBinaryOp(token.LESS, left, right, func(l, r *value.Value) (*value.Value, error) {
		return en.NewValue(cmp(l, r) < 0), nil
	})
	en.RegisterBinaryOp(token.GREATER, left, right, func(l, r *value.Value) (*value.Value, error) {
		return en.NewValue(cmp(l, r) > 0), nil
	})
	en.RegisterBinaryOp(token.LESS_EQ, left, right, func(l, r *value.Value) (*value.Value, error) {
		return en.NewValue(cmp(l, r) <= 0), nil
	})
	en.RegisterBinaryOp(token.GREATER_EQ, left, right, func(l, r *value.Value) (*value.Value, error) {
		return en.NewValue(cmp(l, r) >= 0), nil
	})
}

func installBoolLogic(en *runtime.Engine, ids numericIDs) {
	en.RegisterBinaryOp(token.AMP_AMP, ids.b, ids.b, func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[bool](l)
		b, _ := value.Cast[bool](r)
		return en.NewValue(a && b), nil
	})
	en.RegisterBinaryOp(token.PIPE_PIPE, ids.b, ids.b, func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[bool](l)
		b, _ := value.Cast[bool](r)
		return en.NewValue(a || b), nil
	})
	en.RegisterBinaryOp(token.EQ, ids.b, ids.b, func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[bool](l)
		b, _ := value.Cast[bool](r)
		return en.NewValue(a == b), nil
	})
	en.RegisterBinaryOp(token.NOT_EQ, ids.b, ids.b, func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[bool](l)
		b, _ := value.Cast[bool](r)
		return en.NewValue(a != b), nil
	})
}

// installSelfAssign registers the (T, ASSIGN, T) table entry every
// primitive type needs so that reassigning an already-initialized
// variable to a value of the *same* type succeeds — first assignment to
// an empty box is handled directly by ast.Binary, but every later
// assignment goes through this table (see DESIGN.md's Open Question
// decision on cross-type reassignment).
func installSelfAssign(en *runtime.Engine, ids numericIDs) {
	for _, id := range []types.ID{ids.i64, ids.u64, ids.f64, ids.f32, ids.r, ids.b} {
		en.RegisterBinaryOp(token.ASSIGN, id, id, func(l, r *value.Value) (*value.Value, error) {
			l.Set(r)
			return value.RefOf(l), nil
		})
	}
}

func installConversions(en *runtime.Engine, ids numericIDs) {
	conv := func(from, to types.ID, fn func(*value.Value) any) {
		en.RegisterConversion(from, to, func(v *value.Value) (*value.Value, error) {
			return en.NewValue(fn(v)), nil
		})
	}

	conv(ids.i64, ids.u64, func(v *value.Value) any { a, _ := value.Cast[int64](v); return uint64(a) })
	conv(ids.u64, ids.i64, func(v *value.Value) any { a, _ := value.Cast[uint64](v); return int64(a) })
	conv(ids.i64, ids.r, func(v *value.Value) any { a, _ := value.Cast[int64](v); return rune(a) })
	conv(ids.r, ids.i64, func(v *value.Value) any { a, _ := value.Cast[rune](v); return int64(a) })
	conv(ids.u64, ids.r, func(v *value.Value) any { a, _ := value.Cast[uint64](v); return rune(a) })
	conv(ids.r, ids.u64, func(v *value.Value) any { a, _ := value.Cast[rune](v); return uint64(a) })
	conv(ids.i64, ids.f64, func(v *value.Value) any { a, _ := value.Cast[int64](v); return float64(a) })
	conv(ids.f64, ids.i64, func(v *value.Value) any { a, _ := value.Cast[float64](v); return int64(a) })
	conv(ids.u64, ids.f64, func(v *value.Value) any { a, _ := value.Cast[uint64](v); return float64(a) })
	conv(ids.f64, ids.u64, func(v *value.Value) any { a, _ := value.Cast[float64](v); return uint64(a) })
	conv(ids.f64, ids.f32, func(v *value.Value) any { a, _ := value.Cast[float64](v); return float32(a) })
	conv(ids.f32, ids.f64, func(v *value.Value) any { a, _ := value.Cast[float32](v); return float64(a) })
}

func installUnary(en *runtime.Engine, ids numericIDs) {
	en.RegisterUnaryOp(ast.UnaryMinus, ids.i64, func(v *value.Value) (*value.Value, error) {
		a, _ := value.Cast[int64](v)
		return en.NewValue(-a), nil
	})
	en.RegisterUnaryOp(ast.UnaryMinus, ids.f64, func(v *value.Value) (*value.Value, error) {
		a, _ := value.Cast[float64](v)
		return en.NewValue(-a), nil
	})
	en.RegisterUnaryOp(ast.UnaryMinus, ids.f32, func(v *value.Value) (*value.Value, error) {
		a, _ := value.Cast[float32](v)
		return en.NewValue(-a), nil
	})
	en.RegisterUnaryOp(ast.LogicNot, ids.b, func(v *value.Value) (*value.Value, error) {
		a, _ := value.Cast[bool](v)
		return en.NewValue(!a), nil
	})
	en.RegisterUnaryOp(ast.BitwiseNot, ids.i64, func(v *value.Value) (*value.Value, error) {
		a, _ := value.Cast[int64](v)
		return en.NewValue(^a), nil
	})
	en.RegisterUnaryOp(ast.BitwiseNot, ids.u64, func(v *value.Value) (*value.Value, error) {
		a, _ := value.Cast[uint64](v)
		return en.NewValue(^a), nil
	})

	for _, op := range []ast.UnaryOp{ast.PreInc, ast.PostInc} {
		en.RegisterUnaryOp(op, ids.i64, intStep(en, 1))
		en.RegisterUnaryOp(op, ids.u64, uintStep(en, 1))
	}
	for _, op := range []ast.UnaryOp{ast.PreDec, ast.PostDec} {
		en.RegisterUnaryOp(op, ids.i64, intStep(en, -1))
		en.RegisterUnaryOp(op, ids.u64, uintStepSigned(en, -1))
	}
}

func intStep(en *runtime.Engine, delta int64) runtime.UnaryFunc {
	return func(v *value.Value) (*value.Value, error) {
		a, _ := value.Cast[int64](v)
		return en.NewValue(a + delta), nil
	}
}

func uintStep(en *runtime.Engine, delta uint64) runtime.UnaryFunc {
	return func(v *value.Value) (*value.Value, error) {
		a, _ := value.Cast[uint64](v)
		return en.NewValue(a + delta), nil
	}
}

func uintStepSigned(en *runtime.Engine, delta int64) runtime.UnaryFunc {
	return func(v *value.Value) (*value.Value, error) {
		a, _ := value.Cast[uint64](v)
		return en.NewValue(uint64(int64(a) + delta)), nil
	}
}

// reg2/reg2u/regF/reg32 register the same same-type binary function,
// reducing boilerplate across the many identical arithmetic
// registrations above.
func reg2(en *runtime.Engine, op token.Type, id types.ID, fn func(a, b int64) int64) {
	en.RegisterBinaryOp(op, id, id, func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[int64](l)
		b, _ := value.Cast[int64](r)
		return en.NewValue(fn(a, b)), nil
	})
}

func reg2u(en *runtime.Engine, op token.Type, id types.ID, fn func(a, b uint64) uint64) {
	en.RegisterBinaryOp(op, id, id, func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[uint64](l)
		b, _ := value.Cast[uint64](r)
		return en.NewValue(fn(a, b)), nil
	})
}

func regF(en *runtime.Engine, op token.Type, id types.ID, fn func(a, b float64) float64) {
	en.RegisterBinaryOp(op, id, id, func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[float64](l)
		b, _ := value.Cast[float64](r)
		return en.NewValue(fn(a, b)), nil
	})
}

func reg32(en *runtime.Engine, op token.Type, id types.ID, fn func(a, b float32) float32) {
	en.RegisterBinaryOp(op, id, id, func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[float32](l)
		b, _ := value.Cast[float32](r)
		return en.NewValue(fn(a, b)), nil
	})
}

// regCross registers a binary function across an ordered pair of distinct
// operand kinds, for the cross-type entries installMixedArithmetic wires.
func regCross[L, R, Out any](en *runtime.Engine, op token.Type, leftID, rightID types.ID, fn func(a L, b R) Out) {
	en.RegisterBinaryOp(op, leftID, rightID, func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[L](l)
		b, _ := value.Cast[R](r)
		return en.NewValue(fn(a, b)), nil
	})
}

// regCrossIntDivMod registers divOp and modOp across an ordered pair of
// distinct integer-kind operands, erroring the way intDivide/uintDivide do
// when the right operand is zero.
func regCrossIntDivMod[L, R, Out int64 | uint64 | rune](en *runtime.Engine, divOp, modOp token.Type, leftID, rightID types.ID, div, mod func(a L, b R) Out, rIsZero func(R) bool) {
	en.RegisterBinaryOp(divOp, leftID, rightID, func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[L](l)
		b, _ := value.Cast[R](r)
		if rIsZero(b) {
			return nil, scripterr.NewRuntimeErrorf("division by zero")
		}
		return en.NewValue(div(a, b)), nil
	})
	en.RegisterBinaryOp(modOp, leftID, rightID, func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[L](l)
		b, _ := value.Cast[R](r)
		if rIsZero(b) {
			return nil, scripterr.NewRuntimeErrorf("modulo by zero")
		}
		return en.NewValue(mod(a, b)), nil
	})
}

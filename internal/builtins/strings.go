package builtins

import (
	"strings"

	"scriptbox/internal/runtime"
	"scriptbox/internal/scripterr"
	"scriptbox/internal/token"
	"scriptbox/internal/types"
	"scriptbox/internal/value"
)

// installStrings registers the operator and member-function bindings the
// string type needs: `size`, `length`, `push_back`, `substr`, `[]`, plus
// arithmetic and comparison. Go strings are immutable, so mutating ones
// (`push_back`,
// `+=`) work by replacing the value box's payload via Set rather than by
// writing through a *strings.Builder — functionally identical to the
// script, and simpler than threading a builder through every string
// value (see DESIGN.md).
func installStrings(en *runtime.Engine) {
	strID := en.TypeID(typeOf(""))
	runeID := en.TypeID(typeOf(rune(0)))
	i64ID := en.TypeID(typeOf(int64(0)))

	en.RegisterBinaryOp(token.PLUS, strID, strID, func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[string](l)
		b, _ := value.Cast[string](r)
		return en.NewValue(a + b), nil
	})
	en.RegisterBinaryOp(token.ASSIGN, strID, strID, func(l, r *value.Value) (*value.Value, error) {
		l.Set(r)
		return value.RefOf(l), nil
	})
	registerComparisons(en, strID, strID, func(l, r *value.Value) int {
		a, _ := value.Cast[string](l)
		b, _ := value.Cast[string](r)
		return strings.Compare(a, b)
	})

	en.RegisterMemberFunc(strID, "size", &runtime.Candidate{
		Call: func(args []*value.Value) (*value.Value, error) {
			s, _ := value.Cast[string](args[0])
			return en.NewValue(int64(len([]rune(s)))), nil
		},
	})
	en.RegisterMemberFunc(strID, "length", &runtime.Candidate{
		Call: func(args []*value.Value) (*value.Value, error) {
			s, _ := value.Cast[string](args[0])
			return en.NewValue(int64(len([]rune(s)))), nil
		},
	})
	en.RegisterMemberFunc(strID, "push_back", &runtime.Candidate{
		ParamTypes: []types.ID{runeID},
		ByRef:      []bool{false},
		Call: func(args []*value.Value) (*value.Value, error) {
			s, _ := value.Cast[string](args[0])
			c, _ := value.Cast[rune](args[1])
			args[0].Set(en.NewValue(s + string(c)))
			return args[0], nil
		},
	})
	en.RegisterMemberFunc(strID, "substr", &runtime.Candidate{
		ParamTypes: []types.ID{i64ID, i64ID},
		ByRef:      []bool{false, false},
		Call: func(args []*value.Value) (*value.Value, error) {
			s := []rune(mustString(args[0]))
			start, _ := value.Cast[int64](args[1])
			length, _ := value.Cast[int64](args[2])
			if start < 0 || length < 0 || start+length > int64(len(s)) {
				return nil, scripterr.NewRuntimeErrorf("substr(%d,%d) out of range for length %d", start, length, len(s))
			}
			return en.NewValue(string(s[start : start+length])), nil
		},
	})
	en.RegisterMemberFunc(strID, "[]", &runtime.Candidate{
		ParamTypes: []types.ID{i64ID},
		ByRef:      []bool{false},
		Call: func(args []*value.Value) (*value.Value, error) {
			s := []rune(mustString(args[0]))
			idx, _ := value.Cast[int64](args[1])
			if idx < 0 || idx >= int64(len(s)) {
				return nil, scripterr.NewRuntimeErrorf("string index %d out of range (length %d)", idx, len(s))
			}
			return en.NewValue(s[idx]), nil
		},
	})
}

func mustString(v *value.Value) string {
	s, _ := value.Cast[string](v)
	return s
}

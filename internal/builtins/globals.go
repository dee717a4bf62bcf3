package builtins

import (
	"fmt"
	"math"

	"scriptbox/internal/runtime"
	"scriptbox/internal/scripterr"
	"scriptbox/internal/types"
	"scriptbox/internal/value"
)

// installGlobals registers the free functions that make up the scripting
// surface's minimal standard library: assert (in its one- and
// two-argument forms), the numeric helpers abs/min/max/sqrt, and the
// print/println diagnostics routed through the engine's configured writer.
func installGlobals(en *runtime.Engine) {
	ids := idsOf(en)
	boolID := ids.b
	strID := en.TypeID(typeOf(""))

	en.RegisterGlobalFunc("assert", &runtime.Candidate{
		ParamTypes: []types.ID{boolID},
		ByRef:      []bool{false},
		Call: func(args []*value.Value) (*value.Value, error) {
			ok, _ := value.Cast[bool](args[0])
			if !ok {
				return nil, &scripterr.AssertionFailure{Msg: "assertion failed"}
			}
			return value.Empty(), nil
		},
	})
	en.RegisterGlobalFunc("assert", &runtime.Candidate{
		ParamTypes: []types.ID{boolID, strID},
		ByRef:      []bool{false, false},
		Call: func(args []*value.Value) (*value.Value, error) {
			ok, _ := value.Cast[bool](args[0])
			if !ok {
				msg, _ := value.Cast[string](args[1])
				return nil, &scripterr.AssertionFailure{Msg: msg}
			}
			return value.Empty(), nil
		},
	})

	en.RegisterGlobalFunc("abs", &runtime.Candidate{
		ParamTypes: []types.ID{ids.i64},
		ByRef:      []bool{false},
		Call: func(args []*value.Value) (*value.Value, error) {
			n, _ := value.Cast[int64](args[0])
			if n < 0 {
				n = -n
			}
			return en.NewValue(n), nil
		},
	})
	en.RegisterGlobalFunc("abs", &runtime.Candidate{
		ParamTypes: []types.ID{ids.f64},
		ByRef:      []bool{false},
		Call: func(args []*value.Value) (*value.Value, error) {
			f, _ := value.Cast[float64](args[0])
			return en.NewValue(math.Abs(f)), nil
		},
	})
	en.RegisterGlobalFunc("sqrt", &runtime.Candidate{
		ParamTypes: []types.ID{ids.f64},
		ByRef:      []bool{false},
		Call: func(args []*value.Value) (*value.Value, error) {
			f, _ := value.Cast[float64](args[0])
			if f < 0 {
				return nil, scripterr.NewRuntimeErrorf("sqrt of negative number %v", f)
			}
			return en.NewValue(math.Sqrt(f)), nil
		},
	})

	registerMinMax(en, ids)

	en.RegisterGlobalFunc("print", &runtime.Candidate{
		ParamTypes: []types.ID{types.Any},
		ByRef:      []bool{false},
		Call: func(args []*value.Value) (*value.Value, error) {
			fmt.Fprint(en.Output(), displayString(args[0]))
			return value.Empty(), nil
		},
	})
	en.RegisterGlobalFunc("println", &runtime.Candidate{
		ParamTypes: []types.ID{types.Any},
		ByRef:      []bool{false},
		Call: func(args []*value.Value) (*value.Value, error) {
			fmt.Fprintln(en.Output(), displayString(args[0]))
			return value.Empty(), nil
		},
	})
	en.RegisterGlobalFunc("println", &runtime.Candidate{
		Call: func(args []*value.Value) (*value.Value, error) {
			fmt.Fprintln(en.Output())
			return value.Empty(), nil
		},
	})
}

// registerMinMax wires an (i64,i64) and (f64,f64) overload of min and max,
// each comparing with plain < / >; a mixed-kind call reaches one of them
// only through a registered conversion during overload resolution.
func registerMinMax(en *runtime.Engine, ids numericIDs) {
	en.RegisterGlobalFunc("min", &runtime.Candidate{
		ParamTypes: []types.ID{ids.i64, ids.i64},
		ByRef:      []bool{false, false},
		Call: func(args []*value.Value) (*value.Value, error) {
			a, _ := value.Cast[int64](args[0])
			b, _ := value.Cast[int64](args[1])
			if b < a {
				a = b
			}
			return en.NewValue(a), nil
		},
	})
	en.RegisterGlobalFunc("max", &runtime.Candidate{
		ParamTypes: []types.ID{ids.i64, ids.i64},
		ByRef:      []bool{false, false},
		Call: func(args []*value.Value) (*value.Value, error) {
			a, _ := value.Cast[int64](args[0])
			b, _ := value.Cast[int64](args[1])
			if b > a {
				a = b
			}
			return en.NewValue(a), nil
		},
	})
	en.RegisterGlobalFunc("min", &runtime.Candidate{
		ParamTypes: []types.ID{ids.f64, ids.f64},
		ByRef:      []bool{false, false},
		Call: func(args []*value.Value) (*value.Value, error) {
			a, _ := value.Cast[float64](args[0])
			b, _ := value.Cast[float64](args[1])
			if b < a {
				a = b
			}
			return en.NewValue(a), nil
		},
	})
	en.RegisterGlobalFunc("max", &runtime.Candidate{
		ParamTypes: []types.ID{ids.f64, ids.f64},
		ByRef:      []bool{false, false},
		Call: func(args []*value.Value) (*value.Value, error) {
			a, _ := value.Cast[float64](args[0])
			b, _ := value.Cast[float64](args[1])
			if b > a {
				a = b
			}
			return en.NewValue(a), nil
		},
	})
}

// displayString renders a value box for print/println the way the
// evaluator's own literals read: plain decimal/float text, the bare
// string, or a %v fallback for anything else a host type contributes.
func displayString(v *value.Value) string {
	rv := v.ResolveRef()
	switch p := rv.Raw().(type) {
	case string:
		return p
	case rune:
		return string(p)
	default:
		return fmt.Sprintf("%v", p)
	}
}

package builtins

import (
	"scriptbox/internal/runtime"
	"scriptbox/internal/scripterr"
	"scriptbox/internal/types"
	"scriptbox/internal/value"
)

// installVector registers the member-function bindings the container
// type backing vector literals needs: size,
// push_back, pop_back, empty, resize, reserve, capacity, begin, and []
// (the indexing dispatch mechanism). *value.Vector's Items field is a
// plain Go slice; an instance value box holds the *Vector pointer itself,
// so mutating Items through it is visible to every box sharing that
// pointer without needing value.Value.Set.
func installVector(en *runtime.Engine) {
	vecID := en.TypeID(typeOf(&value.Vector{}))
	i64ID := en.TypeID(typeOf(int64(0)))

	noArgs := func(fn func(vec *value.Vector) (*value.Value, error)) *runtime.Candidate {
		return &runtime.Candidate{Call: func(args []*value.Value) (*value.Value, error) {
			vec, _ := value.Cast[*value.Vector](args[0])
			return fn(vec)
		}}
	}

	en.RegisterMemberFunc(vecID, "size", noArgs(func(vec *value.Vector) (*value.Value, error) {
		return en.NewValue(int64(len(vec.Items))), nil
	}))
	en.RegisterMemberFunc(vecID, "empty", noArgs(func(vec *value.Vector) (*value.Value, error) {
		return en.NewValue(len(vec.Items) == 0), nil
	}))
	en.RegisterMemberFunc(vecID, "capacity", noArgs(func(vec *value.Vector) (*value.Value, error) {
		return en.NewValue(int64(cap(vec.Items))), nil
	}))
	en.RegisterMemberFunc(vecID, "pop_back", noArgs(func(vec *value.Vector) (*value.Value, error) {
		if len(vec.Items) == 0 {
			return nil, scripterr.NewRuntimeErrorf("pop_back on empty vector")
		}
		last := vec.Items[len(vec.Items)-1]
		vec.Items = vec.Items[:len(vec.Items)-1]
		return last, nil
	}))
	en.RegisterMemberFunc(vecID, "begin", noArgs(func(vec *value.Vector) (*value.Value, error) {
		if len(vec.Items) == 0 {
			return nil, scripterr.NewRuntimeErrorf("begin on empty vector")
		}
		return value.RefOf(vec.Items[0]), nil
	}))

	en.RegisterMemberFunc(vecID, "push_back", &runtime.Candidate{
		ParamTypes: []types.ID{types.Any},
		ByRef:      []bool{false},
		Call: func(args []*value.Value) (*value.Value, error) {
			vec, _ := value.Cast[*value.Vector](args[0])
			vec.Items = append(vec.Items, args[1].Clone())
			return args[0], nil
		},
	})
	en.RegisterMemberFunc(vecID, "resize", &runtime.Candidate{
		ParamTypes: []types.ID{i64ID},
		ByRef:      []bool{false},
		Call: func(args []*value.Value) (*value.Value, error) {
			vec, _ := value.Cast[*value.Vector](args[0])
			n, _ := value.Cast[int64](args[1])
			if n < 0 {
				return nil, scripterr.NewRuntimeErrorf("resize to negative size")
			}
			switch {
			case int64(len(vec.Items)) < n:
				for int64(len(vec.Items)) < n {
					vec.Items = append(vec.Items, value.Empty())
				}
			case int64(len(vec.Items)) > n:
				vec.Items = vec.Items[:n]
			}
			return args[0], nil
		},
	})
	en.RegisterMemberFunc(vecID, "reserve", &runtime.Candidate{
		ParamTypes: []types.ID{i64ID},
		ByRef:      []bool{false},
		Call: func(args []*value.Value) (*value.Value, error) {
			vec, _ := value.Cast[*value.Vector](args[0])
			n, _ := value.Cast[int64](args[1])
			if int64(cap(vec.Items)) < n {
				grown := make([]*value.Value, len(vec.Items), n)
				copy(grown, vec.Items)
				vec.Items = grown
			}
			return args[0], nil
		},
	})
	en.RegisterMemberFunc(vecID, "[]", &runtime.Candidate{
		ParamTypes: []types.ID{i64ID},
		ByRef:      []bool{false},
		Call: func(args []*value.Value) (*value.Value, error) {
			vec, _ := value.Cast[*value.Vector](args[0])
			idx, _ := value.Cast[int64](args[1])
			if idx < 0 || idx >= int64(len(vec.Items)) {
				return nil, scripterr.NewRuntimeErrorf("vector index %d out of range (size %d)", idx, len(vec.Items))
			}
			return value.RefOf(vec.Items[idx]), nil
		},
	})
}

package script

import (
	"fmt"
	"reflect"

	"scriptbox/internal/runtime"
	"scriptbox/internal/scripterr"
	"scriptbox/internal/types"
	"scriptbox/internal/value"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// RegisterFunc installs fn as an overload of the free function name.
// fn must be a Go func value with zero, one, or two return values (the
// second, if present, must be error); reflection builds the parameter
// type list and marshals arguments and return values across the value
// box boundary at call time. Calling this more than once under the same
// name adds further overloads, resolved the normal way.
func (en *Engine) RegisterFunc(name string, fn any) error {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return fmt.Errorf("script: RegisterFunc(%q): fn must be a function, got %T", name, fn)
	}
	ft := rv.Type()

	switch ft.NumOut() {
	case 0, 1:
	case 2:
		if !ft.Out(1).Implements(errType) {
			return fmt.Errorf("script: RegisterFunc(%q): second return value must be error", name)
		}
	default:
		return fmt.Errorf("script: RegisterFunc(%q): at most two return values are supported", name)
	}

	paramTypes := make([]types.ID, ft.NumIn())
	byRef := make([]bool, ft.NumIn())
	for i := range paramTypes {
		paramTypes[i] = en.rt.TypeID(ft.In(i))
	}

	call := func(args []*value.Value) (*value.Value, error) {
		in := make([]reflect.Value, len(args))
		for i, a := range args {
			want := ft.In(i)
			got := reflect.ValueOf(a.ResolveRef().Interface())
			if !got.IsValid() {
				got = reflect.Zero(want)
			} else if got.Type() != want && got.Type().ConvertibleTo(want) {
				got = got.Convert(want)
			}
			in[i] = got
		}

		out, err := callReflect(rv, in)
		if err != nil {
			return nil, err
		}
		return en.wrapResults(ft, out)
	}

	en.rt.RegisterGlobalFunc(name, &runtime.Candidate{
		ParamTypes: paramTypes,
		ByRef:      byRef,
		Call:       call,
	})
	return nil
}

// callReflect invokes rv with in, recovering a host function's panic into
// a RuntimeError so a panicking callback cannot crash the host process.
func callReflect(rv reflect.Value, in []reflect.Value) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = scripterr.NewRuntimeErrorf("host function panicked: %v", r)
		}
	}()
	return rv.Call(in), nil
}

// wrapResults converts a reflect.Call result into this engine's value box,
// honoring the (T, error) shape.
func (en *Engine) wrapResults(ft reflect.Type, out []reflect.Value) (*value.Value, error) {
	switch ft.NumOut() {
	case 0:
		return value.Empty(), nil
	case 1:
		return en.rt.NewValue(out[0].Interface()), nil
	default:
		if errVal := out[1].Interface(); errVal != nil {
			return nil, errVal.(error)
		}
		return en.rt.NewValue(out[0].Interface()), nil
	}
}

// RegisterVar registers a borrow over ptr (which must be a pointer): script
// reads and writes of name alias the host variable it points to.
func (en *Engine) RegisterVar(name string, ptr any) error {
	rv := reflect.ValueOf(ptr)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr {
		return fmt.Errorf("script: RegisterVar(%q): ptr must be a pointer, got %T", name, ptr)
	}
	return en.rt.RegisterVar(name, value.BorrowOf(en.rt.Registry(), ptr))
}

// RegisterConversion installs an implicit conversion script code may use
// wherever an operator or overload lookup allows a convertible match.
// fn must be a func(from) to with no error return — a conversion either
// applies or the types don't match.
func (en *Engine) RegisterConversion(from, to reflect.Type, fn any) error {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.Type().NumIn() != 1 || rv.Type().NumOut() != 1 {
		return fmt.Errorf("script: RegisterConversion(%v -> %v): fn must be a func(%v) %v", from, to, from, to)
	}
	fromID := en.rt.TypeID(from)
	toID := en.rt.TypeID(to)
	en.rt.RegisterConversion(fromID, toID, func(v *value.Value) (*value.Value, error) {
		out := rv.Call([]reflect.Value{reflect.ValueOf(v.ResolveRef().Interface())})
		return en.rt.NewValue(out[0].Interface()), nil
	})
	return nil
}

// TypeBinder accumulates member function and field bindings for a host
// type registered via RegisterType, in a fluent, chainable style.
type TypeBinder struct {
	en     *Engine
	typeID types.ID
}

// RegisterType registers a host type so scripts can call methods and read
// fields on values of that type through the binder it returns. zero is any
// value of the type (or a pointer to it) purely to identify the
// reflect.Type; it is not retained.
func (en *Engine) RegisterType(zero any) *TypeBinder {
	return &TypeBinder{en: en, typeID: en.rt.TypeID(reflect.TypeOf(zero))}
}

// Method installs fn as a member function named name; fn's first parameter
// must be the receiver type (or a pointer to it), matching the calling
// convention internal/builtins uses for its own member bindings. Per
// runtime.Candidate's contract, ParamTypes/ByRef describe only the logical
// (non-instance) arguments — the receiver parameter is excluded from both,
// and Call is invoked with the instance already prepended to args.
func (b *TypeBinder) Method(name string, fn any) *TypeBinder {
	rv := reflect.ValueOf(fn)
	ft := rv.Type()

	paramTypes := make([]types.ID, ft.NumIn()-1)
	byRef := make([]bool, ft.NumIn()-1)
	for i := range paramTypes {
		paramTypes[i] = b.en.rt.TypeID(ft.In(i + 1))
	}

	call := func(args []*value.Value) (*value.Value, error) {
		in := make([]reflect.Value, len(args))
		for i, a := range args {
			in[i] = reflect.ValueOf(a.ResolveRef().Interface())
		}
		out, err := callReflect(rv, in)
		if err != nil {
			return nil, err
		}
		return b.en.wrapResults(ft, out)
	}

	b.en.rt.RegisterMemberFunc(b.typeID, name, &runtime.Candidate{
		ParamTypes: paramTypes,
		ByRef:      byRef,
		Call:       call,
	})
	return b
}

// Field installs a member variable getter that reads the named field from
// the receiver via reflection. The getter returns an owned copy of the
// field's current value, not a reference box: writes to the returned box
// do not reach the receiver's field.
func (b *TypeBinder) Field(name string) *TypeBinder {
	b.en.rt.RegisterMemberVar(b.typeID, name, func(inst *value.Value) (*value.Value, error) {
		rv := reflect.ValueOf(inst.ResolveRef().Interface())
		if rv.Kind() == reflect.Ptr {
			rv = rv.Elem()
		}
		f := rv.FieldByName(name)
		if !f.IsValid() {
			return nil, scripterr.NewRuntimeErrorf("no field %q on %s", name, rv.Type())
		}
		return b.en.rt.NewValue(f.Interface()), nil
	})
	return b
}

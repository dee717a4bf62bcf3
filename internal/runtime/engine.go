// Package runtime implements the dispatch engine: the scope/stack model,
// the binary/unary operator tables, the binding registries, and the
// Engine that ties them together to evaluate an *ast.Program.
package runtime

import (
	"context"
	"io"
	"os"
	"reflect"

	"scriptbox/internal/ast"
	"scriptbox/internal/scripterr"
	"scriptbox/internal/token"
	"scriptbox/internal/types"
	"scriptbox/internal/value"
)

// Engine owns the stack, a global scope (frame 0 of the stack), the
// global-function overload table, the per-type class bindings, the
// conversion table, and the binary/unary operator tables. It implements
// ast.Engine so AST nodes can evaluate against it without either package
// importing the other's concrete type.
type Engine struct {
	reg         *types.Registry
	stack       *Stack
	globals     *GlobalFunctions
	classes     *ClassRegistry
	conversions *ConversionTable
	binOps      *OperatorTable
	unOps       *UnaryTable
	out         io.Writer
}

// New creates an Engine with empty registries over reg. Output defaults to
// os.Stdout; embedders redirect it with SetOutput (the print/println
// globals write there).
func New(reg *types.Registry) *Engine {
	return &Engine{
		reg:         reg,
		stack:       NewStack(),
		globals:     NewGlobalFunctions(),
		classes:     NewClassRegistry(),
		conversions: NewConversionTable(),
		binOps:      NewOperatorTable(),
		unOps:       NewUnaryTable(),
		out:         os.Stdout,
	}
}

// Registry exposes the engine's type registry, e.g. so host registration
// code can compute a reflect.Type's ID before installing a binding.
func (en *Engine) Registry() *types.Registry { return en.reg }

// SetOutput redirects the destination of the print/println globals.
func (en *Engine) SetOutput(w io.Writer) { en.out = w }

// Output returns the current destination of the print/println globals.
func (en *Engine) Output() io.Writer { return en.out }

// SetMaxStackDepth bounds nested-scope depth; 0 means unlimited.
func (en *Engine) SetMaxStackDepth(n int) { en.stack.SetMaxDepth(n) }

// --- ast.Engine -------------------------------------------------------

func (en *Engine) NewValue(payload any) *value.Value { return value.New(en.reg, payload) }

func (en *Engine) Declare(name string) (*value.Value, error) { return en.stack.Declare(name) }

func (en *Engine) Lookup(name string) (*value.Value, bool) { return en.stack.Lookup(name) }

func (en *Engine) PushScope() func() {
	guard := en.NewScope()
	return guard.Close
}

// NewScope opens a stack frame and returns the guard that closes it, the
// public RAII-flavoured entry point to scope management.
func (en *Engine) NewScope() *ScopeGuard { return NewScopeGuard(en.stack) }

func (en *Engine) BinaryOp(op token.Type, left, right *value.Value) (*value.Value, error) {
	fn, ok := en.binOps.Lookup(op, en.bareTypeID(left), en.bareTypeID(right))
	if !ok {
		return nil, scripterr.NewRuntimeErrorf(
			"no operator %s for %s and %s", op, en.reg.Name(left.TypeID()), en.reg.Name(right.TypeID()))
	}
	return fn(left, right)
}

func (en *Engine) UnaryOp(op ast.UnaryOp, operand *value.Value) (*value.Value, error) {
	fn, ok := en.unOps.Lookup(op, en.bareTypeID(operand))
	if !ok {
		return nil, scripterr.NewRuntimeErrorf("no unary operator for %s", en.reg.Name(operand.TypeID()))
	}
	return fn(operand)
}

func (en *Engine) NewVector(items []*value.Value) *value.Value {
	return en.NewValue(&value.Vector{Items: items})
}

func (en *Engine) CallGlobal(name string, args []*value.Value) (*value.Value, error) {
	if set, ok := en.globals.Lookup(name); ok {
		idx, err := en.resolveOverload(set.Candidates, args)
		if err != nil {
			return nil, scripterr.NewRuntimeErrorf("%s: %s", name, err)
		}
		return set.Candidates[idx].Call(args)
	}
	if v, ok := en.stack.Global()[name]; ok {
		return en.CallMember("()", v, args)
	}
	return nil, scripterr.NewRuntimeErrorf("undefined function: %s", name)
}

func (en *Engine) CallMember(name string, inst *value.Value, args []*value.Value) (*value.Value, error) {
	bind, ok := en.classes.Get(en.bareTypeID(inst))
	if !ok {
		return nil, scripterr.NewRuntimeErrorf("type %s has no members", en.reg.Name(inst.TypeID()))
	}
	if set, ok := bind.Methods[name]; ok {
		idx, err := en.resolveOverload(set.Candidates, args)
		if err == nil {
			return set.Candidates[idx].Call(append([]*value.Value{inst}, args...))
		}
	}
	if getter, ok := bind.Vars[name]; ok {
		field, err := getter(inst)
		if err != nil {
			return nil, err
		}
		return en.CallMember("()", field.ResolveRef(), args)
	}
	return nil, scripterr.NewRuntimeErrorf("type %s has no member %q", en.reg.Name(inst.TypeID()), name)
}

func (en *Engine) MemberVar(name string, inst *value.Value) (*value.Value, error) {
	bind, ok := en.classes.Get(en.bareTypeID(inst))
	if !ok {
		return nil, scripterr.NewRuntimeErrorf("type %s has no member variable %q", en.reg.Name(inst.TypeID()), name)
	}
	getter, ok := bind.Vars[name]
	if !ok {
		return nil, scripterr.NewRuntimeErrorf("type %s has no member variable %q", en.reg.Name(inst.TypeID()), name)
	}
	return getter(inst)
}

func (en *Engine) bareTypeID(v *value.Value) types.ID {
	return en.reg.InfoOf(v.TypeID()).BareID
}

func (en *Engine) resolveOverload(candidates []*Candidate, args []*value.Value) (int, error) {
	return Resolve(candidates, args, en.conversions.Has)
}

// --- registration -------------------------------------------------------

// RegisterGlobalFunc adds c as an overload of a free function name.
func (en *Engine) RegisterGlobalFunc(name string, c *Candidate) { en.globals.Register(name, c) }

// RegisterVar installs slot as a global variable.
func (en *Engine) RegisterVar(name string, slot *value.Value) error {
	return en.stack.DeclareGlobal(name, slot)
}

// RegisterMemberFunc adds c as an overload of a member function name on
// typeID's bare type.
func (en *Engine) RegisterMemberFunc(typeID types.ID, name string, c *Candidate) {
	en.classes.GetOrCreate(en.reg.InfoOf(typeID).BareID).AddMethod(name, c)
}

// RegisterMemberVar installs a field getter (returning a reference box to
// the field) for typeID's bare type.
func (en *Engine) RegisterMemberVar(typeID types.ID, name string, getter func(*value.Value) (*value.Value, error)) {
	en.classes.GetOrCreate(en.reg.InfoOf(typeID).BareID).Vars[name] = getter
}

// RegisterConversion installs a conversion from "from" to "to".
func (en *Engine) RegisterConversion(from, to types.ID, fn ConvertFunc) {
	en.conversions.Register(from, to, fn)
}

// RegisterBinaryOp installs a binary operator table entry.
func (en *Engine) RegisterBinaryOp(op token.Type, left, right types.ID, fn BinaryFunc) {
	en.binOps.Register(op, left, right, fn)
}

// RegisterUnaryOp installs a unary operator table entry.
func (en *Engine) RegisterUnaryOp(op ast.UnaryOp, id types.ID, fn UnaryFunc) {
	en.unOps.Register(op, id, fn)
}

// TypeID returns the stable ID for t, assigning one if t has not been seen.
func (en *Engine) TypeID(t reflect.Type) types.ID { return en.reg.IDOf(t) }

// --- evaluation -----------------------------------------------------

// EvalProgram evaluates p against the engine's current stack and
// registries. If ctx is cancelled, evaluation stops between top-level
// statements — mid-expression
// cancellation is not observed, matching the engine's synchronous,
// single-threaded evaluation model.
func (en *Engine) EvalProgram(ctx context.Context, p *ast.Program) (result *value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if stackErr, ok := r.(*scripterr.RuntimeError); ok {
				result, err = nil, stackErr
				return
			}
			panic(r)
		}
	}()

	stmts, ok := p.Root.(*ast.Statements)
	if !ok {
		return p.Root.Eval(en)
	}

	result = value.Empty()
	for _, s := range stmts.Stmts {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		v, evErr := s.Eval(en)
		if evErr != nil {
			return nil, evErr
		}
		result = v
	}
	return result, nil
}

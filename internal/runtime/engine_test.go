package runtime

import (
	"context"
	"testing"

	"scriptbox/internal/ast"
	"scriptbox/internal/token"
	"scriptbox/internal/types"
	"scriptbox/internal/value"
)

func newTestEngine() *Engine {
	en := New(types.NewRegistry())
	intID := en.TypeID(typeOf(int64(0)))
	en.RegisterBinaryOp(token.PLUS, intID, intID, func(l, r *value.Value) (*value.Value, error) {
		a, _ := value.Cast[int64](l)
		b, _ := value.Cast[int64](r)
		return en.NewValue(a + b), nil
	})
	en.RegisterBinaryOp(token.ASSIGN, intID, intID, func(l, r *value.Value) (*value.Value, error) {
		l.Set(r)
		return value.RefOf(l), nil
	})
	return en
}

func TestEngineFirstAssignmentAdoptsType(t *testing.T) {
	en := newTestEngine()
	decl := &ast.Ident{Name: "a", IsDecl: true}
	assign := &ast.Binary{Op: token.ASSIGN, L: decl, R: &ast.Lit{Payload: int64(7)}}
	if _, err := assign.Eval(en); err != nil {
		t.Fatal(err)
	}
	v, _ := en.Lookup("a")
	got, ok := value.Cast[int64](v)
	if !ok || got != 7 {
		t.Fatalf("got (%v,%v), want (7,true)", got, ok)
	}
}

func TestEngineCrossTypeReassignmentRejected(t *testing.T) {
	en := newTestEngine()
	decl := &ast.Ident{Name: "a", IsDecl: true}
	first := &ast.Binary{Op: token.ASSIGN, L: decl, R: &ast.Lit{Payload: int64(7)}}
	if _, err := first.Eval(en); err != nil {
		t.Fatal(err)
	}
	// No (int, ASSIGN, string) operator is registered, so reassigning "a"
	// (currently an int) to a string must fail.
	second := &ast.Binary{Op: token.ASSIGN, L: &ast.Ident{Name: "a"}, R: &ast.Lit{Payload: "oops"}}
	if _, err := second.Eval(en); err == nil {
		t.Fatal("expected cross-type reassignment to be rejected")
	}
}

func TestEngineUndefinedFunctionErrors(t *testing.T) {
	en := newTestEngine()
	call := &ast.GlobalCall{Name: "nope"}
	if _, err := call.Eval(en); err == nil {
		t.Fatal("expected undefined-function error")
	}
}

func TestEngineEvalProgramStopsOnCancelledContext(t *testing.T) {
	en := newTestEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	prog := &ast.Program{Root: &ast.Statements{Stmts: []ast.Node{
		&ast.Binary{Op: token.ASSIGN, L: &ast.Ident{Name: "a", IsDecl: true}, R: &ast.Lit{Payload: int64(1)}},
	}}}
	if _, err := en.EvalProgram(ctx, prog); err == nil {
		t.Fatal("expected context cancellation to stop evaluation")
	}
}

func TestEngineMemberDispatchOnVector(t *testing.T) {
	en := newTestEngine()
	vecID := en.TypeID(typeOf(&value.Vector{}))
	en.RegisterMemberFunc(vecID, "[]", &Candidate{
		ParamTypes: []types.ID{en.TypeID(typeOf(int64(0)))},
		ByRef:      []bool{false},
		Call: func(args []*value.Value) (*value.Value, error) {
			vec, _ := value.Cast[*value.Vector](args[0])
			idx, _ := value.Cast[int64](args[1])
			return value.RefOf(vec.Items[idx]), nil
		},
	})

	vec := &value.Vector{Items: []*value.Value{en.NewValue(int64(10)), en.NewValue(int64(20))}}
	boxed := en.NewValue(vec)
	got, err := en.CallMember("[]", boxed, []*value.Value{en.NewValue(int64(1))})
	if err != nil {
		t.Fatal(err)
	}
	i, ok := value.Cast[int64](got)
	if !ok || i != 20 {
		t.Fatalf("got (%v,%v), want (20,true)", i, ok)
	}
}

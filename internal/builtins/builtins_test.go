package builtins

import (
	"bytes"
	"testing"

	"scriptbox/internal/ast"
	"scriptbox/internal/runtime"
	"scriptbox/internal/token"
	"scriptbox/internal/types"
	"scriptbox/internal/value"
)

func newEngine() *runtime.Engine {
	en := runtime.New(types.NewRegistry())
	InstallDefaults(en)
	return en
}

func TestIntMultiplicationViaBinaryOp(t *testing.T) {
	en := newEngine()
	a := en.NewValue(int64(8))
	b := en.NewValue(int64(2))
	got, err := en.BinaryOp(token.ASTERISK, a, b)
	if err != nil {
		t.Fatal(err)
	}
	n, ok := value.Cast[int64](got)
	if !ok || n != 16 {
		t.Fatalf("got (%v,%v), want (16,true)", n, ok)
	}
}

func TestIntDivisionByZeroErrors(t *testing.T) {
	en := newEngine()
	a := en.NewValue(int64(1))
	z := en.NewValue(int64(0))
	if _, err := en.BinaryOp(token.SLASH, a, z); err == nil {
		t.Fatal("expected division by zero error")
	}
}

func TestMixedSignedUnsignedComparison(t *testing.T) {
	en := newEngine()
	neg := en.NewValue(int64(-1))
	big := en.NewValue(uint64(1))
	got, err := en.BinaryOp(token.LESS, neg, big)
	if err != nil {
		t.Fatal(err)
	}
	lt, _ := value.Cast[bool](got)
	if !lt {
		t.Fatal("expected -1 < uint64(1)")
	}
}

func TestMixedIntFloatArithmetic(t *testing.T) {
	en := newEngine()
	a := en.NewValue(int64(1))
	b := en.NewValue(float64(2))
	got, err := en.BinaryOp(token.PLUS, a, b)
	if err != nil {
		t.Fatal(err)
	}
	n, ok := value.Cast[float64](got)
	if !ok || n != 3 {
		t.Fatalf("got (%v,%v), want (3,true)", n, ok)
	}
}

func TestMixedIntRuneArithmetic(t *testing.T) {
	en := newEngine()
	a := en.NewValue(rune('A'))
	b := en.NewValue(int64(1))
	got, err := en.BinaryOp(token.PLUS, a, b)
	if err != nil {
		t.Fatal(err)
	}
	n, ok := value.Cast[int64](got)
	if !ok || n != int64('A')+1 {
		t.Fatalf("got (%v,%v), want (%d,true)", n, ok, int64('A')+1)
	}
}

func TestStringConcatAndMembers(t *testing.T) {
	en := newEngine()
	a := en.NewValue("foo")
	b := en.NewValue("bar")
	got, err := en.BinaryOp(token.PLUS, a, b)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := value.Cast[string](got)
	if s != "foobar" {
		t.Fatalf("got %q, want %q", s, "foobar")
	}

	size, err := en.CallMember("size", got, nil)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := value.Cast[int64](size)
	if n != 6 {
		t.Fatalf("got size %d, want 6", n)
	}

	sub, err := en.CallMember("substr", got, []*value.Value{en.NewValue(int64(1)), en.NewValue(int64(3))})
	if err != nil {
		t.Fatal(err)
	}
	ss, _ := value.Cast[string](sub)
	if ss != "oob" {
		t.Fatalf("got %q, want %q", ss, "oob")
	}
}

func TestVectorPushBackAndIndex(t *testing.T) {
	en := newEngine()
	vec := en.NewVector(nil)

	if _, err := en.CallMember("push_back", vec, []*value.Value{en.NewValue(int64(10))}); err != nil {
		t.Fatal(err)
	}
	if _, err := en.CallMember("push_back", vec, []*value.Value{en.NewValue(int64(20))}); err != nil {
		t.Fatal(err)
	}

	size, err := en.CallMember("size", vec, nil)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := value.Cast[int64](size)
	if n != 2 {
		t.Fatalf("got size %d, want 2", n)
	}

	elem, err := en.CallMember("[]", vec, []*value.Value{en.NewValue(int64(1))})
	if err != nil {
		t.Fatal(err)
	}
	got, _ := value.Cast[int64](elem)
	if got != 20 {
		t.Fatalf("got %d, want 20", got)
	}
}

func TestVectorIndexOutOfRangeErrors(t *testing.T) {
	en := newEngine()
	vec := en.NewVector(nil)
	if _, err := en.CallMember("[]", vec, []*value.Value{en.NewValue(int64(0))}); err == nil {
		t.Fatal("expected out-of-range error on empty vector")
	}
}

func TestAssertFailureRaisesAssertionFailure(t *testing.T) {
	en := newEngine()
	_, err := en.CallGlobal("assert", []*value.Value{en.NewValue(false)})
	if err == nil {
		t.Fatal("expected assertion failure")
	}
}

func TestPrintlnWritesToEngineOutput(t *testing.T) {
	en := newEngine()
	var buf bytes.Buffer
	en.SetOutput(&buf)

	if _, err := en.CallGlobal("println", []*value.Value{en.NewValue(int64(42))}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "42\n" {
		t.Fatalf("got %q, want %q", buf.String(), "42\n")
	}
}

// TestVectorLiteralEvaluatesThroughAST builds a nested vector literal and
// reads an element back through the AST evaluator rather than calling the
// engine API directly.
func TestVectorLiteralEvaluatesThroughAST(t *testing.T) {
	en := newEngine()
	decl := &ast.Binary{
		Op: token.ASSIGN,
		L:  &ast.Ident{Name: "v", IsDecl: true},
		R: &ast.VectorDecl{Elems: []ast.Node{
			&ast.Lit{Payload: int64(1)},
			&ast.Lit{Payload: int64(2)},
			&ast.Lit{Payload: int64(3)},
		}},
	}
	if _, err := decl.Eval(en); err != nil {
		t.Fatal(err)
	}
	access := &ast.VectorAccess{Container: &ast.Ident{Name: "v"}, Index: &ast.Lit{Payload: int64(2)}}
	got, err := access.Eval(en)
	if err != nil {
		t.Fatal(err)
	}
	n, ok := value.Cast[int64](got)
	if !ok || n != 3 {
		t.Fatalf("got (%v,%v), want (3,true)", n, ok)
	}
}

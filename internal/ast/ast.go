// Package ast defines the tagged syntax-tree node kinds the parser builds
// and their evaluation semantics. Nodes are evaluated
// against an Engine interface rather than a concrete runtime type so this
// package never imports internal/runtime — internal/runtime imports ast
// instead, avoiding an import cycle while letting the concrete dispatch
// engine implement every method a node needs.
package ast

import (
	"scriptbox/internal/token"
	"scriptbox/internal/value"
)

// Engine is everything an AST node needs from the dispatch engine to
// evaluate itself. internal/runtime.Engine implements this interface.
type Engine interface {
	// NewValue boxes a literal payload (int64, float64, bool, string, rune)
	// freshly, the way Value nodes return "a clone of its literal value box".
	NewValue(payload any) *value.Value

	// Declare creates name in the current (top) scope frame and returns the
	// empty value box backing it. Redeclaring an existing name in the same
	// frame is an error.
	Declare(name string) (*value.Value, error)

	// Lookup searches frames top-to-bottom (then the global frame) for name.
	Lookup(name string) (*value.Value, bool)

	// PushScope opens a new stack frame and returns a closer that pops it;
	// callers must defer the closer so the frame pops on every exit path.
	PushScope() func()

	// BinaryOp looks up (left type, op, right type) in the operator table
	// and invokes it.
	BinaryOp(op token.Type, left, right *value.Value) (*value.Value, error)

	// UnaryOp looks up (op, operand type) in the unary operator table and
	// invokes it.
	UnaryOp(op UnaryOp, operand *value.Value) (*value.Value, error)

	// NewVector boxes items as a *value.Vector.
	NewVector(items []*value.Value) *value.Value

	// CallGlobal resolves and invokes a global function overload, falling
	// back to dispatching "()" on a same-named global variable.
	CallGlobal(name string, args []*value.Value) (*value.Value, error)

	// CallMember resolves and invokes a member function overload on inst's
	// bare type, falling back to "()" on a same-named member variable.
	CallMember(name string, inst *value.Value, args []*value.Value) (*value.Value, error)

	// MemberVar returns a reference box to inst's named field.
	MemberVar(name string, inst *value.Value) (*value.Value, error)
}

// UnaryOp classifies a unary operator after the parser has disambiguated
// prefix/postfix and +/- from their binary counterparts. These are
// distinct from token.Type because the same token (e.g. MINUS) is both a
// binary operator and, in prefix position, a unary one.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	PreInc
	PreDec
	PostInc
	PostDec
	LogicNot
	BitwiseNot
)

// Node is one tagged AST node. Eval evaluates it against en and returns
// the resulting value box (or propagates an error, unwinding any scope
// guards opened along the way).
type Node interface {
	Eval(en Engine) (*value.Value, error)
}

// Noop evaluates to an empty value box. Used for empty program bodies and
// the empty arms of a `for` header.
type Noop struct{}

func (Noop) Eval(en Engine) (*value.Value, error) { return value.Empty(), nil }

// Lit is a literal: re-boxed fresh on every Eval so no two evaluations of
// the same literal node alias one value box.
type Lit struct {
	Payload any
}

func (n *Lit) Eval(en Engine) (*value.Value, error) { return en.NewValue(n.Payload), nil }

// Ident is a named-variable reference. IsDecl distinguishes `var NAME`
// (creates in the current frame) from a plain NAME use (looks up through
// enclosing frames). Both cases return a reference box, so the caller
// (typically a Binary node whose op is ASSIGN) can detect "first
// assignment to an empty box" uniformly.
type Ident struct {
	Name   string
	IsDecl bool
}

func (n *Ident) Eval(en Engine) (*value.Value, error) {
	if n.IsDecl {
		slot, err := en.Declare(n.Name)
		if err != nil {
			return nil, err
		}
		return value.RefOf(slot), nil
	}
	slot, ok := en.Lookup(n.Name)
	if !ok {
		return nil, &undefinedVariableError{n.Name}
	}
	return value.RefOf(slot), nil
}

type undefinedVariableError struct{ name string }

func (e *undefinedVariableError) Error() string { return "undefined variable: " + e.name }

// Binary is a binary operator applied to two expressions. ASSIGN against
// an empty left-hand box performs
// first assignment directly; every other case — including ASSIGN against
// an already-initialized box — is dispatched through the operator table,
// so same-type reassignment requires the table to carry an ASSIGN entry
// and cross-type reassignment is rejected by the table's absence of one
// (see DESIGN.md's Open Question decision).
type Binary struct {
	Op   token.Type
	L, R Node
}

func (n *Binary) Eval(en Engine) (*value.Value, error) {
	lv, err := n.L.Eval(en)
	if err != nil {
		return nil, err
	}
	rv, err := n.R.Eval(en)
	if err != nil {
		return nil, err
	}

	left := lv.ResolveRef()
	right := rv.ResolveRef()

	if n.Op == token.ASSIGN && left.IsEmpty() {
		left.Set(right)
		return value.RefOf(left), nil
	}
	return en.BinaryOp(n.Op, left, right)
}

// Unary is a prefix/postfix unary operator.
type Unary struct {
	Op UnaryOp
	X  Node
}

func (n *Unary) Eval(en Engine) (*value.Value, error) {
	xv, err := n.X.Eval(en)
	if err != nil {
		return nil, err
	}
	operand := xv.ResolveRef()

	switch n.Op {
	case UnaryPlus:
		return operand.Clone(), nil
	case PreInc, PreDec:
		next, err := en.UnaryOp(n.Op, operand)
		if err != nil {
			return nil, err
		}
		operand.Set(next)
		return operand, nil
	case PostInc, PostDec:
		saved := operand.Clone()
		next, err := en.UnaryOp(n.Op, operand)
		if err != nil {
			return nil, err
		}
		operand.Set(next)
		return saved, nil
	default: // LogicNot, BitwiseNot, UnaryMinus
		return en.UnaryOp(n.Op, operand)
	}
}

// Statements evaluates each child in order and returns the last one's
// value (an empty box if there are no children).
type Statements struct {
	Stmts []Node
}

func (n *Statements) Eval(en Engine) (*value.Value, error) {
	result := value.Empty()
	for _, s := range n.Stmts {
		v, err := s.Eval(en)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// Scope pushes a stack frame for the duration of Body, then always
// returns an empty box regardless of what Body produced.
type Scope struct {
	Body Node
}

func (n *Scope) Eval(en Engine) (*value.Value, error) {
	closeScope := en.PushScope()
	defer closeScope()

	if _, err := n.Body.Eval(en); err != nil {
		return nil, err
	}
	return value.Empty(), nil
}

// If evaluates Cond and runs Then or Else depending on its truthiness.
type If struct {
	Cond, Then, Else Node
}

func (n *If) Eval(en Engine) (*value.Value, error) {
	cv, err := n.Cond.Eval(en)
	if err != nil {
		return nil, err
	}
	truthy, ok := value.Truthy(cv.ResolveRef())
	if !ok {
		return nil, &notTruthyError{}
	}
	if truthy {
		return n.Then.Eval(en)
	}
	if n.Else != nil {
		return n.Else.Eval(en)
	}
	return value.Empty(), nil
}

type notTruthyError struct{}

func (*notTruthyError) Error() string { return "condition does not evaluate to a truthy value" }

// While re-evaluates Cond before every iteration of Body.
type While struct {
	Cond, Body Node
}

func (n *While) Eval(en Engine) (*value.Value, error) {
	for {
		cv, err := n.Cond.Eval(en)
		if err != nil {
			return nil, err
		}
		truthy, ok := value.Truthy(cv.ResolveRef())
		if !ok {
			return nil, &notTruthyError{}
		}
		if !truthy {
			return value.Empty(), nil
		}
		if _, err := n.Body.Eval(en); err != nil {
			return nil, err
		}
	}
}

// For evaluates Init once, then loops "while Cond { Body; Step }". Any of
// Init/Cond/Step may be a Noop; an absent Cond is treated as always-true.
type For struct {
	Init, Cond, Step, Body Node
}

func (n *For) Eval(en Engine) (*value.Value, error) {
	if _, err := n.Init.Eval(en); err != nil {
		return nil, err
	}
	for {
		_, isNoop := n.Cond.(Noop)
		_, isNoopPtr := n.Cond.(*Noop)
		if !isNoop && !isNoopPtr {
			cv, err := n.Cond.Eval(en)
			if err != nil {
				return nil, err
			}
			truthy, ok := value.Truthy(cv.ResolveRef())
			if !ok {
				return nil, &notTruthyError{}
			}
			if !truthy {
				return value.Empty(), nil
			}
		}
		if _, err := n.Body.Eval(en); err != nil {
			return nil, err
		}
		if _, err := n.Step.Eval(en); err != nil {
			return nil, err
		}
	}
}

// VectorDecl evaluates each initializer and packs the results into one
// value box holding an ordered sequence of owned value boxes.
type VectorDecl struct {
	Elems []Node
}

func (n *VectorDecl) Eval(en Engine) (*value.Value, error) {
	items := make([]*value.Value, len(n.Elems))
	for i, e := range n.Elems {
		v, err := e.Eval(en)
		if err != nil {
			return nil, err
		}
		items[i] = v.ResolveRef().Clone()
	}
	return en.NewVector(items), nil
}

// VectorAccess dispatches to the container's bound "[]" member function.
type VectorAccess struct {
	Container, Index Node
}

func (n *VectorAccess) Eval(en Engine) (*value.Value, error) {
	cv, err := n.Container.Eval(en)
	if err != nil {
		return nil, err
	}
	iv, err := n.Index.Eval(en)
	if err != nil {
		return nil, err
	}
	return en.CallMember("[]", cv.ResolveRef(), []*value.Value{iv.ResolveRef()})
}

// GlobalCall is a call to a free (global) function by name.
type GlobalCall struct {
	Name string
	Args []Node
}

func (n *GlobalCall) Eval(en Engine) (*value.Value, error) {
	args, err := evalArgs(en, n.Args)
	if err != nil {
		return nil, err
	}
	return en.CallGlobal(n.Name, args)
}

// MemberCall is a call to a member function on an instance expression.
type MemberCall struct {
	Name string
	Inst Node
	Args []Node
}

func (n *MemberCall) Eval(en Engine) (*value.Value, error) {
	iv, err := n.Inst.Eval(en)
	if err != nil {
		return nil, err
	}
	args, err := evalArgs(en, n.Args)
	if err != nil {
		return nil, err
	}
	return en.CallMember(n.Name, iv.ResolveRef(), args)
}

// MemberVar is a reference to a named field of an instance expression.
type MemberVar struct {
	Name string
	Inst Node
}

func (n *MemberVar) Eval(en Engine) (*value.Value, error) {
	iv, err := n.Inst.Eval(en)
	if err != nil {
		return nil, err
	}
	return en.MemberVar(n.Name, iv.ResolveRef())
}

func evalArgs(en Engine, nodes []Node) ([]*value.Value, error) {
	args := make([]*value.Value, len(nodes))
	for i, a := range nodes {
		v, err := a.Eval(en)
		if err != nil {
			return nil, err
		}
		args[i] = v.ResolveRef()
	}
	return args, nil
}

// Program is the parser's top-level result: either Noop, a single
// statement, or a Statements wrapper.
type Program struct {
	Root Node
}

func (p *Program) Eval(en Engine) (*value.Value, error) { return p.Root.Eval(en) }

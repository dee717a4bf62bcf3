package parser

import (
	"scriptbox/internal/ast"
	"scriptbox/internal/token"
)

// registerExpressionParsers wires the prefix/infix tables. Unlike the
// reference implementation's single "tie_equation" pass run once an entire
// expression has been scanned, each parse function here both consumes
// tokens and builds its node eagerly — the two strategies yield the same
// tree shape for the same precedence table (see package doc).
func (p *Parser) registerExpressionParsers() {
	p.prefixFns[token.INT] = p.parseIntLiteral
	p.prefixFns[token.FLOAT] = p.parseFloatLiteral
	p.prefixFns[token.STRING] = p.parseStringLiteral
	p.prefixFns[token.CHAR] = p.parseCharLiteral
	p.prefixFns[token.TRUE] = p.parseBoolLiteral
	p.prefixFns[token.FALSE] = p.parseBoolLiteral
	p.prefixFns[token.IDENT] = p.parseIdentifier
	p.prefixFns[token.LPAREN] = p.parseGroupedExpr
	p.prefixFns[token.LBRACK] = p.parseVectorLiteral
	p.prefixFns[token.MINUS] = p.parsePrefixUnary(ast.UnaryMinus)
	p.prefixFns[token.PLUS] = p.parsePrefixUnary(ast.UnaryPlus)
	p.prefixFns[token.BANG] = p.parsePrefixUnary(ast.LogicNot)
	p.prefixFns[token.TILDE] = p.parsePrefixUnary(ast.BitwiseNot)
	p.prefixFns[token.INC] = p.parsePrefixStep(ast.PreInc)
	p.prefixFns[token.DEC] = p.parsePrefixStep(ast.PreDec)

	for _, t := range []token.Type{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.SHL, token.SHR, token.AMP, token.PIPE, token.CARET,
		token.AMP_AMP, token.PIPE_PIPE,
		token.EQ, token.NOT_EQ, token.LESS, token.GREATER, token.LESS_EQ, token.GREATER_EQ,
	} {
		p.infixFns[t] = p.parseBinaryExpr
	}
	p.infixFns[token.ASSIGN] = p.parseAssignExpr
	for t := range compoundBase {
		p.infixFns[t] = p.parseCompoundAssignExpr
	}
	p.infixFns[token.DOT] = p.parseMemberAccess
	p.infixFns[token.LBRACK] = p.parseIndexAccess
	p.infixFns[token.LPAREN] = p.parseCallExpr
}

// parseExpression is the precedence-climbing core: it parses one prefix
// term, then repeatedly folds in infix operators whose precedence exceeds
// the caller's floor.
func (p *Parser) parseExpression(precedence int) (ast.Node, error) {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		return nil, p.errorf("unexpected token %s in expression", p.cur.Type)
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peek.Type]
		if !ok {
			break
		}
		p.nextToken()
		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parseStringLiteral() (ast.Node, error) {
	return &ast.Lit{Payload: p.cur.Literal}, nil
}

func (p *Parser) parseCharLiteral() (ast.Node, error) {
	r := []rune(p.cur.Literal)
	if len(r) == 0 {
		return nil, p.errorf("empty character literal")
	}
	return &ast.Lit{Payload: r[0]}, nil
}

func (p *Parser) parseBoolLiteral() (ast.Node, error) {
	return &ast.Lit{Payload: p.cur.Type == token.TRUE}, nil
}

// parseIdentifier returns a plain variable reference, or wraps it in a
// postfix increment/decrement if `++`/`--` immediately follows.
func (p *Parser) parseIdentifier() (ast.Node, error) {
	name := p.cur.Literal
	ident := &ast.Ident{Name: name}
	switch {
	case p.peekIs(token.INC):
		p.nextToken()
		return &ast.Unary{Op: ast.PostInc, X: ident}, nil
	case p.peekIs(token.DEC):
		p.nextToken()
		return &ast.Unary{Op: ast.PostDec, X: ident}, nil
	default:
		return ident, nil
	}
}

func (p *Parser) parseGroupedExpr() (ast.Node, error) {
	p.nextToken()
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseVectorLiteral() (ast.Node, error) {
	elems, err := p.parseExprListUntil(token.RBRACK)
	if err != nil {
		return nil, err
	}
	return &ast.VectorDecl{Elems: elems}, nil
}

// parseExprListUntil parses a comma-separated expression list, starting
// with cur on the opening bracket/paren and ending with cur on closing.
func (p *Parser) parseExprListUntil(closing token.Type) ([]ast.Node, error) {
	var items []ast.Node
	if p.peekIs(closing) {
		p.nextToken()
		return items, nil
	}
	p.nextToken()
	item, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	items = append(items, item)

	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		item, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := p.expect(closing); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *Parser) parsePrefixUnary(op ast.UnaryOp) prefixParseFn {
	return func() (ast.Node, error) {
		p.nextToken()
		operand, err := p.parseExpression(UNARY)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, X: operand}, nil
	}
}

// parsePrefixStep handles `++x`/`--x`: the operand must be a bare
// identifier.
func (p *Parser) parsePrefixStep(op ast.UnaryOp) prefixParseFn {
	return func() (ast.Node, error) {
		if err := p.expect(token.IDENT); err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, X: &ast.Ident{Name: p.cur.Literal}}, nil
	}
}

func (p *Parser) parseBinaryExpr(left ast.Node) (ast.Node, error) {
	op := p.cur.Type
	prec := p.curPrecedence()
	p.nextToken()
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Op: op, L: left, R: right}, nil
}

// parseAssignExpr parses `=`, right-associatively, requiring a bare
// identifier on the left.
func (p *Parser) parseAssignExpr(left ast.Node) (ast.Node, error) {
	ident, ok := left.(*ast.Ident)
	if !ok {
		return nil, p.errorf("left-hand side of assignment must be a variable name")
	}
	p.nextToken()
	right, err := p.parseExpression(ASSIGNMENT - 1)
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Op: token.ASSIGN, L: ident, R: right}, nil
}

// parseCompoundAssignExpr desugars `x OP= y` into `x = x OP y`.
func (p *Parser) parseCompoundAssignExpr(left ast.Node) (ast.Node, error) {
	ident, ok := left.(*ast.Ident)
	if !ok {
		return nil, p.errorf("left-hand side of compound assignment must be a variable name")
	}
	baseOp := compoundBase[p.cur.Type]
	p.nextToken()
	right, err := p.parseExpression(ASSIGNMENT - 1)
	if err != nil {
		return nil, err
	}
	inner := &ast.Binary{Op: baseOp, L: &ast.Ident{Name: ident.Name}, R: right}
	return &ast.Binary{Op: token.ASSIGN, L: ident, R: inner}, nil
}

func (p *Parser) parseMemberAccess(left ast.Node) (ast.Node, error) {
	if err := p.expect(token.IDENT); err != nil {
		return nil, err
	}
	name := p.cur.Literal
	if p.peekIs(token.LPAREN) {
		p.nextToken()
		args, err := p.parseExprListUntil(token.RPAREN)
		if err != nil {
			return nil, err
		}
		return &ast.MemberCall{Name: name, Inst: left, Args: args}, nil
	}
	return &ast.MemberVar{Name: name, Inst: left}, nil
}

func (p *Parser) parseIndexAccess(left ast.Node) (ast.Node, error) {
	p.nextToken()
	idx, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RBRACK); err != nil {
		return nil, err
	}
	return &ast.VectorAccess{Container: left, Index: idx}, nil
}

func (p *Parser) parseCallExpr(left ast.Node) (ast.Node, error) {
	ident, ok := left.(*ast.Ident)
	if !ok {
		return nil, p.errorf("cannot call a non-identifier expression")
	}
	args, err := p.parseExprListUntil(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return &ast.GlobalCall{Name: ident.Name, Args: args}, nil
}

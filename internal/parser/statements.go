package parser

import (
	"scriptbox/internal/ast"
	"scriptbox/internal/token"
)

// parseStatement dispatches on the current token to one of the statement
// forms, falling back to a bare expression statement (covers assignment,
// since `=` is just the lowest-precedence binary operator in this
// grammar).
func (p *Parser) parseStatement() (ast.Node, error) {
	switch p.cur.Type {
	case token.VAR:
		return p.parseVarDecl()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.LBRACE:
		return p.parseBraceBlock()
	default:
		return p.parseExpression(LOWEST)
	}
}

// parseVarDecl parses `var NAME = EXPR`. Lexing classifies every reserved
// word as its own token type rather than IDENT, so `var if = 1` is
// rejected here for free: expect(IDENT) fails on a keyword token.
func (p *Parser) parseVarDecl() (ast.Node, error) {
	if err := p.expect(token.IDENT); err != nil {
		return nil, err
	}
	name := p.cur.Literal
	if err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	p.nextToken()
	val, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Op: token.ASSIGN, L: &ast.Ident{Name: name, IsDecl: true}, R: val}, nil
}

// parseIf parses `if (EXPR) BRANCH [else BRANCH | else if ...]`.
func (p *Parser) parseIf() (ast.Node, error) {
	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	p.nextToken()
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	thenNode, err := p.parseBranch()
	if err != nil {
		return nil, err
	}

	var elseNode ast.Node = &ast.Noop{}
	if p.peekIs(token.ELSE) {
		p.nextToken()
		if p.peekIs(token.IF) {
			p.nextToken()
			elseNode, err = p.parseIf()
		} else {
			elseNode, err = p.parseBranch()
		}
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Cond: cond, Then: thenNode, Else: elseNode}, nil
}

func (p *Parser) parseWhile() (ast.Node, error) {
	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	p.nextToken()
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBranch()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body}, nil
}

// parseFor parses `for (INIT; COND; STEP) BRANCH`, any clause of which
// may be empty.
func (p *Parser) parseFor() (ast.Node, error) {
	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var init ast.Node = &ast.Noop{}
	if !p.peekIs(token.SEMICOLON) {
		p.nextToken()
		var err error
		init, err = p.parseForClause()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	var cond ast.Node = &ast.Noop{}
	if !p.peekIs(token.SEMICOLON) {
		p.nextToken()
		var err error
		cond, err = p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	var step ast.Node = &ast.Noop{}
	if !p.peekIs(token.RPAREN) {
		p.nextToken()
		var err error
		step, err = p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBranch()
	if err != nil {
		return nil, err
	}
	return &ast.For{Init: init, Cond: cond, Step: step, Body: body}, nil
}

func (p *Parser) parseForClause() (ast.Node, error) {
	if p.cur.Type == token.VAR {
		return p.parseVarDecl()
	}
	return p.parseExpression(LOWEST)
}

// parseBranch parses an if/while/for body: a brace block (its own scope)
// or a single statement evaluated without an extra scope frame.
func (p *Parser) parseBranch() (ast.Node, error) {
	if p.peekIs(token.LBRACE) {
		p.nextToken()
		return p.parseBraceBlock()
	}
	p.nextToken()
	return p.parseStatement()
}

func (p *Parser) parseBraceBlock() (ast.Node, error) {
	p.nextToken()
	stmts, err := p.parseStatementList(token.RBRACE)
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.RBRACE {
		return nil, p.errorf("expected '}', got %s", p.cur.Type)
	}
	return &ast.Scope{Body: wrapStatements(stmts)}, nil
}

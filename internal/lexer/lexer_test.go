package lexer

import (
	"testing"

	"scriptbox/internal/token"
)

func collect(src string) []token.Token {
	l := New(src)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestBasicDeclaration(t *testing.T) {
	toks := collect("var a = 0")
	want := []token.Type{token.VAR, token.IDENT, token.ASSIGN, token.INT, token.EOF}
	got := types(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNewlineIsSignificant(t *testing.T) {
	toks := collect("var a = 1\nvar b = 2")
	foundNewline := false
	for _, tok := range toks {
		if tok.Type == token.NEWLINE {
			foundNewline = true
		}
	}
	if !foundNewline {
		t.Fatal("expected a NEWLINE token between statements")
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		src  string
		typ  token.Type
		want string
	}{
		{"123", token.INT, "123"},
		{"1.5", token.FLOAT, "1.5"},
		{".5", token.FLOAT, ".5"},
		{"1.", token.FLOAT, "1."},
	}
	for _, c := range cases {
		toks := collect(c.src)
		if toks[0].Type != c.typ || toks[0].Literal != c.want {
			t.Errorf("%q: got (%s,%q), want (%s,%q)", c.src, toks[0].Type, toks[0].Literal, c.typ, c.want)
		}
	}
}

func TestStringAndCharLiterals(t *testing.T) {
	toks := collect(`"Hello" 'c'`)
	if toks[0].Type != token.STRING || toks[0].Literal != "Hello" {
		t.Errorf("got %v", toks[0])
	}
	if toks[1].Type != token.CHAR || toks[1].Literal != "c" {
		t.Errorf("got %v", toks[1])
	}
}

func TestOperatorsLongestMatchFirst(t *testing.T) {
	cases := []struct {
		src string
		typ token.Type
	}{
		{"+", token.PLUS}, {"++", token.INC}, {"+=", token.PLUS_ASSIGN},
		{"-", token.MINUS}, {"--", token.DEC}, {"-=", token.MINUS_ASSIGN},
		{"<", token.LESS}, {"<=", token.LESS_EQ}, {"<<", token.SHL}, {"<<=", token.SHL_ASSIGN},
		{">", token.GREATER}, {">=", token.GREATER_EQ}, {">>", token.SHR}, {">>=", token.SHR_ASSIGN},
		{"&", token.AMP}, {"&&", token.AMP_AMP}, {"&=", token.AND_ASSIGN},
		{"|", token.PIPE}, {"||", token.PIPE_PIPE}, {"|=", token.OR_ASSIGN},
		{"==", token.EQ}, {"!=", token.NOT_EQ}, {"!", token.BANG},
		{"=", token.ASSIGN},
	}
	for _, c := range cases {
		toks := collect(c.src)
		if toks[0].Type != c.typ {
			t.Errorf("%q: got %s, want %s", c.src, toks[0].Type, c.typ)
		}
	}
}

func TestComments(t *testing.T) {
	toks := collect("var a = 1 // comment\nvar b = /* block */ 2")
	got := types(toks)
	for _, tt := range got {
		if tt == token.ILLEGAL {
			t.Fatalf("unexpected ILLEGAL token in %v", got)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unterminated string")
		}
		if _, ok := r.(*UnterminatedStringError); !ok {
			t.Fatalf("expected *UnterminatedStringError, got %T", r)
		}
	}()
	collect(`"never closes`)
}

func TestKeywordsVsIdentifiers(t *testing.T) {
	toks := collect("var variable if iffy")
	want := []token.Type{token.VAR, token.IDENT, token.IF, token.IDENT, token.EOF}
	got := types(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

package lexer

import (
	"testing"

	"loxvm/internal/source"
	"loxvm/internal/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("<test>", []byte(src))
	lx := New(fs.Get(id))

	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	toks := scanAll(t, "(){},.-+;*/!!====<<=>>=")
	want := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Slash, token.Bang, token.BangEqual, token.EqualEqual, token.Equal,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerSkipsCommentsAndWhitespace(t *testing.T) {
	toks := scanAll(t, "// a comment\n  print 1; // trailing\n")
	got := kinds(toks)
	want := []token.Kind{token.Print, token.Number, token.Semicolon, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerStringLiteral(t *testing.T) {
	toks := scanAll(t, `"hello\nworld"`)
	if toks[0].Kind != token.String {
		t.Fatalf("got %v, want String", toks[0].Kind)
	}
}

func TestLexerStringSpansMultipleLines(t *testing.T) {
	toks := scanAll(t, "\"a\nb\" 1")
	if toks[0].Kind != token.String {
		t.Fatalf("got %v, want String", toks[0].Kind)
	}
	if toks[1].Line != 2 {
		t.Errorf("second token line = %d, want 2", toks[1].Line)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	toks := scanAll(t, `"unterminated`)
	if toks[0].Kind != token.Error {
		t.Fatalf("got %v, want Error", toks[0].Kind)
	}
	if toks[0].Text != "Unterminated string." {
		t.Errorf("got %q", toks[0].Text)
	}
}

func TestLexerNumbers(t *testing.T) {
	for _, tc := range []struct {
		src  string
		text string
	}{
		{"123", "123"},
		{"3.14", "3.14"},
		{"0", "0"},
	} {
		toks := scanAll(t, tc.src)
		if toks[0].Kind != token.Number || toks[0].Text != tc.text {
			t.Errorf("src %q: got kind=%v text=%q", tc.src, toks[0].Kind, toks[0].Text)
		}
	}
}

func TestLexerNumberDotWithoutDigitsIsSeparate(t *testing.T) {
	toks := scanAll(t, "123.")
	got := kinds(toks)
	want := []token.Kind{token.Number, token.Dot, token.EOF}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	toks := scanAll(t, "andy and class classy")
	got := kinds(toks)
	want := []token.Kind{token.Identifier, token.And, token.Class, token.Identifier, token.EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerEOFIsSticky(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<test>", []byte(""))
	lx := New(fs.Get(id))
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("call %d: got %v, want EOF", i, tok.Kind)
		}
	}
}

// Package lexer turns Lox source text into a lazy sequence of tokens.
package lexer

import (
	"loxvm/internal/source"
	"loxvm/internal/token"
)

// Lexer produces tokens from a source file on demand; the compiler pulls one
// token at a time and never materializes the full stream.
type Lexer struct {
	cursor Cursor
}

// New creates a Lexer over f.
func New(f *source.File) *Lexer {
	return &Lexer{cursor: NewCursor(f)}
}

// Next scans and returns the next token. After EOF, every further call
// returns another EOF token.
func (lx *Lexer) Next() token.Token {
	lx.skipIgnorable()

	startLine := lx.cursor.Line
	m := lx.cursor.Mark()

	if lx.cursor.EOF() {
		return lx.make(token.EOF, m, startLine)
	}

	c := lx.cursor.Bump()
	switch c {
	case '(':
		return lx.make(token.LeftParen, m, startLine)
	case ')':
		return lx.make(token.RightParen, m, startLine)
	case '{':
		return lx.make(token.LeftBrace, m, startLine)
	case '}':
		return lx.make(token.RightBrace, m, startLine)
	case ',':
		return lx.make(token.Comma, m, startLine)
	case '.':
		return lx.make(token.Dot, m, startLine)
	case '-':
		return lx.make(token.Minus, m, startLine)
	case '+':
		return lx.make(token.Plus, m, startLine)
	case ';':
		return lx.make(token.Semicolon, m, startLine)
	case '*':
		return lx.make(token.Star, m, startLine)
	case '/':
		return lx.make(token.Slash, m, startLine)
	case '!':
		if lx.cursor.Eat('=') {
			return lx.make(token.BangEqual, m, startLine)
		}
		return lx.make(token.Bang, m, startLine)
	case '=':
		if lx.cursor.Eat('=') {
			return lx.make(token.EqualEqual, m, startLine)
		}
		return lx.make(token.Equal, m, startLine)
	case '<':
		if lx.cursor.Eat('=') {
			return lx.make(token.LessEqual, m, startLine)
		}
		return lx.make(token.Less, m, startLine)
	case '>':
		if lx.cursor.Eat('=') {
			return lx.make(token.GreaterEqual, m, startLine)
		}
		return lx.make(token.Greater, m, startLine)
	case '"':
		return lx.scanString(m, startLine)
	default:
		switch {
		case isDigit(c):
			return lx.scanNumber(m, startLine)
		case isAlpha(c):
			return lx.scanIdentOrKeyword(m, startLine)
		default:
			return lx.errorToken(m, startLine, "Unexpected character.")
		}
	}
}

// skipIgnorable skips whitespace and "//" line comments.
func (lx *Lexer) skipIgnorable() {
	for {
		switch lx.cursor.Peek() {
		case ' ', '\r', '\t', '\n':
			lx.cursor.Bump()
		case '/':
			if lx.cursor.PeekAt(1) == '/' {
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
				continue
			}
			return
		default:
			return
		}
	}
}

func (lx *Lexer) scanString(m Mark, startLine uint32) token.Token {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '"' {
		lx.cursor.Bump()
	}
	if lx.cursor.EOF() {
		return lx.errorToken(m, startLine, "Unterminated string.")
	}
	lx.cursor.Bump() // closing quote
	return lx.make(token.String, m, startLine)
}

func (lx *Lexer) scanNumber(m Mark, startLine uint32) token.Token {
	for isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && isDigit(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	return lx.make(token.Number, m, startLine)
}

func (lx *Lexer) scanIdentOrKeyword(m Mark, startLine uint32) token.Token {
	for isAlphaNumeric(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(m)
	if kind, ok := token.Keywords[text]; ok {
		return lx.make(kind, m, startLine)
	}
	return lx.make(token.Identifier, m, startLine)
}

func (lx *Lexer) make(kind token.Kind, m Mark, line uint32) token.Token {
	return token.Token{
		Kind: kind,
		Span: lx.cursor.SpanFrom(m),
		Text: lx.cursor.TextFrom(m),
		Line: line,
	}
}

func (lx *Lexer) errorToken(m Mark, line uint32, msg string) token.Token {
	return token.Token{
		Kind: token.Error,
		Span: lx.cursor.SpanFrom(m),
		Text: msg,
		Line: line,
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

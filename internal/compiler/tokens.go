package compiler

import (
	"fmt"

	"loxvm/internal/diag"
	"loxvm/internal/token"
)

func (p *parser) advance() {
	p.previous = p.current
	for {
		p.current = p.lx.Next()
		if p.current.Kind != token.Error {
			break
		}
		p.errorAtCurrent(p.current.Text)
	}
}

func (p *parser) check(k token.Kind) bool { return p.current.Kind == k }

func (p *parser) match(k token.Kind) bool {
	if !p.check(k) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) consume(k token.Kind, message string) {
	if p.current.Kind == k {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

func (p *parser) errorAtCurrent(message string) { p.errorAt(p.current, message) }
func (p *parser) error(message string)          { p.errorAt(p.previous, message) }

// errorAt reports a compile error in the spec's "Error at '<token>': <msg>."
// format and engages panic mode so cascading errors from the same failure
// are suppressed until the next statement boundary.
func (p *parser) errorAt(tok token.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true

	where := "'" + tok.Text + "'"
	if tok.Kind == token.EOF {
		where = "end"
	} else if tok.Kind == token.Error {
		where = ""
	}

	text := fmt.Sprintf("Error at %s: %s", where, message)
	if tok.Kind == token.Error {
		text = fmt.Sprintf("Error: %s", message)
	}

	if p.reporter != nil {
		diag.ReportError(p.reporter, codeFor(message), tok.Span, text)
	}
}

// synchronize discards tokens until a likely statement boundary, matching
// the spec's panic-mode recovery: stop right after a consumed ';', or at
// the start of a token that begins a new statement.
func (p *parser) synchronize() {
	p.panicMode = false

	for p.current.Kind != token.EOF {
		if p.previous.Kind == token.Semicolon {
			return
		}
		switch p.current.Kind {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

// codeFor maps a handful of well-known messages to stable diagnostic
// codes; anything else falls back to a generic "unexpected token" code
// rather than growing an unbounded message->code table.
func codeFor(message string) diag.Code {
	switch message {
	case "Expect expression.":
		return diag.CompExpectExpression
	case "Invalid assignment target.":
		return diag.CompInvalidAssignTarget
	case "Too many constants in one chunk.":
		return diag.CompTooManyConstants
	case "Too many local variables in function.":
		return diag.CompTooManyLocals
	case "Too many closure variables in function.":
		return diag.CompTooManyUpvalues
	case "Already a variable with this name in this scope.":
		return diag.CompVariableAlreadyDecl
	case "Can't read local variable in its own initializer.":
		return diag.CompReadInOwnInitializer
	case "Can't return a value from an initializer.":
		return diag.CompReturnFromInit
	case "Can't return from top-level code.":
		return diag.CompReturnAtTopLevel
	case "Loop body too large.":
		return diag.CompLoopBodyTooLarge
	case "Too much code to jump over.":
		return diag.CompJumpTooLarge
	case "Can't use 'super' outside of a class.":
		return diag.CompSuperOutsideClass
	case "Can't use 'super' in a class with no superclass.":
		return diag.CompSuperNoSuperclass
	case "Can't use 'this' outside of a class.":
		return diag.CompThisOutsideClass
	case "A class can't inherit from itself.":
		return diag.CompClassInheritsSelf
	default:
		return diag.CompUnexpectedToken
	}
}

package compiler

import (
	"strconv"

	"golang.org/x/text/unicode/norm"

	"loxvm/internal/bytecode"
	"loxvm/internal/token"
	"loxvm/internal/value"
)

func number(p *parser, _ bool) {
	n, err := strconv.ParseFloat(p.previous.Text, 64)
	if err != nil {
		p.error("Invalid number literal.")
		return
	}
	p.emitConstant(value.Number(n))
}

func stringLiteral(p *parser, _ bool) {
	text := p.previous.Text
	// Text spans the token including the delimiting quotes.
	unquoted := text[1 : len(text)-1]
	// Normalize to NFC so two source literals that look identical but use
	// different combining-mark sequences intern to the same string object.
	str := p.gc.InternString(norm.NFC.String(unquoted))
	p.emitConstant(value.Obj(str))
}

func literal(p *parser, _ bool) {
	switch p.previous.Kind {
	case token.False:
		p.emitOp(bytecode.OpFalse)
	case token.True:
		p.emitOp(bytecode.OpTrue)
	case token.Nil:
		p.emitOp(bytecode.OpNil)
	}
}

func grouping(p *parser, _ bool) {
	p.expression()
	p.consume(token.RightParen, "Expect ')' after expression.")
}

func unary(p *parser, _ bool) {
	op := p.previous.Kind
	p.parsePrecedence(PrecUnary)
	switch op {
	case token.Minus:
		p.emitOp(bytecode.OpNegate)
	case token.Bang:
		p.emitOp(bytecode.OpNot)
	}
}

func binary(p *parser, _ bool) {
	op := p.previous.Kind
	r := getRule(op)
	p.parsePrecedence(r.precedence + 1)
	switch op {
	case token.BangEqual:
		p.emitOp(bytecode.OpEqual)
		p.emitOp(bytecode.OpNot)
	case token.EqualEqual:
		p.emitOp(bytecode.OpEqual)
	case token.Greater:
		p.emitOp(bytecode.OpGreater)
	case token.GreaterEqual:
		p.emitOp(bytecode.OpLess)
		p.emitOp(bytecode.OpNot)
	case token.Less:
		p.emitOp(bytecode.OpLess)
	case token.LessEqual:
		p.emitOp(bytecode.OpGreater)
		p.emitOp(bytecode.OpNot)
	case token.Plus:
		p.emitOp(bytecode.OpAdd)
	case token.Minus:
		p.emitOp(bytecode.OpSubtract)
	case token.Star:
		p.emitOp(bytecode.OpMultiply)
	case token.Slash:
		p.emitOp(bytecode.OpDivide)
	}
}

func and_(p *parser, _ bool) {
	endJump := p.emitJump(bytecode.OpJumpIfFalse)
	p.emitOp(bytecode.OpPop)
	p.parsePrecedence(PrecAnd)
	p.patchJump(endJump)
}

func or_(p *parser, _ bool) {
	elseJump := p.emitJump(bytecode.OpJumpIfFalse)
	endJump := p.emitJump(bytecode.OpJump)
	p.patchJump(elseJump)
	p.emitOp(bytecode.OpPop)
	p.parsePrecedence(PrecOr)
	p.patchJump(endJump)
}

func call(p *parser, _ bool) {
	argc := p.argumentList()
	p.emitOps(bytecode.OpCall, argc)
}

// argumentList parses a parenthesized, comma-separated argument list whose
// opening '(' has already been consumed by the call infix rule.
func (p *parser) argumentList() byte {
	var argc int
	if !p.check(token.RightParen) {
		for {
			p.expression()
			if argc == 255 {
				p.error("Can't have more than 255 arguments.")
			}
			argc++
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after arguments.")
	return byte(argc)
}

func dot(p *parser, canAssign bool) {
	p.consume(token.Identifier, "Expect property name after '.'.")
	name := p.identifierConstant(p.previous.Text)

	switch {
	case canAssign && p.match(token.Equal):
		p.expression()
		p.emitOps(bytecode.OpSetProperty, name)
	case p.match(token.LeftParen):
		argc := p.argumentList()
		p.emitOps(bytecode.OpInvoke, name)
		p.emitByte(argc)
	default:
		p.emitOps(bytecode.OpGetProperty, name)
	}
}

func variable(p *parser, canAssign bool) {
	p.namedVariable(p.previous.Text, canAssign)
}

func this_(p *parser, _ bool) {
	if p.class == nil {
		p.error("Can't use 'this' outside of a class.")
		return
	}
	p.namedVariable("this", false)
}

func super_(p *parser, _ bool) {
	if p.class == nil {
		p.error("Can't use 'super' outside of a class.")
	} else if !p.class.hasSuperclass {
		p.error("Can't use 'super' in a class with no superclass.")
	}
	p.consume(token.Dot, "Expect '.' after 'super'.")
	p.consume(token.Identifier, "Expect superclass method name.")
	name := p.identifierConstant(p.previous.Text)

	p.namedVariable("this", false)
	if p.match(token.LeftParen) {
		argc := p.argumentList()
		p.namedVariable("super", false)
		p.emitOps(bytecode.OpSuperInvoke, name)
		p.emitByte(argc)
	} else {
		p.namedVariable("super", false)
		p.emitOps(bytecode.OpGetSuper, name)
	}
}

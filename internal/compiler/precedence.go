package compiler

import "loxvm/internal/token"

// Precedence mirrors the spec's table directly: higher binds tighter.
type Precedence uint8

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // or
	PrecAnd                   // and
	PrecEquality              // == !=
	PrecComparison            // < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * /
	PrecUnary                 // ! -
	PrecCall                  // . ()
	PrecPrimary
)

type prefixFn func(p *parser, canAssign bool)
type infixFn func(p *parser, canAssign bool)

type rule struct {
	prefix     prefixFn
	infix      infixFn
	precedence Precedence
}

var rules map[token.Kind]rule

func init() {
	rules = map[token.Kind]rule{
		token.LeftParen:    {grouping, call, PrecCall},
		token.RightParen:   {nil, nil, PrecNone},
		token.LeftBrace:    {nil, nil, PrecNone},
		token.RightBrace:   {nil, nil, PrecNone},
		token.Comma:        {nil, nil, PrecNone},
		token.Dot:          {nil, dot, PrecCall},
		token.Minus:        {unary, binary, PrecTerm},
		token.Plus:         {nil, binary, PrecTerm},
		token.Semicolon:    {nil, nil, PrecNone},
		token.Slash:        {nil, binary, PrecFactor},
		token.Star:         {nil, binary, PrecFactor},
		token.Bang:         {unary, nil, PrecNone},
		token.BangEqual:    {nil, binary, PrecEquality},
		token.Equal:        {nil, nil, PrecNone},
		token.EqualEqual:   {nil, binary, PrecEquality},
		token.Greater:      {nil, binary, PrecComparison},
		token.GreaterEqual: {nil, binary, PrecComparison},
		token.Less:         {nil, binary, PrecComparison},
		token.LessEqual:    {nil, binary, PrecComparison},
		token.Identifier:   {variable, nil, PrecNone},
		token.String:       {stringLiteral, nil, PrecNone},
		token.Number:       {number, nil, PrecNone},
		token.And:          {nil, and_, PrecAnd},
		token.Class:        {nil, nil, PrecNone},
		token.Else:         {nil, nil, PrecNone},
		token.False:        {literal, nil, PrecNone},
		token.For:          {nil, nil, PrecNone},
		token.Fun:          {nil, nil, PrecNone},
		token.If:           {nil, nil, PrecNone},
		token.Nil:          {literal, nil, PrecNone},
		token.Or:           {nil, or_, PrecOr},
		token.Print:        {nil, nil, PrecNone},
		token.Return:       {nil, nil, PrecNone},
		token.Super:        {super_, nil, PrecNone},
		token.This:         {this_, nil, PrecNone},
		token.True:         {literal, nil, PrecNone},
		token.Var:          {nil, nil, PrecNone},
		token.While:        {nil, nil, PrecNone},
		token.Error:        {nil, nil, PrecNone},
		token.EOF:          {nil, nil, PrecNone},
	}
}

func getRule(k token.Kind) rule {
	if r, ok := rules[k]; ok {
		return r
	}
	return rule{nil, nil, PrecNone}
}

func (p *parser) parsePrecedence(prec Precedence) {
	p.advance()
	r := getRule(p.previous.Kind)
	if r.prefix == nil {
		p.error("Expect expression.")
		return
	}
	canAssign := prec <= PrecAssignment
	r.prefix(p, canAssign)

	for prec <= getRule(p.current.Kind).precedence {
		p.advance()
		infix := getRule(p.previous.Kind).infix
		infix(p, canAssign)
	}

	if canAssign && p.match(token.Equal) {
		p.error("Invalid assignment target.")
	}
}

func (p *parser) expression() { p.parsePrecedence(PrecAssignment) }

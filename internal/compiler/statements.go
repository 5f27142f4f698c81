package compiler

import (
	"loxvm/internal/bytecode"
	"loxvm/internal/token"
	"loxvm/internal/value"
)

func (p *parser) declaration() {
	switch {
	case p.match(token.Class):
		p.classDeclaration()
	case p.match(token.Fun):
		p.funDeclaration()
	case p.match(token.Var):
		p.varDeclaration()
	default:
		p.statement()
	}
	if p.panicMode {
		p.synchronize()
	}
}

func (p *parser) statement() {
	switch {
	case p.match(token.Print):
		p.printStatement()
	case p.match(token.If):
		p.ifStatement()
	case p.match(token.Return):
		p.returnStatement()
	case p.match(token.While):
		p.whileStatement()
	case p.match(token.For):
		p.forStatement()
	case p.match(token.LeftBrace):
		p.beginScope()
		p.block()
		p.endScope()
	default:
		p.expressionStatement()
	}
}

func (p *parser) printStatement() {
	p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	p.emitOp(bytecode.OpPrint)
}

func (p *parser) expressionStatement() {
	p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	p.emitOp(bytecode.OpPop)
}

func (p *parser) block() {
	for !p.check(token.RightBrace) && !p.check(token.EOF) {
		p.declaration()
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
}

func (p *parser) varDeclaration() {
	p.consume(token.Identifier, "Expect variable name.")
	name := p.previous.Text
	p.declareVariable(name)

	if p.match(token.Equal) {
		p.expression()
	} else {
		p.emitOp(bytecode.OpNil)
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	p.defineVariable(name)
}

// defineVariable finishes a declaration: at global scope it emits
// OP_DEFINE_GLOBAL; inside a scope the value is already sitting on the
// stack in the local's slot, so only markInitialized is needed.
func (p *parser) defineVariable(name string) {
	if p.current_.scopeDepth > 0 {
		p.markInitialized()
		return
	}
	global := p.identifierConstant(name)
	p.emitOps(bytecode.OpDefineGlobal, global)
}

func (p *parser) ifStatement() {
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	p.expression()
	p.consume(token.RightParen, "Expect ')' after condition.")

	thenJump := p.emitJump(bytecode.OpJumpIfFalse)
	p.emitOp(bytecode.OpPop)
	p.statement()

	elseJump := p.emitJump(bytecode.OpJump)
	p.patchJump(thenJump)
	p.emitOp(bytecode.OpPop)

	if p.match(token.Else) {
		p.statement()
	}
	p.patchJump(elseJump)
}

func (p *parser) whileStatement() {
	loopStart := len(p.current_.chunk().Code)
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	p.expression()
	p.consume(token.RightParen, "Expect ')' after condition.")

	exitJump := p.emitJump(bytecode.OpJumpIfFalse)
	p.emitOp(bytecode.OpPop)
	p.statement()
	p.emitLoop(loopStart)

	p.patchJump(exitJump)
	p.emitOp(bytecode.OpPop)
}

func (p *parser) forStatement() {
	p.beginScope()
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	switch {
	case p.match(token.Semicolon):
		// no initializer
	case p.match(token.Var):
		p.varDeclaration()
	default:
		p.expressionStatement()
	}

	loopStart := len(p.current_.chunk().Code)
	exitJump := -1
	if !p.match(token.Semicolon) {
		p.expression()
		p.consume(token.Semicolon, "Expect ';' after loop condition.")
		exitJump = p.emitJump(bytecode.OpJumpIfFalse)
		p.emitOp(bytecode.OpPop)
	}

	if !p.match(token.RightParen) {
		bodyJump := p.emitJump(bytecode.OpJump)
		incrementStart := len(p.current_.chunk().Code)
		p.expression()
		p.emitOp(bytecode.OpPop)
		p.consume(token.RightParen, "Expect ')' after for clauses.")

		p.emitLoop(loopStart)
		loopStart = incrementStart
		p.patchJump(bodyJump)
	}

	p.statement()
	p.emitLoop(loopStart)

	if exitJump != -1 {
		p.patchJump(exitJump)
		p.emitOp(bytecode.OpPop)
	}
	p.endScope()
}

func (p *parser) returnStatement() {
	if p.current_.kind == TypeScript {
		p.error("Can't return from top-level code.")
	}
	if p.match(token.Semicolon) {
		p.emitReturn()
		return
	}
	if p.current_.kind == TypeInitializer {
		p.error("Can't return a value from an initializer.")
	}
	p.expression()
	p.consume(token.Semicolon, "Expect ';' after return value.")
	p.emitOp(bytecode.OpReturn)
}

func (p *parser) funDeclaration() {
	p.consume(token.Identifier, "Expect function name.")
	name := p.previous.Text
	p.declareVariable(name)
	p.markInitialized()
	p.function(name, TypeFunction)
	p.defineVariable(name)
}

// function compiles a parameter list and body into a fresh Compiler frame,
// then wraps the resulting Function in an OP_CLOSURE so the enclosing
// frame can capture whatever upvalues the body referenced.
func (p *parser) function(name string, kind FunctionType) {
	fn := p.gc.NewFunction()
	fn.Name = p.gc.InternString(name)
	inner := newCompiler(p.current_, kind, fn)
	p.current_ = inner

	p.beginScope()
	p.consume(token.LeftParen, "Expect '(' after function name.")
	if !p.check(token.RightParen) {
		for {
			p.current_.function.Arity++
			if p.current_.function.Arity > 255 {
				p.error("Can't have more than 255 parameters.")
			}
			p.consume(token.Identifier, "Expect parameter name.")
			paramName := p.previous.Text
			p.declareVariable(paramName)
			p.markInitialized()
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")
	p.consume(token.LeftBrace, "Expect '{' before function body.")
	p.block()

	compiled := p.endCompiler()
	upvalues := inner.upvalues

	p.emitOps(bytecode.OpClosure, p.addConstant(value.Obj(compiled)))
	for _, uv := range upvalues {
		if uv.IsLocal {
			p.emitByte(1)
		} else {
			p.emitByte(0)
		}
		p.emitByte(uv.Index)
	}
}

func (p *parser) classDeclaration() {
	p.consume(token.Identifier, "Expect class name.")
	className := p.previous.Text
	nameConst := p.identifierConstant(className)
	p.declareVariable(className)

	p.emitOps(bytecode.OpClass, nameConst)
	p.defineVariable(className)

	enclosingClass := p.class
	p.class = &ClassCompiler{enclosing: enclosingClass}

	if p.match(token.Less) {
		p.consume(token.Identifier, "Expect superclass name.")
		if p.previous.Text == className {
			p.error("A class can't inherit from itself.")
		}
		p.namedVariable(p.previous.Text, false)

		p.beginScope()
		p.addLocal("super")
		p.markInitialized()

		p.namedVariable(className, false)
		p.emitOp(bytecode.OpInherit)
		p.class.hasSuperclass = true
	}

	p.namedVariable(className, false)
	p.consume(token.LeftBrace, "Expect '{' before class body.")
	for !p.check(token.RightBrace) && !p.check(token.EOF) {
		p.method()
	}
	p.consume(token.RightBrace, "Expect '}' after class body.")
	p.emitOp(bytecode.OpPop)

	if p.class.hasSuperclass {
		p.endScope()
	}
	p.class = enclosingClass
}

func (p *parser) method() {
	p.consume(token.Identifier, "Expect method name.")
	name := p.previous.Text
	nameConst := p.identifierConstant(name)

	kind := TypeMethod
	if name == "init" {
		kind = TypeInitializer
	}
	p.function(name, kind)
	p.emitOps(bytecode.OpMethod, nameConst)
}

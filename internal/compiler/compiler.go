// Package compiler implements the single-pass Pratt compiler: source text
// is lowered directly to bytecode inside nested compiler frames, with no
// intermediate AST. Local resolution, upvalue capture, and class/method
// compilation all happen while parsing.
package compiler

import (
	"loxvm/internal/bytecode"
	"loxvm/internal/diag"
	"loxvm/internal/gc"
	"loxvm/internal/lexer"
	"loxvm/internal/object"
	"loxvm/internal/source"
	"loxvm/internal/token"
)

// FunctionType distinguishes the kind of callable a frame is compiling,
// which changes what `return` and an implicit end-of-body return do.
type FunctionType uint8

const (
	TypeFunction FunctionType = iota
	TypeInitializer
	TypeMethod
	TypeScript
)

const maxLocals = 256
const maxUpvalues = 256

// Local is a resolved stack slot, named for error messages and marked
// uninitialized (Depth == -1) between its declaration and the point its
// initializer finishes evaluating, so `var a = a;` fails to resolve.
type Local struct {
	Name    string
	Depth   int
	Captured bool
}

// Upvalue records where a captured variable lives relative to the
// enclosing frame: a local slot in that frame, or an upvalue already
// captured by it.
type Upvalue struct {
	Index   byte
	IsLocal bool
}

// Compiler is one function body's compilation frame. Frames nest via
// enclosing, mirroring the lexical nesting of function declarations.
type Compiler struct {
	enclosing *Compiler

	function *object.Function
	kind     FunctionType

	locals     []Local
	upvalues   []Upvalue
	scopeDepth int
}

func newCompiler(enclosing *Compiler, kind FunctionType, fn *object.Function) *Compiler {
	c := &Compiler{enclosing: enclosing, function: fn, kind: kind}
	// Slot 0 is reserved for the receiver in methods/initializers and for
	// the callee itself (unused) in plain functions, so every frame starts
	// with one implicit local already declared.
	name := ""
	if kind == TypeMethod || kind == TypeInitializer {
		name = "this"
	}
	c.locals = append(c.locals, Local{Name: name, Depth: 0})
	return c
}

func (c *Compiler) chunk() *bytecode.Chunk { return &c.function.Chunk }

// ClassCompiler tracks the class currently being compiled, chained so
// nested class declarations (a class declared inside a method body) and
// `super` resolution know whether a superclass is in scope.
type ClassCompiler struct {
	enclosing      *ClassCompiler
	hasSuperclass  bool
}

// parser is the whole-compile state: the token stream, diagnostics, the
// collector used to intern constants, and the live chain of Compiler and
// ClassCompiler frames.
type parser struct {
	lx       *lexer.Lexer
	gc       *gc.Collector
	reporter diag.Reporter

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool

	current_ *Compiler
	class    *ClassCompiler
}

// Compile compiles src (already registered in fs as file) into a top-level
// script Function. ok is false if any compile error was reported; the
// returned function is still non-nil in that case (partially built) so
// callers that only care about diagnostics can ignore it.
func Compile(file *source.File, collector *gc.Collector, reporter diag.Reporter) (*object.Function, bool) {
	p := &parser{
		lx:       lexer.New(file),
		gc:       collector,
		reporter: reporter,
	}
	script := collector.NewFunction()
	p.current_ = newCompiler(nil, TypeScript, script)

	collector.PushRoots(p)
	defer collector.PopRoots()

	p.advance()
	for !p.check(token.EOF) {
		p.declaration()
	}
	fn := p.endCompiler()
	return fn, !p.hadError
}

// MarkRoots implements gc.Roots: every Function in the live chain of
// compiler frames (innermost first) is kept reachable for the duration of
// Compile, so a collection triggered mid-compile can't free a function or
// constant that isn't wired into anything yet.
func (p *parser) MarkRoots(c *gc.Collector) {
	for frame := p.current_; frame != nil; frame = frame.enclosing {
		c.MarkObject(frame.function)
	}
}

func (p *parser) endCompiler() *object.Function {
	p.emitReturn()
	fn := p.current_.function
	p.current_ = p.current_.enclosing
	return fn
}

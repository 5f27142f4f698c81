// Package object defines the concrete heap-resident object variants: String,
// Function, Closure, Upvalue, Native, Class, Instance, and BoundMethod. Every
// variant embeds value.Header, which supplies the mark bit and allocation-
// list link the garbage collector walks.
//
// Construction lives in internal/gc, not here: every object must be linked
// into the GC's allocation list at the moment it is created, so "new object"
// and "tracked by the collector" are the same event. This package only
// defines shapes and the (side-effect-free) String/formatting logic attached
// to them.
package object

import (
	"loxvm/internal/bytecode"
	"loxvm/internal/value"
)

// String is an immutable, interned sequence of bytes. At most one String
// object exists per distinct byte sequence (see internal/gc's intern table);
// this is what makes "==" on Lox strings a pointer comparison.
type String struct {
	value.Header
	Chars string
}

// Function is produced by the compiler and never mutated once its compiler
// frame ends (Chunk is frozen at that point).
type Function struct {
	value.Header
	Arity        int
	UpvalueCount int
	Chunk        bytecode.Chunk
	Name         *String // nil for the top-level script function
}

// Upvalue is a runtime handle to a variable captured by a closure. It is
// open while Location points into the VM's value stack, and closed once
// Location is repointed at its own Closed field.
type Upvalue struct {
	value.Header
	Location *value.Value
	Closed   value.Value
	NextOpen *Upvalue // next entry in the VM's open-upvalue list
	Slot     int      // absolute value-stack index Location points at while open
}

// Closure pairs a Function with the live Upvalue bindings it captured. Len
// of Upvalues always equals Function.UpvalueCount once the Closure opcode
// finishes constructing it.
type Closure struct {
	value.Header
	Function *Function
	Upvalues []*Upvalue
}

// NativeFn is the signature every host-provided builtin implements.
type NativeFn func(args []value.Value) value.Value

// Native wraps a host function registered once at VM initialization.
type Native struct {
	value.Header
	Name string
	Fn   NativeFn
}

// Class holds a method table keyed by method name. Methods are inherited by
// bulk copy from a superclass at the Inherit opcode, so a subclass's table
// is self-contained after inheritance (no parent pointer is consulted at
// method-lookup time).
type Class struct {
	value.Header
	Name    *String
	Methods map[string]*Closure
}

// Instance is created by calling a Class value; its field table starts empty.
type Instance struct {
	value.Header
	Class  *Class
	Fields map[string]value.Value
}

// BoundMethod is created transiently when a method is read off an instance
// (via GetProperty) or read through super without a call (via GetSuper); it
// packages the
// receiver together with the method Closure so calling it later still sees
// the right "this".
type BoundMethod struct {
	value.Header
	Receiver value.Value
	Method   *Closure
}

// Display implements value.Displayer.

func (s *String) Display() string { return s.Chars }

func (f *Function) Display() string {
	if f.Name == nil {
		return "<script>"
	}
	return "<fn " + f.Name.Chars + ">"
}

func (c *Closure) Display() string { return c.Function.Display() }

func (n *Native) Display() string { return "<native fn>" }

func (c *Class) Display() string { return c.Name.Chars }

func (i *Instance) Display() string { return i.Class.Name.Chars + " instance" }

func (b *BoundMethod) Display() string { return b.Method.Display() }

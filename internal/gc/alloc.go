package gc

import (
	"loxvm/internal/object"
	"loxvm/internal/value"
)

// InternString returns the canonical *object.String for s, allocating and
// interning it on first sight. Every later request for the same byte
// sequence returns the identical pointer, which is what makes Lox's "=="
// on strings a pointer comparison.
func (c *Collector) InternString(s string) *object.String {
	if existing, ok := c.strings[s]; ok {
		return existing
	}
	str := &object.String{Chars: s}
	str.Kind = value.ObjStringKind
	c.track(str, sizeOf(str))
	c.strings[s] = str
	return str
}

// NewFunction allocates an empty function shell; the compiler fills in
// Arity, UpvalueCount, Chunk, and Name as it compiles the body.
func (c *Collector) NewFunction() *object.Function {
	fn := &object.Function{}
	fn.Kind = value.ObjFunctionKind
	c.track(fn, sizeOf(fn))
	return fn
}

// NewClosure allocates a closure over fn with an upvalue slice sized (but
// not populated) for fn.UpvalueCount; the Closure opcode handler fills each
// slot in by capturing or reusing an open upvalue.
func (c *Collector) NewClosure(fn *object.Function) *object.Closure {
	cl := &object.Closure{
		Function: fn,
		Upvalues: make([]*object.Upvalue, fn.UpvalueCount),
	}
	cl.Kind = value.ObjClosureKind
	c.track(cl, sizeOf(cl))
	return cl
}

// NewUpvalue allocates an open upvalue pointing at the value-stack slot at
// absolute index slotIndex.
func (c *Collector) NewUpvalue(location *value.Value, slotIndex int) *object.Upvalue {
	uv := &object.Upvalue{Location: location, Slot: slotIndex}
	uv.Kind = value.ObjUpvalueKind
	c.track(uv, sizeOf(uv))
	return uv
}

// NewNative registers a host function as a callable Lox value.
func (c *Collector) NewNative(name string, fn object.NativeFn) *object.Native {
	n := &object.Native{Name: name, Fn: fn}
	n.Kind = value.ObjNativeKind
	c.track(n, sizeOf(n))
	return n
}

// NewClass allocates a class with an empty method table.
func (c *Collector) NewClass(name *object.String) *object.Class {
	cls := &object.Class{Name: name, Methods: make(map[string]*object.Closure)}
	cls.Kind = value.ObjClassKind
	c.track(cls, sizeOf(cls))
	return cls
}

// NewInstance allocates an instance of class with an empty field table.
func (c *Collector) NewInstance(class *object.Class) *object.Instance {
	inst := &object.Instance{Class: class, Fields: make(map[string]value.Value)}
	inst.Kind = value.ObjInstanceKind
	c.track(inst, sizeOf(inst))
	return inst
}

// NewBoundMethod pairs a receiver with the method Closure it was read off.
func (c *Collector) NewBoundMethod(receiver value.Value, method *object.Closure) *object.BoundMethod {
	bm := &object.BoundMethod{Receiver: receiver, Method: method}
	bm.Kind = value.ObjBoundMethodKind
	c.track(bm, sizeOf(bm))
	return bm
}

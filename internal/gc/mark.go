package gc

import (
	"loxvm/internal/object"
	"loxvm/internal/value"
)

// Collect runs one full mark-sweep cycle: mark every root, trace the gray
// set to black, sweep anything left white, then grow the threshold off the
// bytes that survived.
func (c *Collector) Collect() {
	c.log("-- gc begin\n")
	before := c.bytesAllocated

	for _, r := range c.rootSources {
		if r != nil {
			r.MarkRoots(c)
		}
	}
	c.traceReferences()
	c.sweep()

	c.nextGC = c.bytesAllocated * heapGrowFactor
	if c.nextGC < initialThreshold {
		c.nextGC = initialThreshold
	}

	c.stats.Collections++
	c.log("-- gc end: collected %d bytes (from %d to %d), next at %d\n",
		before-c.bytesAllocated, before, c.bytesAllocated, c.nextGC)
}

// MarkValue marks v's underlying object, if it holds one. Safe to call with
// nil-Object or non-object values.
func (c *Collector) MarkValue(v value.Value) {
	if v.IsObject() {
		c.MarkObject(v.Obj)
	}
}

// MarkObject marks o and, if this is the first time it's been seen this
// cycle, queues it for blackening. Safe to call with nil.
func (c *Collector) MarkObject(o value.Object) {
	if o == nil || value.Marked(o) {
		return
	}
	value.SetMarked(o, true)
	c.gray = append(c.gray, o)
}

func (c *Collector) traceReferences() {
	for len(c.gray) > 0 {
		o := c.gray[len(c.gray)-1]
		c.gray = c.gray[:len(c.gray)-1]
		c.blacken(o)
	}
}

func (c *Collector) blacken(o value.Object) {
	switch obj := o.(type) {
	case *object.String, *object.Native:
		// no outgoing references
	case *object.Function:
		if obj.Name != nil {
			c.MarkObject(obj.Name)
		}
		for _, constant := range obj.Chunk.Constants {
			c.MarkValue(constant)
		}
	case *object.Closure:
		c.MarkObject(obj.Function)
		for _, uv := range obj.Upvalues {
			c.MarkObject(uv)
		}
	case *object.Upvalue:
		c.MarkValue(obj.Closed)
	case *object.Class:
		c.MarkObject(obj.Name)
		for _, m := range obj.Methods {
			c.MarkObject(m)
		}
	case *object.Instance:
		c.MarkObject(obj.Class)
		for _, v := range obj.Fields {
			c.MarkValue(v)
		}
	case *object.BoundMethod:
		c.MarkValue(obj.Receiver)
		c.MarkObject(obj.Method)
	}
}

func (c *Collector) sweep() {
	var previous value.Object
	obj := c.objects
	for obj != nil {
		if value.Marked(obj) {
			value.SetMarked(obj, false)
			previous = obj
			obj = value.Next(obj)
			continue
		}
		dead := obj
		obj = value.Next(obj)
		if previous != nil {
			value.SetNext(previous, obj)
		} else {
			c.objects = obj
		}
		c.bytesAllocated -= sizeOf(dead)
		if s, ok := dead.(*object.String); ok {
			delete(c.strings, s.Chars)
		}
	}
}

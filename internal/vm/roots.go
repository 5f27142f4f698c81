package vm

import (
	"loxvm/internal/gc"
)

// MarkRoots implements gc.Roots. It marks the value stack, every active
// frame's closure, the open-upvalue list, the globals table, and the
// interned "init" identifier.
func (vm *VM) MarkRoots(c *gc.Collector) {
	for i := 0; i < vm.stackTop; i++ {
		c.MarkValue(vm.stack[i])
	}
	for i := 0; i < vm.frameCount; i++ {
		c.MarkObject(vm.frames[i].closure)
	}
	for uv := vm.openUpvalues; uv != nil; uv = uv.NextOpen {
		c.MarkObject(uv)
	}
	for _, v := range vm.globals {
		c.MarkValue(v)
	}
	if vm.initString != nil {
		c.MarkObject(vm.initString)
	}
}

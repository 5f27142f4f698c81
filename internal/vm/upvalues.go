package vm

import "loxvm/internal/object"

// captureUpvalue returns the open upvalue for the stack slot at absolute
// index slot, reusing an existing one if a closure already captured that
// exact slot. The open list is kept sorted by descending slot index so the
// scan can stop as soon as it passes where a match would be.
func (vm *VM) captureUpvalue(slot int) *object.Upvalue {
	var prev *object.Upvalue
	uv := vm.openUpvalues
	for uv != nil && uv.Slot > slot {
		prev = uv
		uv = uv.NextOpen
	}
	if uv != nil && uv.Slot == slot {
		return uv
	}

	created := vm.gc.NewUpvalue(&vm.stack[slot], slot)
	created.NextOpen = uv
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.NextOpen = created
	}
	return created
}

// closeUpvalues closes (copies into their own field) every open upvalue
// whose slot is at or above the absolute stack index last, then unlinks
// them from the open list. Called both by OP_CLOSE_UPVALUE and when a
// frame returns or a scope ends.
func (vm *VM) closeUpvalues(last int) {
	for vm.openUpvalues != nil && vm.openUpvalues.Slot >= last {
		uv := vm.openUpvalues
		uv.Closed = *uv.Location
		uv.Location = &uv.Closed
		vm.openUpvalues = uv.NextOpen
	}
}

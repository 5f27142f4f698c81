package vm

import (
	"time"

	"loxvm/internal/object"
	"loxvm/internal/value"
)

func (vm *VM) defineNatives() {
	vm.defineNative("clock", clockNative)
	vm.defineNative("str", vm.strNative)
	vm.defineNative("type", vm.typeNative)
}

func (vm *VM) defineNative(name string, fn object.NativeFn) {
	native := vm.gc.NewNative(name, fn)
	vm.globals[name] = value.Obj(native)
}

// clockNative returns seconds since the Unix epoch, the same role clox's
// clock() plays for timing benchmarks.
func clockNative(args []value.Value) value.Value {
	return value.Number(float64(time.Now().UnixNano()) / 1e9)
}

// strNative renders any value the same way `print` would, without the
// trailing newline, so Lox code can build strings out of non-string values.
func (vm *VM) strNative(args []value.Value) value.Value {
	if len(args) != 1 {
		return value.Nil()
	}
	return value.Obj(vm.gc.InternString(args[0].String()))
}

// typeNative returns the Lox-visible type name of its argument: "nil",
// "boolean", "number", "string", "function", "class", "instance", or
// "native function". Names are interned through the same table every
// other Lox string goes through, so `type(1) == "number"` holds.
func (vm *VM) typeNative(args []value.Value) value.Value {
	if len(args) != 1 {
		return value.Nil()
	}
	v := args[0]
	switch {
	case v.IsNil():
		return vm.internedType("nil")
	case v.IsBool():
		return vm.internedType("boolean")
	case v.IsNumber():
		return vm.internedType("number")
	case v.IsObjKind(value.ObjStringKind):
		return vm.internedType("string")
	case v.IsObjKind(value.ObjFunctionKind), v.IsObjKind(value.ObjClosureKind), v.IsObjKind(value.ObjBoundMethodKind):
		return vm.internedType("function")
	case v.IsObjKind(value.ObjNativeKind):
		return vm.internedType("native function")
	case v.IsObjKind(value.ObjClassKind):
		return vm.internedType("class")
	case v.IsObjKind(value.ObjInstanceKind):
		return vm.internedType("instance")
	default:
		return vm.internedType("unknown")
	}
}

func (vm *VM) internedType(name string) value.Value {
	return value.Obj(vm.gc.InternString(name))
}

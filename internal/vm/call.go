package vm

import (
	"loxvm/internal/object"
	"loxvm/internal/value"
)

// callValue dispatches OP_CALL's callee-type switch: a Closure pushes a new
// frame, a Class instantiates (and optionally runs init), a BoundMethod
// rebinds its receiver into the call, and a Native runs inline.
func (vm *VM) callValue(callee value.Value, argc int) Result {
	if callee.IsObject() {
		switch obj := callee.Obj.(type) {
		case *object.Closure:
			return vm.callClosure(obj, argc)
		case *object.BoundMethod:
			vm.stack[vm.stackTop-argc-1] = obj.Receiver
			return vm.callClosure(obj.Method, argc)
		case *object.Class:
			instance := vm.gc.NewInstance(obj)
			vm.stack[vm.stackTop-argc-1] = value.Obj(instance)
			if initializer, ok := obj.Methods[vm.initString.Chars]; ok {
				return vm.callClosure(initializer, argc)
			}
			if argc != 0 {
				return vm.runtimeError("Expected 0 arguments but got %d.", argc)
			}
			return ResultOK
		case *object.Native:
			result := obj.Fn(vm.stack[vm.stackTop-argc : vm.stackTop])
			vm.stackTop -= argc + 1
			vm.push(result)
			return ResultOK
		}
	}
	return vm.runtimeError("Can only call functions and classes.")
}

func (vm *VM) callClosure(closure *object.Closure, argc int) Result {
	if argc != closure.Function.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", closure.Function.Arity, argc)
	}
	if vm.frameCount == maxFrames {
		return vm.runtimeError("Stack overflow.")
	}
	vm.frames[vm.frameCount] = Frame{
		closure: closure,
		ip:      0,
		slots:   vm.stackTop - argc - 1,
	}
	vm.frameCount++
	return ResultOK
}

// getProperty implements GetProperty: a field hit pushes the field value;
// otherwise the name is looked up as a method and bound.
func (vm *VM) getProperty(f *Frame, name *object.String) Result {
	instance, ok := vm.peek(0).Obj.(*object.Instance)
	if !ok {
		return vm.runtimeError("Only instances have properties.")
	}
	if v, ok := instance.Fields[name.Chars]; ok {
		vm.pop()
		vm.push(v)
		return ResultOK
	}
	return vm.bindMethod(vm.peek(0), instance.Class, name)
}

func (vm *VM) setProperty(name *object.String) Result {
	instance, ok := vm.peek(1).Obj.(*object.Instance)
	if !ok {
		return vm.runtimeError("Only instances have fields.")
	}
	instance.Fields[name.Chars] = vm.peek(0)
	v := vm.pop()
	vm.pop()
	vm.push(v)
	return ResultOK
}

// bindMethod looks up name on class's method table and, on a hit, pushes a
// BoundMethod pairing it with receiver, replacing whatever sat at the top
// of the stack (the instance or "this" that was used to resolve it).
func (vm *VM) bindMethod(receiver value.Value, class *object.Class, name *object.String) Result {
	method, ok := class.Methods[name.Chars]
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.Chars)
	}
	bound := vm.gc.NewBoundMethod(receiver, method)
	vm.pop()
	vm.push(value.Obj(bound))
	return ResultOK
}

// invoke is OP_INVOKE's fast path: if the receiver has a field by this
// name, it's called as an ordinary value (a field can shadow a method);
// otherwise the method is called directly without allocating a
// BoundMethod.
func (vm *VM) invoke(name *object.String, argc int) Result {
	receiver := vm.peek(argc)
	instance, ok := receiver.Obj.(*object.Instance)
	if !ok {
		return vm.runtimeError("Only instances have methods.")
	}
	if v, ok := instance.Fields[name.Chars]; ok {
		vm.stack[vm.stackTop-argc-1] = v
		return vm.callValue(v, argc)
	}
	return vm.invokeFromClass(instance.Class, name, argc)
}

func (vm *VM) invokeFromClass(class *object.Class, name *object.String, argc int) Result {
	method, ok := class.Methods[name.Chars]
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.Chars)
	}
	return vm.callClosure(method, argc)
}

func (vm *VM) defineMethod(name *object.String) {
	method := vm.pop().Obj.(*object.Closure)
	class := vm.peek(0).Obj.(*object.Class)
	class.Methods[name.Chars] = method
}

func (vm *VM) binaryNumeric(apply func(a, b float64) value.Value) Result {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop()
	a := vm.pop()
	vm.push(apply(a.Number, b.Number))
	return ResultOK
}

func (vm *VM) add() Result {
	bVal, aVal := vm.peek(0), vm.peek(1)
	switch {
	case aVal.IsNumber() && bVal.IsNumber():
		b := vm.pop()
		a := vm.pop()
		vm.push(value.Number(a.Number + b.Number))
		return ResultOK
	case aVal.IsObjKind(value.ObjStringKind) && bVal.IsObjKind(value.ObjStringKind):
		b := vm.pop()
		a := vm.pop()
		concatenated := a.Obj.(*object.String).Chars + b.Obj.(*object.String).Chars
		vm.push(value.Obj(vm.gc.InternString(concatenated)))
		return ResultOK
	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
}

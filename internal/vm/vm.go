// Package vm implements the stack-based bytecode interpreter: the
// dispatch loop, call frames, the value stack, open upvalues, and the
// globals table. It owns the compiler and the garbage collector for the
// lifetime of one interpreting session (one REPL, or one `run` of a file).
package vm

import (
	"fmt"
	"io"
	"os"

	"loxvm/internal/bytecode"
	"loxvm/internal/compiler"
	"loxvm/internal/diag"
	"loxvm/internal/gc"
	"loxvm/internal/object"
	"loxvm/internal/source"
	"loxvm/internal/value"
)

const maxFrames = 64
const maxStack = maxFrames * 256

// Result mirrors the spec's exit-code contract at the interpret boundary.
type Result int

const (
	ResultOK Result = iota
	ResultCompileError
	ResultRuntimeError
)

// Frame is one active call's window into the value stack and its
// instruction cursor into the closure's chunk.
type Frame struct {
	closure *object.Closure
	ip      int
	slots   int // index into vm.stack of this frame's slot 0
}

// VM is a single interpreting session. Not safe for concurrent use: the
// spec's concurrency model is strictly single-threaded within one VM.
type VM struct {
	stack    [maxStack]value.Value
	stackTop int

	frames    [maxFrames]Frame
	frameCount int

	globals map[string]value.Value

	openUpvalues *object.Upvalue

	gc         *gc.Collector
	initString *object.String

	Stdout io.Writer
	Stderr io.Writer

	// MaxDiagnostics caps how many compile diagnostics a single Interpret
	// call collects before further errors are dropped silently. Defaults
	// to 64; the CLI overrides it from diagnostics.max in a config file.
	MaxDiagnostics int

	// Trace disassembles each instruction to Stderr immediately before it
	// executes, for `loxvm run --trace`. Debug-only; never consulted by
	// the dispatch logic itself.
	Trace bool
}

// New constructs a VM with its own Collector, registers it as the
// Collector's root source, and wires up the standard natives.
func New() *VM {
	vm := &VM{
		globals:        make(map[string]value.Value),
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		MaxDiagnostics: 64,
	}
	vm.gc = gc.New()
	vm.gc.SetRoots(vm)
	vm.initString = vm.gc.InternString("init")
	vm.defineNatives()
	return vm
}

// GC exposes the VM's collector, e.g. for the CLI's --gc-stats flag.
func (vm *VM) GC() *gc.Collector { return vm.gc }

// Interpret compiles and runs the file identified by id within fs to
// completion.
func (vm *VM) Interpret(fs *source.FileSet, id source.FileID) Result {
	bag := diag.NewBag(vm.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	fn, ok := compiler.Compile(fs.Get(id), vm.gc, reporter)
	if !ok {
		bag.Sort()
		diag.RenderCompileErrors(vm.Stderr, fs, bag.Items())
		return ResultCompileError
	}

	closure := vm.gc.NewClosure(fn)
	vm.push(value.Obj(closure))
	vm.callClosure(closure, 0)

	return vm.run()
}

func (vm *VM) push(v value.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

func (vm *VM) resetStack() {
	vm.stackTop = 0
	vm.frameCount = 0
	vm.openUpvalues = nil
}

func (vm *VM) currentFrame() *Frame { return &vm.frames[vm.frameCount-1] }

func (vm *VM) readByte(f *Frame) byte {
	b := f.closure.Function.Chunk.Code[f.ip]
	f.ip++
	return b
}

func (vm *VM) readShort(f *Frame) int {
	hi := vm.readByte(f)
	lo := vm.readByte(f)
	return int(hi)<<8 | int(lo)
}

func (vm *VM) readConstant(f *Frame) value.Value {
	idx := vm.readByte(f)
	return f.closure.Function.Chunk.Constants[idx]
}

func (vm *VM) readStringConstant(f *Frame) *object.String {
	return vm.readConstant(f).Obj.(*object.String)
}

// run is the dispatch loop. It returns as soon as the outermost frame
// returns (ResultOK) or a runtime error unwinds the whole frame stack
// (ResultRuntimeError).
func (vm *VM) run() Result {
	f := vm.currentFrame()
	for {
		if vm.Trace {
			bytecode.DisassembleInstruction(vm.Stderr, &f.closure.Function.Chunk, f.ip)
		}
		op := bytecode.OpCode(vm.readByte(f))
		switch op {
		case bytecode.OpConstant:
			vm.push(vm.readConstant(f))
		case bytecode.OpNil:
			vm.push(value.Nil())
		case bytecode.OpTrue:
			vm.push(value.Bool(true))
		case bytecode.OpFalse:
			vm.push(value.Bool(false))
		case bytecode.OpPop:
			vm.pop()
		case bytecode.OpGetLocal:
			slot := vm.readByte(f)
			vm.push(vm.stack[f.slots+int(slot)])
		case bytecode.OpSetLocal:
			slot := vm.readByte(f)
			vm.stack[f.slots+int(slot)] = vm.peek(0)
		case bytecode.OpGetGlobal:
			name := vm.readStringConstant(f)
			v, ok := vm.globals[name.Chars]
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.push(v)
		case bytecode.OpDefineGlobal:
			name := vm.readStringConstant(f)
			vm.globals[name.Chars] = vm.pop()
		case bytecode.OpSetGlobal:
			name := vm.readStringConstant(f)
			if _, ok := vm.globals[name.Chars]; !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.globals[name.Chars] = vm.peek(0)
		case bytecode.OpGetUpvalue:
			idx := vm.readByte(f)
			vm.push(*f.closure.Upvalues[idx].Location)
		case bytecode.OpSetUpvalue:
			idx := vm.readByte(f)
			*f.closure.Upvalues[idx].Location = vm.peek(0)
		case bytecode.OpGetProperty:
			if res := vm.getProperty(f, vm.readStringConstant(f)); res != ResultOK {
				return res
			}
		case bytecode.OpSetProperty:
			if res := vm.setProperty(vm.readStringConstant(f)); res != ResultOK {
				return res
			}
		case bytecode.OpGetSuper:
			name := vm.readStringConstant(f)
			superclass := vm.pop().Obj.(*object.Class)
			receiver := vm.pop()
			if res := vm.bindMethod(receiver, superclass, name); res != ResultOK {
				return res
			}
		case bytecode.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case bytecode.OpGreater:
			if res := vm.binaryNumeric(func(a, b float64) value.Value { return value.Bool(a > b) }); res != ResultOK {
				return res
			}
		case bytecode.OpLess:
			if res := vm.binaryNumeric(func(a, b float64) value.Value { return value.Bool(a < b) }); res != ResultOK {
				return res
			}
		case bytecode.OpAdd:
			if res := vm.add(); res != ResultOK {
				return res
			}
		case bytecode.OpSubtract:
			if res := vm.binaryNumeric(func(a, b float64) value.Value { return value.Number(a - b) }); res != ResultOK {
				return res
			}
		case bytecode.OpMultiply:
			if res := vm.binaryNumeric(func(a, b float64) value.Value { return value.Number(a * b) }); res != ResultOK {
				return res
			}
		case bytecode.OpDivide:
			if res := vm.binaryNumeric(func(a, b float64) value.Value { return value.Number(a / b) }); res != ResultOK {
				return res
			}
		case bytecode.OpNot:
			vm.push(value.Bool(vm.pop().Falsy()))
		case bytecode.OpNegate:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.push(value.Number(-vm.pop().Number))
		case bytecode.OpPrint:
			fmt.Fprintln(vm.Stdout, vm.pop().String())
		case bytecode.OpJump:
			offset := vm.readShort(f)
			f.ip += offset
		case bytecode.OpJumpIfFalse:
			offset := vm.readShort(f)
			if vm.peek(0).Falsy() {
				f.ip += offset
			}
		case bytecode.OpLoop:
			offset := vm.readShort(f)
			f.ip -= offset
		case bytecode.OpCall:
			argc := int(vm.readByte(f))
			if res := vm.callValue(vm.peek(argc), argc); res != ResultOK {
				return res
			}
			f = vm.currentFrame()
		case bytecode.OpInvoke:
			name := vm.readStringConstant(f)
			argc := int(vm.readByte(f))
			if res := vm.invoke(name, argc); res != ResultOK {
				return res
			}
			f = vm.currentFrame()
		case bytecode.OpSuperInvoke:
			name := vm.readStringConstant(f)
			argc := int(vm.readByte(f))
			superclass := vm.pop().Obj.(*object.Class)
			if res := vm.invokeFromClass(superclass, name, argc); res != ResultOK {
				return res
			}
			f = vm.currentFrame()
		case bytecode.OpClosure:
			fn := vm.readConstant(f).Obj.(*object.Function)
			closure := vm.gc.NewClosure(fn)
			vm.push(value.Obj(closure))
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := vm.readByte(f)
				idx := int(vm.readByte(f))
				if isLocal == 1 {
					closure.Upvalues[i] = vm.captureUpvalue(f.slots + idx)
				} else {
					closure.Upvalues[i] = f.closure.Upvalues[idx]
				}
			}
		case bytecode.OpCloseUpvalue:
			vm.closeUpvalues(vm.stackTop - 1)
			vm.pop()
		case bytecode.OpReturn:
			result := vm.pop()
			vm.closeUpvalues(f.slots)
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop()
				return ResultOK
			}
			vm.stackTop = f.slots
			vm.push(result)
			f = vm.currentFrame()
		case bytecode.OpClass:
			name := vm.readStringConstant(f)
			vm.push(value.Obj(vm.gc.NewClass(name)))
		case bytecode.OpInherit:
			superVal := vm.peek(1)
			superclass, ok := superVal.Obj.(*object.Class)
			if !ok {
				return vm.runtimeError("Superclass must be a class.")
			}
			subclass := vm.peek(0).Obj.(*object.Class)
			for k, v := range superclass.Methods {
				subclass.Methods[k] = v
			}
			vm.pop()
		case bytecode.OpMethod:
			name := vm.readStringConstant(f)
			vm.defineMethod(name)
		default:
			return vm.runtimeError("Unknown opcode %d.", byte(op))
		}
	}
}

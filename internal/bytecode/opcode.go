package bytecode

// OpCode is one instruction in a Chunk's flat byte stream. Operand widths
// are fixed per opcode (documented alongside each constant) and are decoded
// by the VM dispatch loop and the disassembler identically.
type OpCode byte

const (
	OpConstant     OpCode = iota // 1 byte: constant pool index
	OpNil                        // push nil
	OpTrue                       // push true
	OpFalse                      // push false
	OpPop                        // discard top
	OpGetLocal                   // 1 byte: frame-relative slot
	OpSetLocal                   // 1 byte: frame-relative slot
	OpGetGlobal                  // 1 byte: name constant index
	OpDefineGlobal               // 1 byte: name constant index
	OpSetGlobal                  // 1 byte: name constant index
	OpGetUpvalue                 // 1 byte: upvalue index
	OpSetUpvalue                 // 1 byte: upvalue index
	OpGetProperty                // 1 byte: name constant index
	OpSetProperty                // 1 byte: name constant index
	OpGetSuper                   // 1 byte: name constant index
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpPrint
	OpJump         // 2 bytes: forward offset, big-endian
	OpJumpIfFalse  // 2 bytes: forward offset, big-endian
	OpLoop         // 2 bytes: backward offset, big-endian
	OpCall         // 1 byte: argument count
	OpInvoke       // 1 byte name idx + 1 byte argc
	OpSuperInvoke  // 1 byte name idx + 1 byte argc
	OpClosure      // 1 byte function const idx, then 2*N bytes of (isLocal, index) pairs
	OpCloseUpvalue // close and pop the top stack slot
	OpReturn
	OpClass    // 1 byte: name constant index
	OpInherit  // stack: [superclass, subclass] -> [superclass]; copies methods
	OpMethod   // 1 byte: name constant index
)

// Mnemonic returns the disassembler-facing name of op.
func (op OpCode) Mnemonic() string {
	switch op {
	case OpConstant:
		return "OP_CONSTANT"
	case OpNil:
		return "OP_NIL"
	case OpTrue:
		return "OP_TRUE"
	case OpFalse:
		return "OP_FALSE"
	case OpPop:
		return "OP_POP"
	case OpGetLocal:
		return "OP_GET_LOCAL"
	case OpSetLocal:
		return "OP_SET_LOCAL"
	case OpGetGlobal:
		return "OP_GET_GLOBAL"
	case OpDefineGlobal:
		return "OP_DEFINE_GLOBAL"
	case OpSetGlobal:
		return "OP_SET_GLOBAL"
	case OpGetUpvalue:
		return "OP_GET_UPVALUE"
	case OpSetUpvalue:
		return "OP_SET_UPVALUE"
	case OpGetProperty:
		return "OP_GET_PROPERTY"
	case OpSetProperty:
		return "OP_SET_PROPERTY"
	case OpGetSuper:
		return "OP_GET_SUPER"
	case OpEqual:
		return "OP_EQUAL"
	case OpGreater:
		return "OP_GREATER"
	case OpLess:
		return "OP_LESS"
	case OpAdd:
		return "OP_ADD"
	case OpSubtract:
		return "OP_SUBTRACT"
	case OpMultiply:
		return "OP_MULTIPLY"
	case OpDivide:
		return "OP_DIVIDE"
	case OpNot:
		return "OP_NOT"
	case OpNegate:
		return "OP_NEGATE"
	case OpPrint:
		return "OP_PRINT"
	case OpJump:
		return "OP_JUMP"
	case OpJumpIfFalse:
		return "OP_JUMP_IF_FALSE"
	case OpLoop:
		return "OP_LOOP"
	case OpCall:
		return "OP_CALL"
	case OpInvoke:
		return "OP_INVOKE"
	case OpSuperInvoke:
		return "OP_SUPER_INVOKE"
	case OpClosure:
		return "OP_CLOSURE"
	case OpCloseUpvalue:
		return "OP_CLOSE_UPVALUE"
	case OpReturn:
		return "OP_RETURN"
	case OpClass:
		return "OP_CLASS"
	case OpInherit:
		return "OP_INHERIT"
	case OpMethod:
		return "OP_METHOD"
	default:
		return "OP_UNKNOWN"
	}
}

package compiler

import (
	"fortio.org/safecast"

	"loxvm/internal/bytecode"
	"loxvm/internal/value"
)

func (p *parser) emitByte(b byte) {
	p.current_.chunk().Write(b, int(p.previous.Line))
}

func (p *parser) emitOp(op bytecode.OpCode) {
	p.current_.chunk().WriteOp(op, int(p.previous.Line))
}

func (p *parser) emitOps(op bytecode.OpCode, operand byte) {
	p.emitOp(op)
	p.emitByte(operand)
}

func (p *parser) emitConstant(v value.Value) {
	p.emitOps(bytecode.OpConstant, p.addConstant(v))
}

// addConstant appends v to the current chunk's constant pool and returns
// its index, reporting "Too many constants in one chunk." and returning 0
// if the 256-entry pool (or the int->byte conversion) overflows.
func (p *parser) addConstant(v value.Value) byte {
	idx := p.current_.chunk().AddConstant(v)
	if idx < 0 {
		p.error("Too many constants in one chunk.")
		return 0
	}
	b, err := safecast.Conv[byte](idx)
	if err != nil {
		p.error("Too many constants in one chunk.")
		return 0
	}
	return b
}

// emitJump emits a two-byte placeholder operand after op and returns its
// offset, to be patched once the jump target is known.
func (p *parser) emitJump(op bytecode.OpCode) int {
	p.emitOp(op)
	p.emitByte(0xff)
	p.emitByte(0xff)
	return len(p.current_.chunk().Code) - 2
}

func (p *parser) patchJump(offset int) {
	jump := len(p.current_.chunk().Code) - offset - 2
	if jump > 0xffff {
		p.error("Too much code to jump over.")
		return
	}
	p.current_.chunk().Code[offset] = byte(jump >> 8)
	p.current_.chunk().Code[offset+1] = byte(jump & 0xff)
}

func (p *parser) emitLoop(loopStart int) {
	p.emitOp(bytecode.OpLoop)
	offset := len(p.current_.chunk().Code) - loopStart + 2
	if offset > 0xffff {
		p.error("Loop body too large.")
		return
	}
	p.emitByte(byte(offset >> 8))
	p.emitByte(byte(offset & 0xff))
}

func (p *parser) emitReturn() {
	if p.current_.kind == TypeInitializer {
		p.emitOps(bytecode.OpGetLocal, 0)
	} else {
		p.emitOp(bytecode.OpNil)
	}
	p.emitOp(bytecode.OpReturn)
}

// identifierConstant interns name and returns its constant-pool index as a
// Value-holding constant, used for every opcode that names a global,
// property, or method by identifier rather than by stack slot.
func (p *parser) identifierConstant(name string) byte {
	str := p.gc.InternString(name)
	return p.addConstant(value.Obj(str))
}

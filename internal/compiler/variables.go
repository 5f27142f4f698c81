package compiler

import (
	"loxvm/internal/bytecode"
	"loxvm/internal/token"
)

// namedVariable compiles a read, or (if canAssign and '=' follows) a write,
// of the variable bound to name, resolving it as a local, an upvalue, or a
// global in that order.
func (p *parser) namedVariable(name string, canAssign bool) {
	if slot, ok := p.resolveLocal(p.current_, name); ok {
		p.accessVariable(canAssign, bytecode.OpGetLocal, bytecode.OpSetLocal, slot)
		return
	}
	if slot, ok := resolveUpvalue(p, p.current_, name); ok {
		p.accessVariable(canAssign, bytecode.OpGetUpvalue, bytecode.OpSetUpvalue, slot)
		return
	}
	global := p.identifierConstant(name)
	p.accessVariable(canAssign, bytecode.OpGetGlobal, bytecode.OpSetGlobal, global)
}

func (p *parser) accessVariable(canAssign bool, getOp, setOp bytecode.OpCode, slot byte) {
	if canAssign && p.match(token.Equal) {
		p.expression()
		p.emitOps(setOp, slot)
	} else {
		p.emitOps(getOp, slot)
	}
}

// resolveLocal searches c's locals from innermost to outermost scope,
// returning false if name isn't declared as a local in this frame. A local
// whose Depth is still -1 is in the middle of its own initializer, which
// the spec forbids reading.
func (p *parser) resolveLocal(c *Compiler, name string) (byte, bool) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].Name == name {
			if c.locals[i].Depth == -1 {
				p.error("Can't read local variable in its own initializer.")
			}
			return byte(i), true
		}
	}
	return 0, false
}

// resolveUpvalue walks the enclosing frame chain: if name is a local (or
// already an upvalue) there, it's captured into c's upvalue list and the
// capture is threaded through every frame in between.
func resolveUpvalue(p *parser, c *Compiler, name string) (byte, bool) {
	if c.enclosing == nil {
		return 0, false
	}
	if slot, ok := p.resolveLocal(c.enclosing, name); ok {
		c.enclosing.locals[slot].Captured = true
		return addUpvalue(p, c, slot, true)
	}
	if slot, ok := resolveUpvalue(p, c.enclosing, name); ok {
		return addUpvalue(p, c, slot, false)
	}
	return 0, false
}

func addUpvalue(p *parser, c *Compiler, index byte, isLocal bool) (byte, bool) {
	for i, uv := range c.upvalues {
		if uv.Index == index && uv.IsLocal == isLocal {
			return byte(i), true
		}
	}
	if len(c.upvalues) >= maxUpvalues {
		p.error("Too many closure variables in function.")
		return 0, false
	}
	c.upvalues = append(c.upvalues, Upvalue{Index: index, IsLocal: isLocal})
	c.function.UpvalueCount = len(c.upvalues)
	return byte(len(c.upvalues) - 1), true
}

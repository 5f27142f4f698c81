package compiler

import "loxvm/internal/bytecode"

func (p *parser) beginScope() { p.current_.scopeDepth++ }

// endScope pops every local declared in the scope being left, emitting an
// explicit close for any of them a closure captured.
func (p *parser) endScope() {
	c := p.current_
	c.scopeDepth--
	for len(c.locals) > 0 && c.locals[len(c.locals)-1].Depth > c.scopeDepth {
		last := c.locals[len(c.locals)-1]
		if last.Captured {
			p.emitOp(bytecode.OpCloseUpvalue)
		} else {
			p.emitOp(bytecode.OpPop)
		}
		c.locals = c.locals[:len(c.locals)-1]
	}
}

// declareVariable registers name as a local in the current scope (a no-op
// at global scope, where variables live in the VM's globals table instead),
// rejecting a redeclaration within the same block.
func (p *parser) declareVariable(name string) {
	if p.current_.scopeDepth == 0 {
		return
	}
	c := p.current_
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].Depth != -1 && c.locals[i].Depth < c.scopeDepth {
			break
		}
		if c.locals[i].Name == name {
			p.error("Already a variable with this name in this scope.")
		}
	}
	p.addLocal(name)
}

func (p *parser) addLocal(name string) {
	if len(p.current_.locals) >= maxLocals {
		p.error("Too many local variables in function.")
		return
	}
	p.current_.locals = append(p.current_.locals, Local{Name: name, Depth: -1})
}

// markInitialized makes the most recently declared local resolvable,
// called once its initializer (or, for functions/params, its binding)
// has been fully compiled.
func (p *parser) markInitialized() {
	if p.current_.scopeDepth == 0 {
		return
	}
	p.current_.locals[len(p.current_.locals)-1].Depth = p.current_.scopeDepth
}

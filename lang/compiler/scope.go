package compiler

import (
	"github.com/loxenlang/loxen/lang/chunk"
	"github.com/loxenlang/loxen/lang/token"
)

// identifierConstant adds name's text to the constant pool and returns its
// index, for use as the operand of a GET/SET/DEFINE_GLOBAL instruction.
func (c *Compiler) identifierConstant(name string) byte {
	return c.makeConstant(c.heap.InternString(name))
}

func identifiersEqual(a, b string) bool { return a == b }

// resolveLocal searches the current function's locals from innermost to
// outermost scope and returns the stack slot for name, or -1 if name is not
// a local (the caller should then treat it as global).
func (c *Compiler) resolveLocal(fs *funcState, name string) int {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if identifiersEqual(fs.locals[i].name, name) {
			if fs.locals[i].depth == -1 {
				c.error("Can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

func (c *Compiler) addLocal(name string) {
	if len(c.fs.locals) >= maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.fs.locals = append(c.fs.locals, local{name: name, depth: -1})
}

// declareVariable registers previous (an identifier token just consumed)
// as a new local in the current scope. At global scope it is a no-op:
// globals are resolved dynamically by name, not by slot.
func (c *Compiler) declareVariable(name string) {
	if c.fs.scopeDepth == 0 {
		return
	}
	for i := len(c.fs.locals) - 1; i >= 0; i-- {
		l := c.fs.locals[i]
		if l.depth != -1 && l.depth < c.fs.scopeDepth {
			break
		}
		if identifiersEqual(l.name, name) {
			c.error("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

// parseVariable consumes an identifier, declares it, and returns the
// constant-pool index to use for a subsequent DEFINE_GLOBAL (meaningless,
// but harmless, for locals).
func (c *Compiler) parseVariable(errMsg string) byte {
	c.consume(token.IDENT, errMsg)
	name := c.previous.Lexeme
	c.declareVariable(name)
	if c.fs.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(name)
}

func (c *Compiler) markInitialized() {
	if c.fs.scopeDepth == 0 {
		return
	}
	c.fs.locals[len(c.fs.locals)-1].depth = c.fs.scopeDepth
}

func (c *Compiler) defineVariable(global byte) {
	if c.fs.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitBytes(chunk.DEFINE_GLOBAL, global)
}

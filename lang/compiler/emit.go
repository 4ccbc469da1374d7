package compiler

import (
	"github.com/loxenlang/loxen/lang/chunk"
	"github.com/loxenlang/loxen/lang/disasm"
	"github.com/loxenlang/loxen/lang/value"
)

const maxJump = 1<<16 - 1 // u16 offset, per JUMP/JUMP_IF_FALSE/LOOP encoding

func (c *Compiler) emitByte(b byte) {
	c.chunk().Write(b, c.previous.Line)
}

func (c *Compiler) emitOp(op chunk.Opcode) {
	c.emitByte(byte(op))
}

func (c *Compiler) emitBytes(op chunk.Opcode, b byte) {
	c.emitOp(op)
	c.emitByte(b)
}

// emitJump emits a jump instruction with a placeholder 16-bit operand and
// returns the offset of the first placeholder byte, for later patchJump.
func (c *Compiler) emitJump(op chunk.Opcode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return c.chunk().Len() - 2
}

// patchJump backfills the operand emitted by emitJump with the distance
// from just after the operand to the current end of the chunk.
func (c *Compiler) patchJump(offset int) {
	jump := c.chunk().Len() - offset - 2
	if jump > maxJump {
		c.error("Too much code to jump over.")
	}
	c.chunk().Patch(offset, byte((jump>>8)&0xff))
	c.chunk().Patch(offset+1, byte(jump&0xff))
}

// emitLoop emits a LOOP instruction that jumps backward to loopStart.
func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(chunk.LOOP)
	offset := c.chunk().Len() - loopStart + 2
	if offset > maxJump {
		c.error("Loop body too large.")
	}
	c.emitByte(byte((offset >> 8) & 0xff))
	c.emitByte(byte(offset & 0xff))
}

func (c *Compiler) emitReturn() {
	c.emitOp(chunk.NIL)
	c.emitOp(chunk.RETURN)
}

// makeConstant appends v to the current chunk's constant pool (without
// reusing an existing equal entry) and returns its index, reporting an
// error if the pool is already full.
func (c *Compiler) makeConstant(v value.Value) byte {
	idx, ok := c.chunk().AddConstant(v)
	if !ok {
		c.error("Too many constants in one chunk.")
		return 0
	}
	return idx
}

func (c *Compiler) emitConstant(v value.Value) {
	c.emitBytes(chunk.CONSTANT, c.makeConstant(v))
}

// beginFunction pushes a new funcState for the function about to be
// compiled (kind==typeScript for the implicit top-level script), tracking
// the freshly allocated ObjFunction with the heap so it is freed with the
// rest of the object graph.
func (c *Compiler) beginFunction(kind funcType, name string) {
	fn := value.NewObjFunction()
	if name != "" {
		fn.Name = c.heap.InternString(name)
	}
	c.heap.Track(fn)

	fs := &funcState{
		enclosing: c.fs,
		fn:        fn,
		kind:      kind,
	}
	// Slot zero is reserved for the VM's own bookkeeping (the called
	// function itself), mirroring how locals are numbered from the call
	// frame's base.
	fs.locals = append(fs.locals, local{name: "", depth: 0})
	c.fs = fs
}

// endFunction closes out the current funcState, emitting an implicit
// return, and pops back to the enclosing function (nil at top level).
func (c *Compiler) endFunction() *value.ObjFunction {
	c.emitReturn()
	fn := c.fs.fn

	if c.debugTrace && c.errw != nil {
		name := "<script>"
		if fn.Name != nil {
			name = fn.Name.Chars
		}
		disasm.Chunk(c.errw, fn.Chunk, name)
	}

	c.fs = c.fs.enclosing
	return fn
}

func (c *Compiler) beginScope() { c.fs.scopeDepth++ }

func (c *Compiler) endScope() {
	c.fs.scopeDepth--
	locals := c.fs.locals
	for len(locals) > 0 && locals[len(locals)-1].depth > c.fs.scopeDepth {
		c.emitOp(chunk.POP)
		locals = locals[:len(locals)-1]
	}
	c.fs.locals = locals
}

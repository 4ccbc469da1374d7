// Package disasm renders a compiled chunk back to readable text: one line
// per instruction, with a repeated-line marker so long runs of code on a
// single source line don't repeat it. It exists purely for diagnostics
// (the LOXEN_DEBUG_TRACE hook and the disassembler tests) and has no effect
// on execution.
package disasm

import (
	"fmt"
	"io"

	"github.com/loxenlang/loxen/lang/chunk"
)

// Chunk writes a full disassembly of c to w, headed by name.
func Chunk(w io.Writer, c *chunk.Chunk, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < c.Len(); {
		offset = Instruction(w, c, offset)
	}
}

// Instruction disassembles a single instruction at offset and returns the
// offset of the next instruction.
func Instruction(w io.Writer, c *chunk.Chunk, offset int) int {
	fmt.Fprintf(w, "%06x ", offset)
	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", c.Lines[offset])
	}

	op := chunk.Opcode(c.Code[offset])
	switch op {
	case chunk.CONSTANT, chunk.DEFINE_GLOBAL, chunk.GET_GLOBAL, chunk.SET_GLOBAL:
		return constantInstruction(w, op, c, offset)
	case chunk.GET_LOCAL, chunk.SET_LOCAL, chunk.CALL:
		return byteInstruction(w, op, c, offset)
	case chunk.JUMP, chunk.JUMP_IF_FALSE:
		return jumpInstruction(w, op, 1, c, offset)
	case chunk.LOOP:
		return jumpInstruction(w, op, -1, c, offset)
	default:
		fmt.Fprintln(w, op)
		return offset + 1
	}
}

func constantInstruction(w io.Writer, op chunk.Opcode, c *chunk.Chunk, offset int) int {
	idx := c.Code[offset+1]
	fmt.Fprintf(w, "%-18s %4d '%s'\n", op, idx, c.Constants[idx])
	return offset + 2
}

func byteInstruction(w io.Writer, op chunk.Opcode, c *chunk.Chunk, offset int) int {
	slot := c.Code[offset+1]
	fmt.Fprintf(w, "%-18s %4d\n", op, slot)
	return offset + 2
}

func jumpInstruction(w io.Writer, op chunk.Opcode, sign int, c *chunk.Chunk, offset int) int {
	jump := int(c.Code[offset+1])<<8 | int(c.Code[offset+2])
	target := offset + 3 + sign*jump
	fmt.Fprintf(w, "%-18s %4d -> %d\n", op, offset, target)
	return offset + 3
}

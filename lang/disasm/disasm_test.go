package disasm_test

import (
	"bytes"
	"testing"

	"github.com/loxenlang/loxen/lang/chunk"
	"github.com/loxenlang/loxen/lang/disasm"
	"github.com/loxenlang/loxen/lang/value"
	"github.com/stretchr/testify/assert"
)

func TestChunkDisassemblesConstantAndReturn(t *testing.T) {
	c := chunk.New()
	idx, ok := c.AddConstant(value.Number(1))
	assert.True(t, ok)
	c.Write(byte(chunk.CONSTANT), 1)
	c.Write(idx, 1)
	c.Write(byte(chunk.RETURN), 1)

	var buf bytes.Buffer
	disasm.Chunk(&buf, c, "test")

	out := buf.String()
	assert.Contains(t, out, "== test ==")
	assert.Contains(t, out, "OP_CONSTANT")
	assert.Contains(t, out, "OP_RETURN")
}

func TestChunkCoalescesRepeatedLines(t *testing.T) {
	c := chunk.New()
	c.Write(byte(chunk.NIL), 5)
	c.Write(byte(chunk.POP), 5)

	var buf bytes.Buffer
	disasm.Chunk(&buf, c, "coalesce")

	lines := bytes.Split(buf.Bytes(), []byte("\n"))
	// second instruction line should use the "|" marker, not repeat "5"
	assert.Contains(t, string(lines[2]), "|")
}

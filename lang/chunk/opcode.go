// Package chunk defines the bytecode instruction set and the compiled unit
// (code + constant pool + line table) that the compiler emits into and the
// VM executes directly.
package chunk

// Opcode identifies a single bytecode instruction. Operands, when present,
// are encoded as the bytes immediately following the opcode.
type Opcode uint8

//nolint:revive
const (
	CONSTANT      Opcode = iota // 1: const-idx
	NIL                         // -
	TRUE                        // -
	FALSE                       // -
	POP                         // -
	DEFINE_GLOBAL               // 1: name-const-idx
	GET_GLOBAL                  // 1: name-const-idx
	SET_GLOBAL                  // 1: name-const-idx
	GET_LOCAL                   // 1: slot
	SET_LOCAL                   // 1: slot
	EQUAL                       // -
	GREATER                     // -
	LESS                        // -
	ADD                         // -
	SUB                         // -
	MUL                         // -
	DIV                         // -
	MOD                         // -
	NOT                         // -
	NEGATE                      // -
	PRINT                       // -
	JUMP                        // 2: big-endian u16 offset
	JUMP_IF_FALSE               // 2: big-endian u16 offset
	LOOP                        // 2: big-endian u16 offset
	CALL                        // 1: argc
	RETURN                      // -
)

func (op Opcode) String() string { return opcodeNames[op] }

var opcodeNames = [...]string{
	CONSTANT:      "OP_CONSTANT",
	NIL:           "OP_NIL",
	TRUE:          "OP_TRUE",
	FALSE:         "OP_FALSE",
	POP:           "OP_POP",
	DEFINE_GLOBAL: "OP_DEFINE_GLOBAL",
	GET_GLOBAL:    "OP_GET_GLOBAL",
	SET_GLOBAL:    "OP_SET_GLOBAL",
	GET_LOCAL:     "OP_GET_LOCAL",
	SET_LOCAL:     "OP_SET_LOCAL",
	EQUAL:         "OP_EQUAL",
	GREATER:       "OP_GREATER",
	LESS:          "OP_LESS",
	ADD:           "OP_ADD",
	SUB:           "OP_SUBTRACT",
	MUL:           "OP_MULTIPLY",
	DIV:           "OP_DIVIDE",
	MOD:           "OP_MODULO",
	NOT:           "OP_NOT",
	NEGATE:        "OP_NEGATE",
	PRINT:         "OP_PRINT",
	JUMP:          "OP_JUMP",
	JUMP_IF_FALSE: "OP_JUMP_IF_FALSE",
	LOOP:          "OP_LOOP",
	CALL:          "OP_CALL",
	RETURN:        "OP_RETURN",
}

// Package vm implements the stack-based virtual machine: the fetch-decode-
// execute dispatch loop, call frames, the value stack, globals, and the
// string intern pool. It is the sole consumer of lang/compiler's Heap
// interface and lang/chunk's bytecode encoding.
package vm

import (
	"fmt"
	"io"
	"math"

	"github.com/loxenlang/loxen/internal/config"
	"github.com/loxenlang/loxen/lang/chunk"
	"github.com/loxenlang/loxen/lang/compiler"
	"github.com/loxenlang/loxen/lang/value"
)

// CallFrame is a single activation record: the function being executed, its
// instruction pointer, and the base offset into the VM's flat value stack
// at which this invocation's slots begin.
type CallFrame struct {
	fn    *value.ObjFunction
	ip    int
	slots int
}

// VM owns every piece of process-wide interpreter state. It is
// single-threaded and non-reentrant: Interpret must not be called
// concurrently or recursively on the same VM.
type VM struct {
	cfg config.Config

	frames     []CallFrame
	frameCount int

	stack    []value.Value
	stackTop int

	globals *value.Table
	strings *value.Table
	objects value.Object

	stderr io.Writer // active only during the current Interpret call
}

// New constructs a VM with frame and stack capacities from cfg, and empty
// globals/intern tables. The VM is ready for repeated Interpret calls.
func New(cfg config.Config) *VM {
	return &VM{
		cfg:     cfg,
		frames:  make([]CallFrame, cfg.FramesMax),
		stack:   make([]value.Value, cfg.StackSize()),
		globals: value.NewTable(),
		strings: value.NewTable(),
	}
}

// Free drops the VM's reference to its allocation list. Go's garbage
// collector reclaims the graph from there; this mirrors the reference
// implementation's explicit single-pass teardown without requiring one.
func (vm *VM) Free() {
	vm.objects = nil
	vm.globals = value.NewTable()
	vm.strings = value.NewTable()
}

// Globals exposes the global table for the REPL's :globals introspection
// command. It must not be mutated by callers.
func (vm *VM) Globals() *value.Table { return vm.globals }

// Track implements compiler.Heap: every object the compiler allocates
// (interned strings, compiled functions) is threaded onto the VM's
// allocation list so it shares the VM's lifetime.
func (vm *VM) Track(o value.Object) {
	o.SetNext(vm.objects)
	vm.objects = o
}

// InternString implements compiler.Heap and backs the VM's own string
// concatenation: it returns the canonical ObjString for s, allocating and
// tracking one only if an equal string isn't already interned.
func (vm *VM) InternString(s string) *value.ObjString {
	hash := value.FNV1a(s)
	if found := vm.strings.FindString(s, hash); found != nil {
		return found
	}
	str := value.NewObjString(s)
	vm.Track(str)
	vm.strings.Set(str, value.Nil{})
	return str
}

// Interpret compiles and runs src as a top-level script. Globals and
// interned strings persist across calls on the same VM; the value stack
// and call-frame stack do not.
func (vm *VM) Interpret(src []byte, stdout, stderr io.Writer) InterpResult {
	fn, ok := compiler.Compile(src, vm, stderr, vm.cfg.DebugTrace)
	if !ok {
		return InterpretCompileError
	}
	return vm.Run(fn, stdout, stderr)
}

// Run executes an already-compiled top-level script Function. This is the
// other half of Interpret, split out so a caller that memoizes compilation
// (the REPL's one-liner cache) can skip straight to execution for a
// previously seen snippet.
func (vm *VM) Run(fn *value.ObjFunction, stdout, stderr io.Writer) InterpResult {
	vm.stderr = stderr
	defer func() { vm.stderr = nil }()

	vm.resetStack()
	vm.push(fn)
	vm.call(fn, 0)

	return vm.run(stdout)
}

func (vm *VM) resetStack() {
	vm.stackTop = 0
	vm.frameCount = 0
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

func readU16(frame *CallFrame) int {
	hi := frame.fn.Chunk.Code[frame.ip]
	lo := frame.fn.Chunk.Code[frame.ip+1]
	frame.ip += 2
	return int(hi)<<8 | int(lo)
}

// run executes the dispatch loop starting from the VM's current top frame.
func (vm *VM) run(stdout io.Writer) InterpResult {
	frame := &vm.frames[vm.frameCount-1]

	for {
		instr := frame.fn.Chunk.Code[frame.ip]
		frame.ip++

		switch chunk.Opcode(instr) {
		case chunk.CONSTANT:
			idx := frame.fn.Chunk.Code[frame.ip]
			frame.ip++
			vm.push(frame.fn.Chunk.Constants[idx])

		case chunk.NIL:
			vm.push(value.Nil{})
		case chunk.TRUE:
			vm.push(value.Bool(true))
		case chunk.FALSE:
			vm.push(value.Bool(false))
		case chunk.POP:
			vm.pop()

		case chunk.GET_LOCAL:
			slot := frame.fn.Chunk.Code[frame.ip]
			frame.ip++
			vm.push(vm.stack[frame.slots+int(slot)])
		case chunk.SET_LOCAL:
			slot := frame.fn.Chunk.Code[frame.ip]
			frame.ip++
			vm.stack[frame.slots+int(slot)] = vm.peek(0)

		case chunk.GET_GLOBAL:
			name := vm.readGlobalName(frame)
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.push(v)
		case chunk.DEFINE_GLOBAL:
			name := vm.readGlobalName(frame)
			vm.globals.Set(name, vm.peek(0))
			vm.pop()
		case chunk.SET_GLOBAL:
			name := vm.readGlobalName(frame)
			if vm.globals.Set(name, vm.peek(0)) {
				vm.globals.Delete(name) // SET must not create
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}

		case chunk.EQUAL:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case chunk.GREATER:
			if res, ok := vm.numericBinary(func(a, b float64) value.Value { return value.Bool(a > b) }); ok {
				vm.push(res)
			} else {
				return vm.runtimeError("Operands must be numbers.")
			}
		case chunk.LESS:
			if res, ok := vm.numericBinary(func(a, b float64) value.Value { return value.Bool(a < b) }); ok {
				vm.push(res)
			} else {
				return vm.runtimeError("Operands must be numbers.")
			}

		case chunk.ADD:
			if res, ok, err := vm.add(); ok {
				vm.push(res)
			} else {
				return vm.runtimeError("%s", err)
			}
		case chunk.SUB:
			if res, ok := vm.numericBinary(func(a, b float64) value.Value { return value.Number(a - b) }); ok {
				vm.push(res)
			} else {
				return vm.runtimeError("Operands must be numbers.")
			}
		case chunk.MUL:
			if res, ok := vm.numericBinary(func(a, b float64) value.Value { return value.Number(a * b) }); ok {
				vm.push(res)
			} else {
				return vm.runtimeError("Operands must be numbers.")
			}
		case chunk.DIV:
			if res, ok := vm.numericBinary(func(a, b float64) value.Value { return value.Number(a / b) }); ok {
				vm.push(res)
			} else {
				return vm.runtimeError("Operands must be numbers.")
			}
		case chunk.MOD:
			if res, ok := vm.numericBinary(func(a, b float64) value.Value { return value.Number(mod(a, b)) }); ok {
				vm.push(res)
			} else {
				return vm.runtimeError("Operands must be numbers.")
			}

		case chunk.NOT:
			vm.push(value.Bool(!value.IsTruthy(vm.pop())))
		case chunk.NEGATE:
			n, ok := vm.peek(0).(value.Number)
			if !ok {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.pop()
			vm.push(-n)

		case chunk.PRINT:
			fmt.Fprintln(stdout, vm.pop().String())

		case chunk.JUMP:
			offset := readU16(frame)
			frame.ip += offset
		case chunk.JUMP_IF_FALSE:
			offset := readU16(frame)
			if !value.IsTruthy(vm.peek(0)) {
				frame.ip += offset
			}
		case chunk.LOOP:
			offset := readU16(frame)
			frame.ip -= offset

		case chunk.CALL:
			argCount := frame.fn.Chunk.Code[frame.ip]
			frame.ip++
			if !vm.callValue(vm.peek(int(argCount)), argCount) {
				return InterpretRuntimeError
			}
			frame = &vm.frames[vm.frameCount-1]

		case chunk.RETURN:
			result := vm.pop()
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop()
				return InterpretOK
			}
			vm.stackTop = frame.slots
			vm.push(result)
			frame = &vm.frames[vm.frameCount-1]
		}
	}
}

func (vm *VM) readGlobalName(frame *CallFrame) *value.ObjString {
	idx := frame.fn.Chunk.Code[frame.ip]
	frame.ip++
	return frame.fn.Chunk.Constants[idx].(*value.ObjString)
}

func (vm *VM) numericBinary(f func(a, b float64) value.Value) (value.Value, bool) {
	b, bOK := vm.peek(0).(value.Number)
	a, aOK := vm.peek(1).(value.Number)
	if !aOK || !bOK {
		return nil, false
	}
	vm.pop()
	vm.pop()
	return f(float64(a), float64(b)), true
}

func (vm *VM) add() (value.Value, bool, string) {
	bs, bIsStr := vm.peek(0).(*value.ObjString)
	as, aIsStr := vm.peek(1).(*value.ObjString)
	if aIsStr && bIsStr {
		vm.pop()
		vm.pop()
		return vm.InternString(as.Chars + bs.Chars), true, ""
	}

	bn, bIsNum := vm.peek(0).(value.Number)
	an, aIsNum := vm.peek(1).(value.Number)
	if aIsNum && bIsNum {
		vm.pop()
		vm.pop()
		return an + bn, true, ""
	}

	return nil, false, "Operands must be numbers or strings."
}

func mod(a, b float64) float64 { return math.Mod(a, b) }

// callValue dispatches a CALL instruction against the callee value, which
// must be a Function; anything else is a runtime error.
func (vm *VM) callValue(callee value.Value, argCount byte) bool {
	fn, ok := callee.(*value.ObjFunction)
	if !ok {
		vm.runtimeError("Can only call functions and classes.")
		return false
	}
	return vm.call(fn, argCount)
}

func (vm *VM) call(fn *value.ObjFunction, argCount byte) bool {
	if int(argCount) != int(fn.Arity) {
		vm.runtimeError("Expected %d arguments but got %d.", fn.Arity, argCount)
		return false
	}
	if vm.frameCount == len(vm.frames) {
		vm.runtimeError("Stack overflow.")
		return false
	}

	frame := &vm.frames[vm.frameCount]
	frame.fn = fn
	frame.ip = 0
	frame.slots = vm.stackTop - int(argCount) - 1
	vm.frameCount++
	return true
}

// runtimeError reports msg to stderr, then unwinds the active frame stack
// printing a "[line] in <name>" trace newest-first, and resets the VM's
// stack and frames for the next Interpret call.
func (vm *VM) runtimeError(format string, args ...any) InterpResult {
	fmt.Fprintf(vm.stderr, format+"\n", args...)

	for i := vm.frameCount - 1; i >= 0; i-- {
		f := &vm.frames[i]
		line := f.fn.Chunk.Lines[f.ip-1]
		name := "script"
		if f.fn.Name != nil {
			name = f.fn.Name.Chars + "()"
		}
		fmt.Fprintf(vm.stderr, "[line %d] in %s\n", line, name)
	}

	vm.resetStack()
	return InterpretRuntimeError
}

package vm_test

import (
	"bytes"
	"testing"

	"github.com/loxenlang/loxen/internal/config"
	"github.com/loxenlang/loxen/lang/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVM(t *testing.T) *vm.VM {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return vm.New(cfg)
}

func run(t *testing.T, src string) (stdout, stderr string, result vm.InterpResult) {
	t.Helper()
	var out, errs bytes.Buffer
	result = newVM(t).Interpret([]byte(src), &out, &errs)
	return out.String(), errs.String(), result
}

func TestInterpretArithmeticPrecedence(t *testing.T) {
	out, errs, res := run(t, "print 1 + 2 * 3;")
	require.Equal(t, vm.InterpretOK, res, errs)
	assert.Equal(t, "7\n", out)
}

func TestInterpretStringConcat(t *testing.T) {
	out, errs, res := run(t, `var a = "st"; var b = "ring"; print a + b;`)
	require.Equal(t, vm.InterpretOK, res, errs)
	assert.Equal(t, "string\n", out)
}

func TestInterpretWhileLoop(t *testing.T) {
	out, errs, res := run(t, `var i = 0; while (i < 3) { print i; i = i + 1; }`)
	require.Equal(t, vm.InterpretOK, res, errs)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpretForLoop(t *testing.T) {
	out, errs, res := run(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.Equal(t, vm.InterpretOK, res, errs)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpretIfElse(t *testing.T) {
	out, errs, res := run(t, `if (false) print "x"; else print "y";`)
	require.Equal(t, vm.InterpretOK, res, errs)
	assert.Equal(t, "y\n", out)
}

func TestInterpretNilNotEqualFalse(t *testing.T) {
	out, errs, res := run(t, `print nil == false;`)
	require.Equal(t, vm.InterpretOK, res, errs)
	assert.Equal(t, "false\n", out)
}

func TestInterpretModulo(t *testing.T) {
	out, errs, res := run(t, `print 7 % 2;`)
	require.Equal(t, vm.InterpretOK, res, errs)
	assert.Equal(t, "1\n", out)
}

func TestInterpretFunctionCallAndReturn(t *testing.T) {
	out, errs, res := run(t, `
		func add(a, b) { return a + b; }
		print add(2, 3);
	`)
	require.Equal(t, vm.InterpretOK, res, errs)
	assert.Equal(t, "5\n", out)
}

func TestInterpretUndefinedGlobalRead(t *testing.T) {
	_, errs, res := run(t, `print a;`)
	assert.Equal(t, vm.InterpretRuntimeError, res)
	assert.Contains(t, errs, "Undefined variable 'a'.")
}

func TestInterpretUndefinedGlobalAssignDoesNotCreate(t *testing.T) {
	v := newVM(t)
	var out, errs bytes.Buffer
	res := v.Interpret([]byte(`a = 1;`), &out, &errs)
	assert.Equal(t, vm.InterpretRuntimeError, res)
	assert.Contains(t, errs, "Undefined variable 'a'.")
	assert.Empty(t, v.Globals().Keys(), "a failed assignment must not create the global")
}

func TestInterpretTypeMismatchOnAdd(t *testing.T) {
	_, errs, res := run(t, `1 + "a";`)
	assert.Equal(t, vm.InterpretRuntimeError, res)
	assert.Contains(t, errs, "Operands must be numbers or strings.")
}

func TestInterpretCallArityMismatch(t *testing.T) {
	_, errs, res := run(t, `
		func f(a) { return a; }
		f(1, 2);
	`)
	assert.Equal(t, vm.InterpretRuntimeError, res)
	assert.Contains(t, errs, "Expected 1 arguments but got 2.")
}

func TestInterpretCallOfNonCallable(t *testing.T) {
	_, errs, res := run(t, `var x = 1; x();`)
	assert.Equal(t, vm.InterpretRuntimeError, res)
	assert.Contains(t, errs, "Can only call functions and classes.")
}

func TestInterpretGlobalsPersistAcrossCalls(t *testing.T) {
	v := newVM(t)
	var out, errs bytes.Buffer
	res := v.Interpret([]byte(`var a = 1;`), &out, &errs)
	require.Equal(t, vm.InterpretOK, res, errs.String())

	out.Reset()
	res = v.Interpret([]byte(`print a;`), &out, &errs)
	require.Equal(t, vm.InterpretOK, res, errs.String())
	assert.Equal(t, "1\n", out.String())
}

func TestInterpretStringInterningIdentity(t *testing.T) {
	v := newVM(t)
	a := v.InternString("hello")
	b := v.InternString("hello")
	assert.Same(t, a, b)
}

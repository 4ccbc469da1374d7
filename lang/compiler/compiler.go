// Package compiler implements a single-pass Pratt parser that emits
// bytecode directly into a value.ObjFunction's Chunk, with no intermediate
// AST. It tracks lexical scope and local-variable slot assignment as it
// goes, and owns jump-patching for if/while/for/and/or.
package compiler

import (
	"fmt"
	"io"

	"github.com/loxenlang/loxen/lang/chunk"
	"github.com/loxenlang/loxen/lang/scanner"
	"github.com/loxenlang/loxen/lang/token"
	"github.com/loxenlang/loxen/lang/value"
)

const maxLocals = 256 // UINT8_COUNT: local slots are addressed by one byte

// Heap is the allocation surface the compiler needs from its host VM:
// string interning (so identical literals and identifiers share one
// ObjString) and tracking of every object the compiler allocates, so the
// VM's object list can free the whole graph at teardown.
type Heap interface {
	InternString(s string) *value.ObjString
	Track(value.Object)
}

// funcType distinguishes the implicit top-level script from a real
// function declaration; a return statement is a compile error in the
// script.
type funcType uint8

const (
	typeFunction funcType = iota
	typeScript
)

// local is a compile-time record of a declared local variable. Depth -1
// means "declared but its initializer has not finished compiling yet".
type local struct {
	name  string
	depth int
}

// funcState is the per-function-being-compiled compiler frame. A stack of
// these (linked via enclosing) mirrors the call nesting of function
// declarations in the source.
type funcState struct {
	enclosing  *funcState
	fn         *value.ObjFunction
	kind       funcType
	locals     []local
	scopeDepth int
}

// Compiler holds all mutable state for a single compilation: the token
// stream position and the stack of in-progress functions.
type Compiler struct {
	scanner *scanner.Scanner
	heap    Heap
	errw    io.Writer

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool

	fs *funcState

	debugTrace bool
}

// Compile compiles src as a top-level script and returns the resulting
// ObjFunction (name == nil) and whether compilation succeeded. On failure
// the partially-built Function is still returned for inspection but must
// not be executed; the caller should discard it.
func Compile(src []byte, heap Heap, errw io.Writer, debugTrace bool) (*value.ObjFunction, bool) {
	c := &Compiler{
		scanner:    scanner.New(src),
		heap:       heap,
		errw:       errw,
		debugTrace: debugTrace,
	}
	c.beginFunction(typeScript, "")

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}

	fn := c.endFunction()
	return fn, !c.hadError
}

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.Next()
		if c.current.Kind != token.ILLEGAL {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(k token.Kind) bool { return c.current.Kind == k }

func (c *Compiler) match(k token.Kind) bool {
	if !c.check(k) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(k token.Kind, msg string) {
	if c.current.Kind == k {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

func (c *Compiler) chunk() *chunk.Chunk { return c.fs.fn.Chunk }

func (c *Compiler) errorAtCurrent(msg string) { c.errorAt(c.current, msg) }
func (c *Compiler) error(msg string)          { c.errorAt(c.previous, msg) }

func (c *Compiler) errorAt(tok token.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	if c.errw == nil {
		return
	}
	fmt.Fprintf(c.errw, "[line %d] Error", tok.Line)
	switch {
	case tok.Kind == token.EOF:
		fmt.Fprint(c.errw, " at end")
	case tok.Kind == token.ILLEGAL:
		// scanner-originated error: no location suffix
	default:
		fmt.Fprintf(c.errw, " at '%s'", tok.Lexeme)
	}
	fmt.Fprintf(c.errw, ": %s\n", msg)
}

// synchronize discards tokens until it reaches a likely statement boundary,
// so a single compile pass can report more than one error.
func (c *Compiler) synchronize() {
	c.panicMode = false

	for c.current.Kind != token.EOF {
		if c.previous.Kind == token.SEMICOLON {
			return
		}
		switch c.current.Kind {
		case token.CLASS, token.FUNC, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}

// Package value implements the runtime value model: the tagged primitives,
// the heap object hierarchy (interned strings, functions), and the
// open-addressed hash table used for both globals and string interning.
package value

import (
	"strconv"

	"github.com/loxenlang/loxen/lang/chunk"
)

// Value is the type every runtime value satisfies: Nil, Bool, Number, or an
// Object (*ObjString, *ObjFunction). It is a type alias for chunk.Value so
// that Chunk.Constants and value.Value are interchangeable without either
// package importing the other's concrete types.
type Value = chunk.Value

// Nil is the singleton nil value.
type Nil struct{}

func (Nil) String() string { return "nil" }
func (Nil) Truthy() bool   { return false }

// Bool is a boolean value.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Truthy() bool { return bool(b) }

// Number is a double-precision float value.
type Number float64

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }
func (n Number) Truthy() bool   { return true }

// IsTruthy reports whether v is truthy: every value is truthy except Nil
// and Bool(false).
func IsTruthy(v Value) bool { return v.Truthy() }

// Equal reports whether a and b are structurally equal. Values of
// different tags are never equal. Object equality is identity, which is
// sufficient for strings because every ObjString is interned.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case *ObjString:
		bv, ok := b.(*ObjString)
		return ok && av == bv
	case *ObjFunction:
		bv, ok := b.(*ObjFunction)
		return ok && av == bv
	default:
		return false
	}
}

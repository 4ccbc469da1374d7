package value

import "github.com/loxenlang/loxen/lang/chunk"

// ObjFunction is a compiled function: its arity, its Chunk, and its name
// (nil for the implicit top-level script function). Functions are
// first-class values.
type ObjFunction struct {
	Header
	Arity uint8
	Chunk *chunk.Chunk
	Name  *ObjString // nil denotes the top-level script
}

// NewObjFunction returns a function with a freshly allocated, empty Chunk.
func NewObjFunction() *ObjFunction {
	return &ObjFunction{Chunk: chunk.New()}
}

func (f *ObjFunction) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return "<fn " + f.Name.Chars + ">"
}
func (f *ObjFunction) Truthy() bool { return true }
func (f *ObjFunction) Type() string { return "function" }

package value

// Object is implemented by every heap-allocated value kind (*ObjString,
// *ObjFunction). Every Object is threaded onto the VM's intrusive
// allocation list via Next/SetNext so a single traversal at teardown can
// release the whole object graph.
type Object interface {
	Value
	Type() string
	Next() Object
	SetNext(Object)
}

// Header gives an Object its place in the VM's allocation list. Embed it in
// every concrete Object type.
type Header struct {
	next Object
}

func (h *Header) Next() Object      { return h.next }
func (h *Header) SetNext(o Object)  { h.next = o }

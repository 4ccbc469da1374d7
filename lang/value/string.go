package value

// ObjString is an immutable, interned byte sequence. Two ObjStrings with
// equal contents are always the same heap entity once interned through a
// Table's FindString/intern protocol (see vm.InternString), so identity
// comparison is sufficient for string equality.
type ObjString struct {
	Header
	Chars string
	Hash  uint32
}

// NewObjString allocates an ObjString wrapping s, computing its hash. It
// does not intern s; callers that need interning go through the VM's
// intern table.
func NewObjString(s string) *ObjString {
	return &ObjString{Chars: s, Hash: FNV1a(s)}
}

func (s *ObjString) String() string { return s.Chars }
func (s *ObjString) Truthy() bool   { return true }
func (s *ObjString) Type() string   { return "string" }

// FNV1a computes the 32-bit FNV-1a hash of s, updating every byte (the
// correct algorithm: hash ^= key[i]; hash *= 16777619 for each i).
func FNV1a(s string) uint32 {
	const offsetBasis uint32 = 2166136261
	const prime uint32 = 16777619

	h := offsetBasis
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime
	}
	return h
}

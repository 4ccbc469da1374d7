package value

import "golang.org/x/exp/slices"

const tableMaxLoad = 0.75

type entry struct {
	key   *ObjString
	value Value
}

// Table is an open-addressed hash map keyed by ObjString identity, used by
// the VM for both the globals table and the string intern pool. A bucket
// with a nil key and nil value is empty; a nil key with a Bool(true) value
// is a tombstone left behind by Delete, which keeps the probe sequence for
// later entries intact.
type Table struct {
	count   int
	entries []entry
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{}
}

// Get returns the value associated with key, or (nil, false) if absent.
func (t *Table) Get(key *ObjString) (Value, bool) {
	if t.count == 0 {
		return nil, false
	}
	e := findEntry(t.entries, key)
	if e.key == nil {
		return nil, false
	}
	return e.value, true
}

// Set associates key with v, growing the table first if this insertion
// would push the load factor past 0.75. It reports whether key was not
// already present (a tombstone counts as "not present" but does not
// increment count on reuse).
func (t *Table) Set(key *ObjString, v Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*tableMaxLoad {
		t.adjustCapacity(growCapacity(len(t.entries)))
	}

	e := findEntry(t.entries, key)
	isNewKey := e.key == nil
	if isNewKey && e.value == nil {
		t.count++
	}
	e.key = key
	e.value = v
	return isNewKey
}

// Delete removes key, leaving a tombstone in its place, and reports
// whether key was present.
func (t *Table) Delete(key *ObjString) bool {
	if t.count == 0 {
		return false
	}
	e := findEntry(t.entries, key)
	if e.key == nil {
		return false
	}
	e.key = nil
	e.value = Bool(true)
	return true
}

// FindString looks up an interned string by content rather than by
// identity. It is the core of the VM's string interning protocol: before
// allocating a new ObjString for a literal or concatenation result, the VM
// checks whether an equal string already exists.
func (t *Table) FindString(s string, hash uint32) *ObjString {
	if t.count == 0 {
		return nil
	}
	idx := hash % uint32(len(t.entries))
	for {
		e := &t.entries[idx]
		if e.key == nil {
			if e.value == nil {
				return nil
			}
		} else if e.key.Hash == hash && e.key.Chars == s {
			return e.key
		}
		idx = (idx + 1) % uint32(len(t.entries))
	}
}

// Keys returns the table's logical key set, sorted, regardless of
// insertion order or tombstone history.
func (t *Table) Keys() []string {
	keys := make([]string, 0, t.count)
	for i := range t.entries {
		if t.entries[i].key != nil {
			keys = append(keys, t.entries[i].key.Chars)
		}
	}
	slices.Sort(keys)
	return keys
}

// Count returns the number of live (non-tombstone, non-empty) entries.
func (t *Table) Count() int {
	n := 0
	for i := range t.entries {
		if t.entries[i].key != nil {
			n++
		}
	}
	return n
}

// GetByName looks up a value by its key's content rather than by an
// ObjString identity the caller may not hold, combining FindString and Get.
// Used by the REPL's :globals command, which only has plain strings.
func (t *Table) GetByName(name string) (Value, bool) {
	key := t.FindString(name, FNV1a(name))
	if key == nil {
		return nil, false
	}
	return t.Get(key)
}

func findEntry(entries []entry, key *ObjString) *entry {
	idx := key.Hash % uint32(len(entries))
	var tombstone *entry
	for {
		e := &entries[idx]
		switch {
		case e.key == nil && e.value == nil:
			if tombstone != nil {
				return tombstone
			}
			return e
		case e.key == nil: // tombstone
			if tombstone == nil {
				tombstone = e
			}
		case e.key == key:
			return e
		}
		idx = (idx + 1) % uint32(len(entries))
	}
}

func (t *Table) adjustCapacity(capacity int) {
	entries := make([]entry, capacity)
	t.count = 0
	for i := range t.entries {
		old := &t.entries[i]
		if old.key == nil {
			continue
		}
		dest := findEntry(entries, old.key)
		dest.key = old.key
		dest.value = old.value
		t.count++
	}
	t.entries = entries
}

func growCapacity(capacity int) int {
	if capacity < 8 {
		return 8
	}
	return capacity * 2
}

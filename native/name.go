package native

import "sync"

// Name is an interned identifier. NameCreate returns the same pointer for
// the same string for the life of the process; duplicate and destroy are
// no-ops in the vendor runtime, so pointer identity doubles as equality.
type Name struct {
	s string
}

var nameTable = struct {
	sync.Mutex
	m map[string]*Name
}{m: map[string]*Name{}}

// NameCreate interns name and returns its handle.
func NameCreate(s string) *Name {
	nameTable.Lock()
	defer nameTable.Unlock()
	if n, ok := nameTable.m[s]; ok {
		return n
	}
	n := &Name{s: s}
	nameTable.m[s] = n
	return n
}

// NameFindName returns the handle for name if it has already been interned,
// nil otherwise.
func NameFindName(s string) *Name {
	nameTable.Lock()
	defer nameTable.Unlock()
	return nameTable.m[s]
}

func NameString(n *Name) string { return n.s }

func NameLength(n *Name) int { return len(n.s) }

func NameEqualsStr(n *Name, s string) bool { return n.s == s }

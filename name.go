package mdx

import "github.com/quantfold/mdx/native"

// Name is an interned identifier. Comparing two Names is a pointer
// comparison, so looking elements up by Name is faster than by string when
// the same identifier is used repeatedly. Names are never freed; the
// process-wide table only grows.
//
// The zero Name is invalid; construct with NewName or FindName.
type Name struct {
	ptr *native.Name
}

// NewName interns s, creating the table entry if needed.
func NewName(s string) Name {
	return Name{ptr: native.NameCreate(s)}
}

// FindName returns the interned Name for s only if it already exists.
func FindName(s string) (Name, bool) {
	ptr := native.NameFindName(s)
	if ptr == nil {
		return Name{}, false
	}
	return Name{ptr: ptr}, true
}

func (n Name) String() string {
	if n.ptr == nil {
		return ""
	}
	return native.NameString(n.ptr)
}

func (n Name) Len() int {
	if n.ptr == nil {
		return 0
	}
	return native.NameLength(n.ptr)
}

// EqualString compares against a raw string without interning it.
func (n Name) EqualString(s string) bool {
	if n.ptr == nil {
		return false
	}
	return native.NameEqualsStr(n.ptr, s)
}

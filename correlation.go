package mdx

import (
	"fmt"

	"github.com/quantfold/mdx/native"
)

// CorrelationValue is the payload of a CorrelationID. Exactly one variant
// applies per id; the zero CorrelationID is the unset variant.
type correlationKind int32

const (
	correlationUnset correlationKind = iota
	correlationInt
	correlationPointer
	correlationAutogen
)

// CorrelationID ties asynchronous responses back to the operation that
// produced them. Ids are value types: two ids with the same variant and
// payload are equal and hash alike, so they work as map keys.
type CorrelationID struct {
	kind    correlationKind
	value   uint64
	ptr     any
	classID uint16
}

// NewCorrelationID makes an id carrying a caller-chosen integer.
func NewCorrelationID(value uint64) CorrelationID {
	return CorrelationID{kind: correlationInt, value: value}
}

// NewCorrelationIDPointer makes an id carrying an arbitrary reference. The
// reference is compared by identity, not by contents.
func NewCorrelationIDPointer(ptr any) CorrelationID {
	return CorrelationID{kind: correlationPointer, ptr: ptr}
}

// WithClassID tags the id with an application class for coarse routing.
func (c CorrelationID) WithClassID(classID uint16) CorrelationID {
	c.classID = classID
	return c
}

func (c CorrelationID) ClassID() uint16 { return c.classID }

// IsUnset reports whether c is the zero id.
func (c CorrelationID) IsUnset() bool { return c.kind == correlationUnset }

// Value returns the integer payload of an integer or autogenerated id.
func (c CorrelationID) Value() (uint64, bool) {
	if c.kind != correlationInt && c.kind != correlationAutogen {
		return 0, false
	}
	return c.value, true
}

// Pointer returns the reference payload of a pointer id.
func (c CorrelationID) Pointer() (any, bool) {
	if c.kind != correlationPointer {
		return nil, false
	}
	return c.ptr, true
}

func (c CorrelationID) String() string {
	switch c.kind {
	case correlationInt:
		return fmt.Sprintf("CorrelationID(%d)", c.value)
	case correlationPointer:
		return fmt.Sprintf("CorrelationID(ptr %p)", c.ptr)
	case correlationAutogen:
		return fmt.Sprintf("CorrelationID(auto %d)", c.value)
	default:
		return "CorrelationID(unset)"
	}
}

func (c CorrelationID) nativeValue() native.CorrelationID {
	return native.CorrelationID{
		ValueType: int32(c.kind),
		Value:     c.value,
		ClassID:   c.classID,
		Ptr:       c.ptr,
	}
}

func fromNativeCorrelationID(raw native.CorrelationID) CorrelationID {
	return CorrelationID{
		kind:    correlationKind(raw.ValueType),
		value:   raw.Value,
		ptr:     raw.Ptr,
		classID: raw.ClassID,
	}
}

package native

// CorrelationID value types. The tag decides which payload field is live;
// two ids with different tags never compare equal.
const (
	CorrelationTypeUnset   int32 = 0
	CorrelationTypeInt     int32 = 1
	CorrelationTypePointer int32 = 2
	CorrelationTypeAutogen int32 = 3
)

// CorrelationID is the wire form of a correlation id. Ptr must hold a
// comparable value so ids remain usable as map keys.
type CorrelationID struct {
	ValueType int32
	Value     uint64
	ClassID   uint16
	Ptr       any
}

// Equal compares tag first, then the tag-specific payload.
func (c CorrelationID) Equal(o CorrelationID) bool {
	if c.ValueType != o.ValueType {
		return false
	}
	switch c.ValueType {
	case CorrelationTypeUnset:
		return true
	case CorrelationTypeInt, CorrelationTypeAutogen:
		return c.Value == o.Value && c.ClassID == o.ClassID
	case CorrelationTypePointer:
		return c.Ptr == o.Ptr
	}
	return false
}

package native

import (
	"fmt"
	"math"
	"strconv"
)

// Data type tags carried by every element. The tag decides which accessor
// functions are legal on the element's value slots.
const (
	DatatypeBool          int32 = 1
	DatatypeChar          int32 = 2
	DatatypeByte          int32 = 3
	DatatypeInt32         int32 = 4
	DatatypeInt64         int32 = 5
	DatatypeFloat32       int32 = 6
	DatatypeFloat64       int32 = 7
	DatatypeString        int32 = 8
	DatatypeBytearray     int32 = 9
	DatatypeDate          int32 = 10
	DatatypeTime          int32 = 11
	DatatypeDecimal       int32 = 12
	DatatypeDatetime      int32 = 13
	DatatypeEnumeration   int32 = 14
	DatatypeSequence      int32 = 15
	DatatypeChoice        int32 = 16
	DatatypeCorrelationID int32 = 17
)

// ElementIndexEnd is the append sentinel accepted by the set-value and
// set-element functions.
const ElementIndexEnd = int(^uint(0) >> 1)

// value is one slot of an element. Scalar slots hold one of the Go types
// matched by the conversion matrix; slots of a complex array hold *Element.
type value struct {
	null bool
	v    any
}

// Element is a node of the dynamically-typed data tree. The tree is owned
// by the message or request that allocated it; element handles are borrowed
// views and carry no lifetime of their own.
type Element struct {
	name       *Name
	datatype   int32
	isArray    bool
	arrayEntry bool
	null       bool
	values     []value
	children   []*Element
}

func newElement(name *Name, datatype int32, isArray bool) *Element {
	return &Element{name: name, datatype: datatype, isArray: isArray, null: true}
}

func ElementName(e *Element) *Name { return e.name }

func ElementDatatype(e *Element) int32 { return e.datatype }

func ElementIsArray(e *Element) bool { return e.isArray }

func ElementIsComplexType(e *Element) bool {
	if e.datatype != DatatypeSequence && e.datatype != DatatypeChoice {
		return false
	}
	return !e.isArray
}

func ElementIsNull(e *Element) bool { return e.null }

// ElementIsNullValue reports the null-ness of the slot at index. The return
// is 0 or 1, or an error code when index is out of range.
func ElementIsNullValue(e *Element, index int) int32 {
	if ElementIsComplexType(e) {
		if index >= len(e.children) {
			return ErrorIndexOutOfRange
		}
		if e.children[index].null {
			return 1
		}
		return 0
	}
	if index >= len(e.values) {
		return ErrorIndexOutOfRange
	}
	if e.values[index].null {
		return 1
	}
	return 0
}

func ElementNumValues(e *Element) int { return len(e.values) }

func ElementNumElements(e *Element) int { return len(e.children) }

// ElementHasElement looks a child up by name or by interned name; exactly
// one of the two must be set.
func ElementHasElement(e *Element, name string, named *Name) bool {
	return e.child(name, named) != nil
}

func (e *Element) child(name string, named *Name) *Element {
	for _, c := range e.children {
		if named != nil {
			if c.name == named {
				return c
			}
		} else if c.name != nil && c.name.s == name {
			return c
		}
	}
	return nil
}

func ElementGetElement(e *Element, out **Element, name string, named *Name) int32 {
	c := e.child(name, named)
	if c == nil {
		return ErrorFieldNotFound
	}
	*out = c
	return StatusOK
}

func ElementGetElementAt(e *Element, out **Element, index int) int32 {
	if index < 0 || index >= len(e.children) {
		return ErrorIndexOutOfRange
	}
	*out = e.children[index]
	return StatusOK
}

// ElementAppendElement appends a new entry to an array of complex type and
// returns the entry's handle.
func ElementAppendElement(e *Element, out **Element) int32 {
	if !e.isArray || (e.datatype != DatatypeSequence && e.datatype != DatatypeChoice) {
		return ErrorUnsupportedOp
	}
	entry := newElement(e.name, e.datatype, false)
	entry.arrayEntry = true
	entry.null = false
	e.values = append(e.values, value{v: entry})
	e.null = false
	*out = entry
	return StatusOK
}

// slot resolves index for a get, honoring bounds.
func (e *Element) slot(index int) (*value, int32) {
	if index < 0 || index >= len(e.values) {
		return nil, ErrorIndexOutOfRange
	}
	return &e.values[index], StatusOK
}

// store resolves index for a set. ElementIndexEnd and index == len append;
// a scalar non-array element grows at most one slot.
func (e *Element) store(index int) (*value, int32) {
	if index == ElementIndexEnd || index == len(e.values) {
		if !e.isArray && len(e.values) >= 1 {
			return nil, ErrorIndexOutOfRange
		}
		e.values = append(e.values, value{})
		e.null = false
		return &e.values[len(e.values)-1], StatusOK
	}
	if index < 0 || index > len(e.values) {
		return nil, ErrorIndexOutOfRange
	}
	e.null = false
	return &e.values[index], StatusOK
}

func (e *Element) setScalar(index int, datatype int32, v any) int32 {
	if e.datatype != datatype {
		conv, code := convert(v, e.datatype)
		if code != StatusOK {
			return code
		}
		v = conv
	}
	s, code := e.store(index)
	if code != StatusOK {
		return code
	}
	*s = value{v: v}
	return StatusOK
}

func (e *Element) getScalar(index int, datatype int32, out any) int32 {
	s, code := e.slot(index)
	if code != StatusOK {
		return code
	}
	if s.null {
		return ErrorNotInitialized
	}
	conv, code := convert(s.v, datatype)
	if code != StatusOK {
		return code
	}
	switch p := out.(type) {
	case *bool:
		*p = conv.(bool)
	case *int8:
		*p = conv.(int8)
	case *int32:
		*p = conv.(int32)
	case *int64:
		*p = conv.(int64)
	case *float32:
		*p = conv.(float32)
	case *float64:
		*p = conv.(float64)
	case *string:
		*p = conv.(string)
	case *[]byte:
		*p = conv.([]byte)
	case **Name:
		*p = conv.(*Name)
	case *Datetime:
		*p = conv.(Datetime)
	}
	return StatusOK
}

// convert maps a stored scalar onto the requested data type. Numeric
// widening and any-scalar-to-string are the only lossy-free conversions the
// runtime performs; everything else is an invalid conversion.
func convert(v any, want int32) (any, int32) {
	switch want {
	case DatatypeBool:
		if b, ok := v.(bool); ok {
			return b, StatusOK
		}
	case DatatypeChar:
		if c, ok := v.(int8); ok {
			return c, StatusOK
		}
	case DatatypeInt32:
		switch x := v.(type) {
		case int32:
			return x, StatusOK
		case int8:
			return int32(x), StatusOK
		case int64:
			if x >= math.MinInt32 && x <= math.MaxInt32 {
				return int32(x), StatusOK
			}
		}
	case DatatypeInt64:
		switch x := v.(type) {
		case int64:
			return x, StatusOK
		case int32:
			return int64(x), StatusOK
		case int8:
			return int64(x), StatusOK
		}
	case DatatypeFloat32:
		switch x := v.(type) {
		case float32:
			return x, StatusOK
		case int32:
			return float32(x), StatusOK
		}
	case DatatypeFloat64:
		switch x := v.(type) {
		case float64:
			return x, StatusOK
		case float32:
			return float64(x), StatusOK
		case int32:
			return float64(x), StatusOK
		case int64:
			return float64(x), StatusOK
		}
	case DatatypeString, DatatypeEnumeration:
		switch x := v.(type) {
		case string:
			return x, StatusOK
		case bool:
			return strconv.FormatBool(x), StatusOK
		case int8:
			return string(rune(x)), StatusOK
		case int32:
			return strconv.FormatInt(int64(x), 10), StatusOK
		case int64:
			return strconv.FormatInt(x, 10), StatusOK
		case float32:
			return strconv.FormatFloat(float64(x), 'g', -1, 32), StatusOK
		case float64:
			return strconv.FormatFloat(x, 'g', -1, 64), StatusOK
		}
	case DatatypeBytearray:
		if bs, ok := v.([]byte); ok {
			return bs, StatusOK
		}
	case DatatypeDate, DatatypeTime, DatatypeDatetime:
		if dt, ok := v.(Datetime); ok {
			return dt, StatusOK
		}
	}
	if _, ok := v.(*Name); ok && (want == DatatypeString || want == DatatypeEnumeration) {
		return v.(*Name).s, StatusOK
	}
	return nil, ErrorBadConversion
}

func ElementGetValueAsBool(e *Element, out *bool, index int) int32 {
	return e.getScalar(index, DatatypeBool, out)
}

func ElementGetValueAsChar(e *Element, out *int8, index int) int32 {
	return e.getScalar(index, DatatypeChar, out)
}

func ElementGetValueAsInt32(e *Element, out *int32, index int) int32 {
	return e.getScalar(index, DatatypeInt32, out)
}

func ElementGetValueAsInt64(e *Element, out *int64, index int) int32 {
	return e.getScalar(index, DatatypeInt64, out)
}

func ElementGetValueAsFloat32(e *Element, out *float32, index int) int32 {
	return e.getScalar(index, DatatypeFloat32, out)
}

func ElementGetValueAsFloat64(e *Element, out *float64, index int) int32 {
	return e.getScalar(index, DatatypeFloat64, out)
}

func ElementGetValueAsString(e *Element, out *string, index int) int32 {
	return e.getScalar(index, DatatypeString, out)
}

func ElementGetValueAsBytes(e *Element, out *[]byte, index int) int32 {
	return e.getScalar(index, DatatypeBytearray, out)
}

func ElementGetValueAsDatetime(e *Element, out *Datetime, index int) int32 {
	return e.getScalar(index, DatatypeDatetime, out)
}

func ElementGetValueAsName(e *Element, out **Name, index int) int32 {
	s, code := e.slot(index)
	if code != StatusOK {
		return code
	}
	if s.null {
		return ErrorNotInitialized
	}
	switch x := s.v.(type) {
	case *Name:
		*out = x
	case string:
		*out = NameCreate(x)
	default:
		return ErrorBadConversion
	}
	return StatusOK
}

func ElementGetValueAsElement(e *Element, out **Element, index int) int32 {
	s, code := e.slot(index)
	if code != StatusOK {
		return code
	}
	el, ok := s.v.(*Element)
	if !ok {
		return ErrorBadConversion
	}
	*out = el
	return StatusOK
}

func ElementSetValueBool(e *Element, v bool, index int) int32 {
	return e.setScalar(index, DatatypeBool, v)
}

func ElementSetValueChar(e *Element, v int8, index int) int32 {
	return e.setScalar(index, DatatypeChar, v)
}

func ElementSetValueInt32(e *Element, v int32, index int) int32 {
	return e.setScalar(index, DatatypeInt32, v)
}

func ElementSetValueInt64(e *Element, v int64, index int) int32 {
	return e.setScalar(index, DatatypeInt64, v)
}

func ElementSetValueFloat32(e *Element, v float32, index int) int32 {
	return e.setScalar(index, DatatypeFloat32, v)
}

func ElementSetValueFloat64(e *Element, v float64, index int) int32 {
	return e.setScalar(index, DatatypeFloat64, v)
}

func ElementSetValueString(e *Element, v string, index int) int32 {
	return e.setScalar(index, DatatypeString, v)
}

func ElementSetValueBytes(e *Element, v []byte, index int) int32 {
	return e.setScalar(index, DatatypeBytearray, v)
}

func ElementSetValueDatetime(e *Element, v Datetime, index int) int32 {
	return e.setScalar(index, DatatypeDatetime, v)
}

func ElementSetValueFromName(e *Element, v *Name, index int) int32 {
	if v == nil {
		return ErrorIllegalArg
	}
	s, code := e.store(index)
	if code != StatusOK {
		return code
	}
	*s = value{v: v}
	return StatusOK
}

// setElement writes a named field of a sequence, creating it when absent.
// Creation infers the field's data type from the value; this is the
// schema-on-write behavior of the emulated runtime.
func (e *Element) setElement(name string, named *Name, datatype int32, v any) int32 {
	if !ElementIsComplexType(e) {
		return ErrorUnsupportedOp
	}
	c := e.child(name, named)
	if c == nil {
		n := named
		if n == nil {
			n = NameCreate(name)
		}
		c = newElement(n, datatype, false)
		e.children = append(e.children, c)
		e.null = false
	}
	return c.setScalar(0, datatype, v)
}

func ElementSetElementBool(e *Element, name string, named *Name, v bool) int32 {
	return e.setElement(name, named, DatatypeBool, v)
}

func ElementSetElementChar(e *Element, name string, named *Name, v int8) int32 {
	return e.setElement(name, named, DatatypeChar, v)
}

func ElementSetElementInt32(e *Element, name string, named *Name, v int32) int32 {
	return e.setElement(name, named, DatatypeInt32, v)
}

func ElementSetElementInt64(e *Element, name string, named *Name, v int64) int32 {
	return e.setElement(name, named, DatatypeInt64, v)
}

func ElementSetElementFloat32(e *Element, name string, named *Name, v float32) int32 {
	return e.setElement(name, named, DatatypeFloat32, v)
}

func ElementSetElementFloat64(e *Element, name string, named *Name, v float64) int32 {
	return e.setElement(name, named, DatatypeFloat64, v)
}

func ElementSetElementString(e *Element, name string, named *Name, v string) int32 {
	return e.setElement(name, named, DatatypeString, v)
}

func ElementSetElementBytes(e *Element, name string, named *Name, v []byte) int32 {
	return e.setElement(name, named, DatatypeBytearray, v)
}

func ElementSetElementDatetime(e *Element, name string, named *Name, v Datetime) int32 {
	return e.setElement(name, named, DatatypeDatetime, v)
}

func ElementSetElementFromName(e *Element, name string, named *Name, v *Name) int32 {
	if v == nil {
		return ErrorIllegalArg
	}
	return e.setElement(name, named, DatatypeEnumeration, v)
}

// ElementDebugString renders a one-line summary used by error messages.
func ElementDebugString(e *Element) string {
	name := "<anonymous>"
	if e.name != nil {
		name = e.name.s
	}
	return fmt.Sprintf("Element[name=%s datatype=%d]", name, e.datatype)
}

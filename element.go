package mdx

import (
	"iter"

	"github.com/quantfold/mdx/native"
)

// Datatype identifies what an element holds.
type Datatype int32

const (
	DatatypeBool          Datatype = Datatype(native.DatatypeBool)
	DatatypeChar          Datatype = Datatype(native.DatatypeChar)
	DatatypeByte          Datatype = Datatype(native.DatatypeByte)
	DatatypeInt32         Datatype = Datatype(native.DatatypeInt32)
	DatatypeInt64         Datatype = Datatype(native.DatatypeInt64)
	DatatypeFloat32       Datatype = Datatype(native.DatatypeFloat32)
	DatatypeFloat64       Datatype = Datatype(native.DatatypeFloat64)
	DatatypeString        Datatype = Datatype(native.DatatypeString)
	DatatypeBytearray     Datatype = Datatype(native.DatatypeBytearray)
	DatatypeDate          Datatype = Datatype(native.DatatypeDate)
	DatatypeTime          Datatype = Datatype(native.DatatypeTime)
	DatatypeDecimal       Datatype = Datatype(native.DatatypeDecimal)
	DatatypeDatetime      Datatype = Datatype(native.DatatypeDatetime)
	DatatypeEnumeration   Datatype = Datatype(native.DatatypeEnumeration)
	DatatypeSequence      Datatype = Datatype(native.DatatypeSequence)
	DatatypeChoice        Datatype = Datatype(native.DatatypeChoice)
	DatatypeCorrelationID Datatype = Datatype(native.DatatypeCorrelationID)
)

func (d Datatype) String() string {
	switch d {
	case DatatypeBool:
		return "Bool"
	case DatatypeChar:
		return "Char"
	case DatatypeByte:
		return "Byte"
	case DatatypeInt32:
		return "Int32"
	case DatatypeInt64:
		return "Int64"
	case DatatypeFloat32:
		return "Float32"
	case DatatypeFloat64:
		return "Float64"
	case DatatypeString:
		return "String"
	case DatatypeBytearray:
		return "Bytearray"
	case DatatypeDate:
		return "Date"
	case DatatypeTime:
		return "Time"
	case DatatypeDecimal:
		return "Decimal"
	case DatatypeDatetime:
		return "Datetime"
	case DatatypeEnumeration:
		return "Enumeration"
	case DatatypeSequence:
		return "Sequence"
	case DatatypeChoice:
		return "Choice"
	case DatatypeCorrelationID:
		return "CorrelationID"
	default:
		return "Unknown"
	}
}

// Element is a borrowed view into a message or request tree. Copying an
// Element copies the view, not the data; an Element stays valid as long as
// the message or request it came from.
type Element struct {
	ptr *native.Element
}

// IsValid reports whether e refers to a node at all. The zero Element is
// invalid.
func (e Element) IsValid() bool { return e.ptr != nil }

func (e Element) Name() Name {
	return Name{ptr: native.ElementName(e.ptr)}
}

func (e Element) Datatype() Datatype {
	return Datatype(native.ElementDatatype(e.ptr))
}

func (e Element) IsArray() bool { return native.ElementIsArray(e.ptr) }

// IsComplexType reports whether e is a sequence or choice that is neither
// an array nor an entry of one.
func (e Element) IsComplexType() bool { return native.ElementIsComplexType(e.ptr) }

func (e Element) IsNull() bool { return native.ElementIsNull(e.ptr) }

// IsNullValue reports whether the value at index is null.
func (e Element) IsNullValue(index int) (bool, error) {
	r := native.ElementIsNullValue(e.ptr, index)
	if r != 0 && r != 1 {
		return false, statusError(r)
	}
	return r == 1, nil
}

func (e Element) NumValues() int { return native.ElementNumValues(e.ptr) }

func (e Element) NumElements() int { return native.ElementNumElements(e.ptr) }

func (e Element) HasElement(name string) bool {
	return native.ElementHasElement(e.ptr, name, nil)
}

func (e Element) HasNamedElement(name Name) bool {
	return native.ElementHasElement(e.ptr, "", name.ptr)
}

// GetElement looks a child up by field name.
func (e Element) GetElement(name string) (Element, error) {
	var out *native.Element
	if code := native.ElementGetElement(e.ptr, &out, name, nil); code != native.StatusOK {
		return Element{}, &NotFoundError{Name: name, Err: statusError(code)}
	}
	return Element{ptr: out}, nil
}

// GetNamedElement looks a child up by interned name, skipping the string
// comparison per child.
func (e Element) GetNamedElement(name Name) (Element, error) {
	var out *native.Element
	if code := native.ElementGetElement(e.ptr, &out, "", name.ptr); code != native.StatusOK {
		return Element{}, &NotFoundError{Name: name.String(), Err: statusError(code)}
	}
	return Element{ptr: out}, nil
}

// GetElementAt returns the child at position index of a complex element.
func (e Element) GetElementAt(index int) (Element, error) {
	var out *native.Element
	if code := native.ElementGetElementAt(e.ptr, &out, index); code != native.StatusOK {
		return Element{}, statusError(code)
	}
	return Element{ptr: out}, nil
}

// AppendElement adds one entry to an array of sequences or choices and
// returns it for population.
func (e Element) AppendElement() (Element, error) {
	var out *native.Element
	if code := native.ElementAppendElement(e.ptr, &out); code != native.StatusOK {
		return Element{}, statusError(code)
	}
	return Element{ptr: out}, nil
}

// Elements iterates the children of a complex element in field order.
func (e Element) Elements() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for i := 0; i < e.NumElements(); i++ {
			var out *native.Element
			if native.ElementGetElementAt(e.ptr, &out, i) != native.StatusOK {
				return
			}
			if !yield(Element{ptr: out}) {
				return
			}
		}
	}
}

func (e Element) String() string {
	if e.ptr == nil {
		return "<invalid element>"
	}
	return sprintElement(e)
}

package mdx

import (
	"iter"

	"github.com/quantfold/mdx/native"
)

// Value enumerates the Go types an element value can be read as or written
// from. Numeric reads widen where the runtime allows it, and any scalar
// reads as a string.
type Value interface {
	bool | int8 | int32 | int64 | float32 | float64 | string | []byte | Name | Datetime | Element
}

// HashableValue is the subset of Value usable as a map key.
type HashableValue interface {
	bool | int8 | int32 | int64 | float32 | float64 | string | Name | Datetime
}

// ElementIndexEnd appends when passed as the index of SetAt.
const ElementIndexEnd = native.ElementIndexEnd

// GetAt reads the value at index as V.
func GetAt[V Value](e Element, index int) (V, error) {
	var out V
	var code int32
	switch p := any(&out).(type) {
	case *bool:
		code = native.ElementGetValueAsBool(e.ptr, p, index)
	case *int8:
		code = native.ElementGetValueAsChar(e.ptr, p, index)
	case *int32:
		code = native.ElementGetValueAsInt32(e.ptr, p, index)
	case *int64:
		code = native.ElementGetValueAsInt64(e.ptr, p, index)
	case *float32:
		code = native.ElementGetValueAsFloat32(e.ptr, p, index)
	case *float64:
		code = native.ElementGetValueAsFloat64(e.ptr, p, index)
	case *string:
		code = native.ElementGetValueAsString(e.ptr, p, index)
	case *[]byte:
		code = native.ElementGetValueAsBytes(e.ptr, p, index)
	case *Name:
		var n *native.Name
		code = native.ElementGetValueAsName(e.ptr, &n, index)
		if code == native.StatusOK {
			*p = Name{ptr: n}
		}
	case *Datetime:
		var dt native.Datetime
		code = native.ElementGetValueAsDatetime(e.ptr, &dt, index)
		if code == native.StatusOK {
			*p = fromNativeDatetime(dt)
		}
	case *Element:
		var el *native.Element
		code = native.ElementGetValueAsElement(e.ptr, &el, index)
		if code == native.StatusOK {
			*p = Element{ptr: el}
		}
	}
	if code != native.StatusOK {
		var zero V
		return zero, statusError(code)
	}
	return out, nil
}

// Get reads the single value of the field called name as V.
func Get[V Value](e Element, name string) (V, error) {
	child, err := e.GetElement(name)
	if err != nil {
		var zero V
		return zero, err
	}
	return GetAt[V](child, 0)
}

// GetNamed is Get with an interned name.
func GetNamed[V Value](e Element, name Name) (V, error) {
	child, err := e.GetNamedElement(name)
	if err != nil {
		var zero V
		return zero, err
	}
	return GetAt[V](child, 0)
}

// SetAt writes v at index. Passing ElementIndexEnd or the current length
// appends; a non-array element accepts only index 0.
func SetAt[V Value](e Element, index int, v V) error {
	var code int32
	switch x := any(v).(type) {
	case bool:
		code = native.ElementSetValueBool(e.ptr, x, index)
	case int8:
		code = native.ElementSetValueChar(e.ptr, x, index)
	case int32:
		code = native.ElementSetValueInt32(e.ptr, x, index)
	case int64:
		code = native.ElementSetValueInt64(e.ptr, x, index)
	case float32:
		code = native.ElementSetValueFloat32(e.ptr, x, index)
	case float64:
		code = native.ElementSetValueFloat64(e.ptr, x, index)
	case string:
		code = native.ElementSetValueString(e.ptr, x, index)
	case []byte:
		code = native.ElementSetValueBytes(e.ptr, x, index)
	case Name:
		code = native.ElementSetValueFromName(e.ptr, x.ptr, index)
	case Datetime:
		code = native.ElementSetValueDatetime(e.ptr, x.nativeValue(), index)
	case Element:
		code = native.ErrorUnsupportedOp
	}
	return statusError(code)
}

// Append adds v at the end of an array element.
func Append[V Value](e Element, v V) error {
	return SetAt(e, ElementIndexEnd, v)
}

// Set writes v as the value of the field called name, creating the field
// when the element's type allows it.
func Set[V Value](e Element, name string, v V) error {
	return setField(e, name, Name{}, v)
}

// SetNamed is Set with an interned name.
func SetNamed[V Value](e Element, name Name, v V) error {
	return setField(e, "", name, v)
}

func setField[V Value](e Element, name string, named Name, v V) error {
	var code int32
	switch x := any(v).(type) {
	case bool:
		code = native.ElementSetElementBool(e.ptr, name, named.ptr, x)
	case int8:
		code = native.ElementSetElementChar(e.ptr, name, named.ptr, x)
	case int32:
		code = native.ElementSetElementInt32(e.ptr, name, named.ptr, x)
	case int64:
		code = native.ElementSetElementInt64(e.ptr, name, named.ptr, x)
	case float32:
		code = native.ElementSetElementFloat32(e.ptr, name, named.ptr, x)
	case float64:
		code = native.ElementSetElementFloat64(e.ptr, name, named.ptr, x)
	case string:
		code = native.ElementSetElementString(e.ptr, name, named.ptr, x)
	case []byte:
		code = native.ElementSetElementBytes(e.ptr, name, named.ptr, x)
	case Name:
		code = native.ElementSetElementFromName(e.ptr, name, named.ptr, x.ptr)
	case Datetime:
		code = native.ElementSetElementDatetime(e.ptr, name, named.ptr, x.nativeValue())
	case Element:
		code = native.ErrorUnsupportedOp
	}
	return statusError(code)
}

// Values iterates an element's values as V, stopping at the first value
// that fails to convert.
func Values[V Value](e Element) iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		for i := 0; i < e.NumValues(); i++ {
			v, err := GetAt[V](e, i)
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// GetSlice collects the values of the array field called name.
func GetSlice[V Value](e Element, name string) ([]V, error) {
	child, err := e.GetElement(name)
	if err != nil {
		return nil, err
	}
	out := make([]V, 0, child.NumValues())
	for v, err := range Values[V](child) {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// GetSet collects the values of the array field called name into a set,
// dropping duplicates.
func GetSet[V HashableValue](e Element, name string) (map[V]struct{}, error) {
	child, err := e.GetElement(name)
	if err != nil {
		return nil, err
	}
	out := make(map[V]struct{}, child.NumValues())
	for i := 0; i < child.NumValues(); i++ {
		var v V
		var gerr error
		switch p := any(&v).(type) {
		case *bool:
			gerr = statusError(native.ElementGetValueAsBool(child.ptr, p, i))
		case *int8:
			gerr = statusError(native.ElementGetValueAsChar(child.ptr, p, i))
		case *int32:
			gerr = statusError(native.ElementGetValueAsInt32(child.ptr, p, i))
		case *int64:
			gerr = statusError(native.ElementGetValueAsInt64(child.ptr, p, i))
		case *float32:
			gerr = statusError(native.ElementGetValueAsFloat32(child.ptr, p, i))
		case *float64:
			gerr = statusError(native.ElementGetValueAsFloat64(child.ptr, p, i))
		case *string:
			gerr = statusError(native.ElementGetValueAsString(child.ptr, p, i))
		case *Name:
			var n *native.Name
			gerr = statusError(native.ElementGetValueAsName(child.ptr, &n, i))
			if gerr == nil {
				*p = Name{ptr: n}
			}
		case *Datetime:
			var dt native.Datetime
			gerr = statusError(native.ElementGetValueAsDatetime(child.ptr, &dt, i))
			if gerr == nil {
				*p = fromNativeDatetime(dt)
			}
		}
		if gerr != nil {
			return nil, gerr
		}
		out[v] = struct{}{}
	}
	return out, nil
}

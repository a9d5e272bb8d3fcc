// Package decode maps element trees onto Go values by reflection.
//
// FromElement fills structs, maps, slices, scalars, and any combination of
// them from an element. Struct fields match elements by the mdx tag, then
// by field name. Pointer fields are optional: a missing element leaves the
// pointer nil. FieldValue distinguishes a field that was absent from one
// that carried a zero value.
package decode

import (
	"reflect"

	"github.com/quantfold/mdx"
	"github.com/quantfold/mdx/internal/debug"
)

// FromElement decodes el into v. v must be a non-nil pointer.
func FromElement(el mdx.Element, v any) error {
	if v == nil {
		return &Error{Kind: UnsupportedType, ElementDebug: debugName(el), Err: errNilTarget}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return &Error{Kind: UnsupportedType, ElementDebug: debugName(el), Err: errNotPointer}
	}
	if debug.Decode() {
		debug.Logf("decode: %s into %s\n", debugName(el), val.Elem().Type())
	}
	return decodeElement(el, val.Elem())
}

// FromMessage decodes a message's payload tree into v.
func FromMessage(m *mdx.Message, v any) error {
	el, err := m.Element()
	if err != nil {
		return &Error{Kind: Native, ElementDebug: m.MessageType().String(), Err: err}
	}
	return FromElement(el, v)
}

var (
	errNilTarget  = reflectError("target is nil")
	errNotPointer = reflectError("target must be a non-nil pointer")
)

type reflectError string

func (e reflectError) Error() string { return string(e) }

var (
	datetimeType = reflect.TypeOf(mdx.Datetime{})
	nameType     = reflect.TypeOf(mdx.Name{})
	elementType  = reflect.TypeOf(mdx.Element{})
	anyType      = reflect.TypeOf((*any)(nil)).Elem()
)

// fieldDecoder is implemented by FieldValue. lookupErr carries the field
// resolution failure, if any, so the implementation decides how absence
// maps onto it.
type fieldDecoder interface {
	decodeField(el mdx.Element, lookupErr error) error
}

func debugName(el mdx.Element) string {
	if !el.IsValid() {
		return "<invalid>"
	}
	return el.Name().String()
}

func decodeElement(el mdx.Element, val reflect.Value) error {
	if val.CanAddr() {
		if fd, ok := val.Addr().Interface().(fieldDecoder); ok {
			return fd.decodeField(el, nil)
		}
	}

	typ := val.Type()
	switch typ {
	case datetimeType, nameType, elementType:
		return decodeScalarAt(el, 0, val)
	case anyType:
		v, err := decodeAny(el)
		if err != nil {
			return err
		}
		val.Set(reflect.ValueOf(v))
		return nil
	}

	switch typ.Kind() {
	case reflect.Ptr:
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		if null, err := el.IsNullValue(0); err == nil && null && !el.IsComplexType() {
			val.Set(reflect.Zero(typ))
			return nil
		}
		return decodeElement(el, val.Elem())
	case reflect.Struct:
		return decodeStruct(el, val)
	case reflect.Map:
		return decodeMap(el, val)
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			return decodeScalarAt(el, 0, val)
		}
		return decodeSlice(el, val)
	default:
		return decodeScalarAt(el, 0, val)
	}
}

// fieldName resolves the element name a struct field binds to. An mdx tag
// wins over the field's own name; "-" skips the field.
func fieldName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup("mdx"); ok {
		return tag
	}
	return f.Name
}

func decodeStruct(el mdx.Element, val reflect.Value) error {
	if !el.IsComplexType() {
		return &Error{Kind: ExpectedArrayOrComplexType, ElementDebug: debugName(el)}
	}
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldName(f)
		if name == "-" {
			continue
		}
		fv := val.Field(i)
		child, lookupErr := el.GetElement(name)
		if lookupErr != nil {
			lookupErr = &Error{Kind: ElementNotFoundAtField, ElementDebug: debugName(el), Field: name, Err: lookupErr}
		}
		if fv.CanAddr() {
			if fd, ok := fv.Addr().Interface().(fieldDecoder); ok {
				if err := fd.decodeField(child, lookupErr); err != nil {
					return err
				}
				continue
			}
		}
		if lookupErr != nil {
			if f.Type.Kind() == reflect.Ptr {
				fv.Set(reflect.Zero(f.Type))
				continue
			}
			return lookupErr
		}
		if err := decodeElement(child, fv); err != nil {
			return err
		}
	}
	return nil
}

func decodeMap(el mdx.Element, val reflect.Value) error {
	if !el.IsComplexType() {
		return &Error{Kind: ExpectedArrayOrComplexType, ElementDebug: debugName(el)}
	}
	typ := val.Type()
	if typ.Key().Kind() != reflect.String {
		return &Error{Kind: UnsupportedType, ElementDebug: debugName(el),
			Err: reflectError("map keys must be strings")}
	}
	if val.IsNil() {
		val.Set(reflect.MakeMapWithSize(typ, el.NumElements()))
	}
	for child := range el.Elements() {
		mv := reflect.New(typ.Elem()).Elem()
		if err := decodeElement(child, mv); err != nil {
			return err
		}
		key := reflect.New(typ.Key()).Elem()
		key.SetString(child.Name().String())
		val.SetMapIndex(key, mv)
	}
	return nil
}

func decodeSlice(el mdx.Element, val reflect.Value) error {
	if !el.IsArray() {
		if !el.IsComplexType() {
			return &Error{Kind: ExpectedArrayOrComplexType, ElementDebug: debugName(el)}
		}
		// A complex element also reads as a sequence: its children become
		// the slice entries, in declaration order.
		n := el.NumElements()
		out := reflect.MakeSlice(val.Type(), n, n)
		for i := 0; i < n; i++ {
			child, err := el.GetElementAt(i)
			if err != nil {
				return &Error{Kind: ElementNotFoundAtIndex, ElementDebug: debugName(el), Index: i, Err: err}
			}
			if err := decodeElement(child, out.Index(i)); err != nil {
				return err
			}
		}
		val.Set(out)
		return nil
	}
	n := el.NumValues()
	out := reflect.MakeSlice(val.Type(), n, n)
	complexEntries := el.Datatype() == mdx.DatatypeSequence || el.Datatype() == mdx.DatatypeChoice
	for i := 0; i < n; i++ {
		if complexEntries {
			entry, err := mdx.GetAt[mdx.Element](el, i)
			if err != nil {
				return &Error{Kind: ElementNotFoundAtIndex, ElementDebug: debugName(el), Index: i, Err: err}
			}
			if err := decodeElement(entry, out.Index(i)); err != nil {
				return err
			}
			continue
		}
		if err := decodeScalarAt(el, i, out.Index(i)); err != nil {
			return err
		}
	}
	val.Set(out)
	return nil
}

// decodeScalarAt reads one value slot into a scalar target. Reads that the
// runtime rejects surface as Native errors, except out-of-range reads,
// which become ElementNotFoundAtIndex.
func decodeScalarAt(el mdx.Element, index int, val reflect.Value) error {
	if el.IsComplexType() {
		return &Error{Kind: ExpectedValue, ElementDebug: debugName(el)}
	}
	if el.NumValues() == 0 {
		return &Error{Kind: ExpectedValue, ElementDebug: debugName(el)}
	}
	if index >= el.NumValues() {
		return &Error{Kind: ElementNotFoundAtIndex, ElementDebug: debugName(el), Index: index}
	}

	switch val.Type() {
	case datetimeType:
		return setFrom[mdx.Datetime](el, index, val)
	case nameType:
		return setFrom[mdx.Name](el, index, val)
	case elementType:
		return setFrom[mdx.Element](el, index, val)
	}

	switch val.Kind() {
	case reflect.Bool:
		v, err := mdx.GetAt[bool](el, index)
		if err != nil {
			return nativeError(el, err)
		}
		val.SetBool(v)
	case reflect.Int8:
		v, err := mdx.GetAt[int8](el, index)
		if err != nil {
			return nativeError(el, err)
		}
		val.SetInt(int64(v))
	case reflect.Int32:
		v, err := mdx.GetAt[int32](el, index)
		if err != nil {
			return nativeError(el, err)
		}
		val.SetInt(int64(v))
	case reflect.Int, reflect.Int64:
		v, err := mdx.GetAt[int64](el, index)
		if err != nil {
			return nativeError(el, err)
		}
		val.SetInt(v)
	case reflect.Float32:
		v, err := mdx.GetAt[float32](el, index)
		if err != nil {
			return nativeError(el, err)
		}
		val.SetFloat(float64(v))
	case reflect.Float64:
		v, err := mdx.GetAt[float64](el, index)
		if err != nil {
			return nativeError(el, err)
		}
		val.SetFloat(v)
	case reflect.String:
		v, err := mdx.GetAt[string](el, index)
		if err != nil {
			return nativeError(el, err)
		}
		val.SetString(v)
	case reflect.Slice:
		v, err := mdx.GetAt[[]byte](el, index)
		if err != nil {
			return nativeError(el, err)
		}
		val.SetBytes(v)
	default:
		return &Error{Kind: UnsupportedType, ElementDebug: debugName(el),
			Err: reflectError("cannot decode into " + val.Type().String())}
	}
	return nil
}

func setFrom[V mdx.Value](el mdx.Element, index int, val reflect.Value) error {
	v, err := mdx.GetAt[V](el, index)
	if err != nil {
		return nativeError(el, err)
	}
	val.Set(reflect.ValueOf(v))
	return nil
}

func nativeError(el mdx.Element, err error) error {
	return &Error{Kind: Native, ElementDebug: debugName(el), Err: err}
}

// decodeAny maps an element onto untyped Go data: complex elements become
// map[string]any, arrays become []any, scalars become the Go type closest
// to their data type. This switch is the one place every data type is
// enumerated.
func decodeAny(el mdx.Element) (any, error) {
	if el.IsComplexType() {
		out := make(map[string]any, el.NumElements())
		for child := range el.Elements() {
			v, err := decodeAny(child)
			if err != nil {
				return nil, err
			}
			out[child.Name().String()] = v
		}
		return out, nil
	}
	if el.IsArray() {
		n := el.NumValues()
		out := make([]any, 0, n)
		complexEntries := el.Datatype() == mdx.DatatypeSequence || el.Datatype() == mdx.DatatypeChoice
		for i := 0; i < n; i++ {
			if complexEntries {
				entry, err := mdx.GetAt[mdx.Element](el, i)
				if err != nil {
					return nil, &Error{Kind: ElementNotFoundAtIndex, ElementDebug: debugName(el), Index: i, Err: err}
				}
				obj := make(map[string]any, entry.NumElements())
				for child := range entry.Elements() {
					v, err := decodeAny(child)
					if err != nil {
						return nil, err
					}
					obj[child.Name().String()] = v
				}
				out = append(out, obj)
				continue
			}
			v, err := scalarAny(el, i)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	if el.NumValues() == 0 {
		return nil, nil
	}
	if null, err := el.IsNullValue(0); err == nil && null {
		return nil, nil
	}
	return scalarAny(el, 0)
}

func scalarAny(el mdx.Element, index int) (any, error) {
	switch el.Datatype() {
	case mdx.DatatypeBool:
		v, err := mdx.GetAt[bool](el, index)
		if err != nil {
			return nil, nativeError(el, err)
		}
		return v, nil
	case mdx.DatatypeChar:
		v, err := mdx.GetAt[int8](el, index)
		if err != nil {
			return nil, nativeError(el, err)
		}
		return v, nil
	case mdx.DatatypeInt32:
		v, err := mdx.GetAt[int32](el, index)
		if err != nil {
			return nil, nativeError(el, err)
		}
		return v, nil
	case mdx.DatatypeInt64:
		v, err := mdx.GetAt[int64](el, index)
		if err != nil {
			return nil, nativeError(el, err)
		}
		return v, nil
	case mdx.DatatypeFloat32:
		v, err := mdx.GetAt[float32](el, index)
		if err != nil {
			return nil, nativeError(el, err)
		}
		return v, nil
	case mdx.DatatypeFloat64, mdx.DatatypeDecimal:
		v, err := mdx.GetAt[float64](el, index)
		if err != nil {
			return nil, nativeError(el, err)
		}
		return v, nil
	case mdx.DatatypeString, mdx.DatatypeEnumeration:
		v, err := mdx.GetAt[string](el, index)
		if err != nil {
			return nil, nativeError(el, err)
		}
		return v, nil
	case mdx.DatatypeBytearray:
		v, err := mdx.GetAt[[]byte](el, index)
		if err != nil {
			return nil, nativeError(el, err)
		}
		return v, nil
	case mdx.DatatypeDate, mdx.DatatypeTime, mdx.DatatypeDatetime:
		v, err := mdx.GetAt[mdx.Datetime](el, index)
		if err != nil {
			return nil, nativeError(el, err)
		}
		return v, nil
	case mdx.DatatypeByte, mdx.DatatypeSequence, mdx.DatatypeChoice, mdx.DatatypeCorrelationID:
		return nil, &Error{Kind: UnsupportedType, ElementDebug: debugName(el),
			Err: reflectError("no untyped mapping for " + el.Datatype().String())}
	default:
		return nil, &Error{Kind: UnsupportedType, ElementDebug: debugName(el),
			Err: reflectError("unknown data type")}
	}
}

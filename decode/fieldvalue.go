package decode

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/quantfold/mdx"
)

// FieldValue is a decode target that remembers whether its field existed.
// A plain field of type T cannot tell "absent" apart from "present with
// the zero value"; FieldValue[T] can. The zero FieldValue is missing.
type FieldValue[T any] struct {
	value   T
	present bool
}

// NewPresent returns a present FieldValue holding v.
func NewPresent[T any](v T) FieldValue[T] {
	return FieldValue[T]{value: v, present: true}
}

// NewMissing returns a missing FieldValue.
func NewMissing[T any]() FieldValue[T] {
	return FieldValue[T]{}
}

// IsPresent reports whether the field existed.
func (f FieldValue[T]) IsPresent() bool { return f.present }

// Get returns the value and whether it was present.
func (f FieldValue[T]) Get() (T, bool) { return f.value, f.present }

// Or returns the value when present, def otherwise.
func (f FieldValue[T]) Or(def T) T {
	if f.present {
		return f.value
	}
	return def
}

func (f FieldValue[T]) String() string {
	if !f.present {
		return "Missing"
	}
	return fmt.Sprintf("Present(%v)", f.value)
}

// decodeField implements fieldDecoder. A field lookup failure of the
// not-found kind decodes to missing; every other failure propagates.
func (f *FieldValue[T]) decodeField(el mdx.Element, lookupErr error) error {
	if lookupErr != nil {
		var de *Error
		if errors.As(lookupErr, &de) && de.Kind == ElementNotFoundAtField {
			*f = FieldValue[T]{}
			return nil
		}
		return lookupErr
	}
	var v T
	if err := decodeElement(el, reflect.ValueOf(&v).Elem()); err != nil {
		return err
	}
	*f = FieldValue[T]{value: v, present: true}
	return nil
}

package mdx

import (
	"errors"
	"fmt"

	"github.com/quantfold/mdx/native"
)

// ErrorClass partitions runtime failures by kind. It is derived from the
// high bits of a native status code.
type ErrorClass int32

const (
	ClassUnknown           ErrorClass = ErrorClass(native.ClassUnknown)
	ClassInvalidState      ErrorClass = ErrorClass(native.ClassInvalidState)
	ClassInvalidArg        ErrorClass = ErrorClass(native.ClassInvalidArg)
	ClassInvalidConversion ErrorClass = ErrorClass(native.ClassInvalidConversion)
	ClassBoundsError       ErrorClass = ErrorClass(native.ClassBoundsError)
	ClassNotFound          ErrorClass = ErrorClass(native.ClassNotFound)
	ClassFieldNotFound     ErrorClass = ErrorClass(native.ClassFieldNotFound)
	ClassUnsupported       ErrorClass = ErrorClass(native.ClassUnsupported)
)

func (c ErrorClass) String() string {
	switch c {
	case ClassInvalidState:
		return "invalid state"
	case ClassInvalidArg:
		return "invalid argument"
	case ClassInvalidConversion:
		return "invalid conversion"
	case ClassBoundsError:
		return "bounds error"
	case ClassNotFound:
		return "not found"
	case ClassFieldNotFound:
		return "field not found"
	case ClassUnsupported:
		return "unsupported operation"
	default:
		return "unknown"
	}
}

// Error is a failure reported by the runtime, carrying the raw status code
// alongside its class and description.
type Error struct {
	Code        int32
	Class       ErrorClass
	Description string
}

func (e *Error) Error() string {
	return fmt.Sprintf("mdx: %s (0x%x)", e.Description, e.Code)
}

// ErrTimeout reports that a blocking wait expired. It matches any timeout
// Error via errors.Is.
var ErrTimeout = &Error{
	Code:        native.ErrorTimeout,
	Class:       ClassUnknown,
	Description: native.ResultDescription(native.ErrorTimeout),
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NotFoundError reports a named item absent from its container.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("mdx: %q not found", e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// StringConversionError reports a value that could not be rendered as a
// string.
type StringConversionError struct {
	Err error
}

func (e *StringConversionError) Error() string {
	return fmt.Sprintf("mdx: value not convertible to string: %v", e.Err)
}

func (e *StringConversionError) Unwrap() error { return e.Err }

// statusError maps a native status code to an error, nil for StatusOK.
func statusError(code int32) error {
	if code == native.StatusOK {
		return nil
	}
	if code == native.ErrorTimeout {
		return ErrTimeout
	}
	return &Error{
		Code:        code,
		Class:       ErrorClass(native.ResultClass(code)),
		Description: native.ResultDescription(code),
	}
}

// IsFieldNotFound reports whether err is a runtime error of the
// field-not-found class.
func IsFieldNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Class == ClassFieldNotFound
}

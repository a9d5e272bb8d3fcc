package decode

import "fmt"

// ErrorKind classifies decode failures structurally, so callers can react
// to a specific failure without matching message text.
type ErrorKind int

const (
	// UnsupportedType marks a Go type the decoder cannot target.
	UnsupportedType ErrorKind = iota
	// ExpectedArrayOrComplexType marks a struct, map, or slice target fed
	// a scalar element.
	ExpectedArrayOrComplexType
	// ExpectedNull marks a null-only target fed a present value.
	ExpectedNull
	// ExpectedValue marks a scalar target fed an element with no value.
	ExpectedValue
	// ElementNotFoundAtIndex marks an out-of-range array access.
	ElementNotFoundAtIndex
	// ElementNotFoundAtField marks a struct field with no matching
	// element.
	ElementNotFoundAtField
	// Native wraps a runtime error raised while reading a value.
	Native
)

func (k ErrorKind) String() string {
	switch k {
	case UnsupportedType:
		return "unsupported type"
	case ExpectedArrayOrComplexType:
		return "expected array or complex type"
	case ExpectedNull:
		return "expected null"
	case ExpectedValue:
		return "expected value"
	case ElementNotFoundAtIndex:
		return "element not found at index"
	case ElementNotFoundAtField:
		return "element not found at field"
	case Native:
		return "native error"
	default:
		return "unknown"
	}
}

// Error is a decode failure. Field or Index locates the failure within the
// element named by ElementDebug; Err carries the underlying cause when one
// exists.
type Error struct {
	Kind         ErrorKind
	ElementDebug string
	Field        string
	Index        int
	Err          error
}

func (e *Error) Error() string {
	loc := e.ElementDebug
	if e.Field != "" {
		loc = fmt.Sprintf("%s.%s", loc, e.Field)
	} else if e.Kind == ElementNotFoundAtIndex {
		loc = fmt.Sprintf("%s[%d]", loc, e.Index)
	}
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", loc, e.Kind, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", loc, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

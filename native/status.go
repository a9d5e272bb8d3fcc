package native

// Status codes returned by every fallible function in this package. The
// high bits carry the result class, the low bits the specific condition.
// ResultClass and ResultDescription decode them; callers outside this
// package should go through the mdx error taxonomy instead.

const (
	StatusOK int32 = 0

	ClassUnknown           int32 = 0x00000000
	ClassInvalidState      int32 = 0x00010000
	ClassInvalidArg        int32 = 0x00020000
	ClassInvalidConversion int32 = 0x00030000
	ClassBoundsError       int32 = 0x00040000
	ClassNotFound          int32 = 0x00050000
	ClassFieldNotFound     int32 = 0x00060000
	ClassUnsupported       int32 = 0x00070000

	classMask int32 = 0x00ff0000
)

const (
	ErrorUnknown          = ClassUnknown | 1
	ErrorTimeout          = ClassUnknown | 2
	ErrorIllegalState     = ClassInvalidState | 1
	ErrorNotInitialized   = ClassInvalidState | 2
	ErrorSessionDestroyed = ClassInvalidState | 3
	ErrorIllegalArg       = ClassInvalidArg | 1
	ErrorBadConversion    = ClassInvalidConversion | 1
	ErrorIndexOutOfRange  = ClassBoundsError | 1
	ErrorItemNotFound     = ClassNotFound | 1
	ErrorServiceNotFound  = ClassNotFound | 2
	ErrorFieldNotFound    = ClassFieldNotFound | 1
	ErrorUnsupportedOp    = ClassUnsupported | 1
)

// ResultClass returns the class bits of a status code.
func ResultClass(code int32) int32 {
	return code & classMask
}

// ResultDescription returns the text for a status code. Unknown codes get a
// generic description rather than an error; the table is closed but the
// vendor runtime may be newer than this binding.
func ResultDescription(code int32) string {
	switch code {
	case StatusOK:
		return "success"
	case ErrorTimeout:
		return "operation timed out"
	case ErrorIllegalState:
		return "illegal state for operation"
	case ErrorNotInitialized:
		return "value not initialized"
	case ErrorSessionDestroyed:
		return "session already destroyed"
	case ErrorIllegalArg:
		return "illegal argument"
	case ErrorBadConversion:
		return "invalid conversion"
	case ErrorIndexOutOfRange:
		return "index out of range"
	case ErrorItemNotFound:
		return "item not found"
	case ErrorServiceNotFound:
		return "service not found"
	case ErrorFieldNotFound:
		return "field not found"
	case ErrorUnsupportedOp:
		return "unsupported operation"
	default:
		return "unknown error"
	}
}

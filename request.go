package mdx

import "github.com/quantfold/mdx/native"

// Request is a mutable element tree addressed to a service operation. Fill
// it through Element and the Set family of functions, then hand it to
// Session.SendRequest, which consumes it.
type Request struct {
	ptr *native.Request
}

// ID returns the runtime-assigned request id.
func (r *Request) ID() string {
	return native.RequestID(r.ptr)
}

// Operation returns the operation name the request was created for.
func (r *Request) Operation() string {
	return native.RequestOperation(r.ptr)
}

// Element returns the request body for population. The returned Element
// borrows from r.
func (r *Request) Element() (Element, error) {
	var out *native.Element
	if code := native.RequestElements(r.ptr, &out); code != native.StatusOK {
		return Element{}, statusError(code)
	}
	return Element{ptr: out}, nil
}

// Set writes a scalar field of the request body, creating the field when
// absent.
func (r *Request) Set(name string, v any) error {
	el, err := r.Element()
	if err != nil {
		return err
	}
	switch x := v.(type) {
	case bool:
		return Set(el, name, x)
	case int8:
		return Set(el, name, x)
	case int32:
		return Set(el, name, x)
	case int:
		return Set(el, name, int64(x))
	case int64:
		return Set(el, name, x)
	case float32:
		return Set(el, name, x)
	case float64:
		return Set(el, name, x)
	case string:
		return Set(el, name, x)
	case []byte:
		return Set(el, name, x)
	case Name:
		return Set(el, name, x)
	case Datetime:
		return Set(el, name, x)
	default:
		return statusError(native.ErrorIllegalArg)
	}
}

// Discard releases a request that will not be sent.
func (r *Request) Discard() error {
	return statusError(native.RequestDestroy(r.ptr))
}

package native

import (
	"sync"

	"github.com/google/uuid"
)

// RequestHandler produces the response event for one request sent to an
// emulated service. A nil handler at registration installs the echo
// handler, which answers every request with a Response event carrying the
// request body back.
type RequestHandler func(operation string, body *Element) *Event

var serviceRegistry = struct {
	mu       sync.Mutex
	handlers map[string]RequestHandler
}{handlers: map[string]RequestHandler{}}

// RegisterService installs a handler for a service URI. Re-registering a
// URI replaces the previous handler.
func RegisterService(uri string, handler RequestHandler) {
	if handler == nil {
		handler = echoHandler
	}
	serviceRegistry.mu.Lock()
	serviceRegistry.handlers[uri] = handler
	serviceRegistry.mu.Unlock()
}

func lookupService(uri string) (RequestHandler, bool) {
	serviceRegistry.mu.Lock()
	defer serviceRegistry.mu.Unlock()
	h, ok := serviceRegistry.handlers[uri]
	return h, ok
}

func echoHandler(operation string, body *Element) *Event {
	ev := newEvent(EventTypeResponse)
	ev.messages = append(ev.messages, newMessage(NameCreate(operation+"Response"), body))
	return ev
}

// Service is a handle on an opened service. It is owned by the session that
// opened it and stays valid until the session is destroyed.
type Service struct {
	uri     string
	handler RequestHandler
}

func ServiceName(s *Service) string { return s.uri }

// ServiceCreateRequest allocates a request for one of the service's
// operations. The request body is an anonymous sequence the caller fills
// via the element set functions.
func ServiceCreateRequest(s *Service, out **Request, operation string) int32 {
	if operation == "" {
		return ErrorIllegalArg
	}
	*out = &Request{
		service:   s,
		operation: operation,
		id:        uuid.NewString(),
		body:      newElement(NameCreate(operation), DatatypeSequence, false),
	}
	return StatusOK
}

// Request is a mutable element tree addressed to a service operation. It is
// single-owner; the runtime consumes it on send.
type Request struct {
	service   *Service
	operation string
	id        string
	body      *Element
	sent      bool
}

func RequestDestroy(r *Request) int32 {
	if r.sent {
		return ErrorIllegalState
	}
	r.body = nil
	return StatusOK
}

func RequestID(r *Request) string { return r.id }

func RequestOperation(r *Request) string { return r.operation }

func RequestElements(r *Request, out **Element) int32 {
	if r.body == nil {
		return ErrorIllegalState
	}
	*out = r.body
	return StatusOK
}

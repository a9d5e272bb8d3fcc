package mdx

import "github.com/quantfold/mdx/native"

// EventHandler receives events on an asynchronous session. Handlers run on
// dispatcher workers; events for one session arrive in order. A panic in a
// handler is fatal to the process, so handlers that can fail should return
// normally and surface the failure through their own channels.
type EventHandler func(ev *Event, s *Session)

// Session is a connection to the runtime. A session is either synchronous,
// pulling events with NextEvent, or asynchronous, pushing them into an
// EventHandler; the two modes cannot be mixed on one session.
//
// Lifecycle is Start, optionally Stop, then Close. Requests and
// subscriptions are only accepted while started.
type Session struct {
	ptr *native.Session
}

// NewSession creates a synchronous session. Events accumulate on an
// internal queue until pulled with NextEvent or TryNextEvent.
func NewSession(opts *SessionOptions) *Session {
	if opts == nil {
		opts = NewSessionOptions()
	}
	return &Session{ptr: native.SessionCreate(opts.raw, nil, nil)}
}

// NewAsyncSession creates an asynchronous session delivering through
// handler. A nil dispatcher gives the session its own single worker, which
// it starts and stops with its own lifecycle; a shared dispatcher must be
// started and stopped by the caller.
func NewAsyncSession(opts *SessionOptions, handler EventHandler, dispatcher *EventDispatcher) *Session {
	if opts == nil {
		opts = NewSessionOptions()
	}
	s := &Session{}
	var disp *native.EventDispatcher
	if dispatcher != nil {
		disp = dispatcher.ptr
	}
	s.ptr = native.SessionCreate(opts.raw, func(raw *native.Event, _ *native.Session) {
		handler(newEvent(raw, false), s)
	}, disp)
	return s
}

// Start brings the session up and emits a SessionStatus event.
func (s *Session) Start() error {
	return statusError(native.SessionStart(s.ptr))
}

// Stop shuts delivery down. For an asynchronous session with its own
// dispatcher, Stop joins the worker after in-flight callbacks return.
func (s *Session) Stop() error {
	return statusError(native.SessionStop(s.ptr))
}

// Close destroys the session. A started session must be stopped first.
func (s *Session) Close() error {
	return statusError(native.SessionDestroy(s.ptr))
}

// NextEvent blocks until the synchronous session has an event. A zero
// timeout waits forever; expiry yields an EventTimeout event.
func (s *Session) NextEvent(timeoutMs int) (*Event, error) {
	var raw *native.Event
	if code := native.SessionNextEvent(s.ptr, &raw, timeoutMs); code != native.StatusOK {
		return nil, statusError(code)
	}
	return newEvent(raw, true), nil
}

// TryNextEvent pops without blocking, returning ErrTimeout when nothing is
// pending.
func (s *Session) TryNextEvent() (*Event, error) {
	var raw *native.Event
	if code := native.SessionTryNextEvent(s.ptr, &raw); code != native.StatusOK {
		return nil, statusError(code)
	}
	return newEvent(raw, true), nil
}

// OpenService connects the session to the service at uri.
func (s *Session) OpenService(uri string) error {
	if code := native.SessionOpenService(s.ptr, uri); code != native.StatusOK {
		if native.ResultClass(code) == native.ClassNotFound {
			return &NotFoundError{Name: uri, Err: statusError(code)}
		}
		return statusError(code)
	}
	return nil
}

// GetService returns a handle on a previously opened service.
func (s *Session) GetService(uri string) (*Service, error) {
	var out *native.Service
	if code := native.SessionGetService(s.ptr, &out, uri); code != native.StatusOK {
		if native.ResultClass(code) == native.ClassNotFound {
			return nil, &NotFoundError{Name: uri, Err: statusError(code)}
		}
		return nil, statusError(code)
	}
	return &Service{ptr: out}, nil
}

// CreateIdentity returns an authorization handle for use with SendRequest
// and Subscribe.
func (s *Session) CreateIdentity() *Identity {
	return &Identity{ptr: native.IdentityCreate()}
}

// SendRequest sends req and consumes it, returning the correlation id the
// responses carry. An unset cid is replaced by a session-generated
// monotonic one. When queue is non-nil responses land there; otherwise
// they follow the session's delivery path. identity may be nil.
func (s *Session) SendRequest(req *Request, identity *Identity, cid CorrelationID, queue *EventQueue) (CorrelationID, error) {
	var id *native.Identity
	if identity != nil {
		id = identity.ptr
	}
	var q *native.EventQueue
	if queue != nil {
		q = queue.ptr
	}
	raw := cid.nativeValue()
	if code := native.SessionSendRequest(s.ptr, req.ptr, id, &raw, q); code != native.StatusOK {
		return cid, statusError(code)
	}
	return fromNativeCorrelationID(raw), nil
}

// Subscribe starts the subscriptions in list. Each entry produces a
// SubscriptionStatus event tagged with its correlation id. identity may be
// nil.
func (s *Session) Subscribe(list *SubscriptionList, identity *Identity) error {
	var id *native.Identity
	if identity != nil {
		id = identity.ptr
	}
	return statusError(native.SessionSubscribe(s.ptr, list.ptr, id))
}

// Unsubscribe ends the subscriptions in list. Entries never subscribed are
// skipped.
func (s *Session) Unsubscribe(list *SubscriptionList) error {
	return statusError(native.SessionUnsubscribe(s.ptr, list.ptr))
}

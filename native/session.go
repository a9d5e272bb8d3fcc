package native

import (
	"sync"

	"github.com/quantfold/mdx/internal/debug"
)

// Session lifecycle states.
const (
	sessionCreated int32 = iota
	sessionStarted
	sessionStopped
	sessionDestroyed
)

// EventHandler is the asynchronous delivery callback. A session created
// with a handler is asynchronous and never exposes a default queue; a
// session created without one is synchronous and delivers through
// SessionNextEvent.
type EventHandler func(ev *Event, s *Session)

// Session is the connection handle of the emulated runtime. All session
// functions are serialized on an internal lock; the handle itself must not
// be shared across goroutines while being destroyed.
type Session struct {
	mu         sync.Mutex
	state      int32
	options    SessionOptions
	handler    EventHandler
	dispatcher *EventDispatcher
	ownsDisp   bool
	defQueue   *EventQueue
	services   map[string]*Service
	subs       map[CorrelationID]string
	cidCounter uint64
}

// SessionCreate allocates a session. handler nil selects synchronous
// delivery; dispatcher nil with a handler makes the session own a
// single-threaded dispatcher.
func SessionCreate(opts SessionOptions, handler EventHandler, dispatcher *EventDispatcher) *Session {
	s := &Session{
		options:  opts,
		handler:  handler,
		services: map[string]*Service{},
		subs:     map[CorrelationID]string{},
	}
	if handler == nil {
		s.defQueue = EventQueueCreate()
	} else {
		s.dispatcher = dispatcher
		if dispatcher == nil {
			s.dispatcher = EventDispatcherCreate(1)
			s.ownsDisp = true
		}
	}
	return s
}

func SessionStart(s *Session) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != sessionCreated {
		return ErrorIllegalState
	}
	if s.ownsDisp {
		if code := EventDispatcherStart(s.dispatcher); code != StatusOK {
			return code
		}
	}
	s.state = sessionStarted
	if debug.Session() {
		debug.Logf("session: %p started\n", s)
	}
	s.postLocked(statusEvent(EventTypeSessionStatus, "SessionStarted"))
	return StatusOK
}

func SessionStop(s *Session) int32 {
	s.mu.Lock()
	if s.state != sessionStarted {
		s.mu.Unlock()
		return ErrorIllegalState
	}
	s.state = sessionStopped
	if debug.Session() {
		debug.Logf("session: %p stopped\n", s)
	}
	s.postLocked(statusEvent(EventTypeSessionStatus, "SessionTerminated"))
	disp := s.dispatcher
	owns := s.ownsDisp
	s.mu.Unlock()
	if owns {
		EventDispatcherStop(disp)
	}
	return StatusOK
}

func SessionDestroy(s *Session) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == sessionDestroyed {
		return ErrorIllegalState
	}
	if s.state == sessionStarted {
		return ErrorIllegalState
	}
	s.state = sessionDestroyed
	if s.defQueue != nil {
		EventQueuePurge(s.defQueue)
	}
	s.services = nil
	s.subs = nil
	return StatusOK
}

// SessionNextEvent pulls from the default queue of a synchronous session.
func SessionNextEvent(s *Session, out **Event, timeoutMs int) int32 {
	s.mu.Lock()
	if s.state != sessionStarted && s.state != sessionStopped {
		s.mu.Unlock()
		return ErrorIllegalState
	}
	q := s.defQueue
	s.mu.Unlock()
	if q == nil {
		return ErrorUnsupportedOp
	}
	*out = EventQueueNextEvent(q, timeoutMs)
	return StatusOK
}

func SessionTryNextEvent(s *Session, out **Event) int32 {
	s.mu.Lock()
	q := s.defQueue
	st := s.state
	s.mu.Unlock()
	if st == sessionDestroyed {
		return ErrorSessionDestroyed
	}
	if q == nil {
		return ErrorUnsupportedOp
	}
	return EventQueueTryNextEvent(q, out)
}

// postLocked routes an event to the session's delivery path. The caller
// holds s.mu.
func (s *Session) postLocked(ev *Event) {
	if s.defQueue != nil {
		eventQueuePush(s.defQueue, ev)
		return
	}
	s.dispatcher.enqueue(s, ev)
}

func (s *Session) post(ev *Event) {
	s.mu.Lock()
	if s.state == sessionDestroyed {
		s.mu.Unlock()
		EventRelease(ev)
		return
	}
	s.postLocked(ev)
	s.mu.Unlock()
}

func statusEvent(eventType int32, msgType string) *Event {
	ev := newEvent(eventType)
	root := newElement(NameCreate(msgType), DatatypeSequence, false)
	root.null = false
	ev.messages = append(ev.messages, newMessage(NameCreate(msgType), root))
	return ev
}

// SessionOpenService resolves a URI against the service registry. Opening
// an unregistered URI fails with a service-not-found status.
func SessionOpenService(s *Session, uri string) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != sessionStarted {
		return ErrorIllegalState
	}
	if _, ok := s.services[uri]; ok {
		return StatusOK
	}
	h, ok := lookupService(uri)
	if !ok {
		return ErrorServiceNotFound
	}
	s.services[uri] = &Service{uri: uri, handler: h}
	s.postLocked(statusEvent(EventTypeServiceStatus, "ServiceOpened"))
	return StatusOK
}

func SessionGetService(s *Session, out **Service, uri string) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == sessionDestroyed {
		return ErrorSessionDestroyed
	}
	svc, ok := s.services[uri]
	if !ok {
		return ErrorServiceNotFound
	}
	*out = svc
	return StatusOK
}

// SessionSendRequest consumes the request and routes its response event to
// queue when non-nil, otherwise to the session's delivery path. An unset
// cid is overwritten in place with a session-generated one; either way the
// response carries the id at *cid so callers can match it.
func SessionSendRequest(s *Session, r *Request, identity *Identity, cid *CorrelationID, queue *EventQueue) int32 {
	if cid == nil {
		return ErrorIllegalArg
	}
	s.mu.Lock()
	if s.state != sessionStarted {
		s.mu.Unlock()
		return ErrorIllegalState
	}
	if cid.ValueType == CorrelationTypeUnset {
		*cid = CorrelationID{ValueType: CorrelationTypeAutogen, Value: s.cidCounter}
		s.cidCounter++
	}
	s.mu.Unlock()
	if r == nil || r.sent || r.body == nil {
		return ErrorIllegalArg
	}
	r.sent = true
	ev := r.service.handler(r.operation, r.body)
	if ev == nil {
		ev = newEvent(EventTypeRequestStatus)
	}
	for _, m := range ev.messages {
		m.cids = append(m.cids, *cid)
	}
	if queue != nil {
		eventQueuePush(queue, ev)
		return StatusOK
	}
	s.post(ev)
	return StatusOK
}

// SessionSubscribe records each topic under its correlation id and posts a
// SubscriptionStarted status per entry.
func SessionSubscribe(s *Session, list *SubscriptionList, identity *Identity) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != sessionStarted {
		return ErrorIllegalState
	}
	for _, e := range list.entries {
		s.subs[e.cid] = e.topic
		ev := statusEvent(EventTypeSubscriptionStatus, "SubscriptionStarted")
		ev.messages[0].topic = e.topic
		ev.messages[0].cids = append(ev.messages[0].cids, e.cid)
		s.postLocked(ev)
	}
	return StatusOK
}

func SessionUnsubscribe(s *Session, list *SubscriptionList) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != sessionStarted {
		return ErrorIllegalState
	}
	for _, e := range list.entries {
		if _, ok := s.subs[e.cid]; !ok {
			continue
		}
		delete(s.subs, e.cid)
		ev := statusEvent(EventTypeSubscriptionStatus, "SubscriptionTerminated")
		ev.messages[0].topic = e.topic
		ev.messages[0].cids = append(ev.messages[0].cids, e.cid)
		s.postLocked(ev)
	}
	return StatusOK
}

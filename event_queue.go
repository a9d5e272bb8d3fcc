package mdx

import "github.com/quantfold/mdx/native"

// EventQueue routes the events of selected operations away from a
// session's main delivery path. Pass one to Session.SendRequest to consume
// that request's responses synchronously while the rest of the session's
// traffic flows elsewhere.
type EventQueue struct {
	ptr *native.EventQueue
}

func NewEventQueue() *EventQueue {
	return &EventQueue{ptr: native.EventQueueCreate()}
}

// NextEvent blocks until an event arrives. A zero timeout waits forever;
// otherwise expiry yields an event of type EventTimeout rather than an
// error.
func (q *EventQueue) NextEvent(timeoutMs int) *Event {
	return newEvent(native.EventQueueNextEvent(q.ptr, timeoutMs), true)
}

// TryNextEvent pops without blocking. It returns ErrTimeout when the queue
// is empty.
func (q *EventQueue) TryNextEvent() (*Event, error) {
	var raw *native.Event
	if code := native.EventQueueTryNextEvent(q.ptr, &raw); code != native.StatusOK {
		return nil, statusError(code)
	}
	return newEvent(raw, true), nil
}

// Purge drops every pending event.
func (q *EventQueue) Purge() {
	native.EventQueuePurge(q.ptr)
}

// Close destroys the queue, dropping anything still pending. The queue
// must not be used afterwards.
func (q *EventQueue) Close() error {
	return statusError(native.EventQueueDestroy(q.ptr))
}

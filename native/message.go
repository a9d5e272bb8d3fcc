package native

import "sync/atomic"

// Event type tags delivered by the runtime.
const (
	EventTypeAdmin               int32 = 1
	EventTypeSessionStatus       int32 = 2
	EventTypeSubscriptionStatus  int32 = 3
	EventTypeRequestStatus       int32 = 4
	EventTypeResponse            int32 = 5
	EventTypePartialResponse     int32 = 6
	EventTypeSubscriptionData    int32 = 8
	EventTypeServiceStatus       int32 = 9
	EventTypeTimeout             int32 = 10
	EventTypeAuthorizationStatus int32 = 11
	EventTypeResolutionStatus    int32 = 12
	EventTypeTopicStatus         int32 = 13
	EventTypeTokenStatus         int32 = 14
	EventTypeRequest             int32 = 15
	EventTypeUnknown             int32 = -1
)

// Message is a refcounted handle on one message's element tree. The payload
// is immutable after publication, so handles may be shared across
// goroutines; only the refcount itself is mutated.
type Message struct {
	refs    atomic.Int64
	msgType *Name
	topic   string
	root    *Element
	cids    []CorrelationID
}

func newMessage(msgType *Name, root *Element) *Message {
	m := &Message{msgType: msgType, root: root}
	m.refs.Store(1)
	return m
}

func MessageAddRef(m *Message) int32 {
	m.refs.Add(1)
	return StatusOK
}

// MessageRelease drops one reference. The emulated runtime panics on
// underflow instead of corrupting memory the way a real release would.
func MessageRelease(m *Message) int32 {
	if m.refs.Add(-1) < 0 {
		panic("native: message refcount underflow")
	}
	return StatusOK
}

func MessageMessageType(m *Message) *Name { return m.msgType }

func MessageTopicName(m *Message) string { return m.topic }

func MessageElements(m *Message, out **Element) int32 {
	if m.root == nil {
		return ErrorNotInitialized
	}
	*out = m.root
	return StatusOK
}

func MessageNumCorrelationIDs(m *Message) int { return len(m.cids) }

func MessageCorrelationID(m *Message, index int) (CorrelationID, int32) {
	if index < 0 || index >= len(m.cids) {
		return CorrelationID{}, ErrorIndexOutOfRange
	}
	return m.cids[index], StatusOK
}

// Event is a refcounted batch of messages sharing an event type.
type Event struct {
	refs      atomic.Int64
	eventType int32
	messages  []*Message
}

func newEvent(eventType int32) *Event {
	ev := &Event{eventType: eventType}
	ev.refs.Store(1)
	return ev
}

func EventAddRef(ev *Event) int32 {
	ev.refs.Add(1)
	return StatusOK
}

func EventRelease(ev *Event) int32 {
	if ev.refs.Add(-1) < 0 {
		panic("native: event refcount underflow")
	}
	return StatusOK
}

func EventType(ev *Event) int32 { return ev.eventType }

// MessageIterator walks an event's messages in publication order. The
// iterator pins the event for its own lifetime.
type MessageIterator struct {
	event *Event
	next  int
}

func MessageIteratorCreate(ev *Event) *MessageIterator {
	EventAddRef(ev)
	return &MessageIterator{event: ev}
}

func MessageIteratorDestroy(it *MessageIterator) int32 {
	if it.event == nil {
		return ErrorIllegalState
	}
	EventRelease(it.event)
	it.event = nil
	return StatusOK
}

// MessageIteratorNext yields the next message, or ErrorItemNotFound when the
// event is exhausted. The yielded message is NOT add-ref'd; callers that
// keep it past the iterator must take their own reference.
func MessageIteratorNext(it *MessageIterator, out **Message) int32 {
	if it.event == nil {
		return ErrorIllegalState
	}
	if it.next >= len(it.event.messages) {
		return ErrorItemNotFound
	}
	*out = it.event.messages[it.next]
	it.next++
	return StatusOK
}

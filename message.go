package mdx

import (
	"runtime"

	"github.com/quantfold/mdx/native"
)

// Message is one message of an event. The handle is reference counted by
// the runtime; Message takes a reference on construction and drops it from
// a finalizer, so a Message (and any Element read from it) stays valid as
// long as it is reachable.
//
// Messages are safe to hold and read from any goroutine.
type Message struct {
	ptr *native.Message
}

func newMessage(ptr *native.Message, owned bool) *Message {
	if !owned {
		native.MessageAddRef(ptr)
	}
	m := &Message{ptr: ptr}
	runtime.SetFinalizer(m, func(m *Message) {
		native.MessageRelease(m.ptr)
	})
	return m
}

// MessageType returns the interned name identifying the message's schema.
func (m *Message) MessageType() Name {
	return Name{ptr: native.MessageMessageType(m.ptr)}
}

// TopicName returns the subscription topic that produced the message, or
// the empty string for messages outside subscription data.
func (m *Message) TopicName() string {
	return native.MessageTopicName(m.ptr)
}

// Element returns the root of the message's payload tree. The returned
// Element borrows from m and must not outlive it.
func (m *Message) Element() (Element, error) {
	var out *native.Element
	if code := native.MessageElements(m.ptr, &out); code != native.StatusOK {
		return Element{}, statusError(code)
	}
	return Element{ptr: out}, nil
}

// CorrelationIDs returns the ids attached to the message, in order.
func (m *Message) CorrelationIDs() []CorrelationID {
	n := native.MessageNumCorrelationIDs(m.ptr)
	out := make([]CorrelationID, 0, n)
	for i := 0; i < n; i++ {
		raw, code := native.MessageCorrelationID(m.ptr, i)
		if code != native.StatusOK {
			break
		}
		out = append(out, fromNativeCorrelationID(raw))
	}
	return out
}

// CorrelationID returns the first id attached to the message.
func (m *Message) CorrelationID() (CorrelationID, bool) {
	raw, code := native.MessageCorrelationID(m.ptr, 0)
	if code != native.StatusOK {
		return CorrelationID{}, false
	}
	return fromNativeCorrelationID(raw), true
}

func (m *Message) String() string {
	el, err := m.Element()
	if err != nil {
		return m.MessageType().String()
	}
	return el.String()
}

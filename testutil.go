package mdx

import "github.com/quantfold/mdx/native"

// EventBuilder assembles events offline, with message payloads supplied as
// JSON. Built events are indistinguishable from runtime-delivered ones, so
// application event handling can be exercised without a connection.
//
//	ev := mdx.NewEventBuilder(mdx.EventSubscriptionData)
//	ev.AppendMessage("MarketDataEvents", []byte(`{"BID": 99.25}`),
//		mdx.MessageProperties{Topic: "IBM US Equity"})
//	ev.PostTo(session)
type EventBuilder struct {
	event *Event
}

func NewEventBuilder(eventType EventType) *EventBuilder {
	return &EventBuilder{event: newEvent(native.TestUtilCreateEvent(int32(eventType)), true)}
}

// MessageProperties carries the envelope attributes of a built message.
type MessageProperties struct {
	Topic          string
	CorrelationIDs []CorrelationID
}

// AppendMessage adds a message of type msgType whose element tree is built
// from the JSON object in body. Field order in the JSON is preserved.
func (b *EventBuilder) AppendMessage(msgType string, body []byte, props MessageProperties) (*Message, error) {
	var raw *native.Message
	code := native.TestUtilAppendMessage(b.event.ptr, &raw, native.NameCreate(msgType), body)
	if code != native.StatusOK {
		return nil, statusError(code)
	}
	if props.Topic != "" {
		native.TestUtilMessageSetTopic(raw, props.Topic)
	}
	for _, cid := range props.CorrelationIDs {
		native.TestUtilMessageAddCorrelationID(raw, cid.nativeValue())
	}
	return newMessage(raw, false), nil
}

// Event returns the built event.
func (b *EventBuilder) Event() *Event {
	return b.event
}

// PostTo injects the built event into a started session's delivery path,
// through the same queue or dispatcher live events take.
func (b *EventBuilder) PostTo(s *Session) error {
	native.EventAddRef(b.event.ptr)
	if code := native.TestUtilPostEvent(s.ptr, b.event.ptr); code != native.StatusOK {
		native.EventRelease(b.event.ptr)
		return statusError(code)
	}
	return nil
}

// NewTestElement builds a standalone element tree from a JSON object,
// mostly useful in tests of element access and decoding.
func NewTestElement(name string, body []byte) (Element, error) {
	raw, code := native.TestUtilCreateElement(native.NameCreate(name), body)
	if code != native.StatusOK {
		return Element{}, statusError(code)
	}
	return Element{ptr: raw}, nil
}

// RegisterTestService installs an in-process service at uri. A nil handler
// echoes every request body back as the response. Intended for tests and
// offline development.
func RegisterTestService(uri string, handler func(operation string, body Element) *Event) {
	if handler == nil {
		native.RegisterService(uri, nil)
		return
	}
	native.RegisterService(uri, func(operation string, body *native.Element) *native.Event {
		ev := handler(operation, Element{ptr: body})
		if ev == nil {
			return nil
		}
		native.EventAddRef(ev.ptr)
		return ev.ptr
	})
}

package mdx

import (
	"iter"
	"runtime"

	"github.com/quantfold/mdx/native"
)

// EventType classifies the events a session delivers.
type EventType int32

const (
	EventAdmin               EventType = EventType(native.EventTypeAdmin)
	EventSessionStatus       EventType = EventType(native.EventTypeSessionStatus)
	EventSubscriptionStatus  EventType = EventType(native.EventTypeSubscriptionStatus)
	EventRequestStatus       EventType = EventType(native.EventTypeRequestStatus)
	EventResponse            EventType = EventType(native.EventTypeResponse)
	EventPartialResponse     EventType = EventType(native.EventTypePartialResponse)
	EventSubscriptionData    EventType = EventType(native.EventTypeSubscriptionData)
	EventServiceStatus       EventType = EventType(native.EventTypeServiceStatus)
	EventTimeout             EventType = EventType(native.EventTypeTimeout)
	EventAuthorizationStatus EventType = EventType(native.EventTypeAuthorizationStatus)
	EventResolutionStatus    EventType = EventType(native.EventTypeResolutionStatus)
	EventTopicStatus         EventType = EventType(native.EventTypeTopicStatus)
	EventTokenStatus         EventType = EventType(native.EventTypeTokenStatus)
	EventRequest             EventType = EventType(native.EventTypeRequest)
	EventUnknown             EventType = EventType(native.EventTypeUnknown)
)

func (t EventType) String() string {
	switch t {
	case EventAdmin:
		return "Admin"
	case EventSessionStatus:
		return "SessionStatus"
	case EventSubscriptionStatus:
		return "SubscriptionStatus"
	case EventRequestStatus:
		return "RequestStatus"
	case EventResponse:
		return "Response"
	case EventPartialResponse:
		return "PartialResponse"
	case EventSubscriptionData:
		return "SubscriptionData"
	case EventServiceStatus:
		return "ServiceStatus"
	case EventTimeout:
		return "Timeout"
	case EventAuthorizationStatus:
		return "AuthorizationStatus"
	case EventResolutionStatus:
		return "ResolutionStatus"
	case EventTopicStatus:
		return "TopicStatus"
	case EventTokenStatus:
		return "TokenStatus"
	case EventRequest:
		return "Request"
	default:
		return "Unknown"
	}
}

// Event is a batch of messages sharing an event type. Like Message it is
// reference counted under the hood and safe to share across goroutines;
// the handle is released by a finalizer.
type Event struct {
	ptr *native.Event
}

// newEvent wraps a native event. owned takes over the caller's reference;
// otherwise a new one is acquired.
func newEvent(ptr *native.Event, owned bool) *Event {
	if !owned {
		native.EventAddRef(ptr)
	}
	ev := &Event{ptr: ptr}
	runtime.SetFinalizer(ev, func(ev *Event) {
		native.EventRelease(ev.ptr)
	})
	return ev
}

func (ev *Event) Type() EventType {
	return EventType(native.EventType(ev.ptr))
}

// Messages iterates the event's messages in publication order. Each yielded
// message holds its own reference and may be retained past the loop.
func (ev *Event) Messages() iter.Seq[*Message] {
	return func(yield func(*Message) bool) {
		it := native.MessageIteratorCreate(ev.ptr)
		defer native.MessageIteratorDestroy(it)
		for {
			var raw *native.Message
			if native.MessageIteratorNext(it, &raw) != native.StatusOK {
				return
			}
			if !yield(newMessage(raw, false)) {
				return
			}
		}
	}
}

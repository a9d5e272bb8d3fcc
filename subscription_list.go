package mdx

import "github.com/quantfold/mdx/native"

// SubscriptionList batches topic subscriptions for Session.Subscribe and
// Session.Unsubscribe. Each entry carries the correlation id its data
// events will be tagged with.
type SubscriptionList struct {
	ptr *native.SubscriptionList
}

func NewSubscriptionList() *SubscriptionList {
	return &SubscriptionList{ptr: native.SubscriptionListCreate()}
}

// Add appends a topic tagged with cid.
func (l *SubscriptionList) Add(topic string, cid CorrelationID) error {
	return statusError(native.SubscriptionListAdd(l.ptr, topic, cid.nativeValue()))
}

func (l *SubscriptionList) Size() int {
	return native.SubscriptionListSize(l.ptr)
}

// TopicAt returns the topic of the entry at index.
func (l *SubscriptionList) TopicAt(index int) (string, error) {
	topic, code := native.SubscriptionListTopicAt(l.ptr, index)
	if code != native.StatusOK {
		return "", statusError(code)
	}
	return topic, nil
}

// CorrelationIDAt returns the id of the entry at index.
func (l *SubscriptionList) CorrelationIDAt(index int) (CorrelationID, error) {
	raw, code := native.SubscriptionListCorrelationIDAt(l.ptr, index)
	if code != native.StatusOK {
		return CorrelationID{}, statusError(code)
	}
	return fromNativeCorrelationID(raw), nil
}

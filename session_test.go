package mdx

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func startedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// consume the SessionStarted status
	ev, err := s.TryNextEvent()
	if err != nil {
		t.Fatalf("TryNextEvent after start: %v", err)
	}
	if ev.Type() != EventSessionStatus {
		t.Fatalf("first event type = %v, want SessionStatus", ev.Type())
	}
	return s
}

func TestSessionLifecycle(t *testing.T) {
	s := NewSession(nil)
	if err := s.Stop(); err == nil {
		t.Errorf("Stop before Start succeeded")
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(); err == nil {
		t.Errorf("second Start succeeded")
	}
	if err := s.Close(); err == nil {
		t.Errorf("Close while started succeeded")
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err == nil {
		t.Errorf("second Close succeeded")
	}
	if _, err := s.TryNextEvent(); err == nil {
		t.Errorf("TryNextEvent after Close succeeded")
	}
}

func TestSessionPostedEventDelivery(t *testing.T) {
	s := startedSession(t)
	defer func() {
		s.Stop()
		s.Close()
	}()

	b := NewEventBuilder(EventSubscriptionData)
	cid := NewCorrelationID(11)
	if _, err := b.AppendMessage("MarketDataEvents",
		[]byte(`{"BID": 99.25, "ASK": 99.27}`),
		MessageProperties{Topic: "IBM US Equity", CorrelationIDs: []CorrelationID{cid}}); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	if err := b.PostTo(s); err != nil {
		t.Fatalf("PostTo: %v", err)
	}

	ev, err := s.TryNextEvent()
	if err != nil {
		t.Fatalf("TryNextEvent: %v", err)
	}
	if ev.Type() != EventSubscriptionData {
		t.Fatalf("event type = %v", ev.Type())
	}
	var seen int
	for m := range ev.Messages() {
		seen++
		if m.TopicName() != "IBM US Equity" {
			t.Errorf("TopicName() = %q", m.TopicName())
		}
		if got, ok := m.CorrelationID(); !ok || got != cid {
			t.Errorf("CorrelationID() = %v, %v", got, ok)
		}
		el, err := m.Element()
		if err != nil {
			t.Fatalf("Element: %v", err)
		}
		if bid, err := Get[float64](el, "BID"); err != nil || bid != 99.25 {
			t.Errorf("BID = %v, %v", bid, err)
		}
	}
	if seen != 1 {
		t.Errorf("messages seen = %d, want 1", seen)
	}
}

func TestSessionSendRequestEcho(t *testing.T) {
	RegisterTestService("//quantfold/refdata", nil)

	s := startedSession(t)
	defer func() {
		s.Stop()
		s.Close()
	}()

	if err := s.OpenService("//quantfold/refdata"); err != nil {
		t.Fatalf("OpenService: %v", err)
	}
	svc, err := s.GetService("//quantfold/refdata")
	if err != nil {
		t.Fatalf("GetService: %v", err)
	}
	req, err := svc.CreateRequest("HistoricalDataRequest")
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if req.ID() == "" {
		t.Errorf("request id empty")
	}
	if err := req.Set("security", "IBM US Equity"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	q := NewEventQueue()
	cid := NewCorrelationID(99)
	sent, err := s.SendRequest(req, nil, cid, q)
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if sent != cid {
		t.Errorf("SendRequest cid = %v, want %v", sent, cid)
	}

	ev := q.NextEvent(1000)
	if ev.Type() != EventResponse {
		t.Fatalf("response type = %v", ev.Type())
	}
	for m := range ev.Messages() {
		if got, ok := m.CorrelationID(); !ok || got != cid {
			t.Errorf("CorrelationID = %v, %v", got, ok)
		}
		el, err := m.Element()
		if err != nil {
			t.Fatalf("Element: %v", err)
		}
		if sec, err := Get[string](el, "security"); err != nil || sec != "IBM US Equity" {
			t.Errorf("echoed security = %q, %v", sec, err)
		}
	}
}

func TestSessionSendRequestGeneratesCorrelationID(t *testing.T) {
	RegisterTestService("//quantfold/refdata", nil)

	s := startedSession(t)
	defer func() {
		s.Stop()
		s.Close()
	}()

	if err := s.OpenService("//quantfold/refdata"); err != nil {
		t.Fatalf("OpenService: %v", err)
	}
	svc, err := s.GetService("//quantfold/refdata")
	if err != nil {
		t.Fatalf("GetService: %v", err)
	}

	q := NewEventQueue()
	var sent [2]CorrelationID
	for i := range sent {
		req, err := svc.CreateRequest("ReferenceDataRequest")
		if err != nil {
			t.Fatalf("CreateRequest: %v", err)
		}
		sent[i], err = s.SendRequest(req, nil, CorrelationID{}, q)
		if err != nil {
			t.Fatalf("SendRequest: %v", err)
		}
		if sent[i].IsUnset() {
			t.Fatalf("SendRequest %d returned an unset cid", i)
		}
	}
	if sent[0] == sent[1] {
		t.Errorf("generated cids collide: %v", sent[0])
	}
	v0, ok0 := sent[0].Value()
	v1, ok1 := sent[1].Value()
	if !ok0 || !ok1 || v1 != v0+1 {
		t.Errorf("generated cid values = %d (%t), %d (%t), want consecutive", v0, ok0, v1, ok1)
	}

	for i := range sent {
		ev, err := q.TryNextEvent()
		if err != nil {
			t.Fatalf("TryNextEvent %d: %v", i, err)
		}
		for m := range ev.Messages() {
			if got, ok := m.CorrelationID(); !ok || got != sent[i] {
				t.Errorf("response %d cid = %v, %v, want %v", i, got, ok, sent[i])
			}
		}
	}
}

func TestSessionOpenUnknownService(t *testing.T) {
	s := startedSession(t)
	defer func() {
		s.Stop()
		s.Close()
	}()
	err := s.OpenService("//quantfold/never-registered")
	if err == nil {
		t.Fatalf("OpenService on unregistered URI succeeded")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestSessionSubscriptionStatus(t *testing.T) {
	s := startedSession(t)
	defer func() {
		s.Stop()
		s.Close()
	}()

	list := NewSubscriptionList()
	if err := list.Add("IBM US Equity", NewCorrelationID(1)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := list.Add("MSFT US Equity", NewCorrelationID(2)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if list.Size() != 2 {
		t.Fatalf("Size() = %d", list.Size())
	}
	if err := s.Subscribe(list, nil); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	var topics []string
	for i := 0; i < 2; i++ {
		ev, err := s.TryNextEvent()
		if err != nil {
			t.Fatalf("TryNextEvent %d: %v", i, err)
		}
		if ev.Type() != EventSubscriptionStatus {
			t.Fatalf("event %d type = %v", i, ev.Type())
		}
		for m := range ev.Messages() {
			if m.MessageType().String() != "SubscriptionStarted" {
				t.Errorf("message type = %v", m.MessageType())
			}
			topics = append(topics, m.TopicName())
		}
	}
	want := []string{"IBM US Equity", "MSFT US Equity"}
	if diff := cmp.Diff(want, topics); diff != "" {
		t.Errorf("topics mismatch (-want +got):\n%s", diff)
	}

	if err := s.Unsubscribe(list); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
	ev, err := s.TryNextEvent()
	if err != nil {
		t.Fatalf("TryNextEvent after unsubscribe: %v", err)
	}
	for m := range ev.Messages() {
		if m.MessageType().String() != "SubscriptionTerminated" {
			t.Errorf("message type = %v", m.MessageType())
		}
	}
}

func TestAsyncSessionOrdering(t *testing.T) {
	var mu sync.Mutex
	var got []string
	done := make(chan struct{})
	const n = 20

	handler := func(ev *Event, _ *Session) {
		for m := range ev.Messages() {
			mu.Lock()
			got = append(got, m.TopicName())
			if len(got) == n {
				close(done)
			}
			mu.Unlock()
		}
	}

	disp := NewEventDispatcher(4)
	if err := disp.Start(); err != nil {
		t.Fatalf("dispatcher Start: %v", err)
	}
	defer disp.Stop()

	s := NewAsyncSession(nil, func(ev *Event, s *Session) {
		if ev.Type() == EventSubscriptionData {
			handler(ev, s)
		}
	}, disp)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer func() {
		s.Stop()
		s.Close()
	}()

	var want []string
	for i := 0; i < n; i++ {
		topic := fmt.Sprintf("topic-%02d", i)
		want = append(want, topic)
		b := NewEventBuilder(EventSubscriptionData)
		if _, err := b.AppendMessage("MarketDataEvents", []byte(`{"BID": 1}`),
			MessageProperties{Topic: topic}); err != nil {
			t.Fatalf("AppendMessage: %v", err)
		}
		if err := b.PostTo(s); err != nil {
			t.Fatalf("PostTo %d: %v", i, err)
		}
	}

	<-done
	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("delivery order mismatch (-want +got):\n%s", diff)
	}
}

func TestAsyncSessionHasNoQueue(t *testing.T) {
	s := NewAsyncSession(nil, func(*Event, *Session) {}, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer func() {
		s.Stop()
		s.Close()
	}()
	if _, err := s.TryNextEvent(); err == nil {
		t.Errorf("TryNextEvent on asynchronous session succeeded")
	}
}

package native

import (
	"sync"
	"time"

	"github.com/quantfold/mdx/internal/debug"
)

// EventQueue is an unbounded FIFO of events, used to route the responses of
// one request away from a session's main delivery path.
type EventQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	events []*Event
}

func EventQueueCreate() *EventQueue {
	q := &EventQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func EventQueueDestroy(q *EventQueue) int32 {
	EventQueuePurge(q)
	return StatusOK
}

func eventQueuePush(q *EventQueue, ev *Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	depth := len(q.events)
	q.mu.Unlock()
	if debug.Queue() {
		debug.Logf("queue: %p push type=%d depth=%d\n", q, ev.eventType, depth)
	}
	q.cond.Signal()
}

// EventQueueNextEvent blocks until an event arrives. timeoutMs zero waits
// forever; on expiry a synthetic Timeout event is returned instead of an
// error, mirroring the wire runtime's contract.
func EventQueueNextEvent(q *EventQueue, timeoutMs int) *Event {
	var deadline time.Time
	if timeoutMs > 0 {
		deadline = time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	}
	q.mu.Lock()
	for len(q.events) == 0 {
		if timeoutMs > 0 {
			remain := time.Until(deadline)
			if remain <= 0 {
				q.mu.Unlock()
				return newEvent(EventTypeTimeout)
			}
			waitLocked(q, remain)
		} else {
			q.cond.Wait()
		}
	}
	ev := q.events[0]
	q.events = q.events[1:]
	q.mu.Unlock()
	return ev
}

// waitLocked waits on the queue's condition for at most d. sync.Cond has no
// timed wait, so a timer goroutine broadcasts on expiry.
func waitLocked(q *EventQueue, d time.Duration) {
	t := time.AfterFunc(d, func() {
		q.mu.Lock()
		q.mu.Unlock()
		q.cond.Broadcast()
	})
	q.cond.Wait()
	t.Stop()
}

// EventQueueTryNextEvent pops without blocking. Returns ErrorTimeout when
// the queue is empty.
func EventQueueTryNextEvent(q *EventQueue, out **Event) int32 {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return ErrorTimeout
	}
	*out = q.events[0]
	q.events = q.events[1:]
	return StatusOK
}

// EventQueuePurge drops all pending events, releasing each one.
func EventQueuePurge(q *EventQueue) int32 {
	q.mu.Lock()
	pending := q.events
	q.events = nil
	q.mu.Unlock()
	for _, ev := range pending {
		EventRelease(ev)
	}
	return StatusOK
}

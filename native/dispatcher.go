package native

import (
	"fmt"
	"os"
	"sync"

	"github.com/quantfold/mdx/internal/debug"
)

// EventDispatcher fans events out to session callbacks over a fixed pool of
// worker goroutines. Events for one session are delivered in publication
// order; sessions make progress independently of each other.
type EventDispatcher struct {
	mu       sync.Mutex
	tasks    chan func()
	pending  map[*Session][]*Event
	draining map[*Session]bool
	workers  int
	started  bool
	stopped  bool
	wg       sync.WaitGroup
}

func EventDispatcherCreate(numThreads int) *EventDispatcher {
	if numThreads < 1 {
		numThreads = 1
	}
	return &EventDispatcher{
		workers:  numThreads,
		pending:  map[*Session][]*Event{},
		draining: map[*Session]bool{},
	}
}

func EventDispatcherStart(d *EventDispatcher) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return ErrorIllegalState
	}
	d.started = true
	d.tasks = make(chan func(), 64)
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for task := range d.tasks {
				if task == nil {
					return
				}
				task()
			}
		}()
	}
	return StatusOK
}

// EventDispatcherStop joins the workers after queued tasks finish. The
// channel is never closed; each worker exits on a nil sentinel, so an
// enqueue racing with stop cannot send on a closed channel. Events
// enqueued after stop are dropped. A drain task posted behind the
// sentinels never runs, so once the workers have joined any events still
// pending are released here.
func EventDispatcherStop(d *EventDispatcher) int32 {
	d.mu.Lock()
	if !d.started || d.stopped {
		d.mu.Unlock()
		return ErrorIllegalState
	}
	d.stopped = true
	d.mu.Unlock()
	for i := 0; i < d.workers; i++ {
		d.tasks <- nil
	}
	d.wg.Wait()
	d.mu.Lock()
	leftover := d.pending
	d.pending = map[*Session][]*Event{}
	d.draining = map[*Session]bool{}
	d.mu.Unlock()
	for _, evs := range leftover {
		for _, ev := range evs {
			EventRelease(ev)
		}
	}
	return StatusOK
}

func (d *EventDispatcher) enqueue(s *Session, ev *Event) {
	d.mu.Lock()
	if !d.started || d.stopped {
		d.mu.Unlock()
		EventRelease(ev)
		return
	}
	d.pending[s] = append(d.pending[s], ev)
	if debug.Dispatch() {
		debug.Logf("dispatch: enqueue session=%p type=%d pending=%d\n", s, ev.eventType, len(d.pending[s]))
	}
	if d.draining[s] {
		d.mu.Unlock()
		return
	}
	d.draining[s] = true
	d.mu.Unlock()
	d.tasks <- func() { d.drain(s) }
}

// drain delivers the session's pending events one at a time. Only one drain
// task per session is in flight, which is what serializes delivery.
func (d *EventDispatcher) drain(s *Session) {
	for {
		d.mu.Lock()
		if len(d.pending[s]) == 0 {
			d.draining[s] = false
			d.mu.Unlock()
			return
		}
		ev := d.pending[s][0]
		d.pending[s] = d.pending[s][1:]
		d.mu.Unlock()
		deliver(s, ev)
	}
}

// deliver invokes the session callback, converting a panic into a fatal
// log record before terminating the process. A callback that panics has
// broken the runtime's invariants and there is no state to resume into.
func deliver(s *Session, ev *Event) {
	defer func() {
		if r := recover(); r != nil {
			logEmit(LogSeverityFatal, fmt.Sprintf("panic in session event handler: %v", r))
			os.Exit(2)
		}
	}()
	s.handler(ev, s)
	EventRelease(ev)
}

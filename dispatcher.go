package mdx

import "github.com/quantfold/mdx/native"

// EventDispatcher owns the worker pool that runs asynchronous session
// callbacks. One dispatcher may serve many sessions; events for a given
// session are always delivered in order, while distinct sessions proceed
// in parallel.
type EventDispatcher struct {
	ptr *native.EventDispatcher
}

// NewEventDispatcher makes a dispatcher with numThreads workers. Values
// below one are raised to one.
func NewEventDispatcher(numThreads int) *EventDispatcher {
	return &EventDispatcher{ptr: native.EventDispatcherCreate(numThreads)}
}

// Start spins up the worker pool. A dispatcher starts at most once.
func (d *EventDispatcher) Start() error {
	return statusError(native.EventDispatcherStart(d.ptr))
}

// Stop joins the workers after in-flight callbacks finish. Events enqueued
// after Stop are dropped.
func (d *EventDispatcher) Stop() error {
	return statusError(native.EventDispatcherStop(d.ptr))
}

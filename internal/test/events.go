package test

import (
	"context"
	"sync"

	"github.com/polkiloo/quoteflow/internal/domain/model"
)

// EventRecorder captures published events. Err, when set, is returned from
// every Publish after the event was recorded.
type EventRecorder struct {
	mu     sync.Mutex
	Events []model.Event
	Err    error
}

// Publish records event.
func (r *EventRecorder) Publish(ctx context.Context, event model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
	return r.Err
}

// Types returns the recorded event types in publish order.
func (r *EventRecorder) Types() []model.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]model.EventType, 0, len(r.Events))
	for _, e := range r.Events {
		types = append(types, e.Type)
	}
	return types
}

// Snapshot returns a copy of the recorded events.
func (r *EventRecorder) Snapshot() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Event(nil), r.Events...)
}

// NotifierStub records deliveries and delegates to NotifyFn when set.
type NotifierStub struct {
	NotifyFn  func(context.Context, model.Event) error
	mu        sync.Mutex
	Delivered []model.Event
	Calls     int
}

// Notify delivers event.
func (n *NotifierStub) Notify(ctx context.Context, event model.Event) error {
	n.mu.Lock()
	n.Calls++
	n.mu.Unlock()
	if n.NotifyFn != nil {
		if err := n.NotifyFn(ctx, event); err != nil {
			return err
		}
	}
	n.mu.Lock()
	n.Delivered = append(n.Delivered, event)
	n.mu.Unlock()
	return nil
}

// Lock exposes internal mutex for external synchronization.
func (n *NotifierStub) Lock() { n.mu.Lock() }

// Unlock releases previously acquired lock.
func (n *NotifierStub) Unlock() { n.mu.Unlock() }

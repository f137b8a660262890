package events

import (
	"context"
	"sync"

	"github.com/polkiloo/quoteflow/internal/domain/model"
)

const defaultMemoryCapacity = 1024

// Memory is a process-local Queue backed by a buffered channel.
type Memory struct {
	ch     chan model.Event
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewMemory creates a Memory queue holding up to capacity events.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &Memory{ch: make(chan model.Event, capacity), done: make(chan struct{})}
}

// Publish enqueues event without blocking.
func (m *Memory) Publish(ctx context.Context, event model.Event) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrQueueClosed
	}
	select {
	case m.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// Consume waits for the next event.
func (m *Memory) Consume(ctx context.Context) (model.Event, error) {
	select {
	case e := <-m.ch:
		return e, nil
	case <-ctx.Done():
		return model.Event{}, ctx.Err()
	case <-m.done:
		return model.Event{}, ErrQueueClosed
	}
}

// Len reports the number of buffered events.
func (m *Memory) Len() int {
	return len(m.ch)
}

// Close stops accepting events and wakes blocked consumers.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

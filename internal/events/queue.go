// Package events buffers committed domain events between the use cases that
// produce them and the dispatcher that delivers them.
package events

import (
	"context"
	"errors"

	"github.com/polkiloo/quoteflow/internal/domain/model"
)

var (
	// ErrQueueFull is returned by Publish when the buffer has no room.
	ErrQueueFull = errors.New("event queue is full")
	// ErrQueueClosed is returned once Close was called.
	ErrQueueClosed = errors.New("event queue is closed")
)

// Queue is a FIFO of events.
type Queue interface {
	Publish(ctx context.Context, event model.Event) error
	// Consume blocks until an event is available or ctx is done.
	Consume(ctx context.Context) (model.Event, error)
	Close() error
}

package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/quoteflow/internal/adapter/webhook"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/events"
)

// Source is the queue the dispatcher drains and re-queues failed events to.
type Source interface {
	Publish(ctx context.Context, event model.Event) error
	Consume(ctx context.Context) (model.Event, error)
}

// Dispatcher delivers queued events through a Notifier with a pool of
// workers. It never touches financial state.
type Dispatcher struct {
	source      Source
	notifier    webhook.Notifier
	workers     int
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger

	jobs   chan model.Event
	cancel context.CancelFunc
	done   chan struct{}
	mu     sync.Mutex
}

// NewDispatcher constructs the notification worker pool.
func NewDispatcher(source Source, notifier webhook.Notifier, workers, maxAttempts int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Dispatcher{
		source:      source,
		notifier:    notifier,
		workers:     workers,
		maxAttempts: maxAttempts,
		retryDelay:  500 * time.Millisecond,
		logger:      logger,
	}
}

// Start launches background delivery.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.jobs = make(chan model.Event, d.workers)
	d.done = make(chan struct{})

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return d.dispatch(gctx) })
	for i := 0; i < d.workers; i++ {
		g.Go(func() error { return d.worker(gctx) })
	}

	go func() {
		defer close(d.done)
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Error("dispatcher stopped", slog.String("error", err.Error()))
		}
	}()
}

// Stop cancels delivery and waits for all workers to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel = nil
	d.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (d *Dispatcher) dispatch(ctx context.Context) error {
	defer close(d.jobs)
	for {
		event, err := d.source.Consume(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, events.ErrQueueClosed) {
				d.logger.Info("event queue closed, dispatch stopped")
				return nil
			}
			d.logger.Error("consume event failed", slog.String("error", err.Error()))
			if !sleep(ctx, d.retryDelay) {
				return ctx.Err()
			}
			continue
		}
		select {
		case <-ctx.Done():
			d.requeue(event)
			return ctx.Err()
		case d.jobs <- event:
		}
	}
}

func (d *Dispatcher) worker(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-d.jobs:
			if !ok {
				return nil
			}
			d.deliver(ctx, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event model.Event) {
	err := d.notifier.Notify(ctx, event)
	if err == nil {
		return
	}
	event.Attempts++

	var (
		tooMany   webhook.TooManyRequestsError
		permanent webhook.PermanentError
	)
	switch {
	case errors.As(err, &permanent):
		d.logger.Error("notification rejected",
			slog.String("event", string(event.Type)),
			slog.String("event_id", event.ID.String()),
			slog.Int("status", permanent.StatusCode),
		)
		return
	case errors.As(err, &tooMany):
		d.logger.Warn("notification rate limited", slog.Duration("retry_after", tooMany.RetryAfter))
		if !sleep(ctx, tooMany.RetryAfter) {
			d.requeue(event)
			return
		}
	}

	if event.Attempts >= d.maxAttempts {
		d.logger.Error("notification dropped",
			slog.String("event", string(event.Type)),
			slog.String("event_id", event.ID.String()),
			slog.Int("attempts", event.Attempts),
			slog.String("error", err.Error()),
		)
		return
	}

	d.logger.Warn("notification failed, requeueing",
		slog.String("event", string(event.Type)),
		slog.String("event_id", event.ID.String()),
		slog.Int("attempts", event.Attempts),
		slog.String("error", err.Error()),
	)
	sleep(ctx, d.retryDelay*time.Duration(event.Attempts))
	d.requeue(event)
}

// requeue must not depend on the run context, which may already be cancelled.
func (d *Dispatcher) requeue(event model.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.source.Publish(ctx, event); err != nil {
		d.logger.Error("requeue event failed",
			slog.String("event", string(event.Type)),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

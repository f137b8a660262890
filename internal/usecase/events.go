package usecase

import (
	"context"
	"log/slog"

	"github.com/polkiloo/quoteflow/internal/domain/model"
)

// EventPublisher accepts committed domain events for asynchronous delivery.
type EventPublisher interface {
	Publish(ctx context.Context, event model.Event) error
}

// publish runs only after the owning transaction committed. Failures are
// logged and never reach the caller.
func publish(ctx context.Context, log *slog.Logger, pub EventPublisher, events ...model.Event) {
	ctx = context.WithoutCancel(ctx)
	for _, e := range events {
		if err := pub.Publish(ctx, e); err != nil {
			log.Error("publish event",
				slog.String("event", string(e.Type)),
				slog.Int64("order_id", e.OrderID),
				slog.Any("error", err),
			)
		}
	}
}

package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/quoteflow/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewQueueDefaultsToMemory(t *testing.T) {
	q, err := newQueue(queueParams{Config: &config.Config{}, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := q.(*Memory); !ok {
		t.Fatalf("expected *Memory, got %T", q)
	}
}

func TestNewQueueUsesRedisWhenConfigured(t *testing.T) {
	original := newRedisQueue
	t.Cleanup(func() { newRedisQueue = original })

	var gotURL string
	newRedisQueue = func(ctx context.Context, url string) (Queue, error) {
		gotURL = url
		return &Redis{client: &redisListStub{}, key: DefaultRedisKey}, nil
	}

	q, err := newQueue(queueParams{Config: &config.Config{RedisURL: "redis://cache:6379/1"}, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := q.(*Redis); !ok || gotURL != "redis://cache:6379/1" {
		t.Fatalf("expected redis queue for %q, got %T", gotURL, q)
	}
}

func TestNewQueuePropagatesRedisError(t *testing.T) {
	original := newRedisQueue
	t.Cleanup(func() { newRedisQueue = original })
	boom := errors.New("dial failed")
	newRedisQueue = func(context.Context, string) (Queue, error) { return nil, boom }

	if _, err := newQueue(queueParams{Config: &config.Config{RedisURL: "redis://x"}, Logger: discardLogger()}); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}

func TestRegisterLifecycleClosesQueue(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	q := NewMemory(1)
	registerLifecycle(lc, q)

	lc.RequireStart()
	lc.RequireStop()

	if _, err := q.Consume(context.Background()); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("expected queue closed on stop, got %v", err)
	}
}

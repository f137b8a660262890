package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/quoteflow/internal/config"
)

// Module provides the event queue. REDIS_URL selects the Redis backend,
// otherwise events stay in process memory.
var Module = fx.Options(
	fx.Provide(newQueue),
	fx.Invoke(registerLifecycle),
)

type queueParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

var newRedisQueue = func(ctx context.Context, url string) (Queue, error) {
	return NewRedis(ctx, url)
}

func newQueue(p queueParams) (Queue, error) {
	if p.Config.RedisURL == "" {
		p.Logger.Info("using in-memory event queue")
		return NewMemory(defaultMemoryCapacity), nil
	}
	q, err := newRedisQueue(context.Background(), p.Config.RedisURL)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("using redis event queue", slog.String("key", DefaultRedisKey))
	return q, nil
}

func registerLifecycle(lc fx.Lifecycle, q Queue) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return q.Close()
		},
	})
}

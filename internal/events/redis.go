package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/polkiloo/quoteflow/internal/domain/model"
)

// DefaultRedisKey is the list events are pushed to.
const DefaultRedisKey = "quoteflow:events"

const blockTimeout = 2 * time.Second

type redisClient interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Redis is a Queue backed by a Redis list. Events survive restarts and can be
// consumed by any replica.
type Redis struct {
	client redisClient
	key    string
}

// NewRedis connects to the Redis server at rawURL.
func NewRedis(ctx context.Context, rawURL string) (*Redis, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client, key: DefaultRedisKey}, nil
}

// Publish pushes event as JSON to the head of the list.
func (r *Redis) Publish(ctx context.Context, event model.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := r.client.LPush(ctx, r.key, payload).Err(); err != nil {
		return fmt.Errorf("push event: %w", err)
	}
	return nil
}

// Consume pops the oldest event, polling in short blocking intervals so that
// cancellation of ctx is observed promptly.
func (r *Redis) Consume(ctx context.Context) (model.Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return model.Event{}, err
		}
		values, err := r.client.BRPop(ctx, blockTimeout, r.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return model.Event{}, ctxErr
			}
			if errors.Is(err, redis.ErrClosed) {
				return model.Event{}, ErrQueueClosed
			}
			return model.Event{}, fmt.Errorf("pop event: %w", err)
		}
		if len(values) != 2 {
			return model.Event{}, fmt.Errorf("pop event: unexpected reply %v", values)
		}
		var event model.Event
		if err := json.Unmarshal([]byte(values[1]), &event); err != nil {
			return model.Event{}, fmt.Errorf("decode event: %w", err)
		}
		return event, nil
	}
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

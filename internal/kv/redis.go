package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter implements Adapter on top of a Redis client.
// Values are stored without TTL; saved looks do not expire.
type RedisAdapter struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed adapter.
func NewRedis(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (a *RedisAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := a.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return val, true, nil
}

func (a *RedisAdapter) Set(ctx context.Context, key, value string) error {
	if err := a.client.Set(ctx, key, value, 0).Err(); err != nil {
		return &PersistenceError{Key: key, Err: err}
	}
	return nil
}

func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := a.client.Del(ctx, key).Err(); err != nil {
		return &PersistenceError{Key: key, Err: err}
	}
	return nil
}

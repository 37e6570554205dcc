package favorites

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/shobi-backend/pkg/redis"
)

type keyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	FavoritesKey(slot string) string
}

// RedisSlot stores each slot under shobi:favorites:<name> without expiry.
type RedisSlot struct {
	client keyValueStore
}

func NewRedisSlot(client keyValueStore) *RedisSlot {
	return &RedisSlot{client: client}
}

func (r *RedisSlot) Read(ctx context.Context, name string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.client.FavoritesKey(name))
	if redis.IsNil(err) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("redis get favorites: %w", err)
	}
	return []byte(value), nil
}

func (r *RedisSlot) Write(ctx context.Context, name string, payload []byte) error {
	if err := r.client.Set(ctx, r.client.FavoritesKey(name), string(payload), 0); err != nil {
		return fmt.Errorf("redis set favorites: %w", err)
	}
	return nil
}

func (r *RedisSlot) Backend() string { return "redis" }

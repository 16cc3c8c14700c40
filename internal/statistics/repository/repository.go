// Package repository caches rendered statistics views.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Repository stores rendered views by key. A miss is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// KV is the part of the Redis client the cache uses.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisRepository struct {
	client KV
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewRedis creates a cache backed by Redis keys that expire after ttl.
func NewRedis(client KV, ttl time.Duration, logger *zap.SugaredLogger) Repository {
	return &redisRepository{client: client, ttl: ttl, logger: logger}
}

func (r *redisRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debugw("cache miss", "key", key)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *redisRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

type nopRepository struct{}

// NewNop returns a cache that never hits.
func NewNop() Repository {
	return nopRepository{}
}

func (nopRepository) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (nopRepository) Set(context.Context, string, []byte) error { return nil }

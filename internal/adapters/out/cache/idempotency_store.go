// Package cache keeps short-lived request state in Redis.
package cache

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// DefaultIdempotencyTTL bounds how long a key is remembered. A retry after
// that falls back to the database's unique key.
const DefaultIdempotencyTTL = 24 * time.Hour

// DefaultLockTTL bounds how long a claim outlives a request that crashed
// before releasing it.
const DefaultLockTTL = 30 * time.Second

// RedisIdempotencyStore claims idempotency keys with SETNX and maps them to
// the id of the result the first request produced.
type RedisIdempotencyStore struct {
	rdb       *redis.Client
	resultTTL time.Duration
	lockTTL   time.Duration
}

// NewRedisIdempotencyStore keeps results for resultTTL and claims for lockTTL.
// Non-positive values select the defaults.
func NewRedisIdempotencyStore(rdb *redis.Client, resultTTL, lockTTL time.Duration) *RedisIdempotencyStore {
	if resultTTL <= 0 {
		resultTTL = DefaultIdempotencyTTL
	}
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &RedisIdempotencyStore{rdb: rdb, resultTTL: resultTTL, lockTTL: lockTTL}
}

func (s *RedisIdempotencyStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	return s.rdb.SetNX(ctx, lockKey(scope, key), "1", s.lockTTL).Result()
}

func (s *RedisIdempotencyStore) Unlock(ctx context.Context, scope, key string) error {
	return s.rdb.Del(ctx, lockKey(scope, key)).Err()
}

func (s *RedisIdempotencyStore) Remember(ctx context.Context, scope, key, value string) error {
	return s.rdb.Set(ctx, resultKey(scope, key), value, s.resultTTL).Err()
}

func (s *RedisIdempotencyStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, resultKey(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func lockKey(scope, key string) string {
	return "idemp:" + scope + ":" + key
}

func resultKey(scope, key string) string {
	return "idemp:map:" + scope + ":" + key
}

var _ ports.IdempotencyStore = (*RedisIdempotencyStore)(nil)

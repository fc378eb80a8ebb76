package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface is the disposable key/value store. A miss is reported by
// Get as redis.Nil; callers treat every cache error as a miss.
type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
}

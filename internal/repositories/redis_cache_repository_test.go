package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-dashboard/internal/repositories"
)

func newCache(t *testing.T) (repositories.CacheRepositoryInterface, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return repositories.NewRedisCacheRepository(client), mr
}

func TestRedisCache_SetGetDel(t *testing.T) {
	ctx := context.Background()
	cache, _ := newCache(t)

	require.NoError(t, cache.Set(ctx, "settings:theme:1", "light", time.Minute))
	v, err := cache.Get(ctx, "settings:theme:1")
	require.NoError(t, err)
	assert.Equal(t, "light", v)

	require.NoError(t, cache.Del(ctx, "settings:theme:1"))
	_, err = cache.Get(ctx, "settings:theme:1")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestRedisCache_IncrAndExpire(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)

	n, err := cache.Incr(ctx, "login_attempts:a@b.c")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ok, err := cache.Expire(ctx, "login_attempts:a@b.c", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)
	_, err = cache.Get(ctx, "login_attempts:a@b.c")
	assert.ErrorIs(t, err, redis.Nil)
}

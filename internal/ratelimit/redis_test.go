package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisTestStore(t *testing.T, limit int, window time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, limit, window), mr
}

func TestRedisStore_AllowsUnderLimit(t *testing.T) {
	store, _ := newRedisTestStore(t, 5, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		res, err := store.RecordHit(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 5-i-1, res.Remaining)
	}
}

func TestRedisStore_BlocksOverLimit(t *testing.T) {
	store, _ := newRedisTestStore(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.RecordHit(ctx, "1.2.3.4")
		require.NoError(t, err)
	}

	res, err := store.RecordHit(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.GreaterOrEqual(t, res.RetryAfter, time.Second)
	assert.LessOrEqual(t, res.RetryAfter, time.Minute)
}

func TestRedisStore_KeysIndependent(t *testing.T) {
	store, _ := newRedisTestStore(t, 1, time.Minute)
	ctx := context.Background()

	res, err := store.RecordHit(ctx, "1.1.1.1")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = store.RecordHit(ctx, "2.2.2.2")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRedisStore_KeyExpires(t *testing.T) {
	store, mr := newRedisTestStore(t, 1, time.Minute)
	ctx := context.Background()

	res, err := store.RecordHit(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = store.RecordHit(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.False(t, res.Allowed)

	// TTL is window + grace; after it fires the client starts clean.
	mr.FastForward(time.Minute + 31*time.Second)

	assert.False(t, mr.Exists(redisKeyPrefix+"1.2.3.4"))
}

func TestRedisStore_ErrorWhenUnavailable(t *testing.T) {
	store, mr := newRedisTestStore(t, 1, time.Minute)
	mr.Close()

	_, err := store.RecordHit(context.Background(), "1.2.3.4")
	assert.Error(t, err)
}

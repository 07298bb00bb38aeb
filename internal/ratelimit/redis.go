package ratelimit

import (
	"fmt"
	"strconv"
	"time"

	"context"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:chat:"

// RedisStore is a sliding-window Store backed by Redis sorted sets, for
// deployments running more than one API replica behind a load balancer.
type RedisStore struct {
	client redis.Cmdable
	limit  int
	window time.Duration
}

// NewRedisStore creates a store allowing limit requests per window.
func NewRedisStore(client redis.Cmdable, limit int, window time.Duration) *RedisStore {
	return &RedisStore{client: client, limit: limit, window: window}
}

func (s *RedisStore) RecordHit(ctx context.Context, key string) (Result, error) {
	rkey := redisKeyPrefix + key
	now := time.Now()
	windowStart := float64(now.Add(-s.window).UnixMilli())

	pipe := s.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, rkey, "-inf", strconv.FormatFloat(windowStart, 'f', 0, 64))
	countCmd := pipe.ZCard(ctx, rkey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit pipeline (clean+count): %w", err)
	}

	count := int(countCmd.Val())
	if count >= s.limit {
		// Oldest surviving entry decides when capacity frees up.
		retry := s.window
		if zs, err := s.client.ZRangeWithScores(ctx, rkey, 0, 0).Result(); err == nil && len(zs) > 0 {
			oldest := time.UnixMilli(int64(zs[0].Score))
			retry = oldest.Add(s.window).Sub(now)
			if retry < time.Second {
				retry = time.Second
			}
		}
		return Result{Allowed: false, Limit: s.limit, RetryAfter: retry}, nil
	}

	pipe2 := s.client.Pipeline()
	member := fmt.Sprintf("%d:%d", now.UnixNano(), count)
	pipe2.ZAdd(ctx, rkey, redis.Z{Score: float64(now.UnixMilli()), Member: member})
	pipe2.Expire(ctx, rkey, s.window+30*time.Second)
	if _, err := pipe2.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit pipeline (add): %w", err)
	}

	return Result{Allowed: true, Limit: s.limit, Remaining: s.limit - count - 1}, nil
}

// Sweep is a no-op; key TTLs bound memory on the Redis side.
func (s *RedisStore) Sweep(context.Context) {}

package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter consulted before ingestion. Allow
// reports whether the caller is under the limit; an error means the limiter
// itself is unavailable, which callers must surface, not swallow.
type Limiter interface {
	Allow(ctx context.Context, key string, max int, window time.Duration) (bool, error)
}

// RedisLimiter implements Limiter on a Redis counter with TTL: read the
// counter, reject when at the limit, otherwise INCR+EXPIRE in one pipeline.
type RedisLimiter struct {
	client *redis.Client
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, max int, window time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("rl:%s", key)

	current, err := l.client.Get(ctx, redisKey).Result()
	if err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to read rate limit counter: %w", err)
	}
	if err == nil {
		count, convErr := strconv.Atoi(current)
		if convErr == nil && count >= max {
			return false, nil
		}
	}

	pipe := l.client.Pipeline()
	pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	return true, nil
}

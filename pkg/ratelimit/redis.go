package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// noExpiry is what TTL reports for a key that exists but never expires.
const noExpiry = time.Duration(-1)

// RedisLimiter is a fixed-window counter shared by every instance pointing
// at the same Redis.
type RedisLimiter struct {
	client redis.Cmdable
	config Config
}

func NewRedisLimiter(client redis.Cmdable, config Config) *RedisLimiter {
	return &RedisLimiter{client: client, config: config.normalized()}
}

// NewRedisClient parses a redis:// URL and checks the server is reachable.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := keyPrefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}

	// the first hit of a window starts its clock
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.config.Window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire %s: %w", key, err)
		}
	}

	if count <= int64(l.config.Requests) {
		return true, nil
	}

	// A key without a TTL never resets; give it a fresh window.
	ttl, err := l.client.TTL(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit ttl %s: %w", key, err)
	}
	if ttl == noExpiry {
		if err := l.client.Expire(ctx, redisKey, l.config.Window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire %s: %w", key, err)
		}
	}

	return false, nil
}

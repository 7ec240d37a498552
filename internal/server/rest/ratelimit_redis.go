package rest

import (
	"context"
	"time"

	"github.com/gymfitness/membership/internal/logging"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix   = "gymfitness:ratelimit:"
	redisDialTimeout = 2 * time.Second
	redisOpTimeout   = 250 * time.Millisecond
)

// redisCounter is the subset of the Redis client the limiter needs.
type redisCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
	Close() error
}

// redisRateLimiter shares windows across server instances. Redis failures
// let the request through.
type redisRateLimiter struct {
	client  redisCounter
	logger  logging.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewRedisRateLimiter connects to Redis and fails if it is unreachable.
func NewRedisRateLimiter(ctx context.Context, addr, password string, db int, l logging.Logger) (RateLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: redisDialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return newRedisRateLimiter(client, l), nil
}

func newRedisRateLimiter(client redisCounter, l logging.Logger) *redisRateLimiter {
	return &redisRateLimiter{
		client:  client,
		logger:  l.With("module", "redis_rate_limiter"),
		timeout: redisOpTimeout,
		now:     time.Now,
	}
}

func (rl *redisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) RateDecision {
	if limit <= 0 {
		return RateDecision{Allowed: true}
	}
	if window <= 0 {
		window = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, rl.timeout)
	defer cancel()

	redisKey := redisKeyPrefix + key

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		rl.logger.Error(ctx, "redis rate limiter error", "op", "incr", "error", err)
		return RateDecision{Allowed: true}
	}
	// The first hit opens the window.
	if count == 1 {
		if err := rl.client.Expire(ctx, redisKey, window).Err(); err != nil {
			rl.logger.Error(ctx, "redis rate limiter error", "op", "expire", "error", err)
		}
	}
	ttl, err := rl.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl <= 0 {
		ttl = window
	}

	return RateDecision{
		Allowed:   int(count) <= limit,
		Count:     int(count),
		WindowEnd: rl.now().Add(ttl),
	}
}

func (rl *redisRateLimiter) Close() {
	if rl.client != nil {
		_ = rl.client.Close()
	}
}

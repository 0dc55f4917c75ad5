package ratelimit

import (
	"context"
	"fmt"

	red "portfolio-backend/internal/infra/redis"
)

var _ Limiter = (*RedisLimiter)(nil)

// RedisLimiter shares one fixed window across all replicas via INCR+EXPIRE.
// The first increment of a key opens the window; the TTL closes it.
type RedisLimiter struct {
	client red.RedisClient
	prefix string
	cfg    Config
}

func NewRedisLimiter(client red.RedisClient, prefix string, cfg Config) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, cfg: cfg}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	k := fmt.Sprintf("rate_limit:%s:%s", r.prefix, key)
	count, err := r.client.Incr(ctx, k)
	if err != nil {
		return Result{}, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, k, r.cfg.Window); err != nil {
			return Result{}, err
		}
	}
	if count > int64(r.cfg.Limit) {
		return Result{Allowed: false, Remaining: 0}, nil
	}
	return Result{Allowed: true, Remaining: r.cfg.Limit - int(count)}, nil
}

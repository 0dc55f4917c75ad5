package ratelimit

import (
	"context"
	"time"
)

// Result of one admission check.
type Result struct {
	Allowed   bool
	Remaining int
}

// Limiter is a fixed-window per-key admission counter. Implementations
// are advisory: a limiter error must not take down the request path.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Config for one fixed window.
type Config struct {
	Limit  int
	Window time.Duration
}

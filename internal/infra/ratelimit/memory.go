package ratelimit

import (
	"context"
	"sync"
	"time"
)

var _ Limiter = (*MemoryLimiter)(nil)

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps one fixed-window counter per key in process memory.
// State is per-instance: under horizontal scaling each replica counts
// independently, which is accepted for this service.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	cfg     Config
	now     func() time.Time

	stop chan struct{}
	once sync.Once
}

// NewMemoryLimiter creates a limiter and starts a background sweep that
// drops expired entries every sweepInterval, bounding memory for an
// unbounded key space. Call Stop on shutdown.
func NewMemoryLimiter(cfg Config, sweepInterval time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		entries: make(map[string]*entry),
		cfg:     cfg,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go l.sweepLoop(sweepInterval)
	}
	return l
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		l.entries[key] = &entry{count: 1, resetAt: now.Add(l.cfg.Window)}
		return Result{Allowed: true, Remaining: l.cfg.Limit - 1}, nil
	}
	if e.count >= l.cfg.Limit {
		return Result{Allowed: false, Remaining: 0}, nil
	}
	e.count++
	return Result{Allowed: true, Remaining: l.cfg.Limit - e.count}, nil
}

func (l *MemoryLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *MemoryLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, key)
		}
	}
}

// Stop terminates the background sweep.
func (l *MemoryLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// size is used by tests to assert the sweep bounds the map.
func (l *MemoryLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

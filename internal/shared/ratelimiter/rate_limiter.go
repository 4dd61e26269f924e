// Package ratelimiter throttles repeated operations to a fixed number per interval.
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter blocks the caller until another operation is allowed.
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter allows at most limit operations per interval.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	interval  time.Duration
	count     int
	lastReset time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRateLimiter creates a RateLimiter. A non-positive limit disables throttling.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// Wait counts one operation and sleeps until the next window when the limit is exceeded.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit <= 0 {
		return nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count <= rl.limit {
		return nil
	}

	if d := rl.interval - now.Sub(rl.lastReset); d > 0 {
		slog.Info("rate limit reached, waiting", "limit", rl.limit, "wait", d)
		if err := rl.sleep(ctx, d); err != nil {
			return err
		}
	}
	rl.count = 1
	rl.lastReset = rl.now()
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

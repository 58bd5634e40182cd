// Package ratelimit paces probe requests against the target server.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum interval between probe requests. It is a
// token bucket with burst 1, so workers drain requests one pacing slot
// at a time regardless of pool size.
type Pacer struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// NewPacer creates a pacer with the given inter-request interval.
// A non-positive interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
	}
}

// Wait blocks until the next request is allowed or ctx is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Allow reports whether a request is allowed right now without blocking.
func (p *Pacer) Allow() bool {
	return p.limiter.Allow()
}

// Interval returns the configured inter-request interval.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// IntervalPacer is a token bucket of size one refilled once per interval.
// The first Wait returns immediately; each later Wait returns no sooner than
// interval after the previous one.
type IntervalPacer struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// NewIntervalPacer creates a pacer. A non-positive interval disables pacing.
func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &IntervalPacer{
		limiter:  rate.NewLimiter(limit, 1),
		interval: interval,
	}
}

// Wait blocks until the next slot or until ctx is done
func (p *IntervalPacer) Wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("pacer wait: %w", err)
	}
	return nil
}

// Interval returns the configured spacing
func (p *IntervalPacer) Interval() time.Duration {
	return p.interval
}

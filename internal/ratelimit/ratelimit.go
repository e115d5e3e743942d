// Package ratelimit bounds the outbound request rate to the completion API.
//
// The limiter is a throttle, not a circuit breaker: when the bound would be
// exceeded, Wait blocks until capacity frees instead of failing. One limiter
// instance is shared by every dispatch, regardless of which credential a
// request uses, and it counts every retry attempt.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limiter allows at most Calls requests per Period, globally.
type Limiter struct {
	lim *rate.Limiter
}

// New creates a Limiter permitting calls requests per period. It panics on
// non-positive arguments since there is no meaningful rate to enforce.
func New(calls int, period time.Duration) *Limiter {
	if calls <= 0 || period <= 0 {
		panic(fmt.Sprintf("ratelimit: invalid bound %d per %s", calls, period))
	}
	return &Limiter{
		lim: rate.NewLimiter(rate.Limit(float64(calls)/period.Seconds()), calls),
	}
}

// Wait blocks until a request may proceed or the context is canceled.
// Safe for concurrent use.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.lim.Wait(ctx)
}

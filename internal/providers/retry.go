package providers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type rateLimitError struct{}

func (e *rateLimitError) Error() string { return "rate limited" }

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

type serverError struct {
	statusCode int
	body       string
}

func (e *serverError) Error() string {
	return "server error (status " + strconv.Itoa(e.statusCode) + "): " + e.body
}

type transportError struct {
	err error
}

func (e *transportError) Error() string { return "transport error: " + e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

// IsTransient reports whether an error belongs to the retryable class:
// connection failures, timeouts, rate limiting, and server-side HTTP
// failures. Everything else (auth errors, malformed payloads) propagates
// without retry.
func IsTransient(err error) bool {
	var (
		rl *rateLimitError
		se *serverError
		te *transportError
	)
	return errors.As(err, &rl) || errors.As(err, &se) || errors.As(err, &te)
}

// Policy retries a fallible operation on transient failures with
// exponential backoff. Tries is the total attempt count, Delay the wait
// after the first failed attempt, Backoff the multiplier applied after
// each failed attempt. The final attempt's outcome is returned as-is; no
// fallback value is synthesized.
type Policy struct {
	Tries   int
	Delay   time.Duration
	Backoff float64
	Logger  *zap.SugaredLogger

	// sleep is swapped out by tests to observe delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy returns the standard policy: 3 attempts, 1s initial delay,
// doubling after each failure.
func DefaultPolicy(logger *zap.SugaredLogger) Policy {
	return Policy{Tries: 3, Delay: time.Second, Backoff: 2, Logger: logger}
}

// Do runs fn up to p.Tries times. Non-transient errors return immediately.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	log := p.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}
	tries := p.Tries
	if tries < 1 {
		tries = 1
	}

	delay := p.Delay
	var lastErr error
	for attempt := 1; ; attempt++ {
		lastErr = fn()
		if lastErr == nil || !IsTransient(lastErr) || attempt >= tries {
			return lastErr
		}
		log.Warnw("transient failure, retrying",
			"error", lastErr, "attempt", attempt, "delay", delay)
		if err := sleep(ctx, delay); err != nil {
			return err
		}
		delay = time.Duration(float64(delay) * p.Backoff)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

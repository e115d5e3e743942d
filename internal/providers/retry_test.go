package providers

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPolicy_SucceedsAfterTransientFailures(t *testing.T) {
	var delays []time.Duration
	p := Policy{
		Tries:   3,
		Delay:   time.Second,
		Backoff: 2,
		sleep: func(_ context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		},
	}

	attempts := 0
	err := p.Do(context.Background(), func() error {
		attempts++
		if attempts <= 2 {
			return &transportError{err: errors.New("connection refused")}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	// Delays grow by the backoff multiplier after each failed attempt.
	if len(delays) != 2 || delays[0] != time.Second || delays[1] != 2*time.Second {
		t.Errorf("delays = %v, want [1s 2s]", delays)
	}
}

func TestPolicy_ExhaustsAndReturnsLastError(t *testing.T) {
	p := Policy{
		Tries:   3,
		Delay:   time.Millisecond,
		Backoff: 2,
		sleep:   func(context.Context, time.Duration) error { return nil },
	}

	attempts := 0
	err := p.Do(context.Background(), func() error {
		attempts++
		return &serverError{statusCode: 503, body: "unavailable"}
	})
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	var se *serverError
	if !errors.As(err, &se) {
		t.Errorf("err = %v, want the final serverError", err)
	}
}

func TestPolicy_NonTransientPropagatesImmediately(t *testing.T) {
	p := DefaultPolicy(nil)
	p.sleep = func(context.Context, time.Duration) error {
		t.Fatal("should not sleep for non-transient errors")
		return nil
	}

	attempts := 0
	err := p.Do(context.Background(), func() error {
		attempts++
		return &authError{message: "bad key"}
	})
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	if !IsAuthError(err) {
		t.Errorf("err = %v, want auth error", err)
	}
}

func TestPolicy_ContextCancelDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{Tries: 3, Delay: time.Minute, Backoff: 2}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := p.Do(ctx, func() error {
		return &rateLimitError{}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestPolicy_ZeroTriesStillRunsOnce(t *testing.T) {
	p := Policy{}
	attempts := 0
	if err := p.Do(context.Background(), func() error {
		attempts++
		return nil
	}); err != nil {
		t.Fatalf("Do error: %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

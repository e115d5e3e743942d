package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_BurstPassesImmediately(t *testing.T) {
	l := New(5, time.Second)

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond,
		"first burst should not block")
}

func TestLimiter_BlocksWhenExceeded(t *testing.T) {
	l := New(2, 100*time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	// The third call must wait for a slot to free.
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestLimiter_ContextCancel(t *testing.T) {
	l := New(1, time.Hour)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx))
}

func TestNew_InvalidBound(t *testing.T) {
	assert.Panics(t, func() { New(0, time.Second) })
	assert.Panics(t, func() { New(5, 0) })
}

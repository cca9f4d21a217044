package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalPacer_FirstWaitIsImmediate(t *testing.T) {
	p := NewIntervalPacer(time.Hour)

	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))

	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestIntervalPacer_SpacesCalls(t *testing.T) {
	p := NewIntervalPacer(25 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Wait(ctx))
	}

	assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)
	assert.Equal(t, 25*time.Millisecond, p.Interval())
}

func TestIntervalPacer_ZeroIntervalDisablesPacing(t *testing.T) {
	p := NewIntervalPacer(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, p.Wait(ctx))
	}

	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestIntervalPacer_HonoursCancellation(t *testing.T) {
	p := NewIntervalPacer(time.Hour)
	require.NoError(t, p.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, p.Wait(ctx))
}

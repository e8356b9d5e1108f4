package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacing_WaitZeroIsImmediate(t *testing.T) {
	p := Pacing{}
	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestPacing_WaitRespectsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := Pacing{Base: time.Hour}
	err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPacing_WaitFailureRespectsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := Pacing{FailureBackoff: time.Hour}
	assert.ErrorIs(t, p.WaitFailure(ctx), context.Canceled)
}

func TestPacing_ZeroDelayStillReportsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Even with no delay, a cancelled run must not start another unit.
	assert.ErrorIs(t, Pacing{}.Wait(ctx), context.Canceled)
}

func TestPacing_JitterStaysInRange(t *testing.T) {
	p := Pacing{Base: time.Millisecond, Jitter: 5 * time.Millisecond}
	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}

package engine

import (
	"context"
	"math/rand"
	"time"
)

// Pacing is the per-engine scheduling policy applied between query units.
// Base is the fixed inter-unit delay, Jitter the randomized extra applied on
// top of it, FailureBackoff the longer pause after a unit's provider error.
type Pacing struct {
	Base           time.Duration
	Jitter         time.Duration
	FailureBackoff time.Duration
}

// Wait blocks for the base delay plus a random jitter in [0, Jitter).
// It returns early with the context error when the run is cancelled.
func (p Pacing) Wait(ctx context.Context) error {
	d := p.Base
	if p.Jitter > 0 {
		d += time.Duration(rand.Int63n(int64(p.Jitter)))
	}
	return sleep(ctx, d)
}

// WaitFailure blocks for the extended post-failure backoff.
func (p Pacing) WaitFailure(ctx context.Context) error {
	return sleep(ctx, p.FailureBackoff)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Package latency simulates network and processing delay for the mock services.
package latency

import (
	"context"
	"sync"
	"time"
)

// Sleeper suspends the caller for a simulated duration
type Sleeper interface {
	// Sleep waits at least d, or returns ctx.Err() if ctx ends first
	Sleep(ctx context.Context, d time.Duration) error
}

// Real waits on the wall clock, scaled by Scale. A scale of zero or less
// returns immediately.
type Real struct {
	Scale float64
}

// NewReal returns a Real sleeper with the given scale
func NewReal(scale float64) *Real {
	return &Real{Scale: scale}
}

// Sleep implements Sleeper
func (r *Real) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.Scale <= 0 || d <= 0 {
		return nil
	}

	wait := time.Duration(float64(d) * r.Scale)
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recorder never blocks and remembers every requested duration
type Recorder struct {
	mu    sync.Mutex
	calls []time.Duration
}

// NewRecorder returns an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Sleep implements Sleeper
func (r *Recorder) Sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.calls = append(r.calls, d)
	r.mu.Unlock()
	return ctx.Err()
}

// Calls returns a copy of the recorded durations
func (r *Recorder) Calls() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]time.Duration, len(r.calls))
	copy(out, r.calls)
	return out
}

// Last returns the most recent duration, or zero
func (r *Recorder) Last() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return 0
	}
	return r.calls[len(r.calls)-1]
}

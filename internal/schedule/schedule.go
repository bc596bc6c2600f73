// Package schedule abstracts delayed execution for the synchronization
// engine's retry and repair ladders.
//
// Production code uses Timers, which defers to the runtime's timer
// goroutines. Tests and the CLI's demonstration commands use Immediate,
// which runs every scheduled function inline so that multi-step ladders
// execute synchronously and their ordering and bounds can be asserted
// without wall-clock delays.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Scheduler schedules delayed work.
type Scheduler interface {
	// AfterFunc arranges for fn to run after d. It must not block the
	// caller. fn runs at most once.
	AfterFunc(d time.Duration, fn func())

	// Sleep blocks until d elapses or ctx is done, returning ctx's error
	// in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// Timers is the wall-clock Scheduler.
type Timers struct{}

// AfterFunc runs fn on a timer goroutine after d.
func (Timers) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Sleep blocks until d elapses or ctx is done.
func (Timers) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Immediate is a Scheduler that runs scheduled functions inline and
// records the delays it was asked for. Safe for concurrent use.
type Immediate struct {
	mu     sync.Mutex
	delays []time.Duration
}

// AfterFunc records d and runs fn before returning.
func (s *Immediate) AfterFunc(d time.Duration, fn func()) {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	fn()
}

// Sleep records d and returns immediately, honoring a done context.
func (s *Immediate) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

// Delays returns a copy of the recorded delays in scheduling order.
func (s *Immediate) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.delays))
	copy(out, s.delays)
	return out
}

package utils

import (
	"sync"
	"time"
)

// MinIntervalGuard debounces a user-triggered action: once a trigger is
// accepted, further triggers inside the window are dropped outright, not
// queued. It protects the issue-submission action against rapid double
// clicks.
type MinIntervalGuard struct {
	mu     sync.Mutex
	window time.Duration
	last   time.Time
	now    func() time.Time
}

// NewMinIntervalGuard creates a guard with the given window.
func NewMinIntervalGuard(window time.Duration) *MinIntervalGuard {
	return NewMinIntervalGuardWithClock(window, time.Now)
}

// NewMinIntervalGuardWithClock creates a guard reading time from clock,
// which tests can replace with a controllable one.
func NewMinIntervalGuardWithClock(window time.Duration, clock func() time.Time) *MinIntervalGuard {
	return &MinIntervalGuard{window: window, now: clock}
}

// TryAcquire reports whether the trigger may proceed, and on success opens
// a fresh window.
func (g *MinIntervalGuard) TryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if !g.last.IsZero() && now.Sub(g.last) < g.window {
		return false
	}
	g.last = now
	return true
}

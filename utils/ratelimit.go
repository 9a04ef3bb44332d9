package utils

import (
	"sync"
	"time"
)

// RateLimiter enforces a minimum interval between successive calls. The
// Nominatim usage policy asks for at most one request per second, so the
// bulk geocoding path routes every lookup through one of these. This is a
// scheduling throttle, not a retry mechanism: a failed call is still
// counted and never replayed.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewRateLimiter creates a RateLimiter with the given minimum interval.
// A zero or negative interval disables waiting.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{interval: interval}
}

// Wait blocks until the configured interval has elapsed since the previous
// call. The first call never waits.
func (r *RateLimiter) Wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.interval > 0 && !r.last.IsZero() {
		if elapsed := time.Since(r.last); elapsed < r.interval {
			time.Sleep(r.interval - elapsed)
		}
	}
	r.last = time.Now()
}

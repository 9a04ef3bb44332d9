package utils

import (
	"testing"
	"time"
)

// fakeClock advances only when told to, so guard windows are deterministic.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func TestGuardDropsTriggerInsideWindow(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	guard := NewMinIntervalGuardWithClock(1200*time.Millisecond, clock.now)

	if !guard.TryAcquire() {
		t.Fatal("first trigger should be accepted")
	}

	clock.advance(300 * time.Millisecond)
	if guard.TryAcquire() {
		t.Error("trigger inside the window should be dropped")
	}

	clock.advance(900 * time.Millisecond) // 1.2s since the accepted trigger
	if !guard.TryAcquire() {
		t.Error("trigger after the window should be accepted")
	}
}

func TestGuardDroppedTriggerDoesNotExtendWindow(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	guard := NewMinIntervalGuardWithClock(time.Second, clock.now)

	if !guard.TryAcquire() {
		t.Fatal("first trigger should be accepted")
	}

	// Hammer the guard; none of these should push the window forward.
	for i := 0; i < 5; i++ {
		clock.advance(150 * time.Millisecond)
		if guard.TryAcquire() {
			t.Fatalf("trigger %d at %v into the window should be dropped", i, time.Duration(i+1)*150*time.Millisecond)
		}
	}

	clock.advance(300 * time.Millisecond) // 1.05s after the accepted trigger
	if !guard.TryAcquire() {
		t.Error("window must be measured from the accepted trigger, not the dropped ones")
	}
}

func TestGuardFirstTriggerAlwaysAccepted(t *testing.T) {
	guard := NewMinIntervalGuard(time.Hour)
	if !guard.TryAcquire() {
		t.Error("a fresh guard should accept the first trigger")
	}
}

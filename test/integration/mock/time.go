package mock

import (
	"sync"
	"time"
)

// Time is a controllable clock. Until SetCurrentTime is called it follows the wall clock.
type Time struct {
	mu      sync.RWMutex
	current time.Time
	pinned  bool
}

func NewTime() *Time {
	return &Time{}
}

// SetCurrentTime pins the clock to currentTime.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime
	t.pinned = true
}

// Advance moves a pinned clock forward by d.
func (t *Time) Advance(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = t.current.Add(d)
}

// Reset returns the clock to wall time.
func (t *Time) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pinned = false
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.pinned {
		return t.current
	}
	return time.Now()
}

package testutil

import (
	"sync"
	"time"
)

// Clock provides a deterministic wall clock for tests.
//
// Each call to Now advances the clock by one second, so recorded
// timestamps are distinct but reproducible across runs.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Clock struct {
	mu    sync.Mutex
	base  time.Time
	ticks int64
}

// NewClock creates a clock starting at base.
//
// The first call to Now() returns base.
func NewClock(base time.Time) *Clock {
	return &Clock{base: base}
}

// Now returns the current time and advances the clock by one second.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.base.Add(time.Duration(c.ticks) * time.Second)
	c.ticks++
	return t
}

package store

import "sync/atomic"

// clock is the monotonic logical clock stamping every appended event.
//
// All events carry a strictly increasing seq from this clock. This ensures:
// - Deterministic ordering (no wall-clock race conditions)
// - Replay produces identical order
//
// Thread-safety: clock is safe for concurrent use (atomic operations),
// though Append's single-writer mutex means only one goroutine typically
// calls next().
type clock struct {
	seq atomic.Int64
}

// newClockAt creates a clock starting at a specific sequence number.
// Used on Open to resume from the last persisted position.
func newClockAt(start int64) *clock {
	c := &clock{}
	c.seq.Store(start)
	return c
}

// next returns the next sequence number and increments the clock.
func (c *clock) next() int64 {
	return c.seq.Add(1)
}

// current returns the current sequence number without incrementing.
func (c *clock) current() int64 {
	return c.seq.Load()
}

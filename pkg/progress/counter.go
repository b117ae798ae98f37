package progress

import (
	"sync/atomic"
)

// Counter is a lock-free byte counter. It is the base of the other
// reporters and is used on its own when nothing should be drawn.
type Counter struct {
	total   atomic.Int64
	current atomic.Int64
	stopped atomic.Bool
}

// NewCounter returns a Counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Start records the expected total. It does not reset bytes already added,
// so a reporter can be seeded before or after Start.
func (c *Counter) Start(total int64) {
	if total < 0 {
		total = 0
	}
	c.total.Store(total)
}

// Add records n more bytes. Non-positive deltas are ignored so the count
// never decreases.
func (c *Counter) Add(n int64) {
	if n > 0 {
		c.current.Add(n)
	}
}

func (c *Counter) Current() int64 {
	return c.current.Load()
}

// Total returns the value passed to Start.
func (c *Counter) Total() int64 {
	return c.total.Load()
}

func (c *Counter) Stop() {
	c.stopped.Store(true)
}

// Stopped reports whether Stop has been called.
func (c *Counter) Stopped() bool {
	return c.stopped.Load()
}

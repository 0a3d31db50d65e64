package vramcon

import "sync/atomic"

// Counter is a process-lifetime 32-bit event count. It is never reset and
// wraps from 0xFFFFFFFF to 0.
type Counter struct {
	v atomic.Uint32
}

// NewCounter returns a counter holding start.
func NewCounter(start uint32) *Counter {
	c := &Counter{}
	c.v.Store(start)
	return c
}

// Load returns the current value
func (c *Counter) Load() uint32 { return c.v.Load() }

// Next returns the current value and then increments (post-increment).
func (c *Counter) Next() uint32 {
	return c.v.Add(1) - 1
}

// Inc increments and returns the new value (pre-increment).
func (c *Counter) Inc() uint32 {
	return c.v.Add(1)
}

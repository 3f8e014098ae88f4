package order

import "sync/atomic"

// Counter hands out order numbers starting at 1. It is safe for concurrent
// use.
type Counter struct {
	last atomic.Int64
}

func NewCounter() *Counter {
	return &Counter{}
}

// Next issues the next order number.
func (c *Counter) Next() int64 {
	return c.last.Add(1)
}

// Current returns the last issued number, or 0 if none was issued yet.
func (c *Counter) Current() int64 {
	return c.last.Load()
}

package waitk

import "sync/atomic"

// Counter hands out increasing ids, starting at its seed
type Counter struct {
	next int64
}

// NewCounter starting at start
func NewCounter(start int64) *Counter {
	return &Counter{next: start}
}

// Next id
func (c *Counter) Next() int64 {
	return atomic.AddInt64(&c.next, 1) - 1
}

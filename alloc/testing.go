package alloc

import (
	"sync"
	"sync/atomic"
)

// Counting wraps another Allocator and keeps statistics, so tests can
// assert that a facility returns every byte it takes.
type Counting struct {
	inner Allocator

	allocates     atomic.Int64
	deallocates   atomic.Int64
	reallocates   atomic.Int64
	zeroAllocates atomic.Int64
	refused       atomic.Int64
	outstanding   atomic.Int64 // net bytes currently held by callers
}

// NewCounting wraps inner, or Default when inner is nil.
func NewCounting(inner Allocator) *Counting {
	if inner == nil {
		inner = Default()
	}
	return &Counting{inner: inner}
}

// CountingStats is a point-in-time snapshot of a Counting allocator.
type CountingStats struct {
	Allocates        int64
	Deallocates      int64
	Reallocates      int64
	ZeroAllocates    int64
	Refused          int64
	OutstandingBytes int64
}

// Stats returns a snapshot of the counters.
func (c *Counting) Stats() CountingStats {
	return CountingStats{
		Allocates:        c.allocates.Load(),
		Deallocates:      c.deallocates.Load(),
		Reallocates:      c.reallocates.Load(),
		ZeroAllocates:    c.zeroAllocates.Load(),
		Refused:          c.refused.Load(),
		OutstandingBytes: c.outstanding.Load(),
	}
}

// Balanced reports whether every allocated byte has been released.
func (c *Counting) Balanced() bool {
	return c.outstanding.Load() == 0
}

func (c *Counting) Allocate(size int) []byte {
	c.allocates.Add(1)
	p := c.inner.Allocate(size)
	if p == nil {
		c.refused.Add(1)
		return nil
	}
	c.outstanding.Add(int64(len(p)))
	return p
}

func (c *Counting) Deallocate(p []byte) {
	c.deallocates.Add(1)
	if p != nil {
		c.outstanding.Add(-int64(len(p)))
	}
	c.inner.Deallocate(p)
}

func (c *Counting) Reallocate(p []byte, size int) []byte {
	c.reallocates.Add(1)
	q := c.inner.Reallocate(p, size)
	switch {
	case size < 0:
		c.refused.Add(1)
	case p == nil:
		if q == nil {
			c.refused.Add(1)
		} else {
			c.outstanding.Add(int64(len(q)))
		}
	case size == 0:
		c.outstanding.Add(-int64(len(p)))
	case q == nil:
		c.refused.Add(1)
	default:
		c.outstanding.Add(int64(len(q) - len(p)))
	}
	return q
}

func (c *Counting) ZeroAllocate(count, size int) []byte {
	c.zeroAllocates.Add(1)
	p := c.inner.ZeroAllocate(count, size)
	if p == nil {
		c.refused.Add(1)
		return nil
	}
	c.outstanding.Add(int64(len(p)))
	return p
}

// Failing wraps another Allocator and refuses allocations once armed, so
// tests can reach failure paths deterministically. Release paths
// (Deallocate, Reallocate to zero) always pass through.
type Failing struct {
	inner Allocator

	mu    sync.Mutex
	armed bool
	allow int // allocating calls still permitted once armed
}

// NewFailing wraps inner, or Default when inner is nil. The allocator
// behaves normally until armed with FailAfter.
func NewFailing(inner Allocator) *Failing {
	if inner == nil {
		inner = Default()
	}
	return &Failing{inner: inner}
}

// FailAfter arms the allocator: the next n allocating calls succeed and
// every one after that is refused. FailAfter(0) refuses immediately.
func (f *Failing) FailAfter(n int) {
	f.mu.Lock()
	f.armed = true
	f.allow = n
	f.mu.Unlock()
}

// Disarm stops refusing.
func (f *Failing) Disarm() {
	f.mu.Lock()
	f.armed = false
	f.mu.Unlock()
}

func (f *Failing) refuse() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.armed {
		return false
	}
	if f.allow > 0 {
		f.allow--
		return false
	}
	return true
}

func (f *Failing) Allocate(size int) []byte {
	if f.refuse() {
		return nil
	}
	return f.inner.Allocate(size)
}

func (f *Failing) Deallocate(p []byte) {
	f.inner.Deallocate(p)
}

func (f *Failing) Reallocate(p []byte, size int) []byte {
	if size != 0 && f.refuse() {
		return nil
	}
	return f.inner.Reallocate(p, size)
}

func (f *Failing) ZeroAllocate(count, size int) []byte {
	if f.refuse() {
		return nil
	}
	return f.inner.ZeroAllocate(count, size)
}

package alloc

// Allocator is the allocation capability accepted by every facility that
// owns storage.
//
// Implementations:
//   - Default: the process-heap allocator
//   - Counting: wraps another allocator and keeps statistics
//   - Failing: wraps another allocator and refuses allocations on cue
//
// Implementations must be safe for concurrent use. Copies of an Allocator
// interface value share the implementer's state.
type Allocator interface {
	// Allocate returns a slice of exactly size bytes, or nil when the
	// allocation is refused or size is negative. Size zero yields a
	// non-nil empty slice.
	Allocate(size int) []byte

	// Deallocate releases a slice previously obtained from this allocator.
	// Passing nil is a no-op.
	Deallocate(p []byte)

	// Reallocate resizes p, preserving the leading min(len(p), size) bytes.
	// A nil p behaves like Allocate. Size zero behaves like Deallocate and
	// returns nil. When the resize is refused the return is nil and p is
	// untouched and still valid.
	Reallocate(p []byte, size int) []byte

	// ZeroAllocate returns a zero-filled slice of count*size bytes, or nil
	// when either factor is negative, the product overflows, or the
	// allocation is refused.
	ZeroAllocate(count, size int) []byte
}

// Valid reports whether a is usable. The zero value of the interface (nil)
// is not. Facilities call this on every allocator they ingest and report
// an invalid-argument failure instead of touching a nil capability.
func Valid(a Allocator) bool {
	return a != nil
}

// ReallocateOrFree resizes p through a. When the resize is refused the
// original p is deallocated, so callers never need a second branch to
// release it. The boolean reports success; on failure the returned slice
// is nil and p has already been released.
func ReallocateOrFree(a Allocator, p []byte, size int) ([]byte, bool) {
	if !Valid(a) {
		return nil, false
	}
	if size == 0 {
		a.Deallocate(p)
		return nil, true
	}
	q := a.Reallocate(p, size)
	if q == nil {
		a.Deallocate(p)
		return nil, false
	}
	return q, true
}

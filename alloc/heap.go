package alloc

import (
	"fmt"
	"math"
	"os"
)

// Runtime debug flag for allocation logging - controlled by UTILKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("UTILKIT_LOG_ALLOC") != ""

// heapAllocator backs Default. It is stateless: slices come from the Go
// runtime heap, and Deallocate only drops the reference so the collector
// can reclaim it.
type heapAllocator struct{}

var defaultAllocator Allocator = heapAllocator{}

// Default returns the process-heap allocator. The same value serves the
// whole process; it carries no state.
func Default() Allocator {
	return defaultAllocator
}

func (heapAllocator) Allocate(size int) []byte {
	if size < 0 {
		return nil
	}
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] allocate size=%d\n", size)
	}
	return make([]byte, size)
}

func (heapAllocator) Deallocate(p []byte) {
	if logAlloc && p != nil {
		fmt.Fprintf(os.Stderr, "[ALLOC] deallocate size=%d\n", len(p))
	}
}

func (h heapAllocator) Reallocate(p []byte, size int) []byte {
	switch {
	case size < 0:
		return nil
	case p == nil:
		return h.Allocate(size)
	case size == 0:
		h.Deallocate(p)
		return nil
	case size == len(p):
		return p
	}
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] reallocate %d -> %d\n", len(p), size)
	}
	// Always allocate fresh storage so len(result) tracks the accounted
	// size exactly; wrappers rely on that for byte bookkeeping.
	q := make([]byte, size)
	copy(q, p)
	return q
}

func (h heapAllocator) ZeroAllocate(count, size int) []byte {
	if count < 0 || size < 0 {
		return nil
	}
	if count != 0 && size > math.MaxInt/count {
		return nil
	}
	return h.Allocate(count * size)
}

package hashmap

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/utilkit/alloc"
	"github.com/joshuapare/utilkit/errstate"
	"github.com/joshuapare/utilkit/internal/buf"
	"github.com/joshuapare/utilkit/status"
)

// loadFactor is the occupancy ratio at which the bucket array doubles.
const loadFactor = 0.75

// ptrWidth is the accounted size of one bucket-array slot.
const ptrWidth = int(unsafe.Sizeof(uintptr(0)))

// entry holds one key/value pair. Entries are allocated once and move
// between bucket arrays by pointer during growth, so &entry.key is stable
// for the life of the entry; the iterator contract depends on that.
type entry[K, V any] struct {
	hash  uint64
	key   K
	value V
	mem   []byte // admission block accounting this entry's storage
}

// Map is a separately chained hash map over caller-supplied hash and
// equality functions. The zero value is not usable; construct with New or
// NewStringMap. A Map is not safe for concurrent use.
type Map[K, V any] struct {
	a         alloc.Allocator
	hash      func(K) uint64
	equal     func(K, K) bool
	buckets   [][]*entry[K, V]
	bucketMem []byte // admission block for the bucket array
	capacity  int    // always a power of two
	size      int
	entrySize int
	live      bool
}

// New builds a map with the given initial capacity (rounded up to the next
// power of two, minimum one), hash and equality functions, and allocator.
func New[K, V any](initialCapacity int, hash func(K) uint64, equal func(K, K) bool, a alloc.Allocator) (*Map[K, V], error) {
	if initialCapacity < 1 || hash == nil || equal == nil || !alloc.Valid(a) {
		errstate.Set("hash map construction needs a positive capacity, hash and equality functions, and a valid allocator")
		return nil, fmt.Errorf("hashmap: %w", status.ErrInvalidArgument)
	}
	capacity := nextPowerOfTwo(initialCapacity)
	mem := a.ZeroAllocate(capacity, ptrWidth)
	if mem == nil {
		errstate.Setf("failed to allocate a bucket array of %d slots", capacity)
		return nil, fmt.Errorf("hashmap: %w", status.ErrBadAlloc)
	}
	var e entry[K, V]
	return &Map[K, V]{
		a:         a,
		hash:      hash,
		equal:     equal,
		buckets:   make([][]*entry[K, V], capacity),
		bucketMem: mem,
		capacity:  capacity,
		entrySize: int(unsafe.Sizeof(e)),
		live:      true,
	}, nil
}

// NewStringMap builds a map over string keys with the package's default
// murmur3 hasher and byte equality.
func NewStringMap[V any](initialCapacity int, a alloc.Allocator) (*Map[string, V], error) {
	return New[string, V](initialCapacity, StringHash, StringEqual, a)
}

func (m *Map[K, V]) valid() bool {
	return m != nil && m.live
}

// Set inserts or overwrites the value stored for key. Key and value are
// copied in by assignment and owned by the map from then on; callers must
// not mutate shared backing arrays of reference-typed values afterwards.
//
// When insertion pushes occupancy to the growth threshold and the
// allocator refuses the larger bucket array, the new entry stays and the
// map remains fully usable at its old capacity; the returned error is
// ErrBadAlloc.
func (m *Map[K, V]) Set(key K, value V) error {
	if !m.valid() {
		errstate.Set("hash map is invalid")
		return fmt.Errorf("hashmap: %w", status.ErrInvalidArgument)
	}
	h := m.hash(key)
	idx := h & uint64(m.capacity-1)
	for _, e := range m.buckets[idx] {
		if e.hash == h && m.equal(e.key, key) {
			e.value = value
			return nil
		}
	}

	mem := m.a.Allocate(m.entrySize)
	if mem == nil {
		errstate.Set("failed to allocate a map entry")
		return fmt.Errorf("hashmap: %w", status.ErrBadAlloc)
	}
	m.buckets[idx] = append(m.buckets[idx], &entry[K, V]{hash: h, key: key, value: value, mem: mem})
	m.size++

	for float64(m.size)/float64(m.capacity) >= loadFactor {
		if !m.grow() {
			errstate.Setf("failed to grow past %d buckets; the map stays usable at its current capacity", m.capacity)
			return fmt.Errorf("hashmap: %w", status.ErrBadAlloc)
		}
	}
	return nil
}

// grow doubles the bucket array and redistributes entry pointers. The
// entries themselves are not copied. Returns false when the arithmetic
// overflows or the allocator refuses; nothing changes in that case.
func (m *Map[K, V]) grow() bool {
	newCap, ok := buf.MulOverflowSafe(m.capacity, 2)
	if !ok {
		return false
	}
	mem := m.a.ZeroAllocate(newCap, ptrWidth)
	if mem == nil {
		return false
	}
	newBuckets := make([][]*entry[K, V], newCap)
	for _, b := range m.buckets {
		for _, e := range b {
			idx := e.hash & uint64(newCap-1)
			newBuckets[idx] = append(newBuckets[idx], e)
		}
	}
	m.a.Deallocate(m.bucketMem)
	m.buckets = newBuckets
	m.bucketMem = mem
	m.capacity = newCap
	return true
}

// Get returns the value stored for key, or ErrNotFound.
func (m *Map[K, V]) Get(key K) (V, error) {
	var zero V
	if !m.valid() {
		errstate.Set("hash map is invalid")
		return zero, fmt.Errorf("hashmap: %w", status.ErrInvalidArgument)
	}
	h := m.hash(key)
	for _, e := range m.buckets[h&uint64(m.capacity-1)] {
		if e.hash == h && m.equal(e.key, key) {
			return e.value, nil
		}
	}
	return zero, fmt.Errorf("hashmap: %w", status.ErrNotFound)
}

// KeyExists reports whether key is stored. An invalid map holds nothing.
func (m *Map[K, V]) KeyExists(key K) bool {
	if !m.valid() {
		return false
	}
	h := m.hash(key)
	for _, e := range m.buckets[h&uint64(m.capacity-1)] {
		if e.hash == h && m.equal(e.key, key) {
			return true
		}
	}
	return false
}

// Unset removes key and releases its entry. Removing an absent key
// succeeds: the map holds at most one entry per key and that is already
// the case.
func (m *Map[K, V]) Unset(key K) error {
	if !m.valid() {
		errstate.Set("hash map is invalid")
		return fmt.Errorf("hashmap: %w", status.ErrInvalidArgument)
	}
	h := m.hash(key)
	idx := h & uint64(m.capacity-1)
	b := m.buckets[idx]
	for i, e := range b {
		if e.hash == h && m.equal(e.key, key) {
			m.a.Deallocate(e.mem)
			m.buckets[idx] = append(b[:i], b[i+1:]...)
			m.size--
			return nil
		}
	}
	return nil
}

// GetNextKeyAndData resumes iteration after previousKey, which must be
// either nil (start at the first entry) or exactly the pointer returned by
// the previous call. Identity matters: a pointer to an equal key held
// elsewhere is rejected with ErrInvalidArgument, as is a pointer whose
// entry has been removed. Past the final entry the error is
// ErrNoMoreEntries.
//
// Iteration order is bucket order, then insertion order within a bucket.
// Mutating the map between calls invalidates outstanding pointers.
func (m *Map[K, V]) GetNextKeyAndData(previousKey *K) (*K, V, error) {
	var zero V
	if !m.valid() {
		errstate.Set("hash map is invalid")
		return nil, zero, fmt.Errorf("hashmap: %w", status.ErrInvalidArgument)
	}

	bucket, pos := 0, 0
	if previousKey != nil {
		idx := int(m.hash(*previousKey) & uint64(m.capacity-1))
		found := -1
		for i, e := range m.buckets[idx] {
			if &e.key == previousKey {
				found = i
				break
			}
		}
		if found < 0 {
			errstate.Set("previous key is not a pointer handed out by this map")
			return nil, zero, fmt.Errorf("hashmap: %w", status.ErrInvalidArgument)
		}
		bucket, pos = idx, found+1
	}

	for ; bucket < m.capacity; bucket++ {
		if b := m.buckets[bucket]; pos < len(b) {
			e := b[pos]
			return &e.key, e.value, nil
		}
		pos = 0
	}
	return nil, zero, fmt.Errorf("hashmap: %w", status.ErrNoMoreEntries)
}

// Size returns the number of stored entries.
func (m *Map[K, V]) Size() int {
	if !m.valid() {
		return 0
	}
	return m.size
}

// Capacity returns the current bucket count.
func (m *Map[K, V]) Capacity() int {
	if !m.valid() {
		return 0
	}
	return m.capacity
}

// Stats describes the shape of a map for instrumentation and tests.
type Stats struct {
	Size         int
	Capacity     int
	UsedBuckets  int
	LongestChain int
}

// Stats returns a snapshot of the map's shape.
func (m *Map[K, V]) Stats() Stats {
	if !m.valid() {
		return Stats{}
	}
	st := Stats{Size: m.size, Capacity: m.capacity}
	for _, b := range m.buckets {
		if len(b) == 0 {
			continue
		}
		st.UsedBuckets++
		if len(b) > st.LongestChain {
			st.LongestChain = len(b)
		}
	}
	return st
}

// Fini releases every entry and the bucket array back to the allocator.
// The map is unusable afterwards; operations report ErrInvalidArgument.
func (m *Map[K, V]) Fini() error {
	if !m.valid() {
		errstate.Set("hash map is invalid")
		return fmt.Errorf("hashmap: %w", status.ErrInvalidArgument)
	}
	for _, b := range m.buckets {
		for _, e := range b {
			m.a.Deallocate(e.mem)
		}
	}
	m.a.Deallocate(m.bucketMem)
	m.buckets = nil
	m.bucketMem = nil
	m.size = 0
	m.capacity = 0
	m.live = false
	return nil
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

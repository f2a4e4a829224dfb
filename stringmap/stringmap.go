package stringmap

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/joshuapare/utilkit/alloc"
	"github.com/joshuapare/utilkit/errstate"
	"github.com/joshuapare/utilkit/internal/buf"
	"github.com/joshuapare/utilkit/status"
)

// slotWidth is the accounted size of one slot in the backing array.
const slotWidth = int(unsafe.Sizeof(slot{}))

// slot is one position in the backing array. An unused slot holds zero
// values and nil admission blocks.
type slot struct {
	key      string
	value    string
	keyMem   []byte
	valueMem []byte
	used     bool
}

type mapImpl struct {
	a     alloc.Allocator
	slots []slot
	mem   []byte // admission block for the slot array
	size  int
}

// StringMap is a flat string-to-string map. The zero value is valid but
// uninitialized; call Init before use, or construct with New. Not safe for
// concurrent use.
type StringMap struct {
	impl *mapImpl
}

// New returns an initialized map with initialCapacity slots. A capacity of
// zero is allowed; the first Set reserves one slot.
func New(initialCapacity int, a alloc.Allocator) (*StringMap, error) {
	m := &StringMap{}
	if err := m.Init(initialCapacity, a); err != nil {
		return nil, err
	}
	return m, nil
}

// Init prepares a zero-value or finalized map for use. Initializing a map
// that is already initialized reports ErrStringMapAlreadyInit and changes
// nothing.
func (m *StringMap) Init(initialCapacity int, a alloc.Allocator) error {
	if m == nil {
		return invalidErr()
	}
	if m.impl != nil {
		errstate.Set("string map is already initialized")
		return fmt.Errorf("stringmap: %w", status.ErrStringMapAlreadyInit)
	}
	if initialCapacity < 0 || !alloc.Valid(a) {
		errstate.Set("string map construction needs a non-negative capacity and a valid allocator")
		return fmt.Errorf("stringmap: %w", status.ErrInvalidArgument)
	}
	impl := &mapImpl{a: a}
	if initialCapacity > 0 {
		if err := impl.reserve(initialCapacity); err != nil {
			return err
		}
	}
	m.impl = impl
	return nil
}

func (m *StringMap) valid() bool {
	return m != nil && m.impl != nil
}

func invalidErr() error {
	errstate.Set("string map is invalid")
	return fmt.Errorf("stringmap: %w", status.ErrStringMapInvalid)
}

// Fini releases every stored string and the slot array. A finalized map
// rejects all operations until Init is called again; a second Fini reports
// ErrStringMapInvalid.
func (m *StringMap) Fini() error {
	if !m.valid() {
		return invalidErr()
	}
	impl := m.impl
	impl.clear()
	impl.a.Deallocate(impl.mem)
	impl.slots = nil
	impl.mem = nil
	m.impl = nil
	return nil
}

// Reserve resizes the slot array to exactly capacity slots, compacting
// stored entries toward the front. Capacity below the current size is
// rejected; capacity equal to the size releases every free slot.
// Outstanding iterator pointers are invalidated.
func (m *StringMap) Reserve(capacity int) error {
	if !m.valid() {
		return invalidErr()
	}
	return m.impl.reserve(capacity)
}

func (impl *mapImpl) reserve(capacity int) error {
	if capacity < 0 || capacity < impl.size {
		errstate.Setf("cannot reserve %d slots while holding %d entries", capacity, impl.size)
		return fmt.Errorf("stringmap: %w", status.ErrInvalidArgument)
	}
	if capacity == len(impl.slots) {
		return nil
	}
	mem := impl.a.ZeroAllocate(capacity, slotWidth)
	if mem == nil {
		errstate.Setf("failed to reserve %d string map slots", capacity)
		return fmt.Errorf("stringmap: %w", status.ErrBadAlloc)
	}
	slots := make([]slot, capacity)
	next := 0
	for i := range impl.slots {
		if impl.slots[i].used {
			slots[next] = impl.slots[i]
			next++
		}
	}
	impl.a.Deallocate(impl.mem)
	impl.slots = slots
	impl.mem = mem
	return nil
}

// Clear removes every entry but keeps the reserved capacity.
func (m *StringMap) Clear() error {
	if !m.valid() {
		return invalidErr()
	}
	m.impl.clear()
	return nil
}

func (impl *mapImpl) clear() {
	for i := range impl.slots {
		if impl.slots[i].used {
			impl.a.Deallocate(impl.slots[i].keyMem)
			impl.a.Deallocate(impl.slots[i].valueMem)
			impl.slots[i] = slot{}
		}
	}
	impl.size = 0
}

// Set stores value under key, overwriting any previous value. When every
// slot is taken and the key is new, the capacity doubles (or becomes one,
// from zero) before the entry is stored.
func (m *StringMap) Set(key, value string) error {
	if !m.valid() {
		return invalidErr()
	}
	err := m.impl.set(key, value)
	if err == nil || !errors.Is(err, status.ErrNotEnoughSpace) {
		return err
	}
	newCap := 1
	if c := len(m.impl.slots); c > 0 {
		var ok bool
		newCap, ok = buf.MulOverflowSafe(c, 2)
		if !ok {
			errstate.Set("string map capacity overflow")
			return fmt.Errorf("stringmap: %w", status.ErrBadAlloc)
		}
	}
	if err := m.impl.reserve(newCap); err != nil {
		return err
	}
	return m.impl.set(key, value)
}

// SetNoResize stores value under key only if a slot is available: either
// the key already exists or a free slot remains. Otherwise it reports
// ErrNotEnoughSpace and the map is unchanged.
func (m *StringMap) SetNoResize(key, value string) error {
	if !m.valid() {
		return invalidErr()
	}
	return m.impl.set(key, value)
}

func (impl *mapImpl) set(key, value string) error {
	for i := range impl.slots {
		if impl.slots[i].used && impl.slots[i].key == key {
			valueMem := impl.a.Allocate(len(value))
			if valueMem == nil {
				errstate.Set("failed to allocate string map value storage")
				return fmt.Errorf("stringmap: %w", status.ErrBadAlloc)
			}
			copy(valueMem, value)
			impl.a.Deallocate(impl.slots[i].valueMem)
			impl.slots[i].value = value
			impl.slots[i].valueMem = valueMem
			return nil
		}
	}
	for i := range impl.slots {
		if impl.slots[i].used {
			continue
		}
		keyMem := impl.a.Allocate(len(key))
		if keyMem == nil {
			errstate.Set("failed to allocate string map key storage")
			return fmt.Errorf("stringmap: %w", status.ErrBadAlloc)
		}
		valueMem := impl.a.Allocate(len(value))
		if valueMem == nil {
			impl.a.Deallocate(keyMem)
			errstate.Set("failed to allocate string map value storage")
			return fmt.Errorf("stringmap: %w", status.ErrBadAlloc)
		}
		copy(keyMem, key)
		copy(valueMem, value)
		impl.slots[i] = slot{key: key, value: value, keyMem: keyMem, valueMem: valueMem, used: true}
		impl.size++
		return nil
	}
	return fmt.Errorf("stringmap: %w", status.ErrNotEnoughSpace)
}

// Unset removes key. An absent key reports ErrStringKeyNotFound.
func (m *StringMap) Unset(key string) error {
	if !m.valid() {
		return invalidErr()
	}
	impl := m.impl
	for i := range impl.slots {
		if impl.slots[i].used && impl.slots[i].key == key {
			impl.a.Deallocate(impl.slots[i].keyMem)
			impl.a.Deallocate(impl.slots[i].valueMem)
			impl.slots[i] = slot{}
			impl.size--
			return nil
		}
	}
	errstate.Setf("key '%s' not found", key)
	return fmt.Errorf("stringmap: %w", status.ErrStringKeyNotFound)
}

// KeyExists reports whether key is stored. An invalid map holds nothing.
func (m *StringMap) KeyExists(key string) bool {
	if !m.valid() {
		return false
	}
	for i := range m.impl.slots {
		if m.impl.slots[i].used && m.impl.slots[i].key == key {
			return true
		}
	}
	return false
}

// Get returns the value stored for key, or ErrStringKeyNotFound.
func (m *StringMap) Get(key string) (string, error) {
	if !m.valid() {
		return "", invalidErr()
	}
	for i := range m.impl.slots {
		if m.impl.slots[i].used && m.impl.slots[i].key == key {
			return m.impl.slots[i].value, nil
		}
	}
	return "", fmt.Errorf("stringmap: %w", status.ErrStringKeyNotFound)
}

// GetNextKey resumes iteration after previousKey, which must be either nil
// (start at the first entry) or exactly the pointer returned by the
// previous call; a pointer to an equal key held elsewhere is rejected with
// ErrInvalidArgument. Past the final entry the error is ErrNoMoreEntries.
// Reserve, Set growth, and removal invalidate outstanding pointers.
func (m *StringMap) GetNextKey(previousKey *string) (*string, error) {
	if !m.valid() {
		return nil, invalidErr()
	}
	impl := m.impl
	start := 0
	if previousKey != nil {
		found := -1
		for i := range impl.slots {
			if impl.slots[i].used && &impl.slots[i].key == previousKey {
				found = i
				break
			}
		}
		if found < 0 {
			errstate.Set("previous key is not a pointer handed out by this map")
			return nil, fmt.Errorf("stringmap: %w", status.ErrInvalidArgument)
		}
		start = found + 1
	}
	for i := start; i < len(impl.slots); i++ {
		if impl.slots[i].used {
			return &impl.slots[i].key, nil
		}
	}
	return nil, fmt.Errorf("stringmap: %w", status.ErrNoMoreEntries)
}

// Size returns the number of stored entries.
func (m *StringMap) Size() int {
	if !m.valid() {
		return 0
	}
	return m.impl.size
}

// Capacity returns the current slot count.
func (m *StringMap) Capacity() int {
	if !m.valid() {
		return 0
	}
	return len(m.impl.slots)
}

// Copy upserts every entry of m into dst, growing dst as needed. Entries
// already present in dst under other keys are left alone.
func (m *StringMap) Copy(dst *StringMap) error {
	if !m.valid() || !dst.valid() {
		return invalidErr()
	}
	for i := range m.impl.slots {
		if !m.impl.slots[i].used {
			continue
		}
		if err := dst.Set(m.impl.slots[i].key, m.impl.slots[i].value); err != nil {
			return err
		}
	}
	return nil
}

package buf

import (
	"fmt"

	"github.com/joshuapare/utilkit/alloc"
	"github.com/joshuapare/utilkit/status"
)

// Buffer is an append-only byte scratch area whose backing storage comes
// from an Allocator, so growth shows up in the same metering and
// fault-injection seam as every other allocation in the library.
//
// Append calls report success. A false return means growth was refused;
// the buffer still holds everything appended before the refusal and stays
// usable at its current capacity.
type Buffer struct {
	a    alloc.Allocator
	data []byte // backing storage; len(data) is the capacity
	n    int    // bytes written
}

// NewBuffer returns a Buffer with the given initial capacity.
func NewBuffer(a alloc.Allocator, capacity int) (*Buffer, error) {
	if !alloc.Valid(a) || capacity <= 0 {
		return nil, fmt.Errorf("buf: %w", status.ErrInvalidArgument)
	}
	data := a.Allocate(capacity)
	if data == nil {
		return nil, fmt.Errorf("buf: %w", status.ErrBadAlloc)
	}
	return &Buffer{a: a, data: data}, nil
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int { return b.n }

// Cap returns the capacity of the backing storage.
func (b *Buffer) Cap() int { return len(b.data) }

// Bytes returns the written bytes. The slice aliases the backing storage
// and is valid only until the next Append, Reset, or Release.
func (b *Buffer) Bytes() []byte { return b.data[:b.n] }

// String copies the written bytes out as a string.
func (b *Buffer) String() string { return string(b.data[:b.n]) }

// Reset discards the written bytes and keeps the backing storage.
func (b *Buffer) Reset() { b.n = 0 }

// Release returns the backing storage to the allocator. The buffer must
// not be used afterwards.
func (b *Buffer) Release() {
	if b.data != nil {
		b.a.Deallocate(b.data)
		b.data = nil
		b.n = 0
	}
}

// grow widens the backing storage to fit need more bytes, doubling until
// it does. Reports false when the arithmetic overflows or the allocator
// refuses.
func (b *Buffer) grow(need int) bool {
	total, ok := AddOverflowSafe(b.n, need)
	if !ok {
		return false
	}
	if total <= len(b.data) {
		return true
	}
	newCap := len(b.data)
	if newCap == 0 {
		newCap = 1
	}
	for newCap < total {
		newCap, ok = MulOverflowSafe(newCap, 2)
		if !ok {
			return false
		}
	}
	q := b.a.Reallocate(b.data, newCap)
	if q == nil {
		return false
	}
	b.data = q
	return true
}

// Append writes p, growing as needed.
func (b *Buffer) Append(p []byte) bool {
	if !b.grow(len(p)) {
		return false
	}
	copy(b.data[b.n:], p)
	b.n += len(p)
	return true
}

// AppendString writes s, growing as needed.
func (b *Buffer) AppendString(s string) bool {
	if !b.grow(len(s)) {
		return false
	}
	copy(b.data[b.n:], s)
	b.n += len(s)
	return true
}

// AppendByte writes a single byte, growing as needed.
func (b *Buffer) AppendByte(c byte) bool {
	if !b.grow(1) {
		return false
	}
	b.data[b.n] = c
	b.n++
	return true
}

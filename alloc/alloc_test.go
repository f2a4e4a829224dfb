package alloc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault_Allocate tests the basic allocation contract of the heap allocator.
func TestDefault_Allocate(t *testing.T) {
	a := Default()

	p := a.Allocate(64)
	require.NotNil(t, p, "Allocate should succeed")
	require.Len(t, p, 64, "Allocate should return exactly the requested size")

	empty := a.Allocate(0)
	require.NotNil(t, empty, "zero-size Allocate should return a non-nil empty slice")
	assert.Len(t, empty, 0)

	assert.Nil(t, a.Allocate(-1), "negative size should be refused")
}

// TestDefault_Reallocate tests prefix preservation and the nil/zero edge cases.
func TestDefault_Reallocate(t *testing.T) {
	a := Default()

	p := a.Allocate(4)
	copy(p, []byte{1, 2, 3, 4})

	q := a.Reallocate(p, 8)
	require.NotNil(t, q, "grow should succeed")
	require.Len(t, q, 8)
	assert.Equal(t, []byte{1, 2, 3, 4}, q[:4], "grow should preserve the prefix")

	r := a.Reallocate(q, 2)
	require.Len(t, r, 2)
	assert.Equal(t, []byte{1, 2}, r, "shrink should keep the leading bytes")

	// nil pointer behaves like Allocate
	s := a.Reallocate(nil, 3)
	require.NotNil(t, s)
	assert.Len(t, s, 3)

	// zero size behaves like Deallocate
	assert.Nil(t, a.Reallocate(r, 0))
	assert.Nil(t, a.Reallocate(s, -1), "negative size should be refused")
}

// TestDefault_ZeroAllocate tests zero-fill and overflow rejection.
func TestDefault_ZeroAllocate(t *testing.T) {
	a := Default()

	p := a.ZeroAllocate(4, 8)
	require.NotNil(t, p)
	require.Len(t, p, 32)
	for i := range p {
		assert.Zero(t, p[i], "byte %d should be zero", i)
	}

	assert.Nil(t, a.ZeroAllocate(2, math.MaxInt), "overflowing product should be refused")
	assert.Nil(t, a.ZeroAllocate(-1, 8), "negative count should be refused")
	assert.Nil(t, a.ZeroAllocate(8, -1), "negative size should be refused")

	empty := a.ZeroAllocate(0, 128)
	require.NotNil(t, empty, "zero count should yield an empty slice, not a refusal")
	assert.Len(t, empty, 0)
}

// TestValid tests the validity predicate.
func TestValid(t *testing.T) {
	assert.True(t, Valid(Default()))
	assert.True(t, Valid(NewCounting(nil)))
	assert.False(t, Valid(nil), "the zero allocator must be invalid")
}

// TestCounting_Balance tests that paired operations balance to zero.
func TestCounting_Balance(t *testing.T) {
	c := NewCounting(nil)

	p := c.Allocate(100)
	require.NotNil(t, p)
	assert.Equal(t, int64(100), c.Stats().OutstandingBytes)

	p = c.Reallocate(p, 150)
	require.NotNil(t, p)
	assert.Equal(t, int64(150), c.Stats().OutstandingBytes)

	q := c.ZeroAllocate(5, 10)
	require.NotNil(t, q)
	assert.Equal(t, int64(200), c.Stats().OutstandingBytes)

	c.Deallocate(p)
	c.Deallocate(q)
	assert.True(t, c.Balanced(), "all bytes released, allocator should balance")

	st := c.Stats()
	assert.Equal(t, int64(1), st.Allocates)
	assert.Equal(t, int64(1), st.Reallocates)
	assert.Equal(t, int64(1), st.ZeroAllocates)
	assert.Equal(t, int64(2), st.Deallocates)
	assert.Zero(t, st.Refused)
}

// TestCounting_ReallocateRelease tests that a zero-size reallocate counts as a release.
func TestCounting_ReallocateRelease(t *testing.T) {
	c := NewCounting(nil)

	p := c.Allocate(10)
	require.NotNil(t, p)
	assert.Nil(t, c.Reallocate(p, 0))
	assert.True(t, c.Balanced())
}

// TestFailing_FailAfter tests countdown-armed refusal.
func TestFailing_FailAfter(t *testing.T) {
	f := NewFailing(nil)

	require.NotNil(t, f.Allocate(8), "unarmed allocator should allocate")

	f.FailAfter(2)
	require.NotNil(t, f.Allocate(8), "first armed call is allowed")
	require.NotNil(t, f.ZeroAllocate(2, 4), "second armed call is allowed")
	assert.Nil(t, f.Allocate(8), "third call must be refused")
	assert.Nil(t, f.ZeroAllocate(1, 1), "all allocating calls stay refused")
	assert.Nil(t, f.Reallocate(nil, 8), "reallocate counts as an allocating call")

	// Release paths keep working while armed.
	p := []byte{1, 2, 3}
	assert.Nil(t, f.Reallocate(p, 0), "zero-size reallocate passes through")

	f.Disarm()
	assert.NotNil(t, f.Allocate(8), "disarmed allocator should allocate again")
}

// TestReallocateOrFree tests the free-on-failure helper.
func TestReallocateOrFree(t *testing.T) {
	c := NewCounting(nil)

	p := c.Allocate(16)
	require.NotNil(t, p)

	q, ok := ReallocateOrFree(c, p, 32)
	require.True(t, ok)
	require.Len(t, q, 32)

	// Refused resize must still release the original.
	f := NewFailing(c)
	f.FailAfter(0)
	r, ok := ReallocateOrFree(f, q, 64)
	assert.False(t, ok, "armed allocator should refuse the resize")
	assert.Nil(t, r)
	assert.True(t, c.Balanced(), "the original block must have been freed")

	// Invalid allocator: nothing to do but report failure.
	_, ok = ReallocateOrFree(nil, nil, 8)
	assert.False(t, ok)

	// Zero size is a successful release.
	s := c.Allocate(8)
	require.NotNil(t, s)
	released, ok := ReallocateOrFree(c, s, 0)
	assert.True(t, ok)
	assert.Nil(t, released)
	assert.True(t, c.Balanced())
}

package errstate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/utilkit/alloc"
	"github.com/joshuapare/utilkit/internal/testutil"
	"github.com/joshuapare/utilkit/status"
)

// TestSetAndGet tests the basic set/read round trip with caller capture.
func TestSetAndGet(t *testing.T) {
	defer Reset()

	Set("something went wrong")
	require.True(t, IsSet(), "state should be set after Set")

	st, ok := Get()
	require.True(t, ok)
	assert.Equal(t, "something went wrong", st.Message)
	assert.True(t, strings.HasSuffix(st.File, "errstate_test.go"),
		"caller file should be this test file, got %q", st.File)
	assert.Positive(t, st.Line, "caller line should be captured")

	msg := GetMessage()
	assert.Contains(t, msg, "something went wrong, at ")
	assert.Contains(t, msg, "errstate_test.go:")
}

// TestSetf tests formatted set.
func TestSetf(t *testing.T) {
	defer Reset()

	Setf("bad value %d for %q", 42, "x")
	st, ok := Get()
	require.True(t, ok)
	assert.Equal(t, `bad value 42 for "x"`, st.Message)
}

// TestSetState tests the primitive with explicit origin.
func TestSetState(t *testing.T) {
	defer Reset()

	SetState("explicit", "somewhere.go", 7)
	st, ok := Get()
	require.True(t, ok)
	assert.Equal(t, State{Message: "explicit", File: "somewhere.go", Line: 7}, st)
	assert.Equal(t, "explicit, at somewhere.go:7", st.String())
}

// TestReadUnset tests the unset-read contract.
func TestReadUnset(t *testing.T) {
	Reset()

	assert.False(t, IsSet())
	_, ok := Get()
	assert.False(t, ok)
	assert.Empty(t, GetMessage(), "GetMessage must be safe to call when unset")

	// Reset on an empty slot is a no-op.
	Reset()
	assert.False(t, IsSet())
}

// TestGoroutineIsolation tests that state set on one goroutine is invisible
// to another and survives activity elsewhere.
func TestGoroutineIsolation(t *testing.T) {
	defer Reset()

	Set("owned by the test goroutine")

	type peek struct {
		isSet bool
		msg   string
	}
	ch := make(chan peek)
	go func() {
		_, ok := Get()
		ch <- peek{isSet: ok, msg: GetMessage()}

		Set("owned by the helper goroutine")
		st, _ := Get()
		ch <- peek{isSet: true, msg: st.Message}
		Reset()
	}()

	first := <-ch
	assert.False(t, first.isSet, "a fresh goroutine must start with no state")
	assert.Empty(t, first.msg)

	second := <-ch
	assert.Equal(t, "owned by the helper goroutine", second.msg)

	// The helper's set and reset must not have disturbed this goroutine.
	st, ok := Get()
	require.True(t, ok, "test goroutine state should survive")
	assert.Equal(t, "owned by the test goroutine", st.Message)
}

// TestOverwriteDiagnostic tests the stderr notice on unharvested overwrite.
func TestOverwriteDiagnostic(t *testing.T) {
	defer Reset()
	Reset()

	out := testutil.CaptureStderr(t, func() {
		Set("first failure")
		Set("second failure")
	})
	assert.Contains(t, out, "overwritten", "diagnostic should name the condition")
	assert.Contains(t, out, "first failure", "diagnostic should quote the replaced state")
	assert.Contains(t, out, "second failure", "diagnostic should quote the replacing state")
	assert.Contains(t, GetMessage(), "second failure, at ", "latest state wins")

	// Re-setting the identical state is silent.
	Reset()
	out = testutil.CaptureStderr(t, func() {
		SetState("same", "same.go", 1)
		SetState("same", "same.go", 1)
	})
	assert.Empty(t, out, "identical state should not be reported as an overwrite")

	// A strict prefix of the stored message is still a different state.
	Reset()
	out = testutil.CaptureStderr(t, func() {
		SetState("connection refused", "net.go", 7)
		SetState("connection", "net.go", 7)
	})
	assert.Contains(t, out, "overwritten", "prefix messages are distinct states")

	// And the diagnostic can be turned off entirely.
	Reset()
	SetOverwriteDiagnostic(false)
	defer SetOverwriteDiagnostic(true)
	out = testutil.CaptureStderr(t, func() {
		Set("first")
		Set("second")
	})
	assert.Empty(t, out, "disabled diagnostic must stay silent")
}

// TestTruncation tests the storage caps on message and file.
func TestTruncation(t *testing.T) {
	defer Reset()

	longMsg := strings.Repeat("m", StateMessageMaxLength+100)
	longFile := strings.Repeat("f", StateFileMaxLength+50)
	SetState(longMsg, longFile, 12)

	st, ok := Get()
	require.True(t, ok)
	assert.Len(t, st.Message, StateMessageMaxLength, "message should keep its leading bytes only")
	assert.Len(t, st.File, StateFileMaxLength, "file should keep its leading bytes only")
	assert.Equal(t, longMsg[:StateMessageMaxLength], st.Message)

	// Exactly at the cap nothing is lost.
	exact := strings.Repeat("x", StateMessageMaxLength)
	SetOverwriteDiagnostic(false)
	SetState(exact, "f.go", 1)
	SetOverwriteDiagnostic(true)
	st, _ = Get()
	assert.Equal(t, exact, st.Message)

	// The formatted string never exceeds its own budget.
	assert.LessOrEqual(t, len(st.String()), MessageMaxLength)
}

// TestInitialize tests allocator validation.
func TestInitialize(t *testing.T) {
	require.NoError(t, Initialize(alloc.Default()))
	require.NoError(t, Initialize(alloc.Default()), "initialize must be idempotent")

	err := Initialize(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrInvalidArgument)
}

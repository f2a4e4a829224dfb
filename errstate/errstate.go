package errstate

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"

	"github.com/joshuapare/utilkit/alloc"
	"github.com/joshuapare/utilkit/status"
)

const (
	// MessageMaxLength caps the formatted "<message>, at <file>:<line>"
	// string returned by State.String and GetMessage.
	MessageMaxLength = 1024

	// StateMessageMaxLength caps the stored user message. Longer messages
	// keep their leading bytes.
	StateMessageMaxLength = 768

	// lineNumberMaxLength is the digit budget reserved for the line number
	// in the formatted string.
	lineNumberMaxLength = 20

	// formattingLength counts the formatting bytes of ", at " and ":".
	formattingLength = 6

	// StateFileMaxLength caps the stored file path: whatever remains of the
	// message budget once the user message, line digits, and formatting
	// bytes are spoken for.
	StateFileMaxLength = MessageMaxLength - StateMessageMaxLength - lineNumberMaxLength - formattingLength
)

// numShards is the number of independent slot shards.
// Must be a power of two for fast modulo via bitmask.
const numShards = 16

// State is one goroutine's stored error: the truncated message and the
// origin the caller reported.
type State struct {
	Message string
	File    string
	Line    int
}

// String renders the state as "<message>, at <file>:<line>", truncated to
// MessageMaxLength.
func (s State) String() string {
	out := fmt.Sprintf("%s, at %s:%d", s.Message, s.File, s.Line)
	if len(out) > MessageMaxLength {
		out = out[:MessageMaxLength]
	}
	return out
}

type shard struct {
	mu    sync.Mutex
	slots map[int64]State
}

var shards [numShards]shard

// overwriteDiagnostic gates the stderr notice printed when live state is
// replaced without a Reset. On by default.
var overwriteDiagnostic atomic.Bool

func init() {
	for i := range shards {
		shards[i].slots = make(map[int64]State)
	}
	overwriteDiagnostic.Store(true)
}

// SetOverwriteDiagnostic enables or disables the stderr notice emitted when
// existing error state is overwritten without a Reset.
func SetOverwriteDiagnostic(on bool) {
	overwriteDiagnostic.Store(on)
}

// Initialize validates the allocator this package would draw from. Slot
// storage itself is created lazily on first use, so calling Initialize is
// optional and calling it twice is harmless.
func Initialize(a alloc.Allocator) error {
	if !alloc.Valid(a) {
		return fmt.Errorf("errstate: %w", status.ErrInvalidArgument)
	}
	return nil
}

func shardFor(gid int64) *shard {
	return &shards[uint64(gid)&(numShards-1)]
}

// SetState records msg, file, and line as the calling goroutine's error
// state, truncating msg to StateMessageMaxLength and file to
// StateFileMaxLength. Replacing a different live state triggers the
// overwrite diagnostic when enabled; re-setting identical state is silent.
func SetState(msg, file string, line int) {
	st := State{
		Message: truncate(msg, StateMessageMaxLength),
		File:    truncate(file, StateFileMaxLength),
		Line:    line,
	}

	gid := goid.Get()
	sh := shardFor(gid)
	sh.mu.Lock()
	old, ok := sh.slots[gid]
	sh.slots[gid] = st
	sh.mu.Unlock()

	// Compare the full stored states, not a prefix of either.
	if ok && old != st && overwriteDiagnostic.Load() {
		fmt.Fprintf(os.Stderr,
			"[utilkit|errstate] error state overwritten without a reset\n  previous: '%s'\n  new:      '%s'\n",
			old.String(), st.String())
	}
}

// Set records msg with the caller's file and line.
func Set(msg string) {
	file, line := caller()
	SetState(msg, file, line)
}

// Setf formats and records a message with the caller's file and line.
func Setf(format string, args ...any) {
	file, line := caller()
	SetState(fmt.Sprintf(format, args...), file, line)
}

// caller resolves the file and line two frames up: the code that invoked
// Set or Setf.
func caller() (string, int) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown", 0
	}
	return file, line
}

// IsSet reports whether the calling goroutine has error state.
func IsSet() bool {
	gid := goid.Get()
	sh := shardFor(gid)
	sh.mu.Lock()
	_, ok := sh.slots[gid]
	sh.mu.Unlock()
	return ok
}

// Get returns the calling goroutine's error state. The second result is
// false when no state is set.
func Get() (State, bool) {
	gid := goid.Get()
	sh := shardFor(gid)
	sh.mu.Lock()
	st, ok := sh.slots[gid]
	sh.mu.Unlock()
	return st, ok
}

// GetMessage returns the formatted error string for the calling goroutine,
// or "" when no state is set. It never fails.
func GetMessage() string {
	st, ok := Get()
	if !ok {
		return ""
	}
	return st.String()
}

// Reset clears the calling goroutine's error state and releases its slot.
// Resetting an empty slot is a no-op.
func Reset() {
	gid := goid.Get()
	sh := shardFor(gid)
	sh.mu.Lock()
	delete(sh.slots, gid)
	sh.mu.Unlock()
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}

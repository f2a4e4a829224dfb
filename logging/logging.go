package logging

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/joshuapare/utilkit/alloc"
	"github.com/joshuapare/utilkit/errstate"
	"github.com/joshuapare/utilkit/hashmap"
	"github.com/joshuapare/utilkit/internal/buf"
	"github.com/joshuapare/utilkit/status"
)

// recordBufferSize is the initial capacity of the record assembly buffer;
// larger records grow it through the logging allocator.
const recordBufferSize = 1024

// severityMapCapacity is the initial bucket count of the severity map.
const severityMapCapacity = 2

// CallSite identifies where a log call was made. Entry points that
// capture it automatically fill it from the runtime; a nil CallSite is
// legal and leaves the call-site format tokens empty.
type CallSite struct {
	FunctionName string
	FileName     string
	LineNumber   int
}

// Handler consumes one log record that already passed the severity gate.
// The package invokes it under the global mutex, so implementations need
// no locking of their own against other records.
type Handler func(site *CallSite, sev Severity, name string, timestamp int64, format string, args []any)

// timeNow returns the record timestamp in nanoseconds since the Unix
// epoch. Tests substitute it to pin timestamps and to exercise the
// clock-failure path.
var timeNow = func() (int64, error) {
	return time.Now().UnixNano(), nil
}

// globalState is the package singleton. One coarse mutex serializes
// configuration changes and record emission; the documented safety
// guarantees all hang off that single lock.
type globalState struct {
	mu sync.Mutex

	initialized bool
	a           alloc.Allocator

	stream  *os.File
	w       io.Writer     // stream, or bw when buffering is on
	bw      *bufio.Writer // nil unless buffering is on
	colorOn bool
	format  string
	program []step
	record  *buf.Buffer

	levels       *hashmap.Map[string, levelEntry]
	levelsValid  bool
	defaultLevel Severity

	handler Handler
}

var g globalState

// Initialize prepares the logging system with the default allocator. See
// InitializeWithAllocator.
func Initialize() error {
	return InitializeWithAllocator(alloc.Default())
}

// InitializeWithAllocator reads the environment, compiles the output
// format, and prepares the console sink. Calling it on an initialized
// system is a no-op success; to apply a changed environment, Shutdown
// first.
//
// A malformed environment value keeps its default and the first such
// failure is reported as ErrInvalidArgument after initialization
// completes. When the severity map cannot be built the system still
// initializes, every name uses the default severity, and the call reports
// ErrSeverityMapInvalid.
func InitializeWithAllocator(a alloc.Allocator) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.initializeLocked(a)
}

func (s *globalState) initializeLocked(a alloc.Allocator) error {
	if s.initialized {
		return nil
	}
	if !alloc.Valid(a) {
		errstate.Set("logging needs a valid allocator")
		return fmt.Errorf("logging: %w", status.ErrInvalidArgument)
	}

	cfg, envErr := readEnvConfig()

	record, err := buf.NewBuffer(a, recordBufferSize)
	if err != nil {
		errstate.Set("failed to allocate the record buffer")
		return fmt.Errorf("logging: %w", status.ErrBadAlloc)
	}

	s.a = a
	s.format = cfg.format
	s.program = compileFormat(cfg.format)
	s.record = record
	s.stream = os.Stderr
	if cfg.useStdout {
		s.stream = os.Stdout
	}
	s.w = s.stream
	s.bw = nil
	if cfg.buffered {
		s.bw = bufio.NewWriter(s.stream)
		s.w = s.bw
	}
	s.colorOn = resolveColor(cfg.colorMode, s.stream)
	s.defaultLevel = DefaultSeverity
	s.handler = ConsoleOutputHandler
	s.initialized = true

	levels, levelsErr := hashmap.NewStringMap[levelEntry](severityMapCapacity, a)
	s.levels = levels
	s.levelsValid = levelsErr == nil
	if levelsErr != nil && envErr == nil {
		envErr = fmt.Errorf("logging: %w", status.ErrSeverityMapInvalid)
	}
	return envErr
}

// autoInitLocked initializes on first use so a log call never fails just
// because nobody called Initialize. A failure goes to stderr once per
// attempt, the error channel is cleared, and the caller proceeds
// best-effort.
func (s *globalState) autoInitLocked() {
	if s.initialized {
		return
	}
	if err := s.initializeLocked(alloc.Default()); err != nil {
		fmt.Fprintf(os.Stderr, "[utilkit|logging] automatic initialization failed: %v\n", err)
		errstate.Reset()
	}
}

// Shutdown releases the severity map and the record buffer and returns
// the package to the uninitialized state. The default severity survives;
// re-initialization resets it anyway. Shutting down an uninitialized
// system is a no-op success.
func Shutdown() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.initialized {
		return nil
	}
	if g.bw != nil {
		g.bw.Flush()
	}
	if g.levelsValid {
		_ = g.levels.Fini()
	}
	g.levels = nil
	g.levelsValid = false
	g.record.Release()
	g.record = nil
	g.program = nil
	g.format = ""
	g.handler = nil
	g.stream = nil
	g.w = nil
	g.bw = nil
	g.colorOn = false
	g.a = nil
	g.initialized = false
	return nil
}

// IsInitialized reports whether the logging system is initialized.
func IsInitialized() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.initialized
}

// SetOutputHandler swaps the sink invoked for each record. A nil handler
// is legal and drops records.
func SetOutputHandler(h Handler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.autoInitLocked()
	g.handler = h
}

// GetOutputHandler returns the current sink.
func GetOutputHandler() Handler {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.autoInitLocked()
	return g.handler
}

// Log emits one record through the current sink if sev passes the named
// logger's effective level. The site may be nil. Emission is serialized:
// concurrent callers' records never interleave. The logger never
// terminates the process, whatever the severity.
func Log(site *CallSite, sev Severity, name string, format string, args ...any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.enabledLocked(name, sev) {
		return
	}
	if g.handler == nil {
		return
	}
	ts, err := timeNow()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[utilkit|logging] failed to read the clock: %v\n", err)
		errstate.Reset()
		ts = 0
	}
	g.handler(site, sev, name, ts, format, args)
}

// logWithCaller is the shared body of the leveled entry points: it
// captures the call site two frames up and hands off to Log.
func logWithCaller(sev Severity, name string, format string, args []any) {
	var site *CallSite
	if pc, file, line, ok := runtime.Caller(2); ok {
		site = &CallSite{FileName: file, LineNumber: line}
		if fn := runtime.FuncForPC(pc); fn != nil {
			site.FunctionName = fn.Name()
		}
	}
	Log(site, sev, name, format, args...)
}

// Debugf logs a printf-style DEBUG record for the named logger.
func Debugf(name, format string, args ...any) {
	logWithCaller(SeverityDebug, name, format, args)
}

// Infof logs a printf-style INFO record for the named logger.
func Infof(name, format string, args ...any) {
	logWithCaller(SeverityInfo, name, format, args)
}

// Warnf logs a printf-style WARN record for the named logger.
func Warnf(name, format string, args ...any) {
	logWithCaller(SeverityWarn, name, format, args)
}

// Errorf logs a printf-style ERROR record for the named logger.
func Errorf(name, format string, args ...any) {
	logWithCaller(SeverityError, name, format, args)
}

// Fatalf logs a printf-style FATAL record for the named logger. It does
// not terminate the process.
func Fatalf(name, format string, args ...any) {
	logWithCaller(SeverityFatal, name, format, args)
}

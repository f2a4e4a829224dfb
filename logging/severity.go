package logging

import (
	"fmt"
	"strconv"

	"github.com/joshuapare/utilkit/errstate"
	"github.com/joshuapare/utilkit/status"
)

// Severity classifies a log record. The values are spaced by ten and are
// part of the library's contract; comparisons use plain integer order.
type Severity int

const (
	// SeverityUnset marks a logger with no explicit level of its own;
	// it inherits from its ancestors. Records cannot carry it.
	SeverityUnset Severity = 0
	// SeverityDebug is detail useful only when tracing behavior.
	SeverityDebug Severity = 10
	// SeverityInfo is the normal operational narrative.
	SeverityInfo Severity = 20
	// SeverityWarn flags something suspicious the process survived.
	SeverityWarn Severity = 30
	// SeverityError flags a failed operation.
	SeverityError Severity = 40
	// SeverityFatal flags an unrecoverable failure. The logger itself
	// never terminates the process on it.
	SeverityFatal Severity = 50
)

// DefaultSeverity is the process default a fresh or reset configuration
// uses: SeverityInfo.
const DefaultSeverity = SeverityInfo

// SeverityNames holds the canonical upper-case name for each severity;
// index i corresponds to Severity(i*10).
var SeverityNames = [...]string{"UNSET", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// known reports whether s is one of the enumerated severities.
func (s Severity) known() bool {
	return s >= SeverityUnset && s <= SeverityFatal && s%10 == 0
}

// String returns the canonical name, or a diagnostic placeholder for
// values outside the enumerated set.
func (s Severity) String() string {
	if s.known() {
		return SeverityNames[s/10]
	}
	return "UNKNOWN_SEVERITY_" + strconv.Itoa(int(s))
}

// SeverityFromString parses a canonical severity name, ignoring ASCII
// case only: "fatal" and "FATAL" match, Unicode case folding is
// deliberately not applied. Unrecognized names report
// ErrSeverityStringInvalid.
func SeverityFromString(s string) (Severity, error) {
	for i, name := range SeverityNames {
		if asciiEqualFold(s, name) {
			return Severity(i * 10), nil
		}
	}
	errstate.Setf("severity string '%s' is not recognized", s)
	return SeverityUnset, fmt.Errorf("logging: %w", status.ErrSeverityStringInvalid)
}

// asciiEqualFold reports whether a equals b after upper-casing ASCII
// letters on both sides. Bytes outside A-Z/a-z must match exactly.
func asciiEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'a' <= ca && ca <= 'z' {
			ca -= 'a' - 'A'
		}
		if 'a' <= cb && cb <= 'z' {
			cb -= 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

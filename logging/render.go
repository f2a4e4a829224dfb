package logging

import (
	"fmt"
	"strconv"

	"github.com/joshuapare/utilkit/internal/buf"
)

// logInput bundles the per-record values the token expansions read.
type logInput struct {
	site      *CallSite
	sev       Severity
	name      string
	timestamp int64
	message   string
}

// expand runs the compiled program over in, appending each step's output
// to out. Call-site tokens append nothing when the call site is absent.
// Reports false when the buffer cannot grow; out then holds a partial
// record the caller must discard.
func expand(out *buf.Buffer, format string, program []step, in *logInput) bool {
	for _, st := range program {
		ok := true
		switch st.kind {
		case tokenLiteral:
			ok = out.AppendString(format[st.start:st.end])
		case tokenSeverity:
			ok = out.AppendString(in.sev.String())
		case tokenName:
			ok = out.AppendString(in.name)
		case tokenMessage:
			ok = out.AppendString(in.message)
		case tokenFunctionName:
			if in.site != nil {
				ok = out.AppendString(in.site.FunctionName)
			}
		case tokenFileName:
			if in.site != nil {
				ok = out.AppendString(in.site.FileName)
			}
		case tokenLineNumber:
			if in.site != nil {
				ok = out.AppendString(strconv.Itoa(in.site.LineNumber))
			}
		case tokenTime:
			ok = out.AppendString(secondsString(in.timestamp))
		case tokenTimeNanoseconds:
			ok = out.AppendString(nanosString(in.timestamp))
		}
		if !ok {
			return false
		}
	}
	return true
}

const nsPerSecond = uint64(1_000_000_000)

// magnitude splits ns into absolute value and sign prefix. The minimum
// int64 has no positive counterpart, so negation runs through
// -(n) == -(n+1) + 1 in uint64 space.
func magnitude(ns int64) (uint64, string) {
	if ns >= 0 {
		return uint64(ns), ""
	}
	return uint64(-(ns+1)) + 1, "-"
}

// secondsString renders a nanosecond timestamp as fixed-width fractional
// seconds: ten second digits, a dot, nine fractional digits, with a
// leading '-' for negative times.
func secondsString(ns int64) string {
	u, sign := magnitude(ns)
	return fmt.Sprintf("%s%010d.%09d", sign, u/nsPerSecond, u%nsPerSecond)
}

// nanosString renders a nanosecond timestamp as a fixed nineteen-digit
// integer, with a leading '-' for negative times.
func nanosString(ns int64) string {
	u, sign := magnitude(ns)
	return fmt.Sprintf("%s%019d", sign, u)
}

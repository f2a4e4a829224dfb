package logging

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"yunion.io/x/pkg/tristate"

	"github.com/joshuapare/utilkit/errstate"
)

// colorCode names the colour a record is rendered in; the platform file
// maps it to ANSI bytes or console attributes.
type colorCode int

const (
	colorNone colorCode = iota
	colorGreen
	colorYellow
	colorRed
)

// severityColor maps severities to the console colour scheme: DEBUG
// green, WARN yellow, ERROR and FATAL red, INFO uncoloured.
func severityColor(sev Severity) colorCode {
	switch sev {
	case SeverityDebug:
		return colorGreen
	case SeverityWarn:
		return colorYellow
	case SeverityError, SeverityFatal:
		return colorRed
	}
	return colorNone
}

// resolveColor decides colourisation for the stream: forced on, forced
// off, or a TTY probe when the environment left it to us.
func resolveColor(mode tristate.TriState, f *os.File) bool {
	if mode.IsTrue() {
		return true
	}
	if mode.IsFalse() {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ConsoleOutputHandler is the default sink. It formats the user message,
// runs the compiled format program, colourises per severity when colour
// is on, and writes the record plus a newline to the configured stream in
// a single write.
//
// Invoked through Log it runs under the package mutex; calling it
// directly from user code forfeits that serialisation.
func ConsoleOutputHandler(site *CallSite, sev Severity, name string, timestamp int64, format string, args []any) {
	g.console(site, sev, name, timestamp, format, args)
}

func (s *globalState) console(site *CallSite, sev Severity, name string, timestamp int64, format string, args []any) {
	if !s.initialized {
		return
	}
	switch sev {
	case SeverityDebug, SeverityInfo, SeverityWarn, SeverityError, SeverityFatal:
	default:
		fmt.Fprintf(os.Stderr, "[utilkit|logging] severity %d is not loggable\n", int(sev))
		return
	}

	color := severityColor(sev)
	colored := s.colorOn && color != colorNone

	in := &logInput{
		site:      site,
		sev:       sev,
		name:      name,
		timestamp: timestamp,
		message:   fmt.Sprintf(format, args...),
	}

	rec := s.record
	rec.Reset()
	ok := true
	if colored && colorInBand {
		ok = rec.AppendString(ansiForColor(color))
	}
	if ok {
		ok = expand(rec, s.format, s.program, in)
	}
	if ok && colored && colorInBand {
		ok = rec.AppendString(ansiReset)
	}
	if ok {
		ok = rec.AppendByte('\n')
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "[utilkit|logging] failed to assemble a record for logger '%s', dropping it\n", name)
		errstate.Reset()
		return
	}
	s.writeRecord(rec.Bytes(), sev, colored)
}

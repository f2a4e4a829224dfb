//go:build !windows

package logging

// Colour rides in-band here: the SGR sequences are appended into the
// record buffer, so the coloured record still leaves in one write.
const colorInBand = true

const ansiReset = "\x1b[0m"

// ansiForColor returns the SGR sequence for c. Exactly four sequences are
// ever emitted: red, green, yellow, and reset.
func ansiForColor(c colorCode) string {
	switch c {
	case colorGreen:
		return "\x1b[32m"
	case colorYellow:
		return "\x1b[33m"
	case colorRed:
		return "\x1b[31m"
	}
	return ""
}

// writeRecord sends one assembled record to the configured stream,
// flushing when line-buffered. Colour, when on, is already embedded in
// the record bytes.
func (s *globalState) writeRecord(record []byte, _ Severity, _ bool) {
	s.w.Write(record)
	if s.bw != nil {
		s.bw.Flush()
	}
}

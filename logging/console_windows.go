//go:build windows

package logging

import (
	"golang.org/x/sys/windows"
)

// The legacy console colours through per-handle text attributes rather
// than escape sequences, so colour cannot ride in the record bytes.
const colorInBand = false

const ansiReset = ""

func ansiForColor(colorCode) string { return "" }

const (
	fgGreen uint16 = 0x0002
	fgRed   uint16 = 0x0004
	fgMask  uint16 = 0x000F
)

// attrForColor returns the console attribute for c, preserving the
// background bits of base.
func attrForColor(c colorCode, base uint16) uint16 {
	fg := base & fgMask
	switch c {
	case colorGreen:
		fg = fgGreen
	case colorYellow:
		fg = fgRed | fgGreen
	case colorRed:
		fg = fgRed
	}
	return (base &^ fgMask) | fg
}

// writeRecord sends one assembled record to the configured stream. A
// coloured record is bracketed by console attribute changes; when the
// stream turns out not to be a console the record goes out plain.
func (s *globalState) writeRecord(record []byte, sev Severity, colored bool) {
	if !colored {
		s.w.Write(record)
		if s.bw != nil {
			s.bw.Flush()
		}
		return
	}
	h := windows.Handle(s.stream.Fd())
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(h, &info); err != nil {
		s.w.Write(record)
		if s.bw != nil {
			s.bw.Flush()
		}
		return
	}
	// Pending buffered bytes belong to the previous attributes.
	if s.bw != nil {
		s.bw.Flush()
	}
	windows.SetConsoleTextAttribute(h, attrForColor(severityColor(sev), info.Attributes))
	s.stream.Write(record)
	windows.SetConsoleTextAttribute(h, info.Attributes)
}

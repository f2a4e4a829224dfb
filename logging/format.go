package logging

import (
	"fmt"
	"os"
	"strings"
)

// maxSteps bounds the compiled program against pathological format
// strings. Steps past the cap are dropped with a diagnostic.
const maxSteps = 1024

// tokenKind selects the expansion a step performs.
type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenSeverity
	tokenName
	tokenMessage
	tokenFunctionName
	tokenFileName
	tokenTime
	tokenTimeNanoseconds
	tokenLineNumber
)

// tokenKinds maps the text between braces to its expansion.
var tokenKinds = map[string]tokenKind{
	"severity":            tokenSeverity,
	"name":                tokenName,
	"message":             tokenMessage,
	"function_name":       tokenFunctionName,
	"file_name":           tokenFileName,
	"time":                tokenTime,
	"time_as_nanoseconds": tokenTimeNanoseconds,
	"line_number":         tokenLineNumber,
}

// step is one instruction of a compiled format program: either a literal
// byte range of the retained format string, or a token expansion.
type step struct {
	kind       tokenKind
	start, end int // byte range into the format string, tokenLiteral only
}

// compileFormat scans format left to right into a step program. Each '{'
// is matched against the next '}'; a recognized token between them
// becomes a token step, anything else leaves the '{' as an ordinary
// literal byte. An unmatched '{' and everything after it is literal.
//
// Compilation happens once per Initialize, so record emission never
// parses the format string.
func compileFormat(format string) []step {
	steps := make([]step, 0, 8)
	full := false
	push := func(s step) bool {
		if len(steps) >= maxSteps {
			full = true
			return false
		}
		steps = append(steps, s)
		return true
	}

	lit, i := 0, 0
	for i < len(format) {
		if format[i] != '{' {
			i++
			continue
		}
		rel := strings.IndexByte(format[i+1:], '}')
		if rel < 0 {
			break
		}
		kind, known := tokenKinds[format[i+1:i+1+rel]]
		if !known {
			i++
			continue
		}
		if i > lit {
			if !push(step{kind: tokenLiteral, start: lit, end: i}) {
				break
			}
		}
		if !push(step{kind: kind}) {
			break
		}
		i += rel + 2
		lit = i
	}
	if !full && lit < len(format) {
		push(step{kind: tokenLiteral, start: lit, end: len(format)})
	}
	if full {
		fmt.Fprintf(os.Stderr, "[utilkit|logging] format program exceeds %d steps, remainder dropped\n", maxSteps)
	}
	return steps
}

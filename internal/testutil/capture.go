// Package testutil provides small helpers shared by package tests.
package testutil

import (
	"io"
	"os"
	"strings"
	"testing"
)

// CaptureStderr redirects os.Stderr for the duration of fn and returns
// everything written to it. Diagnostics in this library read os.Stderr at
// call time, so the swap is visible to code invoked inside fn.
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return captureFile(t, &os.Stderr, fn)
}

// CaptureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return captureFile(t, &os.Stdout, fn)
}

func captureFile(t *testing.T, target **os.File, fn func()) string {
	t.Helper()

	old := *target
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	*target = w

	done := make(chan string, 1)
	go func() {
		var sb strings.Builder
		_, _ = io.Copy(&sb, r)
		_ = r.Close()
		done <- sb.String()
	}()

	func() {
		defer func() {
			*target = old
			_ = w.Close()
		}()
		fn()
	}()

	return <-done
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/joshuapare/utilkit/errstate"
	"github.com/joshuapare/utilkit/logging"
)

// resetLogging returns the logging system and the environment it reads to
// a clean slate, so commands in one test case cannot leak into the next.
func resetLogging(t *testing.T) {
	t.Helper()
	if err := logging.Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	errstate.Reset()
	for _, k := range loggingEnvVars {
		t.Setenv(k, "")
	}
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output contains none of the given strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, bad := range unwanted {
		if strings.Contains(output, bad) {
			t.Errorf("output contains unwanted string %q\nGot: %s", bad, output)
		}
	}
}

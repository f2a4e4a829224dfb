//go:build !windows

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/utilkit/internal/testutil"
)

// TestConsoleOutput_ColorForced tests the escape sequences emitted for
// each severity when color is forced on.
func TestConsoleOutput_ColorForced(t *testing.T) {
	freshState(t)
	clearEnv(t)
	t.Setenv(envUseStdout, "1")
	t.Setenv(envColorized, "1")
	t.Setenv(envOutputFormat, "{message}")

	out := testutil.CaptureStdout(t, func() {
		require.NoError(t, Initialize())
		require.NoError(t, SetDefaultLoggerLevel(SeverityDebug))
		Debugf("c", "dbg")
		Infof("c", "info")
		Warnf("c", "warn")
		Errorf("c", "boom")
		Fatalf("c", "fatal")
	})
	want := "\x1b[32mdbg\x1b[0m\n" +
		"info\n" +
		"\x1b[33mwarn\x1b[0m\n" +
		"\x1b[31mboom\x1b[0m\n" +
		"\x1b[31mfatal\x1b[0m\n"
	assert.Equal(t, want, out)
}

// TestConsoleOutput_ColorForcedOff tests that "0" suppresses color even
// for severities that would carry one.
func TestConsoleOutput_ColorForcedOff(t *testing.T) {
	freshState(t)
	clearEnv(t)
	t.Setenv(envUseStdout, "1")
	t.Setenv(envColorized, "0")
	t.Setenv(envOutputFormat, "{message}")

	out := testutil.CaptureStdout(t, func() {
		require.NoError(t, Initialize())
		Errorf("c", "boom")
	})
	assert.Equal(t, "boom\n", out)
}

// TestConsoleOutput_ColorAutoOffPipe tests that auto detection keeps
// color off when the stream is not a terminal.
func TestConsoleOutput_ColorAutoOffPipe(t *testing.T) {
	freshState(t)
	clearEnv(t)
	t.Setenv(envUseStdout, "1")
	t.Setenv(envOutputFormat, "{message}")

	out := testutil.CaptureStdout(t, func() {
		require.NoError(t, Initialize())
		Errorf("c", "boom")
	})
	assert.Equal(t, "boom\n", out, "a pipe is not a terminal")
}

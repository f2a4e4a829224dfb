package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/utilkit/status"
)

// TestSeverity_String tests the canonical names and the out-of-set
// placeholder.
func TestSeverity_String(t *testing.T) {
	for _, tc := range []struct {
		sev  Severity
		want string
	}{
		{SeverityUnset, "UNSET"},
		{SeverityDebug, "DEBUG"},
		{SeverityInfo, "INFO"},
		{SeverityWarn, "WARN"},
		{SeverityError, "ERROR"},
		{SeverityFatal, "FATAL"},
		{Severity(7), "UNKNOWN_SEVERITY_7"},
		{Severity(-10), "UNKNOWN_SEVERITY_-10"},
		{Severity(60), "UNKNOWN_SEVERITY_60"},
	} {
		assert.Equal(t, tc.want, tc.sev.String())
	}
}

// TestSeverityFromString tests that every canonical name round-trips
// case-insensitively.
func TestSeverityFromString(t *testing.T) {
	for i, name := range SeverityNames {
		want := Severity(i * 10)

		got, err := SeverityFromString(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, "upper-case %q", name)

		got, err = SeverityFromString(toLower(name))
		require.NoError(t, err)
		assert.Equal(t, want, got, "lower-case %q", name)
	}

	got, err := SeverityFromString("DeBuG")
	require.NoError(t, err)
	assert.Equal(t, SeverityDebug, got)

	for _, bad := range []string{"", "TRACE", "DEBUGX", " INFO", "ÎNFO"} {
		_, err := SeverityFromString(bad)
		assert.ErrorIs(t, err, status.ErrSeverityStringInvalid, "input %q", bad)
	}
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// TestAsciiEqualFold tests that folding is ASCII-only, byte-wise.
func TestAsciiEqualFold(t *testing.T) {
	assert.True(t, asciiEqualFold("fatal", "FATAL"))
	assert.True(t, asciiEqualFold("FaTaL", "fAtAl"))
	assert.False(t, asciiEqualFold("FATAL", "FATAL "))
	assert.False(t, asciiEqualFold("", "A"))
	// The Kelvin sign folds to 'k' under Unicode rules but not here.
	assert.False(t, asciiEqualFold("K", "K"))
	assert.False(t, asciiEqualFold("K", "k"))
}

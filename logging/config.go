package logging

import (
	"fmt"
	"os"

	"yunion.io/x/pkg/tristate"

	"github.com/joshuapare/utilkit/errstate"
	"github.com/joshuapare/utilkit/status"
)

// Environment variable names. These are pinned by the library's contract
// and must not change.
const (
	envOutputFormat       = "RCUTILS_CONSOLE_OUTPUT_FORMAT"
	envUseStdout          = "RCUTILS_LOGGING_USE_STDOUT"
	envBufferedStream     = "RCUTILS_LOGGING_BUFFERED_STREAM"
	envColorized          = "RCUTILS_COLORIZED_OUTPUT"
	envLegacyLineBuffered = "RCUTILS_CONSOLE_STDOUT_LINE_BUFFERED"
)

// defaultOutputFormat is used when RCUTILS_CONSOLE_OUTPUT_FORMAT is unset
// or empty.
const defaultOutputFormat = "[{severity}] [{time}] [{name}]: {message}"

// maxFormatLength caps the accepted format string; longer values are
// truncated with a diagnostic.
const maxFormatLength = 2048

// envConfig is the configuration read from the environment at Initialize.
type envConfig struct {
	useStdout bool
	buffered  bool
	colorMode tristate.TriState
	format    string
}

// strictBool reads key as a strict boolean: "1" is true, "0" is false,
// unset or empty reports set == false. Anything else is an error and the
// caller keeps its default.
func strictBool(key string) (value, set bool, err error) {
	switch v := os.Getenv(key); v {
	case "":
		return false, false, nil
	case "0":
		return false, true, nil
	case "1":
		return true, true, nil
	default:
		errstate.Setf("%s expects '0' or '1', got '%s'", key, v)
		return false, false, fmt.Errorf("logging: %s: %w", key, status.ErrInvalidArgument)
	}
}

// readEnvConfig reads the whole logging environment once. Every setting
// that fails to parse keeps its default; the first failure is returned so
// Initialize can surface it after completing.
func readEnvConfig() (envConfig, error) {
	cfg := envConfig{colorMode: tristate.None, format: defaultOutputFormat}
	var firstErr error

	if v, set, err := strictBool(envUseStdout); err != nil {
		firstErr = err
	} else if set {
		cfg.useStdout = v
	}

	if v, set, err := strictBool(envBufferedStream); err != nil {
		if firstErr == nil {
			firstErr = err
		}
	} else if set {
		cfg.buffered = v
	}

	switch v := os.Getenv(envColorized); v {
	case "":
	case "0":
		cfg.colorMode = tristate.False
	case "1":
		cfg.colorMode = tristate.True
	default:
		errstate.Setf("%s expects '0' or '1', got '%s'", envColorized, v)
		if firstErr == nil {
			firstErr = fmt.Errorf("logging: %s: %w", envColorized, status.ErrInvalidArgument)
		}
	}

	if f := os.Getenv(envOutputFormat); f != "" {
		if len(f) > maxFormatLength {
			fmt.Fprintf(os.Stderr, "[utilkit|logging] %s is %d bytes, truncating to %d\n",
				envOutputFormat, len(f), maxFormatLength)
			f = f[:maxFormatLength]
		}
		cfg.format = f
	}

	if os.Getenv(envLegacyLineBuffered) != "" {
		fmt.Fprintf(os.Stderr, "[utilkit|logging] %s is ignored, use %s instead\n",
			envLegacyLineBuffered, envBufferedStream)
	}

	return cfg, firstErr
}

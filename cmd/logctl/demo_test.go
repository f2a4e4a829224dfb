package main

import (
	"testing"
)

func TestDemoCommand(t *testing.T) {
	tests := []struct {
		name           string
		level          string
		loggerName     string
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:           "default level filters debug",
			loggerName:     "demo",
			wantContain:    []string{"[INFO]", "[WARN]", "[ERROR]", "[FATAL]", "[demo]"},
			wantNotContain: []string{"[DEBUG]"},
		},
		{
			name:        "lowered level shows all five",
			level:       "debug",
			loggerName:  "my.app",
			wantContain: []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]", "[FATAL]", "[my.app]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags
			quiet = false
			verbose = false
			jsonOut = false
			demoName = tt.loggerName
			demoMessage = "the quick brown fox"
			demoLevel = tt.level
			resetLogging(t)
			// Route records to the captured stream.
			t.Setenv("RCUTILS_LOGGING_USE_STDOUT", "1")

			output, err := captureOutput(t, func() error {
				return runDemo()
			})
			if err != nil {
				t.Fatalf("runDemo() error = %v\nOutput: %s", err, output)
			}

			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

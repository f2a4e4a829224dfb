package main

import (
	"testing"
)

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		levels      []string
		wantErr     bool
		wantContain []string
		wantJSON    bool
	}{
		{
			name:        "info passes the default",
			args:        []string{"app", "INFO"},
			wantContain: []string{"Effective: INFO", "Enabled:   yes"},
		},
		{
			name:        "debug blocked by the default",
			args:        []string{"app", "DEBUG"},
			wantErr:     true,
			wantContain: []string{"Enabled:   no"},
		},
		{
			name:        "descendant inherits the configured ancestor",
			args:        []string{"app.db.pool", "DEBUG"},
			levels:      []string{"app.db=DEBUG"},
			wantContain: []string{"Effective: DEBUG", "Enabled:   yes"},
		},
		{
			name:    "raised default blocks warn",
			args:    []string{"anything", "WARN"},
			levels:  []string{"=ERROR"},
			wantErr: true,
		},
		{
			name:        "json verdict",
			args:        []string{"app", "ERROR"},
			wantJSON:    true,
			wantContain: []string{"\"enabled\": true"},
		},
		{
			name:    "bad severity argument",
			args:    []string{"app", "LOUD"},
			wantErr: true,
		},
		{
			name:    "malformed level flag",
			args:    []string{"app", "INFO"},
			levels:  []string{"app:DEBUG"},
			wantErr: true,
		},
		{
			name:    "bad severity in level flag",
			args:    []string{"app", "INFO"},
			levels:  []string{"app=LOUD"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags
			quiet = false
			verbose = false
			jsonOut = tt.wantJSON
			checkLevels = tt.levels
			resetLogging(t)

			output, err := captureOutput(t, func() error {
				return runCheck(tt.args)
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runCheck() error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, output)
				return
			}

			if tt.wantJSON && !tt.wantErr {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/joshuapare/utilkit/logging"
	"github.com/spf13/cobra"
)

var checkLevels []string

func init() {
	cmd := newCheckCmd()
	cmd.Flags().StringArrayVar(&checkLevels, "level", nil,
		"Configure a logger before checking, as name=SEVERITY (repeatable; empty name sets the default)")
	rootCmd.AddCommand(cmd)
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <logger> <severity>",
		Short: "Check whether a record would be emitted",
		Long: `The check command resolves the effective level for a logger name and
reports whether a record of the given severity would pass the gate.
The exit status is 0 when it would, 1 when it would not.

Example:
  logctl check my.app INFO
  logctl check my.app.db DEBUG --level my.app=DEBUG
  logctl check noisy WARN --level ""=ERROR --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runCheck(args)
		},
	}
	return cmd
}

func runCheck(args []string) error {
	name := args[0]
	sev, err := logging.SeverityFromString(args[1])
	if err != nil {
		return fmt.Errorf("bad severity %q: %w", args[1], err)
	}

	for _, spec := range checkLevels {
		loggerName, word, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("bad --level %q: want name=SEVERITY", spec)
		}
		levelSev, err := logging.SeverityFromString(word)
		if err != nil {
			return fmt.Errorf("bad --level %q: %w", spec, err)
		}
		printVerbose("setting %q to %s\n", loggerName, levelSev)
		if err := logging.SetLoggerLevel(loggerName, levelSev); err != nil {
			return fmt.Errorf("cannot configure %q: %w", loggerName, err)
		}
	}

	effective, err := logging.GetLoggerEffectiveLevel(name)
	if err != nil {
		return fmt.Errorf("cannot resolve %q: %w", name, err)
	}
	enabled := logging.LoggerIsEnabledFor(name, sev)

	if jsonOut {
		if err := printJSON(map[string]interface{}{
			"logger":    name,
			"severity":  sev.String(),
			"effective": effective.String(),
			"enabled":   enabled,
		}); err != nil {
			return err
		}
	} else {
		printInfo("Logger:    %q\n", name)
		printInfo("Severity:  %s\n", sev)
		printInfo("Effective: %s\n", effective)
		if enabled {
			printInfo("Enabled:   yes\n")
		} else {
			printInfo("Enabled:   no\n")
		}
	}

	if !enabled {
		return fmt.Errorf("%s is below the effective level %s for %q", sev, effective, name)
	}
	return nil
}

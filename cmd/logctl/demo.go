package main

import (
	"fmt"

	"github.com/joshuapare/utilkit/logging"
	"github.com/spf13/cobra"
)

var (
	demoName    string
	demoMessage string
	demoLevel   string
)

func init() {
	cmd := newDemoCmd()
	cmd.Flags().StringVar(&demoName, "name", "demo", "Logger name to emit under")
	cmd.Flags().StringVar(&demoMessage, "message", "the quick brown fox", "Message body")
	cmd.Flags().StringVar(&demoLevel, "level", "", "Default severity to apply first (e.g. DEBUG)")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Emit one record per severity through the console sink",
		Long: `The demo command pushes one record of every active severity through
the real logging pipeline, so the configured format, stream, and colour
behaviour can be observed directly. Under the default level the DEBUG
record is filtered; pass --level DEBUG to see all five.

Example:
  logctl demo
  logctl demo --level DEBUG --name my.app
  RCUTILS_COLORIZED_OUTPUT=1 logctl demo --level DEBUG`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	return cmd
}

func runDemo() error {
	if err := logging.Initialize(); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	if demoLevel != "" {
		sev, err := logging.SeverityFromString(demoLevel)
		if err != nil {
			return fmt.Errorf("bad --level %q: %w", demoLevel, err)
		}
		if err := logging.SetDefaultLoggerLevel(sev); err != nil {
			return fmt.Errorf("cannot set default level: %w", err)
		}
	}

	printVerbose("emitting as %q with default level %s\n",
		demoName, logging.GetDefaultLoggerLevel())

	logging.Debugf(demoName, "%s", demoMessage)
	logging.Infof(demoName, "%s", demoMessage)
	logging.Warnf(demoName, "%s", demoMessage)
	logging.Errorf(demoName, "%s", demoMessage)
	logging.Fatalf(demoName, "%s", demoMessage)

	return logging.Shutdown()
}

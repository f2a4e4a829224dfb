package main

import (
	"os"

	"github.com/joshuapare/utilkit/errstate"
	"github.com/joshuapare/utilkit/logging"
	"github.com/spf13/cobra"
)

// The environment contract of the logging system.
var loggingEnvVars = []string{
	"RCUTILS_CONSOLE_OUTPUT_FORMAT",
	"RCUTILS_LOGGING_USE_STDOUT",
	"RCUTILS_LOGGING_BUFFERED_STREAM",
	"RCUTILS_COLORIZED_OUTPUT",
	"RCUTILS_CONSOLE_STDOUT_LINE_BUFFERED",
}

func init() {
	rootCmd.AddCommand(newConfigCmd())
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Initialize from the environment and report the outcome",
		Long: `The config command initializes the logging system exactly as a
library consumer would, from the RCUTILS_* environment variables, and
reports each variable's raw value and whether initialization accepted
the configuration. Parse diagnostics are printed on stderr by the
library itself.

Example:
  logctl config
  RCUTILS_LOGGING_USE_STDOUT=yes logctl config
  logctl config --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig()
		},
	}
	return cmd
}

func runConfig() error {
	env := make(map[string]string, len(loggingEnvVars))
	for _, k := range loggingEnvVars {
		env[k] = os.Getenv(k)
	}

	initErr := logging.Initialize()
	detail := ""
	if initErr != nil {
		detail = errstate.GetMessage()
		errstate.Reset()
	}

	result := map[string]interface{}{
		"environment":   env,
		"initialized":   logging.IsInitialized(),
		"default_level": logging.GetDefaultLoggerLevel().String(),
		"accepted":      initErr == nil,
	}
	if initErr != nil {
		result["error"] = initErr.Error()
		result["detail"] = detail
	}

	if jsonOut {
		return printJSON(result)
	}

	printInfo("Environment:\n")
	for _, k := range loggingEnvVars {
		v := env[k]
		if v == "" {
			v = "(unset)"
		}
		printInfo("  %-38s %s\n", k, v)
	}
	printInfo("\nInitialized:   %v\n", logging.IsInitialized())
	printInfo("Default level: %s\n", logging.GetDefaultLoggerLevel())
	if initErr != nil {
		printInfo("Accepted:      no\n")
		printInfo("  error:  %v\n", initErr)
		if detail != "" {
			printInfo("  detail: %s\n", detail)
		}
		return nil
	}
	printInfo("Accepted:      yes\n")
	return nil
}

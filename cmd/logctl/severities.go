package main

import (
	"fmt"

	"github.com/joshuapare/utilkit/errstate"
	"github.com/joshuapare/utilkit/logging"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSeveritiesCmd())
}

func newSeveritiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "severities [name...]",
		Short: "List the severity set or parse severity names",
		Long: `The severities command lists the enumerated severity set. With
arguments it parses each word instead (matching is ASCII
case-insensitive) and prints the canonical name and numeric value.

Example:
  logctl severities
  logctl severities warn Error FATAL
  logctl severities --json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeverities(args)
		},
	}
	return cmd
}

func runSeverities(args []string) error {
	if len(args) == 0 {
		return listSeverities()
	}

	type parsed struct {
		Input string `json:"input"`
		Name  string `json:"name"`
		Value int    `json:"value"`
	}
	results := make([]parsed, 0, len(args))
	for _, word := range args {
		sev, err := logging.SeverityFromString(word)
		if err != nil {
			detail := errstate.GetMessage()
			errstate.Reset()
			return fmt.Errorf("cannot parse %q: %s", word, detail)
		}
		results = append(results, parsed{Input: word, Name: sev.String(), Value: int(sev)})
	}

	if jsonOut {
		return printJSON(results)
	}
	for _, r := range results {
		printInfo("%-10s -> %s (%d)\n", r.Input, r.Name, r.Value)
	}
	return nil
}

func listSeverities() error {
	type entry struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}
	entries := make([]entry, 0, len(logging.SeverityNames))
	for i, name := range logging.SeverityNames {
		entries = append(entries, entry{Name: name, Value: i * 10})
	}

	if jsonOut {
		return printJSON(entries)
	}
	printInfo("Severities:\n")
	for _, e := range entries {
		printInfo("  %2d  %s\n", e.Value, e.Name)
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/chembal/internal/balance"
)

// ExampleEntry is one balanced sample equation.
type ExampleEntry struct {
	Equation     string  `json:"equation"`
	Balanced     string  `json:"balanced,omitempty"`
	Coefficients []int64 `json:"coefficients,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// NewExamplesCommand creates the examples command.
func NewExamplesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "examples",
		Short:         "Balance the built-in sample equations",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExamples(rootOpts, cmd)
		},
	}
}

func runExamples(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	entries := make([]ExampleEntry, 0, len(balance.Examples))
	failed := 0
	for _, eq := range balance.Examples {
		entry := ExampleEntry{Equation: eq}
		res, err := balance.Balance(eq)
		if err != nil {
			entry.Error = err.Error()
			failed++
		} else {
			entry.Balanced = res.Balanced
			entry.Coefficients = res.Coefficients
		}
		entries = append(entries, entry)
	}

	if opts.Format == "json" {
		if err := formatter.Success(entries); err != nil {
			return err
		}
	} else {
		for _, e := range entries {
			if e.Error != "" {
				fmt.Fprintf(formatter.Writer, "%-28s  error: %s\n", e.Equation, e.Error)
				continue
			}
			fmt.Fprintln(formatter.Writer, e.Balanced)
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d example(s) failed", failed))
	}
	return nil
}

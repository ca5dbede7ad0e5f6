package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/chembal/internal/balance"
	"github.com/roach88/chembal/internal/chem"
)

// BalanceOptions holds flags for the balance command.
type BalanceOptions struct {
	*RootOptions
	Steps bool // print the worked solution
}

// BalanceOutput is the JSON payload of a successful balance.
type BalanceOutput struct {
	*balance.Result
	Variables []Variable     `json:"variables"`
	Steps     []balance.Step `json:"steps,omitempty"`
	RecordID  string         `json:"record_id,omitempty"`
}

// Variable maps an unknown of the linear system to its species.
type Variable struct {
	Name    string `json:"name"`
	Species string `json:"species"`
}

func variables(res *balance.Result) []Variable {
	out := make([]Variable, len(res.Unknowns))
	for i, u := range res.Unknowns {
		out[i] = Variable{Name: u.Name, Species: u.Species}
	}
	return out
}

// NewBalanceCommand creates the balance command.
func NewBalanceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BalanceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "balance <equation>",
		Short: "Balance a chemical equation",
		Long: `Balance one chemical equation with the smallest positive integer coefficients.

Arguments are joined with spaces. Quote an equation that uses '->', or
pass it after '--', since the flag parser reads a bare '->' as a flag.

Exit codes:
  0 - Balanced
  1 - Malformed equation or no unique positive solution
  2 - Command error (history database unavailable, etc.)

Examples:
  chembal balance "H2 + O2 -> H2O"
  chembal balance Fe + O2 = Fe2O3 --steps
  chembal balance -- Fe + O2 -> Fe2O3
  chembal balance "C3H8 + O2 = CO2 + H2O" --db history.db --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalance(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Steps, "steps", false, "show the worked solution step by step")

	return cmd
}

func runBalance(opts *BalanceOptions, equation string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.formatter(cmd)
	logger := formatter.Logger()

	res, err := balance.Balance(equation)
	if err != nil {
		return outputBalanceError(formatter, equation, err)
	}
	logger.Debug().
		Strs("elements", res.Elements).
		Ints64("coefficients", res.Coefficients).
		Msg("balanced")

	rec, err := openRecorder(ctx, opts.DB, opts.runIDs())
	if err != nil {
		return outputStoreError(formatter, "failed to open history database", err)
	}
	defer rec.Close()

	recordID, err := rec.record(ctx, res)
	if err != nil {
		return outputStoreError(formatter, "failed to record result", err)
	}
	if recordID != "" {
		formatter.VerboseLog("recorded %s in run %s", recordID, rec.runID())
	}

	if opts.Format == "json" {
		out := BalanceOutput{Result: res, Variables: variables(res), RecordID: recordID}
		if opts.Steps {
			out.Steps = res.Steps()
		}
		return formatter.encode(CLIResponse{Status: "ok", Data: out, RunID: rec.runID()})
	}

	if opts.Steps {
		writeSteps(formatter, res.Steps())
		return nil
	}
	return formatter.Success(res.Balanced)
}

// writeSteps prints the worked solution as numbered sections.
func writeSteps(formatter *OutputFormatter, steps []balance.Step) {
	w := formatter.Writer
	for i, step := range steps {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Step %d: %s\n", i+1, step.Title)
		for _, line := range step.Lines {
			if line == "" {
				fmt.Fprintln(w)
				continue
			}
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

// balanceErrorCode maps a balancing error to its CLI code.
func balanceErrorCode(err error) string {
	class, _ := chem.Classify(err)
	switch class {
	case chem.ClassFormat:
		return ErrCodeFormat
	case chem.ClassSingular:
		return ErrCodeSingular
	case chem.ClassDegenerate:
		return ErrCodeDegenerate
	default:
		return ErrCodeGeneric
	}
}

// BalanceErrorDetails is the JSON detail object of a balancing error.
type BalanceErrorDetails struct {
	Equation string `json:"equation"`
	Class    string `json:"class,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

// outputBalanceError reports a balancing failure. Exit code 1.
func outputBalanceError(formatter *OutputFormatter, equation string, err error) error {
	class, kind := chem.Classify(err)
	code := balanceErrorCode(err)
	details := BalanceErrorDetails{Equation: equation, Class: class, Kind: kind}
	if outErr := formatter.Error(code, err.Error(), details); outErr != nil {
		return outErr
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%s: %v", code, err))
}

// outputStoreError reports a history database failure. Exit code 2.
func outputStoreError(formatter *OutputFormatter, message string, err error) error {
	if outErr := formatter.Error(ErrCodeStoreFailed, fmt.Sprintf("%s: %v", message, err), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, message, err)
}

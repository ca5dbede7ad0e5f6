package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/chembal/internal/balance"
	"github.com/roach88/chembal/internal/compiler"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
}

// BatchEntry is the outcome of one reaction in a batch.
type BatchEntry struct {
	Name         string  `json:"name"`
	Equation     string  `json:"equation"`
	Pass         bool    `json:"pass"`
	Balanced     string  `json:"balanced,omitempty"`
	Coefficients []int64 `json:"coefficients,omitempty"`
	Expect       []int64 `json:"expect,omitempty"`
	RecordID     string  `json:"record_id,omitempty"`
	Code         string  `json:"code,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// BatchResult holds the overall batch result.
type BatchResult struct {
	Reactions []BatchEntry `json:"reactions"`
	Passed    int          `json:"passed"`
	Failed    int          `json:"failed"`
	Total     int          `json:"total"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <file.cue|dir>",
		Short: "Balance every reaction in a CUE reaction set",
		Long: `Balance every reaction in a CUE reaction set.

A reaction set declares named reactions with optional expected coefficients:

  reaction: rust: { equation: "Fe + O2 = Fe2O3", expect: [4, 3, 2] }

Exit codes:
  0 - Every reaction balanced and matched its expectation
  1 - One or more reactions failed
  2 - Command error (missing or invalid reaction set, database errors)

Examples:
  chembal batch reactions.cue
  chembal batch ./reactions --db history.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args[0], cmd)
		},
	}

	return cmd
}

func runBatch(opts *BatchOptions, path string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.formatter(cmd)

	loadResult, err := LoadReactions(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return outputLoadError(formatter, loadErr)
		}
		return outputLoadError(formatter, &LoadError{Code: ErrCodeGeneric, Message: err.Error()})
	}
	formatter.VerboseLog("loaded %d reaction(s) from %d CUE file(s)", len(loadResult.Reactions), loadResult.FileCount)

	if verrs := compiler.Validate(loadResult.Reactions); len(verrs) > 0 {
		return outputValidationErrors(formatter, verrs)
	}

	rec, err := openRecorder(ctx, opts.DB, opts.runIDs())
	if err != nil {
		return outputStoreError(formatter, "failed to open history database", err)
	}
	defer rec.Close()

	result := BatchResult{
		Reactions: make([]BatchEntry, 0, len(loadResult.Reactions)),
		Total:     len(loadResult.Reactions),
	}
	for _, spec := range loadResult.Reactions {
		entry := BatchEntry{Name: spec.Name, Equation: spec.Equation, Expect: spec.Expect}

		res, err := balance.Balance(spec.Equation)
		switch {
		case err != nil:
			entry.Code = balanceErrorCode(err)
			entry.Error = err.Error()
		case spec.Expect != nil && !slices.Equal(spec.Expect, res.Coefficients):
			entry.Balanced = res.Balanced
			entry.Coefficients = res.Coefficients
			entry.Code = ErrCodeMismatch
			entry.Error = fmt.Sprintf("coefficients %v, expected %v", res.Coefficients, spec.Expect)
		default:
			entry.Balanced = res.Balanced
			entry.Coefficients = res.Coefficients
			entry.Pass = true
		}

		if res != nil {
			id, err := rec.record(ctx, res)
			if err != nil {
				return outputStoreError(formatter, "failed to record result", err)
			}
			entry.RecordID = id
		}

		if entry.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		formatter.VerboseLog("%s: pass=%t", spec.Name, entry.Pass)
		result.Reactions = append(result.Reactions, entry)
	}

	if opts.Format == "json" {
		return outputBatchJSON(formatter, result, rec.runID())
	}
	return outputBatchText(formatter, result)
}

func outputBatchJSON(formatter *OutputFormatter, result BatchResult, runID string) error {
	response := CLIResponse{Status: "ok", Data: result, RunID: runID}
	if result.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeMismatch,
			Message: fmt.Sprintf("%d reaction(s) failed", result.Failed),
		}
	}
	if err := formatter.encode(response); err != nil {
		return err
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d reaction(s) failed", result.Failed))
	}
	return nil
}

func outputBatchText(formatter *OutputFormatter, result BatchResult) error {
	w := formatter.Writer
	for _, entry := range result.Reactions {
		if entry.Pass {
			fmt.Fprintf(w, "✓ %s: %s\n", entry.Name, entry.Balanced)
			continue
		}
		fmt.Fprintf(w, "✗ %s: %s\n", entry.Name, entry.Equation)
		fmt.Fprintf(w, "  [%s] %s\n", entry.Code, entry.Error)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Batch Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d reaction(s) failed", result.Failed))
	}
	return nil
}

// outputLoadError reports an unreadable reaction set. Exit code 2.
func outputLoadError(formatter *OutputFormatter, loadErr *LoadError) error {
	var details interface{}
	if loadErr.Pos.IsValid() {
		details = map[string]interface{}{
			"file":   loadErr.Pos.Filename(),
			"line":   loadErr.Pos.Line(),
			"column": loadErr.Pos.Column(),
		}
	}
	if err := formatter.Error(loadErr.Code, loadErr.Message, details); err != nil {
		return err
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", loadErr.Code, loadErr.Message))
}

// outputValidationErrors reports reaction set content errors. Exit code 2.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		first := errs[0]
		if err := formatter.Error(first.Code, fmt.Sprintf("reaction set invalid: %d error(s)", len(errs)), errs); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("reaction set invalid: %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Reaction set invalid")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", e.Code, e.Field, e.Message)
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("reaction set invalid: %d error(s)", len(errs)))
}


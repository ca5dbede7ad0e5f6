package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/chembal/internal/config"
	"github.com/roach88/chembal/internal/ir"
	"github.com/roach88/chembal/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int    // most recent N records; 0 lists everything
	RunID string // restrict to one run
}

// NewHistoryCommand creates the history command and its show subcommand.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded balance results",
		Long: `List results recorded with --db, oldest first.

Examples:
  chembal history --db history.db
  chembal history --db history.db --limit 5
  chembal history --db history.db --run 0192e4c1-...
  chembal history show <record-id> --db history.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", config.DefaultHistoryLimit, "number of most recent records to list (0 for all)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "only list records from this run")

	cmd.AddCommand(newHistoryShowCommand(rootOpts))

	return cmd
}

func newHistoryShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <record-id>",
		Short:         "Show one recorded result",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(rootOpts, args[0], cmd)
		},
	}
}

// openHistory opens an existing history database. Reading never creates one.
func openHistory(formatter *OutputFormatter, path string) (*store.Store, error) {
	if path == "" {
		if err := formatter.Error(ErrCodeStoreFailed, "no history database: pass --db or set "+config.EnvDB, nil); err != nil {
			return nil, err
		}
		return nil, NewExitError(ExitCommandError, "no history database configured")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := formatter.Error(ErrCodeNotFound, fmt.Sprintf("history database not found: %s", path), nil); err != nil {
			return nil, err
		}
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("history database not found: %s", path))
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, outputStoreError(formatter, "failed to open history database", err)
	}
	return st, nil
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.formatter(cmd)

	st, err := openHistory(formatter, opts.DB)
	if err != nil {
		return err
	}
	defer st.Close()

	var records []ir.Record
	if opts.RunID != "" {
		records, err = st.ListRun(ctx, opts.RunID)
		if err == nil && opts.Limit > 0 && len(records) > opts.Limit {
			records = records[len(records)-opts.Limit:]
		}
	} else {
		records, err = st.ListRecords(ctx, opts.Limit)
	}
	if err != nil {
		return outputStoreError(formatter, "failed to list history", err)
	}
	formatter.VerboseLog("listed %d record(s) from %s", len(records), opts.DB)

	if opts.Format == "json" {
		return formatter.Success(records)
	}

	w := formatter.Writer
	if len(records) == 0 {
		fmt.Fprintln(w, "No records.")
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(w, "%s  %4d  %s\n", shortID(rec.ID), rec.Seq, rec.Balanced)
	}
	return nil
}

// HistoryShowOutput is the JSON payload of history show. SameContent lists
// other records, from any run, with an identical balance.
type HistoryShowOutput struct {
	Record      ir.Record   `json:"record"`
	SameContent []ir.Record `json:"same_content"`
}

func runHistoryShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.formatter(cmd)

	st, err := openHistory(formatter, opts.DB)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.ReadRecord(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		if outErr := formatter.Error(ErrCodeNoRecord, fmt.Sprintf("record not found: %s", id), nil); outErr != nil {
			return outErr
		}
		return NewExitError(ExitFailure, fmt.Sprintf("record not found: %s", id))
	}
	if err != nil {
		return outputStoreError(formatter, "failed to read record", err)
	}

	matches, err := st.FindByContent(ctx, rec)
	if err != nil {
		return outputStoreError(formatter, "failed to find matching records", err)
	}
	others := make([]ir.Record, 0, len(matches))
	for _, m := range matches {
		if m.ID != rec.ID {
			others = append(others, m)
		}
	}

	if opts.Format == "json" {
		return formatter.Success(HistoryShowOutput{Record: rec, SameContent: others})
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Record:       %s\n", rec.ID)
	fmt.Fprintf(w, "Run:          %s (seq %d)\n", rec.RunID, rec.Seq)
	fmt.Fprintf(w, "Input:        %s\n", rec.Input)
	fmt.Fprintf(w, "Balanced:     %s\n", rec.Balanced)
	fmt.Fprintf(w, "Elements:     %s\n", strings.Join(rec.Elements, ", "))
	fmt.Fprintf(w, "Coefficients: %v\n", rec.Coefficients)
	if len(others) > 0 {
		fmt.Fprintln(w, "Also balanced in:")
		for _, o := range others {
			fmt.Fprintf(w, "  %s  run %s (seq %d)\n", shortID(o.ID), o.RunID, o.Seq)
		}
	}
	return nil
}

// shortID abbreviates a record hash for list output.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

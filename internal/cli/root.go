package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/chembal/internal/config"
	"github.com/roach88/chembal/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	DB         string // history database; empty disables recording
	ConfigPath string

	// RunIDs generates history run IDs. Nil means UUIDv7.
	RunIDs store.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{config.FormatText, config.FormatJSON}

// NewRootCommand creates the root command for the chembal CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chembal",
		Short: "chembal - chemical equation balancer",
		Long: `Balance chemical equations with the smallest positive integer coefficients.

Equations use '=', '->' or '→' between reactants and products and '+'
between species. Formulas may nest parenthesized groups, e.g. K4Fe(CN)6.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.FormatText, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "history database path (records results when set)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.chembal/config.toml)")

	// Add subcommands
	cmd.AddCommand(NewBalanceCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewExamplesCommand(opts))

	return cmd
}

// Execute runs cmd. Errors cobra raises on its own (missing arguments,
// unknown flags, unknown commands) never reach an OutputFormatter, so they
// are logged to stderr here and become command errors.
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	logger := consoleLogger(cmd.ErrOrStderr())
	logger.Error().Err(err).Msg("chembal")
	return WrapExitError(ExitCommandError, "invalid usage", err)
}

// resolve layers the config file and CHEMBAL_* environment under any flags
// set on the command line, then validates the result.
func (opts *RootOptions) resolve(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfg := config.DefaultConfig()
	cfg.Format = opts.Format
	cfg.DB = opts.DB
	cfg.Verbose = opts.Verbose
	if err := config.Resolve(&cfg, opts.ConfigPath, changed); err != nil {
		exitErr := WrapExitError(ExitCommandError, "failed to load configuration", err)
		if !isValidFormat(cfg.Format) {
			exitErr = NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", cfg.Format, ValidFormats))
		}
		return reportResolveError(cmd, exitErr)
	}

	opts.Format = cfg.Format
	opts.DB = cfg.DB
	opts.Verbose = cfg.Verbose

	// Flags owned by subcommands pick up file and environment values too.
	local := map[string]string{
		"steps": strconv.FormatBool(cfg.Steps),
		"limit": strconv.Itoa(cfg.Limit),
	}
	for name, value := range local {
		f := cmd.Flags().Lookup(name)
		if f == nil || changed[name] {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return reportResolveError(cmd, WrapExitError(ExitCommandError, fmt.Sprintf("invalid %s setting", name), err))
		}
	}
	return nil
}

// reportResolveError logs a configuration failure on stderr. The output
// format may itself be the broken setting, so the formatter is not used.
func reportResolveError(cmd *cobra.Command, err *ExitError) error {
	logger := consoleLogger(cmd.ErrOrStderr())
	logger.Error().Msg(err.Error())
	return err
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

func (opts *RootOptions) runIDs() store.IDGenerator {
	if opts.RunIDs != nil {
		return opts.RunIDs
	}
	return store.UUIDv7Generator{}
}

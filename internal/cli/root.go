package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/tracklog/internal/config"
	"github.com/roach88/tracklog/internal/store"
	"github.com/roach88/tracklog/internal/tracker"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string // overrides the configured database path
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tracklog CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tracklog",
		Short: "Local-first, event-sourced time tracking",
		Long: `tracklog records work time as an append-only event log materialized
into a queryable table. Entries are soft-deleted, never destroyed, and the
table can always be rebuilt by replaying the log.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			logLevel := slog.LevelWarn
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewRebuildCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
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

// runtime bundles the opened storage core for one command invocation.
type runtime struct {
	Store   *store.Store
	Service *tracker.Service
	Loc     *time.Location
}

// openRuntime resolves config, opens the store, and wires the service.
// The returned closer must be deferred by the caller.
func openRuntime(opts *RootOptions) (*runtime, func(), error) {
	cfg := config.DefaultConfig()
	if path, err := config.Path(); err == nil {
		if loaded, err := config.Load(path); err == nil {
			cfg = loaded
		} else {
			slog.Warn("ignoring unreadable config", "path", path, "error", err)
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "bad config", err)
	}

	dbPath := opts.Database
	if dbPath == "" {
		dbPath, err = cfg.ResolveDatabasePath()
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "resolve database path", err)
		}
	}

	slog.Debug("opening database", "path", dbPath)
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	rt := &runtime{
		Store:   st,
		Service: tracker.New(st),
		Loc:     loc,
	}
	closer := func() {
		if err := st.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}
	return rt, closer, nil
}

// newFormatter builds the output formatter for a command.
func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
}

// parseDay parses a calendar-date argument: "today", "yesterday" or
// YYYY-MM-DD. The result is anchored at noon in loc so it stays on the
// intended day regardless of DST.
func parseDay(s string, loc *time.Location) (time.Time, error) {
	now := time.Now().In(loc)
	switch strings.ToLower(s) {
	case "", "today":
		return atNoon(now), nil
	case "yesterday":
		return atNoon(now.AddDate(0, 0, -1)), nil
	}

	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD, today or yesterday", s)
	}
	return atNoon(t), nil
}

func atNoon(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}

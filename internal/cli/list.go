package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/tracklog/internal/entry"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		monthStr string
		dateStr  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active entries",
		Long: `List active entries, newest first. With --month the listing is
scoped to one calendar month, with --date to a single day.`,
		Example: `  tracklog list
  tracklog list --month 2026-08
  tracklog list --date yesterday`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if monthStr != "" && dateStr != "" {
				return NewExitError(ExitCommandError, "--month and --date are mutually exclusive")
			}

			rt, closer, err := openRuntime(rootOpts)
			if err != nil {
				return err
			}
			defer closer()
			f := newFormatter(cmd, rootOpts)

			var entries []entry.Entry
			switch {
			case dateStr != "":
				day, err := parseDay(dateStr, rt.Loc)
				if err != nil {
					return WrapExitError(ExitCommandError, "bad arguments", err)
				}
				e, found, err := rt.Service.GetByDate(cmd.Context(), day)
				if err != nil {
					return reportError(f, err)
				}
				if found {
					entries = []entry.Entry{e}
				} else {
					entries = []entry.Entry{}
				}
			case monthStr != "":
				t, err := time.ParseInLocation("2006-01", monthStr, rt.Loc)
				if err != nil {
					return WrapExitError(ExitCommandError, "bad arguments",
						fmt.Errorf("invalid month %q: use YYYY-MM", monthStr))
				}
				entries, err = rt.Service.ListMonth(cmd.Context(), t.Year(), t.Month())
				if err != nil {
					return reportError(f, err)
				}
			default:
				entries, err = rt.Service.ListActive(cmd.Context())
				if err != nil {
					return reportError(f, err)
				}
			}

			if rootOpts.Format == "json" {
				return f.Success(toDTOs(entries, rt.Loc))
			}
			writeEntryTable(cmd.OutOrStdout(), entries, rt.Loc)
			return nil
		},
	}

	cmd.Flags().StringVar(&monthStr, "month", "", "limit to a month (YYYY-MM)")
	cmd.Flags().StringVar(&dateStr, "date", "", "look up a single day (YYYY-MM-DD, today, yesterday)")

	return cmd
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tracklog/internal/validate"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		dateStr    string
		minutesStr string
	)

	cmd := &cobra.Command{
		Use:   "add [description...]",
		Short: "Record a new time entry",
		Long: `Record a new time entry for a day. The description is taken from the
remaining arguments and may be empty.`,
		Example: `  tracklog add -m 90 code review
  tracklog add --date 2026-08-12 -m 480 onsite workshop
  tracklog add --date yesterday -m 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closer, err := openRuntime(rootOpts)
			if err != nil {
				return err
			}
			defer closer()
			f := newFormatter(cmd, rootOpts)

			date, err := parseDay(dateStr, rt.Loc)
			if err != nil {
				return WrapExitError(ExitCommandError, "bad arguments", err)
			}

			// Parsed as float so fractional input fails validation with a
			// precise message instead of a strconv error.
			minutes, err := strconv.ParseFloat(minutesStr, 64)
			if err != nil {
				return WrapExitError(ExitCommandError, "bad arguments",
					fmt.Errorf("invalid minutes %q: must be a number", minutesStr))
			}
			if err := validate.Minutes(minutes); err != nil {
				return reportError(f, err)
			}

			e, err := rt.Service.Create(cmd.Context(), date, int(minutes), strings.Join(args, " "))
			if err != nil {
				return reportError(f, err)
			}

			if rootOpts.Format == "json" {
				return f.Success(toDTO(e, rt.Loc))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %dm on %s\n",
				e.ID, e.Minutes, e.Date.In(rt.Loc).Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "today", "entry date (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVarP(&minutesStr, "minutes", "m", "", "duration in minutes (required)")
	_ = cmd.MarkFlagRequired("minutes")

	return cmd
}

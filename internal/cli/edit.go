package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/tracklog/internal/entry"
	"github.com/roach88/tracklog/internal/validate"
)

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		dateStr    string
		minutesStr string
		desc       string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an existing entry",
		Long: `Change one or more fields of an entry. Only the flags given are
changed; omitted fields keep their current value. Editing an unknown or
deleted id records the change but has no visible effect.`,
		Example: `  tracklog edit 7a1f... -m 120
  tracklog edit 7a1f... --date 2026-08-12 --desc "sprint planning"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closer, err := openRuntime(rootOpts)
			if err != nil {
				return err
			}
			defer closer()
			f := newFormatter(cmd, rootOpts)

			var patch entry.Patch
			if cmd.Flags().Changed("date") {
				date, err := parseDay(dateStr, rt.Loc)
				if err != nil {
					return WrapExitError(ExitCommandError, "bad arguments", err)
				}
				patch.Date = &date
			}
			if cmd.Flags().Changed("minutes") {
				minutes, err := strconv.ParseFloat(minutesStr, 64)
				if err != nil {
					return WrapExitError(ExitCommandError, "bad arguments",
						fmt.Errorf("invalid minutes %q: must be a number", minutesStr))
				}
				if err := validate.Minutes(minutes); err != nil {
					return reportError(f, err)
				}
				m := int(minutes)
				patch.Minutes = &m
			}
			if cmd.Flags().Changed("desc") {
				patch.Description = &desc
			}

			if patch.IsZero() {
				return NewExitError(ExitCommandError, "nothing to change: pass --date, --minutes or --desc")
			}

			if err := rt.Service.Update(cmd.Context(), args[0], patch); err != nil {
				return reportError(f, err)
			}

			if rootOpts.Format == "json" {
				return f.Success(map[string]string{"id": args[0]})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "new date (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVarP(&minutesStr, "minutes", "m", "", "new duration in minutes")
	cmd.Flags().StringVar(&desc, "desc", "", "new description")

	return cmd
}

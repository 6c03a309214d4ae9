package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closer, err := openRuntime(rootOpts)
			if err != nil {
				return err
			}
			defer closer()
			f := newFormatter(cmd, rootOpts)

			stats, err := rt.Service.Stats(cmd.Context())
			if err != nil {
				return reportError(f, err)
			}
			events, err := rt.Store.EventCount(cmd.Context())
			if err != nil {
				return reportError(f, err)
			}

			if rootOpts.Format == "json" {
				return f.Success(map[string]int{
					"total":   stats.Total,
					"active":  stats.Active,
					"deleted": stats.Deleted,
					"events":  events,
				})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Entries: %d total, %d active, %d deleted\n",
				stats.Total, stats.Active, stats.Deleted)
			fmt.Fprintf(w, "Events:  %d\n", events)
			return nil
		},
	}

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRebuildCommand creates the rebuild command.
func NewRebuildCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild the entries table from the event log",
		Long: `Drop the materialized entries and refold the full event log. The
result is identical to the state before the rebuild unless the table had
drifted, which this repairs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closer, err := openRuntime(rootOpts)
			if err != nil {
				return err
			}
			defer closer()
			f := newFormatter(cmd, rootOpts)

			if err := rt.Store.Rebuild(cmd.Context()); err != nil {
				return reportError(f, err)
			}

			events, err := rt.Store.EventCount(cmd.Context())
			if err != nil {
				return reportError(f, err)
			}

			if rootOpts.Format == "json" {
				return f.Success(map[string]int{"events": events})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rebuilt from %d events\n", events)
			return nil
		},
	}

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all active entries",
		Long: `Soft-delete every active entry in one batch. The event log is kept,
so the deletion itself is recorded and the state stays rebuildable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return NewExitError(ExitCommandError, "refusing to clear without --force")
			}

			rt, closer, err := openRuntime(rootOpts)
			if err != nil {
				return err
			}
			defer closer()
			f := newFormatter(cmd, rootOpts)

			result := rt.Service.ClearAllData(cmd.Context())
			if !result.Success {
				_ = f.Error(CodeStorage, result.Error, nil)
				return NewExitError(ExitFailure, "")
			}

			if rootOpts.Format == "json" {
				return f.Success(result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries\n", result.Cleared)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "actually clear the data")

	return cmd
}

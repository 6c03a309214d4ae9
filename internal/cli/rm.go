package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an entry",
		Long: `Soft-delete an entry. The entry disappears from listings but its
history stays in the event log. Deleting an unknown or already deleted id
succeeds without effect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closer, err := openRuntime(rootOpts)
			if err != nil {
				return err
			}
			defer closer()
			f := newFormatter(cmd, rootOpts)

			if err := rt.Service.Delete(cmd.Context(), args[0]); err != nil {
				return reportError(f, err)
			}

			if rootOpts.Format == "json" {
				return f.Success(map[string]string{"id": args[0]})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}

	return cmd
}

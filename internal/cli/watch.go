package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the active listing whenever the data changes",
		Long: `Print the active listing, then reprint it each time a batch of
changes lands. Rapid batches may be coalesced into a single reprint.
Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closer, err := openRuntime(rootOpts)
			if err != nil {
				return err
			}
			defer closer()
			f := newFormatter(cmd, rootOpts)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sub := rt.Service.Subscribe()
			defer rt.Service.Unsubscribe(sub)

			print := func() error {
				entries, err := rt.Service.ListActive(ctx)
				if err != nil {
					return reportError(f, err)
				}
				if rootOpts.Format == "json" {
					return f.Success(toDTOs(entries, rt.Loc))
				}
				writeEntryTable(cmd.OutOrStdout(), entries, rt.Loc)
				return nil
			}

			if err := print(); err != nil {
				return err
			}

			for {
				select {
				case <-ctx.Done():
					return nil
				case n, ok := <-sub.C():
					if !ok {
						return nil
					}
					if rootOpts.Format == "text" {
						fmt.Fprintf(cmd.OutOrStdout(), "\n-- change at seq %d --\n", n.Seq)
					}
					if err := print(); err != nil {
						return err
					}
				}
			}
		},
	}

	return cmd
}

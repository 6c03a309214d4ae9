package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tracklog/internal/tracker"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <dev|test|onboarding>",
		Short: "Load a predefined data set",
		Long: `Load one of the predefined data sets:

  dev         a week of realistic entries, appended on every run
  test        deterministic edge-case fixtures, replacing current entries
  onboarding  tutorial entries, skipped if any already exist`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"dev", "test", "onboarding"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closer, err := openRuntime(rootOpts)
			if err != nil {
				return err
			}
			defer closer()
			f := newFormatter(cmd, rootOpts)

			var result tracker.SeedResult
			switch args[0] {
			case "dev":
				result = rt.Service.SeedDevelopmentData(cmd.Context())
			case "test":
				result = rt.Service.SeedTestData(cmd.Context())
			case "onboarding":
				result = rt.Service.SeedOnboardingData(cmd.Context())
			default:
				return NewExitError(ExitCommandError,
					fmt.Sprintf("unknown data set %q: use dev, test or onboarding", args[0]))
			}

			return renderSeedResult(cmd, f, rootOpts, result)
		},
	}

	return cmd
}

func renderSeedResult(cmd *cobra.Command, f *OutputFormatter, rootOpts *RootOptions, result tracker.SeedResult) error {
	if !result.Success {
		_ = f.Error(CodeStorage, result.Error, nil)
		return NewExitError(ExitFailure, "")
	}

	if rootOpts.Format == "json" {
		return f.Success(result)
	}

	w := cmd.OutOrStdout()
	switch {
	case result.Skipped:
		fmt.Fprintln(w, "Skipped: data already present")
	case result.Cleared > 0:
		fmt.Fprintf(w, "Seeded %d entries (cleared %d)\n", result.Seeded, result.Cleared)
	default:
		fmt.Fprintf(w, "Seeded %d entries\n", result.Seeded)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/roach88/tracklog/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Domain errors were already printed by the command through its
		// formatter and arrive here with an empty message.
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
		}
		os.Exit(cli.GetExitCode(err))
	}
}

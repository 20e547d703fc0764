package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display the application version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(opts.stdout, "fulfillment")
			fmt.Fprintf(opts.stdout, "Version:    %s\n", Version)
			fmt.Fprintf(opts.stdout, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(opts.stdout, "Go Version: %s\n", runtime.Version())
		},
	}
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/fulfillment/pkg/interfaces/cli/output"
)

func newSummaryCommand(opts *globalOptions) *cobra.Command {
	flags := &periodFlags{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Executive summary of the selected period",
		Long: `summary condenses invoiced orders into headline figures. When both --from
and --to are given the fill rate and lead time are compared with the
previous period of the same length.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := flags.query()
			if err != nil {
				return err
			}
			env, err := opts.load(cmd)
			if err != nil {
				return err
			}

			summary, err := env.orchestrator.Summary(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("error running summary: %w", err)
			}
			if err := output.GenerateSummary(summary, opts.outputConfig(cmd, env.config)); err != nil {
				return fmt.Errorf("error generating output: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

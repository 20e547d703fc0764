package commands

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version and BuildDate are set at build time with -ldflags
var (
	Version   = "dev"
	BuildDate = "unknown"
)

// NewRootCommand builds the fulfillment command tree writing to stdout and stderr
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "fulfillment",
		Short: "Order fulfillment efficiency reports",
		Long: `fulfillment compares what clients ordered with what was invoiced against
those orders and reports fill rate, weighted fill rate and lead time by
category, client, product, month and order.

Data is read from a directory of CSV files (orders.csv, order_lines.csv,
invoices.csv, invoice_lines.csv and optionally categories.csv, products.csv)
or from a single workbook with one sheet per table.

Example Usage:
  fulfillment report --view all --data ./data
  fulfillment report --view order --order P-1001 --format json
  fulfillment summary --from 2025-01-01 --to 2025-01-31`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to the configuration file (default fulfillment.yaml if present)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	flags.StringVar(&opts.dataDir, "data", "", "Directory containing the CSV dataset")
	flags.StringVar(&opts.workbook, "workbook", "", "Workbook containing the dataset, used instead of --data")
	flags.StringVar(&opts.format, "format", "", "Output format: text, json, csv, xlsx")
	flags.StringVar(&opts.outputDir, "output", "", "Output directory for results (required for csv and xlsx)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(
		newReportCommand(opts),
		newSummaryCommand(opts),
		newVersionCommand(opts),
	)
	return root
}

// Execute runs the command tree with the process arguments
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

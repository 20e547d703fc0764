package commands

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vsinha/fulfillment/pkg/application/dto"
	"github.com/vsinha/fulfillment/pkg/infrastructure/events"
	"github.com/vsinha/fulfillment/pkg/interfaces/cli/output"
)

type reportFlags struct {
	periodFlags
	view     string
	category string
	product  string
	item     string
	order    string
}

func newReportCommand(opts *globalOptions) *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute fill rate and lead time views",
		Long: `report computes one efficiency view, or every view that needs no extra
argument with --view all.

Views:
  category        fill rate per product category
  client          fill rate per client
  product         fill rate per product code (--product filters)
  monthly         evolution by order month
  order           detail of one order (--order)
  orders          detail of every selected order (--client narrows to one client)
  order-category  invoiced orders with their items
  product-detail  every order carrying one product (--item)
  outliers        products with the worst fill rate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.view, "view", string(dto.ViewAll), "View to compute")
	cmd.Flags().StringVar(&flags.category, "category", "", "Restrict the category view to one category id")
	cmd.Flags().StringVar(&flags.product, "product", "", "Filter the product view by code or description")
	cmd.Flags().StringVar(&flags.item, "item", "", "Item code for the product-detail view")
	cmd.Flags().StringVar(&flags.order, "order", "", "Order id for the order view")
	return cmd
}

func runReport(cmd *cobra.Command, opts *globalOptions, flags *reportFlags) error {
	views, err := dto.ParseReportViews(flags.view)
	if err != nil {
		return err
	}
	query, err := flags.query()
	if err != nil {
		return err
	}
	query.CategoryID = flags.category
	query.ProductFilter = flags.product
	query.ItemCode = flags.item
	query.OrderID = flags.order

	env, err := opts.load(cmd)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if opts.verbose && len(views) > 1 {
		bar = progressbar.NewOptions(len(views),
			progressbar.OptionSetWriter(opts.stderr),
			progressbar.OptionSetDescription("computing views"),
			progressbar.OptionShowCount(),
		)
		store := events.NewInMemoryEventStore()
		err := store.Subscribe([]string{events.ViewComputedEvent}, events.HandlerFunc(func(events.Event) error {
			return bar.Add(1)
		}))
		if err != nil {
			return fmt.Errorf("failed to subscribe progress: %w", err)
		}
		env.orchestrator.WithEventStore(store)
	}

	start := time.Now()
	report, err := env.orchestrator.Run(cmd.Context(), query, views)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(opts.stderr)
	}
	if err != nil {
		return fmt.Errorf("error running report: %w", err)
	}

	env.logger.WithFields(logrus.Fields{
		"runId":    report.RunID,
		"views":    len(report.Views),
		"duration": time.Since(start).String(),
	}).Info("report completed")

	if err := output.Generate(report, opts.outputConfig(cmd, env.config)); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	return nil
}

package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vsinha/fulfillment/pkg/application/services/efficiency"
	"github.com/vsinha/fulfillment/pkg/application/services/orchestration"
	"github.com/vsinha/fulfillment/pkg/domain/services/calc"
	"github.com/vsinha/fulfillment/pkg/infrastructure/config"
	"github.com/vsinha/fulfillment/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/fulfillment/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/fulfillment/pkg/infrastructure/repositories/xlsx"
	"github.com/vsinha/fulfillment/pkg/interfaces/cli/output"
)

// globalOptions holds the persistent flag values shared by every command
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	dataDir    string
	workbook   string
	format     string
	outputDir  string
	verbose    bool

	stdout io.Writer
	stderr io.Writer
}

// environment is everything a command needs once configuration is resolved
type environment struct {
	config       *config.Config
	logger       *logrus.Logger
	orchestrator *orchestration.ReportOrchestrator
}

// load reads the configuration, applies flag overrides, loads the dataset
// and wires the orchestrator
func (o *globalOptions) load(cmd *cobra.Command) (*environment, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("data") {
		cfg.DataDir = o.dataDir
	}
	if flags.Changed("workbook") {
		cfg.Workbook = o.workbook
	}
	if flags.Changed("format") {
		cfg.OutputFormat = o.format
	}
	if flags.Changed("output") {
		cfg.OutputDir = o.outputDir
	}
	if o.verbose && !flags.Changed("log-level") {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat, o.stderr)
	if err != nil {
		return nil, err
	}

	dataset, source, err := loadDataset(cfg)
	if err != nil {
		config.LogError(logger, "loader", "load_dataset", err)
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"source":     source,
		"orders":     len(dataset.Orders),
		"orderLines": len(dataset.OrderLines),
		"invoices":   len(dataset.Invoices),
		"categories": len(dataset.Categories),
		"products":   len(dataset.Products),
	}).Info("dataset loaded")

	orderRepo := memory.NewOrderRepository(len(dataset.Orders))
	invoiceRepo := memory.NewInvoiceRepository()
	catalogRepo := memory.NewCatalogRepository()
	if err := dataset.Populate(orderRepo, invoiceRepo, catalogRepo); err != nil {
		return nil, fmt.Errorf("failed to populate repositories: %w", err)
	}

	options := orchestration.ReportOptions{
		ValidInvoiceTypes:       cfg.InvoiceTypes(),
		ExcludedCategoryKeyword: cfg.ExcludedCategoryKeyword,
		CollationLocale:         cfg.CollationLocale,
		Summary: efficiency.SummaryOptions{
			DelayThresholdDays: cfg.Summary.DelayThresholdDays,
			HighFillRate:       cfg.Summary.HighFillRate,
			LowFillRate:        cfg.Summary.LowFillRate,
			TopN:               cfg.Summary.TopN,
		},
		OutlierLimit: cfg.Outliers.Limit,
	}

	return &environment{
		config:       cfg,
		logger:       logger,
		orchestrator: orchestration.NewReportOrchestrator(orderRepo, invoiceRepo, catalogRepo, options, logger),
	}, nil
}

func loadDataset(cfg *config.Config) (*csv.Dataset, string, error) {
	if cfg.Workbook != "" {
		dataset, err := xlsx.NewLoader().LoadDataset(cfg.Workbook)
		if err != nil {
			return nil, cfg.Workbook, fmt.Errorf("error loading workbook: %w", err)
		}
		return dataset, cfg.Workbook, nil
	}
	dataset, err := csv.NewLoader().LoadDataset(cfg.DataDir)
	if err != nil {
		return nil, cfg.DataDir, fmt.Errorf("error loading CSV dataset: %w", err)
	}
	return dataset, cfg.DataDir, nil
}

// outputConfig picks where results go. Text and JSON print to stdout unless
// --output was given; CSV and XLSX always write to the output directory.
func (o *globalOptions) outputConfig(cmd *cobra.Command, cfg *config.Config) output.Config {
	dir := cfg.OutputDir
	if (cfg.OutputFormat == "text" || cfg.OutputFormat == "json") && !cmd.Flags().Changed("output") {
		dir = ""
	}
	return output.Config{
		Format:    cfg.OutputFormat,
		OutputDir: dir,
		Verbose:   o.verbose,
		Stdout:    o.stdout,
	}
}

// periodFlags are the selection flags shared by report and summary
type periodFlags struct {
	from   string
	to     string
	client string
}

func (p *periodFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.from, "from", "", "First order date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.to, "to", "", "Last order date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.client, "client", "", "Only orders whose client name contains this text")
}

func (p *periodFlags) query() (orchestration.Query, error) {
	from, err := parseDateFlag("from", p.from)
	if err != nil {
		return orchestration.Query{}, err
	}
	to, err := parseDateFlag("to", p.to)
	if err != nil {
		return orchestration.Query{}, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return orchestration.Query{}, fmt.Errorf("--to %s is before --from %s", p.to, p.from)
	}
	return orchestration.Query{From: from, To: to, Client: strings.TrimSpace(p.client)}, nil
}

func parseDateFlag(name, value string) (time.Time, error) {
	t, err := calc.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return t, nil
}

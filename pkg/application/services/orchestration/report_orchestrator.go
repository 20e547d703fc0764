package orchestration

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vsinha/fulfillment/pkg/application/dto"
	"github.com/vsinha/fulfillment/pkg/application/services/efficiency"
	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/repositories"
	"github.com/vsinha/fulfillment/pkg/domain/services"
	"github.com/vsinha/fulfillment/pkg/domain/services/calc"
	"github.com/vsinha/fulfillment/pkg/infrastructure/events"
)

// ReportOptions configures which invoices count and how views are tuned
type ReportOptions struct {
	ValidInvoiceTypes       []entities.InvoiceType
	ExcludedCategoryKeyword string
	CollationLocale         string
	Summary                 efficiency.SummaryOptions
	OutlierLimit            int
}

// DefaultReportOptions returns the options used when nothing is configured
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		ValidInvoiceTypes:       append([]entities.InvoiceType(nil), entities.DefaultValidInvoiceTypes...),
		ExcludedCategoryKeyword: efficiency.DefaultExcludedCategoryKeyword,
		CollationLocale:         services.DefaultLocale,
		Summary:                 efficiency.DefaultSummaryOptions(),
		OutlierLimit:            efficiency.DefaultOutlierLimit,
	}
}

// ReportOrchestrator pulls orders, invoices and the catalog from the
// repositories and runs the efficiency views over one selection
type ReportOrchestrator struct {
	orderRepo   repositories.OrderRepository
	invoiceRepo repositories.InvoiceRepository
	catalogRepo repositories.CatalogRepository
	options     ReportOptions
	logger      logrus.FieldLogger
	eventStore  events.EventStore
}

// NewReportOrchestrator creates a new report orchestrator. A nil logger
// discards log output.
func NewReportOrchestrator(
	orderRepo repositories.OrderRepository,
	invoiceRepo repositories.InvoiceRepository,
	catalogRepo repositories.CatalogRepository,
	options ReportOptions,
	logger logrus.FieldLogger,
) *ReportOrchestrator {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	if len(options.ValidInvoiceTypes) == 0 {
		options.ValidInvoiceTypes = append([]entities.InvoiceType(nil), entities.DefaultValidInvoiceTypes...)
	}
	return &ReportOrchestrator{
		orderRepo:   orderRepo,
		invoiceRepo: invoiceRepo,
		catalogRepo: catalogRepo,
		options:     options,
		logger:      logger,
	}
}

// WithEventStore makes every run publish its progress to store, using the
// run id as stream id
func (ro *ReportOrchestrator) WithEventStore(store events.EventStore) *ReportOrchestrator {
	ro.eventStore = store
	return ro
}

func (ro *ReportOrchestrator) publish(log logrus.FieldLogger, runID string, event events.Event) {
	if ro.eventStore == nil {
		return
	}
	if err := ro.eventStore.AppendEvent(runID, event); err != nil {
		log.WithError(err).WithField("event", event.Type()).Warn("failed to publish event")
	}
}

// Run computes the requested views over the selection described by q
func (ro *ReportOrchestrator) Run(ctx context.Context, q Query, views []dto.ReportView) (*dto.Report, error) {
	if len(views) == 0 {
		return nil, fmt.Errorf("no report views requested")
	}

	start := time.Now()
	runID := uuid.NewString()
	log := ro.logger.WithField("runId", runID)

	sel, err := ro.Select(q)
	if err != nil {
		return nil, fmt.Errorf("failed to select report data: %w", err)
	}
	log.WithFields(logrus.Fields{
		"orders":          len(sel.Orders),
		"orderLines":      len(sel.OrderLines),
		"invoices":        len(sel.Invoices),
		"skippedInvoices": sel.Skipped,
	}).Info("report data selected")

	viewNames := make([]string, len(views))
	for i, view := range views {
		viewNames[i] = string(view)
	}
	ro.publish(log, runID, events.NewReportStartedEvent(runID, events.ReportStarted{
		Views:           viewNames,
		Orders:          len(sel.Orders),
		Invoices:        len(sel.Invoices),
		SkippedInvoices: sel.Skipped,
	}))

	report := &dto.Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Views:       make([]dto.ReportView, 0, len(views)),
	}
	if !q.From.IsZero() {
		report.From = calc.FormatDisplayDate(q.From)
	}
	if !q.To.IsZero() {
		report.To = calc.FormatDisplayDate(q.To)
	}

	collator := services.NewNameCollator(ro.options.CollationLocale)

	for _, view := range views {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("report cancelled: %w", err)
		}

		rows, err := ro.runView(view, q, sel, collator, report)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s view: %w", view, err)
		}
		report.Views = append(report.Views, view)
		log.WithFields(logrus.Fields{"view": view, "rows": rows}).Debug("view computed")
		ro.publish(log, runID, events.NewViewComputedEvent(runID, string(view), rows))
	}

	ro.publish(log, runID, events.NewReportCompletedEvent(runID, len(report.Views), time.Since(start)))
	return report, nil
}

// runView fills the report field of one view and returns its row count
func (ro *ReportOrchestrator) runView(
	view dto.ReportView,
	q Query,
	sel *Selection,
	collator *services.NameCollator,
	report *dto.Report,
) (int, error) {
	switch view {
	case dto.ViewCategory:
		report.Categories = efficiency.SummarizeByCategory(efficiency.CategoryInput{
			OrderLines: sel.OrderLines,
			Invoices:   sel.Invoices,
			Join:       sel.Join,
			Catalog:    sel.Catalog,
			CategoryID: q.CategoryID,
			Collator:   collator,
		})
		return len(report.Categories), nil

	case dto.ViewClient:
		report.Clients = efficiency.SummarizeByClient(efficiency.ClientInput{
			Orders:       sel.Orders,
			LinesByOrder: sel.LinesByOrder,
			Invoices:     sel.InvoiceIndex,
			Collator:     collator,
		})
		return len(report.Clients), nil

	case dto.ViewProduct:
		report.Products = efficiency.SummarizeByProduct(efficiency.ProductInput{
			OrderLines: sel.OrderLines,
			Invoices:   sel.Invoices,
			Join:       sel.Join,
			Filter:     q.ProductFilter,
		})
		return len(report.Products), nil

	case dto.ViewMonthly:
		report.Months = efficiency.MonthlyEvolution(efficiency.MonthlyInput{
			Invoices:   sel.Invoices,
			Join:       sel.Join,
			OrderedQty: efficiency.OrderedQtyByOrder(sel.OrderLines),
		})
		return len(report.Months), nil

	case dto.ViewOrder:
		detail, err := ro.DetailOrder(q.OrderID)
		if err != nil {
			return 0, err
		}
		report.Order = detail
		return 1, nil

	case dto.ViewOrders:
		report.Orders = make([]dto.OrderDetail, 0, len(sel.Orders))
		for _, order := range sel.Orders {
			report.Orders = append(report.Orders,
				efficiency.DetailOrder(order, sel.LinesByOrder[order.ID], sel.InvoiceIndex))
		}
		return len(report.Orders), nil

	case dto.ViewOrderCategory:
		report.OrderCategories = efficiency.DetailOrdersByCategory(efficiency.OrderCategoryInput{
			OrderLines: sel.OrderLines,
			Invoices:   sel.Invoices,
			Join:       sel.Join,
		})
		return len(report.OrderCategories), nil

	case dto.ViewProductDetail:
		rows, err := efficiency.DrillDownProduct(efficiency.ProductDrillDownInput{
			ItemCode:     q.ItemCode,
			Orders:       sel.Orders,
			LinesByOrder: sel.LinesByOrder,
			Invoices:     sel.InvoiceIndex,
			Join:         sel.Join,
		})
		if err != nil {
			return 0, err
		}
		report.ProductOrders = rows
		return len(rows), nil

	case dto.ViewOutliers:
		report.Outliers = efficiency.RankOutliers(efficiency.OutlierInput{
			OrderLines: sel.OrderLines,
			Invoices:   sel.Invoices,
			Join:       sel.Join,
			Limit:      ro.options.OutlierLimit,
		})
		return len(report.Outliers), nil

	default:
		return 0, fmt.Errorf("%w: unknown view %q", efficiency.ErrInvalidArgument, view)
	}
}

// DetailOrder builds the detail of one order by internal id regardless of
// any date range, using the valid invoices issued against its number
func (ro *ReportOrchestrator) DetailOrder(orderID string) (*dto.OrderDetail, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: order id is required", efficiency.ErrInvalidArgument)
	}

	order, err := ro.orderRepo.GetOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	lines, err := ro.orderRepo.GetOrderLines(order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}

	var invoices []*entities.Invoice
	if number, err := entities.ParseOrderNumber(order.Number); err == nil {
		found, err := ro.invoiceRepo.GetInvoicesForOrder(number)
		if err != nil {
			return nil, fmt.Errorf("failed to get invoices for order %s: %w", order.Number, err)
		}
		invoices = ro.filterInvoices(found)
	}

	detail := efficiency.DetailOrder(order, lines, efficiency.BuildInvoiceIndex(invoices))
	return &detail, nil
}

// Summary computes the executive summary of q. When q has a full date
// range the variations are computed against the previous period of the
// same length.
func (ro *ReportOrchestrator) Summary(ctx context.Context, q Query) (*dto.ExecutiveSummary, error) {
	current, err := ro.summarize(q)
	if err != nil {
		return nil, err
	}
	if !q.HasRange() {
		return &current, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("summary cancelled: %w", err)
	}

	prevQuery := q.PreviousPeriod()
	previous, err := ro.summarize(prevQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize previous period: %w", err)
	}
	ro.logger.WithFields(logrus.Fields{
		"from":             calc.FormatDisplayDate(prevQuery.From),
		"to":               calc.FormatDisplayDate(prevQuery.To),
		"previousOrders":   previous.TotalOrders,
		"previousFillRate": previous.FillRate,
	}).Debug("previous period summarized")

	compared := efficiency.CompareSummaries(current, previous)
	return &compared, nil
}

func (ro *ReportOrchestrator) summarize(q Query) (dto.ExecutiveSummary, error) {
	sel, err := ro.Select(q)
	if err != nil {
		return dto.ExecutiveSummary{}, fmt.Errorf("failed to select summary data: %w", err)
	}
	return efficiency.Summarize(efficiency.SummaryInput{
		Orders:       sel.Orders,
		LinesByOrder: sel.LinesByOrder,
		Invoices:     sel.InvoiceIndex,
		InvoiceCount: len(sel.Invoices),
		Options:      ro.options.Summary,
	}), nil
}

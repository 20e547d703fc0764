package orchestration

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vsinha/fulfillment/pkg/application/services/efficiency"
	"github.com/vsinha/fulfillment/pkg/domain/entities"
)

// Query narrows a report run. Zero values select everything.
type Query struct {
	// From and To bound the order date, both inclusive at day granularity
	From time.Time
	To   time.Time
	// Client keeps orders whose client name contains it, ignoring case
	Client        string
	CategoryID    string
	ProductFilter string
	ItemCode      string
	OrderID       string
}

// HasRange reports whether both bounds of the date range are set
func (q Query) HasRange() bool {
	return !q.From.IsZero() && !q.To.IsZero()
}

// PreviousPeriod returns the query shifted back by the length of its range.
// A single-day range shifts back one day.
func (q Query) PreviousPeriod() Query {
	span := q.To.Sub(q.From)
	if span <= 0 {
		span = 24 * time.Hour
	}
	prev := q
	prev.From = q.From.Add(-span)
	prev.To = q.To.Add(-span)
	return prev
}

func (q Query) matchesOrder(order *entities.Order) bool {
	if !q.From.IsZero() || !q.To.IsZero() {
		if !order.HasDate() {
			return false
		}
		day := truncateDay(order.Date)
		if !q.From.IsZero() && day.Before(truncateDay(q.From)) {
			return false
		}
		if !q.To.IsZero() && day.After(truncateDay(q.To)) {
			return false
		}
	}
	if client := strings.ToLower(strings.TrimSpace(q.Client)); client != "" {
		if !strings.Contains(strings.ToLower(order.Client), client) {
			return false
		}
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Selection is the slice of the dataset one report run works on, with the
// indexes every view shares
type Selection struct {
	Orders       []*entities.Order
	OrderLines   []*entities.OrderLine
	Invoices     []*entities.Invoice
	Join         *efficiency.JoinIndex
	InvoiceIndex *efficiency.InvoiceIndex
	LinesByOrder efficiency.OrderLineIndex
	Catalog      *efficiency.CategoryMapping
	// Skipped counts valid invoices that matched no selected order
	Skipped int
}

// Select pulls the collections from the repositories and narrows them to q
func (ro *ReportOrchestrator) Select(q Query) (*Selection, error) {
	allOrders, err := ro.orderRepo.GetAllOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	allLines, err := ro.orderRepo.GetAllOrderLines()
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	allInvoices, err := ro.invoiceRepo.GetAllInvoices()
	if err != nil {
		return nil, fmt.Errorf("failed to get invoices: %w", err)
	}
	categories, err := ro.catalogRepo.GetCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	products, err := ro.catalogRepo.GetProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	sel := &Selection{}
	selected := make(map[string]struct{}, len(allOrders))
	for _, order := range allOrders {
		if q.matchesOrder(order) {
			sel.Orders = append(sel.Orders, order)
			selected[order.ID] = struct{}{}
		}
	}
	for _, line := range allLines {
		if _, ok := selected[line.OrderID]; ok {
			sel.OrderLines = append(sel.OrderLines, line)
		}
	}

	valid := ro.filterInvoices(allInvoices)
	join := efficiency.BuildJoinIndex(sel.Orders, valid)
	for _, invoice := range valid {
		if _, ok := join.Resolve(invoice); !ok {
			ro.logger.WithField("invoice", invoice.ID).
				WithField("orderNumber", invoice.OrderNumber).
				Debug("invoice matches no selected order")
			continue
		}
		sel.Invoices = append(sel.Invoices, invoice)
	}
	sel.Skipped = join.UnresolvedInvoices()

	sel.Join = join
	sel.InvoiceIndex = efficiency.BuildInvoiceIndex(sel.Invoices)
	sel.LinesByOrder = efficiency.IndexOrderLines(sel.OrderLines)
	sel.Catalog = efficiency.NewCategoryMapping(
		categories,
		products,
		efficiency.AllowedCategories(categories, ro.options.ExcludedCategoryKeyword),
	)
	return sel, nil
}

// filterInvoices keeps non-voided invoices of a valid type ordered by
// completion date, undated last
func (ro *ReportOrchestrator) filterInvoices(invoices []*entities.Invoice) []*entities.Invoice {
	valid := make(map[entities.InvoiceType]struct{}, len(ro.options.ValidInvoiceTypes))
	for _, t := range ro.options.ValidInvoiceTypes {
		valid[t] = struct{}{}
	}

	kept := make([]*entities.Invoice, 0, len(invoices))
	for _, invoice := range invoices {
		if invoice.Voided {
			continue
		}
		if _, ok := valid[invoice.Type]; !ok {
			continue
		}
		kept = append(kept, invoice)
	}
	sortByCompletion(kept)
	return kept
}

func sortByCompletion(invoices []*entities.Invoice) {
	sort.SliceStable(invoices, func(i, j int) bool {
		a, b := invoices[i], invoices[j]
		if !a.HasCompletionDate() || !b.HasCompletionDate() {
			return a.HasCompletionDate() && !b.HasCompletionDate()
		}
		return a.CompletedAt.Before(b.CompletedAt)
	})
}

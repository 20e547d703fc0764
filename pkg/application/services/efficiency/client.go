package efficiency

import (
	"strings"

	"github.com/vsinha/fulfillment/pkg/application/dto"
	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/services"
	"github.com/vsinha/fulfillment/pkg/domain/services/calc"
)

// UnknownClientName groups every order without a client name
const UnknownClientName = "Sin nombre"

// ClientLabel returns the display name used to group an order by client
func ClientLabel(order *entities.Order) string {
	if name := strings.TrimSpace(order.Client); name != "" {
		return name
	}
	return UnknownClientName
}

// ClientInput holds the collections for the by-client summary
type ClientInput struct {
	Orders       []*entities.Order
	LinesByOrder OrderLineIndex
	Invoices     *InvoiceIndex
	Collator     *services.NameCollator
}

// SummarizeByClient rolls up orders with invoiced quantity into one row per
// client. Each order contributes the lead time of its last invoice and the
// client reports the mean of those.
func SummarizeByClient(in ClientInput) []dto.ClientRow {
	set := newAccumulatorSet[string](LeadTimeMean)

	for _, order := range in.Orders {
		number, err := entities.ParseOrderNumber(order.Number)
		if err != nil {
			continue
		}
		invoiced := in.Invoices.LinesByOrder[number]
		invoicedQty, invoicedValue := sumInvoiceLines(invoiced)
		if invoicedQty <= 0 {
			continue
		}

		client := ClientLabel(order)
		acc := set.touch(client, client)
		acc.addOrdered(in.LinesByOrder.OrderedQuantity(order.ID), in.LinesByOrder.OrderedValue(order.ID))
		acc.addInvoiced(invoicedQty, invoicedValue)

		if last, ok := in.Invoices.LastInvoice[number]; ok {
			perOrder := NewLeadTimeTracker(LeadTimeLast)
			perOrder.Observe(order.Date, last.CompletedAt)
			if days, ok := perOrder.Value(); ok {
				acc.leadTime.ObserveDays(int(days))
			}
		}
	}

	rows := make([]dto.ClientRow, 0, len(set.keys))
	set.each(func(client string, acc *accumulator) {
		if acc.invoicedQty <= 0 {
			return
		}
		rows = append(rows, dto.ClientRow{
			Client:           client,
			OrderedQty:       calc.Round2(acc.orderedQty),
			InvoicedQty:      calc.Round2(acc.invoicedQty),
			OrderedTotal:     calc.Round2(acc.orderedValue),
			InvoicedTotal:    calc.Round2(acc.invoicedValue),
			FillRate:         acc.fillRate(),
			WeightedFillRate: acc.weightedFillRate(),
			AvgLeadTime:      acc.leadTime.Average(),
		})
	})

	services.SortBy(collatorOrDefault(in.Collator), rows, func(r dto.ClientRow) string {
		return r.Client
	})
	return rows
}

func sumInvoiceLines(lines []entities.InvoiceLine) (qty, value float64) {
	for i := range lines {
		qty += lines[i].Quantity
		value += lines[i].Value()
	}
	return qty, value
}

package efficiency

import (
	"sort"

	"github.com/vsinha/fulfillment/pkg/application/dto"
	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/services/calc"
)

// MonthlyInput holds the collections for the monthly evolution
type MonthlyInput struct {
	Invoices []*entities.Invoice
	Join     *JoinIndex
	// OrderedQty is the ordered quantity per order id, see OrderedQtyByOrder
	OrderedQty map[string]float64
}

// MonthlyEvolution buckets invoiced orders by the month of the order date.
// Each order counts its ordered quantity once and the lead time of its
// latest invoice. Orders without a date or without invoiced quantity do
// not contribute. Months are returned oldest first.
func MonthlyEvolution(in MonthlyInput) []dto.MonthRow {
	months := make(map[string]*accumulatorSet[string])

	for _, invoice := range in.Invoices {
		order, ok := in.Join.Resolve(invoice)
		if !ok || !order.HasDate() {
			continue
		}
		month := calc.MonthKey(order.Date)
		orders, ok := months[month]
		if !ok {
			orders = newAccumulatorSet[string](LeadTimeLast)
			months[month] = orders
		}

		acc, seen := orders.get(order.ID)
		if !seen {
			acc = orders.touch(order.ID, order.Number)
			acc.addOrdered(in.OrderedQty[order.ID], 0)
		}
		acc.addInvoiced(invoice.InvoicedQuantity(), 0)
		acc.leadTime.Observe(order.Date, invoice.CompletedAt)
	}

	keys := make([]string, 0, len(months))
	for month := range months {
		keys = append(keys, month)
	}
	sort.Strings(keys)

	rows := make([]dto.MonthRow, 0, len(keys))
	for _, month := range keys {
		var total totals
		count := 0
		leadTime := NewLeadTimeTracker(LeadTimeMean)

		months[month].each(func(_ string, acc *accumulator) {
			if acc.invoicedQty <= 0 {
				return
			}
			count++
			total.addOrdered(acc.orderedQty, 0)
			total.addInvoiced(acc.invoicedQty, 0)
			if days, ok := acc.leadTime.Value(); ok {
				leadTime.ObserveDays(int(days))
			}
		})

		rows = append(rows, dto.MonthRow{
			Month:       month,
			Orders:      count,
			OrderedQty:  calc.Round2(total.orderedQty),
			InvoicedQty: calc.Round2(total.invoicedQty),
			FillRate:    total.fillRate(),
			LeadTime:    leadTime.Average(),
		})
	}
	return rows
}

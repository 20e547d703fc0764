package efficiency

import (
	"strings"

	"github.com/vsinha/fulfillment/pkg/application/dto"
	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/services/calc"
)

// ProductInput holds the collections for the catalog-wide product summary
type ProductInput struct {
	OrderLines []*entities.OrderLine
	Invoices   []*entities.Invoice
	Join       *JoinIndex
	// Filter keeps products whose code or description contains it, ignoring case
	Filter string
}

// SummarizeByProduct reports every ordered product of a fulfilled order.
// Invoice lines only count for products that were ordered, and the filter
// is matched again against each invoice line's own code and description. The weighted
// fill rate is nil when a product has no ordered value.
func SummarizeByProduct(in ProductInput) []dto.ProductRow {
	set := newAccumulatorSet[entities.ItemCode](LeadTimeMean)
	filter := strings.ToLower(strings.TrimSpace(in.Filter))

	for _, line := range in.OrderLines {
		if !in.Join.IsFulfilled(line.OrderID) {
			continue
		}
		code := entities.NormalizeItemCode(line.ItemCode)
		description := line.Description
		if description == "" {
			description = string(code)
		}
		if !matchesProductFilter(filter, code, description) {
			continue
		}
		acc := set.touch(code, description)
		acc.addOrdered(line.Quantity, line.Value())
	}

	for _, invoice := range in.Invoices {
		order, ok := in.Join.Resolve(invoice)
		if !ok {
			continue
		}
		for i := range invoice.Lines {
			line := &invoice.Lines[i]
			code := entities.NormalizeItemCode(line.ItemCode)
			acc, ok := set.get(code)
			if !ok {
				continue
			}
			description := line.Description
			if description == "" {
				description = string(code)
			}
			if !matchesProductFilter(filter, code, description) {
				continue
			}
			acc.addInvoiced(line.Quantity, line.Value())
			acc.leadTime.Observe(order.Date, invoice.CompletedAt)
		}
	}

	rows := make([]dto.ProductRow, 0, len(set.keys))
	set.each(func(code entities.ItemCode, acc *accumulator) {
		if acc.orderedQty <= 0 || acc.invoicedQty <= 0 {
			return
		}
		rows = append(rows, dto.ProductRow{
			Product:          acc.label,
			ItemCode:         string(code),
			OrderedQty:       calc.Round2(acc.orderedQty),
			InvoicedQty:      calc.Round2(acc.invoicedQty),
			OrderedTotal:     calc.Round2(acc.orderedValue),
			InvoicedTotal:    calc.Round2(acc.invoicedValue),
			FillRate:         acc.fillRate(),
			WeightedFillRate: calc.WeightedFillRateOrNil(acc.invoicedValue, acc.orderedValue),
			AvgLeadTime:      acc.leadTime.Average(),
		})
	})
	return rows
}

func matchesProductFilter(filter string, code entities.ItemCode, description string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(string(code)), filter) ||
		strings.Contains(strings.ToLower(description), filter)
}

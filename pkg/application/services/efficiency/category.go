package efficiency

import (
	"github.com/vsinha/fulfillment/pkg/application/dto"
	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/services"
	"github.com/vsinha/fulfillment/pkg/domain/services/calc"
)

// CategoryInput holds the collections for the by-category summary
type CategoryInput struct {
	OrderLines []*entities.OrderLine
	Invoices   []*entities.Invoice
	Join       *JoinIndex
	Catalog    *CategoryMapping
	// CategoryID restricts the summary to one category when set
	CategoryID string
	Collator   *services.NameCollator
}

// SummarizeByCategory folds order lines of fulfilled orders and the lines of
// resolvable invoices into one row per allowed category. Lead time is the
// mean over every dated invoice line. Categories with nothing invoiced are
// dropped and the rest are ordered by name.
func SummarizeByCategory(in CategoryInput) []dto.CategoryRow {
	set := newAccumulatorSet[string](LeadTimeMean)

	resolve := func(itemCode string) (string, bool) {
		categoryID, ok := in.Catalog.Resolve(itemCode)
		if !ok {
			return "", false
		}
		if in.CategoryID != "" && categoryID != in.CategoryID {
			return "", false
		}
		return categoryID, true
	}

	for _, line := range in.OrderLines {
		if !in.Join.IsFulfilled(line.OrderID) {
			continue
		}
		categoryID, ok := resolve(line.ItemCode)
		if !ok {
			continue
		}
		acc := set.touch(categoryID, in.Catalog.Name(categoryID))
		acc.addOrdered(line.Quantity, line.Value())
	}

	for _, invoice := range in.Invoices {
		order, ok := in.Join.Resolve(invoice)
		if !ok {
			continue
		}
		for i := range invoice.Lines {
			line := &invoice.Lines[i]
			categoryID, ok := resolve(line.ItemCode)
			if !ok {
				continue
			}
			acc := set.touch(categoryID, in.Catalog.Name(categoryID))
			acc.addInvoiced(line.Quantity, line.Value())
			acc.leadTime.Observe(order.Date, invoice.CompletedAt)
		}
	}

	rows := make([]dto.CategoryRow, 0, len(set.keys))
	set.each(func(categoryID string, acc *accumulator) {
		if acc.invoicedQty <= 0 {
			return
		}
		rows = append(rows, dto.CategoryRow{
			CategoryID:       categoryID,
			CategoryName:     acc.label,
			OrderedQty:       calc.Round2(acc.orderedQty),
			InvoicedQty:      calc.Round2(acc.invoicedQty),
			OrderedTotal:     calc.Round2(acc.orderedValue),
			InvoicedTotal:    calc.Round2(acc.invoicedValue),
			FillRate:         acc.fillRate(),
			WeightedFillRate: acc.weightedFillRate(),
			AvgLeadTime:      acc.leadTime.Average(),
		})
	})

	services.SortBy(collatorOrDefault(in.Collator), rows, func(r dto.CategoryRow) string {
		return r.CategoryName
	})
	return rows
}

func collatorOrDefault(nc *services.NameCollator) *services.NameCollator {
	if nc != nil {
		return nc
	}
	return services.NewNameCollator(services.DefaultLocale)
}

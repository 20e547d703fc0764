package efficiency

import (
	"sort"

	"github.com/vsinha/fulfillment/pkg/application/dto"
	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/services/calc"
)

// DefaultOutlierLimit caps the outlier ranking when no limit is given
const DefaultOutlierLimit = 20

// OutlierInput holds the collections for the fill rate outlier ranking
type OutlierInput struct {
	OrderLines []*entities.OrderLine
	Invoices   []*entities.Invoice
	Join       *JoinIndex
	Limit      int
}

// RankOutliers lists the items of fulfilled orders with the worst fill
// rate first, keeping at most Limit rows
func RankOutliers(in OutlierInput) []dto.OutlierRow {
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultOutlierLimit
	}

	set := newAccumulatorSet[entities.ItemCode](LeadTimeMean)
	for _, line := range in.OrderLines {
		if !in.Join.IsFulfilled(line.OrderID) {
			continue
		}
		code := entities.NormalizeItemCode(line.ItemCode)
		label := line.Description
		if label == "" {
			label = string(code)
		}
		set.touch(code, label).addOrdered(line.Quantity, line.Value())
	}

	for _, invoice := range in.Invoices {
		if _, ok := in.Join.Resolve(invoice); !ok {
			continue
		}
		for i := range invoice.Lines {
			line := &invoice.Lines[i]
			if acc, ok := set.get(entities.NormalizeItemCode(line.ItemCode)); ok {
				acc.addInvoiced(line.Quantity, line.Value())
			}
		}
	}

	rows := make([]dto.OutlierRow, 0, len(set.keys))
	set.each(func(code entities.ItemCode, acc *accumulator) {
		rows = append(rows, dto.OutlierRow{
			ItemCode:    string(code),
			Description: acc.label,
			OrderedQty:  calc.Round2(acc.orderedQty),
			InvoicedQty: calc.Round2(acc.invoicedQty),
			FillRate:    acc.fillRate(),
		})
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].FillRate < rows[j].FillRate
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

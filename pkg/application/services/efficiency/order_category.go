package efficiency

import (
	"sort"
	"time"

	"github.com/vsinha/fulfillment/pkg/application/dto"
	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/services/calc"
)

// OrderCategoryInput holds the collections for the order-grouped detail
type OrderCategoryInput struct {
	OrderLines []*entities.OrderLine
	Invoices   []*entities.Invoice
	Join       *JoinIndex
}

type orderGroup struct {
	totals
	number   entities.OrderNumber
	date     time.Time
	items    *accumulatorSet[entities.ItemCode]
	days     map[string]struct{}
	dates    []time.Time
	leadTime *LeadTimeTracker
}

// DetailOrdersByCategory groups order lines by external order number with a
// nested per-item breakdown. The lead time of a group is locked to the first
// dated invoice line observed for it. Groups with nothing invoiced are
// dropped; the rest are ordered by order date, undated orders last.
func DetailOrdersByCategory(in OrderCategoryInput) []dto.OrderCategoryRow {
	groups := make(map[entities.OrderNumber]*orderGroup)
	var numbers []entities.OrderNumber

	for _, line := range in.OrderLines {
		order, ok := in.Join.ByID[line.OrderID]
		if !ok {
			continue
		}
		number, ok := in.Join.OrderNumber(order.ID)
		if !ok {
			continue
		}
		group, ok := groups[number]
		if !ok {
			group = &orderGroup{
				number:   number,
				date:     order.Date,
				items:    newAccumulatorSet[entities.ItemCode](LeadTimeFirst),
				days:     make(map[string]struct{}),
				leadTime: NewLeadTimeTracker(LeadTimeFirst),
			}
			groups[number] = group
			numbers = append(numbers, number)
		}

		group.addOrdered(line.Quantity, line.Value())
		description := line.Description
		if description == "" {
			description = MissingDescription
		}
		item := group.items.touch(entities.NormalizeItemCode(line.ItemCode), description)
		item.addOrdered(line.Quantity, line.Value())
	}

	for _, invoice := range in.Invoices {
		number, err := entities.ParseOrderNumber(invoice.OrderNumber)
		if err != nil {
			continue
		}
		group, ok := groups[number]
		if !ok {
			continue
		}
		for i := range invoice.Lines {
			line := &invoice.Lines[i]
			item, ok := group.items.get(entities.NormalizeItemCode(line.ItemCode))
			if !ok {
				continue
			}
			item.addInvoiced(line.Quantity, line.Value())
			group.addInvoiced(line.Quantity, line.Value())

			if invoice.HasCompletionDate() {
				group.addInvoiceDate(invoice.CompletedAt)
				group.leadTime.Observe(group.date, invoice.CompletedAt)
			}
		}
	}

	rows := make([]dto.OrderCategoryRow, 0, len(numbers))
	ordered := make([]*orderGroup, 0, len(numbers))
	for _, number := range numbers {
		if group := groups[number]; group.invoicedQty > 0 {
			ordered = append(ordered, group)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].date, ordered[j].date
		if a.IsZero() != b.IsZero() {
			return b.IsZero()
		}
		return a.Before(b)
	})

	for _, group := range ordered {
		items := make([]dto.OrderCategoryItem, 0, len(group.items.keys))
		group.items.each(func(code entities.ItemCode, acc *accumulator) {
			items = append(items, dto.OrderCategoryItem{
				ItemCode:    string(code),
				Description: acc.label,
				OrderedQty:  calc.Round2(acc.orderedQty),
				InvoicedQty: calc.Round2(acc.invoicedQty),
				FillRate:    acc.fillRate(),
			})
		})

		rows = append(rows, dto.OrderCategoryRow{
			OrderNumber:      group.number.String(),
			OrderDate:        calc.FormatDisplayDate(group.date),
			InvoiceDates:     group.displayDates(),
			OrderedQty:       calc.Round2(group.orderedQty),
			InvoicedQty:      calc.Round2(group.invoicedQty),
			OrderedTotal:     calc.Round2(group.orderedValue),
			InvoicedTotal:    calc.Round2(group.invoicedValue),
			FillRate:         group.fillRate(),
			WeightedFillRate: group.weightedFillRate(),
			LeadTimeDays:     group.leadTime.Days(),
			Items:            items,
		})
	}
	return rows
}

func (g *orderGroup) addInvoiceDate(at time.Time) {
	day := calc.FormatDisplayDate(at)
	if _, ok := g.days[day]; ok {
		return
	}
	g.days[day] = struct{}{}
	g.dates = append(g.dates, at)
}

func (g *orderGroup) displayDates() []string {
	sort.SliceStable(g.dates, func(i, j int) bool {
		return g.dates[i].Before(g.dates[j])
	})
	out := make([]string, 0, len(g.dates))
	for _, d := range g.dates {
		out = append(out, calc.FormatDisplayDate(d))
	}
	return out
}

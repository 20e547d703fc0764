package efficiency

import (
	"sort"

	"github.com/vsinha/fulfillment/pkg/application/dto"
	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/services/calc"
)

// SummaryOptions tunes the thresholds of the executive summary
type SummaryOptions struct {
	DelayThresholdDays int
	HighFillRate       float64
	LowFillRate        float64
	TopN               int
}

// DefaultSummaryOptions returns the thresholds used when none are configured
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{
		DelayThresholdDays: 7,
		HighFillRate:       95,
		LowFillRate:        80,
		TopN:               5,
	}
}

// SummaryInput holds the collections for the executive summary
type SummaryInput struct {
	Orders       []*entities.Order
	LinesByOrder OrderLineIndex
	Invoices     *InvoiceIndex
	// InvoiceCount is the number of invoices selected for the period
	InvoiceCount int
	Options      SummaryOptions
}

type clientRates struct {
	name  string
	total float64
	count int
}

// Summarize condenses orders with invoiced quantity into headline figures.
// Variations are left at zero; see CompareSummaries.
func Summarize(in SummaryInput) dto.ExecutiveSummary {
	opts := in.Options
	if opts.TopN <= 0 {
		opts.TopN = DefaultSummaryOptions().TopN
	}

	var total totals
	leadTime := NewLeadTimeTracker(LeadTimeMean)
	delayed := 0
	var orderRates []float64

	clients := make(map[string]*clientRates)
	var clientOrder []*clientRates
	backlog := make(map[string]float64)
	var backlogOrder []string

	for _, order := range in.Orders {
		number, err := entities.ParseOrderNumber(order.Number)
		if err != nil {
			continue
		}
		invoicedQty, _ := sumInvoiceLines(in.Invoices.LinesByOrder[number])
		if invoicedQty <= 0 {
			continue
		}
		orderedQty := in.LinesByOrder.OrderedQuantity(order.ID)
		total.addOrdered(orderedQty, 0)
		total.addInvoiced(invoicedQty, 0)

		rate := calc.FillRate(invoicedQty, orderedQty)
		orderRates = append(orderRates, rate)

		client := ClientLabel(order)
		cr, ok := clients[client]
		if !ok {
			cr = &clientRates{name: client}
			clients[client] = cr
			clientOrder = append(clientOrder, cr)
		}
		cr.total += rate
		cr.count++

		for _, item := range orderedItems(in.LinesByOrder[order.ID]) {
			missing := item.qty - in.Invoices.InvoicedQty[ItemKey{Order: number, Item: item.code}]
			if missing <= 0 {
				continue
			}
			if _, ok := backlog[item.label]; !ok {
				backlogOrder = append(backlogOrder, item.label)
			}
			backlog[item.label] += missing
		}

		if last, ok := in.Invoices.LastInvoice[number]; ok {
			perOrder := NewLeadTimeTracker(LeadTimeLast)
			perOrder.Observe(order.Date, last.CompletedAt)
			if days, ok := perOrder.Value(); ok {
				leadTime.ObserveDays(int(days))
				if int(days) > opts.DelayThresholdDays {
					delayed++
				}
			}
		}
	}

	summary := dto.ExecutiveSummary{
		TotalOrders:     len(orderRates),
		TotalInvoices:   in.InvoiceCount,
		FillRate:        total.fillRate(),
		AvgLeadTimeDays: leadTime.Average(),
		DelayedOrders:   delayed,
		TopClients:      []dto.ClientFillRate{},
		BottomClients:   []dto.ClientFillRate{},
		ProblemProducts: []dto.ProductBacklog{},
	}

	if n := len(orderRates); n > 0 {
		high, low := 0, 0
		for _, rate := range orderRates {
			if rate >= opts.HighFillRate {
				high++
			}
			if rate < opts.LowFillRate {
				low++
			}
		}
		summary.HighFillRatePercent = calc.RoundFixed(float64(high)/float64(n)*100, 1)
		summary.LowFillRatePercent = calc.RoundFixed(float64(low)/float64(n)*100, 1)
	}

	ranked := make([]dto.ClientFillRate, 0, len(clientOrder))
	for _, cr := range clientOrder {
		ranked = append(ranked, dto.ClientFillRate{
			Client:   cr.name,
			FillRate: calc.Round2(cr.total / float64(cr.count)),
		})
	}
	best := append([]dto.ClientFillRate(nil), ranked...)
	sort.SliceStable(best, func(i, j int) bool { return best[i].FillRate > best[j].FillRate })
	worst := append([]dto.ClientFillRate(nil), ranked...)
	sort.SliceStable(worst, func(i, j int) bool { return worst[i].FillRate < worst[j].FillRate })
	summary.TopClients = append(summary.TopClients, best[:min(opts.TopN, len(best))]...)
	summary.BottomClients = append(summary.BottomClients, worst[:min(opts.TopN, len(worst))]...)

	products := make([]dto.ProductBacklog, 0, len(backlogOrder))
	for _, label := range backlogOrder {
		products = append(products, dto.ProductBacklog{Product: label, Uninvoiced: calc.Round2(backlog[label])})
	}
	sort.SliceStable(products, func(i, j int) bool { return products[i].Uninvoiced > products[j].Uninvoiced })
	summary.ProblemProducts = append(summary.ProblemProducts, products[:min(opts.TopN, len(products))]...)

	return summary
}

type orderedItem struct {
	code  entities.ItemCode
	label string
	qty   float64
}

// orderedItems sums an order's lines per item code in first-seen order
func orderedItems(lines []*entities.OrderLine) []*orderedItem {
	byCode := make(map[entities.ItemCode]*orderedItem, len(lines))
	var items []*orderedItem
	for _, line := range lines {
		code := entities.NormalizeItemCode(line.ItemCode)
		item, ok := byCode[code]
		if !ok {
			label := line.Description
			if label == "" {
				label = line.ItemCode
			}
			item = &orderedItem{code: code, label: label}
			byCode[code] = item
			items = append(items, item)
		}
		item.qty += line.Quantity
	}
	return items
}

// CompareSummaries returns current with its variations against previous
// filled in. Fill rate variation is relative in percent, lead time
// variation is absolute in days.
func CompareSummaries(current, previous dto.ExecutiveSummary) dto.ExecutiveSummary {
	current.FillRateVariation = 0
	if previous.FillRate > 0 {
		current.FillRateVariation = calc.RoundFixed((current.FillRate-previous.FillRate)/previous.FillRate*100, 1)
	}
	current.LeadTimeVariation = 0
	if current.AvgLeadTimeDays != nil && previous.AvgLeadTimeDays != nil {
		current.LeadTimeVariation = calc.Round2(*current.AvgLeadTimeDays - *previous.AvgLeadTimeDays)
	}
	return current
}

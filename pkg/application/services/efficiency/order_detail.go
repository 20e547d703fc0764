package efficiency

import (
	"github.com/vsinha/fulfillment/pkg/application/dto"
	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/services/calc"
)

// OrderDetailKind tags single-order detail records
const OrderDetailKind = "pedido"

// MissingDescription replaces an empty order line description
const MissingDescription = "Sin descripción"

// DetailOrder breaks one order down per line using pre-resolved invoice
// data. Each line reports the lead time of the last invoice touching its
// item; the order reports the lead time of its last invoice.
func DetailOrder(order *entities.Order, lines []*entities.OrderLine, invoices *InvoiceIndex) dto.OrderDetail {
	number, numberErr := entities.ParseOrderNumber(order.Number)
	hasNumber := numberErr == nil

	var total totals
	detailLines := make([]dto.OrderDetailLine, 0, len(lines))

	for _, line := range lines {
		var invoicedQty, invoicedValue float64
		lineLead := NewLeadTimeTracker(LeadTimeLast)

		if hasNumber {
			key := NewItemKey(number, line.ItemCode)
			invoicedQty = invoices.InvoicedQty[key]
			invoicedValue = invoices.InvoicedValue[key]
			if invoicedQty > 0 {
				lineLead.Observe(order.Date, invoices.LastInvoiceDateByItem[key])
			}
		}

		total.addOrdered(line.Quantity, line.Value())
		total.addInvoiced(invoicedQty, invoicedValue)

		description := line.Description
		if description == "" {
			description = MissingDescription
		}
		detailLines = append(detailLines, dto.OrderDetailLine{
			ItemCode:      line.ItemCode,
			Description:   description,
			OrderedQty:    calc.Round2(line.Quantity),
			InvoicedQty:   calc.Round2(invoicedQty),
			FillRate:      calc.FillRate(invoicedQty, line.Quantity),
			UnitPrice:     calc.Round2(line.UnitPrice),
			InvoicedValue: calc.Round2(invoicedValue),
			LeadTimeDays:  lineLead.Days(),
		})
	}

	orderLead := NewLeadTimeTracker(LeadTimeLast)
	invoiceDates := []string{}
	if hasNumber {
		invoiceDates = invoices.DisplayDates(number)
		if last, ok := invoices.LastInvoice[number]; ok && total.invoicedQty > 0 {
			orderLead.Observe(order.Date, last.CompletedAt)
		}
	}

	return dto.OrderDetail{
		Kind:             OrderDetailKind,
		OrderID:          order.ID,
		OrderNumber:      order.Number,
		Date:             calc.FormatDisplayDate(order.Date),
		InvoiceDates:     invoiceDates,
		OrderedQty:       calc.Round2(total.orderedQty),
		InvoicedQty:      calc.Round2(total.invoicedQty),
		FillRate:         total.fillRate(),
		WeightedFillRate: total.weightedFillRate(),
		LeadTimeDays:     orderLead.Days(),
		OrderedTotal:     calc.Round2(total.orderedValue),
		InvoicedTotal:    calc.Round2(total.invoicedValue),
		Lines:            detailLines,
	}
}

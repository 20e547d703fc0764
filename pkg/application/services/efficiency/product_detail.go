package efficiency

import (
	"fmt"
	"strings"

	"github.com/vsinha/fulfillment/pkg/application/dto"
	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/services/calc"
)

// ProductDrillDownInput holds the collections for the single-product drill-down
type ProductDrillDownInput struct {
	ItemCode     string
	Orders       []*entities.Order
	LinesByOrder OrderLineIndex
	Invoices     *InvoiceIndex
	Join         *JoinIndex
}

// DrillDownProduct returns one row per order line carrying the item on an
// order with at least one invoice. Lead time comes from the last invoice
// touching the item on that order. An empty item code is rejected with
// ErrInvalidArgument before anything is computed.
func DrillDownProduct(in ProductDrillDownInput) ([]dto.ProductOrderRow, error) {
	if strings.TrimSpace(in.ItemCode) == "" {
		return nil, fmt.Errorf("%w: item code is required", ErrInvalidArgument)
	}
	code := entities.NormalizeItemCode(in.ItemCode)

	rows := []dto.ProductOrderRow{}
	for _, order := range in.Orders {
		if !in.Join.IsFulfilled(order.ID) {
			continue
		}
		number, ok := in.Join.OrderNumber(order.ID)
		if !ok {
			continue
		}
		invoiceDates := in.Invoices.DisplayDates(number)

		for _, line := range in.LinesByOrder[order.ID] {
			if entities.NormalizeItemCode(line.ItemCode) != code {
				continue
			}
			key := ItemKey{Order: number, Item: code}
			invoicedQty := in.Invoices.InvoicedQty[key]
			invoicedValue := in.Invoices.InvoicedValue[key]

			leadTime := NewLeadTimeTracker(LeadTimeLast)
			leadTime.Observe(order.Date, in.Invoices.LastInvoiceDateByItem[key])

			rows = append(rows, dto.ProductOrderRow{
				OrderID:          order.ID,
				OrderNumber:      order.Number,
				Date:             calc.FormatDisplayDate(order.Date),
				ItemCode:         string(code),
				Description:      line.Description,
				OrderedQty:       calc.Round2(line.Quantity),
				InvoicedQty:      calc.Round2(invoicedQty),
				OrderedTotal:     calc.Round2(line.Value()),
				InvoicedTotal:    calc.Round2(invoicedValue),
				FillRate:         calc.FillRate(invoicedQty, line.Quantity),
				WeightedFillRate: calc.FillRate(invoicedValue, line.Value()),
				InvoiceDates:     invoiceDates,
				LeadTimeDays:     leadTime.Days(),
			})
		}
	}
	return rows, nil
}

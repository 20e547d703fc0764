package efficiency

import (
	"fmt"
	"sort"
	"time"

	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/services/calc"
)

// ItemKey identifies one item within one order
type ItemKey struct {
	Order entities.OrderNumber
	Item  entities.ItemCode
}

// NewItemKey builds the key for a raw item code on an order
func NewItemKey(order entities.OrderNumber, rawItemCode string) ItemKey {
	return ItemKey{Order: order, Item: entities.NormalizeItemCode(rawItemCode)}
}

// String renders the key as "orderNumber-ITEMCODE"
func (k ItemKey) String() string {
	return fmt.Sprintf("%d-%s", k.Order, k.Item)
}

// InvoiceIndex pre-resolves invoice data per order and per order item so
// order level views can look it up without rescanning invoices
type InvoiceIndex struct {
	LinesByOrder          map[entities.OrderNumber][]entities.InvoiceLine
	FirstInvoice          map[entities.OrderNumber]*entities.Invoice
	LastInvoice           map[entities.OrderNumber]*entities.Invoice
	InvoiceDates          map[entities.OrderNumber][]time.Time
	InvoicedQty           map[ItemKey]float64
	InvoicedValue         map[ItemKey]float64
	LastInvoiceDateByItem map[ItemKey]time.Time
}

// BuildInvoiceIndex folds invoices in input order. Invoices with an
// unparsable order number are skipped. The last invoice of an order is the
// one with the latest completion date; undated invoices only count as last
// when no dated invoice exists.
func BuildInvoiceIndex(invoices []*entities.Invoice) *InvoiceIndex {
	ix := &InvoiceIndex{
		LinesByOrder:          make(map[entities.OrderNumber][]entities.InvoiceLine),
		FirstInvoice:          make(map[entities.OrderNumber]*entities.Invoice),
		LastInvoice:           make(map[entities.OrderNumber]*entities.Invoice),
		InvoiceDates:          make(map[entities.OrderNumber][]time.Time),
		InvoicedQty:           make(map[ItemKey]float64),
		InvoicedValue:         make(map[ItemKey]float64),
		LastInvoiceDateByItem: make(map[ItemKey]time.Time),
	}
	seenDays := make(map[entities.OrderNumber]map[string]struct{})

	for _, invoice := range invoices {
		number, err := entities.ParseOrderNumber(invoice.OrderNumber)
		if err != nil {
			continue
		}

		ix.LinesByOrder[number] = append(ix.LinesByOrder[number], invoice.Lines...)
		for i := range invoice.Lines {
			line := &invoice.Lines[i]
			key := NewItemKey(number, line.ItemCode)
			ix.InvoicedQty[key] += line.Quantity
			ix.InvoicedValue[key] += line.Value()

			if invoice.HasCompletionDate() {
				if last, ok := ix.LastInvoiceDateByItem[key]; !ok || invoice.CompletedAt.After(last) {
					ix.LastInvoiceDateByItem[key] = invoice.CompletedAt
				}
			}
		}

		if _, ok := ix.FirstInvoice[number]; !ok {
			ix.FirstInvoice[number] = invoice
		}
		if last, ok := ix.LastInvoice[number]; !ok || isLaterInvoice(invoice, last) {
			ix.LastInvoice[number] = invoice
		}

		if _, ok := ix.InvoiceDates[number]; !ok {
			ix.InvoiceDates[number] = []time.Time{}
			seenDays[number] = make(map[string]struct{})
		}
		if invoice.HasCompletionDate() {
			day := calc.FormatDisplayDate(invoice.CompletedAt)
			if _, dup := seenDays[number][day]; !dup {
				seenDays[number][day] = struct{}{}
				ix.InvoiceDates[number] = append(ix.InvoiceDates[number], invoice.CompletedAt)
			}
		}
	}

	for number := range ix.InvoiceDates {
		dates := ix.InvoiceDates[number]
		sort.SliceStable(dates, func(i, j int) bool {
			return dates[i].Before(dates[j])
		})
	}

	return ix
}

func isLaterInvoice(candidate, current *entities.Invoice) bool {
	if !candidate.HasCompletionDate() {
		return false
	}
	if !current.HasCompletionDate() {
		return true
	}
	return candidate.CompletedAt.After(current.CompletedAt)
}

// InvoicedQuantity is the total invoiced quantity of an order
func (ix *InvoiceIndex) InvoicedQuantity(number entities.OrderNumber) float64 {
	total := 0.0
	for _, line := range ix.LinesByOrder[number] {
		total += line.Quantity
	}
	return total
}

// DisplayDates returns the distinct invoice days of an order in DD-MM-YYYY
// form, oldest first. The result is never nil.
func (ix *InvoiceIndex) DisplayDates(number entities.OrderNumber) []string {
	dates := ix.InvoiceDates[number]
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, calc.FormatDisplayDate(d))
	}
	return out
}

// OrderLineIndex groups order lines by their owning order id
type OrderLineIndex map[string][]*entities.OrderLine

// IndexOrderLines groups lines by order id, preserving input order
func IndexOrderLines(lines []*entities.OrderLine) OrderLineIndex {
	ix := make(OrderLineIndex)
	for _, line := range lines {
		ix[line.OrderID] = append(ix[line.OrderID], line)
	}
	return ix
}

// OrderedQuantity sums the quantity of an order's lines
func (ix OrderLineIndex) OrderedQuantity(orderID string) float64 {
	total := 0.0
	for _, line := range ix[orderID] {
		total += line.Quantity
	}
	return total
}

// OrderedValue sums the value of an order's lines
func (ix OrderLineIndex) OrderedValue(orderID string) float64 {
	total := 0.0
	for _, line := range ix[orderID] {
		total += line.Value()
	}
	return total
}

// OrderedQtyByOrder computes the ordered quantity of every order id
func OrderedQtyByOrder(lines []*entities.OrderLine) map[string]float64 {
	out := make(map[string]float64)
	for _, line := range lines {
		out[line.OrderID] += line.Quantity
	}
	return out
}

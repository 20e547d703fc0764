package efficiency

import "github.com/vsinha/fulfillment/pkg/domain/entities"

// JoinIndex relates invoices to the orders they were issued against. Orders
// and invoices only share the external order number, which is compared in
// its canonical numeric form so "123", "0123" and "123.0" all match.
type JoinIndex struct {
	ByExternalNumber  map[entities.OrderNumber]*entities.Order
	ByID              map[string]*entities.Order
	FulfilledOrderIDs map[string]struct{}

	numberByID map[string]entities.OrderNumber
	unresolved int
}

// BuildJoinIndex indexes orders by id and external number and marks the
// orders that have at least one invoice. When two orders share an external
// number the first one wins. Orders whose number cannot be parsed are
// indexed by id only and can never be fulfilled.
func BuildJoinIndex(orders []*entities.Order, invoices []*entities.Invoice) *JoinIndex {
	ix := &JoinIndex{
		ByExternalNumber:  make(map[entities.OrderNumber]*entities.Order, len(orders)),
		ByID:              make(map[string]*entities.Order, len(orders)),
		FulfilledOrderIDs: make(map[string]struct{}),
		numberByID:        make(map[string]entities.OrderNumber, len(orders)),
	}

	for _, order := range orders {
		ix.ByID[order.ID] = order
		number, err := entities.ParseOrderNumber(order.Number)
		if err != nil {
			continue
		}
		ix.numberByID[order.ID] = number
		if _, exists := ix.ByExternalNumber[number]; !exists {
			ix.ByExternalNumber[number] = order
		}
	}

	for _, invoice := range invoices {
		order, ok := ix.Resolve(invoice)
		if !ok {
			ix.unresolved++
			continue
		}
		ix.FulfilledOrderIDs[order.ID] = struct{}{}
	}

	return ix
}

// Resolve returns the order an invoice was issued against
func (ix *JoinIndex) Resolve(invoice *entities.Invoice) (*entities.Order, bool) {
	return ix.ResolveNumber(invoice.OrderNumber)
}

// ResolveNumber returns the order carrying a raw external order number
func (ix *JoinIndex) ResolveNumber(raw string) (*entities.Order, bool) {
	number, err := entities.ParseOrderNumber(raw)
	if err != nil {
		return nil, false
	}
	order, ok := ix.ByExternalNumber[number]
	return order, ok
}

// OrderNumber returns the canonical external number of an order by id
func (ix *JoinIndex) OrderNumber(orderID string) (entities.OrderNumber, bool) {
	number, ok := ix.numberByID[orderID]
	return number, ok
}

// IsFulfilled reports whether the order has at least one invoice
func (ix *JoinIndex) IsFulfilled(orderID string) bool {
	_, ok := ix.FulfilledOrderIDs[orderID]
	return ok
}

// UnresolvedInvoices is the number of invoices that matched no order
func (ix *JoinIndex) UnresolvedInvoices() int {
	return ix.unresolved
}

package memory

import (
	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/repositories"
)

// InvoiceRepository provides in-memory invoice storage
type InvoiceRepository struct {
	invoices []entities.Invoice
}

// NewInvoiceRepository creates a new in-memory invoice repository
func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{
		invoices: []entities.Invoice{},
	}
}

// Verify interface compliance
var _ repositories.InvoiceRepository = (*InvoiceRepository)(nil)

// LoadInvoices loads invoices into the repository
func (r *InvoiceRepository) LoadInvoices(invoices []*entities.Invoice) error {
	for _, inv := range invoices {
		r.AddInvoice(*inv)
	}
	return nil
}

// AddInvoice adds an invoice to the repository
func (r *InvoiceRepository) AddInvoice(inv entities.Invoice) {
	r.invoices = append(r.invoices, inv)
}

// GetAllInvoices returns all invoices in load order
func (r *InvoiceRepository) GetAllInvoices() ([]*entities.Invoice, error) {
	invoices := make([]*entities.Invoice, 0, len(r.invoices))
	for i := range r.invoices {
		invoices = append(invoices, &r.invoices[i])
	}
	return invoices, nil
}

// GetInvoicesForOrder returns the invoices whose order number coerces to
// the given canonical number. Invoices with unparsable numbers never match.
func (r *InvoiceRepository) GetInvoicesForOrder(orderNumber entities.OrderNumber) ([]*entities.Invoice, error) {
	var invoices []*entities.Invoice
	for i := range r.invoices {
		n, err := entities.ParseOrderNumber(r.invoices[i].OrderNumber)
		if err != nil {
			continue
		}
		if n == orderNumber {
			invoices = append(invoices, &r.invoices[i])
		}
	}
	return invoices, nil
}

package repositories

import "github.com/vsinha/fulfillment/pkg/domain/entities"

// InvoiceRepository provides access to invoices with their lines
type InvoiceRepository interface {
	GetAllInvoices() ([]*entities.Invoice, error)
	GetInvoicesForOrder(orderNumber entities.OrderNumber) ([]*entities.Invoice, error)
	LoadInvoices(invoices []*entities.Invoice) error
}

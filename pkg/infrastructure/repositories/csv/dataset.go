package csv

import (
	"fmt"

	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/repositories"
)

// Dataset is one fully materialized set of fulfillment records
type Dataset struct {
	Orders     []*entities.Order
	OrderLines []*entities.OrderLine
	Invoices   []*entities.Invoice
	Categories []*entities.Category
	Products   []*entities.Product
}

// Populate loads the dataset into repositories
func (d *Dataset) Populate(
	orderRepo repositories.OrderRepository,
	invoiceRepo repositories.InvoiceRepository,
	catalogRepo repositories.CatalogRepository,
) error {
	if err := orderRepo.LoadOrders(d.Orders); err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	if err := orderRepo.LoadOrderLines(d.OrderLines); err != nil {
		return fmt.Errorf("failed to load order lines: %w", err)
	}
	if err := invoiceRepo.LoadInvoices(d.Invoices); err != nil {
		return fmt.Errorf("failed to load invoices: %w", err)
	}
	if err := catalogRepo.LoadCategories(d.Categories); err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	if err := catalogRepo.LoadProducts(d.Products); err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	return nil
}

package testing

import (
	"fmt"
	"time"

	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/infrastructure/repositories/memory"
)

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// BuildSimpleTestData builds a small hardware distributor scenario:
//
//	1001 Ferretería Norte  2025-01-10  fully invoiced bolts, nuts invoiced over two documents
//	1002 Corralón Sur      2025-01-20  washers, plus a voided duplicate invoice
//	1003 Ferretería Norte  2025-02-05  half the bolts and a production supply, plus a credit note
//	1004 (no client)       2025-02-15  never invoiced
//	1005 Corralón Sur      2024-12-20  previous period, half invoiced
//
// and one invoice against order 9999 which does not exist.
func BuildSimpleTestData() (*memory.OrderRepository, *memory.InvoiceRepository, *memory.CatalogRepository) {
	orderRepo := memory.NewOrderRepository(5)
	invoiceRepo := memory.NewInvoiceRepository()
	catalogRepo := memory.NewCatalogRepository()

	orders := []*entities.Order{
		{ID: "P1", Number: "1001", Date: Date(2025, 1, 10), Client: "Ferretería Norte"},
		{ID: "P2", Number: "1002", Date: Date(2025, 1, 20), Client: "Corralón Sur"},
		{ID: "P3", Number: "1003", Date: Date(2025, 2, 5), Client: "Ferretería Norte"},
		{ID: "P4", Number: "1004", Date: Date(2025, 2, 15), Client: ""},
		{ID: "P5", Number: "1005", Date: Date(2024, 12, 20), Client: "Corralón Sur"},
	}
	lines := []*entities.OrderLine{
		{OrderID: "P1", ItemCode: "BUL-8", Description: "Bulón 8mm", Quantity: 100, UnitPrice: 2.5},
		{OrderID: "P1", ItemCode: "TUE-8", Description: "Tuerca 8mm", Quantity: 200, UnitPrice: 0.5},
		{OrderID: "P2", ItemCode: "ARA-10", Description: "Arandela 10mm", Quantity: 50, UnitPrice: 1},
		{OrderID: "P3", ItemCode: "bul-8", Description: "Bulón 8mm", Quantity: 40, UnitPrice: 2.5},
		{OrderID: "P3", ItemCode: "INS-1", Description: "Insumo de línea", Quantity: 10, UnitPrice: 3},
		{OrderID: "P4", ItemCode: "TUE-8", Description: "Tuerca 8mm", Quantity: 10, UnitPrice: 0.5},
		{OrderID: "P5", ItemCode: "ARA-10", Description: "Arandela 10mm", Quantity: 30, UnitPrice: 1},
	}
	invoices := []*entities.Invoice{
		{ID: "F1", OrderNumber: "1001", CompletedAt: Date(2025, 1, 15), Type: entities.InvoiceTypeInvoice, Lines: []entities.InvoiceLine{
			{ItemCode: "BUL-8", Description: "Bulón 8mm", Quantity: 100, UnitPrice: 2.5},
			{ItemCode: "TUE-8", Description: "Tuerca 8mm", Quantity: 150, UnitPrice: 0.5},
		}},
		{ID: "F2", OrderNumber: "1001.0", CompletedAt: Date(2025, 1, 25), Type: entities.InvoiceTypeInvoice, Lines: []entities.InvoiceLine{
			{ItemCode: "TUE-8", Description: "Tuerca 8mm", Quantity: 30, UnitPrice: 0.5},
		}},
		{ID: "F3", OrderNumber: "1002", CompletedAt: Date(2025, 1, 22), Type: entities.InvoiceTypeSaleReceipt, Lines: []entities.InvoiceLine{
			{ItemCode: "ARA-10", Description: "Arandela 10mm", Quantity: 50, UnitPrice: 1},
		}},
		{ID: "F4", OrderNumber: "1003", CompletedAt: Date(2025, 2, 12), Type: entities.InvoiceTypeInvoice, Lines: []entities.InvoiceLine{
			{ItemCode: "BUL-8", Description: "Bulón 8mm", Quantity: 20, UnitPrice: 2.5},
			{ItemCode: "INS-1", Description: "Insumo de línea", Quantity: 10, UnitPrice: 3},
		}},
		{ID: "F5", OrderNumber: "1003", CompletedAt: Date(2025, 2, 13), Type: entities.InvoiceTypeCreditNote, Lines: []entities.InvoiceLine{
			{ItemCode: "BUL-8", Description: "Bulón 8mm", Quantity: 20, UnitPrice: 2.5},
		}},
		{ID: "F6", OrderNumber: "1002", CompletedAt: Date(2025, 1, 30), Type: entities.InvoiceTypeInvoice, Voided: true, Lines: []entities.InvoiceLine{
			{ItemCode: "ARA-10", Description: "Arandela 10mm", Quantity: 50, UnitPrice: 1},
		}},
		{ID: "F7", OrderNumber: "9999", CompletedAt: Date(2025, 1, 18), Type: entities.InvoiceTypeInvoice, Lines: []entities.InvoiceLine{
			{ItemCode: "BUL-8", Description: "Bulón 8mm", Quantity: 500, UnitPrice: 2.5},
		}},
		{ID: "F8", OrderNumber: "1005", CompletedAt: Date(2024, 12, 27), Type: entities.InvoiceTypeInvoice, Lines: []entities.InvoiceLine{
			{ItemCode: "ARA-10", Description: "Arandela 10mm", Quantity: 15, UnitPrice: 1},
		}},
	}
	categories := []*entities.Category{
		{ID: "C-BUL", Name: "Bulones y tuercas"},
		{ID: "C-ARA", Name: "Arandelas"},
		{ID: "C-PRO", Name: "Producción"},
	}
	products := []*entities.Product{
		{SKU: "BUL-8", CategoryID: "C-BUL"},
		{SKU: "TUE-8", CategoryID: "C-BUL"},
		{SKU: "ARA-10", CategoryID: "C-ARA"},
		{SKU: "INS-1", CategoryID: "C-PRO"},
	}

	mustLoad("orders", orderRepo.LoadOrders(orders))
	mustLoad("order lines", orderRepo.LoadOrderLines(lines))
	mustLoad("invoices", invoiceRepo.LoadInvoices(invoices))
	mustLoad("categories", catalogRepo.LoadCategories(categories))
	mustLoad("products", catalogRepo.LoadProducts(products))

	return orderRepo, invoiceRepo, catalogRepo
}

// mustLoad panics when fixture data is rejected by a repository
func mustLoad(what string, err error) {
	if err != nil {
		panic(fmt.Sprintf("failed to load fixture %s: %v", what, err))
	}
}

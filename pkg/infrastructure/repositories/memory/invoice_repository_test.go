package memory

import (
	"testing"

	"github.com/vsinha/fulfillment/pkg/domain/entities"
)

func TestInvoiceRepository_GetInvoicesForOrder(t *testing.T) {
	repo := NewInvoiceRepository()

	invoices := []*entities.Invoice{
		{ID: "F-1", OrderNumber: "1001"},
		{ID: "F-2", OrderNumber: "1001.0"},
		{ID: "F-3", OrderNumber: "1002"},
		{ID: "F-4", OrderNumber: "not-a-number"},
	}
	if err := repo.LoadInvoices(invoices); err != nil {
		t.Fatalf("Failed to load invoices: %v", err)
	}

	matched, err := repo.GetInvoicesForOrder(1001)
	if err != nil {
		t.Fatalf("Failed to query invoices: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("Expected 2 invoices for order 1001, got %d", len(matched))
	}

	all, _ := repo.GetAllInvoices()
	if len(all) != 4 {
		t.Errorf("Expected 4 invoices, got %d", len(all))
	}
}

func TestCatalogRepository_Load(t *testing.T) {
	repo := NewCatalogRepository()

	err := repo.LoadCategories([]*entities.Category{{ID: "1", Name: "Bulones"}, {ID: "2", Name: "Producción interna"}})
	if err != nil {
		t.Fatalf("Failed to load categories: %v", err)
	}
	err = repo.LoadProducts([]*entities.Product{{SKU: "B-10", CategoryID: "1"}})
	if err != nil {
		t.Fatalf("Failed to load products: %v", err)
	}

	categories, _ := repo.GetCategories()
	products, _ := repo.GetProducts()
	if len(categories) != 2 || len(products) != 1 {
		t.Errorf("Expected 2 categories and 1 product, got %d and %d", len(categories), len(products))
	}
}

package testing

import (
	"errors"
	gotesting "testing"
)

func TestBuildSimpleTestData_LoadsEveryFixture(t *gotesting.T) {
	orderRepo, invoiceRepo, catalogRepo := BuildSimpleTestData()

	orders, err := orderRepo.GetAllOrders()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(orders) != 5 {
		t.Errorf("Expected 5 orders, got %d", len(orders))
	}
	invoices, err := invoiceRepo.GetAllInvoices()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(invoices) != 8 {
		t.Errorf("Expected 8 invoices, got %d", len(invoices))
	}
	categories, err := catalogRepo.GetCategories()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(categories) != 3 {
		t.Errorf("Expected 3 categories, got %d", len(categories))
	}
}

func TestMustLoad(t *gotesting.T) {
	testCases := []struct {
		name      string
		err       error
		wantPanic bool
	}{
		{"accepted", nil, false},
		{"rejected", errors.New("order O-1 already exists"), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *gotesting.T) {
			defer func() {
				r := recover()
				if tc.wantPanic && r == nil {
					t.Error("Expected panic, got none")
				}
				if !tc.wantPanic && r != nil {
					t.Errorf("Expected no panic, got %v", r)
				}
			}()
			mustLoad("orders", tc.err)
		})
	}
}

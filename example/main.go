package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vsinha/fulfillment/pkg/application/dto"
	"github.com/vsinha/fulfillment/pkg/application/services/orchestration"
	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	orderRepo := memory.NewOrderRepository(2)
	invoiceRepo := memory.NewInvoiceRepository()
	catalogRepo := memory.NewCatalogRepository()

	setupHardwareStore(orderRepo, invoiceRepo, catalogRepo)

	orchestrator := orchestration.NewReportOrchestrator(
		orderRepo,
		invoiceRepo,
		catalogRepo,
		orchestration.DefaultReportOptions(),
		nil,
	)

	report, err := orchestrator.Run(ctx, orchestration.Query{}, []dto.ReportView{dto.ViewClient, dto.ViewCategory})
	if err != nil {
		log.Fatalf("report failed: %v", err)
	}

	fmt.Println("📊 Fill rate by client")
	for _, row := range report.Clients {
		fmt.Printf("  %-20s %6.2f%%  lead time %s\n", row.Client, row.FillRate, formatLeadTime(row.AvgLeadTime))
	}

	fmt.Println("📦 Fill rate by category")
	for _, row := range report.Categories {
		fmt.Printf("  %-20s %6.2f%%  weighted %6.2f%%\n", row.CategoryName, row.FillRate, row.WeightedFillRate)
	}
}

func formatLeadTime(days *float64) string {
	if days == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f days", *days)
}

func setupHardwareStore(
	orderRepo *memory.OrderRepository,
	invoiceRepo *memory.InvoiceRepository,
	catalogRepo *memory.CatalogRepository,
) {
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	_ = orderRepo.LoadOrders([]*entities.Order{
		{ID: "A-1", Number: "5001", Date: day(1), Client: "Ferretería Norte"},
		{ID: "A-2", Number: "5002", Date: day(3), Client: "Corralón Sur"},
	})
	_ = orderRepo.LoadOrderLines([]*entities.OrderLine{
		{OrderID: "A-1", ItemCode: "BUL-8", Description: "Bulón 8mm", Quantity: 100, UnitPrice: 2.5},
		{OrderID: "A-2", ItemCode: "ARA-10", Description: "Arandela 10mm", Quantity: 40, UnitPrice: 1},
	})
	_ = invoiceRepo.LoadInvoices([]*entities.Invoice{
		{ID: "F-1", OrderNumber: "5001", CompletedAt: day(6), Type: entities.InvoiceTypeInvoice, Lines: []entities.InvoiceLine{
			{ItemCode: "BUL-8", Quantity: 80, UnitPrice: 2.5},
		}},
		{ID: "F-2", OrderNumber: "5002.0", CompletedAt: day(4), Type: entities.InvoiceTypeInvoice, Lines: []entities.InvoiceLine{
			{ItemCode: "ara-10", Quantity: 40, UnitPrice: 1},
		}},
	})
	_ = catalogRepo.LoadCategories([]*entities.Category{{ID: "C1", Name: "Bulones"}, {ID: "C2", Name: "Arandelas"}})
	_ = catalogRepo.LoadProducts([]*entities.Product{{SKU: "BUL-8", CategoryID: "C1"}, {SKU: "ARA-10", CategoryID: "C2"}})
}

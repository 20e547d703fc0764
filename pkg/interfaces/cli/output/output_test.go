package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/fulfillment/pkg/application/dto"
)

func sampleReport() *dto.Report {
	lead := 4.5
	return &dto.Report{
		RunID: "0f3c2b1a-aaaa-bbbb-cccc-1234567890ab",
		Views: []dto.ReportView{dto.ViewClient, dto.ViewOutliers},
		Clients: []dto.ClientRow{
			{Client: "Corralón Sur", OrderedQty: 80, InvoicedQty: 65, FillRate: 81.25, AvgLeadTime: &lead},
			{Client: "Sin nombre", OrderedQty: 10, FillRate: 0},
		},
		Outliers: []dto.OutlierRow{
			{ItemCode: "ARA-10", Description: "Arandela 10mm", OrderedQty: 80, InvoicedQty: 65, FillRate: 81.25},
		},
	}
}

func TestGenerate_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(sampleReport(), Config{Format: "text", Stdout: &buf}); err != nil {
		t.Fatalf("Failed to generate text output: %v", err)
	}

	out := buf.String()
	for _, expected := range []string{"Eficiencia por cliente", "Corralón Sur", "81.25", "4.5", "ARA-10"} {
		if !strings.Contains(out, expected) {
			t.Errorf("Expected text output to contain %q, got:\n%s", expected, out)
		}
	}
	// The client without lead time renders a dash
	if !strings.Contains(out, "-") {
		t.Errorf("Expected missing lead time to render as -, got:\n%s", out)
	}
}

func TestGenerate_JSONStdout(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(sampleReport(), Config{Format: "json", Stdout: &buf}); err != nil {
		t.Fatalf("Failed to generate JSON output: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	clients, ok := decoded["porCliente"].([]any)
	if !ok || len(clients) != 2 {
		t.Fatalf("Expected 2 clients under porCliente, got %v", decoded["porCliente"])
	}
	second := clients[1].(map[string]any)
	if second["leadTimePromedio"] != nil {
		t.Errorf("Expected null lead time, got %v", second["leadTimePromedio"])
	}
	if _, ok := decoded["porCategoria"]; ok {
		t.Error("Expected views that were not run to be omitted")
	}
}

func TestGenerate_CSV(t *testing.T) {
	dir := t.TempDir()
	if err := Generate(sampleReport(), Config{Format: "csv", OutputDir: dir}); err != nil {
		t.Fatalf("Failed to generate CSV output: %v", err)
	}

	file, err := os.Open(filepath.Join(dir, "fulfillment_0f3c2b1a_clientes.csv"))
	if err != nil {
		t.Fatalf("Expected clients CSV file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d records", len(records))
	}
	if records[0][0] != "cliente" {
		t.Errorf("Expected header cliente, got %s", records[0][0])
	}
	if records[2][len(records[2])-1] != "" {
		t.Errorf("Expected empty lead time cell, got %q", records[2][len(records[2])-1])
	}

	if _, err := os.Stat(filepath.Join(dir, "fulfillment_0f3c2b1a_outliers.csv")); err != nil {
		t.Errorf("Expected outliers CSV file: %v", err)
	}

	if err := Generate(sampleReport(), Config{Format: "csv"}); err == nil {
		t.Error("Expected error for CSV without output directory")
	}
}

func TestGenerate_XLSX(t *testing.T) {
	dir := t.TempDir()
	if err := Generate(sampleReport(), Config{Format: "xlsx", OutputDir: dir}); err != nil {
		t.Fatalf("Failed to generate XLSX output: %v", err)
	}

	f, err := excelize.OpenFile(filepath.Join(dir, "fulfillment_0f3c2b1a.xlsx"))
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "clientes" || sheets[1] != "outliers" {
		t.Fatalf("Expected sheets [clientes outliers], got %v", sheets)
	}

	value, err := f.GetCellValue("clientes", "A2")
	if err != nil || value != "Corralón Sur" {
		t.Errorf("Expected Corralón Sur in A2, got %q (%v)", value, err)
	}
	value, err = f.GetCellValue("outliers", "E2")
	if err != nil || value != "81.25" {
		t.Errorf("Expected 81.25 in E2, got %q (%v)", value, err)
	}
}

func TestGenerate_OrdersViewTables(t *testing.T) {
	lead := 15
	report := &dto.Report{
		RunID: "0f3c2b1a-aaaa-bbbb-cccc-1234567890ab",
		Views: []dto.ReportView{dto.ViewOrders},
		Orders: []dto.OrderDetail{
			{OrderID: "P1", OrderNumber: "1001", Date: "10-01-2025", OrderedQty: 300, InvoicedQty: 280, FillRate: 93.33, LeadTimeDays: &lead,
				Lines: []dto.OrderDetailLine{
					{ItemCode: "BUL-8", Description: "Bulón 8mm", OrderedQty: 100, InvoicedQty: 100, FillRate: 100},
					{ItemCode: "TUE-8", Description: "Tuerca 8mm", OrderedQty: 200, InvoicedQty: 180, FillRate: 90},
				}},
			{OrderID: "P4", OrderNumber: "1004", Date: "15-02-2025", OrderedQty: 10,
				Lines: []dto.OrderDetailLine{{ItemCode: "TUE-8", Description: "Tuerca 8mm", OrderedQty: 10}}},
		},
	}

	tables := reportTables(report)
	if len(tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(tables))
	}
	testCases := []struct {
		name         string
		expectedRows int
	}{
		{"detalle_pedidos", 2},
		{"detalle_pedidos_productos", 3},
	}
	for i, tc := range testCases {
		if tables[i].name != tc.name {
			t.Errorf("Expected table %s at position %d, got %s", tc.name, i, tables[i].name)
		}
		if len(tables[i].rows) != tc.expectedRows {
			t.Errorf("Expected %d rows in %s, got %d", tc.expectedRows, tc.name, len(tables[i].rows))
		}
	}

	dir := t.TempDir()
	if err := Generate(report, Config{Format: "xlsx", OutputDir: dir}); err != nil {
		t.Fatalf("Failed to generate XLSX output: %v", err)
	}
	f, err := excelize.OpenFile(filepath.Join(dir, "fulfillment_0f3c2b1a.xlsx"))
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()
	value, err := f.GetCellValue("detalle_pedidos_productos", "A4")
	if err != nil || value != "1004" {
		t.Errorf("Expected order number 1004 in A4, got %q (%v)", value, err)
	}
}

func TestGenerateSummary_Text(t *testing.T) {
	lead := 7.75
	summary := &dto.ExecutiveSummary{
		TotalOrders:     4,
		FillRate:        87.21,
		AvgLeadTimeDays: &lead,
		TopClients:      []dto.ClientFillRate{{Client: "Corralón Sur", FillRate: 75}},
	}

	var buf bytes.Buffer
	if err := GenerateSummary(summary, Config{Stdout: &buf}); err != nil {
		t.Fatalf("Failed to generate summary: %v", err)
	}
	out := buf.String()
	for _, expected := range []string{"Resumen ejecutivo", "fillRateGeneral", "87.21", "7.75", "Corralón Sur", "(sin datos)"} {
		if !strings.Contains(out, expected) {
			t.Errorf("Expected summary output to contain %q, got:\n%s", expected, out)
		}
	}
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	if err := Generate(sampleReport(), Config{Format: "html"}); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

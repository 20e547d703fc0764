package efficiency

import (
	"errors"
	"testing"
	"time"
)

func TestSummarizeByCategory_FiltersAndOrdering(t *testing.T) {
	d := &dataset{}
	d.order("o1", "1", "Acme", march(1)).
		order("o2", "2", "Acme", march(1)).
		line("o1", "B1", "Bulón", 4, 1).
		line("o1", "A1", "Ángulo", 2, 1).
		line("o1", "P1", "Insumo", 5, 1).
		line("o1", "U1", "Sin mapa", 5, 1).
		line("o1", "Z1", "Zócalo", 3, 1).
		line("o2", "B1", "Bulón", 100, 1).
		invoice("i1", "1", march(3),
			invLine("B1", 4, 1), invLine("A1", 1, 1), invLine("P1", 5, 1), invLine("U1", 5, 1)).
		category("c-b", "Bulones", "B1").
		category("c-a", "Ángulos", "A1").
		category("c-z", "Zócalos", "Z1").
		category("c-p", "Producción interna", "P1")

	rows := SummarizeByCategory(d.categoryInput())
	if len(rows) != 2 {
		t.Fatalf("Expected 2 category rows, got %+v", rows)
	}
	if rows[0].CategoryName != "Ángulos" || rows[1].CategoryName != "Bulones" {
		t.Errorf("Expected collated order Ángulos, Bulones, got %s, %s", rows[0].CategoryName, rows[1].CategoryName)
	}
	if rows[1].OrderedQty != 4 {
		t.Errorf("Expected unfulfilled order excluded from ordered side, got %v", rows[1].OrderedQty)
	}
	if rows[0].FillRate != 50 {
		t.Errorf("Expected Ángulos fill rate 50, got %v", rows[0].FillRate)
	}

	in := d.categoryInput()
	in.CategoryID = "c-b"
	filtered := SummarizeByCategory(in)
	if len(filtered) != 1 || filtered[0].CategoryID != "c-b" {
		t.Errorf("Expected only c-b after filtering, got %+v", filtered)
	}
}

func TestSummarizeByCategory_NoLeadTimeWithoutDates(t *testing.T) {
	d := &dataset{}
	d.order("o1", "1", "Acme", time.Time{}).
		line("o1", "A", "", 1, 1).
		invoice("i1", "1", march(2), invLine("A", 1, 1)).
		category("c", "Cat", "A")

	rows := SummarizeByCategory(d.categoryInput())
	if rows[0].AvgLeadTime != nil {
		t.Errorf("Expected nil lead time for undated order, got %v", *rows[0].AvgLeadTime)
	}
}

func TestSummarizeByClient_MergesUnnamedAndSkipsUninvoiced(t *testing.T) {
	d := &dataset{}
	d.order("o1", "1", "", march(1)).
		order("o2", "2", "  ", march(1)).
		order("o3", "3", "Zeta", march(1)).
		order("o4", "4", "Alfa", march(1)).
		line("o1", "A", "", 10, 1).
		line("o2", "A", "", 10, 1).
		line("o3", "A", "", 10, 1).
		line("o4", "A", "", 10, 1).
		invoice("i1", "1", march(3), invLine("A", 10, 1)).
		invoice("i2", "2", march(5), invLine("A", 5, 1)).
		invoice("i4", "4", march(2), invLine("A", 0, 1))

	rows := SummarizeByClient(d.clientInput())
	if len(rows) != 1 {
		t.Fatalf("Expected only the merged unnamed client, got %+v", rows)
	}
	r := rows[0]
	if r.Client != UnknownClientName {
		t.Errorf("Expected %q, got %q", UnknownClientName, r.Client)
	}
	if r.OrderedQty != 20 || r.InvoicedQty != 15 || r.FillRate != 75 {
		t.Errorf("Expected 20/15/75, got %v/%v/%v", r.OrderedQty, r.InvoicedQty, r.FillRate)
	}
	if r.AvgLeadTime == nil || *r.AvgLeadTime != 3 {
		t.Errorf("Expected mean lead time 3, got %v", r.AvgLeadTime)
	}
}

func TestSummarizeByProduct_FilterAndNullWeightedRate(t *testing.T) {
	d := &dataset{}
	d.order("o1", "1", "Acme", march(1)).
		line("o1", "tor-1", "Tornillo", 10, 2).
		line("o1", "reg-1", "Regalo", 4, 0).
		line("o1", "cla-1", "Clavo", 5, 1).
		invoice("i1", "1", march(2),
			describedLine("TOR-1", "Tornillo", 5, 2), invLine("REG-1", 4, 3), invLine("NEVER", 9, 9))

	rows := SummarizeByProduct(d.productInput(""))
	if len(rows) != 2 {
		t.Fatalf("Expected 2 invoiced products, got %+v", rows)
	}
	if rows[0].ItemCode != "TOR-1" || rows[1].ItemCode != "REG-1" {
		t.Errorf("Expected first-seen order TOR-1, REG-1, got %s, %s", rows[0].ItemCode, rows[1].ItemCode)
	}
	if rows[1].WeightedFillRate != nil {
		t.Errorf("Expected nil weighted fill rate without ordered value, got %v", *rows[1].WeightedFillRate)
	}

	filtered := SummarizeByProduct(d.productInput("torn"))
	if len(filtered) != 1 || filtered[0].Product != "Tornillo" {
		t.Errorf("Expected description filter to keep Tornillo, got %+v", filtered)
	}
	byCode := SummarizeByProduct(d.productInput("reg-"))
	if len(byCode) != 1 || byCode[0].ItemCode != "REG-1" {
		t.Errorf("Expected code filter to keep REG-1, got %+v", byCode)
	}
}

func TestSummarizeByProduct_FilterAppliesToInvoiceLines(t *testing.T) {
	d := &dataset{}
	d.order("o1", "1", "Acme", march(1)).
		line("o1", "tor-1", "Tornillo", 10, 2).
		invoice("i1", "1", march(3), describedLine("TOR-1", "Tornillo", 4, 2)).
		invoice("i2", "1", march(9), describedLine("TOR-1", "Perno", 3, 2)).
		invoice("i3", "1", march(9), invLine("TOR-1", 2, 2))

	tests := []struct {
		name        string
		filter      string
		expectedQty float64
		expectedLT  float64
	}{
		{"no filter counts every line", "", 9, 6},
		{"description filter skips other descriptions", "torn", 4, 2},
		{"code filter matches every line", "tor-", 9, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := SummarizeByProduct(d.productInput(tt.filter))
			if len(rows) != 1 {
				t.Fatalf("Expected 1 product, got %+v", rows)
			}
			if rows[0].InvoicedQty != tt.expectedQty {
				t.Errorf("Expected invoiced qty %v, got %v", tt.expectedQty, rows[0].InvoicedQty)
			}
			if rows[0].AvgLeadTime == nil || *rows[0].AvgLeadTime != tt.expectedLT {
				t.Errorf("Expected avg lead time %v, got %v", tt.expectedLT, rows[0].AvgLeadTime)
			}
		})
	}
}

func TestMonthlyEvolution_SortedByOrderMonth(t *testing.T) {
	d := &dataset{}
	feb := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	d.order("o-feb", "2", "Acme", feb).
		order("o-jan", "1", "Acme", jan).
		order("o-jan-2", "3", "Acme", jan).
		line("o-feb", "A", "", 10, 1).
		line("o-jan", "A", "", 4, 1).
		line("o-jan", "B", "", 6, 1).
		line("o-jan-2", "A", "", 10, 1).
		invoice("i1", "2", march(1), invLine("A", 10, 1)).
		invoice("i2", "1", march(1), invLine("A", 4, 1)).
		invoice("i3", "1", march(2), invLine("B", 1, 1)).
		invoice("i4", "3", march(1), invLine("A", 0, 1))

	rows := MonthlyEvolution(d.monthlyInput())
	if len(rows) != 2 {
		t.Fatalf("Expected 2 months, got %+v", rows)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Month >= rows[i].Month {
			t.Errorf("Expected ascending months, got %s before %s", rows[i-1].Month, rows[i].Month)
		}
	}
	janRow := rows[0]
	if janRow.Month != "2025-01" || janRow.Orders != 1 {
		t.Fatalf("Expected January with one contributing order, got %+v", janRow)
	}
	if janRow.OrderedQty != 10 || janRow.InvoicedQty != 5 || janRow.FillRate != 50 {
		t.Errorf("Expected ordered quantity counted once (10/5/50), got %+v", janRow)
	}
	if janRow.LeadTime == nil || *janRow.LeadTime != 41 {
		t.Errorf("Expected lead time to the latest invoice (41), got %v", janRow.LeadTime)
	}
}

func TestDetailOrder_LinesAddUpToOrder(t *testing.T) {
	d := &dataset{}
	d.order("o1", "42", "Acme", march(1)).
		line("o1", "a", "", 10, 2).
		line("o1", "B", "Bisagra", 5, 4).
		line("o1", "C", "Cerrojo", 3, 1).
		invoice("i1", "42", march(3), invLine("A", 4, 2)).
		invoice("i2", "42", march(9), invLine("b", 5, 4)).
		invoice("i3", "42", march(3), invLine("A", 1, 2))

	detail := DetailOrder(d.orders[0], d.lines, BuildInvoiceIndex(d.invoices))

	sum := 0.0
	for _, l := range detail.Lines {
		sum += l.InvoicedQty
	}
	if sum != detail.InvoicedQty {
		t.Errorf("Expected line sum %v to equal order invoiced %v", sum, detail.InvoicedQty)
	}
	if detail.Kind != OrderDetailKind || detail.Date != "01-03-2025" {
		t.Errorf("Unexpected header %+v", detail)
	}
	if len(detail.InvoiceDates) != 2 || detail.InvoiceDates[0] != "03-03-2025" || detail.InvoiceDates[1] != "09-03-2025" {
		t.Errorf("Expected distinct sorted invoice dates, got %v", detail.InvoiceDates)
	}
	if detail.Lines[0].Description != MissingDescription {
		t.Errorf("Expected placeholder description, got %q", detail.Lines[0].Description)
	}
	if detail.Lines[0].LeadTimeDays == nil || *detail.Lines[0].LeadTimeDays != 2 {
		t.Errorf("Expected line lead time 2, got %v", detail.Lines[0].LeadTimeDays)
	}
	if detail.Lines[2].LeadTimeDays != nil {
		t.Errorf("Expected nil lead time for uninvoiced line, got %v", *detail.Lines[2].LeadTimeDays)
	}
	if detail.LeadTimeDays == nil || *detail.LeadTimeDays != 8 {
		t.Errorf("Expected order lead time to last invoice (8), got %v", detail.LeadTimeDays)
	}
}

func TestDetailOrder_NeverInvoiced(t *testing.T) {
	d := &dataset{}
	d.order("o1", "42", "Acme", march(1)).line("o1", "A", "", 10, 2)

	detail := DetailOrder(d.orders[0], d.lines, BuildInvoiceIndex(nil))
	if detail.FillRate != 0 || detail.LeadTimeDays != nil {
		t.Errorf("Expected 0 fill rate and nil lead time, got %v / %v", detail.FillRate, detail.LeadTimeDays)
	}
	if detail.InvoiceDates == nil || len(detail.InvoiceDates) != 0 {
		t.Errorf("Expected empty invoice dates, got %v", detail.InvoiceDates)
	}
}

func TestDetailOrdersByCategory_GroupsAndSorts(t *testing.T) {
	d := &dataset{}
	d.order("o-late", "20", "Acme", march(10)).
		order("o-early", "10", "Acme", march(2)).
		order("o-undated", "30", "Acme", time.Time{}).
		line("o-late", "A", "Arandela", 2, 1).
		line("o-late", "a", "Arandela", 2, 1).
		line("o-early", "B", "Bulón", 4, 1).
		line("o-undated", "C", "", 1, 1).
		invoice("i1", "20", march(12), invLine("A", 4, 1), invLine("X", 9, 1)).
		invoice("i2", "10", march(5), invLine("B", 1, 1)).
		invoice("i3", "30", march(5), invLine("C", 1, 1))

	rows := DetailOrdersByCategory(d.orderCategoryInput())
	if len(rows) != 3 {
		t.Fatalf("Expected 3 grouped orders, got %+v", rows)
	}
	if rows[0].OrderNumber != "10" || rows[1].OrderNumber != "20" || rows[2].OrderNumber != "30" {
		t.Errorf("Expected order by date with undated last, got %s %s %s", rows[0].OrderNumber, rows[1].OrderNumber, rows[2].OrderNumber)
	}
	late := rows[1]
	if len(late.Items) != 1 || late.Items[0].OrderedQty != 4 {
		t.Errorf("Expected duplicate item lines merged, got %+v", late.Items)
	}
	if late.InvoicedQty != 4 {
		t.Errorf("Expected unordered invoice item ignored, got %v", late.InvoicedQty)
	}
	if rows[2].OrderDate != "Sin Fecha" || rows[2].LeadTimeDays != nil {
		t.Errorf("Expected undated order without lead time, got %+v", rows[2])
	}
}

func TestDrillDownProduct_RejectsEmptyItemCode(t *testing.T) {
	d := singleOrder()
	for _, code := range []string{"", "   "} {
		rows, err := DrillDownProduct(d.drillDownInput(code))
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Expected ErrInvalidArgument for %q, got %v", code, err)
		}
		if rows != nil {
			t.Errorf("Expected no rows on error, got %+v", rows)
		}
	}
}

func TestDrillDownProduct_OnlyFulfilledOrders(t *testing.T) {
	d := singleOrder()
	d.order("ord-2", "101", "Otro", march(2)).line("ord-2", "SKU-1", "Bulón 8mm", 3, 5)

	rows, err := DrillDownProduct(d.drillDownInput("Sku-1"))
	if err != nil {
		t.Fatalf("DrillDownProduct failed: %v", err)
	}
	if len(rows) != 1 || rows[0].OrderID != "ord-1" {
		t.Fatalf("Expected only the invoiced order, got %+v", rows)
	}
	if len(rows[0].InvoiceDates) != 1 || rows[0].InvoiceDates[0] != "06-03-2025" {
		t.Errorf("Expected invoice dates of the order, got %v", rows[0].InvoiceDates)
	}

	none, err := DrillDownProduct(d.drillDownInput("unknown"))
	if err != nil || len(none) != 0 {
		t.Errorf("Expected empty result for unknown item, got %+v (%v)", none, err)
	}
}

func TestRankOutliers(t *testing.T) {
	d := &dataset{}
	d.order("o1", "1", "Acme", march(1)).
		line("o1", "GOOD", "Bueno", 10, 1).
		line("o1", "BAD", "Malo", 10, 1).
		line("o1", "MID", "Medio", 10, 1).
		invoice("i1", "1", march(2), invLine("GOOD", 10, 1), invLine("BAD", 1, 1), invLine("MID", 5, 1))

	rows := RankOutliers(OutlierInput{OrderLines: d.lines, Invoices: d.invoices, Join: d.join(), Limit: 2})
	if len(rows) != 2 {
		t.Fatalf("Expected limit of 2 rows, got %d", len(rows))
	}
	if rows[0].ItemCode != "BAD" || rows[0].FillRate != 10 || rows[1].ItemCode != "MID" {
		t.Errorf("Expected worst first, got %+v", rows)
	}
}

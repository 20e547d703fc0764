package xlsx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/fulfillment/pkg/infrastructure/repositories/csv"
)

// Sheet names expected in a dataset workbook
const (
	OrdersSheet       = "orders"
	OrderLinesSheet   = "order_lines"
	InvoicesSheet     = "invoices"
	InvoiceLinesSheet = "invoice_lines"
	CategoriesSheet   = "categories"
	ProductsSheet     = "products"
)

// Loader reads a fulfillment dataset from an Excel workbook with one sheet
// per table, laid out with the same columns as the CSV files
type Loader struct{}

// NewLoader creates a new workbook loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadDataset reads every sheet of the workbook at path. The catalog sheets
// are optional.
func (l *Loader) LoadDataset(path string) (*csv.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	actualName := make(map[string]string)
	for _, name := range f.GetSheetList() {
		actualName[strings.ToLower(strings.TrimSpace(name))] = name
	}

	read := func(sheet string, required bool, dateColumn int, width int) ([][]string, error) {
		name, ok := actualName[sheet]
		if !ok {
			if required {
				return nil, fmt.Errorf("workbook %s has no %q sheet", path, sheet)
			}
			return nil, nil
		}
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		return normalizeRows(rows, width, dateColumn), nil
	}

	ordersRows, err := read(OrdersSheet, true, 2, len(csv.OrdersHeader))
	if err != nil {
		return nil, err
	}
	orders, err := csv.DecodeOrders(sheetSource(OrdersSheet), ordersRows)
	if err != nil {
		return nil, err
	}

	lineRows, err := read(OrderLinesSheet, true, -1, len(csv.OrderLinesHeader))
	if err != nil {
		return nil, err
	}
	lines, err := csv.DecodeOrderLines(sheetSource(OrderLinesSheet), lineRows)
	if err != nil {
		return nil, err
	}

	invoiceRows, err := read(InvoicesSheet, true, 2, len(csv.InvoicesHeader))
	if err != nil {
		return nil, err
	}
	invoiceLineRows, err := read(InvoiceLinesSheet, true, -1, len(csv.InvoiceLinesHeader))
	if err != nil {
		return nil, err
	}
	invoices, err := csv.DecodeInvoices(sheetSource(InvoicesSheet), invoiceRows, invoiceLineRows)
	if err != nil {
		return nil, err
	}

	categoryRows, err := read(CategoriesSheet, false, -1, len(csv.CategoriesHeader))
	if err != nil {
		return nil, err
	}
	categories, err := csv.DecodeCategories(sheetSource(CategoriesSheet), categoryRows)
	if err != nil {
		return nil, err
	}

	productRows, err := read(ProductsSheet, false, -1, len(csv.ProductsHeader))
	if err != nil {
		return nil, err
	}
	products, err := csv.DecodeProducts(sheetSource(ProductsSheet), productRows)
	if err != nil {
		return nil, err
	}

	return &csv.Dataset{
		Orders:     orders,
		OrderLines: lines,
		Invoices:   invoices,
		Categories: categories,
		Products:   products,
	}, nil
}

func sheetSource(sheet string) string {
	return fmt.Sprintf("sheet %q", sheet)
}

// normalizeRows drops blank rows, pads rows that lost trailing empty cells
// and turns Excel serial dates in dateColumn into ISO dates. The header row
// is left untouched apart from padding.
func normalizeRows(rows [][]string, width, dateColumn int) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isRowEmpty(row) {
			continue
		}
		for len(row) < width {
			row = append(row, "")
		}
		if len(out) > 0 && dateColumn >= 0 && dateColumn < len(row) {
			row[dateColumn] = serialToISO(row[dateColumn])
		}
		out = append(out, row)
	}
	return out
}

func serialToISO(cell string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return cell
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return cell
	}
	return t.UTC().Format(time.RFC3339)
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

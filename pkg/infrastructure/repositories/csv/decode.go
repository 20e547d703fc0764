package csv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/services/calc"
)

// Column layouts shared by every tabular source (CSV files, workbook sheets)
var (
	OrdersHeader       = []string{"id", "order_number", "order_date", "client"}
	OrderLinesHeader   = []string{"order_id", "item_code", "description", "quantity", "unit_price"}
	InvoicesHeader     = []string{"id", "order_number", "completed_at", "type", "voided"}
	InvoiceLinesHeader = []string{"invoice_id", "item_code", "description", "quantity", "unit_price"}
	CategoriesHeader   = []string{"id", "name"}
	ProductsHeader     = []string{"sku", "category_id"}
)

// checkTable validates the header and column count of every row. An empty
// table or a header without rows is valid.
func checkTable(source string, records [][]string, expectedHeader []string) ([][]string, error) {
	if len(records) == 0 {
		return nil, nil
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s header mismatch. Expected: %v, Got: %v", source, expectedHeader, records[0])
	}
	rows := records[1:]
	for i, record := range rows {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", source, i+2, len(expectedHeader), len(record))
		}
	}
	return rows, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

// DecodeOrders converts order records (header first) into orders. Order
// numbers are kept as delivered; records whose number is not numeric load
// fine and simply never match an invoice.
func DecodeOrders(source string, records [][]string) ([]*entities.Order, error) {
	rows, err := checkTable(source, records, OrdersHeader)
	if err != nil {
		return nil, err
	}

	orders := make([]*entities.Order, 0, len(rows))
	for i, record := range rows {
		id := strings.TrimSpace(record[0])
		if id == "" {
			return nil, fmt.Errorf("%s row %d: order id cannot be empty", source, i+2)
		}
		date, err := calc.ParseDate(record[2])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid order_date: %w", source, i+2, err)
		}
		orders = append(orders, &entities.Order{
			ID:     id,
			Number: strings.TrimSpace(record[1]),
			Date:   date,
			Client: strings.TrimSpace(record[3]),
		})
	}
	return orders, nil
}

// DecodeOrderLines converts order line records into order lines. Malformed
// quantities and prices become 0.
func DecodeOrderLines(source string, records [][]string) ([]*entities.OrderLine, error) {
	rows, err := checkTable(source, records, OrderLinesHeader)
	if err != nil {
		return nil, err
	}

	lines := make([]*entities.OrderLine, 0, len(rows))
	for i, record := range rows {
		orderID := strings.TrimSpace(record[0])
		if orderID == "" {
			return nil, fmt.Errorf("%s row %d: order_id cannot be empty", source, i+2)
		}
		lines = append(lines, &entities.OrderLine{
			OrderID:     orderID,
			ItemCode:    strings.TrimSpace(record[1]),
			Description: strings.TrimSpace(record[2]),
			Quantity:    calc.ToNumber(record[3]),
			UnitPrice:   calc.ToNumber(record[4]),
		})
	}
	return lines, nil
}

// DecodeInvoices converts invoice records and their line records into
// invoices with lines attached in record order
func DecodeInvoices(source string, records, lineRecords [][]string) ([]*entities.Invoice, error) {
	rows, err := checkTable(source, records, InvoicesHeader)
	if err != nil {
		return nil, err
	}

	invoices := make([]*entities.Invoice, 0, len(rows))
	byID := make(map[string]*entities.Invoice, len(rows))
	for i, record := range rows {
		id := strings.TrimSpace(record[0])
		if id == "" {
			return nil, fmt.Errorf("%s row %d: invoice id cannot be empty", source, i+2)
		}
		if _, exists := byID[id]; exists {
			return nil, fmt.Errorf("%s row %d: duplicate invoice %s", source, i+2, id)
		}
		completedAt, err := calc.ParseDate(record[2])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid completed_at: %w", source, i+2, err)
		}
		voided, err := parseVoided(record[4])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", source, i+2, err)
		}

		invoice := &entities.Invoice{
			ID:          id,
			OrderNumber: strings.TrimSpace(record[1]),
			CompletedAt: completedAt,
			Type:        entities.ParseInvoiceType(record[3]),
			Voided:      voided,
		}
		byID[id] = invoice
		invoices = append(invoices, invoice)
	}

	lineSource := source + " lines"
	lineRows, err := checkTable(lineSource, lineRecords, InvoiceLinesHeader)
	if err != nil {
		return nil, err
	}
	for i, record := range lineRows {
		invoiceID := strings.TrimSpace(record[0])
		invoice, ok := byID[invoiceID]
		if !ok {
			return nil, fmt.Errorf("%s row %d: unknown invoice %s", lineSource, i+2, invoiceID)
		}
		invoice.Lines = append(invoice.Lines, entities.InvoiceLine{
			ItemCode:    strings.TrimSpace(record[1]),
			Description: strings.TrimSpace(record[2]),
			Quantity:    calc.ToNumber(record[3]),
			UnitPrice:   calc.ToNumber(record[4]),
		})
	}

	return invoices, nil
}

// DecodeCategories converts category records into categories
func DecodeCategories(source string, records [][]string) ([]*entities.Category, error) {
	rows, err := checkTable(source, records, CategoriesHeader)
	if err != nil {
		return nil, err
	}

	categories := make([]*entities.Category, 0, len(rows))
	for i, record := range rows {
		id := strings.TrimSpace(record[0])
		if id == "" {
			return nil, fmt.Errorf("%s row %d: category id cannot be empty", source, i+2)
		}
		categories = append(categories, &entities.Category{ID: id, Name: strings.TrimSpace(record[1])})
	}
	return categories, nil
}

// DecodeProducts converts product records into the item to category mapping
func DecodeProducts(source string, records [][]string) ([]*entities.Product, error) {
	rows, err := checkTable(source, records, ProductsHeader)
	if err != nil {
		return nil, err
	}

	products := make([]*entities.Product, 0, len(rows))
	for _, record := range rows {
		products = append(products, &entities.Product{
			SKU:        strings.TrimSpace(record[0]),
			CategoryID: strings.TrimSpace(record[1]),
		})
	}
	return products, nil
}

func parseVoided(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "no", "n":
		return false, nil
	case "si", "sí", "s", "yes", "y":
		return true, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("invalid voided flag: %s", s)
	}
	return v, nil
}

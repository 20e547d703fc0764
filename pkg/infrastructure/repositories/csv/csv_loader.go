package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vsinha/fulfillment/pkg/domain/entities"
)

// Standard file names inside a dataset directory
const (
	OrdersFile       = "orders.csv"
	OrderLinesFile   = "order_lines.csv"
	InvoicesFile     = "invoices.csv"
	InvoiceLinesFile = "invoice_lines.csv"
	CategoriesFile   = "categories.csv"
	ProductsFile     = "products.csv"
)

// Loader handles loading fulfillment data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadOrders loads orders from a CSV file
func (l *Loader) LoadOrders(filename string) ([]*entities.Order, error) {
	records, err := readRecords(filename, "orders")
	if err != nil {
		return nil, err
	}
	return DecodeOrders("orders CSV", records)
}

// LoadOrderLines loads order lines from a CSV file
func (l *Loader) LoadOrderLines(filename string) ([]*entities.OrderLine, error) {
	records, err := readRecords(filename, "order lines")
	if err != nil {
		return nil, err
	}
	return DecodeOrderLines("order lines CSV", records)
}

// LoadInvoices loads invoices and attaches the lines from a second CSV file
func (l *Loader) LoadInvoices(invoicesFile, linesFile string) ([]*entities.Invoice, error) {
	records, err := readRecords(invoicesFile, "invoices")
	if err != nil {
		return nil, err
	}
	lineRecords, err := readRecords(linesFile, "invoice lines")
	if err != nil {
		return nil, err
	}
	return DecodeInvoices("invoices CSV", records, lineRecords)
}

// LoadCategories loads categories from a CSV file
func (l *Loader) LoadCategories(filename string) ([]*entities.Category, error) {
	records, err := readRecords(filename, "categories")
	if err != nil {
		return nil, err
	}
	return DecodeCategories("categories CSV", records)
}

// LoadProducts loads the product to category mapping from a CSV file
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	records, err := readRecords(filename, "products")
	if err != nil {
		return nil, err
	}
	return DecodeProducts("products CSV", records)
}

// LoadDataset loads every standard file from dir. The catalog files are
// optional; without them category views come out empty.
func (l *Loader) LoadDataset(dir string) (*Dataset, error) {
	orders, err := l.LoadOrders(filepath.Join(dir, OrdersFile))
	if err != nil {
		return nil, err
	}
	lines, err := l.LoadOrderLines(filepath.Join(dir, OrderLinesFile))
	if err != nil {
		return nil, err
	}
	invoices, err := l.LoadInvoices(filepath.Join(dir, InvoicesFile), filepath.Join(dir, InvoiceLinesFile))
	if err != nil {
		return nil, err
	}

	categories, err := l.LoadCategories(filepath.Join(dir, CategoriesFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	products, err := l.LoadProducts(filepath.Join(dir, ProductsFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Dataset{
		Orders:     orders,
		OrderLines: lines,
		Invoices:   invoices,
		Categories: categories,
		Products:   products,
	}, nil
}

func readRecords(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	return records, nil
}

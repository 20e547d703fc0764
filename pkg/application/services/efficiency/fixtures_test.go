package efficiency

import (
	"time"

	"github.com/vsinha/fulfillment/pkg/domain/entities"
)

func march(day int) time.Time {
	return time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC)
}

// dataset is a small in-memory world the views run over
type dataset struct {
	orders     []*entities.Order
	lines      []*entities.OrderLine
	invoices   []*entities.Invoice
	categories []*entities.Category
	products   []*entities.Product
}

func (d *dataset) order(id, number, client string, date time.Time) *dataset {
	d.orders = append(d.orders, &entities.Order{ID: id, Number: number, Date: date, Client: client})
	return d
}

func (d *dataset) line(orderID, item, description string, qty, price float64) *dataset {
	d.lines = append(d.lines, &entities.OrderLine{
		OrderID:     orderID,
		ItemCode:    item,
		Description: description,
		Quantity:    qty,
		UnitPrice:   price,
	})
	return d
}

func (d *dataset) invoice(id, orderNumber string, completed time.Time, lines ...entities.InvoiceLine) *dataset {
	d.invoices = append(d.invoices, &entities.Invoice{
		ID:          id,
		OrderNumber: orderNumber,
		CompletedAt: completed,
		Type:        entities.InvoiceTypeInvoice,
		Lines:       lines,
	})
	return d
}

func (d *dataset) category(id, name string, skus ...string) *dataset {
	d.categories = append(d.categories, &entities.Category{ID: id, Name: name})
	for _, sku := range skus {
		d.products = append(d.products, &entities.Product{SKU: sku, CategoryID: id})
	}
	return d
}

func invLine(item string, qty, price float64) entities.InvoiceLine {
	return entities.InvoiceLine{ItemCode: item, Quantity: qty, UnitPrice: price}
}

func describedLine(item, description string, qty, price float64) entities.InvoiceLine {
	line := invLine(item, qty, price)
	line.Description = description
	return line
}

func (d *dataset) join() *JoinIndex {
	return BuildJoinIndex(d.orders, d.invoices)
}

func (d *dataset) catalog() *CategoryMapping {
	return NewCategoryMapping(d.categories, d.products, AllowedCategories(d.categories, DefaultExcludedCategoryKeyword))
}

func (d *dataset) categoryInput() CategoryInput {
	return CategoryInput{OrderLines: d.lines, Invoices: d.invoices, Join: d.join(), Catalog: d.catalog()}
}

func (d *dataset) clientInput() ClientInput {
	return ClientInput{Orders: d.orders, LinesByOrder: IndexOrderLines(d.lines), Invoices: BuildInvoiceIndex(d.invoices)}
}

func (d *dataset) productInput(filter string) ProductInput {
	return ProductInput{OrderLines: d.lines, Invoices: d.invoices, Join: d.join(), Filter: filter}
}

func (d *dataset) monthlyInput() MonthlyInput {
	return MonthlyInput{Invoices: d.invoices, Join: d.join(), OrderedQty: OrderedQtyByOrder(d.lines)}
}

func (d *dataset) orderCategoryInput() OrderCategoryInput {
	return OrderCategoryInput{OrderLines: d.lines, Invoices: d.invoices, Join: d.join()}
}

func (d *dataset) drillDownInput(item string) ProductDrillDownInput {
	return ProductDrillDownInput{
		ItemCode:     item,
		Orders:       d.orders,
		LinesByOrder: IndexOrderLines(d.lines),
		Invoices:     BuildInvoiceIndex(d.invoices),
		Join:         d.join(),
	}
}

// singleOrder is one order of 10 units at 5 with 6 units invoiced five days later
func singleOrder() *dataset {
	d := &dataset{}
	return d.order("ord-1", "100", "Ferretería Norte", march(1)).
		line("ord-1", "sku-1", "Bulón 8mm", 10, 5).
		invoice("inv-1", "100.0", march(6), invLine(" SKU-1 ", 6, 5)).
		category("cat-1", "Bulones", "SKU-1")
}

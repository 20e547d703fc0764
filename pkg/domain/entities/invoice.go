package entities

import (
	"strings"
	"time"
)

// InvoiceType represents the kind of fiscal document
type InvoiceType string

const (
	InvoiceTypeInvoice      InvoiceType = "FACTURA"
	InvoiceTypeSaleReceipt  InvoiceType = "COMPROBANTE_VENTA"
	InvoiceTypeDebitNote    InvoiceType = "NOTA_DEBITO"
	InvoiceTypeSMEInvoice   InvoiceType = "FACTURA_FCE_MIPYMES"
	InvoiceTypeCreditNote   InvoiceType = "NOTA_CREDITO"
	InvoiceTypeUnclassified InvoiceType = ""
)

// DefaultValidInvoiceTypes are the document types that count as fulfillment
var DefaultValidInvoiceTypes = []InvoiceType{
	InvoiceTypeInvoice,
	InvoiceTypeSaleReceipt,
	InvoiceTypeDebitNote,
	InvoiceTypeSMEInvoice,
}

// ParseInvoiceType normalizes a raw document type
func ParseInvoiceType(raw string) InvoiceType {
	return InvoiceType(strings.ToUpper(strings.TrimSpace(raw)))
}

// Invoice is a document issued against exactly one order, identified by
// the order's external number rather than its internal id
type Invoice struct {
	ID          string
	OrderNumber string // external order number as delivered by the source system
	CompletedAt time.Time
	Type        InvoiceType
	Voided      bool
	Lines       []InvoiceLine
}

// HasCompletionDate reports whether the invoice carries a completion date
func (i *Invoice) HasCompletionDate() bool {
	return !i.CompletedAt.IsZero()
}

// InvoicedQuantity sums the quantity over all invoice lines
func (i *Invoice) InvoicedQuantity() float64 {
	total := 0.0
	for idx := range i.Lines {
		total += i.Lines[idx].Quantity
	}
	return total
}

// InvoiceLine represents one product line within an invoice
type InvoiceLine struct {
	ItemCode    string
	Description string
	Quantity    float64
	UnitPrice   float64
}

// Value is the invoiced value of the line, recomputed like OrderLine.Value
func (l *InvoiceLine) Value() float64 {
	return l.Quantity * l.UnitPrice
}

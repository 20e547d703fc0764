package entities

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// OrderNumber is the canonical numeric form of an external order number
type OrderNumber int64

// String renders the order number without formatting
func (n OrderNumber) String() string {
	return strconv.FormatInt(int64(n), 10)
}

// ParseOrderNumber coerces a raw external order number ("123", " 00123 ", "123.0", "1.23e2")
// into its canonical numeric form. Empty, non-numeric and fractional values are rejected.
func ParseOrderNumber(raw string) (OrderNumber, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("order number cannot be empty")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return OrderNumber(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("order number %q is not numeric", raw)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("order number %q is not an integer", raw)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("order number %q is out of range", raw)
	}
	return OrderNumber(f), nil
}

// Order represents a client purchase order placed before fulfillment
type Order struct {
	ID     string
	Number string // external order number as delivered by the source system
	Date   time.Time
	Client string
}

// HasDate reports whether the order carries an order date
func (o *Order) HasDate() bool {
	return !o.Date.IsZero()
}

// OrderLine represents one product line within an order
type OrderLine struct {
	OrderID     string
	ItemCode    string
	Description string
	Quantity    float64
	UnitPrice   float64
}

// Value is the ordered value of the line, always recomputed from quantity and price
func (l *OrderLine) Value() float64 {
	return l.Quantity * l.UnitPrice
}

// NewOrder creates a validated Order
func NewOrder(id, number string, date time.Time, client string) (*Order, error) {
	if id == "" {
		return nil, fmt.Errorf("order id cannot be empty")
	}
	if _, err := ParseOrderNumber(number); err != nil {
		return nil, err
	}
	return &Order{
		ID:     id,
		Number: strings.TrimSpace(number),
		Date:   date,
		Client: client,
	}, nil
}

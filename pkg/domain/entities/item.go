package entities

import "strings"

// ItemCode represents a normalized product identifier (trimmed, upper-cased)
type ItemCode string

// NormalizeItemCode returns the canonical form of a raw item code
func NormalizeItemCode(raw string) ItemCode {
	return ItemCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// Category represents a product category from the catalog
type Category struct {
	ID   string
	Name string
}

// Product maps a catalog item code to its category
type Product struct {
	SKU        string
	CategoryID string
}

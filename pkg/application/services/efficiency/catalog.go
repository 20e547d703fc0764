package efficiency

import (
	"strings"

	"github.com/vsinha/fulfillment/pkg/domain/entities"
)

// DefaultExcludedCategoryKeyword marks categories that are internal to
// production and never reported on
const DefaultExcludedCategoryKeyword = "producción"

// UnknownCategoryName labels a valid category id with no display name
const UnknownCategoryName = "Sin categoría"

// AllowedCategories returns the ids of categories whose lower-cased name does
// not contain excludedKeyword. An empty keyword allows every category.
func AllowedCategories(categories []*entities.Category, excludedKeyword string) map[string]struct{} {
	keyword := strings.ToLower(strings.TrimSpace(excludedKeyword))
	allowed := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		if keyword != "" && strings.Contains(strings.ToLower(category.Name), keyword) {
			continue
		}
		allowed[category.ID] = struct{}{}
	}
	return allowed
}

// CategoryMapping resolves item codes to reportable categories
type CategoryMapping struct {
	Allowed map[string]struct{}
	Names   map[string]string
	ByItem  map[entities.ItemCode]string
}

// NewCategoryMapping builds the lookup from the catalog. The allowed set is
// passed in explicitly so callers decide which categories are reportable.
func NewCategoryMapping(
	categories []*entities.Category,
	products []*entities.Product,
	allowed map[string]struct{},
) *CategoryMapping {
	m := &CategoryMapping{
		Allowed: allowed,
		Names:   make(map[string]string, len(categories)),
		ByItem:  make(map[entities.ItemCode]string, len(products)),
	}
	for _, category := range categories {
		m.Names[category.ID] = category.Name
	}
	for _, product := range products {
		m.ByItem[entities.NormalizeItemCode(product.SKU)] = product.CategoryID
	}
	return m
}

// Resolve returns the allowed category of a raw item code
func (m *CategoryMapping) Resolve(rawItemCode string) (string, bool) {
	categoryID, ok := m.ByItem[entities.NormalizeItemCode(rawItemCode)]
	if !ok || categoryID == "" {
		return "", false
	}
	if _, allowed := m.Allowed[categoryID]; !allowed {
		return "", false
	}
	return categoryID, true
}

// Name returns the display name of a category id
func (m *CategoryMapping) Name(categoryID string) string {
	if name, ok := m.Names[categoryID]; ok && name != "" {
		return name
	}
	return UnknownCategoryName
}

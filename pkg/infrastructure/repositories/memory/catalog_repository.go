package memory

import (
	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/repositories"
)

// CatalogRepository provides in-memory category and product storage
type CatalogRepository struct {
	categories []entities.Category
	products   []entities.Product
}

// NewCatalogRepository creates a new in-memory catalog repository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// LoadCategories loads categories into the repository
func (r *CatalogRepository) LoadCategories(categories []*entities.Category) error {
	for _, c := range categories {
		r.categories = append(r.categories, *c)
	}
	return nil
}

// LoadProducts loads product to category mappings into the repository
func (r *CatalogRepository) LoadProducts(products []*entities.Product) error {
	for _, p := range products {
		r.products = append(r.products, *p)
	}
	return nil
}

// GetCategories returns all categories
func (r *CatalogRepository) GetCategories() ([]*entities.Category, error) {
	categories := make([]*entities.Category, 0, len(r.categories))
	for i := range r.categories {
		categories = append(categories, &r.categories[i])
	}
	return categories, nil
}

// GetProducts returns all product mappings
func (r *CatalogRepository) GetProducts() ([]*entities.Product, error) {
	products := make([]*entities.Product, 0, len(r.products))
	for i := range r.products {
		products = append(products, &r.products[i])
	}
	return products, nil
}

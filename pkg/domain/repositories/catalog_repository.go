package repositories

import "github.com/vsinha/fulfillment/pkg/domain/entities"

// CatalogRepository provides the item code to category mapping
type CatalogRepository interface {
	GetCategories() ([]*entities.Category, error)
	GetProducts() ([]*entities.Product, error)
	LoadCategories(categories []*entities.Category) error
	LoadProducts(products []*entities.Product) error
}

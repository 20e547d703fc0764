package repositories

import "github.com/vsinha/fulfillment/pkg/domain/entities"

// OrderRepository provides access to orders and their lines
type OrderRepository interface {
	GetOrder(id string) (*entities.Order, error)
	GetAllOrders() ([]*entities.Order, error)
	GetOrderLines(orderID string) ([]*entities.OrderLine, error)
	GetAllOrderLines() ([]*entities.OrderLine, error)
	LoadOrders(orders []*entities.Order) error
	LoadOrderLines(lines []*entities.OrderLine) error
}

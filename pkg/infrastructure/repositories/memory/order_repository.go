package memory

import (
	"fmt"

	"github.com/vsinha/fulfillment/pkg/domain/entities"
	"github.com/vsinha/fulfillment/pkg/domain/repositories"
)

// OrderRepository provides in-memory order and order line storage
type OrderRepository struct {
	orders       []entities.Order
	ordersMap    map[string]int
	lines        []entities.OrderLine
	linesByOrder map[string][]int
}

// NewOrderRepository creates a new in-memory order repository
func NewOrderRepository(expectedOrders int) *OrderRepository {
	return &OrderRepository{
		orders:       make([]entities.Order, 0, expectedOrders),
		ordersMap:    make(map[string]int, expectedOrders),
		lines:        make([]entities.OrderLine, 0, expectedOrders*4),
		linesByOrder: make(map[string][]int, expectedOrders),
	}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// LoadOrders loads orders into the repository
func (r *OrderRepository) LoadOrders(orders []*entities.Order) error {
	for _, order := range orders {
		if err := r.SaveOrder(order); err != nil {
			return err
		}
	}
	return nil
}

// SaveOrder adds an order; internal ids must be unique
func (r *OrderRepository) SaveOrder(order *entities.Order) error {
	if order.ID == "" {
		return fmt.Errorf("order id cannot be empty")
	}
	if _, exists := r.ordersMap[order.ID]; exists {
		return fmt.Errorf("order %s already exists", order.ID)
	}
	r.ordersMap[order.ID] = len(r.orders)
	r.orders = append(r.orders, *order)
	return nil
}

// LoadOrderLines loads order lines into the repository
func (r *OrderRepository) LoadOrderLines(lines []*entities.OrderLine) error {
	for _, line := range lines {
		r.AddOrderLine(*line)
	}
	return nil
}

// AddOrderLine adds an order line. Lines may arrive before their order.
func (r *OrderRepository) AddOrderLine(line entities.OrderLine) {
	r.linesByOrder[line.OrderID] = append(r.linesByOrder[line.OrderID], len(r.lines))
	r.lines = append(r.lines, line)
}

// GetOrder returns the order with the given internal id
func (r *OrderRepository) GetOrder(id string) (*entities.Order, error) {
	index, exists := r.ordersMap[id]
	if !exists {
		return nil, fmt.Errorf("order not found: %s", id)
	}
	return &r.orders[index], nil
}

// GetAllOrders returns all orders in load order
func (r *OrderRepository) GetAllOrders() ([]*entities.Order, error) {
	orders := make([]*entities.Order, 0, len(r.orders))
	for i := range r.orders {
		orders = append(orders, &r.orders[i])
	}
	return orders, nil
}

// GetOrderLines returns the lines of one order in load order
func (r *OrderRepository) GetOrderLines(orderID string) ([]*entities.OrderLine, error) {
	indexes := r.linesByOrder[orderID]
	lines := make([]*entities.OrderLine, 0, len(indexes))
	for _, idx := range indexes {
		lines = append(lines, &r.lines[idx])
	}
	return lines, nil
}

// GetAllOrderLines returns every order line in load order
func (r *OrderRepository) GetAllOrderLines() ([]*entities.OrderLine, error) {
	lines := make([]*entities.OrderLine, 0, len(r.lines))
	for i := range r.lines {
		lines = append(lines, &r.lines[i])
	}
	return lines, nil
}

package memory

import (
	"sync"

	"microMart/business/orders"
	"microMart/domain"
)

// OrdersRepository keeps orders in a process-lifetime map. Nothing is evicted
// and nothing survives a restart. The map is lock-guarded so concurrent
// checkouts are safe regardless of how order ids are generated.
type OrdersRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewOrdersRepository() *OrdersRepository {
	return &OrdersRepository{
		orders: make(map[string]domain.Order),
	}
}

func (r *OrdersRepository) Insert(order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.OrderID]; exists {
		return orders.ErrOrderExists
	}
	r.orders[order.OrderID] = order

	return nil
}

func (r *OrdersRepository) Find(orderID string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return domain.Order{}, orders.ErrOrderNotFound
	}

	return order, nil
}

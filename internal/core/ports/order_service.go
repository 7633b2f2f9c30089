package ports

import (
	"context"

	"github.com/clickshop/shop-system/internal/core/domain"
)

// OrderService defines the employee-facing order processing use cases.
type OrderService interface {
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	// UpdateStatus moves an order to the given status. Any status may follow
	// any other; only membership in the known set is validated.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

package ports

import (
	"context"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// All lookups are tenant-scoped.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identifier within the tenant.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error)

	// GetByIDs retrieves the orders with the given identifiers within the
	// tenant. A missing identifier is a not-found error.
	GetByIDs(ctx context.Context, tenantID kernel.UUID, ids []kernel.UUID) ([]*order.Order, error)
}

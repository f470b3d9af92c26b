// Package ports defines repository and provider interfaces for the delivery
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
// All lookups are tenant-scoped.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate with its cascaded order updates
	// and approval records. A driver with another active delivery makes the
	// insert fail with a conflict error, detected at persistence time.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate, including
	// cascaded order updates and newly appended approval records.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its identifier within the
	// tenant, with member orders and pending approval records loaded.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*delivery.Delivery, error)

	// GetActiveByDriver retrieves the driver's delivery in an active status,
	// or a not-found error when the driver is free.
	GetActiveByDriver(ctx context.Context, tenantID, driverID kernel.UUID) (*delivery.Delivery, error)

	// Delete removes a delivery and its approval records. Member orders must
	// already be detached by the caller.
	Delete(ctx context.Context, tenantID, id kernel.UUID) error
}

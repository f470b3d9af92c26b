// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/guard"
)

var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery retrieves the tenant's routes that are awaiting
// approval or under execution.
type GetActiveDeliveriesQuery struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates a query for the tenant's active routes.
func NewGetActiveDeliveriesQuery(tenantID kernel.UUID) (GetActiveDeliveriesQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetActiveDeliveriesQuery{}, errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}

	return GetActiveDeliveriesQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// TenantID returns the tenant whose routes are being listed.
func (q GetActiveDeliveriesQuery) TenantID() kernel.UUID { return q.tenantID }

// GetActiveDeliveriesQueryResponse is the read model of one active route.
type GetActiveDeliveriesQueryResponse struct {
	ID            kernel.UUID
	DriverID      kernel.UUID
	VehicleID     kernel.UUID
	Status        string
	TotalWeightKg float64
	TotalValue    kernel.Money
	FreightValue  kernel.Money
	OrderCount    int
	CreatedAt     time.Time
}

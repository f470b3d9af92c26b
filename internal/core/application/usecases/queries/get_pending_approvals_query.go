package queries

import (
	"errors"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/guard"
)

var ErrGetPendingApprovalsQueryIsNotConstructed = errors.New(
	"GetPendingApprovalsQuery must be created via NewGetPendingApprovalsQuery constructor",
)

// GetPendingApprovalsQuery retrieves the tenant's routes that are waiting
// for an approval decision, together with the reason they were held.
type GetPendingApprovalsQuery struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPendingApprovalsQuery creates a query for routes held behind approval.
func NewGetPendingApprovalsQuery(tenantID kernel.UUID) (GetPendingApprovalsQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetPendingApprovalsQuery{}, errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}

	return GetPendingApprovalsQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingApprovalsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingApprovalsQueryIsNotConstructed)
}

// TenantID returns the tenant whose held routes are being listed.
func (q GetPendingApprovalsQuery) TenantID() kernel.UUID { return q.tenantID }

// GetPendingApprovalsQueryResponse is the read model of one route waiting
// for approval. HoldReason carries the reason recorded when the route was
// pushed back behind approval, nil for routes that were created held.
type GetPendingApprovalsQueryResponse struct {
	DeliveryID   kernel.UUID
	DriverID     kernel.UUID
	TotalValue   kernel.Money
	FreightValue kernel.Money
	HoldReason   *string
	CreatedAt    time.Time
}

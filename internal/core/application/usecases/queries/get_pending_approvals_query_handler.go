package queries

import (
	"context"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingApprovalsQueryHandler retrieves routes held behind approval.
// Joins the latest recorded approval entry so operators see why a route
// that was already running came back to the queue.
type GetPendingApprovalsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingApprovalsQueryHandler creates a handler for approval queue queries.
// Requires a GORM database connection for query execution.
func NewGetPendingApprovalsQueryHandler(db *gorm.DB) GetPendingApprovalsQueryHandler {
	return GetPendingApprovalsQueryHandler{db: db}
}

// Handle executes the query to retrieve the tenant's approval queue.
// Returns routes in A_LIBERAR status, oldest first so the longest-waiting
// route surfaces at the top.
func (h GetPendingApprovalsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingApprovalsQuery,
) ([]GetPendingApprovalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]GetPendingApprovalsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.driver_id,
			d.total_value,
			d.freight_value,
			(
				SELECT a.reason
				FROM approvals a
				WHERE a.delivery_id = d.id AND a.action = ?
				ORDER BY a.created_at DESC
				LIMIT 1
			),
			d.created_at
		FROM deliveries d
		WHERE d.tenant_id = ? AND d.status = ?
		ORDER BY d.created_at ASC
	`, delivery.ReApprovalNeeded, query.TenantID().Bytes(), delivery.ALiberar).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingApprovalsQueryResponse
		var deliveryID, driverID uuid.UUID
		var totalValue, freightValue int64

		err = rows.Scan(
			&deliveryID,
			&driverID,
			&totalValue,
			&freightValue,
			&resp.HoldReason,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.DeliveryID, err = kernel.UUIDFromBytes(deliveryID[:]); err != nil {
			return nil, err
		}
		if resp.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
			return nil, err
		}
		if resp.TotalValue, err = kernel.NewMoney(totalValue); err != nil {
			return nil, err
		}
		if resp.FreightValue, err = kernel.NewMoney(freightValue); err != nil {
			return nil, err
		}
		pending = append(pending, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}

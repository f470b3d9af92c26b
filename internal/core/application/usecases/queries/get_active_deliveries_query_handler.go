package queries

import (
	"context"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler retrieves routes that still demand
// attention, either awaiting approval or under execution. Uses direct SQL
// queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetActiveDeliveriesQueryHandler(db)
//	query, _ := NewGetActiveDeliveriesQuery(tenantID)
//
//	routes, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get active routes: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Found %d active routes\n", len(routes))
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for active route queries.
// Requires a GORM database connection for query execution.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve the tenant's active routes.
// Returns read models for routes in A_LIBERAR or INICIADO status, newest
// first, with the member order count aggregated per route.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.driver_id,
			d.vehicle_id,
			d.status,
			d.total_weight_kg,
			d.total_value,
			d.freight_value,
			COUNT(o.id),
			d.created_at
		FROM deliveries d
		LEFT JOIN orders o ON o.delivery_id = d.id
		WHERE d.tenant_id = ? AND d.status IN (?, ?)
		GROUP BY d.id
		ORDER BY d.created_at DESC
	`, query.TenantID().Bytes(), delivery.ALiberar, delivery.Iniciado).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveDeliveriesQueryResponse
		var id, driverID, vehicleID uuid.UUID
		var status delivery.Status
		var totalValue, freightValue int64

		err = rows.Scan(
			&id,
			&driverID,
			&vehicleID,
			&status,
			&resp.TotalWeightKg,
			&totalValue,
			&freightValue,
			&resp.OrderCount,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
			return nil, err
		}
		if resp.VehicleID, err = kernel.UUIDFromBytes(vehicleID[:]); err != nil {
			return nil, err
		}
		if resp.TotalValue, err = kernel.NewMoney(totalValue); err != nil {
			return nil, err
		}
		if resp.FreightValue, err = kernel.NewMoney(freightValue); err != nil {
			return nil, err
		}
		resp.Status = status.String()
		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}

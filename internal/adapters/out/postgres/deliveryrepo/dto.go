// Package deliveryrepo provides data transfer objects and mapping functions for
// delivery route persistence. The route header and its member orders live in
// separate tables; the aggregate is reassembled on load.
package deliveryrepo

import (
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/adapters/out/postgres/orderrepo"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting route headers.
// A partial unique index on driver_id over non-terminal statuses enforces the
// one-active-route-per-driver rule at the database level.
type DeliveryDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID `gorm:"type:uuid;index"`
	DriverID      uuid.UUID `gorm:"type:uuid"`
	VehicleID     uuid.UUID `gorm:"type:uuid"`
	Status        int
	TotalWeightKg float64
	TotalValue    int64
	FreightValue  int64
	CreatedAt     time.Time
	ReleasedAt    *time.Time
	EndedAt       *time.Time
}

// TableName specifies the database table name for route headers.
// Overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery aggregate's header to its database representation.
// Member orders are persisted separately through the order repository.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:            aggregate.ID().Bytes(),
		TenantID:      aggregate.TenantID().Bytes(),
		DriverID:      aggregate.DriverID().Bytes(),
		VehicleID:     aggregate.VehicleID().Bytes(),
		Status:        int(aggregate.Status()),
		TotalWeightKg: aggregate.TotalWeightKg(),
		TotalValue:    aggregate.TotalValue().Cents(),
		FreightValue:  aggregate.FreightValue().Cents(),
		CreatedAt:     aggregate.CreatedAt(),
		ReleasedAt:    aggregate.ReleasedAt(),
		EndedAt:       aggregate.EndedAt(),
	}
}

// toDomain reassembles a delivery aggregate from its header row and the member
// order rows loaded alongside it.
func toDomain(dto DeliveryDTO, orderDTOs []orderrepo.OrderDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}

	totalValue, err := kernel.NewMoney(dto.TotalValue)
	if err != nil {
		return nil, err
	}

	freightValue, err := kernel.NewMoney(dto.FreightValue)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(orderDTOs))
	for _, orderDTO := range orderDTOs {
		o, orderErr := orderrepo.ToDomain(orderDTO)
		if orderErr != nil {
			return nil, orderErr
		}
		orders = append(orders, o)
	}

	return delivery.RestoreDelivery(
		id,
		tenantID,
		driverID,
		vehicleID,
		delivery.Status(dto.Status),
		dto.TotalWeightKg,
		totalValue,
		freightValue,
		dto.CreatedAt,
		dto.ReleasedAt,
		dto.EndedAt,
		orders,
	)
}

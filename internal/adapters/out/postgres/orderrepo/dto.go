// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by tenant and by route membership for the hot lookup paths.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID  `gorm:"type:uuid;index"`
	DeliveryID    *uuid.UUID `gorm:"type:uuid;index"`
	WeightKg      float64
	Value         int64
	Address       string
	PostalCode    string
	Status        int
	SortPosition  *int
	StartedAt     *time.Time
	CompletedAt   *time.Time
	FailureReason *string
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// FromDomain converts an order aggregate to its database representation.
func FromDomain(aggregate *order.Order) OrderDTO {
	var deliveryID *uuid.UUID
	if id := aggregate.DeliveryID(); id != nil {
		raw := id.Bytes()
		deliveryID = &raw
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		TenantID:      aggregate.TenantID().Bytes(),
		DeliveryID:    deliveryID,
		WeightKg:      aggregate.WeightKg(),
		Value:         aggregate.Value().Cents(),
		Address:       aggregate.Address(),
		PostalCode:    aggregate.PostalCode(),
		Status:        int(aggregate.Status()),
		SortPosition:  aggregate.SortPosition(),
		StartedAt:     aggregate.StartedAt(),
		CompletedAt:   aggregate.CompletedAt(),
		FailureReason: aggregate.FailureReason(),
	}
}

// ToDomain converts a database DTO to an order aggregate.
// Reconstructs the complete aggregate including status and route membership
// using RestoreOrder.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	var deliveryID *kernel.UUID
	if dto.DeliveryID != nil {
		dID, deliveryErr := kernel.UUIDFromBytes((*dto.DeliveryID)[:])
		if deliveryErr != nil {
			return nil, deliveryErr
		}

		deliveryID = &dID
	}

	value, err := kernel.NewMoney(dto.Value)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		tenantID,
		dto.WeightKg,
		value,
		dto.Address,
		dto.PostalCode,
		order.Status(dto.Status),
		deliveryID,
		dto.SortPosition,
		dto.StartedAt,
		dto.CompletedAt,
		dto.FailureReason,
	)
}

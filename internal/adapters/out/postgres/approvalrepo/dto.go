// Package approvalrepo persists the append-only approval trail of delivery routes.
package approvalrepo

import (
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"

	"github.com/google/uuid"
)

// ApprovalDTO represents the database structure for approval trail entries.
// Rows are insert-only; decisions are never edited or removed.
type ApprovalDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index"`
	TenantID   uuid.UUID `gorm:"type:uuid;index"`
	ActorID    uuid.UUID `gorm:"type:uuid"`
	Action     int
	Reason     *string
	CreatedAt  time.Time
}

// TableName specifies the database table name for approval entries.
// Overrides GORM's default naming convention to use "approvals".
func (ApprovalDTO) TableName() string {
	return "approvals"
}

// fromDomain converts an approval record to its database representation.
func fromDomain(record delivery.Approval) ApprovalDTO {
	return ApprovalDTO{
		ID:         record.ID().Bytes(),
		DeliveryID: record.DeliveryID().Bytes(),
		TenantID:   record.TenantID().Bytes(),
		ActorID:    record.ActorID().Bytes(),
		Action:     int(record.Action()),
		Reason:     record.Reason(),
		CreatedAt:  record.CreatedAt(),
	}
}

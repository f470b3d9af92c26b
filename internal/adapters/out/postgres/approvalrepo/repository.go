package approvalrepo

import (
	"context"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// GormApprovalRepository implements ApprovalRepository using GORM.
type GormApprovalRepository struct {
	db *gorm.DB
}

// NewGormApprovalRepository creates a new GORM approval repository.
func NewGormApprovalRepository(db *gorm.DB) *GormApprovalRepository {
	return &GormApprovalRepository{db: db}
}

// Add appends an approval decision to the route's trail.
func (r *GormApprovalRepository) Add(ctx context.Context, record delivery.Approval) error {
	if err := record.Action().Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

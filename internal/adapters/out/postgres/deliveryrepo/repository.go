package deliveryrepo

import (
	"context"
	"errors"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/adapters/out/postgres/orderrepo"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new route header to the database. A unique index violation on
// the driver's active route surfaces as a conflict error so callers can map
// it without inspecting driver state first.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return asConflict(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing route header to the database.
// Writes every column so that cleared optional fields persist as NULL.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return asConflict(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a route with its member orders within the tenant's scope.
func (r *GormDeliveryRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*delivery.Delivery, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetActiveByDriver retrieves the driver's non-terminal route, if any.
func (r *GormDeliveryRepository) GetActiveByDriver(
	ctx context.Context,
	tenantID, driverID kernel.UUID,
) (*delivery.Delivery, error) {
	if err := errors.Join(tenantID.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "driver_id = ? AND tenant_id = ? AND status IN ?",
			driverID.Bytes(), tenantID.Bytes(),
			[]int{int(delivery.ALiberar), int(delivery.Iniciado)}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", driverID.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// Delete removes a route header within the tenant's scope.
// Member orders must already be detached by the caller.
func (r *GormDeliveryRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).
		Delete(&DeliveryDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", id.String())
	}

	return nil
}

func (r *GormDeliveryRepository) load(ctx context.Context, dto DeliveryDTO) (*delivery.Delivery, error) {
	var orderDTOs []orderrepo.OrderDTO
	err := r.db.WithContext(ctx).
		Order("sort_position").
		Find(&orderDTOs, "delivery_id = ?", dto.ID).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, orderDTOs)
}

// asConflict maps a postgres unique violation to a domain conflict error.
func asConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return errs.NewConflictErrorWithCause("driver already has an active route", err)
	}
	return err
}

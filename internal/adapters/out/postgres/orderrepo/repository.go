package orderrepo

import (
	"context"
	"errors"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := FromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
// Writes every column so that cleared optional fields, such as the route
// membership of a detached order, are persisted as NULL.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := FromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID within the tenant's scope.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// GetByIDs retrieves the orders for the given IDs within the tenant's scope.
// Every requested ID must resolve; a missing order fails the whole lookup.
func (r *GormOrderRepository) GetByIDs(
	ctx context.Context,
	tenantID kernel.UUID,
	ids []kernel.UUID,
) ([]*order.Order, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, errs.NewValueIsRequiredError("orderIds")
	}

	rawIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		rawIDs = append(rawIDs, id.Bytes())
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "id IN ? AND tenant_id = ?", rawIDs, tenantID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]OrderDTO, len(dtos))
	for _, dto := range dtos {
		found[dto.ID] = dto
	}

	orders := make([]*order.Order, 0, len(ids))
	for i, id := range ids {
		dto, ok := found[rawIDs[i]]
		if !ok {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}

		o, domainErr := ToDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

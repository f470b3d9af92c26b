package tenantrepo

import (
	"context"
	"errors"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/tenant"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTenantRulesProvider implements TenantRulesProvider using GORM.
// Reads run outside the command's unit of work; policy and reference data
// are not modified by route commands.
type GormTenantRulesProvider struct {
	db *gorm.DB
}

// NewGormTenantRulesProvider creates a new GORM tenant rules provider.
func NewGormTenantRulesProvider(db *gorm.DB) *GormTenantRulesProvider {
	return &GormTenantRulesProvider{db: db}
}

// GetRouteRules retrieves the tenant's route policy.
func (p *GormTenantRulesProvider) GetRouteRules(
	ctx context.Context,
	tenantID kernel.UUID,
) (tenant.RouteRules, error) {
	if err := tenantID.Validate(); err != nil {
		return tenant.RouteRules{}, err
	}

	var dto TenantSettingsDTO
	err := p.db.WithContext(ctx).First(&dto, "tenant_id = ?", tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tenant.RouteRules{}, errs.NewObjectNotFoundError("tenant", tenantID.String())
		}
		return tenant.RouteRules{}, err
	}

	return toRouteRules(dto)
}

// GetVehicleInfo retrieves the vehicle attributes used for freight pricing.
func (p *GormTenantRulesProvider) GetVehicleInfo(
	ctx context.Context,
	tenantID, vehicleID kernel.UUID,
) (tenant.VehicleInfo, error) {
	if err := errors.Join(tenantID.Validate(), vehicleID.Validate()); err != nil {
		return tenant.VehicleInfo{}, err
	}

	var dto VehicleDTO
	err := p.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", vehicleID.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tenant.VehicleInfo{}, errs.NewObjectNotFoundError("vehicle", vehicleID.String())
		}
		return tenant.VehicleInfo{}, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return tenant.VehicleInfo{}, err
	}

	baseRate, err := kernel.NewMoney(dto.CategoryBaseRate)
	if err != nil {
		return tenant.VehicleInfo{}, err
	}

	return tenant.VehicleInfo{ID: id, CategoryBaseRate: baseRate}, nil
}

// DriverExists reports whether the driver belongs to the tenant.
func (p *GormTenantRulesProvider) DriverExists(
	ctx context.Context,
	tenantID, driverID kernel.UUID,
) (bool, error) {
	if err := errors.Join(tenantID.Validate(), driverID.Validate()); err != nil {
		return false, err
	}

	var count int64
	err := p.db.WithContext(ctx).
		Model(&DriverDTO{}).
		Where("id = ? AND tenant_id = ?", driverID.Bytes(), tenantID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Package tenantrepo reads tenant route policy, driver and vehicle reference
// data from the platform database. It backs the TenantRulesProvider port.
package tenantrepo

import (
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/tenant"

	"github.com/google/uuid"
)

// TenantSettingsDTO holds a tenant's route policy row. Nullable threshold
// columns mean the corresponding rule is not enforced for that tenant.
type TenantSettingsDTO struct {
	TenantID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FreightStrategy   string
	PricePerKm        *int64
	DepotAddress      string
	MaxFreightPercent *float64
	MinValue          *int64
	MinWeightKg       *float64
	MinOrders         *int
	ZoneRates         []ZoneRateDTO `gorm:"serializer:json;type:jsonb"`
}

// TableName specifies the database table name for tenant settings.
func (TenantSettingsDTO) TableName() string {
	return "tenant_settings"
}

// ZoneRateDTO is one postal-code range entry in the tenant's zone table.
type ZoneRateDTO struct {
	FromPostalCode string `json:"from_postal_code"`
	ToPostalCode   string `json:"to_postal_code"`
	RateCents      int64  `json:"rate_cents"`
}

// DriverDTO holds a tenant's driver row. Only existence matters to the engine.
type DriverDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;index"`
	Name     string
}

// TableName specifies the database table name for drivers.
func (DriverDTO) TableName() string {
	return "drivers"
}

// VehicleDTO holds a tenant's vehicle row with its freight category rate.
type VehicleDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID         uuid.UUID `gorm:"type:uuid;index"`
	CategoryBaseRate int64
}

// TableName specifies the database table name for vehicles.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// toRouteRules converts a settings row to the tenant's route policy.
func toRouteRules(dto TenantSettingsDTO) (tenant.RouteRules, error) {
	strategy, err := tenant.FreightStrategyFromString(dto.FreightStrategy)
	if err != nil {
		return tenant.RouteRules{}, err
	}

	var pricePerKm *kernel.Money
	if dto.PricePerKm != nil {
		price, priceErr := kernel.NewMoney(*dto.PricePerKm)
		if priceErr != nil {
			return tenant.RouteRules{}, priceErr
		}
		pricePerKm = &price
	}

	var minValue *kernel.Money
	if dto.MinValue != nil {
		value, valueErr := kernel.NewMoney(*dto.MinValue)
		if valueErr != nil {
			return tenant.RouteRules{}, valueErr
		}
		minValue = &value
	}

	zoneRates := make([]tenant.ZoneRate, 0, len(dto.ZoneRates))
	for _, zone := range dto.ZoneRates {
		rate, rateErr := kernel.NewMoney(zone.RateCents)
		if rateErr != nil {
			return tenant.RouteRules{}, rateErr
		}
		zoneRates = append(zoneRates, tenant.ZoneRate{
			FromPostalCode: zone.FromPostalCode,
			ToPostalCode:   zone.ToPostalCode,
			Rate:           rate,
		})
	}

	return tenant.RouteRules{
		MaxFreightPercent: dto.MaxFreightPercent,
		MinValue:          minValue,
		MinWeightKg:       dto.MinWeightKg,
		MinOrders:         dto.MinOrders,
		Freight: tenant.FreightConfig{
			Strategy:     strategy,
			PricePerKm:   pricePerKm,
			DepotAddress: dto.DepotAddress,
			ZoneRates:    zoneRates,
		},
	}, nil
}

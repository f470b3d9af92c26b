package ports

import (
	"context"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/tenant"
)

// TenantRulesProvider loads a tenant's route policy: approval thresholds and
// freight configuration. Read-only from the engine's point of view.
type TenantRulesProvider interface {
	// GetRouteRules returns the tenant's route policy.
	GetRouteRules(ctx context.Context, tenantID kernel.UUID) (tenant.RouteRules, error)

	// GetVehicleInfo returns the vehicle attributes needed for freight
	// pricing, validating tenant ownership of the vehicle.
	GetVehicleInfo(ctx context.Context, tenantID, vehicleID kernel.UUID) (tenant.VehicleInfo, error)

	// DriverExists reports whether the driver belongs to the tenant.
	DriverExists(ctx context.Context, tenantID, driverID kernel.UUID) (bool, error)
}

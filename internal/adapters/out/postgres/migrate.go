package postgres

import (
	"github.com/MatheusFDS/deliveryserver-sub000/internal/adapters/out/postgres/approvalrepo"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/adapters/out/postgres/deliveryrepo"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/adapters/out/postgres/orderrepo"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/adapters/out/postgres/tenantrepo"

	"gorm.io/gorm"
)

// activeDriverIndexSQL enforces one non-terminal route per driver. The check
// lives in the database so concurrent route creation cannot race past an
// application-level lookup. Statuses 1 and 2 are A_LIBERAR and INICIADO.
const activeDriverIndexSQL = `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_deliveries_active_driver
	ON deliveries (tenant_id, driver_id)
	WHERE status IN (1, 2)
`

// Migrate creates the engine's schema and the partial unique index guarding
// driver assignment.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&orderrepo.OrderDTO{},
		&approvalrepo.ApprovalDTO{},
		&tenantrepo.TenantSettingsDTO{},
		&tenantrepo.DriverDTO{},
		&tenantrepo.VehicleDTO{},
	)
	if err != nil {
		return err
	}

	return db.Exec(activeDriverIndexSQL).Error
}

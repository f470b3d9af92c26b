package ports

import (
	"context"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
)

// AuditEntry describes an action taken against a domain entity.
type AuditEntry struct {
	UserID       kernel.UUID
	TenantID     kernel.UUID
	Action       string
	TargetEntity string
	TargetID     kernel.UUID
	Details      string
	Timestamp    time.Time
}

// AuditLogger records domain actions for compliance. Fire-and-forget:
// failures are logged by the dispatcher and never propagate.
type AuditLogger interface {
	LogAction(ctx context.Context, entry AuditEntry) error
}

// Notification is a message to deliver to a user over one or more channels.
type Notification struct {
	Recipient  kernel.UUID
	Channels   []string
	TemplateID string
	Data       map[string]string
}

// Notifier delivers notifications. Fire-and-forget.
type Notifier interface {
	Send(ctx context.Context, notification Notification) error
}

// PendingPayment is a driver payment request emitted when a delivery
// finalizes.
type PendingPayment struct {
	Amount     kernel.Money
	TenantID   kernel.UUID
	DriverID   kernel.UUID
	DeliveryID kernel.UUID
}

// PaymentsGateway is the payment ledger collaborator. CreatePendingPayment
// is fire-and-forget on finalization; HasSettledPayment guards route
// removal.
type PaymentsGateway interface {
	CreatePendingPayment(ctx context.Context, payment PendingPayment) error

	// HasSettledPayment reports whether any payment linked to the delivery
	// has already been settled.
	HasSettledPayment(ctx context.Context, tenantID, deliveryID kernel.UUID) (bool, error)

	// PurgePaymentLinks removes unsettled payment-link records for a
	// delivery being removed.
	PurgePaymentLinks(ctx context.Context, tenantID, deliveryID kernel.UUID) error
}

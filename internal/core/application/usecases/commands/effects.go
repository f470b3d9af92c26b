package commands

import (
	"context"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/sideeffects"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/services"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
)

// routeMetrics derives the evaluator's input from an order set and the
// computed freight value.
func routeMetrics(orders []*order.Order, freightValue kernel.Money) services.RouteMetrics {
	metrics := services.RouteMetrics{
		OrderCount:   len(orders),
		FreightValue: freightValue,
	}
	for _, o := range orders {
		metrics.TotalWeightKg += o.WeightKg()
		metrics.TotalValue = metrics.TotalValue.Add(o.Value())
	}

	return metrics
}

// persistApprovals inserts the approval records appended to the aggregate
// during the current command, inside the command's transaction.
func persistApprovals(ctx context.Context, repo ports.ApprovalRepository, records []delivery.Approval) error {
	for _, record := range records {
		if err := repo.Add(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// enqueueAudit schedules an audit record after the transaction committed.
func enqueueAudit(
	effects *sideeffects.Dispatcher,
	audit ports.AuditLogger,
	actorID, tenantID kernel.UUID,
	action string,
	targetID kernel.UUID,
	details string,
) {
	entry := ports.AuditEntry{
		UserID:       actorID,
		TenantID:     tenantID,
		Action:       action,
		TargetEntity: "delivery",
		TargetID:     targetID,
		Details:      details,
		Timestamp:    time.Now().UTC(),
	}
	effects.Enqueue("audit:"+action, func(ctx context.Context) error {
		return audit.LogAction(ctx, entry)
	})
}

// enqueueDriverNotification schedules a push notification to the driver
// after the transaction committed.
func enqueueDriverNotification(
	effects *sideeffects.Dispatcher,
	notifier ports.Notifier,
	driverID kernel.UUID,
	templateID string,
	data map[string]string,
) {
	notification := ports.Notification{
		Recipient:  driverID,
		Channels:   []string{"push"},
		TemplateID: templateID,
		Data:       data,
	}
	effects.Enqueue("notify:"+templateID, func(ctx context.Context) error {
		return notifier.Send(ctx, notification)
	})
}

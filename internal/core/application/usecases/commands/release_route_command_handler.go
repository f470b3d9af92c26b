package commands

import (
	"context"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/sideeffects"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
)

// ReleaseRouteCommandHandler processes route liberation: the delivery moves
// to Iniciado, member orders move to in-route and an APPROVED approval record
// is appended, all in one transaction.
type ReleaseRouteCommandHandler struct {
	uowFactory UoWFactory
	effects    *sideeffects.Dispatcher
	audit      ports.AuditLogger
	notifier   ports.Notifier
}

// NewReleaseRouteCommandHandler creates a handler for route liberation.
func NewReleaseRouteCommandHandler(
	uowFactory UoWFactory,
	effects *sideeffects.Dispatcher,
	audit ports.AuditLogger,
	notifier ports.Notifier,
) ReleaseRouteCommandHandler {
	return ReleaseRouteCommandHandler{
		uowFactory: uowFactory,
		effects:    effects,
		audit:      audit,
		notifier:   notifier,
	}
}

// Handle processes the liberation command.
func (h ReleaseRouteCommandHandler) Handle(ctx context.Context, cmd ReleaseRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.Get(ctx, cmd.TenantID(), cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = aggregate.Release(cmd.ActorID()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	for _, o := range aggregate.Orders() {
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	if err = persistApprovals(ctx, uow.ApprovalRepository(), aggregate.PendingApprovals()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	enqueueAudit(h.effects, h.audit, cmd.ActorID(), cmd.TenantID(), "route_released",
		aggregate.ID(), "route liberated for execution")
	enqueueDriverNotification(h.effects, h.notifier, aggregate.DriverID(), "route_released", map[string]string{
		"deliveryId": aggregate.ID().String(),
	})

	return nil
}

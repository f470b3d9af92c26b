package commands

import (
	"context"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/sideeffects"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
)

// RejectRouteCommandHandler processes route rejection: the delivery moves to
// the terminal Rejeitado status, every member order is detached back to
// unrouted and a REJECTED approval record is appended, all in one
// transaction.
type RejectRouteCommandHandler struct {
	uowFactory UoWFactory
	effects    *sideeffects.Dispatcher
	audit      ports.AuditLogger
	notifier   ports.Notifier
}

// NewRejectRouteCommandHandler creates a handler for route rejection.
func NewRejectRouteCommandHandler(
	uowFactory UoWFactory,
	effects *sideeffects.Dispatcher,
	audit ports.AuditLogger,
	notifier ports.Notifier,
) RejectRouteCommandHandler {
	return RejectRouteCommandHandler{
		uowFactory: uowFactory,
		effects:    effects,
		audit:      audit,
		notifier:   notifier,
	}
}

// Handle processes the rejection command.
func (h RejectRouteCommandHandler) Handle(ctx context.Context, cmd RejectRouteCommand) error {
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

	detached, err := aggregate.Reject(cmd.ActorID(), cmd.Reason())
	if err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	for _, o := range detached {
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

	details := "route rejected"
	if cmd.Reason() != nil {
		details = "route rejected: " + *cmd.Reason()
	}
	enqueueAudit(h.effects, h.audit, cmd.ActorID(), cmd.TenantID(), "route_rejected",
		aggregate.ID(), details)
	enqueueDriverNotification(h.effects, h.notifier, aggregate.DriverID(), "route_rejected", map[string]string{
		"deliveryId": aggregate.ID().String(),
	})

	return nil
}

package commands

import (
	"context"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/sideeffects"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
)

// RemoveRouteCommandHandler processes route removal. Removal is refused while
// the route has unresolved in-progress work or a settled payment attached.
// On success every member order reverts to unrouted and dependent
// payment-link records are purged.
type RemoveRouteCommandHandler struct {
	uowFactory UoWFactory
	payments   ports.PaymentsGateway
	effects    *sideeffects.Dispatcher
	audit      ports.AuditLogger
}

// NewRemoveRouteCommandHandler creates a handler for route removal.
func NewRemoveRouteCommandHandler(
	uowFactory UoWFactory,
	payments ports.PaymentsGateway,
	effects *sideeffects.Dispatcher,
	audit ports.AuditLogger,
) RemoveRouteCommandHandler {
	return RemoveRouteCommandHandler{
		uowFactory: uowFactory,
		payments:   payments,
		effects:    effects,
		audit:      audit,
	}
}

// Handle processes the route removal command.
func (h RemoveRouteCommandHandler) Handle(ctx context.Context, cmd RemoveRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	settled, err := h.payments.HasSettledPayment(ctx, cmd.TenantID(), cmd.DeliveryID())
	if err != nil {
		return err
	}
	if settled {
		return errs.NewConflictError("route has a settled payment and cannot be removed")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	detached, err := aggregate.Dismantle()
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	for _, o := range detached {
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	if err = deliveryRepo.Delete(ctx, cmd.TenantID(), cmd.DeliveryID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.enqueuePaymentLinkPurge(cmd.TenantID(), cmd.DeliveryID())
	enqueueAudit(h.effects, h.audit, cmd.ActorID(), cmd.TenantID(), "route_removed",
		cmd.DeliveryID(), "route removed, orders reverted to unrouted")

	return nil
}

func (h RemoveRouteCommandHandler) enqueuePaymentLinkPurge(tenantID, deliveryID kernel.UUID) {
	h.effects.Enqueue("payments:purge_links", func(ctx context.Context) error {
		return h.payments.PurgePaymentLinks(ctx, tenantID, deliveryID)
	})
}

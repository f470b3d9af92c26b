package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/sideeffects"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler routes order status updates through the
// owning delivery. When the last non-terminal member order reaches a
// terminal status the delivery finalizes in the same transaction and a
// pending driver payment is emitted exactly once, after the commit.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	payments   ports.PaymentsGateway
	effects    *sideeffects.Dispatcher
	audit      ports.AuditLogger
	notifier   ports.Notifier
}

// NewUpdateOrderStatusCommandHandler creates a handler for order status updates.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	payments ports.PaymentsGateway,
	effects *sideeffects.Dispatcher,
	audit ports.AuditLogger,
	notifier ports.Notifier,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		payments:   payments,
		effects:    effects,
		audit:      audit,
		notifier:   notifier,
	}
}

// Handle processes the order status update command.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	loaded, err := uow.OrderRepository().Get(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}
	if loaded.DeliveryID() == nil {
		return errs.NewValueIsInvalidErrorWithCause("orderId",
			errors.New("order is not assigned to a route"))
	}

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.Get(ctx, cmd.TenantID(), *loaded.DeliveryID())
	if err != nil {
		return err
	}

	// Mutate the member instance so the aggregate sees the new status when
	// it checks for completion.
	member, err := aggregate.OrderByID(cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.advance(member, cmd); err != nil {
		return err
	}

	finalized, err := aggregate.RefreshCompletion()
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, member); err != nil {
		return err
	}
	if finalized {
		if err = deliveryRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	enqueueAudit(h.effects, h.audit, cmd.ActorID(), cmd.TenantID(), "order_status_updated",
		aggregate.ID(), fmt.Sprintf("order=%s status=%s", member.ID(), member.Status()))

	if finalized {
		h.enqueuePendingPayment(aggregate)
		enqueueDriverNotification(h.effects, h.notifier, aggregate.DriverID(), "route_finalized", map[string]string{
			"deliveryId": aggregate.ID().String(),
		})
	}

	return nil
}

func (h UpdateOrderStatusCommandHandler) advance(member *order.Order, cmd UpdateOrderStatusCommand) error {
	switch cmd.NewStatus() {
	case order.EmEntrega:
		return member.StartDelivery()
	case order.Entregue:
		return member.Complete()
	case order.NaoEntregue:
		return member.Fail(*cmd.FailureReason())
	default:
		return errs.NewValueIsInvalidError("newStatus")
	}
}

// enqueuePendingPayment emits the driver payment request for a finalized
// route. Fire-and-forget: a gateway failure is logged by the dispatcher and
// never rolls back the finalization.
func (h UpdateOrderStatusCommandHandler) enqueuePendingPayment(aggregate *delivery.Delivery) {
	payment := ports.PendingPayment{
		Amount:     aggregate.FreightValue(),
		TenantID:   aggregate.TenantID(),
		DriverID:   aggregate.DriverID(),
		DeliveryID: aggregate.ID(),
	}
	h.effects.Enqueue("payments:create_pending", func(ctx context.Context) error {
		return h.payments.CreatePendingPayment(ctx, payment)
	})
}

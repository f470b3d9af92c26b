package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appservices "github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/services"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/sideeffects"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/services"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
)

// UpdateRouteCommandHandler processes route updates. The aggregate totals and
// the freight value are always recomputed from the final order set, never
// patched incrementally. When a released route's recomputed aggregates
// re-trigger an approval rule, the route is pushed back behind manual
// approval with a RE_APPROVAL_NEEDED record.
type UpdateRouteCommandHandler struct {
	uowFactory UoWFactory
	rules      ports.TenantRulesProvider
	freight    *appservices.FreightCalculator
	effects    *sideeffects.Dispatcher
	audit      ports.AuditLogger
	notifier   ports.Notifier
}

// NewUpdateRouteCommandHandler creates a handler for route updates.
func NewUpdateRouteCommandHandler(
	uowFactory UoWFactory,
	rules ports.TenantRulesProvider,
	freight *appservices.FreightCalculator,
	effects *sideeffects.Dispatcher,
	audit ports.AuditLogger,
	notifier ports.Notifier,
) UpdateRouteCommandHandler {
	return UpdateRouteCommandHandler{
		uowFactory: uowFactory,
		rules:      rules,
		freight:    freight,
		effects:    effects,
		audit:      audit,
		notifier:   notifier,
	}
}

// Handle processes the route update command.
func (h UpdateRouteCommandHandler) Handle(ctx context.Context, cmd UpdateRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	routeRules, err := h.rules.GetRouteRules(ctx, cmd.TenantID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	orderRepo := uow.OrderRepository()

	aggregate, err := deliveryRepo.Get(ctx, cmd.TenantID(), cmd.DeliveryID())
	if err != nil {
		return err
	}

	detached, err := h.applyOrderChanges(ctx, uow, aggregate, cmd)
	if err != nil {
		return err
	}

	if err = h.applyAssignmentChange(ctx, aggregate, cmd); err != nil {
		return err
	}

	vehicle, err := h.rules.GetVehicleInfo(ctx, cmd.TenantID(), aggregate.VehicleID())
	if err != nil {
		return err
	}

	freightValue, err := h.freight.Calculate(ctx, routeRules, aggregate.Orders(), vehicle)
	if err != nil {
		return err
	}
	if err = aggregate.SetFreightValue(freightValue); err != nil {
		return err
	}

	heldForReapproval := false
	if aggregate.Status() == delivery.Iniciado {
		decision := services.EvaluateApproval(routeRules, routeMetrics(aggregate.Orders(), freightValue))
		if decision.NeedsApproval {
			if err = aggregate.HoldForReapproval(cmd.ActorID(), decision.Reasons); err != nil {
				return err
			}
			heldForReapproval = true
		}
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	for _, o := range aggregate.Orders() {
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}
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

	enqueueAudit(h.effects, h.audit, cmd.ActorID(), cmd.TenantID(), "route_updated",
		aggregate.ID(), h.describeUpdate(cmd, heldForReapproval))
	if heldForReapproval {
		enqueueDriverNotification(h.effects, h.notifier, aggregate.DriverID(), "route_held", map[string]string{
			"deliveryId": aggregate.ID().String(),
		})
	}

	return nil
}

func (h UpdateRouteCommandHandler) applyOrderChanges(
	ctx context.Context,
	uow UoW,
	aggregate *delivery.Delivery,
	cmd UpdateRouteCommand,
) ([]*order.Order, error) {
	var detached []*order.Order
	for _, orderID := range cmd.RemoveOrderIDs() {
		removed, err := aggregate.RemoveOrder(orderID)
		if err != nil {
			return nil, err
		}
		detached = append(detached, removed)
	}

	if len(cmd.AddOrderIDs()) > 0 {
		added, err := uow.OrderRepository().GetByIDs(ctx, cmd.TenantID(), cmd.AddOrderIDs())
		if err != nil {
			return nil, err
		}
		for _, o := range added {
			if err = aggregate.AddOrder(o); err != nil {
				return nil, err
			}
		}
	}

	// An update may not strip the route bare; removing every order is what
	// route removal is for.
	if len(aggregate.Orders()) == 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("removeOrderIds",
			errors.New("a route update cannot remove the last order"))
	}

	return detached, nil
}

func (h UpdateRouteCommandHandler) applyAssignmentChange(
	ctx context.Context,
	aggregate *delivery.Delivery,
	cmd UpdateRouteCommand,
) error {
	if cmd.NewDriverID() == nil && cmd.NewVehicleID() == nil {
		return nil
	}

	driverID := aggregate.DriverID()
	if cmd.NewDriverID() != nil {
		driverID = *cmd.NewDriverID()
		exists, err := h.rules.DriverExists(ctx, cmd.TenantID(), driverID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("driverId", driverID.String())
		}
	}

	vehicleID := aggregate.VehicleID()
	if cmd.NewVehicleID() != nil {
		vehicleID = *cmd.NewVehicleID()
	}

	return aggregate.ChangeAssignment(driverID, vehicleID)
}

func (h UpdateRouteCommandHandler) describeUpdate(cmd UpdateRouteCommand, held bool) string {
	var parts []string
	if n := len(cmd.AddOrderIDs()); n > 0 {
		parts = append(parts, fmt.Sprintf("added=%d", n))
	}
	if n := len(cmd.RemoveOrderIDs()); n > 0 {
		parts = append(parts, fmt.Sprintf("removed=%d", n))
	}
	if cmd.NewDriverID() != nil || cmd.NewVehicleID() != nil {
		parts = append(parts, "reassigned")
	}
	if held {
		parts = append(parts, "held for re-approval")
	}

	return strings.Join(parts, " ")
}

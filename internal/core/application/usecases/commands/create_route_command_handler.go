package commands

import (
	"context"
	"errors"
	"fmt"

	appservices "github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/services"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/sideeffects"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/services"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
)

// CreateRouteCommandHandler orchestrates route creation: ownership checks,
// freight calculation, approval evaluation and the atomic persistence of the
// new delivery with its cascaded order updates.
//
// A driver may hold at most one active route. The handler checks for an
// existing active route up front to answer with the conflicting route's
// identifier; concurrent creations that slip past the check still fail with a
// conflict detected at persistence time.
type CreateRouteCommandHandler struct {
	uowFactory UoWFactory
	rules      ports.TenantRulesProvider
	freight    *appservices.FreightCalculator
	effects    *sideeffects.Dispatcher
	audit      ports.AuditLogger
	notifier   ports.Notifier
}

// NewCreateRouteCommandHandler creates a handler for route creation.
func NewCreateRouteCommandHandler(
	uowFactory UoWFactory,
	rules ports.TenantRulesProvider,
	freight *appservices.FreightCalculator,
	effects *sideeffects.Dispatcher,
	audit ports.AuditLogger,
	notifier ports.Notifier,
) CreateRouteCommandHandler {
	return CreateRouteCommandHandler{
		uowFactory: uowFactory,
		rules:      rules,
		freight:    freight,
		effects:    effects,
		audit:      audit,
		notifier:   notifier,
	}
}

// Handle processes the route creation command.
// Validates driver and vehicle ownership, loads the referenced orders,
// computes freight, evaluates the tenant's approval thresholds and persists
// the route atomically. Side effects run only after the commit.
func (h CreateRouteCommandHandler) Handle(ctx context.Context, cmd CreateRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	routeRules, err := h.rules.GetRouteRules(ctx, cmd.TenantID())
	if err != nil {
		return err
	}

	exists, err := h.rules.DriverExists(ctx, cmd.TenantID(), cmd.DriverID())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("driverId", cmd.DriverID().String())
	}

	vehicle, err := h.rules.GetVehicleInfo(ctx, cmd.TenantID(), cmd.VehicleID())
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

	active, err := uow.DeliveryRepository().GetActiveByDriver(ctx, cmd.TenantID(), cmd.DriverID())
	switch {
	case err == nil:
		return errs.NewConflictError(
			fmt.Sprintf("driver is already assigned to active route %s", active.ID()))
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	orders, err := uow.OrderRepository().GetByIDs(ctx, cmd.TenantID(), cmd.OrderIDs())
	if err != nil {
		return err
	}

	freightValue, err := h.freight.Calculate(ctx, routeRules, orders, vehicle)
	if err != nil {
		return err
	}

	decision := services.EvaluateApproval(routeRules, routeMetrics(orders, freightValue))

	aggregate, err := delivery.NewDelivery(
		cmd.DeliveryID(), cmd.TenantID(), cmd.DriverID(), cmd.VehicleID(),
		orders, freightValue, decision.NeedsApproval,
	)
	if err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	for _, o := range aggregate.Orders() {
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	enqueueAudit(h.effects, h.audit, cmd.ActorID(), cmd.TenantID(), "route_created",
		aggregate.ID(), fmt.Sprintf("status=%s orders=%d", aggregate.Status(), len(aggregate.Orders())))
	enqueueDriverNotification(h.effects, h.notifier, cmd.DriverID(), "route_assigned", map[string]string{
		"deliveryId": aggregate.ID().String(),
		"status":     aggregate.Status().String(),
	})

	return nil
}

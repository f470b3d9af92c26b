package commands

import (
	"errors"
	"fmt"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/guard"
)

var ErrCreateRouteCommandIsNotConstructed = errors.New(
	"CreateRouteCommand must be created via NewCreateRouteCommand constructor",
)

// CreateRouteCommand represents a request to create a new delivery route
// grouping a set of unrouted orders under a driver/vehicle pair.
type CreateRouteCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	tenantID   kernel.UUID
	actorID    kernel.UUID
	driverID   kernel.UUID
	vehicleID  kernel.UUID
	orderIDs   []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateRouteCommand creates a command to register a new route. The order
// list must be non-empty and free of duplicates.
func NewCreateRouteCommand(
	deliveryID kernel.UUID,
	tenantID kernel.UUID,
	actorID kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	orderIDs []kernel.UUID,
) (CreateRouteCommand, error) {
	cmd := CreateRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setTenantID(tenantID),
		cmd.setActorID(actorID),
		cmd.setDriverID(driverID),
		cmd.setVehicleID(vehicleID),
		cmd.setOrderIDs(orderIDs),
	); err != nil {
		return CreateRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteCommandIsNotConstructed)
}

// DeliveryID returns the identifier assigned to the new route.
func (c CreateRouteCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// TenantID returns the owning tenant's identifier.
func (c CreateRouteCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the user requesting the route.
func (c CreateRouteCommand) ActorID() kernel.UUID { return c.actorID }

// DriverID returns the driver assigned to the route.
func (c CreateRouteCommand) DriverID() kernel.UUID { return c.driverID }

// VehicleID returns the vehicle assigned to the route.
func (c CreateRouteCommand) VehicleID() kernel.UUID { return c.vehicleID }

// OrderIDs returns the orders to attach, in stop position sequence.
func (c CreateRouteCommand) OrderIDs() []kernel.UUID { return c.orderIDs }

func (c *CreateRouteCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryId", err)
	}
	c.deliveryID = id
	return nil
}

func (c *CreateRouteCommand) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = id
	return nil
}

func (c *CreateRouteCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	c.actorID = id
	return nil
}

func (c *CreateRouteCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	c.driverID = id
	return nil
}

func (c *CreateRouteCommand) setVehicleID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vehicleId", err)
	}
	c.vehicleID = id
	return nil
}

func (c *CreateRouteCommand) setOrderIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("orderIds")
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("orderIds", err)
		}
		if _, ok := seen[id.String()]; ok {
			return errs.NewValueIsInvalidErrorWithCause("orderIds",
				fmt.Errorf("order %s is referenced more than once", id))
		}
		seen[id.String()] = struct{}{}
	}

	c.orderIDs = ids
	return nil
}

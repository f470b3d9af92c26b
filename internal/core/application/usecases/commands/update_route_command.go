package commands

import (
	"errors"
	"fmt"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/guard"
)

var ErrUpdateRouteCommandIsNotConstructed = errors.New(
	"UpdateRouteCommand must be created via NewUpdateRouteCommand constructor",
)

// UpdateRouteCommand represents a change to an existing route: adding or
// removing orders and/or reassigning the driver/vehicle pair. At least one
// change must be requested.
type UpdateRouteCommand struct { //nolint:recvcheck //using for validation
	deliveryID     kernel.UUID
	tenantID       kernel.UUID
	actorID        kernel.UUID
	addOrderIDs    []kernel.UUID
	removeOrderIDs []kernel.UUID
	newDriverID    *kernel.UUID
	newVehicleID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewUpdateRouteCommand creates a command to update a route.
func NewUpdateRouteCommand(
	deliveryID kernel.UUID,
	tenantID kernel.UUID,
	actorID kernel.UUID,
	addOrderIDs []kernel.UUID,
	removeOrderIDs []kernel.UUID,
	newDriverID *kernel.UUID,
	newVehicleID *kernel.UUID,
) (UpdateRouteCommand, error) {
	cmd := UpdateRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setTenantID(tenantID),
		cmd.setActorID(actorID),
		cmd.setOrderChanges(addOrderIDs, removeOrderIDs),
		cmd.setAssignment(newDriverID, newVehicleID),
	); err != nil {
		return UpdateRouteCommand{}, err
	}

	if len(cmd.addOrderIDs) == 0 && len(cmd.removeOrderIDs) == 0 &&
		cmd.newDriverID == nil && cmd.newVehicleID == nil {
		return UpdateRouteCommand{}, errs.NewValueIsRequiredErrorWithCause("changes",
			errors.New("the update requests no change"))
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRouteCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRouteCommandIsNotConstructed)
}

// DeliveryID returns the route being updated.
func (c UpdateRouteCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// TenantID returns the owning tenant's identifier.
func (c UpdateRouteCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the user requesting the update.
func (c UpdateRouteCommand) ActorID() kernel.UUID { return c.actorID }

// AddOrderIDs returns the unrouted orders to attach.
func (c UpdateRouteCommand) AddOrderIDs() []kernel.UUID { return c.addOrderIDs }

// RemoveOrderIDs returns the member orders to detach.
func (c UpdateRouteCommand) RemoveOrderIDs() []kernel.UUID { return c.removeOrderIDs }

// NewDriverID returns the replacement driver, or nil to keep the current one.
func (c UpdateRouteCommand) NewDriverID() *kernel.UUID { return c.newDriverID }

// NewVehicleID returns the replacement vehicle, or nil to keep the current one.
func (c UpdateRouteCommand) NewVehicleID() *kernel.UUID { return c.newVehicleID }

func (c *UpdateRouteCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryId", err)
	}
	c.deliveryID = id
	return nil
}

func (c *UpdateRouteCommand) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = id
	return nil
}

func (c *UpdateRouteCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	c.actorID = id
	return nil
}

func (c *UpdateRouteCommand) setOrderChanges(addIDs, removeIDs []kernel.UUID) error {
	seen := make(map[string]struct{}, len(addIDs)+len(removeIDs))
	for _, id := range append(append([]kernel.UUID{}, addIDs...), removeIDs...) {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("orderIds", err)
		}
		if _, ok := seen[id.String()]; ok {
			return errs.NewValueIsInvalidErrorWithCause("orderIds",
				fmt.Errorf("order %s is referenced more than once", id))
		}
		seen[id.String()] = struct{}{}
	}

	c.addOrderIDs = addIDs
	c.removeOrderIDs = removeIDs
	return nil
}

func (c *UpdateRouteCommand) setAssignment(driverID, vehicleID *kernel.UUID) error {
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("driverId", err)
		}
	}
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("vehicleId", err)
		}
	}

	c.newDriverID = driverID
	c.newVehicleID = vehicleID
	return nil
}

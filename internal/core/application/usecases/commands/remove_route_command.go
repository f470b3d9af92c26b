package commands

import (
	"errors"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/guard"
)

var ErrRemoveRouteCommandIsNotConstructed = errors.New(
	"RemoveRouteCommand must be created via NewRemoveRouteCommand constructor",
)

// RemoveRouteCommand represents a request to remove a route entirely,
// reverting its member orders to unrouted.
type RemoveRouteCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	tenantID   kernel.UUID
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveRouteCommand creates a command to remove a route.
func NewRemoveRouteCommand(deliveryID, tenantID, actorID kernel.UUID) (RemoveRouteCommand, error) {
	cmd := RemoveRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setTenantID(tenantID),
		cmd.setActorID(actorID),
	); err != nil {
		return RemoveRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveRouteCommand) Validate() error {
	return c.guard.Validate(ErrRemoveRouteCommandIsNotConstructed)
}

// DeliveryID returns the route being removed.
func (c RemoveRouteCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// TenantID returns the owning tenant's identifier.
func (c RemoveRouteCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the user requesting the removal.
func (c RemoveRouteCommand) ActorID() kernel.UUID { return c.actorID }

func (c *RemoveRouteCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryId", err)
	}
	c.deliveryID = id
	return nil
}

func (c *RemoveRouteCommand) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = id
	return nil
}

func (c *RemoveRouteCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	c.actorID = id
	return nil
}

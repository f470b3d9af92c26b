package commands

import (
	"errors"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/guard"
)

var ErrReleaseRouteCommandIsNotConstructed = errors.New(
	"ReleaseRouteCommand must be created via NewReleaseRouteCommand constructor",
)

// ReleaseRouteCommand represents an approver's liberation of a route that is
// awaiting manual approval.
type ReleaseRouteCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	tenantID   kernel.UUID
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewReleaseRouteCommand creates a command to liberate an awaiting route.
func NewReleaseRouteCommand(deliveryID, tenantID, actorID kernel.UUID) (ReleaseRouteCommand, error) {
	cmd := ReleaseRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setTenantID(tenantID),
		cmd.setActorID(actorID),
	); err != nil {
		return ReleaseRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseRouteCommand) Validate() error {
	return c.guard.Validate(ErrReleaseRouteCommandIsNotConstructed)
}

// DeliveryID returns the route being liberated.
func (c ReleaseRouteCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// TenantID returns the owning tenant's identifier.
func (c ReleaseRouteCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the approving user.
func (c ReleaseRouteCommand) ActorID() kernel.UUID { return c.actorID }

func (c *ReleaseRouteCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryId", err)
	}
	c.deliveryID = id
	return nil
}

func (c *ReleaseRouteCommand) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = id
	return nil
}

func (c *ReleaseRouteCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	c.actorID = id
	return nil
}

package commands

import (
	"errors"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/guard"
)

var ErrRejectRouteCommandIsNotConstructed = errors.New(
	"RejectRouteCommand must be created via NewRejectRouteCommand constructor",
)

// RejectRouteCommand represents an approver's terminal refusal of a route
// that is awaiting manual approval.
type RejectRouteCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	tenantID   kernel.UUID
	actorID    kernel.UUID
	reason     *string

	guard guard.ConstructorGuard
}

// NewRejectRouteCommand creates a command to reject an awaiting route. The
// reason is optional.
func NewRejectRouteCommand(deliveryID, tenantID, actorID kernel.UUID, reason *string) (RejectRouteCommand, error) {
	cmd := RejectRouteCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setTenantID(tenantID),
		cmd.setActorID(actorID),
	); err != nil {
		return RejectRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectRouteCommand) Validate() error {
	return c.guard.Validate(ErrRejectRouteCommandIsNotConstructed)
}

// DeliveryID returns the route being rejected.
func (c RejectRouteCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// TenantID returns the owning tenant's identifier.
func (c RejectRouteCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the rejecting user.
func (c RejectRouteCommand) ActorID() kernel.UUID { return c.actorID }

// Reason returns the optional rejection reason.
func (c RejectRouteCommand) Reason() *string { return c.reason }

func (c *RejectRouteCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryId", err)
	}
	c.deliveryID = id
	return nil
}

func (c *RejectRouteCommand) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = id
	return nil
}

func (c *RejectRouteCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	c.actorID = id
	return nil
}

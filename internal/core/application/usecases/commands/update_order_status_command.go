package commands

import (
	"errors"
	"fmt"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a driver advancing a routed order
// through its delivery lifecycle: out for delivery, delivered, or not
// delivered with a reason.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	tenantID      kernel.UUID
	actorID       kernel.UUID
	newStatus     order.Status
	failureReason *string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to advance an order's
// status. The target status must be one of the delivery-progress statuses;
// NaoEntregue requires a failure reason.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	tenantID kernel.UUID,
	actorID kernel.UUID,
	newStatus order.Status,
	failureReason *string,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTenantID(tenantID),
		cmd.setActorID(actorID),
		cmd.setNewStatus(newStatus, failureReason),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order being advanced.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// TenantID returns the owning tenant's identifier.
func (c UpdateOrderStatusCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the user reporting the status change.
func (c UpdateOrderStatusCommand) ActorID() kernel.UUID { return c.actorID }

// NewStatus returns the target order status.
func (c UpdateOrderStatusCommand) NewStatus() order.Status { return c.newStatus }

// FailureReason returns the delivery failure reason, set only for NaoEntregue.
func (c UpdateOrderStatusCommand) FailureReason() *string { return c.failureReason }

func (c *UpdateOrderStatusCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = id
	return nil
}

func (c *UpdateOrderStatusCommand) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = id
	return nil
}

func (c *UpdateOrderStatusCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	c.actorID = id
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(newStatus order.Status, failureReason *string) error {
	switch newStatus {
	case order.EmEntrega, order.Entregue:
	case order.NaoEntregue:
		if failureReason == nil || *failureReason == "" {
			return errs.NewValueIsRequiredError("failureReason")
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause("newStatus",
			fmt.Errorf("%s is not a delivery-progress status", newStatus))
	}

	c.newStatus = newStatus
	c.failureReason = failureReason
	return nil
}

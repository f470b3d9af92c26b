package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a single consignment in the system. It is an aggregate that
// manages the consignment lifecycle from creation through route assignment to
// delivery or failure.
//
// Order maintains these invariants:
//   - Must have valid order and tenant identifiers
//   - Weight must be positive; declared value may be zero but never negative
//   - Status transitions follow the rules defined on Status
//   - Status is SemRota if and only if the order has no owning delivery
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id       kernel.UUID
	tenantID kernel.UUID

	// weightKg is the consignment weight in kilograms (must be positive)
	weightKg float64

	// value is the declared monetary value of the consignment
	value kernel.Money

	address    string
	postalCode string

	status Status

	// deliveryID is the owning delivery (nil while unrouted)
	deliveryID *kernel.UUID

	// sortPosition is the stop position within the owning delivery (nil while unrouted)
	sortPosition *int

	startedAt   *time.Time
	completedAt *time.Time

	// failureReason is populated only for NaoEntregue orders
	failureReason *string

	isConstructed bool
}

// NewOrder creates a new Order in SemRota status with validation.
// This is the only way to create a valid new Order; RestoreOrder exists for
// reconstruction from persistence.
func NewOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	weightKg float64,
	value kernel.Money,
	address string,
	postalCode string,
) (*Order, error) {
	o := &Order{
		status:        SemRota,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setWeight(weightKg),
		o.setAddress(address),
		o.setPostalCode(postalCode),
	); err != nil {
		return nil, err
	}

	o.value = value
	return o, nil
}

// RestoreOrder reconstructs an Order from persisted state without applying
// transition rules. The stored status must still be valid, and the status /
// delivery-reference invariant is re-checked so corrupted rows surface as
// errors instead of invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	weightKg float64,
	value kernel.Money,
	address string,
	postalCode string,
	status Status,
	deliveryID *kernel.UUID,
	sortPosition *int,
	startedAt *time.Time,
	completedAt *time.Time,
	failureReason *string,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o, err := NewOrder(id, tenantID, weightKg, value, address, postalCode)
	if err != nil {
		return nil, err
	}

	o.status = status
	o.deliveryID = deliveryID
	o.sortPosition = sortPosition
	o.startedAt = startedAt
	o.completedAt = completedAt
	o.failureReason = failureReason

	if err = o.validateDeliveryConsistency(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the owning tenant's identifier.
func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

// WeightKg returns the consignment weight in kilograms.
func (o *Order) WeightKg() float64 {
	return o.weightKg
}

// Value returns the declared monetary value of the consignment.
func (o *Order) Value() kernel.Money {
	return o.value
}

// Address returns the delivery street address.
func (o *Order) Address() string {
	return o.address
}

// PostalCode returns the delivery postal code.
func (o *Order) PostalCode() string {
	return o.postalCode
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryID returns the owning delivery's ID, or nil while unrouted.
func (o *Order) DeliveryID() *kernel.UUID {
	return o.deliveryID
}

// SortPosition returns the stop position within the owning delivery,
// or nil while unrouted.
func (o *Order) SortPosition() *int {
	return o.sortPosition
}

// StartedAt returns when the order went out for delivery, or nil.
func (o *Order) StartedAt() *time.Time {
	return o.startedAt
}

// CompletedAt returns when the order reached a terminal status, or nil.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// FailureReason returns the failure description for NaoEntregue orders, or nil.
func (o *Order) FailureReason() *string {
	return o.failureReason
}

// AssignToDelivery attaches the order to a delivery at the given stop position.
// The order must be in SemRota. When the delivery requires approval the order
// moves to EmRotaAguardandoLiberacao, otherwise to EmRota.
func (o *Order) AssignToDelivery(deliveryID kernel.UUID, position int, awaitingApproval bool) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	if position < 0 {
		return errs.NewValueIsInvalidErrorWithCause("sortPosition",
			fmt.Errorf("%d is negative", position))
	}

	newStatus, err := o.status.Assign(awaitingApproval)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryID = &deliveryID
	o.sortPosition = &position
	return nil
}

// Release moves the order from EmRotaAguardandoLiberacao to EmRota when the
// owning delivery is liberated.
func (o *Order) Release() error {
	newStatus, err := o.status.Release()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// HoldForReapproval moves the order from EmRota back to
// EmRotaAguardandoLiberacao when a route update requires re-approval.
func (o *Order) HoldForReapproval() error {
	newStatus, err := o.status.HoldForReapproval()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// StartDelivery marks the order as out for delivery and records the start time.
func (o *Order) StartDelivery() error {
	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.startedAt = &now
	return nil
}

// Complete marks the order as delivered. Entregue is terminal.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.completedAt = &now
	return nil
}

// Fail marks the order as undelivered with the given reason.
// NaoEntregue is terminal.
func (o *Order) Fail(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("failureReason")
	}

	newStatus, err := o.status.Fail()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.completedAt = &now
	o.failureReason = &reason
	return nil
}

// Detach removes the order from its delivery, reverting it to SemRota and
// clearing the delivery reference, stop position and start time.
func (o *Order) Detach() error {
	newStatus, err := o.status.Detach()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryID = nil
	o.sortPosition = nil
	o.startedAt = nil
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	o.tenantID = id
	return nil
}

func (o *Order) setWeight(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weightKg",
			fmt.Errorf("%v is not greater than 0", weightKg))
	}
	o.weightKg = weightKg
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	o.postalCode = postalCode
	return nil
}

// validateDeliveryConsistency enforces the invariant that an order is SemRota
// if and only if it has no owning delivery.
func (o *Order) validateDeliveryConsistency() error {
	if o.status == SemRota && o.deliveryID != nil {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order cannot reference a delivery", o.status))
	}

	if o.status != SemRota && o.deliveryID == nil {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must reference a delivery", o.status))
	}

	return nil
}

package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through the NewDelivery or RestoreDelivery factory functions.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")
)

// Delivery represents a route: the aggregate grouping a driver, a vehicle and
// a set of orders for execution. It is the consistency boundary for the
// delivery status lifecycle and the aggregate totals.
//
// Delivery maintains these invariants:
//   - totals always equal the sum over the current order set; they are
//     recomputed after every order-set change, never incrementally patched
//   - every member order belongs to the delivery's tenant
//   - member order statuses stay consistent with the delivery status
//   - terminal deliveries (Finalizado, Rejeitado) reject all mutations
//
// Approval records produced by Release, Reject and HoldForReapproval are
// collected on the aggregate and persisted by the caller in the same
// transaction as the status change.
type Delivery struct {
	id        kernel.UUID
	tenantID  kernel.UUID
	driverID  kernel.UUID
	vehicleID kernel.UUID

	status Status

	totalWeightKg float64
	totalValue    kernel.Money
	freightValue  kernel.Money

	createdAt  time.Time
	releasedAt *time.Time
	endedAt    *time.Time

	orders           []*order.Order
	pendingApprovals []Approval

	isConstructed bool
}

// NewDelivery creates a new route over the given orders.
// Every order must belong to the tenant and be unrouted; orders are attached
// in the given sequence, which defines their stop positions. The initial
// status is ALiberar when the route needs approval, Iniciado otherwise, and
// member orders move to the matching status.
func NewDelivery(
	id kernel.UUID,
	tenantID kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	orders []*order.Order,
	freightValue kernel.Money,
	needsApproval bool,
) (*Delivery, error) {
	d := &Delivery{
		status:        Iniciado,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}
	if needsApproval {
		d.status = ALiberar
	}

	if err := errors.Join(
		d.setID(id),
		d.setTenantID(tenantID),
		d.setDriverID(driverID),
		d.setVehicleID(vehicleID),
	); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, errs.NewValueIsRequiredError("orders")
	}

	for i, o := range orders {
		if err := d.validateMemberOrder(o); err != nil {
			return nil, err
		}
		if err := o.AssignToDelivery(d.id, i, needsApproval); err != nil {
			return nil, err
		}
	}

	d.orders = orders
	d.freightValue = freightValue
	d.recomputeTotals()

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persisted state without
// applying transition rules. The member orders are attached as loaded.
func RestoreDelivery(
	id kernel.UUID,
	tenantID kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	status Status,
	totalWeightKg float64,
	totalValue kernel.Money,
	freightValue kernel.Money,
	createdAt time.Time,
	releasedAt *time.Time,
	endedAt *time.Time,
	orders []*order.Order,
) (*Delivery, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	d := &Delivery{
		status:        status,
		totalWeightKg: totalWeightKg,
		totalValue:    totalValue,
		freightValue:  freightValue,
		createdAt:     createdAt,
		releasedAt:    releasedAt,
		endedAt:       endedAt,
		orders:        orders,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setTenantID(tenantID),
		d.setDriverID(driverID),
		d.setVehicleID(vehicleID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Delivery instance was properly constructed through a factory.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}

	return nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID { return d.id }

// TenantID returns the owning tenant's identifier.
func (d *Delivery) TenantID() kernel.UUID { return d.tenantID }

// DriverID returns the assigned driver's identifier.
func (d *Delivery) DriverID() kernel.UUID { return d.driverID }

// VehicleID returns the assigned vehicle's identifier.
func (d *Delivery) VehicleID() kernel.UUID { return d.vehicleID }

// Status returns the current status of the delivery.
func (d *Delivery) Status() Status { return d.status }

// TotalWeightKg returns the summed weight over the current order set.
func (d *Delivery) TotalWeightKg() float64 { return d.totalWeightKg }

// TotalValue returns the summed declared value over the current order set.
func (d *Delivery) TotalValue() kernel.Money { return d.totalValue }

// FreightValue returns the computed freight cost of the route.
func (d *Delivery) FreightValue() kernel.Money { return d.freightValue }

// CreatedAt returns when the route was created.
func (d *Delivery) CreatedAt() time.Time { return d.createdAt }

// ReleasedAt returns when the route was liberated, or nil.
func (d *Delivery) ReleasedAt() *time.Time { return d.releasedAt }

// EndedAt returns when the route reached a terminal status, or nil.
func (d *Delivery) EndedAt() *time.Time { return d.endedAt }

// Orders returns the current member orders in stop position sequence.
func (d *Delivery) Orders() []*order.Order { return d.orders }

// PendingApprovals returns the approval records produced by decisions taken
// on this instance since it was loaded. The caller persists them in the same
// transaction as the aggregate change.
func (d *Delivery) PendingApprovals() []Approval { return d.pendingApprovals }

// OrderByID returns the member order with the given ID.
func (d *Delivery) OrderByID(orderID kernel.UUID) (*order.Order, error) {
	for _, o := range d.orders {
		if o.ID().IsEqual(orderID) {
			return o, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderId", orderID.String())
}

// Release liberates an ALiberar delivery: the route moves to Iniciado, every
// member order moves from awaiting-liberation to in-route, and an APPROVED
// approval record is appended.
func (d *Delivery) Release(actorID kernel.UUID) error {
	newStatus, err := d.status.Release()
	if err != nil {
		return err
	}

	for _, o := range d.orders {
		if err = o.Release(); err != nil {
			return err
		}
	}

	approval, err := NewApproval(d.id, d.tenantID, actorID, Approved, nil)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	d.status = newStatus
	d.releasedAt = &now
	d.pendingApprovals = append(d.pendingApprovals, approval)
	return nil
}

// Reject terminally refuses an ALiberar delivery: every member order reverts
// to unrouted and is detached, and a REJECTED approval record is appended.
// Rejeitado is terminal for the delivery. The detached orders are returned so
// the caller can persist their reverted state.
func (d *Delivery) Reject(actorID kernel.UUID, reason *string) ([]*order.Order, error) {
	newStatus, err := d.status.Reject()
	if err != nil {
		return nil, err
	}

	for _, o := range d.orders {
		if err = o.Detach(); err != nil {
			return nil, err
		}
	}

	approval, err := NewApproval(d.id, d.tenantID, actorID, Rejected, reason)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	d.status = newStatus
	d.endedAt = &now
	detached := d.orders
	d.orders = nil
	d.recomputeTotals()
	d.pendingApprovals = append(d.pendingApprovals, approval)
	return detached, nil
}

// HoldForReapproval pushes an Iniciado delivery back behind manual approval
// after a route update re-triggered an approval rule. Member orders move back
// to awaiting-liberation and a RE_APPROVAL_NEEDED record is appended carrying
// the triggered rule descriptions.
func (d *Delivery) HoldForReapproval(actorID kernel.UUID, reasons []string) error {
	newStatus, err := d.status.HoldForReapproval()
	if err != nil {
		return err
	}

	for _, o := range d.orders {
		if err = o.HoldForReapproval(); err != nil {
			return err
		}
	}

	reason := strings.Join(reasons, "; ")
	approval, err := NewApproval(d.id, d.tenantID, actorID, ReApprovalNeeded, &reason)
	if err != nil {
		return err
	}

	d.status = newStatus
	d.releasedAt = nil
	d.pendingApprovals = append(d.pendingApprovals, approval)
	return nil
}

// AddOrder attaches an unrouted order to the route at the next stop position
// and recomputes the totals.
func (d *Delivery) AddOrder(o *order.Order) error {
	if err := d.ensureMutable(); err != nil {
		return err
	}
	if err := d.validateMemberOrder(o); err != nil {
		return err
	}

	if err := o.AssignToDelivery(d.id, d.nextPosition(), d.status == ALiberar); err != nil {
		return err
	}

	d.orders = append(d.orders, o)
	d.recomputeTotals()
	return nil
}

// RemoveOrder detaches the member order with the given ID, reverts it to
// unrouted and recomputes the totals. Orders out for delivery or in a
// terminal status cannot be removed. The detached order is returned so the
// caller can persist its reverted state.
func (d *Delivery) RemoveOrder(orderID kernel.UUID) (*order.Order, error) {
	if err := d.ensureMutable(); err != nil {
		return nil, err
	}

	removed, err := d.OrderByID(orderID)
	if err != nil {
		return nil, err
	}

	if err = removed.Detach(); err != nil {
		return nil, err
	}

	remaining := make([]*order.Order, 0, len(d.orders)-1)
	for _, o := range d.orders {
		if !o.ID().IsEqual(orderID) {
			remaining = append(remaining, o)
		}
	}

	d.orders = remaining
	d.recomputeTotals()
	return removed, nil
}

// ChangeAssignment reassigns the route to a different driver and/or vehicle.
func (d *Delivery) ChangeAssignment(driverID, vehicleID kernel.UUID) error {
	if err := d.ensureMutable(); err != nil {
		return err
	}

	if err := errors.Join(
		d.setDriverID(driverID),
		d.setVehicleID(vehicleID),
	); err != nil {
		return err
	}

	return nil
}

// SetFreightValue replaces the computed freight cost after aggregates change.
func (d *Delivery) SetFreightValue(freightValue kernel.Money) error {
	if err := d.ensureMutable(); err != nil {
		return err
	}

	d.freightValue = freightValue
	return nil
}

// RefreshCompletion finalizes an Iniciado delivery once every member order
// has reached a terminal status. Returns true when the delivery transitioned
// to Finalizado on this call.
func (d *Delivery) RefreshCompletion() (bool, error) {
	if d.status != Iniciado || len(d.orders) == 0 {
		return false, nil
	}

	for _, o := range d.orders {
		if !o.Status().IsTerminal() {
			return false, nil
		}
	}

	newStatus, err := d.status.Finish()
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	d.status = newStatus
	d.endedAt = &now
	return true, nil
}

// Dismantle detaches every member order for route removal and returns them.
// Removal is only permitted while the route is still awaiting liberation;
// released routes with unresolved work and terminal routes cannot be removed.
func (d *Delivery) Dismantle() ([]*order.Order, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	if d.status != ALiberar {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s delivery cannot be removed", d.status))
	}

	for _, o := range d.orders {
		if err := o.Detach(); err != nil {
			return nil, err
		}
	}

	detached := d.orders
	d.orders = nil
	d.recomputeTotals()
	return detached, nil
}

// recomputeTotals derives the aggregate totals from the current order set.
// Totals are always recomputed from scratch to avoid incremental drift.
func (d *Delivery) recomputeTotals() {
	var weight float64
	value := kernel.Money{}

	for _, o := range d.orders {
		weight += o.WeightKg()
		value = value.Add(o.Value())
	}

	d.totalWeightKg = weight
	d.totalValue = value
}

func (d *Delivery) ensureMutable() error {
	if err := d.Validate(); err != nil {
		return err
	}

	if d.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s delivery cannot be modified", d.status))
	}

	return nil
}

func (d *Delivery) validateMemberOrder(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if !o.TenantID().IsEqual(d.tenantID) {
		return errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("order %s belongs to another tenant", o.ID()))
	}

	return nil
}

func (d *Delivery) nextPosition() int {
	next := 0
	for _, o := range d.orders {
		if p := o.SortPosition(); p != nil && *p >= next {
			next = *p + 1
		}
	}
	return next
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	d.tenantID = id
	return nil
}

func (d *Delivery) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	d.driverID = id
	return nil
}

func (d *Delivery) setVehicleID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vehicleId", err)
	}
	d.vehicleID = id
	return nil
}

package delivery

import (
	"fmt"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
)

// ApprovalAction identifies the kind of liberation decision recorded.
type ApprovalAction int

const (
	// ApprovalActionUnknown represents an invalid or undefined action.
	ApprovalActionUnknown ApprovalAction = iota

	// Approved records a liberation: the route may proceed.
	Approved

	// Rejected records a rejection: the route is terminally refused.
	Rejected

	// ReApprovalNeeded records that a route update pushed the delivery back
	// behind manual approval.
	ReApprovalNeeded
)

func getApprovalActionStrings() map[ApprovalAction]string {
	return map[ApprovalAction]string{
		ApprovalActionUnknown: "UNKNOWN",
		Approved:              "APPROVED",
		Rejected:              "REJECTED",
		ReApprovalNeeded:      "RE_APPROVAL_NEEDED",
	}
}

// Validate checks if the ApprovalAction value is valid.
func (a ApprovalAction) Validate() error {
	if a != Approved && a != Rejected && a != ReApprovalNeeded {
		return errs.NewValueIsInvalidErrorWithCause("approvalAction",
			fmt.Errorf("%d is not a valid approval action", a))
	}
	return nil
}

// String returns the wire name of the action, or "UNKNOWN" for invalid values.
func (a ApprovalAction) String() string {
	if str, ok := getApprovalActionStrings()[a]; ok {
		return str
	}
	return "UNKNOWN"
}

// Approval is an immutable audit record of a liberation decision.
// Records are append-only: they are never updated or deleted.
type Approval struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	tenantID   kernel.UUID
	actorID    kernel.UUID
	action     ApprovalAction
	reason     *string
	createdAt  time.Time
}

// NewApproval creates an approval record for the given decision.
// The actor is the user who took (or triggered) the decision.
func NewApproval(
	deliveryID kernel.UUID,
	tenantID kernel.UUID,
	actorID kernel.UUID,
	action ApprovalAction,
	reason *string,
) (Approval, error) {
	if err := deliveryID.Validate(); err != nil {
		return Approval{}, err
	}
	if err := tenantID.Validate(); err != nil {
		return Approval{}, errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	if err := actorID.Validate(); err != nil {
		return Approval{}, errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	if err := action.Validate(); err != nil {
		return Approval{}, err
	}

	return Approval{
		id:         kernel.NewUUID(),
		deliveryID: deliveryID,
		tenantID:   tenantID,
		actorID:    actorID,
		action:     action,
		reason:     reason,
		createdAt:  time.Now().UTC(),
	}, nil
}

// RestoreApproval reconstructs an approval record from persisted state.
func RestoreApproval(
	id kernel.UUID,
	deliveryID kernel.UUID,
	tenantID kernel.UUID,
	actorID kernel.UUID,
	action ApprovalAction,
	reason *string,
	createdAt time.Time,
) (Approval, error) {
	if err := action.Validate(); err != nil {
		return Approval{}, err
	}

	return Approval{
		id:         id,
		deliveryID: deliveryID,
		tenantID:   tenantID,
		actorID:    actorID,
		action:     action,
		reason:     reason,
		createdAt:  createdAt,
	}, nil
}

// ID returns the approval record's unique identifier.
func (a Approval) ID() kernel.UUID { return a.id }

// DeliveryID returns the delivery the decision applies to.
func (a Approval) DeliveryID() kernel.UUID { return a.deliveryID }

// TenantID returns the owning tenant's identifier.
func (a Approval) TenantID() kernel.UUID { return a.tenantID }

// ActorID returns the user who took the decision.
func (a Approval) ActorID() kernel.UUID { return a.actorID }

// Action returns the recorded decision kind.
func (a Approval) Action() ApprovalAction { return a.action }

// Reason returns the optional decision reason.
func (a Approval) Reason() *string { return a.reason }

// CreatedAt returns when the decision was recorded.
func (a Approval) CreatedAt() time.Time { return a.createdAt }

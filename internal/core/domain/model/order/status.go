package order

import (
	"fmt"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions; illegal transitions
// fail with a validation error instead of silently no-opping.
//
// State transitions:
//
//	SemRota ──┬──> EmRota ───────────> EmEntrega ──┬──> Entregue
//	          │      │  ^                          └──> NaoEntregue
//	          │      v  │ (liberation)
//	          └──> EmRotaAguardandoLiberacao ──> SemRota (rejection)
//
// Entregue and NaoEntregue are terminal. String values use the platform's
// wire vocabulary (SEM_ROTA, EM_ROTA, ...) for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// SemRota is the initial status: the order is not assigned to any delivery.
	SemRota

	// EmRotaAguardandoLiberacao means the order belongs to a delivery that is
	// waiting for manual approval before execution can start.
	EmRotaAguardandoLiberacao

	// EmRota means the order belongs to a released delivery awaiting pickup.
	EmRota

	// EmEntrega means the order is out for delivery.
	EmEntrega

	// Entregue means the order was delivered. Terminal.
	Entregue

	// NaoEntregue means the delivery attempt failed. Terminal.
	NaoEntregue
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                   "UNKNOWN",
		SemRota:                   "SEM_ROTA",
		EmRotaAguardandoLiberacao: "EM_ROTA_AGUARDANDO_LIBERACAO",
		EmRota:                    "EM_ROTA",
		EmEntrega:                 "EM_ENTREGA",
		Entregue:                  "ENTREGUE",
		NaoEntregue:               "NAO_ENTREGUE",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		SemRota:                   "SEM_ROTA",
		EmRotaAguardandoLiberacao: "EM_ROTA_AGUARDANDO_LIBERACAO",
		EmRota:                    "EM_ROTA",
		EmEntrega:                 "EM_ENTREGA",
		Entregue:                  "ENTREGUE",
		NaoEntregue:               "NAO_ENTREGUE",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid values.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a wire status name.
func StatusFromString(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", value))
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Entregue || s == NaoEntregue
}

// Assign transitions an unrouted order into a delivery.
//
// Valid transitions:
//   - SemRota -> EmRota (delivery released immediately)
//   - SemRota -> EmRotaAguardandoLiberacao (delivery needs approval)
func (s Status) Assign(awaitingApproval bool) (Status, error) {
	if s != SemRota {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to assign to a delivery", s.String()),
		)
	}

	if awaitingApproval {
		return EmRotaAguardandoLiberacao, nil
	}
	return EmRota, nil
}

// Release transitions EmRotaAguardandoLiberacao -> EmRota when the owning
// delivery is liberated.
func (s Status) Release() (Status, error) {
	if s != EmRotaAguardandoLiberacao {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to release", s.String()),
		)
	}

	return EmRota, nil
}

// HoldForReapproval transitions EmRota -> EmRotaAguardandoLiberacao when a
// route update pushes the delivery back behind manual approval.
func (s Status) HoldForReapproval() (Status, error) {
	if s != EmRota {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to hold for re-approval", s.String()),
		)
	}

	return EmRotaAguardandoLiberacao, nil
}

// Start transitions EmRota -> EmEntrega when the driver picks the order up.
func (s Status) Start() (Status, error) {
	if s != EmRota {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to start delivering", s.String()),
		)
	}

	return EmEntrega, nil
}

// Complete transitions EmEntrega -> Entregue. Entregue is terminal.
func (s Status) Complete() (Status, error) {
	if s != EmEntrega {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Entregue, nil
}

// Fail transitions EmEntrega -> NaoEntregue. NaoEntregue is terminal.
func (s Status) Fail() (Status, error) {
	if s != EmEntrega {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to mark as undelivered", s.String()),
		)
	}

	return NaoEntregue, nil
}

// Detach transitions an order back to SemRota when it leaves a delivery:
// rejection of the route, removal from the order set, or route deletion.
//
// Valid transitions:
//   - EmRotaAguardandoLiberacao -> SemRota
//   - EmRota -> SemRota
//
// Orders already out for delivery or in a terminal status cannot be detached.
func (s Status) Detach() (Status, error) {
	if s != EmRotaAguardandoLiberacao && s != EmRota {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to detach from a delivery", s.String()),
		)
	}

	return SemRota, nil
}

package delivery

import (
	"fmt"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery route.
//
// State transitions:
//
//	ALiberar ──┬──> Iniciado ──> Finalizado
//	           │       │
//	           │       v (re-approval needed)
//	           │    ALiberar
//	           └──> Rejeitado
//
// Finalizado and Rejeitado are terminal; subsequent mutation requests must
// fail. String values use the platform's wire vocabulary.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// ALiberar means the route needs manual approval before execution starts.
	ALiberar

	// Iniciado means the route is released and under execution.
	Iniciado

	// Finalizado means every member order reached a terminal status. Terminal.
	Finalizado

	// Rejeitado means an approver rejected the route. Terminal.
	Rejeitado
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		ALiberar:   "A_LIBERAR",
		Iniciado:   "INICIADO",
		Finalizado: "FINALIZADO",
		Rejeitado:  "REJEITADO",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		ALiberar:   "A_LIBERAR",
		Iniciado:   "INICIADO",
		Finalizado: "FINALIZADO",
		Rejeitado:  "REJEITADO",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Finalizado || s == Rejeitado
}

// IsActive reports whether the delivery occupies its driver. A driver may
// have at most one delivery in an active status at a time.
func (s Status) IsActive() bool {
	return s == ALiberar || s == Iniciado
}

// Release transitions ALiberar -> Iniciado on liberation.
func (s Status) Release() (Status, error) {
	if s != ALiberar {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to release", s.String()),
		)
	}

	return Iniciado, nil
}

// Reject transitions ALiberar -> Rejeitado. Rejeitado is terminal.
func (s Status) Reject() (Status, error) {
	if s != ALiberar {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to reject", s.String()),
		)
	}

	return Rejeitado, nil
}

// Finish transitions Iniciado -> Finalizado when the last member order
// reaches a terminal status. Finalizado is terminal.
func (s Status) Finish() (Status, error) {
	if s != Iniciado {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to finish", s.String()),
		)
	}

	return Finalizado, nil
}

// HoldForReapproval transitions Iniciado -> ALiberar when a route update
// pushes recomputed aggregates back over an approval threshold.
func (s Status) HoldForReapproval() (Status, error) {
	if s != Iniciado {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to hold for re-approval", s.String()),
		)
	}

	return ALiberar, nil
}

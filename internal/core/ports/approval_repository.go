package ports

import (
	"context"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"
)

// ApprovalRepository defines the persistence contract for approval records.
// Records are append-only: there is no update or delete.
type ApprovalRepository interface {
	// Add persists a new approval record.
	Add(ctx context.Context, record delivery.Approval) error
}

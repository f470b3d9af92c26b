// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ApprovalRepoFactory provides access to the approval repository within a transaction.
	ApprovalRepoFactory interface {
		ApprovalRepository() ports.ApprovalRepository
	}

	// UoW manages transactions across the delivery, order and approval
	// aggregates. Every route operation persists its delivery update,
	// cascaded order updates and appended approval records through a single
	// UoW so they commit or roll back together.
	UoW interface {
		TxManager
		DeliveryRepoFactory
		OrderRepoFactory
		ApprovalRepoFactory
	}

	// UoWFactory creates new unit of work instances per command.
	UoWFactory interface {
		Create() UoW
	}
)

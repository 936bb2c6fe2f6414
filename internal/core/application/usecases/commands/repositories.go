// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, per-key serialization,
// transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
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

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BatchRepoFactory provides access to the batch repository within a transaction.
	BatchRepoFactory interface {
		BatchRepository() ports.BatchRepository
	}

	// WorkerRepoFactory provides access to the worker repository within a transaction.
	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	// SessionRepoFactory provides access to the session repository within a transaction.
	SessionRepoFactory interface {
		SessionRepository() ports.SessionRepository
	}

	// LogRepoFactory provides access to the work log repository within a transaction.
	LogRepoFactory interface {
		LogRepository() ports.LogRepository
	}

	// BatchMemberRepoFactory provides access to the membership ledger within a transaction.
	BatchMemberRepoFactory interface {
		BatchMemberRepository() ports.BatchMemberRepository
	}

	// TimerUoW manages transactions for individual timer operations:
	// session state changes plus the work log written on stop.
	TimerUoW interface {
		TxManager
		SessionRepoFactory
		LogRepoFactory
	}

	// TimerUoWFactory creates new timer unit of work instances.
	TimerUoWFactory interface {
		Create() TimerUoW
	}

	// OrderUoW manages transactions for order stage and worksheet
	// operations. Sessions are read for timer gating, never written.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		SessionRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BatchTimerUoW manages transactions for shared clock operations:
	// the batch's clock fields, the membership ledger, and the work
	// logs written when the clock stops.
	BatchTimerUoW interface {
		TxManager
		BatchRepoFactory
		BatchMemberRepoFactory
		LogRepoFactory
	}

	// BatchTimerUoWFactory creates new batch timer unit of work instances.
	BatchTimerUoWFactory interface {
		Create() BatchTimerUoW
	}

	// BatchUoW manages transactions for batch lifecycle operations that
	// coordinate the batch aggregate with its member orders.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   batchRepo := uow.BatchRepository()
	//   orderRepo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	BatchUoW interface {
		TxManager
		BatchRepoFactory
		OrderRepoFactory
		BatchMemberRepoFactory
	}

	// BatchUoWFactory creates new batch unit of work instances.
	BatchUoWFactory interface {
		Create() BatchUoW
	}

	// WorkerUoW manages transactions for worker registration.
	WorkerUoW interface {
		TxManager
		WorkerRepoFactory
	}

	// WorkerUoWFactory creates new worker unit of work instances.
	WorkerUoWFactory interface {
		Create() WorkerUoW
	}

	// InventoryUoW manages transactions for inventory snapshot refreshes,
	// which only touch order aggregates.
	InventoryUoW interface {
		TxManager
		OrderRepoFactory
	}

	// InventoryUoWFactory creates new inventory unit of work instances.
	InventoryUoWFactory interface {
		Create() InventoryUoW
	}
)

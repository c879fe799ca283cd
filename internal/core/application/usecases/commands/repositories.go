// Package commands contains the canonical events that drive the order state
// machine. Raw provider payloads are parsed into these commands at the
// adapter boundary; the domain layer never sees provider JSON.
//
// All commands follow a consistent pattern: guarded construction, validation,
// transaction management for the state transition, then sequential
// best-effort side effects with per-step failure isolation.
package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
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

	// TenantRepoFactory provides access to the tenant repository within a transaction.
	TenantRepoFactory interface {
		TenantRepository() ports.TenantRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions spanning order and tenant reads.
	// Used by handlers that resolve tenants or credentials while processing.
	UoW interface {
		TxManager
		OrderRepoFactory
		TenantRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-repository operations.
	UoWFactory interface {
		Create() UoW
	}
)

// saveOrder persists an order in its own short transaction. Handlers use it
// for flag and timeline writes after side effects, outside the transition's
// transaction.
func saveOrder(ctx context.Context, uow OrderUoW, aggregate *order.Order) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

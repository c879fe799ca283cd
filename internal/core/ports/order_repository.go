package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are keyed by (tenant id, order id) and are never deleted; terminal
// orders are retained for audit and idempotency checks.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order using partial-field
	// writes: only lifecycle state, timeline, flags and courier columns are
	// written, so concurrent events lose per field, not per document.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves one order within a tenant.
	Get(ctx context.Context, tenantID, orderID string) (*order.Order, error)

	// GetByPhone retrieves every order carrying the phone number, across
	// all tenants. This backs the fallback reply matcher and is the
	// expensive path: its cost grows with the total order count, and it is
	// only invoked after the embedded order reference failed to resolve.
	GetByPhone(ctx context.Context, phone kernel.Phone) ([]*order.Order, error)

	// GetInFlight retrieves a tenant's orders that have a courier tracking
	// number and a non-terminal status, i.e. the reconciliation sweep's
	// working set.
	GetInFlight(ctx context.Context, tenantID string) ([]*order.Order, error)
}

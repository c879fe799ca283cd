package commands

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var (
	ErrReconcileDeliveriesCommandIsNotConstructed = errors.New(
		"ReconcileDeliveriesCommand must be created via NewReconcileDeliveriesCommand constructor",
	)
)

// ReconcileDeliveriesCommand triggers one reconciliation sweep: for every
// tenant, every in-flight shipment is queried at the courier and observed
// status changes are fed back into the state machine.
type ReconcileDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileDeliveriesCommand creates a command to trigger a reconciliation
// sweep. It is parameterless; the handler discovers its working set itself.
func NewReconcileDeliveriesCommand() ReconcileDeliveriesCommand {
	return ReconcileDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ReconcileDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileDeliveriesCommandIsNotConstructed)
}

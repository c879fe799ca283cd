package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/tenant"
	"orderflow/internal/core/ports"
)

// courierQueryTimeout bounds a single courier status lookup so one slow
// shipment cannot stall the whole sweep.
const courierQueryTimeout = 10 * time.Second

// CourierStatusObserver applies one observed courier status to the order
// state machine.
type CourierStatusObserver interface {
	Handle(ctx context.Context, cmd ObserveCourierStatusCommand) error
}

// ReconcileDeliveriesCommandHandler orchestrates a reconciliation sweep over
// all tenants. Every failure is scoped to its tenant or order: a broken
// courier credential or an unreachable shipment is logged and skipped, and
// the sweep carries on with the rest.
type ReconcileDeliveriesCommandHandler struct {
	uowFactory UoWFactory
	courier    ports.CourierClient
	observer   CourierStatusObserver
	logger     *slog.Logger
}

// NewReconcileDeliveriesCommandHandler creates a handler for reconciliation sweeps.
func NewReconcileDeliveriesCommandHandler(
	uowFactory UoWFactory,
	courier ports.CourierClient,
	observer CourierStatusObserver,
	logger *slog.Logger,
) ReconcileDeliveriesCommandHandler {
	return ReconcileDeliveriesCommandHandler{
		uowFactory: uowFactory,
		courier:    courier,
		observer:   observer,
		logger:     logger.With("component", "reconcile_deliveries_handler"),
	}
}

// Handle runs one sweep. The working set is read in a short transaction;
// courier lookups and the resulting transitions run outside it, each in its
// own transaction, so a long sweep never holds locks.
func (h *ReconcileDeliveriesCommandHandler) Handle(ctx context.Context, cmd ReconcileDeliveriesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	tenants, err := h.loadTenants(ctx)
	if err != nil {
		return err
	}

	for _, tn := range tenants {
		if err = ctx.Err(); err != nil {
			return err
		}

		h.reconcileTenant(ctx, tn)
	}

	return nil
}

func (h *ReconcileDeliveriesCommandHandler) loadTenants(ctx context.Context) ([]*tenant.Tenant, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.TenantRepository().List(ctx)
}

func (h *ReconcileDeliveriesCommandHandler) reconcileTenant(ctx context.Context, tn *tenant.Tenant) {
	secrets, orders, err := h.loadWorkingSet(ctx, tn.ID())
	if err != nil {
		h.logger.ErrorContext(ctx, "tenant skipped in sweep",
			"tenant_id", tn.ID(), "error", err)
		return
	}

	if secrets.CourierAPIKey == "" {
		return
	}

	for _, o := range orders {
		h.reconcileOrder(ctx, o, secrets)
	}
}

func (h *ReconcileDeliveriesCommandHandler) loadWorkingSet(
	ctx context.Context, tenantID string,
) (*tenant.Secrets, []*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	secrets, err := uow.TenantRepository().GetSecrets(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}

	orders, err := uow.OrderRepository().GetInFlight(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}

	return secrets, orders, nil
}

func (h *ReconcileDeliveriesCommandHandler) reconcileOrder(ctx context.Context, o *order.Order, secrets *tenant.Secrets) {
	queryCtx, cancel := context.WithTimeout(ctx, courierQueryTimeout)
	defer cancel()

	observed, err := h.courier.QueryStatus(queryCtx, o.Courier().TrackingNumber, secrets)
	if err != nil {
		h.logger.ErrorContext(ctx, "courier status lookup failed",
			"tenant_id", o.TenantID(), "order_id", o.ID(),
			"tracking_number", o.Courier().TrackingNumber, "error", err)
		return
	}

	if observed == "" || !o.CourierStatusChanged(observed) {
		return
	}

	observeCmd, err := NewObserveCourierStatusCommand(o.TenantID(), o.ID(), observed)
	if err != nil {
		h.logger.ErrorContext(ctx, "observation rejected",
			"tenant_id", o.TenantID(), "order_id", o.ID(), "error", err)
		return
	}

	if err = h.observer.Handle(ctx, observeCmd); err != nil {
		h.logger.ErrorContext(ctx, "observation not applied",
			"tenant_id", o.TenantID(), "order_id", o.ID(),
			"observed_status", observed, "error", err)
	}
}

package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// ObserveCourierStatusCommandHandler drives the CourierStatusObserved
// transition. An observed status that maps to a lifecycle event advances the
// order; everything else is just recorded so the next sweep can tell a change
// from a repeat. Terminal orders and unchanged statuses are no-ops.
type ObserveCourierStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewObserveCourierStatusCommandHandler creates a handler for courier status observations.
func NewObserveCourierStatusCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier, logger *slog.Logger) ObserveCourierStatusCommandHandler {
	return ObserveCourierStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "observe_courier_status_handler"),
	}
}

// Handle processes one observed courier status. Couriers report in their own
// vocabulary and at their own pace, so observations may skip the
// out-for-delivery step entirely; the transition guards absorb that.
func (h *ObserveCourierStatusCommandHandler) Handle(ctx context.Context, cmd ObserveCourierStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	if o.Status().IsTerminal() {
		return nil
	}

	if !o.CourierStatusChanged(cmd.ObservedStatus()) {
		return nil
	}

	now := time.Now()
	notify := func(context.Context, *order.Order) {}

	switch classifyCourierStatus(cmd.ObservedStatus()) {
	case courierEventDelivered:
		if err = o.Deliver(cmd.ObservedStatus(), now); err != nil {
			h.logger.WarnContext(ctx, "delivered observation not applicable, recorded only",
				"tenant_id", o.TenantID(), "order_id", o.ID(),
				"status", o.Status().String(), "error", err)
			o.RecordCourierStatus(cmd.ObservedStatus())
			break
		}
		notify = h.notifyDelivered
	case courierEventOutForDelivery:
		if err = o.StartDelivery(cmd.ObservedStatus()); err != nil {
			h.logger.WarnContext(ctx, "out-for-delivery observation not applicable, recorded only",
				"tenant_id", o.TenantID(), "order_id", o.ID(),
				"status", o.Status().String(), "error", err)
			o.RecordCourierStatus(cmd.ObservedStatus())
			break
		}
		notify = h.notifyOutForDelivery
	default:
		o.RecordCourierStatus(cmd.ObservedStatus())
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if !o.Customer().Phone.IsZero() {
		notify(ctx, o)
	}

	return nil
}

func (h *ObserveCourierStatusCommandHandler) notifyDelivered(ctx context.Context, o *order.Order) {
	if err := h.notifier.Send(ctx, deliveredMessage(o)); err != nil {
		h.logger.ErrorContext(ctx, "delivered notification send failed",
			"tenant_id", o.TenantID(), "order_id", o.ID(), "error", err)
		return
	}

	h.recordSend(ctx, o)
}

func (h *ObserveCourierStatusCommandHandler) notifyOutForDelivery(ctx context.Context, o *order.Order) {
	if err := h.notifier.Send(ctx, shippedMessage(o)); err != nil {
		h.logger.ErrorContext(ctx, "out-for-delivery notification send failed",
			"tenant_id", o.TenantID(), "order_id", o.ID(), "error", err)
		return
	}

	h.recordSend(ctx, o)
}

func (h *ObserveCourierStatusCommandHandler) recordSend(ctx context.Context, o *order.Order) {
	o.RecordMessageSent(time.Now())

	if err := saveOrder(ctx, h.uowFactory.Create(), o); err != nil {
		h.logger.ErrorContext(ctx, "message timestamp not persisted",
			"tenant_id", o.TenantID(), "order_id", o.ID(), "error", err)
	}
}

type courierEvent int

const (
	courierEventNone courierEvent = iota
	courierEventOutForDelivery
	courierEventDelivered
)

// classifyCourierStatus maps a courier's free-form status string to a
// lifecycle event. Matching is case-insensitive and tolerant of the
// underscore/space variants couriers use.
func classifyCourierStatus(observed string) courierEvent {
	normalized := strings.ToLower(strings.TrimSpace(observed))
	normalized = strings.ReplaceAll(normalized, "_", " ")

	switch normalized {
	case "delivered":
		return courierEventDelivered
	case "out for delivery", "dispatched":
		return courierEventOutForDelivery
	default:
		return courierEventNone
	}
}

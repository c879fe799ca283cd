package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// ReportFulfillmentCommandHandler drives the FulfillmentReported transition:
// a confirmed order becomes fulfilled and the customer is told the order
// shipped. An unknown order or an order in any other status is a logged no-op,
// never an error back to the webhook sender.
type ReportFulfillmentCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewReportFulfillmentCommandHandler creates a handler for storefront fulfillment events.
func NewReportFulfillmentCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier, logger *slog.Logger) ReportFulfillmentCommandHandler {
	return ReportFulfillmentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "report_fulfillment_handler"),
	}
}

// Handle processes one FulfillmentReported event. The fulfilled_sent flag is
// raised only after a successful send, so a redelivered webhook retries a
// failed notification but never duplicates a delivered one.
func (h *ReportFulfillmentCommandHandler) Handle(ctx context.Context, cmd ReportFulfillmentCommand) error {
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
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "fulfillment for unknown order, dropped",
				"tenant_id", cmd.TenantID(), "order_id", cmd.OrderID())
			return nil
		}

		return err
	}

	now := time.Now()

	if err = o.Fulfill(now); err != nil {
		h.logger.InfoContext(ctx, "fulfillment not applicable in current status, dropped",
			"tenant_id", o.TenantID(), "order_id", o.ID(),
			"status", o.Status().String(), "error", err)
		return nil
	}

	if cmd.TrackingNumber() != "" && o.Courier().TrackingNumber == "" {
		if err = o.AttachTracking(cmd.TrackingNumber(), now); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if o.Flags().FulfilledSent || o.Customer().Phone.IsZero() {
		return nil
	}

	if err = h.notifier.Send(ctx, shippedMessage(o)); err != nil {
		h.logger.ErrorContext(ctx, "shipped notification send failed",
			"tenant_id", o.TenantID(), "order_id", o.ID(), "error", err)
		return nil
	}

	o.MarkFulfilledNoticeSent(time.Now())

	if err = saveOrder(ctx, h.uowFactory.Create(), o); err != nil {
		h.logger.ErrorContext(ctx, "fulfilled flag not persisted",
			"tenant_id", o.TenantID(), "order_id", o.ID(), "error", err)
	}

	return nil
}

package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// CreateOrderCommandHandler drives the OrderCreated transition: it creates
// the order in pending status and asks the customer to confirm it.
//
// The handler is idempotent under webhook redelivery: a known order id is a
// no-op once the confirmation request was sent, and the confirmation_sent
// flag is only raised after a successful send, so a failed send is retried by
// the next redelivery instead of being lost.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for storefront order creation events.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier, logger *slog.Logger) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle processes one OrderCreated event. The state write commits before the
// confirmation request goes out; a notification failure is logged and never
// reverts the created order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.TenantID(), cmd.OrderID())
	switch {
	case err == nil:
		// Redelivered webhook for a known order.
	case errors.Is(err, errs.ErrObjectNotFound):
		o, err = order.NewOrder(cmd.TenantID(), cmd.OrderID(), cmd.OrderName(),
			cmd.Customer(), cmd.Amount(), cmd.Product(), now)
		if err != nil {
			return err
		}

		if err = orderRepo.Add(ctx, o); err != nil {
			return err
		}
	default:
		return err
	}

	tn, err := uow.TenantRepository().Get(ctx, cmd.TenantID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if o.Flags().ConfirmationSent {
		return nil
	}

	if o.Customer().Phone.IsZero() {
		h.logger.WarnContext(ctx, "order has no customer phone, confirmation request skipped",
			"tenant_id", o.TenantID(), "order_id", o.ID())
		return nil
	}

	if err = h.notifier.Send(ctx, confirmationRequestMessage(o, tn.ShopName())); err != nil {
		h.logger.ErrorContext(ctx, "confirmation request send failed",
			"tenant_id", o.TenantID(), "order_id", o.ID(), "error", err)
		return nil
	}

	o.MarkConfirmationSent(time.Now())

	if err = saveOrder(ctx, h.uowFactory.Create(), o); err != nil {
		h.logger.ErrorContext(ctx, "confirmation flag not persisted",
			"tenant_id", o.TenantID(), "order_id", o.ID(), "error", err)
	}

	return nil
}

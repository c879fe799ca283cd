package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/tenant"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// ProcessReplyCommandHandler drives the CustomerReplied transition: a confirm
// or cancel reply on a pending order moves it to its decided state; anything
// else gets the current status restated without changing it.
//
// Matching is two-phase. The embedded order reference from the quick-reply
// payload is tried first; when it is absent or resolves to nothing, the reply
// falls back to a cross-tenant phone lookup picking the most recent
// conversation. A reply that matches no order at all is dropped.
type ProcessReplyCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.ReplyMatcher
	notifier   ports.Notifier
	courier    ports.CourierClient
	storefront ports.StorefrontClient
	logger     *slog.Logger
}

// NewProcessReplyCommandHandler creates a handler for inbound customer replies.
func NewProcessReplyCommandHandler(
	uowFactory UoWFactory,
	matcher services.ReplyMatcher,
	notifier ports.Notifier,
	courier ports.CourierClient,
	storefront ports.StorefrontClient,
	logger *slog.Logger,
) ProcessReplyCommandHandler {
	return ProcessReplyCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		notifier:   notifier,
		courier:    courier,
		storefront: storefront,
		logger:     logger.With("component", "process_reply_handler"),
	}
}

// Handle processes one CustomerReplied event. The decision write commits
// before any side effect runs; note updates, courier booking and the
// acknowledgement message are each best-effort and isolated from one another.
func (h *ProcessReplyCommandHandler) Handle(ctx context.Context, cmd ProcessReplyCommand) error {
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

	o, err := h.matchOrder(ctx, uow, cmd)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotMatched) {
			h.logger.InfoContext(ctx, "reply matched no order, dropped",
				"phone", cmd.Phone().String())
			return nil
		}

		return err
	}

	tn, err := uow.TenantRepository().Get(ctx, o.TenantID())
	if err != nil {
		return err
	}

	secrets, err := uow.TenantRepository().GetSecrets(ctx, o.TenantID())
	if err != nil {
		return err
	}

	now := time.Now()
	o.RecordReply(now)

	decided := false
	if o.Status() == order.Pending {
		switch cmd.Action() {
		case ActionConfirm:
			if err = o.Confirm(now); err != nil {
				return err
			}
			decided = true
		case ActionCancel:
			if err = o.Cancel(now); err != nil {
				return err
			}
			decided = true
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if !decided {
		h.restateStatus(ctx, o)
		return nil
	}

	h.decisionEffects(ctx, o, tn, secrets)
	return nil
}

// matchOrder resolves the reply to an order: the embedded reference first,
// then the phone fallback.
func (h *ProcessReplyCommandHandler) matchOrder(
	ctx context.Context, uow UoW, cmd ProcessReplyCommand,
) (*order.Order, error) {
	orderRepo := uow.OrderRepository()

	if cmd.HasHints() {
		o, err := orderRepo.Get(ctx, cmd.TenantHint(), cmd.OrderHint())
		if err == nil {
			return o, nil
		}

		h.logger.WarnContext(ctx, "embedded order reference did not resolve, falling back to phone lookup",
			"tenant_id", cmd.TenantHint(), "order_id", cmd.OrderHint(), "error", err)
	}

	candidates, err := orderRepo.GetByPhone(ctx, cmd.Phone())
	if err != nil {
		return nil, err
	}

	return h.matcher.Match(cmd.Phone(), candidates)
}

// decisionEffects runs the post-commit side effects of a confirm or cancel
// decision. Each step is attempted even when an earlier one failed.
func (h *ProcessReplyCommandHandler) decisionEffects(
	ctx context.Context, o *order.Order, tn *tenant.Tenant, secrets *tenant.Secrets,
) {
	confirmed := o.Status() == order.Confirmed

	note := fmt.Sprintf("Order %s by customer over WhatsApp", decisionWord(confirmed))
	if err := h.storefront.UpdateOrderNote(ctx, tn, secrets, o.ID(), note); err != nil {
		h.logger.ErrorContext(ctx, "storefront note update failed",
			"tenant_id", o.TenantID(), "order_id", o.ID(), "error", err)
	}

	if confirmed && secrets.AutoBookCourier && o.Courier().TrackingNumber == "" {
		h.bookCourier(ctx, o, secrets)
	}

	if !o.Flags().ReplyAckSent {
		msg := cancelledReplyMessage(o, tn.ShopName())
		if confirmed {
			msg = confirmedReplyMessage(o, tn.ShopName())
		}

		if err := h.notifier.Send(ctx, msg); err != nil {
			h.logger.ErrorContext(ctx, "decision acknowledgement send failed",
				"tenant_id", o.TenantID(), "order_id", o.ID(), "error", err)
		} else {
			o.MarkReplyAckSent(time.Now())
		}
	}

	if err := saveOrder(ctx, h.uowFactory.Create(), o); err != nil {
		h.logger.ErrorContext(ctx, "post-decision order state not persisted",
			"tenant_id", o.TenantID(), "order_id", o.ID(), "error", err)
	}
}

// bookCourier books a shipment for a freshly confirmed order and attaches the
// tracking number. A booking failure leaves the order unbooked; the tenant
// books manually in that case.
func (h *ProcessReplyCommandHandler) bookCourier(ctx context.Context, o *order.Order, secrets *tenant.Secrets) {
	trackingNumber, err := h.courier.Book(ctx, o, secrets)
	if err != nil {
		h.logger.ErrorContext(ctx, "courier booking failed",
			"tenant_id", o.TenantID(), "order_id", o.ID(), "error", err)
		return
	}

	if err = o.AttachTracking(trackingNumber, time.Now()); err != nil {
		h.logger.ErrorContext(ctx, "tracking number not attached",
			"tenant_id", o.TenantID(), "order_id", o.ID(),
			"tracking_number", trackingNumber, "error", err)
		return
	}

	h.logger.InfoContext(ctx, "courier booked",
		"tenant_id", o.TenantID(), "order_id", o.ID(), "tracking_number", trackingNumber)
}

// restateStatus answers a reply that carries no valid decision for the order's
// current state. The order is not transitioned; the customer just gets the
// status back.
func (h *ProcessReplyCommandHandler) restateStatus(ctx context.Context, o *order.Order) {
	if err := h.notifier.Send(ctx, statusRestatementMessage(o)); err != nil {
		h.logger.ErrorContext(ctx, "status restatement send failed",
			"tenant_id", o.TenantID(), "order_id", o.ID(), "error", err)
		return
	}

	o.RecordMessageSent(time.Now())

	if err := saveOrder(ctx, h.uowFactory.Create(), o); err != nil {
		h.logger.ErrorContext(ctx, "message timestamp not persisted",
			"tenant_id", o.TenantID(), "order_id", o.ID(), "error", err)
	}
}

func decisionWord(confirmed bool) string {
	if confirmed {
		return "confirmed"
	}

	return "cancelled"
}

package commands

import (
	"strconv"
	"strings"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// Message template names registered with the messaging provider.
const (
	// TemplateOrderConfirmation asks the customer to confirm or cancel a
	// freshly created order; it carries the confirm/cancel quick replies.
	TemplateOrderConfirmation = "order_confirmation"

	// TemplateOrderConfirmedReply acknowledges a confirmation tap.
	TemplateOrderConfirmedReply = "order_confirmed"

	// TemplateOrderCancelledReply acknowledges a cancellation tap.
	TemplateOrderCancelledReply = "order_cancelled"

	// TemplateOrderShipped announces fulfillment or out-for-delivery.
	TemplateOrderShipped = "order_shipped"

	// TemplateOrderDelivered announces delivery.
	TemplateOrderDelivered = "order_delivered"

	// TemplateOrderStatus restates the current order status, used when a
	// reply arrives for an order that is no longer pending.
	TemplateOrderStatus = "order_status"
)

// Reply action identifiers embedded in quick-reply payloads.
const (
	ActionConfirm = "CONFIRM_ORDER"
	ActionCancel  = "CANCEL_ORDER"
)

const replyPayloadSeparator = ":"

// ReplyActionPayload builds the "ACTION:tenantID:orderID" payload embedded in
// outbound quick replies. The customer's client echoes it back verbatim,
// giving the reply handler its fast-path order reference.
func ReplyActionPayload(action, tenantID, orderID string) string {
	return strings.Join([]string{action, tenantID, orderID}, replyPayloadSeparator)
}

// ParseReplyActionPayload splits an echoed quick-reply payload back into its
// parts. ok is false for free-text or foreign payloads, which then take the
// fallback phone-lookup path.
func ParseReplyActionPayload(payload string) (action, tenantID, orderID string, ok bool) {
	parts := strings.Split(payload, replyPayloadSeparator)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", false
	}

	if parts[0] != ActionConfirm && parts[0] != ActionCancel {
		return "", "", "", false
	}

	return parts[0], parts[1], parts[2], true
}

// confirmationRequestMessage builds the initial confirm-or-cancel prompt.
func confirmationRequestMessage(o *order.Order, shopName string) ports.Message {
	return ports.Message{
		Phone:    o.Customer().Phone,
		Template: TemplateOrderConfirmation,
		Params: []string{
			o.Customer().Name,
			o.Name(),
			o.Product().Name,
			strconv.Itoa(o.Product().Quantity),
			shopName,
			o.Amount().Total,
			o.Amount().Currency,
		},
		Actions: []ports.Action{
			{ID: ReplyActionPayload(ActionConfirm, o.TenantID(), o.ID()), Title: "Confirm"},
			{ID: ReplyActionPayload(ActionCancel, o.TenantID(), o.ID()), Title: "Cancel"},
		},
	}
}

// confirmedReplyMessage acknowledges a successful confirmation.
func confirmedReplyMessage(o *order.Order, shopName string) ports.Message {
	return ports.Message{
		Phone:    o.Customer().Phone,
		Template: TemplateOrderConfirmedReply,
		Params:   []string{o.Customer().Name, o.Name(), shopName},
	}
}

// cancelledReplyMessage acknowledges a successful cancellation.
func cancelledReplyMessage(o *order.Order, shopName string) ports.Message {
	return ports.Message{
		Phone:    o.Customer().Phone,
		Template: TemplateOrderCancelledReply,
		Params:   []string{o.Customer().Name, o.Name(), shopName},
	}
}

// shippedMessage announces that the order is on its way.
func shippedMessage(o *order.Order) ports.Message {
	return ports.Message{
		Phone:    o.Customer().Phone,
		Template: TemplateOrderShipped,
		Params:   []string{o.Customer().Name, o.Name(), o.Courier().TrackingNumber},
	}
}

// deliveredMessage announces delivery.
func deliveredMessage(o *order.Order) ports.Message {
	return ports.Message{
		Phone:    o.Customer().Phone,
		Template: TemplateOrderDelivered,
		Params:   []string{o.Customer().Name, o.Name()},
	}
}

// statusRestatementMessage restates the current status without changing it,
// the idempotent answer to repeated or late replies.
func statusRestatementMessage(o *order.Order) ports.Message {
	return ports.Message{
		Phone:    o.Customer().Phone,
		Template: TemplateOrderStatus,
		Params:   []string{o.Customer().Name, o.Name(), o.Status().String()},
	}
}

package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/tenant"
)

// Action is a quick-reply button attached to an outbound message. The ID is
// round-tripped back in the customer's reply and carries the embedded
// "ACTION:tenantID:orderID" payload the fast-path matcher relies on.
type Action struct {
	ID    string
	Title string
}

// Message is one outbound templated customer notification.
type Message struct {
	Phone    kernel.Phone
	Template string
	Params   []string
	Actions  []Action

	// LinkURL optionally attaches a link button (e.g. shipment tracking).
	LinkURL string
}

// Notifier sends templated messages to customers. Sends are best-effort:
// callers log a failure and move on, they never retry here and never roll
// back the state transition that triggered the message.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// CourierClient books shipments and reads shipment status at the courier.
type CourierClient interface {
	// Book creates a shipment for a confirmed order and returns its
	// tracking number. Callers must check for an existing tracking number
	// first; booking is attempted at most once per order. A failure leaves
	// the order untouched.
	Book(ctx context.Context, aggregate *order.Order, secrets *tenant.Secrets) (string, error)

	// QueryStatus returns the courier's current status string for a shipment.
	QueryStatus(ctx context.Context, trackingNumber string, secrets *tenant.Secrets) (string, error)
}

// StorefrontClient talks to the commerce platform's admin API.
type StorefrontClient interface {
	// UpdateOrderNote records a note on the platform-side order, e.g. that
	// the customer confirmed over the messaging channel. Best-effort.
	UpdateOrderNote(ctx context.Context, tn *tenant.Tenant, secrets *tenant.Secrets, orderID, note string) error
}

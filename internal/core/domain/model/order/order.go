package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrTrackingAlreadyAttached is returned when a courier booking is
	// recorded for an order that already carries a tracking number.
	ErrTrackingAlreadyAttached = errors.New("tracking number is already attached")
)

// Customer identifies the order recipient.
type Customer struct {
	Name    string
	Phone   kernel.Phone
	Address string
	City    string
}

// Amount is the order total. Total is kept as the storefront's decimal string
// so it round-trips into message templates without reformatting.
type Amount struct {
	Total    string
	Currency string
}

// Product summarizes the primary line item. It is not a line-item ledger;
// only the name and quantity shown in customer messages are kept.
type Product struct {
	Name     string
	Quantity int
}

// Timeline records when each lifecycle event happened. CreatedAt is always
// set; the rest are nil until their event occurs.
type Timeline struct {
	CreatedAt         time.Time
	ConfirmedAt       *time.Time
	CancelledAt       *time.Time
	FulfilledAt       *time.Time
	DeliveredAt       *time.Time
	LastMessageSentAt *time.Time
	LastReplyAt       *time.Time
}

// NotificationFlags marks which notification kinds were already delivered,
// bounding duplicate sends under at-least-once webhook delivery.
type NotificationFlags struct {
	ConfirmationSent bool
	FulfilledSent    bool
	ReplyAckSent     bool
}

// CourierInfo holds the shipment booking state. TrackingNumber is set at most
// once; LastStatus is the most recent status string observed at the courier.
type CourierInfo struct {
	TrackingNumber string
	LastStatus     string
	BookedAt       *time.Time
}

// Order is the aggregate root for a single storefront order and the subject
// of the lifecycle state machine. It is owned exclusively by its tenant;
// order ids are unique per tenant, not globally.
//
// Invariants maintained by this type:
//   - status only moves forward along the Status transition graph
//   - exactly one of ConfirmedAt/CancelledAt is ever set
//   - the courier tracking number is attached at most once
type Order struct {
	id       string
	tenantID string
	name     string

	customer Customer
	amount   Amount
	product  Product

	status   Status
	timeline Timeline
	flags    NotificationFlags
	courier  CourierInfo

	isConstructed bool
}

// NewOrder creates a pending Order for a tenant. The tenant id, order id and
// order name are required; the customer phone may be zero (such orders are
// stored but no conversation can be driven for them).
func NewOrder(tenantID, id, name string, customer Customer, amount Amount, product Product, createdAt time.Time) (*Order, error) {
	o := &Order{
		customer:      customer,
		amount:        amount,
		product:       product,
		status:        Pending,
		timeline:      Timeline{CreatedAt: createdAt},
		isConstructed: true,
	}

	if err := errors.Join(
		o.setTenantID(tenantID),
		o.setID(id),
		o.setName(name),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an Order from persistence without re-running creation
// rules. Intended for repository DTO mapping only.
func RestoreOrder(
	tenantID, id, name string,
	customer Customer,
	amount Amount,
	product Product,
	status Status,
	timeline Timeline,
	flags NotificationFlags,
	courier CourierInfo,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		customer:      customer,
		amount:        amount,
		product:       product,
		status:        status,
		timeline:      timeline,
		flags:         flags,
		courier:       courier,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setTenantID(tenantID),
		o.setID(id),
		o.setName(name),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by tenant id and order id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.tenantID == other.tenantID && o.id == other.id
}

// ID returns the platform-assigned order identifier.
func (o *Order) ID() string {
	return o.id
}

// TenantID returns the id of the tenant owning this order.
func (o *Order) TenantID() string {
	return o.tenantID
}

// Name returns the human-readable order reference, e.g. "#1001".
func (o *Order) Name() string {
	return o.name
}

// Customer returns the order recipient.
func (o *Order) Customer() Customer {
	return o.customer
}

// Amount returns the order total.
func (o *Order) Amount() Amount {
	return o.amount
}

// Product returns the primary line-item summary.
func (o *Order) Product() Product {
	return o.product
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Timeline returns the lifecycle timestamps.
func (o *Order) Timeline() Timeline {
	return o.timeline
}

// Flags returns the notification dedupe flags.
func (o *Order) Flags() NotificationFlags {
	return o.flags
}

// Courier returns the shipment booking state.
func (o *Order) Courier() CourierInfo {
	return o.courier
}

// LastActivityAt returns the later of the last outbound message time and the
// creation time. The fallback reply matcher uses it to pick the most recent
// conversation for a phone number.
func (o *Order) LastActivityAt() time.Time {
	if o.timeline.LastMessageSentAt != nil && o.timeline.LastMessageSentAt.After(o.timeline.CreatedAt) {
		return *o.timeline.LastMessageSentAt
	}

	return o.timeline.CreatedAt
}

// Confirm moves the order from Pending to Confirmed and stamps ConfirmedAt.
// Any other source state returns an error and leaves the order untouched.
func (o *Order) Confirm(now time.Time) error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.timeline.ConfirmedAt = &now
	return nil
}

// Cancel moves the order from Pending to Cancelled and stamps CancelledAt.
func (o *Order) Cancel(now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.timeline.CancelledAt = &now
	return nil
}

// Fulfill moves the order from Confirmed to Fulfilled and stamps FulfilledAt.
func (o *Order) Fulfill(now time.Time) error {
	newStatus, err := o.status.Fulfill()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.timeline.FulfilledAt = &now
	return nil
}

// StartDelivery advances the order to OutForDelivery and records the observed
// courier status string.
func (o *Order) StartDelivery(observedStatus string) error {
	newStatus, err := o.status.StartDelivery()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courier.LastStatus = observedStatus
	return nil
}

// Deliver advances the order to Delivered, stamps DeliveredAt and records the
// observed courier status string.
func (o *Order) Deliver(observedStatus string, now time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courier.LastStatus = observedStatus
	o.timeline.DeliveredAt = &now
	return nil
}

// AttachTracking records a successful courier booking. Booking is attempted
// at most once per order, so a second attach is an error.
func (o *Order) AttachTracking(trackingNumber string, now time.Time) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}

	if o.courier.TrackingNumber != "" {
		return ErrTrackingAlreadyAttached
	}

	o.courier.TrackingNumber = trackingNumber
	o.courier.BookedAt = &now
	return nil
}

// CourierStatusChanged reports whether an observed courier status differs
// from the last stored one. The reconciliation sweep uses this as its dedupe
// guard before re-entering the state machine.
func (o *Order) CourierStatusChanged(observedStatus string) bool {
	return o.courier.LastStatus != observedStatus
}

// RecordCourierStatus stores an observed courier status that does not map to
// a lifecycle transition (e.g. "In Transit"), so the next sweep can tell it
// apart from a change.
func (o *Order) RecordCourierStatus(observedStatus string) {
	o.courier.LastStatus = observedStatus
}

// RecordMessageSent stamps the time of the latest outbound customer message.
func (o *Order) RecordMessageSent(now time.Time) {
	o.timeline.LastMessageSentAt = &now
}

// RecordReply stamps the time of the latest inbound customer reply.
func (o *Order) RecordReply(now time.Time) {
	o.timeline.LastReplyAt = &now
}

// MarkConfirmationSent records that the confirmation request notification was
// delivered, so webhook redelivery does not send it again.
func (o *Order) MarkConfirmationSent(now time.Time) {
	o.flags.ConfirmationSent = true
	o.RecordMessageSent(now)
}

// MarkFulfilledNoticeSent records that the shipped notification for the
// fulfillment event was delivered.
func (o *Order) MarkFulfilledNoticeSent(now time.Time) {
	o.flags.FulfilledSent = true
	o.RecordMessageSent(now)
}

// MarkReplyAckSent records that the confirm/cancel acknowledgement was
// delivered to the customer.
func (o *Order) MarkReplyAckSent(now time.Time) {
	o.flags.ReplyAckSent = true
	o.RecordMessageSent(now)
}

func (o *Order) setTenantID(tenantID string) error {
	if tenantID == "" {
		return errs.NewValueIsRequiredError("tenantID")
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("orderID")
	}
	o.id = id
	return nil
}

func (o *Order) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("orderName")
	}
	o.name = name
	return nil
}

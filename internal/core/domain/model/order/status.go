package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine whose transitions only ever move forward:
//
//	Pending ──┬──> Confirmed ──> Fulfilled ──> OutForDelivery ──> Delivered
//	          │
//	          └──> Cancelled
//
// Cancelled and Delivered are terminal. Courier observations may skip
// intermediate states (a missed fulfillment webhook must not wedge an order),
// but no transition ever moves a status backwards or out of a terminal state.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order exists and the customer has
	// been (or is about to be) asked to confirm it.
	Pending

	// Confirmed means the customer confirmed the order.
	Confirmed

	// Cancelled means the customer cancelled the order. Terminal.
	Cancelled

	// Fulfilled means the storefront reported the order as fulfilled.
	Fulfilled

	// OutForDelivery means the courier reported the shipment as out for delivery.
	OutForDelivery

	// Delivered means the courier reported the shipment as delivered. Terminal.
	Delivered
)

// getStatusStrings returns the string representation for every Status,
// including Unknown.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Cancelled:      "cancelled",
		Fulfilled:      "fulfilled",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
	}
}

// getValidStatusStrings returns only the statuses an order may legitimately hold.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "pending",
		Confirmed:      "confirmed",
		Cancelled:      "cancelled",
		Fulfilled:      "fulfilled",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
	}
}

// StatusFromString parses a persisted status string back into a Status.
// Returns an error for anything that is not a valid status name.
func StatusFromString(raw string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == raw {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", raw))
}

// Validate checks that the Status holds one of the defined order states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status. Implements fmt.Stringer
// and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Delivered
}

// Confirm transitions the status to Confirmed.
//
// The only valid source state is Pending: a customer reply cannot confirm an
// order that was already decided, fulfilled or delivered.
func (s Status) Confirm() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to confirm", s))
	}

	return Confirmed, nil
}

// Cancel transitions the status to Cancelled.
//
// The only valid source state is Pending. Once an order is confirmed the
// customer can no longer cancel it over the messaging channel.
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s))
	}

	return Cancelled, nil
}

// Fulfill transitions the status to Fulfilled.
//
// Valid only from Confirmed: an unconfirmed order has nothing to fulfill and
// a fulfilled/delivered order reports this as a redundant webhook.
func (s Status) Fulfill() (Status, error) {
	if s != Confirmed {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to fulfill", s))
	}

	return Fulfilled, nil
}

// StartDelivery transitions the status to OutForDelivery.
//
// Valid from Confirmed or Fulfilled. Allowing the jump from Confirmed keeps
// courier reconciliation working when the fulfillment webhook was lost.
func (s Status) StartDelivery() (Status, error) {
	if s != Confirmed && s != Fulfilled {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to start delivery", s))
	}

	return OutForDelivery, nil
}

// Deliver transitions the status to Delivered.
//
// Valid from Confirmed, Fulfilled or OutForDelivery, again tolerating skipped
// intermediate observations. Pending and the terminal states are rejected.
func (s Status) Deliver() (Status, error) {
	if s != Confirmed && s != Fulfilled && s != OutForDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s))
	}

	return Delivered, nil
}

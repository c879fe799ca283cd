// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root owning identity, customer details, timeline,
//     notification dedupe flags and courier booking state
//   - Status: the state machine enforcing forward-only lifecycle transitions
//
// Key business rules:
//   - pending orders move to confirmed or cancelled through customer replies
//   - confirmed orders move to fulfilled, out_for_delivery and delivered
//     through storefront and courier observations
//   - cancelled and delivered are terminal
//   - a transition whose guard fails is reported as an error so callers can
//     treat it as a defined no-op rather than a fault
//   - the courier tracking number is attached at most once per order
//
// The aggregate uses private fields and validated mutation methods so every
// state change passes through the transition guards.
package order

// Package kernel provides shared value objects used across domain aggregates.
//
// The package currently contains:
//   - Phone: a normalized customer phone number with total, idempotent
//     normalization over arbitrary provider input
//
// Value objects in this package are immutable, compared by value, and never
// expose partially-initialized state. Anything provider-specific (payload
// shapes, headers, signature schemes) belongs in the adapters, not here.
package kernel

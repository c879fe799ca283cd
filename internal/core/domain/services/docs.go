// Package services provides domain services that operate across aggregates.
//
// The package includes:
//   - ReplyMatcher: resolves a customer reply to its most likely order when
//     the reply carries no embedded order reference
//
// Domain services stay pure: they select and decide over aggregates handed to
// them and leave persistence and side effects to the application layer.
package services

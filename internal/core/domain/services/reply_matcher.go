package services

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// ErrOrderNotMatched is returned when no candidate order belongs to the
// replying customer's phone number.
var ErrOrderNotMatched = errors.New("no order matched for reply")

// ReplyMatcher is a domain service that resolves which order a customer reply
// refers to when the reply carries no embedded (tenant, order) pair.
//
// This is the deliberate last-resort path for messaging clients that drop
// message context: the caller hands over every order that could belong to the
// phone number, across all tenants, and the matcher picks the one from the
// most recent conversation.
//
// Selection rules:
//   - only orders whose normalized customer phone equals the reply phone count
//   - the order with the latest activity wins, where activity is the later of
//     the last outbound message time and the creation time
//   - ties are broken by creation time
type ReplyMatcher struct{}

// NewReplyMatcher creates a new ReplyMatcher instance.
func NewReplyMatcher() ReplyMatcher {
	return ReplyMatcher{}
}

// Match selects the most recent conversation order for a phone number.
//
// Returns ErrOrderNotMatched when the phone is empty or no candidate matches.
// Candidates that fail aggregate validation are skipped rather than failing
// the whole match, since one corrupt record must not silence a customer.
func (m ReplyMatcher) Match(phone kernel.Phone, candidates []*order.Order) (*order.Order, error) {
	if phone.IsZero() {
		return nil, ErrOrderNotMatched
	}

	var best *order.Order

	for _, candidate := range candidates {
		if candidate.Validate() != nil {
			continue
		}

		if !candidate.Customer().Phone.IsEqual(phone) {
			continue
		}

		if best == nil || m.moreRecent(candidate, best) {
			best = candidate
		}
	}

	if best == nil {
		return nil, ErrOrderNotMatched
	}

	return best, nil
}

// moreRecent reports whether a should win over b.
func (m ReplyMatcher) moreRecent(a, b *order.Order) bool {
	if !a.LastActivityAt().Equal(b.LastActivityAt()) {
		return a.LastActivityAt().After(b.LastActivityAt())
	}

	return a.Timeline().CreatedAt.After(b.Timeline().CreatedAt)
}

package stripe

import "strings"

// StatusCancelled is the canonical terminal spelling stored on a
// subscription once Stripe reports it deleted.
const StatusCancelled = "Cancelled"

// CanonicalTerminalStatus maps the spellings Stripe uses for a dead
// subscription onto StatusCancelled. Non-terminal statuses pass through
// trimmed.
func CanonicalTerminalStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "canceled", "cancelled", "incomplete_expired":
		return StatusCancelled
	default:
		return strings.TrimSpace(s)
	}
}

// IsEntitling reports whether a Stripe subscription status still grants
// access to the product.
func IsEntitling(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "trialing", "past_due":
		return true
	default:
		return false
	}
}

package stripewebhook

import (
	"ordopro-backend/internal/domain/billing"
)

// Store is the durable state the reconciler folds events into. All writes
// are scoped to a single user, and upserts must be atomic on the unique
// key (user_id) so duplicate or concurrent deliveries cannot create a
// second row.
type Store interface {
	// UserExists reports whether a local user with the given id exists.
	UserExists(id uint) (bool, error)

	// CustomerByStripeID returns the customer record for a Stripe
	// customer id, or nil when none exists.
	CustomerByStripeID(stripeCustomerID string) (*billing.CustomerDetail, error)

	// ApplyCheckout upserts both records keyed by user id, atomically:
	// either both land or neither does.
	ApplyCheckout(cust *billing.CustomerDetail, sub *billing.Subscription) error

	// UpdateSubscription applies the given column values to the user's
	// subscription row.
	UpdateSubscription(userID uint, fields map[string]interface{}) error
}

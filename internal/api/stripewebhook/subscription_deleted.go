package stripewebhook

import (
	"encoding/json"

	stripelib "github.com/stripe/stripe-go/v75"

	stripeinfra "ordopro-backend/internal/infra/stripe"
)

// handleSubscriptionDeleted moves the subscription into its terminal
// state: canonical cancelled status, active forced off. Period and invoice
// fields are left as they were.
func (r *Reconciler) handleSubscriptionDeleted(event stripelib.Event) error {
	var sub subscriptionDeleted
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return badRequestf("malformed subscription payload: %v", err)
	}

	cust, err := r.store.CustomerByStripeID(sub.Customer)
	if err != nil {
		return err
	}
	if cust == nil {
		return badRequestf("no customer for stripe_customer_id %q", sub.Customer)
	}

	return r.store.UpdateSubscription(cust.UserID, map[string]interface{}{
		"status": stripeinfra.CanonicalTerminalStatus(sub.Status),
		"active": false,
	})
}

package stripewebhook

import (
	"encoding/json"

	"github.com/stripe/stripe-go/v75"
)

// handleSubscriptionUpdated refreshes the billing-period fields of the
// subscription belonging to the event's Stripe customer. The active flag
// follows the first plan item; status itself is owned by other event types.
func (r *Reconciler) handleSubscriptionUpdated(event stripe.Event) error {
	var sub subscriptionUpdated
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

	active := false
	if len(sub.Items.Data) > 0 {
		active = sub.Items.Data[0].Plan.Active
	}

	return r.store.UpdateSubscription(cust.UserID, map[string]interface{}{
		"cancel_at_period_end": sub.CancelAtPeriodEnd,
		"current_period_start": epochToUTC(sub.CurrentPeriodStart),
		"current_period_end":   epochToUTC(sub.CurrentPeriodEnd),
		"trial_end":            sub.TrialEnd.Time(),
		"active":               active,
	})
}

package stripewebhook

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v75"

	"ordopro-backend/internal/domain/billing"
)

// handleCheckoutSessionCompleted upserts the customer record and the
// subscription record for the user named in the session metadata. Both
// upserts key on the user, so redelivering the event leaves a single pair
// of rows with the same field values.
func (r *Reconciler) handleCheckoutSessionCompleted(event stripe.Event) error {
	var session checkoutSessionCompleted
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return badRequestf("malformed checkout session payload: %v", err)
	}

	userID, err := userIDFromMetadata(session.Metadata)
	if err != nil {
		return err
	}

	exists, err := r.store.UserExists(userID)
	if err != nil {
		return err
	}
	if !exists {
		return badRequestf("user %d does not exist", userID)
	}

	cust := &billing.CustomerDetail{
		UserID:           userID,
		StripeCustomerID: session.Customer,
		City:             ptrIfNotEmpty(session.CustomerDetails.Address.City),
		Country:          ptrIfNotEmpty(session.CustomerDetails.Address.Country),
		Address:          ptrIfNotEmpty(session.CustomerDetails.Address.Line1),
		PostalCode:       ptrIfNotEmpty(session.CustomerDetails.Address.PostalCode),
		Email:            ptrIfNotEmpty(session.CustomerDetails.Email),
	}

	// The session carries the subscription id once Stripe has created it;
	// fall back to the session id so the unique column is never empty.
	subscriptionID := session.Subscription
	if subscriptionID == "" {
		subscriptionID = session.ID
	}

	// amount_total is in minor units (cents); store exact major units.
	total := decimal.New(session.AmountTotal, -2)

	sub := &billing.Subscription{
		UserID:               userID,
		StripeSubscriptionID: subscriptionID,
		Status:               ptrIfNotEmpty(session.Status),
		PaymentStatus:        ptrIfNotEmpty(session.PaymentStatus),
		ProductName:          ptrIfNotEmpty(session.Metadata["product_name"]),
		TotalPrice:           decimal.NewNullDecimal(total),
	}

	return r.store.ApplyCheckout(cust, sub)
}

func ptrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

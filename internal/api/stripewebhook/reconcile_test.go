package stripewebhook

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
)

const testUserID = 5

func testEvent(eventType, object string) stripe.Event {
	envelope := fmt.Sprintf(`{"type": %q, "data": {"object": %s}}`, eventType, object)
	var event stripe.Event
	if err := json.Unmarshal([]byte(envelope), &event); err != nil {
		panic(err)
	}
	return event
}

func checkoutObject(userID uint) string {
	return fmt.Sprintf(`{
		"id": "cs_test_a1SdT2v81sae3cW",
		"object": "checkout.session",
		"amount_total": 990,
		"customer": "cus_X",
		"customer_details": {
			"address": {
				"city": "Saint-Ouen-l'Aumone",
				"country": "FR",
				"line1": "1 Rue Pagnere",
				"postal_code": "95310"
			},
			"email": "kadi@test.com"
		},
		"metadata": {"product_name": "Essentiel", "user_id": "%d"},
		"subscription": "sub_test_id",
		"payment_status": "paid",
		"status": "complete"
	}`, userID)
}

func reconcilerWithCheckout(t *testing.T) (*Reconciler, *memStore) {
	t.Helper()
	store := newMemStore(testUserID)
	r := New("whsec_testsecret", store)
	err := r.dispatch(testEvent("checkout.session.completed", checkoutObject(testUserID)))
	require.NoError(t, err)
	return r, store
}

func TestCheckoutSessionCompleted(t *testing.T) {
	_, store := reconcilerWithCheckout(t)

	cust := store.customer(testUserID)
	require.NotNil(t, cust)
	assert.Equal(t, "cus_X", cust.StripeCustomerID)
	assert.Equal(t, "Saint-Ouen-l'Aumone", *cust.City)
	assert.Equal(t, "FR", *cust.Country)
	assert.Equal(t, "1 Rue Pagnere", *cust.Address)
	assert.Equal(t, "95310", *cust.PostalCode)
	assert.Equal(t, "kadi@test.com", *cust.Email)

	sub := store.subscription(testUserID)
	require.NotNil(t, sub)
	assert.Equal(t, "sub_test_id", sub.StripeSubscriptionID)
	assert.Equal(t, "complete", *sub.Status)
	assert.Equal(t, "paid", *sub.PaymentStatus)
	assert.Equal(t, "Essentiel", *sub.ProductName)
}

func TestCheckoutSessionCompleted_AmountIsExactDecimal(t *testing.T) {
	_, store := reconcilerWithCheckout(t)

	sub := store.subscription(testUserID)
	require.NotNil(t, sub)
	require.True(t, sub.TotalPrice.Valid)
	assert.True(t, sub.TotalPrice.Decimal.Equal(decimal.RequireFromString("9.90")),
		"want exactly 9.90, got %s", sub.TotalPrice.Decimal)
}

func TestCheckoutSessionCompleted_Idempotent(t *testing.T) {
	r, store := reconcilerWithCheckout(t)
	before := store.subscription(testUserID)

	// redelivery of the same event
	err := r.dispatch(testEvent("checkout.session.completed", checkoutObject(testUserID)))
	require.NoError(t, err)

	assert.Equal(t, 1, store.customerCount())
	assert.Equal(t, 1, store.subscriptionCount())

	after := store.subscription(testUserID)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.StripeSubscriptionID, after.StripeSubscriptionID)
	assert.True(t, before.TotalPrice.Decimal.Equal(after.TotalPrice.Decimal))
}

func TestCheckoutSessionCompleted_UserDoesNotExist(t *testing.T) {
	store := newMemStore() // no users at all
	r := New("whsec_testsecret", store)

	err := r.dispatch(testEvent("checkout.session.completed", checkoutObject(9999)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadRequest))

	assert.Equal(t, 0, store.customerCount())
	assert.Equal(t, 0, store.subscriptionCount())
}

func TestCheckoutSessionCompleted_MissingUserMetadata(t *testing.T) {
	store := newMemStore(testUserID)
	r := New("whsec_testsecret", store)

	err := r.dispatch(testEvent("checkout.session.completed", `{"metadata": {}, "customer": "cus_X"}`))
	assert.True(t, errors.Is(err, ErrBadRequest))
	assert.Equal(t, 0, store.customerCount())
}

func subscriptionUpdatedObject(trialEnd string) string {
	return fmt.Sprintf(`{
		"id": "sub_test_id",
		"customer": "cus_X",
		"cancel_at_period_end": true,
		"current_period_start": 1731848739,
		"current_period_end": 1734440739,
		"trial_end": %s,
		"items": {"data": [{"plan": {"active": true}}]}
	}`, trialEnd)
}

func TestSubscriptionUpdated(t *testing.T) {
	r, store := reconcilerWithCheckout(t)

	err := r.dispatch(testEvent("customer.subscription.updated", subscriptionUpdatedObject("1734440739")))
	require.NoError(t, err)

	sub := store.subscription(testUserID)
	assert.True(t, sub.CancelAtPeriodEnd)
	assert.True(t, sub.Active)
	require.NotNil(t, sub.CurrentPeriodStart)
	assert.Equal(t, time.Unix(1731848739, 0).UTC(), *sub.CurrentPeriodStart)
	require.NotNil(t, sub.CurrentPeriodEnd)
	assert.Equal(t, time.Unix(1734440739, 0).UTC(), *sub.CurrentPeriodEnd)
	require.NotNil(t, sub.TrialEnd)
	assert.Equal(t, time.Unix(1734440739, 0).UTC(), *sub.TrialEnd)

	// status stays whatever checkout wrote; updated events do not own it
	assert.Equal(t, "complete", *sub.Status)
}

func TestSubscriptionUpdated_TrialEndEmptyForms(t *testing.T) {
	for _, trialEnd := range []string{`null`, `"null"`, `""`} {
		r, store := reconcilerWithCheckout(t)

		err := r.dispatch(testEvent("customer.subscription.updated", subscriptionUpdatedObject(trialEnd)))
		require.NoError(t, err, "trial_end=%s", trialEnd)
		assert.Nil(t, store.subscription(testUserID).TrialEnd, "trial_end=%s", trialEnd)
	}

	// absent field behaves like null
	r, store := reconcilerWithCheckout(t)
	err := r.dispatch(testEvent("customer.subscription.updated", `{
		"customer": "cus_X",
		"cancel_at_period_end": false,
		"current_period_start": 1731848739,
		"current_period_end": 1734440739,
		"items": {"data": [{"plan": {"active": true}}]}
	}`))
	require.NoError(t, err)
	assert.Nil(t, store.subscription(testUserID).TrialEnd)
}

func TestSubscriptionUpdated_UnknownCustomer(t *testing.T) {
	store := newMemStore(testUserID)
	r := New("whsec_testsecret", store)

	err := r.dispatch(testEvent("customer.subscription.updated", subscriptionUpdatedObject("null")))
	assert.True(t, errors.Is(err, ErrBadRequest))
}

func TestInvoicePaid(t *testing.T) {
	r, store := reconcilerWithCheckout(t)

	err := r.dispatch(testEvent("invoice.paid", `{
		"id": "in_test",
		"customer": "cus_X",
		"hosted_invoice_url": "https://invoice.stripe.com/i/hosted",
		"invoice_pdf": "https://invoice.stripe.com/i/pdf"
	}`))
	require.NoError(t, err)

	sub := store.subscription(testUserID)
	assert.Equal(t, "https://invoice.stripe.com/i/hosted", *sub.HostedInvoiceURL)
	assert.Equal(t, "https://invoice.stripe.com/i/pdf", *sub.InvoicePDF)
	// only the invoice links change
	assert.Equal(t, "complete", *sub.Status)
	assert.Equal(t, "paid", *sub.PaymentStatus)
}

func TestUpdatedAndInvoicePaid_OrderInsensitive(t *testing.T) {
	updated := subscriptionUpdatedObject("null")
	invoice := `{
		"customer": "cus_X",
		"hosted_invoice_url": "https://invoice.stripe.com/i/hosted",
		"invoice_pdf": "https://invoice.stripe.com/i/pdf"
	}`

	r1, store1 := reconcilerWithCheckout(t)
	require.NoError(t, r1.dispatch(testEvent("customer.subscription.updated", updated)))
	require.NoError(t, r1.dispatch(testEvent("invoice.paid", invoice)))

	r2, store2 := reconcilerWithCheckout(t)
	require.NoError(t, r2.dispatch(testEvent("invoice.paid", invoice)))
	require.NoError(t, r2.dispatch(testEvent("customer.subscription.updated", updated)))

	a := store1.subscription(testUserID)
	b := store2.subscription(testUserID)
	assert.Equal(t, a.CancelAtPeriodEnd, b.CancelAtPeriodEnd)
	assert.Equal(t, a.Active, b.Active)
	assert.Equal(t, *a.CurrentPeriodEnd, *b.CurrentPeriodEnd)
	assert.Equal(t, *a.HostedInvoiceURL, *b.HostedInvoiceURL)
	assert.Equal(t, *a.InvoicePDF, *b.InvoicePDF)
}

func TestSubscriptionDeleted_Terminal(t *testing.T) {
	r, store := reconcilerWithCheckout(t)

	// make it look active first
	require.NoError(t, r.dispatch(testEvent("customer.subscription.updated", subscriptionUpdatedObject("null"))))
	require.True(t, store.subscription(testUserID).Active)

	err := r.dispatch(testEvent("customer.subscription.deleted", `{
		"id": "sub_test_id",
		"customer": "cus_X",
		"status": "canceled"
	}`))
	require.NoError(t, err)

	sub := store.subscription(testUserID)
	assert.Equal(t, "Cancelled", *sub.Status)
	assert.False(t, sub.Active)
}

func TestSubscriptionDeleted_Idempotent(t *testing.T) {
	r, store := reconcilerWithCheckout(t)

	deleted := `{"customer": "cus_X", "status": "canceled"}`
	require.NoError(t, r.dispatch(testEvent("customer.subscription.deleted", deleted)))
	require.NoError(t, r.dispatch(testEvent("customer.subscription.deleted", deleted)))

	sub := store.subscription(testUserID)
	assert.Equal(t, "Cancelled", *sub.Status)
	assert.False(t, sub.Active)
	assert.Equal(t, 1, store.subscriptionCount())
}

func TestDispatch_UnknownTypeIsNoOp(t *testing.T) {
	store := newMemStore(testUserID)
	r := New("whsec_testsecret", store)

	err := r.dispatch(testEvent("payment_intent.succeeded", `{"id": "pi_test"}`))
	assert.NoError(t, err)
	assert.Equal(t, 0, store.customerCount())
	assert.Equal(t, 0, store.subscriptionCount())
}

func TestDispatch_StoreFailurePropagates(t *testing.T) {
	store := newMemStore(testUserID)
	store.failWith = errors.New("connection reset")
	r := New("whsec_testsecret", store)

	err := r.dispatch(testEvent("checkout.session.completed", checkoutObject(testUserID)))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrBadRequest))
}

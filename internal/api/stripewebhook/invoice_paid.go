package stripewebhook

import (
	"encoding/json"

	"github.com/stripe/stripe-go/v75"
)

// handleInvoicePaid stores the latest invoice links. Nothing else on the
// subscription row is touched.
func (r *Reconciler) handleInvoicePaid(event stripe.Event) error {
	var invoice invoicePaid
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return badRequestf("malformed invoice payload: %v", err)
	}

	cust, err := r.store.CustomerByStripeID(invoice.Customer)
	if err != nil {
		return err
	}
	if cust == nil {
		return badRequestf("no customer for stripe_customer_id %q", invoice.Customer)
	}

	return r.store.UpdateSubscription(cust.UserID, map[string]interface{}{
		"hosted_invoice_url": invoice.HostedInvoiceURL,
		"invoice_pdf":        invoice.InvoicePDF,
	})
}

package stripewebhook

import (
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

// Verifier checks that a payload was signed by Stripe with our endpoint
// secret. The secret is injected at construction time so nothing here
// depends on process-global Stripe state.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) Verifier {
	return Verifier{secret: secret}
}

// Verify validates the Stripe-Signature header (HMAC over
// "timestamp.payload", with the library's default clock-skew tolerance)
// and returns the parsed event. Failures are permanent for the payload;
// the caller must respond 400 and mutate nothing.
func (v Verifier) Verify(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(
		payload,
		sigHeader,
		v.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
}

package stripewebhook

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

// Reconciler folds Stripe webhook events into CustomerDetail and
// Subscription rows. Each delivery is verified, dispatched to exactly one
// handler, and processed to completion before the response is written.
// Handlers are idempotent, so Stripe's redelivery is the only retry path
// we need.
type Reconciler struct {
	verifier Verifier
	store    Store
	handlers map[string]func(stripe.Event) error
}

func New(webhookSecret string, store Store) *Reconciler {
	r := &Reconciler{
		verifier: NewVerifier(webhookSecret),
		store:    store,
	}
	r.handlers = map[string]func(stripe.Event) error{
		"checkout.session.completed":    r.handleCheckoutSessionCompleted,
		"customer.subscription.updated": r.handleSubscriptionUpdated,
		"invoice.paid":                  r.handleInvoicePaid,
		"customer.subscription.deleted": r.handleSubscriptionDeleted,
	}
	return r
}

// Handle is the POST /webhook endpoint.
func (r *Reconciler) Handle(c *gin.Context) {
	payload, err := readBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := r.verifier.Verify(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		fmt.Println("Stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	if err := r.dispatch(event); err != nil {
		if errors.Is(err, ErrBadRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// dispatch routes a trusted event to its handler. Unrecognized types are a
// deliberate no-op so new Stripe event types never cause retries.
func (r *Reconciler) dispatch(event stripe.Event) error {
	handler, ok := r.handlers[string(event.Type)]
	if !ok {
		return nil
	}
	return handler(event)
}

func userIDFromMetadata(md map[string]string) (uint, error) {
	s := md["user_id"]
	if s == "" {
		return 0, badRequestf("missing metadata.user_id")
	}
	uid, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, badRequestf("invalid user_id %q", s)
	}
	return uint(uid), nil
}

func readBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}

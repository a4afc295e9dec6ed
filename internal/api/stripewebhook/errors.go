package stripewebhook

import (
	"errors"
	"fmt"
)

// ErrBadRequest marks reconciliation failures caused by the event itself:
// a referenced user or customer this system cannot find, or an envelope
// that does not parse. The HTTP boundary maps it to a 400 so Stripe stops
// redelivering the payload.
var ErrBadRequest = errors.New("bad request")

func badRequestf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

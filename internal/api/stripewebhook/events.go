package stripewebhook

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Typed envelopes for the event payloads this reconciler consumes.
// Parsing happens once at the boundary; handlers never touch raw maps.

type checkoutSessionCompleted struct {
	ID              string `json:"id"`
	Customer        string `json:"customer"`
	CustomerDetails struct {
		Email   string `json:"email"`
		Address struct {
			City       string `json:"city"`
			Country    string `json:"country"`
			Line1      string `json:"line1"`
			PostalCode string `json:"postal_code"`
		} `json:"address"`
	} `json:"customer_details"`
	Metadata      map[string]string `json:"metadata"`
	Subscription  string            `json:"subscription"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
}

type subscriptionUpdated struct {
	ID                 string     `json:"id"`
	Customer           string     `json:"customer"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
	CurrentPeriodStart int64      `json:"current_period_start"`
	CurrentPeriodEnd   int64      `json:"current_period_end"`
	TrialEnd           epochOrNil `json:"trial_end"`
	Items              struct {
		Data []struct {
			Plan struct {
				Active bool `json:"active"`
			} `json:"plan"`
		} `json:"data"`
	} `json:"items"`
}

type invoicePaid struct {
	ID               string `json:"id"`
	Customer         string `json:"customer"`
	HostedInvoiceURL string `json:"hosted_invoice_url"`
	InvoicePDF       string `json:"invoice_pdf"`
}

type subscriptionDeleted struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Status   string `json:"status"`
}

// epochOrNil is an optional Unix timestamp. Stripe sends trial_end as a
// number, as JSON null, or (in older payloads) as the literal string
// "null"; all three empty forms decode to a nil time.
type epochOrNil struct {
	t *time.Time
}

func (e *epochOrNil) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		if v == "" || v == "null" {
			return nil
		}
		sec, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		e.t = epochToUTC(sec)
		return nil
	}
	var sec int64
	if err := json.Unmarshal(b, &sec); err != nil {
		return err
	}
	e.t = epochToUTC(sec)
	return nil
}

// Time returns the parsed timestamp, or nil when the field was empty.
func (e epochOrNil) Time() *time.Time {
	return e.t
}

func epochToUTC(sec int64) *time.Time {
	t := time.Unix(sec, 0).UTC()
	return &t
}

package stripewebhook

import (
	"sync"
	"time"

	"ordopro-backend/internal/domain/billing"
)

// memStore is an in-memory Store for tests. It mimics the unique-key
// upsert semantics of the Postgres store: one customer row and one
// subscription row per user.
type memStore struct {
	mu        sync.Mutex
	users     map[uint]bool
	customers map[uint]*billing.CustomerDetail
	subs      map[uint]*billing.Subscription

	failWith error // when set, every write fails with this error
}

func newMemStore(userIDs ...uint) *memStore {
	s := &memStore{
		users:     make(map[uint]bool),
		customers: make(map[uint]*billing.CustomerDetail),
		subs:      make(map[uint]*billing.Subscription),
	}
	for _, id := range userIDs {
		s.users[id] = true
	}
	return s
}

func (s *memStore) UserExists(id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id], nil
}

func (s *memStore) CustomerByStripeID(stripeCustomerID string) (*billing.CustomerDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cust := range s.customers {
		if cust.StripeCustomerID == stripeCustomerID {
			copied := *cust
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memStore) ApplyCheckout(cust *billing.CustomerDetail, sub *billing.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	custCopy := *cust
	if existing, ok := s.customers[cust.UserID]; ok {
		custCopy.ID = existing.ID
	} else {
		custCopy.ID = uint(len(s.customers) + 1)
	}
	s.customers[cust.UserID] = &custCopy

	subCopy := *sub
	if existing, ok := s.subs[sub.UserID]; ok {
		subCopy.ID = existing.ID
		// columns not owned by checkout keep their values
		subCopy.Active = existing.Active
		subCopy.CancelAtPeriodEnd = existing.CancelAtPeriodEnd
		subCopy.CurrentPeriodStart = existing.CurrentPeriodStart
		subCopy.CurrentPeriodEnd = existing.CurrentPeriodEnd
		subCopy.TrialEnd = existing.TrialEnd
		subCopy.HostedInvoiceURL = existing.HostedInvoiceURL
		subCopy.InvoicePDF = existing.InvoicePDF
	} else {
		subCopy.ID = uint(len(s.subs) + 1)
	}
	s.subs[sub.UserID] = &subCopy
	return nil
}

func (s *memStore) UpdateSubscription(userID uint, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	sub, ok := s.subs[userID]
	if !ok {
		return nil
	}
	for column, value := range fields {
		switch column {
		case "cancel_at_period_end":
			sub.CancelAtPeriodEnd = value.(bool)
		case "current_period_start":
			sub.CurrentPeriodStart = value.(*time.Time)
		case "current_period_end":
			sub.CurrentPeriodEnd = value.(*time.Time)
		case "trial_end":
			sub.TrialEnd = value.(*time.Time)
		case "active":
			sub.Active = value.(bool)
		case "status":
			status := value.(string)
			sub.Status = &status
		case "hosted_invoice_url":
			url := value.(string)
			sub.HostedInvoiceURL = &url
		case "invoice_pdf":
			url := value.(string)
			sub.InvoicePDF = &url
		}
	}
	return nil
}

func (s *memStore) customerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.customers)
}

func (s *memStore) subscriptionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *memStore) subscription(userID uint) *billing.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.subs[userID]; ok {
		copied := *sub
		return &copied
	}
	return nil
}

func (s *memStore) customer(userID uint) *billing.CustomerDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cust, ok := s.customers[userID]; ok {
		copied := *cust
		return &copied
	}
	return nil
}

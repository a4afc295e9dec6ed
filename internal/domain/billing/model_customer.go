package billing

import (
	"time"

	"ordopro-backend/internal/domain/users"
)

// CustomerDetail links a local user to their Stripe customer and keeps the
// billing address collected at checkout. The billing email may differ from
// the login email.
type CustomerDetail struct {
	ID               uint       `gorm:"primaryKey"`
	UserID           uint       `gorm:"not null;uniqueIndex:idx_customer_details_user_id"`
	User             users.User `gorm:"constraint:OnDelete:CASCADE"`
	StripeCustomerID string     `gorm:"column:stripe_customer_id;not null;uniqueIndex:idx_customer_details_stripe_id"`

	City       *string `gorm:"size:100"`
	Country    *string `gorm:"size:2"` // ISO 3166-1 alpha-2
	Address    *string `gorm:"size:255"`
	PostalCode *string `gorm:"size:20"`
	Email      *string `gorm:"size:254"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

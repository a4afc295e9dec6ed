package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"ordopro-backend/internal/domain/users"
)

// Subscription mirrors Stripe's view of a user's paid plan. It is written
// exclusively by the webhook reconciler; the API layer only reads it.
// `Active` and `Status` come from different event types and may disagree
// transiently.
type Subscription struct {
	ID                   uint       `gorm:"primaryKey"`
	UserID               uint       `gorm:"not null;uniqueIndex:idx_subscriptions_user_id"`
	User                 users.User `gorm:"constraint:OnDelete:CASCADE"`
	StripeSubscriptionID string     `gorm:"column:stripe_subscription_id;not null;uniqueIndex:idx_subscriptions_stripe_id"`

	Status        *string `gorm:"size:50"`
	PaymentStatus *string `gorm:"size:50"`
	Active        bool    `gorm:"not null;default:false"`
	ProductName   *string `gorm:"size:255"`

	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	// CancelAtPeriodEnd means the subscription will not renew past the
	// current period.
	CancelAtPeriodEnd bool `gorm:"not null;default:false"`
	TrialEnd          *time.Time

	TotalPrice       decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	HostedInvoiceURL *string             `gorm:"size:500"`
	InvoicePDF       *string             `gorm:"column:invoice_pdf;size:500"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

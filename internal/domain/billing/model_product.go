package billing

import "time"

// StripeProduct is the staff-managed catalog entry checkout sessions are
// built from.
type StripeProduct struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"size:255;not null;uniqueIndex:idx_stripe_products_name"`
	ProductID      string `gorm:"column:product_id;size:255;not null"`
	MonthlyPriceID string `gorm:"column:monthly_price_id;size:255;not null"`
	AnnualPriceID  string `gorm:"column:annual_price_id;size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

package stripewebhook

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ordopro-backend/internal/domain/billing"
	"ordopro-backend/internal/domain/users"
)

// GormStore backs the reconciler with Postgres. Upserts use ON CONFLICT on
// the user_id unique index, which makes duplicate deliveries converge on a
// single row without explicit locking.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) UserExists(id uint) (bool, error) {
	var count int64
	err := s.db.Model(&users.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *GormStore) CustomerByStripeID(stripeCustomerID string) (*billing.CustomerDetail, error) {
	var cust billing.CustomerDetail
	err := s.db.Where("stripe_customer_id = ?", stripeCustomerID).First(&cust).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

func (s *GormStore) ApplyCheckout(cust *billing.CustomerDetail, sub *billing.Subscription) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"stripe_customer_id", "city", "country", "address",
				"postal_code", "email", "updated_at",
			}),
		}).Create(cust).Error; err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"stripe_subscription_id", "status", "payment_status",
				"product_name", "total_price", "updated_at",
			}),
		}).Create(sub).Error
	})
}

func (s *GormStore) UpdateSubscription(userID uint, fields map[string]interface{}) error {
	return s.db.Model(&billing.Subscription{}).
		Where("user_id = ?", userID).
		Updates(fields).Error
}

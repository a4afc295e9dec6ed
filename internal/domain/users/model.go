package users

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"not null;uniqueIndex:idx_users_username"`
	Email        string `gorm:"index"`
	Firstname    string
	Lastname     string
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	IsStaff      bool    `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OneSignalProfile links a user to the OneSignal subscription id reported
// by the mobile app, so expiry pushes can reach that device.
type OneSignalProfile struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;index"`
	User           User   `gorm:"constraint:OnDelete:CASCADE"`
	SubscriptionID string `gorm:"column:subscription_id;not null;uniqueIndex:idx_onesignal_subscription_id"`
	CreatedAt      time.Time
}

package nursing

import (
	"time"

	"ordopro-backend/internal/domain/users"
)

type Nurse struct {
	ID      uint       `gorm:"primaryKey"`
	UserID  *uint      `gorm:"uniqueIndex:idx_nurses_user_id"`
	User    *users.User
	Phone   string     `gorm:"size:30"`
	Address string     `gorm:"size:300"`
	ZipCode string     `gorm:"size:5"`
	City    string     `gorm:"size:300"`

	Patients []Patient `gorm:"many2many:nurse_patients;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

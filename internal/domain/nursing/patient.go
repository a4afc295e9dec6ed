package nursing

import "time"

type Patient struct {
	ID               uint   `gorm:"primaryKey"`
	Firstname        string `gorm:"size:30;not null"`
	Lastname         string `gorm:"size:30;not null"`
	Birthday         *time.Time
	Address          string `gorm:"size:300"`
	ZipCode          string `gorm:"size:5"`
	City             string `gorm:"size:300"`
	Phone            string `gorm:"size:30"`
	HealthCardNumber string `gorm:"size:300"` // carte vitale
	InsuranceFund    string `gorm:"size:300"` // caisse de rattachement

	CreatedAt time.Time
	UpdatedAt time.Time
}

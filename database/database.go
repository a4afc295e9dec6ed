package database

import (
	"fmt"
	"log"

	"ordopro-backend/config"
	"ordopro-backend/internal/domain/billing"
	"ordopro-backend/internal/domain/nursing"
	"ordopro-backend/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := config.DB_URL
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// core
		&users.User{},
		&users.OneSignalProfile{},

		// nursing
		&nursing.Patient{},
		&nursing.Nurse{},
		&nursing.Prescription{},

		// billing
		&billing.CustomerDetail{},
		&billing.Subscription{},
		&billing.StripeProduct{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

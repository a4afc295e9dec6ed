package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string
	VERSION    string

	STRIPE_API_KEY        string
	STRIPE_WEBHOOK_SECRET string
	ESSENTIAL_PLAN_NAME   string
	APP_URL               string

	ONESIGNAL_APP_ID  string
	ONESIGNAL_API_KEY string

	SMTP_HOST string
	SMTP_PORT string
	SMTP_FROM string
	SMTP_PASS string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	VERSION = getEnv("VERSION", "0.0.0")

	STRIPE_API_KEY = mustEnv("STRIPE_API_KEY")
	STRIPE_WEBHOOK_SECRET = mustEnv("STRIPE_WEBHOOK_SECRET")
	ESSENTIAL_PLAN_NAME = getEnv("ESSENTIAL_PLAN_NAME", "Essentiel")
	APP_URL = getEnv("APP_URL", "http://localhost:5173")

	ONESIGNAL_APP_ID = getEnv("ONESIGNAL_APP_ID", "")
	ONESIGNAL_API_KEY = getEnv("ONESIGNAL_API_KEY", "")

	SMTP_HOST = getEnv("SMTP_HOST", "")
	SMTP_PORT = getEnv("SMTP_PORT", "587")
	SMTP_FROM = getEnv("SMTP_FROM", "")
	SMTP_PASS = getEnv("SMTP_PASSWORD", "")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

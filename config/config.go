package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Placeholder DSN value that ships in .env.example; treated the same as an
// unset DB_URL so a fresh checkout boots straight into demo mode.
const placeholderDBURL = "changeme"

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string
	LOG_LEVEL  string

	CORS_ORIGIN string

	PAYMENT_PROVIDER  string // "simulated" | "stripe"
	STRIPE_SECRET_KEY string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	DEMO_MODE bool
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = getEnv("DB_URL", "")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")

	PAYMENT_PROVIDER = getEnv("PAYMENT_PROVIDER", "simulated")
	STRIPE_SECRET_KEY = getEnv("STRIPE_SECRET_KEY", "")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	// Demo mode: no usable database configuration, or explicitly requested.
	// Never enable in production; it substitutes fixture credentials and an
	// in-memory store for the real backend.
	DEMO_MODE = getEnv("DEMO_MODE", "") == "true" || DB_URL == "" || DB_URL == placeholderDBURL

	if DEMO_MODE {
		JWT_SECRET = getEnv("JWT_SECRET", "demo-insecure-secret")
		log.Println("⚠️  Running in DEMO mode: in-memory database, fixture credentials.")
	} else {
		JWT_SECRET = mustEnv("JWT_SECRET")
	}
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

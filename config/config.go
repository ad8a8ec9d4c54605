package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	GroqAPIKey        string
	FirebaseProjectID string
	// CredentialsFile is the service account key used for Firestore. Resolved
	// from GOOGLE_APPLICATION_CREDENTIALS, falling back to a
	// service-account.json next to the server binary.
	CredentialsFile string
}

func Load() *Config {
	// Best effort: a missing .env file just means env vars are set elsewhere.
	godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		FirebaseProjectID: os.Getenv("FIREBASE_PROJECT_ID"),
		CredentialsFile:   os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	}

	if cfg.CredentialsFile == "" {
		if _, err := os.Stat("service-account.json"); err == nil {
			cfg.CredentialsFile = "service-account.json"
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

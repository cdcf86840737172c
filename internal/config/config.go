package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

const AppName = "rentals-service"

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	// Database
	DBUrl    string
	RedisUrl string

	// Auth
	RSAPublicKey *rsa.PublicKey

	// SendGrid for notification emails; empty key disables the email leg
	SendGridAPIKey    string
	SendGridFromEmail string

	SeedTestData bool
}

// LoadConfig reads the environment (optionally via .env) and fails fast
// on anything the service cannot run without.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Info("No .env file found, reading config from environment")
	}

	cfg := &Config{
		AppName: AppName,
		AppPort: mustGetenv("APP_PORT"),
		AppUrl:  mustGetenv("APP_URL"),

		DBUrl:    mustGetenv("DB_URL"),
		RedisUrl: mustGetenv("REDIS_URL"),

		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),

		SeedTestData: os.Getenv("SEED_TEST_DATA") == "true",
	}

	pubB64 := mustGetenv("RSA_PUBLIC_KEY_BASE64")
	pubPEM, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}
	cfg.RSAPublicKey = pubKey

	if cfg.SendGridAPIKey != "" && cfg.SendGridFromEmail == "" {
		utils.Logger.Fatal("SENDGRID_FROM_EMAIL is required when SENDGRID_API_KEY is set")
	}

	return cfg
}

func mustGetenv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

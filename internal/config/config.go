package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port         string
	SecretKey    string
	DBPath       string
	AppBaseURL   string
	Location     *time.Location
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
}

// Load reads .env when present, then falls back to the process
// environment with sane defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	return Config{
		Port:         getEnv("PORT", "8080"),
		SecretKey:    getEnv("SECRET_KEY", "change_me_in_production"),
		DBPath:       getEnv("DB_PATH", filepath.Join("data", "nido.db")),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),
		Location:     mustLoadLocation(getEnv("TZ", "UTC")),
		AWSRegion:    getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Nido"),
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries the process-level settings main needs before wiring.
// Component-specific settings (JWT secret, SMTP, rate limits, search host)
// are read from the environment by the component that owns them.
type Config struct {
	Port     string
	RedisURL string
}

func Load() *Config {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		RedisURL: os.Getenv("REDIS_URL"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

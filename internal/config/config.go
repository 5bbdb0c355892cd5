package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	// BaseURL is the externally reachable origin used when building
	// verification and reset links, e.g. "https://cybersahali.example".
	BaseURL string

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string

	SessionTTL    time.Duration
	ResetTokenTTL time.Duration
}

func Load() Config {

	cfg := Config{

		AppPort: getEnv("APP_PORT", "8080"),

		BaseURL: getEnv("APP_BASE_URL", "http://localhost:8080"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		EmailFrom:    getEnv("EMAIL_FROM", "Cybersahali <no-reply@cybersahali.example>"),

		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		ResetTokenTTL: getEnvDuration("RESET_TOKEN_TTL", time.Hour),
	}

	return cfg

}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

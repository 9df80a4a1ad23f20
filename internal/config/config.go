package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port string
	Env  string // "development", "production"

	// Database
	DatabaseURL string

	// Auth
	JWTSecret string

	// CORS
	AllowedOrigins []string

	// Offer feed
	OfferFeedURL     string        // Provider discovery endpoint; empty = built-in catalog
	OfferFeedTimeout time.Duration // Timeout for one feed request

	// Offer cache
	RedisAddr     string        // Empty = in-process cache
	OfferCacheTTL time.Duration // How long cached offers stay fresh

	// Offer refresh scheduler
	OfferRefreshEnabled  bool
	OfferRefreshSchedule string        // Cron expression (e.g., "0 * * * *" for hourly)
	OfferRefreshTimeout  time.Duration // Timeout for a complete refresh cycle

	// Comparison defaults
	DefaultOfferRate  float64 // Annual rate in percent used when offer text has none
	DefaultTermMonths int     // Term used when offer text has none and the caller supplies nothing
}

func Load() *Config {
	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/loanpath?sslmode=disable"),

		// Auth
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-production"),

		// CORS
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		// Offer feed
		OfferFeedURL:     os.Getenv("OFFER_FEED_URL"),
		OfferFeedTimeout: getDurationEnv("OFFER_FEED_TIMEOUT", 10*time.Second),

		// Offer cache
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		OfferCacheTTL: getDurationEnv("OFFER_CACHE_TTL", 15*time.Minute),

		// Offer refresh scheduler
		OfferRefreshEnabled:  getBoolEnv("OFFER_REFRESH_ENABLED", true),
		OfferRefreshSchedule: getEnv("OFFER_REFRESH_SCHEDULE", "0 * * * *"), // Default: hourly at minute 0
		OfferRefreshTimeout:  getDurationEnv("OFFER_REFRESH_TIMEOUT", time.Minute),

		// Comparison defaults
		DefaultOfferRate:  getFloatEnv("DEFAULT_OFFER_RATE", 12),
		DefaultTermMonths: getIntEnv("DEFAULT_TERM_MONTHS", 60),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

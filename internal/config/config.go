// Package config handles application configuration.
//
// Go Pattern: Configuration via environment variables with sensible defaults.
// In Go, we typically use structs to hold configuration, and a function to
// load values from environment variables — explicit, no framework magic.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port    string
	GinMode string // "debug", "release", or "test"

	// Mistral OCR API settings
	MistralAPIKey  string
	MistralBaseURL string // Override for tests/self-hosted gateways; empty = the public API
	OCRModel       string

	// Conversion store settings
	StoreTTLMinutes int // Minutes a conversion stays downloadable
	StoreLimit      int // Max conversions kept in memory

	// Rate limiting
	DefaultRateLimit int // Requests per hour per client IP

	// CORS
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
//
// Go Pattern: Functions that can fail return (value, error). This is Go's
// alternative to exceptions — the caller MUST handle the error.
func Load() (*Config, error) {
	cfg := &Config{
		// Server defaults
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// Mistral OCR — the key may also arrive per request, so an empty
		// value here is allowed (we only warn at startup).
		MistralAPIKey:  getEnv("MISTRAL_API_KEY", ""),
		MistralBaseURL: getEnv("MISTRAL_API_URL", ""),
		OCRModel:       getEnv("MISTRAL_OCR_MODEL", "mistral-ocr-latest"),

		// Conversion store defaults
		StoreTTLMinutes: getEnvInt("STORE_TTL_MINUTES", 60),
		StoreLimit:      getEnvInt("STORE_LIMIT", 100),

		// Rate limiting
		DefaultRateLimit: getEnvInt("DEFAULT_RATE_LIMIT", 100),

		// CORS — in production, set this to your frontend URL
		AllowedOrigins: []string{
			getEnv("CORS_ORIGIN", "http://localhost:5173"),
		},
	}

	if cfg.OCRModel == "" {
		return nil, fmt.Errorf("MISTRAL_OCR_MODEL must not be empty")
	}

	// In release mode there is no operator watching the logs, so refuse to
	// start without a server-side key rather than failing every request.
	if cfg.GinMode == "release" && cfg.MistralAPIKey == "" {
		return nil, fmt.Errorf("MISTRAL_API_KEY must be set in production; requests would fail without it")
	}

	return cfg, nil
}

// getEnv reads an environment variable with a fallback default.
// Go Pattern: Small helper functions are idiomatic. Go favors simple,
// composable functions over complex frameworks.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvInt reads an integer environment variable with a fallback.
func getEnvInt(key string, fallback int) int {
	str := getEnv(key, "")
	if str == "" {
		return fallback
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return fallback
	}
	return val
}

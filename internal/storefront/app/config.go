package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIURL     string        // Base address of the shop API (default: http://localhost:3000/app)
	APITimeout time.Duration // Request timeout (default: 10s)
	APIRPS     float64       // Client-side request rate, 0 disables (default: 0)

	TokenStore string // Persisted token driver: sqlite, redis, memory (default: sqlite)
	StateFile  string // sqlite file holding the token (default: storefront.db)
	RedisAddr  string // redis address for the redis driver (default: localhost:6379)
	TokenKey   string // Key of the durable slot (default: authToken)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (default: warn)
	LogFormat string // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	return Config{
		APIURL:     getEnvOrDefault("STOREFRONT_API_URL", "http://localhost:3000/app"),
		APITimeout: getEnvDurationOrDefault("STOREFRONT_API_TIMEOUT", 10*time.Second),
		APIRPS:     getEnvFloatOrDefault("STOREFRONT_API_RPS", 0),
		TokenStore: getEnvOrDefault("STOREFRONT_TOKEN_STORE", "sqlite"),
		StateFile:  getEnvOrDefault("STOREFRONT_STATE_FILE", "storefront.db"),
		RedisAddr:  getEnvOrDefault("STOREFRONT_REDIS_ADDR", "localhost:6379"),
		TokenKey:   getEnvOrDefault("STOREFRONT_TOKEN_KEY", "authToken"),
		Env:        getEnvOrDefault("ENV", "dev"),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "warn"),
		LogFormat:  getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
		return f
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are milliseconds, matching how the web client configured its timeout.
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}

	return defaultValue
}

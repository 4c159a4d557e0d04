package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Prefix       string        // Path prefix every route is mounted under (default: /app)
	DatabaseFile string        // Path to SQLite database file (default: ./devapi.db)
	JWTSecret    string        // Optional: HMAC secret, at least 32 bytes; random per start when empty
	Issuer       string        // Issuer claim for tokens (default: storefront-devapi)
	TokenTTL     time.Duration // Session token lifetime (default: 24h)

	AdminName     string // Optional: admin account seeded on start when no admin exists
	AdminPassword string // Optional: required together with AdminName

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 3000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Prefix:              getEnvOrDefault("DEVAPI_PREFIX", "/app"),
		DatabaseFile:        getEnvOrDefault("DEVAPI_DATABASE_FILE", "devapi.db"),
		JWTSecret:           os.Getenv("DEVAPI_JWT_SECRET"),
		Issuer:              getEnvOrDefault("DEVAPI_ISSUER", "storefront-devapi"),
		TokenTTL:            getEnvDurationOrDefault("DEVAPI_TOKEN_TTL", 24*time.Hour),
		AdminName:           os.Getenv("DEVAPI_ADMIN_NAME"),
		AdminPassword:       os.Getenv("DEVAPI_ADMIN_PASSWORD"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 3000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

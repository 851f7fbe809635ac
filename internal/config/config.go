package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds environment-backed defaults. CLI flags override every value
// here; the environment only moves the defaults.
type Config struct {
	Quality     int
	Workers     int
	MaxAttempts int
	LogLevel    string
}

func Load() *Config {
	// A missing .env file is fine; the environment alone is enough.
	_ = godotenv.Load()

	return &Config{
		Quality:     getEnvAsInt("PIXPRESS_QUALITY", 85),
		Workers:     getEnvAsInt("PIXPRESS_WORKERS", 1),
		MaxAttempts: getEnvAsInt("PIXPRESS_MAX_ATTEMPTS", 3),
		LogLevel:    getEnv("PIXPRESS_LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

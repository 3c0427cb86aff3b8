package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort       int
	DatabasePath     string
	BackupPath       string
	BackupCron       string        // standard five-field cron expression
	SimulatedLatency time.Duration // artificial per-operation storage delay
	LogLevel         string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	latencyMs, err := strconv.Atoi(getEnv("SIMULATED_LATENCY_MS", "0"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:       port,
		DatabasePath:     getEnv("DATABASE_PATH", "./vetlife.db"),
		BackupPath:       getEnv("BACKUP_PATH", "./backups"),
		BackupCron:       getEnv("BACKUP_CRON", "0 3 * * *"),
		SimulatedLatency: time.Duration(latencyMs) * time.Millisecond,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

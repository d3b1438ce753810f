package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	// Storage
	StoreBackend string
	SQLiteDBPath string
	PostgresDSN  string

	// Notifications
	ToastTimeout time.Duration

	// Logging
	LogLevel string
}

// Load reads configuration from the environment, after loading an optional
// .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	return &Config{
		StoreBackend: getEnv("STORE_BACKEND", BackendMemory),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/expensetracker.db"),
		PostgresDSN:  getEnv("DB_CONNECTION_STRING", ""),
		ToastTimeout: getEnvDuration("TOAST_TIMEOUT", 5*time.Second),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLITE_DB_PATH is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("DB_CONNECTION_STRING is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	if c.ToastTimeout <= 0 {
		return fmt.Errorf("TOAST_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid duration for %s: %q, using default", key, value)
		return fallback
	}
	return d
}

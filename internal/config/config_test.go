package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, "./data/expensetracker.db", cfg.SQLiteDBPath)
	assert.Equal(t, 5*time.Second, cfg.ToastTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
	t.Setenv("TOAST_TIMEOUT", "2s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "/tmp/test.db", cfg.SQLiteDBPath)
	assert.Equal(t, 2*time.Second, cfg.ToastTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("TOAST_TIMEOUT", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 5*time.Second, cfg.ToastTimeout)
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Config{StoreBackend: "redis", ToastTimeout: time.Second}).Validate())
	assert.Error(t, (&Config{StoreBackend: BackendSQLite, ToastTimeout: time.Second}).Validate())
	assert.Error(t, (&Config{StoreBackend: BackendPostgres, ToastTimeout: time.Second}).Validate())
	assert.Error(t, (&Config{StoreBackend: BackendMemory}).Validate())
	assert.NoError(t, (&Config{StoreBackend: BackendMemory, ToastTimeout: time.Second}).Validate())
}

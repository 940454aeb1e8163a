// Package cli provides common initialization shared by cmd/paystub and
// cmd/paystub-worker.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"paystub/internal/config"
	"paystub/internal/log"
	"paystub/internal/storage"
)

// SetupLogger initializes structured logging with default settings.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitSQLite initializes a SQLite repository with the given path.
// Returns the repository or exits the process on failure.
func InitSQLite(logger *log.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("failed to initialize SQLite repository",
			log.FieldError, err,
			"path", dbPath)
		os.Exit(1)
	}
	return repo
}

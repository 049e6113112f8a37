// Package cli provides common initialization for the lana binaries: env
// loading, logging, configuration, session storage and signal handling.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"lana/internal/config"
	"lana/internal/log"
	"lana/internal/session"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the given level and sets
// the result as the default logger.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = parseLevel(level)
	cfg.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level})
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitSessionStore opens the SQLite-backed session store. Returns the
// store and the storage handle for cleanup, or exits the process on
// failure.
func InitSessionStore(ctx context.Context, logger *log.Logger, dbPath string) (*session.Store, *session.SQLiteStorage) {
	logger = logger.WithComponent(log.ComponentSession)
	storage, err := session.NewSQLiteStorage(dbPath)
	if err != nil {
		logger.Error("Failed to open session database", log.FieldError, err, "path", dbPath)
		os.Exit(1)
	}
	store := session.NewStore(storage)
	if err := store.Load(ctx); err != nil {
		// Fail open: the user can still log in again.
		logger.Warn("Failed to read stored session", log.FieldError, err)
	}
	return store, storage
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// Package backend selects and constructs the expense store
// implementation from configuration.
package backend

import (
	"fmt"
	"log/slog"

	"spendtrack/internal/config"
	"spendtrack/internal/storage"
)

// NewStore builds the configured store: "sqlite" for the durable
// file-backed repository, "memory" for the volatile in-process one.
func NewStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		slog.Info("Initialized SQLite store", "path", cfg.SQLiteDBPath)
		return repo, nil
	case "memory":
		slog.Info("Initialized memory store")
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported data backend %q", cfg.DataBackend)
	}
}

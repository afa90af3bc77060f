package backend

import (
	"path/filepath"
	"testing"

	"spendtrack/internal/config"
	"spendtrack/internal/storage"
)

func TestNewStore(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{
			DataBackend:  "sqlite",
			SQLiteDBPath: filepath.Join(t.TempDir(), "test.db"),
		}
		store, err := NewStore(cfg)
		if err != nil {
			t.Fatal(err)
		}
		defer store.Close()
		if _, ok := store.(*storage.SQLiteRepository); !ok {
			t.Errorf("store is %T, want *storage.SQLiteRepository", store)
		}
	})

	t.Run("memory", func(t *testing.T) {
		store, err := NewStore(&config.Config{DataBackend: "memory"})
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := store.(*storage.MemoryStore); !ok {
			t.Errorf("store is %T, want *storage.MemoryStore", store)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := NewStore(&config.Config{DataBackend: "postgres"}); err == nil {
			t.Error("expected error for unknown backend")
		}
	})
}

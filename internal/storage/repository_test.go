package storage

import (
	"context"
	"path/filepath"
	"testing"

	"spendtrack/internal/core"
)

func TestSQLiteRepositoryPersistence(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	id := mustAdd(t, repo, newExpense("Lunch", "Food", "2024-01-15", 2550))
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("reopen repository: %v", err)
	}
	defer reopened.Close()

	e, err := reopened.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if e.Description != "Lunch" || e.Amount.Cents != 2550 {
		t.Errorf("unexpected record after reopen: %+v", e)
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	if err := RunMigrations(dbPath); err != nil {
		t.Fatalf("first run: %v", err)
	}
	// A second run against an up-to-date schema is a no-op.
	if err := RunMigrations(dbPath); err != nil {
		t.Fatalf("second run: %v", err)
	}
}

func TestSQLiteSearchEscapesLikeWildcards(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "like.db"))
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	defer repo.Close()

	mustAdd(t, repo, newExpense("100% cotton shirt", "Shopping", "2024-01-15", 1999))
	mustAdd(t, repo, newExpense("Discount_code snack", "Food", "2024-01-15", 350))
	mustAdd(t, repo, newExpense("Plain groceries", "Food", "2024-01-15", 4200))

	got, err := repo.Search(ctx, "100%")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Description != "100% cotton shirt" {
		t.Errorf("%% should match literally, got %+v", got)
	}

	got, err = repo.Search(ctx, "count_c")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Description != "Discount_code snack" {
		t.Errorf("_ should match literally, got %+v", got)
	}
}

func TestSQLiteAmountCheckConstraint(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "check.db"))
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	defer repo.Close()

	// The schema enforces positive amounts even if validation upstream
	// is bypassed.
	_, err = repo.Add(ctx, core.NewExpense{
		Amount:      core.Money{Cents: 0},
		Description: "Zero",
		Category:    "Food",
		Date:        "2024-01-15",
	})
	if err == nil {
		t.Error("expected CHECK constraint failure for zero amount")
	}
}

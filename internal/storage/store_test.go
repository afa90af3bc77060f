package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"spendtrack/internal/core"
	"spendtrack/internal/dates"
)

func TestSQLiteRepository(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("create repository: %v", err)
		}
		t.Cleanup(func() { repo.Close() })
		return repo
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func mustAdd(t *testing.T, s Store, e core.NewExpense) int64 {
	t.Helper()
	id, err := s.Add(context.Background(), e)
	if err != nil {
		t.Fatalf("add %q: %v", e.Description, err)
	}
	return id
}

func newExpense(desc, category, date string, cents int64) core.NewExpense {
	return core.NewExpense{
		Amount:      core.Money{Cents: cents},
		Description: desc,
		Category:    category,
		Date:        date,
	}
}

func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("add assigns sequential ids", func(t *testing.T) {
		s := newStore(t)
		for i, want := range []int64{1, 2, 3} {
			got := mustAdd(t, s, newExpense("Expense", "Food", "2024-01-15", int64(100*(i+1))))
			if got != want {
				t.Errorf("id = %d, want %d", got, want)
			}
		}
	})

	t.Run("middle deletion never reuses the id", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, newExpense("One", "Food", "2024-01-01", 100))
		id2 := mustAdd(t, s, newExpense("Two", "Food", "2024-01-02", 200))
		mustAdd(t, s, newExpense("Three", "Food", "2024-01-03", 300))

		if ok, err := s.Delete(ctx, id2); err != nil || !ok {
			t.Fatalf("delete = %v, %v", ok, err)
		}
		if got := mustAdd(t, s, newExpense("Four", "Food", "2024-01-04", 400)); got != 4 {
			t.Errorf("id after middle deletion = %d, want 4", got)
		}
	})

	t.Run("deleting the max id frees it for reuse", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, newExpense("One", "Food", "2024-01-01", 100))
		id2 := mustAdd(t, s, newExpense("Two", "Food", "2024-01-02", 200))

		if ok, err := s.Delete(ctx, id2); err != nil || !ok {
			t.Fatalf("delete = %v, %v", ok, err)
		}
		if got := mustAdd(t, s, newExpense("Three", "Food", "2024-01-03", 300)); got != 2 {
			t.Errorf("id after max deletion = %d, want 2", got)
		}
	})

	t.Run("add normalizes category and date", func(t *testing.T) {
		s := newStore(t)
		id := mustAdd(t, s, newExpense("  Lunch  ", "fOOD", "15/01/2024", 2550))

		e, err := s.GetByID(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if e.Category != "FOOD" {
			t.Errorf("category = %q, want FOOD", e.Category)
		}
		if e.Date != "2024-01-15" {
			t.Errorf("date = %q, want 2024-01-15", e.Date)
		}
		if e.Description != "Lunch" {
			t.Errorf("description = %q, want trimmed", e.Description)
		}
		if e.UpdatedAt != nil {
			t.Error("updated_at should be nil before any update")
		}
		if e.CreatedAt.IsZero() {
			t.Error("created_at should be stamped")
		}
	})

	t.Run("add defaults empty date to today", func(t *testing.T) {
		s := newStore(t)
		id := mustAdd(t, s, newExpense("Lunch", "Food", "", 100))

		e, err := s.GetByID(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if e.Date != dates.Today() {
			t.Errorf("date = %q, want today %q", e.Date, dates.Today())
		}
	})

	t.Run("add rejects unparseable dates", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Add(ctx, newExpense("Lunch", "Food", "not a date", 100))
		if !errors.Is(err, dates.ErrUnparseable) {
			t.Errorf("err = %v, want ErrUnparseable", err)
		}
	})

	t.Run("get by id not found", func(t *testing.T) {
		s := newStore(t)
		if _, err := s.GetByID(ctx, 42); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("get all in id order", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, newExpense("One", "Food", "2024-01-03", 100))
		mustAdd(t, s, newExpense("Two", "Food", "2024-01-01", 200))

		all, err := s.GetAll(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 2 || all[0].ID != 1 || all[1].ID != 2 {
			t.Errorf("unexpected order: %+v", all)
		}
	})

	t.Run("get by category normalizes the query", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, newExpense("Lunch", "food", "2024-01-15", 100))
		mustAdd(t, s, newExpense("Bus", "Transport", "2024-01-15", 200))

		got, err := s.GetByCategory(ctx, "food")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Description != "Lunch" {
			t.Errorf("unexpected result: %+v", got)
		}
	})

	t.Run("date range is inclusive on both ends", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, newExpense("Before", "Food", "2024-01-09", 100))
		mustAdd(t, s, newExpense("Start", "Food", "2024-01-10", 200))
		mustAdd(t, s, newExpense("End", "Food", "2024-01-20", 300))
		mustAdd(t, s, newExpense("After", "Food", "2024-01-21", 400))

		got, err := s.GetByDateRange(ctx, "2024-01-10", "2024-01-20")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d expenses, want 2: %+v", len(got), got)
		}
	})

	t.Run("date range rejects unparseable bounds", func(t *testing.T) {
		s := newStore(t)
		if _, err := s.GetByDateRange(ctx, "nope", "2024-01-20"); !errors.Is(err, dates.ErrUnparseable) {
			t.Errorf("err = %v, want ErrUnparseable", err)
		}
	})

	t.Run("month query excludes the first of the next month", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, newExpense("In", "Food", "2024-01-31", 100))
		mustAdd(t, s, newExpense("Out", "Food", "2024-02-01", 200))

		got, err := s.GetByMonth(ctx, 2024, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Description != "In" {
			t.Errorf("unexpected result: %+v", got)
		}
	})

	t.Run("december rolls over to january", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, newExpense("In", "Food", "2024-12-31", 100))
		mustAdd(t, s, newExpense("Out", "Food", "2025-01-01", 200))

		got, err := s.GetByMonth(ctx, 2024, 12)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Description != "In" {
			t.Errorf("unexpected result: %+v", got)
		}
	})

	t.Run("month query rejects invalid months", func(t *testing.T) {
		s := newStore(t)
		if _, err := s.GetByMonth(ctx, 2024, 13); err == nil {
			t.Error("expected error for month 13")
		}
	})

	t.Run("search is case insensitive substring", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, newExpense("Lunch at CAFE", "Food", "2024-01-15", 100))
		mustAdd(t, s, newExpense("Bus ticket", "Transport", "2024-01-15", 200))

		got, err := s.Search(ctx, "cafe")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Description != "Lunch at CAFE" {
			t.Errorf("unexpected result: %+v", got)
		}

		none, err := s.Search(ctx, "zzz")
		if err != nil {
			t.Fatal(err)
		}
		if none == nil || len(none) != 0 {
			t.Errorf("no-match search should be an empty slice, got %#v", none)
		}
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		s := newStore(t)
		id := mustAdd(t, s, newExpense("Lunch", "Food", "2024-01-15", 2550))

		amount := core.Money{Cents: 3000}
		ok, err := s.Update(ctx, id, core.ExpenseUpdate{Amount: &amount})
		if err != nil || !ok {
			t.Fatalf("update = %v, %v", ok, err)
		}

		e, err := s.GetByID(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if e.Amount.Cents != 3000 {
			t.Errorf("amount = %d, want 3000", e.Amount.Cents)
		}
		if e.Description != "Lunch" || e.Category != "Food" || e.Date != "2024-01-15" {
			t.Errorf("untouched fields changed: %+v", e)
		}
		if e.UpdatedAt == nil {
			t.Error("updated_at should be set after update")
		}
	})

	t.Run("update normalizes category and date", func(t *testing.T) {
		s := newStore(t)
		id := mustAdd(t, s, newExpense("Lunch", "Food", "2024-01-15", 100))

		category := "transport"
		date := "01/02/2024"
		ok, err := s.Update(ctx, id, core.ExpenseUpdate{Category: &category, Date: &date})
		if err != nil || !ok {
			t.Fatalf("update = %v, %v", ok, err)
		}

		e, _ := s.GetByID(ctx, id)
		if e.Category != "Transport" {
			t.Errorf("category = %q, want Transport", e.Category)
		}
		if e.Date != "2024-02-01" {
			t.Errorf("date = %q, want 2024-02-01 (day first)", e.Date)
		}
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		s := newStore(t)
		id := mustAdd(t, s, newExpense("Lunch", "Food", "2024-01-15", 100))

		ok, err := s.Update(ctx, id, core.ExpenseUpdate{})
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Error("empty update should report false")
		}

		e, _ := s.GetByID(ctx, id)
		if e.UpdatedAt != nil {
			t.Error("empty update must not stamp updated_at")
		}
	})

	t.Run("update unknown id reports false", func(t *testing.T) {
		s := newStore(t)
		desc := "x"
		ok, err := s.Update(ctx, 99, core.ExpenseUpdate{Description: &desc})
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Error("update of unknown id should report false")
		}
	})

	t.Run("delete unknown id reports false", func(t *testing.T) {
		s := newStore(t)
		ok, err := s.Delete(ctx, 99)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Error("delete of unknown id should report false")
		}
	})

	t.Run("clear all empties the collection", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, newExpense("One", "Food", "2024-01-01", 100))
		mustAdd(t, s, newExpense("Two", "Food", "2024-01-02", 200))

		if err := s.ClearAll(ctx); err != nil {
			t.Fatal(err)
		}
		all, err := s.GetAll(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 0 {
			t.Errorf("got %d expenses after clear", len(all))
		}
		if got := mustAdd(t, s, newExpense("Fresh", "Food", "2024-01-03", 300)); got != 1 {
			t.Errorf("id after clear = %d, want 1", got)
		}
	})
}

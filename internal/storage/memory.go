package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"spendtrack/internal/core"
	"spendtrack/internal/dates"
)

// MemoryStore keeps the collection in process memory. It applies the
// same normalization and id-assignment rules as the SQLite store, so
// the two are interchangeable behind Store.
type MemoryStore struct {
	mu       sync.Mutex
	expenses []core.Expense
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Add(_ context.Context, e core.NewExpense) (int64, error) {
	date := e.Date
	if strings.TrimSpace(date) == "" {
		date = dates.Today()
	} else {
		normalized, err := dates.Normalize(date)
		if err != nil {
			return 0, fmt.Errorf("normalize date: %w", err)
		}
		date = normalized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Ids are max(remaining)+1: deleting a middle id never recycles it,
	// but deleting the highest id frees it for the next insert.
	var nextID int64 = 1
	for _, existing := range s.expenses {
		if existing.ID >= nextID {
			nextID = existing.ID + 1
		}
	}

	s.expenses = append(s.expenses, core.Expense{
		ID:          nextID,
		Amount:      e.Amount,
		Description: strings.TrimSpace(e.Description),
		Category:    core.NormalizeCategory(e.Category),
		Date:        date,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	})
	return nextID, nil
}

func (s *MemoryStore) GetAll(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.expenses...), nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, ErrNotFound
}

func (s *MemoryStore) GetByCategory(_ context.Context, category string) ([]core.Expense, error) {
	normalized := core.NormalizeCategory(category)
	return s.filter(func(e core.Expense) bool {
		return e.Category == normalized
	}), nil
}

func (s *MemoryStore) GetByDateRange(_ context.Context, start, end string) ([]core.Expense, error) {
	startDate, err := dates.Normalize(start)
	if err != nil {
		return nil, fmt.Errorf("normalize start date: %w", err)
	}
	endDate, err := dates.Normalize(end)
	if err != nil {
		return nil, fmt.Errorf("normalize end date: %w", err)
	}
	return s.filter(func(e core.Expense) bool {
		return e.Date >= startDate && e.Date <= endDate
	}), nil
}

func (s *MemoryStore) GetByMonth(_ context.Context, year, month int) ([]core.Expense, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	start := fmt.Sprintf("%04d-%02d-01", year, month)
	var next string
	if month == 12 {
		next = fmt.Sprintf("%04d-01-01", year+1)
	} else {
		next = fmt.Sprintf("%04d-%02d-01", year, month+1)
	}
	return s.filter(func(e core.Expense) bool {
		return e.Date >= start && e.Date < next
	}), nil
}

func (s *MemoryStore) Search(_ context.Context, text string) ([]core.Expense, error) {
	needle := strings.ToLower(text)
	return s.filter(func(e core.Expense) bool {
		return strings.Contains(strings.ToLower(e.Description), needle)
	}), nil
}

func (s *MemoryStore) Update(_ context.Context, id int64, u core.ExpenseUpdate) (bool, error) {
	if u.IsEmpty() {
		return false, nil
	}

	var normalizedDate string
	if u.Date != nil {
		d, err := dates.Normalize(*u.Date)
		if err != nil {
			return false, fmt.Errorf("normalize date: %w", err)
		}
		normalizedDate = d
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.expenses {
		if s.expenses[i].ID != id {
			continue
		}
		if u.Amount != nil {
			s.expenses[i].Amount = *u.Amount
		}
		if u.Description != nil {
			s.expenses[i].Description = strings.TrimSpace(*u.Description)
		}
		if u.Category != nil {
			s.expenses[i].Category = core.NormalizeCategory(*u.Category)
		}
		if u.Date != nil {
			s.expenses[i].Date = normalizedDate
		}
		now := time.Now().UTC().Truncate(time.Second)
		s.expenses[i].UpdatedAt = &now
		return true, nil
	}
	return false, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = nil
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) filter(keep func(core.Expense) bool) []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []core.Expense{}
	for _, e := range s.expenses {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

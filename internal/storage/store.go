package storage

import (
	"context"

	"spendtrack/internal/core"
)

// Store is the persistence contract for the expense collection. The
// SQLite repository is the durable implementation; the memory store
// backs demos and tests.
type Store interface {
	Add(ctx context.Context, e core.NewExpense) (int64, error)
	GetAll(ctx context.Context) ([]core.Expense, error)
	GetByID(ctx context.Context, id int64) (core.Expense, error)
	GetByCategory(ctx context.Context, category string) ([]core.Expense, error)
	GetByDateRange(ctx context.Context, start, end string) ([]core.Expense, error)
	GetByMonth(ctx context.Context, year, month int) ([]core.Expense, error)
	Search(ctx context.Context, text string) ([]core.Expense, error)
	Update(ctx context.Context, id int64, u core.ExpenseUpdate) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ClearAll(ctx context.Context) error
	Close() error
}

// Package ports declares the collaborator contract the presentation
// layer consumes. Commands mutate the store, queries read it, and the
// stats port exposes derived aggregates.
package ports

import (
	"context"

	"spendtrack/internal/core"
)

type (
	// ExpenseCommander covers every mutating operation.
	ExpenseCommander interface {
		Add(ctx context.Context, e core.NewExpense) (int64, error)
		Update(ctx context.Context, id int64, u core.ExpenseUpdate) (bool, error)
		Delete(ctx context.Context, id int64) (bool, error)
		ClearAll(ctx context.Context) error
		ImportSampleData(ctx context.Context) (int, error)
		ExportCSV(ctx context.Context, path string) (string, error)
	}

	// ExpenseQuerier covers record-returning reads. List queries return
	// empty slices for no matches; GetByID returns a not-found error.
	ExpenseQuerier interface {
		GetAll(ctx context.Context) ([]core.Expense, error)
		GetByID(ctx context.Context, id int64) (core.Expense, error)
		GetByCategory(ctx context.Context, category string) ([]core.Expense, error)
		GetByDateRange(ctx context.Context, start, end string) ([]core.Expense, error)
		GetByMonth(ctx context.Context, year, month int) ([]core.Expense, error)
		Search(ctx context.Context, text string) ([]core.Expense, error)
	}

	// StatsReader exposes the derived aggregates of the statistics engine.
	StatsReader interface {
		TotalAmount(ctx context.Context) (core.Money, error)
		CategorySummary(ctx context.Context) (map[string]core.CategoryStats, error)
		MonthlySummary(ctx context.Context) ([]core.MonthSummary, error)
		Recent(ctx context.Context, n int) ([]core.Expense, error)
		AvailableCategories(ctx context.Context) ([]string, error)
		OverallStatistics(ctx context.Context) (core.Statistics, error)
	}
)

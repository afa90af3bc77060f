// Package stats derives read-side aggregates from the expense store.
// Every derivation works on a snapshot from GetAll and never mutates
// the collection.
package stats

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"spendtrack/internal/core"
)

// Reader is the read-only port the engine consumes. The store
// implements it.
type Reader interface {
	GetAll(ctx context.Context) ([]core.Expense, error)
}

type Engine struct {
	reader Reader
}

func NewEngine(reader Reader) *Engine {
	return &Engine{reader: reader}
}

// TotalAmount sums all expense amounts. Zero for an empty store.
func (e *Engine) TotalAmount(ctx context.Context) (core.Money, error) {
	expenses, err := e.reader.GetAll(ctx)
	if err != nil {
		return core.Money{}, fmt.Errorf("load expenses: %w", err)
	}
	var total int64
	for _, exp := range expenses {
		total += exp.Amount.Cents
	}
	return core.Money{Cents: total}, nil
}

// CategorySummary maps each category to its total, count and average.
func (e *Engine) CategorySummary(ctx context.Context) (map[string]core.CategoryStats, error) {
	expenses, err := e.reader.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	summary := make(map[string]core.CategoryStats)
	for _, exp := range expenses {
		s := summary[exp.Category]
		s.Total.Cents += exp.Amount.Cents
		s.Count++
		summary[exp.Category] = s
	}
	for category, s := range summary {
		s.Average = core.Money{Cents: roundDiv(s.Total.Cents, int64(s.Count))}
		summary[category] = s
	}
	return summary, nil
}

// MonthlySummary pivots total amount by month and category, with a
// per-month Total, in chronological order. Empty store yields an
// empty slice, not an error.
func (e *Engine) MonthlySummary(ctx context.Context) ([]core.MonthSummary, error) {
	expenses, err := e.reader.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	type monthKey struct{ year, month int }
	byMonth := make(map[monthKey]*core.MonthSummary)
	for _, exp := range expenses {
		year, month, err := splitCanonical(exp.Date)
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", exp.ID, err)
		}
		key := monthKey{year, month}
		row, ok := byMonth[key]
		if !ok {
			row = &core.MonthSummary{
				Month:      monthLabel(year, month),
				Year:       year,
				MonthNum:   month,
				ByCategory: make(map[string]core.Money),
			}
			byMonth[key] = row
		}
		cat := row.ByCategory[exp.Category]
		cat.Cents += exp.Amount.Cents
		row.ByCategory[exp.Category] = cat
		row.Total.Cents += exp.Amount.Cents
	}

	rows := make([]core.MonthSummary, 0, len(byMonth))
	for _, row := range byMonth {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].MonthNum < rows[j].MonthNum
	})
	return rows, nil
}

// Recent returns the n most recently created expenses, newest first.
// created_at has second resolution, so records created in the same
// instant keep their insertion order relative to each other.
func (e *Engine) Recent(ctx context.Context, n int) ([]core.Expense, error) {
	expenses, err := e.reader.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	if n <= 0 {
		return []core.Expense{}, nil
	}

	sorted := make([]core.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n], nil
}

// AvailableCategories returns the union of categories present in the
// data and the default suggestion list, deduplicated and sorted.
func (e *Engine) AvailableCategories(ctx context.Context) ([]string, error) {
	expenses, err := e.reader.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	seen := make(map[string]struct{}, len(core.DefaultCategories))
	categories := make([]string, 0, len(core.DefaultCategories))
	add := func(c string) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}
	for _, exp := range expenses {
		add(exp.Category)
	}
	for _, c := range core.DefaultCategories {
		add(c)
	}
	sort.Strings(categories)
	return categories, nil
}

// OverallStatistics computes the dataset-wide aggregate. An empty
// store yields the zero-value sentinel with a nil date range.
func (e *Engine) OverallStatistics(ctx context.Context) (core.Statistics, error) {
	expenses, err := e.reader.GetAll(ctx)
	if err != nil {
		return core.Statistics{}, fmt.Errorf("load expenses: %w", err)
	}
	if len(expenses) == 0 {
		return core.Statistics{}, nil
	}

	stats := core.Statistics{
		Count: len(expenses),
		Min:   expenses[0].Amount,
		Max:   expenses[0].Amount,
	}
	minDate, maxDate := expenses[0].Date, expenses[0].Date

	totals := make(map[string]int64)
	counts := make(map[string]int)
	var order []string // first-appearance order for deterministic tie-breaks

	for _, exp := range expenses {
		stats.Total.Cents += exp.Amount.Cents
		if exp.Amount.Cents > stats.Max.Cents {
			stats.Max = exp.Amount
		}
		if exp.Amount.Cents < stats.Min.Cents {
			stats.Min = exp.Amount
		}
		if exp.Date < minDate {
			minDate = exp.Date
		}
		if exp.Date > maxDate {
			maxDate = exp.Date
		}
		if _, ok := totals[exp.Category]; !ok {
			order = append(order, exp.Category)
		}
		totals[exp.Category] += exp.Amount.Cents
		counts[exp.Category]++
	}

	stats.Average = core.Money{Cents: roundDiv(stats.Total.Cents, int64(stats.Count))}
	stats.CategoriesCount = len(totals)
	stats.DateRange = &core.DateRange{Start: minDate, End: maxDate}

	var topTotal int64 = -1
	var topCount = -1
	for _, category := range order {
		if totals[category] > topTotal {
			topTotal = totals[category]
			stats.TopCategory = category
		}
		if counts[category] > topCount {
			topCount = counts[category]
			stats.MostFrequentCategory = category
		}
	}

	return stats, nil
}

// roundDiv divides total by count with half-up rounding, so averages
// compare equal to their two-digit display form.
func roundDiv(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return (total + count/2) / count
}

func splitCanonical(date string) (year, month int, err error) {
	if len(date) != 10 || date[4] != '-' || date[7] != '-' {
		return 0, 0, fmt.Errorf("non-canonical date %q", date)
	}
	year, err = strconv.Atoi(date[:4])
	if err != nil {
		return 0, 0, fmt.Errorf("non-canonical date %q", date)
	}
	month, err = strconv.Atoi(date[5:7])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("non-canonical date %q", date)
	}
	return year, month, nil
}

func monthLabel(year, month int) string {
	return time.Month(month).String() + " " + strconv.Itoa(year)
}

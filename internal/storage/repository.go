// Package storage owns the persisted expense collection. It is the
// only component allowed to mutate records; everything else reads
// through it.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"spendtrack/internal/core"
	"spendtrack/internal/dates"

	_ "modernc.org/sqlite"
)

// ErrNotFound signals a lookup addressing an id that does not exist.
var ErrNotFound = errors.New("expense not found")

// SQLiteRepository is the expense store backed by a local SQLite file.
//
// All id-assigning writes are serialized through mu: the next id is
// max(existing)+1, which is a read-then-write race under concurrent
// writers.
type SQLiteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Add normalizes and persists a new expense: the date is canonicalized
// (current date when absent), the category gets its first rune
// uppercased, the description is trimmed, and created_at is stamped
// once in UTC. Returns the assigned id.
func (r *SQLiteRepository) Add(ctx context.Context, e core.NewExpense) (int64, error) {
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

	createdAt := time.Now().UTC().Truncate(time.Second)

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Ids are max(remaining)+1: deleting a middle id never recycles it,
	// but deleting the highest id frees it for the next insert.
	var nextID int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM expenses`).Scan(&nextID); err != nil {
		return 0, fmt.Errorf("compute next id: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, amount_cents, description, category, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		nextID,
		e.Amount.Cents,
		strings.TrimSpace(e.Description),
		core.NormalizeCategory(e.Category),
		date,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", nextID,
		"amount_cents", e.Amount.Cents,
		"category", core.NormalizeCategory(e.Category),
		"date", date)

	return nextID, nil
}

const selectColumns = `id, amount_cents, description, category, date, created_at, updated_at`

// GetAll returns the full collection ordered by id. The collection has
// no inherent ordering contract; id order is just a deterministic
// default that coincides with insertion order.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]core.Expense, error) {
	return r.query(ctx, `SELECT `+selectColumns+` FROM expenses ORDER BY id`)
}

// GetByID returns a single expense or ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense by id: %w", err)
	}
	return e, nil
}

// GetByCategory matches exactly against the normalized (capitalized)
// form of the supplied category.
func (r *SQLiteRepository) GetByCategory(ctx context.Context, category string) ([]core.Expense, error) {
	return r.query(ctx,
		`SELECT `+selectColumns+` FROM expenses WHERE category = ? ORDER BY id`,
		core.NormalizeCategory(category))
}

// GetByDateRange returns expenses whose date falls inclusively within
// [start, end]. Both bounds are normalized first; comparison is
// lexicographic, which matches calendar order for canonical dates.
func (r *SQLiteRepository) GetByDateRange(ctx context.Context, start, end string) ([]core.Expense, error) {
	startDate, err := dates.Normalize(start)
	if err != nil {
		return nil, fmt.Errorf("normalize start date: %w", err)
	}
	endDate, err := dates.Normalize(end)
	if err != nil {
		return nil, fmt.Errorf("normalize end date: %w", err)
	}
	return r.query(ctx,
		`SELECT `+selectColumns+` FROM expenses WHERE date >= ? AND date <= ? ORDER BY id`,
		startDate, endDate)
}

// GetByMonth returns the expenses of one calendar month using the
// half-open range [year-month-01, next-month-01). December rolls into
// January of the next year.
func (r *SQLiteRepository) GetByMonth(ctx context.Context, year, month int) ([]core.Expense, error) {
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
	return r.query(ctx,
		`SELECT `+selectColumns+` FROM expenses WHERE date >= ? AND date < ? ORDER BY id`,
		start, next)
}

// Search performs a case-insensitive substring match on descriptions.
func (r *SQLiteRepository) Search(ctx context.Context, text string) ([]core.Expense, error) {
	pattern := "%" + escapeLike(text) + "%"
	return r.query(ctx,
		`SELECT `+selectColumns+` FROM expenses WHERE description LIKE ? ESCAPE '\' ORDER BY id`,
		pattern)
}

// Update overwrites only the supplied fields, re-normalizing any
// supplied date or category, and stamps updated_at. Returns false when
// the id does not exist or the update carries no fields.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, u core.ExpenseUpdate) (bool, error) {
	if u.IsEmpty() {
		return false, nil
	}

	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if u.Amount != nil {
		sets = append(sets, "amount_cents = ?")
		args = append(args, u.Amount.Cents)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, strings.TrimSpace(*u.Description))
	}
	if u.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, core.NormalizeCategory(*u.Category))
	}
	if u.Date != nil {
		normalized, err := dates.Normalize(*u.Date)
		if err != nil {
			return false, fmt.Errorf("normalize date: %w", err)
		}
		sets = append(sets, "date = ?")
		args = append(args, normalized)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Truncate(time.Second).Format(time.RFC3339))
	args = append(args, id)

	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return false, fmt.Errorf("update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	slog.InfoContext(ctx, "Expense updated", "id", id)
	return true, nil
}

// Delete removes the expense permanently. Returns false when the id
// does not exist.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return true, nil
}

// ClearAll empties the collection unconditionally. Irreversible.
func (r *SQLiteRepository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	slog.WarnContext(ctx, "All expenses cleared")
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, q string, args ...any) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	// List queries return empty slices, never nil.
	expenses := []core.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e         core.Expense
		createdAt string
		updatedAt sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Amount.Cents, &e.Description, &e.Category, &e.Date, &createdAt, &updatedAt); err != nil {
		return core.Expense{}, err
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	e.CreatedAt = created

	// Older records may predate updated_at; absent means never modified.
	if updatedAt.Valid && updatedAt.String != "" {
		updated, err := time.Parse(time.RFC3339, updatedAt.String)
		if err != nil {
			return core.Expense{}, fmt.Errorf("parse updated_at %q: %w", updatedAt.String, err)
		}
		e.UpdatedAt = &updated
	}

	return e, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

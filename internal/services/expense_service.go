package services

import (
	"context"
	"fmt"
	"log/slog"

	"spendtrack/internal/amqp"
	"spendtrack/internal/core"
	"spendtrack/internal/storage"
)

// EventPublisher notifies external consumers of collection changes.
// A nil publisher disables events without affecting commands.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, id int64, action string) error
	Close() error
}

// ExpenseService validates commands, delegates to the store and
// publishes change events. It is the single write path the
// presentation layer sees.
type ExpenseService struct {
	storage   storage.Store
	publisher EventPublisher
	exportDir string
}

func NewExpenseService(storage storage.Store, publisher EventPublisher, exportDir string) *ExpenseService {
	return &ExpenseService{
		storage:   storage,
		publisher: publisher,
		exportDir: exportDir,
	}
}

// Add validates and persists a new expense, returning the assigned id.
func (s *ExpenseService) Add(ctx context.Context, e core.NewExpense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	id, err := s.storage.Add(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("add expense: %w", err)
	}

	s.publishEvent(ctx, id, amqp.ActionCreated)
	return id, nil
}

// Update applies a partial field set. Returns false when the id is
// unknown or the update carries no fields.
func (s *ExpenseService) Update(ctx context.Context, id int64, u core.ExpenseUpdate) (bool, error) {
	if err := u.Validate(); err != nil {
		return false, err
	}

	updated, err := s.storage.Update(ctx, id, u)
	if err != nil {
		return false, fmt.Errorf("update expense: %w", err)
	}
	if updated {
		s.publishEvent(ctx, id, amqp.ActionUpdated)
	}
	return updated, nil
}

// Delete removes an expense permanently. Returns false when the id is
// unknown.
func (s *ExpenseService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.storage.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	if deleted {
		s.publishEvent(ctx, id, amqp.ActionDeleted)
	}
	return deleted, nil
}

// ClearAll wipes the entire collection.
func (s *ExpenseService) ClearAll(ctx context.Context) error {
	if err := s.storage.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear all expenses: %w", err)
	}
	s.publishEvent(ctx, 0, amqp.ActionCleared)
	return nil
}

func (s *ExpenseService) GetAll(ctx context.Context) ([]core.Expense, error) {
	return s.storage.GetAll(ctx)
}

func (s *ExpenseService) GetByID(ctx context.Context, id int64) (core.Expense, error) {
	return s.storage.GetByID(ctx, id)
}

func (s *ExpenseService) GetByCategory(ctx context.Context, category string) ([]core.Expense, error) {
	return s.storage.GetByCategory(ctx, category)
}

func (s *ExpenseService) GetByDateRange(ctx context.Context, start, end string) ([]core.Expense, error) {
	return s.storage.GetByDateRange(ctx, start, end)
}

func (s *ExpenseService) GetByMonth(ctx context.Context, year, month int) ([]core.Expense, error) {
	return s.storage.GetByMonth(ctx, year, month)
}

func (s *ExpenseService) Search(ctx context.Context, text string) ([]core.Expense, error) {
	return s.storage.Search(ctx, text)
}

// publishEvent is best-effort: a broker failure never fails the
// command, the change is already durable locally.
func (s *ExpenseService) publishEvent(ctx context.Context, id int64, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseEvent(ctx, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"id", id, "action", action, "error", err)
	}
}

// Close closes both storage and the event publisher.
func (s *ExpenseService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}

	return nil
}

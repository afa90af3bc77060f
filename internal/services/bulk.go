package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ImportSampleData inserts the fixed demo catalog through the normal
// Add path, so normalization and id assignment apply as usual.
//
// Best-effort by choice: a failed insert is logged and skipped, prior
// inserts stand. Returns the number imported and an error if any
// insert failed.
func (s *ExpenseService) ImportSampleData(ctx context.Context) (int, error) {
	imported := 0
	failed := 0
	for _, e := range sampleExpenses {
		if _, err := s.Add(ctx, e); err != nil {
			slog.ErrorContext(ctx, "Failed to import sample expense",
				"description", e.Description, "error", err)
			failed++
			continue
		}
		imported++
	}

	slog.InfoContext(ctx, "Sample data import finished",
		"imported", imported, "failed", failed)

	if failed > 0 {
		return imported, fmt.Errorf("import sample data: %d of %d inserts failed", failed, len(sampleExpenses))
	}
	return imported, nil
}

// ExportCSV serializes the full collection to a delimited file and
// returns its path. An empty collection writes nothing and returns an
// empty path. With no path given, one is derived from the current
// timestamp under the configured export directory.
func (s *ExpenseService) ExportCSV(ctx context.Context, path string) (string, error) {
	expenses, err := s.storage.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("load expenses: %w", err)
	}
	if len(expenses) == 0 {
		slog.InfoContext(ctx, "Nothing to export, collection is empty")
		return "", nil
	}

	if path == "" {
		name := "expenses_export_" + time.Now().UTC().Format("20060102_150405") + ".csv"
		path = filepath.Join(s.exportDir, name)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "date", "description", "category", "amount", "created_at", "updated_at"}); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, e := range expenses {
		updatedAt := ""
		if e.UpdatedAt != nil {
			updatedAt = e.UpdatedAt.Format(time.RFC3339)
		}
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Date,
			e.Description,
			e.Category,
			e.Amount.String(),
			e.CreatedAt.Format(time.RFC3339),
			updatedAt,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write row for expense %d: %w", e.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush export file: %w", err)
	}

	slog.InfoContext(ctx, "Expenses exported", "path", path, "count", len(expenses))
	return path, nil
}

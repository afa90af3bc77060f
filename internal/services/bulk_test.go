package services

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spendtrack/internal/core"
	"spendtrack/internal/storage"
)

func TestImportSampleData(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t)

	imported, err := svc.ImportSampleData(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if imported != len(sampleExpenses) {
		t.Errorf("imported = %d, want %d", imported, len(sampleExpenses))
	}

	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(sampleExpenses) {
		t.Fatalf("stored = %d, want %d", len(all), len(sampleExpenses))
	}
	// Sample rows flow through the normal add path: sequential ids, one
	// created event each.
	if all[0].ID != 1 || all[len(all)-1].ID != int64(len(sampleExpenses)) {
		t.Errorf("ids = %d..%d", all[0].ID, all[len(all)-1].ID)
	}
	if len(pub.events) != len(sampleExpenses) {
		t.Errorf("events = %d, want %d", len(pub.events), len(sampleExpenses))
	}
}

func TestImportSampleDataAppendsToExisting(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	_, _ = svc.Add(ctx, validExpense())

	imported, err := svc.ImportSampleData(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if imported != len(sampleExpenses) {
		t.Errorf("imported = %d, want %d", imported, len(sampleExpenses))
	}

	all, _ := svc.GetAll(ctx)
	if len(all) != len(sampleExpenses)+1 {
		t.Errorf("stored = %d, want %d", len(all), len(sampleExpenses)+1)
	}
}

func TestExportCSVEmptyCollection(t *testing.T) {
	svc, _ := newTestService(t)

	path, err := svc.ExportCSV(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Errorf("empty collection should export nothing, got path %q", path)
	}
}

func TestExportCSVDefaultPath(t *testing.T) {
	ctx := context.Background()
	exportDir := t.TempDir()
	svc := NewExpenseService(storage.NewMemoryStore(), nil, exportDir)
	_, _ = svc.Add(ctx, validExpense())

	path, err := svc.ExportCSV(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != exportDir {
		t.Errorf("path %q not under export dir %q", path, exportDir)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "expenses_export_") || !strings.HasSuffix(name, ".csv") {
		t.Errorf("unexpected file name %q", name)
	}
}

func TestExportCSVContent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	id, _ := svc.Add(ctx, validExpense())

	desc := "Dinner"
	if ok, err := svc.Update(ctx, id, core.ExpenseUpdate{Description: &desc}); err != nil || !ok {
		t.Fatalf("update = %v, %v", ok, err)
	}
	_, _ = svc.Add(ctx, validExpense())

	out := filepath.Join(t.TempDir(), "nested", "out.csv")
	path, err := svc.ExportCSV(ctx, out)
	if err != nil {
		t.Fatal(err)
	}
	if path != out {
		t.Errorf("path = %q, want %q", path, out)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}

	header := strings.Join(rows[0], ",")
	if header != "id,date,description,category,amount,created_at,updated_at" {
		t.Errorf("header = %q", header)
	}

	first := rows[1]
	if first[0] != "1" || first[1] != "2024-01-15" || first[2] != "Dinner" || first[3] != "Food" || first[4] != "25.50" {
		t.Errorf("first row = %v", first)
	}
	if first[6] == "" {
		t.Error("updated record should carry updated_at")
	}
	if rows[2][6] != "" {
		t.Error("never-updated record should have empty updated_at")
	}
}

// Command spendtrack-admin operates on the expense store directly,
// without going through the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"spendtrack/internal/cli"
	applog "spendtrack/internal/log"
	"spendtrack/internal/services"
	"spendtrack/internal/stats"
)

const usage = `Usage: spendtrack-admin <command> [flags]

Commands:
  import            load the bundled sample dataset
  export [-o path]  export all expenses to a CSV file
  clear  [-force]   delete every expense
  stats             print overall statistics
  list              print all expenses
`

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	cfg := cli.LoadAndValidateConfig(logger)
	store := cli.InitStore(logger, cfg)

	service := services.NewExpenseService(store, nil, cfg.ExportDir)
	defer func() {
		if err := service.Close(); err != nil {
			logger.Error("Close error", applog.FieldError, err)
		}
	}()
	engine := stats.NewEngine(store)

	// Ctrl-C aborts a long-running command; the store is closed before
	// the command context is cancelled.
	sigCtx := cli.GracefulShutdown(logger, func() {
		if err := service.Close(); err != nil {
			logger.Error("Close error", applog.FieldError, err)
		}
	})
	ctx, cancel := context.WithTimeout(sigCtx, 2*time.Minute)
	defer cancel()

	var err error
	switch command {
	case "import":
		err = runImport(ctx, service)
	case "export":
		err = runExport(ctx, service, args)
	case "clear":
		err = runClear(ctx, service, args)
	case "stats":
		err = runStats(ctx, engine)
	case "list":
		err = runList(ctx, service)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", command, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Error("Command failed", "command", command, applog.FieldError, err)
		os.Exit(1)
	}
}

func runImport(ctx context.Context, service *services.ExpenseService) error {
	imported, err := service.ImportSampleData(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d sample expenses\n", imported)
	return nil
}

func runExport(ctx context.Context, service *services.ExpenseService, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "", "output file path (default: timestamped file in the export directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := service.ExportCSV(ctx, *out)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println("Nothing to export, the collection is empty")
		return nil
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

func runClear(ctx context.Context, service *services.ExpenseService, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	force := fs.Bool("force", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*force {
		fmt.Print("Delete ALL expenses? Type 'yes' to confirm: ")
		var answer string
		if _, err := fmt.Scanln(&answer); err != nil || answer != "yes" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := service.ClearAll(ctx); err != nil {
		return err
	}
	fmt.Println("All expenses deleted")
	return nil
}

func runStats(ctx context.Context, engine *stats.Engine) error {
	s, err := engine.OverallStatistics(ctx)
	if err != nil {
		return err
	}
	if s.Count == 0 {
		fmt.Println("No expenses recorded")
		return nil
	}

	fmt.Printf("Expenses:       %d\n", s.Count)
	fmt.Printf("Total:          %s\n", s.Total)
	fmt.Printf("Average:        %s\n", s.Average)
	fmt.Printf("Largest:        %s\n", s.Max)
	fmt.Printf("Smallest:       %s\n", s.Min)
	fmt.Printf("Categories:     %d\n", s.CategoriesCount)
	fmt.Printf("Top category:   %s\n", s.TopCategory)
	fmt.Printf("Most frequent:  %s\n", s.MostFrequentCategory)
	if s.DateRange != nil {
		fmt.Printf("Date range:     %s .. %s\n", s.DateRange.Start, s.DateRange.End)
	}
	return nil
}

func runList(ctx context.Context, service *services.ExpenseService) error {
	expenses, err := service.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		fmt.Println("No expenses recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tCATEGORY\tDESCRIPTION")
	for _, e := range expenses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Amount, e.Category, e.Description)
	}
	return w.Flush()
}

package cli

import (
	"io"
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	applog "spendtrack/internal/log"
)

func quietLogger() *applog.Logger {
	return applog.New(applog.Config{
		Handler: slog.NewTextHandler(io.Discard, nil),
	})
}

func TestGracefulShutdownCancelsContextOnSignal(t *testing.T) {
	cleaned := make(chan struct{})
	ctx := GracefulShutdown(quietLogger(), func() { close(cleaned) })

	select {
	case <-ctx.Done():
		t.Fatal("context cancelled before any signal")
	default:
	}

	if err := syscall.Kill(os.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("sending SIGTERM: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled after SIGTERM")
	}

	// Cleanup runs before the cancellation, so it must be observable
	// by the time the context is done.
	select {
	case <-cleaned:
	case <-time.After(time.Second):
		t.Fatal("cleanup not invoked on shutdown")
	}
}

func TestGracefulShutdownNilCleanup(t *testing.T) {
	ctx := GracefulShutdown(quietLogger(), nil)

	if err := syscall.Kill(os.Getpid(), syscall.SIGINT); err != nil {
		t.Fatalf("sending SIGINT: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled after SIGINT")
	}
}

// Package http exposes the expense collection as a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"spendtrack/internal/cache"
	"spendtrack/internal/core"
	"spendtrack/internal/middleware/ratelimit"
	"spendtrack/internal/middleware/security"
	"spendtrack/internal/middleware/trace"
	"spendtrack/internal/ports"
)

const (
	summaryCacheKey = "summary"
	monthlyCacheKey = "monthly"
	statsCacheKey   = "statistics"
)

type Server struct {
	http.Server

	commands ports.ExpenseCommander
	queries  ports.ExpenseQuerier
	stats    ports.StatsReader

	limiter  *ratelimit.Limiter
	cacheMgr *cache.Manager

	// Derived read-side data, invalidated on every successful command.
	summaryCache *cache.LRUCache[map[string]core.CategoryStats]
	monthlyCache *cache.LRUCache[[]core.MonthSummary]
	statsCache   *cache.LRUCache[core.Statistics]

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, commands ports.ExpenseCommander, queries ports.ExpenseQuerier, stats ports.StatsReader, cacheTTL time.Duration) *Server {
	s := &Server{
		commands: commands,
		queries:  queries,
		stats:    stats,

		limiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		cacheMgr: cache.NewManager(),

		summaryCache: cache.NewLRUCache[map[string]core.CategoryStats](10, cacheTTL),
		monthlyCache: cache.NewLRUCache[[]core.MonthSummary](10, cacheTTL),
		statsCache:   cache.NewLRUCache[core.Statistics](10, cacheTTL),
	}

	s.cacheMgr.Register(s.summaryCache)
	s.cacheMgr.Register(s.monthlyCache)
	s.cacheMgr.Register(s.statsCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("GET /api/expenses/recent", s.handleRecentExpenses)
	mux.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/summary/total", s.handleTotal)
	mux.HandleFunc("GET /api/summary/categories", s.handleCategorySummary)
	mux.HandleFunc("GET /api/summary/monthly", s.handleMonthlySummary)
	mux.HandleFunc("GET /api/statistics", s.handleStatistics)

	mux.HandleFunc("POST /api/sample-data", s.handleImportSampleData)
	mux.HandleFunc("POST /api/export", s.handleExport)
	mux.HandleFunc("POST /api/clear", s.handleClearAll)

	// trace (outermost) -> rate limit -> security headers -> mux
	var handler http.Handler = mux
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.limiter.Middleware(clientIP, handleRateLimited)(handler)
	handler = trace.NewMiddleware(clientIP).Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		s.cacheMgr.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// invalidateDerived drops all cached aggregates. Called after every
// successful command so reads never observe stale derived data.
func (s *Server) invalidateDerived() {
	s.summaryCache.Clear()
	s.monthlyCache.Clear()
	s.statsCache.Clear()
}

func (s *Server) getCategorySummary(ctx context.Context) (map[string]core.CategoryStats, error) {
	if data, found := s.summaryCache.Get(summaryCacheKey); found {
		slog.DebugContext(ctx, "Category summary cache hit")
		return data, nil
	}
	data, err := s.stats.CategorySummary(ctx)
	if err != nil {
		return nil, err
	}
	s.summaryCache.Set(summaryCacheKey, data)
	return data, nil
}

func (s *Server) getMonthlySummary(ctx context.Context) ([]core.MonthSummary, error) {
	if data, found := s.monthlyCache.Get(monthlyCacheKey); found {
		slog.DebugContext(ctx, "Monthly summary cache hit")
		return data, nil
	}
	data, err := s.stats.MonthlySummary(ctx)
	if err != nil {
		return nil, err
	}
	s.monthlyCache.Set(monthlyCacheKey, data)
	return data, nil
}

func (s *Server) getStatistics(ctx context.Context) (core.Statistics, error) {
	if data, found := s.statsCache.Get(statsCacheKey); found {
		slog.DebugContext(ctx, "Statistics cache hit")
		return data, nil
	}
	data, err := s.stats.OverallStatistics(ctx)
	if err != nil {
		return core.Statistics{}, err
	}
	s.statsCache.Set(statsCacheKey, data)
	return data, nil
}

func handleRateLimited(w http.ResponseWriter, r *http.Request) {
	slog.WarnContext(r.Context(), "Rate limit exceeded",
		"client_ip", clientIP(r), "method", r.Method, "path", r.URL.Path)
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

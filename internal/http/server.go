// Package http exposes the JSON API for expenses and analysis.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"tally/internal/analysis"
	"tally/internal/cache"
	"tally/internal/charts"
	"tally/internal/core"
	"tally/internal/services"
	"tally/internal/storage"
)

type Server struct {
	http.Server
	service     *services.ExpenseService
	analyzer    *analysis.Analyzer
	charts      *charts.Generator
	rateLimiter *rateLimiter

	// Cached read models, purged on every expense mutation.
	snapshotCache *cache.Cache[[]core.Expense]
	summaryCache  *cache.Cache[storage.MonthSummary]

	stopCacheSweep chan struct{}
	shutdownOnce   sync.Once
}

// Options tunes the server caches.
type Options struct {
	CacheTTL  time.Duration
	CacheSize int
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, service *services.ExpenseService, analyzer *analysis.Analyzer, opts Options) *Server {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 128
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		service:        service,
		analyzer:       analyzer,
		charts:         charts.NewGenerator(),
		rateLimiter:    newRateLimiter(),
		snapshotCache:  cache.New[[]core.Expense](opts.CacheSize, opts.CacheTTL),
		summaryCache:   cache.New[storage.MonthSummary](opts.CacheSize, opts.CacheTTL),
		stopCacheSweep: make(chan struct{}),
	}

	go s.startCacheSweep()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /expenses", s.withMiddleware(s.handleCreateExpense))
	mux.HandleFunc("GET /expenses", s.withMiddleware(s.handleListExpenses))
	mux.HandleFunc("GET /expenses/{id}", s.withMiddleware(s.handleGetExpense))
	mux.HandleFunc("PUT /expenses/{id}", s.withMiddleware(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /expenses/{id}", s.withMiddleware(s.handleDeleteExpense))

	mux.HandleFunc("GET /categorize", s.withMiddleware(s.handleCategorize))
	mux.HandleFunc("GET /analysis/monthly", s.withMiddleware(s.handleMonthlyAnalysis))
	mux.HandleFunc("GET /analysis/forecast", s.withMiddleware(s.handleForecast))
	mux.HandleFunc("GET /insights", s.withMiddleware(s.handleInsights))
	mux.HandleFunc("POST /query", s.withMiddleware(s.handleQuery))
	mux.HandleFunc("GET /summary", s.withMiddleware(s.handleSummary))

	mux.HandleFunc("GET /charts/trend.png", s.withMiddleware(s.handleTrendChart))
	mux.HandleFunc("GET /charts/categories.png", s.withMiddleware(s.handleCategoryChart))

	return s
}

// startCacheSweep drops expired cache entries in the background.
func (s *Server) startCacheSweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.snapshotCache.Sweep()
			s.summaryCache.Sweep()
		case <-s.stopCacheSweep:
			return
		}
	}
}

// Shutdown stops the background goroutines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheSweep != nil {
			close(s.stopCacheSweep)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.service.Snapshot(r.Context()); err != nil {
		http.Error(w, "storage not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

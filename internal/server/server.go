package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	config "github.com/nivecher/meal-expense-tracker-sub003/internal/config/server"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/db/store"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/log"
)

// Server is the web frontend: expense and restaurant list pages,
// filter and preference actions, and the export endpoint.
type Server struct {
	cfg   *config.BaseServerConfig
	store store.ExpenseStore
	log   log.LoggerService

	httpServer *http.Server
}

// NewServer wires the frontend to its store and logger.
func NewServer(cfg *config.BaseServerConfig, st store.ExpenseStore, logger log.LoggerService) *Server {
	s := &Server{
		cfg:   cfg,
		store: st,
		log:   logger,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the route table. Exposed for httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/expenses", s.handleExpenses)
	mux.HandleFunc("/expenses/filters/clear", s.handleClearFilters)
	mux.HandleFunc("/expenses/filters/save", s.handleSaveFilter)
	mux.HandleFunc("/expenses/filters/apply", s.handleApplyFilter)
	mux.HandleFunc("/expenses/export", s.handleExport)
	mux.HandleFunc("/restaurants", s.handleRestaurants)
	mux.HandleFunc("/preferences", s.handlePreferences)
	mux.HandleFunc("/healthz", s.handleHealth)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/expenses", http.StatusSeeOther)
	})

	return mux
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("listening on %s", s.cfg.HTTP.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to serve http: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Health(r.Context()); err != nil {
		s.log.Error("health check failed: %v", err)
		http.Error(w, "unhealthy", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

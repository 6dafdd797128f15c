package ui

import (
	"context"
	"net/http"
	"time"

	"fairmind/internal"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
)

// OpsServer exposes liveness and readiness probes on a separate
// listener so operational traffic never mixes with the API
type OpsServer struct {
	router *chi.Mux
	db     *sqlx.DB
	logger *internal.Logger
}

// NewOpsServer creates the ops endpoint server
func NewOpsServer(db *sqlx.DB) *OpsServer {
	s := &OpsServer{
		router: chi.NewRouter(),
		db:     db,
		logger: internal.DefaultLogger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *OpsServer) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *OpsServer) setupRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)
}

// handleHealthz reports process liveness
func (s *OpsServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz reports readiness, which requires a reachable database
func (s *OpsServer) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")
	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("[Ops] readiness check failed: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable","reason":"database unreachable"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

// Handler exposes the router for tests
func (s *OpsServer) Handler() http.Handler {
	return s.router
}

// Run starts the ops listener on the given port
func (s *OpsServer) Run(port string) error {
	s.logger.Info("[Ops] listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}

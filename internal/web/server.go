// Package web provides the HTTP server and handlers for the receipt
// ingestion API. The surface is small: list processed files, upload one
// export, read the aggregate statistics.
package web

import (
	"context"
	"io"
	"net/http"

	"github.com/mkovtun/receiptd/internal/config"
	"github.com/mkovtun/receiptd/internal/stats"
	"github.com/mkovtun/receiptd/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Ingestor processes one uploaded document end to end.
type Ingestor interface {
	ProcessUpload(ctx context.Context, filename string, r io.Reader) error
}

// FileLister reads the processed-file catalog.
type FileLister interface {
	ListFiles(ctx context.Context) ([]store.File, error)
}

// StatsProvider computes the aggregate summary.
type StatsProvider interface {
	Summary(ctx context.Context) (*stats.Summary, error)
}

// Server is the HTTP server for the receipt ingestion service.
type Server struct {
	cfg    *config.Config
	ingest Ingestor
	files  FileLister
	stats  StatsProvider
	router *chi.Mux
	server *http.Server
}

// NewServer creates a Server wired to the given collaborators.
func NewServer(cfg *config.Config, ingest Ingestor, files FileLister, statsProvider StatsProvider) *Server {
	s := &Server{
		cfg:    cfg,
		ingest: ingest,
		files:  files,
		stats:  statsProvider,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleListFiles)
	s.router.Post("/upload", s.handleUpload)
	s.router.Get("/stats", s.handleStats)
	s.router.Get("/health", s.handleHealth)
}

// Start begins listening for HTTP requests and blocks until shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders hardens all responses. The API serves JSON only, so the
// policy can be strict.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

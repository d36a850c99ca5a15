package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/battery-guide/internal/analytics"
	"github.com/terra-clan/battery-guide/internal/catalog"
	"github.com/terra-clan/battery-guide/internal/services"
	"github.com/terra-clan/battery-guide/internal/sitemap"
)

// recordTimeout bounds a single analytics write made after a search
const recordTimeout = 5 * time.Second

// Server represents the HTTP API server
type Server struct {
	router   *chi.Mux
	catalog  *catalog.Loader
	sitemap  *sitemap.Builder
	recorder analytics.Recorder
	registry *services.Registry

	recording sync.WaitGroup
}

// NewServer creates a new API server. A nil recorder disables search analytics.
func NewServer(
	loader *catalog.Loader,
	builder *sitemap.Builder,
	recorder analytics.Recorder,
	registry *services.Registry,
) *Server {
	if recorder == nil {
		recorder = analytics.NopRecorder{}
	}
	if registry == nil {
		registry = services.NewRegistry()
	}

	s := &Server{
		catalog:  loader,
		sitemap:  builder,
		recorder: recorder,
		registry: registry,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// Wait blocks until pending analytics writes finish or ctx is done
func (s *Server) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.recording.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// The catalog is public and read-only
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.With(cacheControl(time.Hour)).Get("/sitemap.xml", s.handleSitemap)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)

			r.Route("/{slug}", func(r chi.Router) {
				r.Get("/", s.handleGetCategory)
				r.Get("/batteries/{battery}", s.handleGetBattery)
				r.With(cacheControl(time.Hour)).Get("/batteries/{battery}/schematic.svg", s.handleSchematic)
			})
		})

		r.Get("/search", s.handleSearch)
		r.Get("/search/popular", s.handlePopular)
		r.Get("/search/unanswered", s.handleUnanswered)
	})

	s.router = r
}

// recordSearch counts a query without holding up the response
func (s *Server) recordSearch(query string, results int) {
	s.recording.Add(1)
	go func() {
		defer s.recording.Done()

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := s.recorder.RecordSearch(ctx, query, results); err != nil {
			slog.Warn("failed to record search", "error", err, "query", query)
		}
	}()
}

// Package server provides the HTTP API for Glance.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/glancehq/glance/internal/catalog"
	"github.com/glancehq/glance/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Server is the HTTP server for the Glance API.
type Server struct {
	catalog *catalog.Service
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(svc *catalog.Service, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		catalog: svc,
		config:  cfg,
		logger:  logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Post("/api/v1/search", s.handleSearch)
		r.Post("/api/v1/products", s.handleAddProduct)
		r.Get("/api/v1/products/{id}", s.handleGetProduct)
		r.Delete("/api/v1/products/{id}", s.handleDeleteProduct)
		r.Get("/api/v1/catalog", s.handleCatalog)
		r.Get("/api/v1/status", s.handleStatus)
		r.Get("/health", s.handleHealth)
	})

	// Rebuilding re-embeds every catalog image and can take longer
	// than the request timeout.
	r.Post("/api/v1/rebuild", s.handleRebuild)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

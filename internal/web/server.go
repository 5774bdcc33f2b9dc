// Package web exposes the editor core over HTTP as a JSON API. It is the
// seam for an external UI collaborator: listing and detail reads, session
// transitions, and mutations. All presentation concerns live on the other
// side of this API.
package web

import (
	"context"
	"net/http"

	"github.com/M4rkoza7/aces/internal/config"
	"github.com/M4rkoza7/aces/internal/core"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the aircraft table editor.
type Server struct {
	service *core.Service
	router  *chi.Mux
	server  *http.Server
	cfg     *config.Config
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		router:  chi.NewRouter(),
		cfg:     cfg,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Plane listing and detail
		r.Get("/planes", s.handleListPlanes)
		r.Get("/planes/{planeID}", s.handleGetPlane)
		r.Delete("/planes/{planeID}", s.handleDeletePlane)

		// Skins
		r.Post("/planes/{planeID}/skins", s.handleAddSkin)
		r.Delete("/skins/{skinID}", s.handleRemoveSkin)

		// Edit session
		r.Get("/session", s.handleSession)
		r.Post("/session/add", s.handleSwitchToAdd)
		r.Post("/session/edit/{planeID}", s.handleSwitchToEdit)
		r.Put("/session/draft", s.handleSetDraft)
		r.Post("/session/commit", s.handleCommit)
		r.Post("/session/discard", s.handleDiscard)

		// Table export (JSON text form)
		r.Get("/export/{table}", s.handleExport)

		// Audit log
		r.Get("/audit-log", s.handleAuditLog)
	})
}

// Start begins listening for HTTP requests.
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

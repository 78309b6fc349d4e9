// Package server exposes the workout tracking API over HTTP: session
// logging with automatic PR detection, training stats, progressive overload
// suggestions, and workout plan templates (including plans parsed from AI
// chat text).
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gymrat-ai/gymrat/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	log    *slog.Logger
	apiKey string
	router chi.Router
	now    func() time.Time
}

// New creates a Server with all routes configured. The identity middleware
// (DevIdentity or TailscaleIdentity) is chosen by the caller since it
// depends on how the listener is set up.
func New(db *storage.DB, apiKey string, identity func(http.Handler) http.Handler, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
		now:    time.Now,
	}
	s.routes(identity)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// MountMCP attaches the MCP transport under /mcp. It runs behind the same
// identity middleware as the REST routes.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}

func (s *Server) routes(identity func(http.Handler) http.Handler) {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(identity)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/me", s.handleMe)
		r.Get("/stats", s.handleStats)
		r.Get("/records", s.handleRecords)
		r.Get("/suggestions", s.handleSuggestion)
		r.Get("/sessions", s.handleQuerySessions)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Get("/plans", s.handleListPlans)
		r.Get("/plans/{id}", s.handleGetPlan)

		// Writes require the API key on top of the identity check.
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/sessions", s.handleLogSession)
			r.Post("/plans", s.handleCreatePlan)
			r.Post("/plans/{id}/activate", s.handleActivatePlan)
			r.Post("/plans/parse", s.handleParsePlan)
		})
	})
}

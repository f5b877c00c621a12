package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/claude/liftstats/internal/importer"
	"github.com/claude/liftstats/internal/stats"
	"github.com/claude/liftstats/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	svc    *stats.Service
	imp    *importer.Importer
	log    *slog.Logger
	apiKey string
	router chi.Router

	userCacheMu sync.Mutex
	userCache   map[string]uuid.UUID
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, svc *stats.Service, imp *importer.Importer, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:        db,
		svc:       svc,
		imp:       imp,
		log:       log,
		apiKey:    apiKey,
		userCache: map[string]uuid.UUID{},
		router:    chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/api/v1/health", s.handleHealth)

	// Import endpoint (API key required)
	s.router.Route("/api/v1/import", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Use(s.Identity)
		r.Post("/", s.handleImport)
		r.Get("/logs", s.handleImportLogs)
	})

	// Analytics endpoints (no auth, tsnet handles access)
	s.router.Route("/api/v1/stats", func(r chi.Router) {
		r.Use(s.Identity)
		r.Get("/frequency", s.handleFrequency)
		r.Get("/volume-trends", s.handleVolumeTrends)
		r.Get("/overload", s.handleOverload)
		r.Get("/records", s.handleRecords)
		r.Get("/milestones", s.handleMilestones)
		r.Get("/templates", s.handleTemplates)
		r.Get("/compare", s.handleCompare)
		r.Get("/weekly", s.handleWeekly)
		r.Get("/data", s.handleDataStats)
	})
	s.router.With(s.Identity).Get("/api/v1/sessions", s.handleRecentSessions)
	s.router.Get("/api/v1/aliases", s.handleAliases)
	s.router.With(APIKeyAuth(s.apiKey)).Put("/api/v1/aliases", s.handleUpsertAlias)
}

package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/lazypower/leitner/internal/leitner"
	"github.com/lazypower/leitner/internal/store"
)

// Server is the leitner HTTP API server for one learner profile.
type Server struct {
	db      *store.DB
	profile string
	router  chi.Router
	version string
	started time.Time
	log     zerolog.Logger

	// mu serializes turns; the scheduler itself is single-threaded.
	mu    sync.Mutex
	sched *leitner.Scheduler
}

// New creates a new Server over the profile's scheduler.
func New(db *store.DB, sched *leitner.Scheduler, profile, version string, log zerolog.Logger) *Server {
	s := &Server{
		db:      db,
		profile: profile,
		sched:   sched,
		version: version,
		started: time.Now(),
		log:     log.With().Str("component", "server").Logger(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Stats returns the profile stats, serialized with request handling.
func (s *Server) Stats() leitner.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.Stats()
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/next", s.handleNext)
		r.Get("/stats", s.handleStats)
		r.Post("/override", s.handleOverride)
		r.Post("/reset", s.handleReset)
		r.Get("/answers", s.handleAnswers)
		r.Get("/categories", s.handleCategories)

		r.Get("/cards", s.handleListCards)
		r.Post("/cards", s.handleAddCard)
		r.Post("/cards/{cardID}/answer", s.handleAnswer)
		r.Post("/cards/{cardID}/pause", s.handlePause)
		r.Post("/cards/{cardID}/resume", s.handleResume)

		r.Get("/focus", s.handleGetFocus)
		r.Post("/focus", s.handlePin)
		r.Post("/focus/pop", s.handlePop)
		r.Delete("/focus", s.handleClearFocus)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"profile": s.profile,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

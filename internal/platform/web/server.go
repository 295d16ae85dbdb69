// Package web serves the leaderboard as a small read-only JSON API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/diamond-mine/internal/registry"
	"github.com/vovakirdan/diamond-mine/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ScoreSource is the read side of the score store.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	HighScore(gameID string) (int, error)
	GetAllGamesStats() (map[string]*storage.GameStats, error)
}

// GameInfo is one entry of GET /api/games.
type GameInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	HighScore   int    `json:"high_score"`
}

// Server is the HTTP leaderboard.
type Server struct {
	scores ScoreSource
	logger *log.Logger
	router chi.Router
	server *http.Server
}

// NewServer builds the router for addr. Nothing listens until ListenAndServe.
func NewServer(addr string, scores ScoreSource, logger *log.Logger) *Server {
	s := &Server{scores: scores, logger: logger}

	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.Recoverer)
	r.Use(s.accessLog)
	r.Use(Compress)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/games", s.handleGames)
		r.Get("/scores/{game}", s.handleScores)
		r.Get("/stats", s.handleStats)
	})

	s.router = r
	s.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting web server", "address", s.server.Addr)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []any{
			"status", rec.status,
			"method", r.Method,
			"path", r.URL.Path,
			"latency", time.Since(start),
			"req", chimid.GetReqID(r.Context()),
		}
		switch {
		case rec.status >= 500:
			s.logger.Error("http", fields...)
		case rec.status >= 400:
			s.logger.Warn("http", fields...)
		default:
			s.logger.Debug("http", fields...)
		}
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	games := registry.List()
	out := make([]GameInfo, 0, len(games))
	for _, g := range games {
		best, err := s.scores.HighScore(g.ID)
		if err != nil {
			s.fail(w, err)
			return
		}
		out = append(out, GameInfo{ID: g.ID, Title: g.Title, Description: g.Description, HighScore: best})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	game := chi.URLParam(r, "game")
	if !registry.Exists(game) {
		writeError(w, http.StatusNotFound, "unknown game "+strconv.Quote(game))
		return
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLimit)
	}

	scores, err := s.scores.TopScores(game, limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.scores.GetAllGamesStats()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("store query failed", "err", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

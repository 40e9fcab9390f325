package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/questhub/igdb"
	"github.com/briangreenhill/questhub/internal/http/middleware"
)

const maxQueryBody = 64 << 10

// GameService is the slice of the IGDB client the HTTP API serves
type GameService interface {
	IsConfigured() bool
	SearchGames(ctx context.Context, query string, limit int) ([]igdb.Game, error)
	GetPopularGames(ctx context.Context, limit int) ([]igdb.Game, error)
	GetGameByID(ctx context.Context, id int64) (*igdb.Game, error)
	GetGameBySlug(ctx context.Context, slug string) (*igdb.Game, error)
	GetGamesByGenre(ctx context.Context, genreID int64, limit int) ([]igdb.Game, error)
	GetGamesByPlatform(ctx context.Context, platformID int64, limit int) ([]igdb.Game, error)
	GetGenres(ctx context.Context) ([]igdb.Genre, error)
	GetPlatforms(ctx context.Context) ([]igdb.Platform, error)
	MakeCustomRequest(ctx context.Context, endpoint, query string) (json.RawMessage, error)
	ClearCache()
	CacheStats() igdb.CacheStats
}

type Server struct {
	Router             *chi.Mux
	IGDB               GameService
	Log                zerolog.Logger
	AllowCustomQueries bool
}

type ServerOptions struct {
	IGDB               GameService
	Logger             zerolog.Logger
	AllowCustomQueries bool
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)

	s := &Server{Router: r, IGDB: opts.IGDB, Log: opts.Logger, AllowCustomQueries: opts.AllowCustomQueries}

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Get("/games/search", s.handleSearch)
		api.Get("/games/popular", s.handlePopular)
		api.Get("/games/slug/{slug}", s.handleGameBySlug)
		api.Get("/games/{id}", s.handleGameByID)
		api.Get("/genres", s.handleGenres)
		api.Get("/genres/{id}/games", s.handleGenreGames)
		api.Get("/platforms", s.handlePlatforms)
		api.Get("/platforms/{id}/games", s.handlePlatformGames)
		api.Get("/cache", s.handleCacheStats)
		api.Delete("/cache", s.handleClearCache)
		if s.AllowCustomQueries {
			api.Post("/query/*", s.handleCustomQuery)
		}
	})

	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"status":          "ok",
		"igdb_configured": s.IGDB.IsConfigured(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.limitParam(w, r)
	if !ok {
		return
	}
	games, err := s.IGDB.SearchGames(r.Context(), r.URL.Query().Get("q"), limit)
	s.respond(w, r, games, err)
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.limitParam(w, r)
	if !ok {
		return
	}
	games, err := s.IGDB.GetPopularGames(r.Context(), limit)
	s.respond(w, r, games, err)
}

func (s *Server) handleGameByID(w http.ResponseWriter, r *http.Request) {
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}
	game, err := s.IGDB.GetGameByID(r.Context(), id)
	s.respondGame(w, r, game, err)
}

func (s *Server) handleGameBySlug(w http.ResponseWriter, r *http.Request) {
	game, err := s.IGDB.GetGameBySlug(r.Context(), chi.URLParam(r, "slug"))
	s.respondGame(w, r, game, err)
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.IGDB.GetGenres(r.Context())
	s.respond(w, r, genres, err)
}

func (s *Server) handleGenreGames(w http.ResponseWriter, r *http.Request) {
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}
	limit, ok := s.limitParam(w, r)
	if !ok {
		return
	}
	games, err := s.IGDB.GetGamesByGenre(r.Context(), id, limit)
	s.respond(w, r, games, err)
}

func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := s.IGDB.GetPlatforms(r.Context())
	s.respond(w, r, platforms, err)
}

func (s *Server) handlePlatformGames(w http.ResponseWriter, r *http.Request) {
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}
	limit, ok := s.limitParam(w, r)
	if !ok {
		return
	}
	games, err := s.IGDB.GetGamesByPlatform(r.Context(), id, limit)
	s.respond(w, r, games, err)
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.IGDB.CacheStats())
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.IGDB.ClearCache()
	hlog.FromRequest(r).Info().Msg("igdb cache cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCustomQuery(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxQueryBody))
	if err != nil {
		s.writeJSON(w, r, http.StatusRequestEntityTooLarge, errorBody{Error: "query body too large"})
		return
	}

	raw, err := s.IGDB.MakeCustomRequest(r.Context(), chi.URLParam(r, "*"), string(body))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("write response failed")
	}
}

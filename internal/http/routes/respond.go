package routes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/questhub/igdb"
)

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, v)
}

func (s *Server) respondGame(w http.ResponseWriter, r *http.Request, game *igdb.Game, err error) {
	if err == nil && game == nil {
		s.writeJSON(w, r, http.StatusNotFound, errorBody{Error: "game not found"})
		return
	}
	s.respond(w, r, game, err)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Int("status", status).Msg("igdb request failed")
	}
	if status == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", "1")
	}
	s.writeJSON(w, r, status, errorBody{Error: err.Error()})
}

// statusFor maps client error kinds onto HTTP statuses
func statusFor(err error) int {
	switch igdb.KindOf(err) {
	case igdb.ErrValidation:
		return http.StatusBadRequest
	case igdb.ErrConfiguration:
		return http.StatusServiceUnavailable
	case igdb.ErrRateLimited:
		return http.StatusTooManyRequests
	case igdb.ErrTimeout:
		return http.StatusGatewayTimeout
	case igdb.ErrAuthentication, igdb.ErrUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, errorBody{Error: "id must be an integer"})
		return 0, false
	}
	return id, true
}

// limitParam reads ?limit=; absent means the client default
func (s *Server) limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, errorBody{Error: "limit must be an integer"})
		return 0, false
	}
	return limit, true
}

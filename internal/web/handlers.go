package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/Belphemur/ShowShelf/internal/apperrors"
	"github.com/Belphemur/ShowShelf/internal/metrics"
	"github.com/Belphemur/ShowShelf/internal/render"
	"github.com/Belphemur/ShowShelf/internal/view"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFrom(r.Context())
	err := ctrl.Load(r.Context())
	s.respond(w, r, ctrl, "load", err)
}

func (s *Server) handleSearchShows(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFrom(r.Context())
	if err := s.ensureLoaded(r, ctrl); err != nil {
		s.respond(w, r, ctrl, "search_shows", err)
		return
	}
	ctrl.SearchShows(r.URL.Query().Get("q"))
	s.respond(w, r, ctrl, "search_shows", nil)
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	s.selectShow(w, r, chi.URLParam(r, "id"))
}

// handleShowSelect serves the show dropdown. The empty placeholder goes back to the show list.
func (s *Server) handleShowSelect(w http.ResponseWriter, r *http.Request) {
	value := strings.TrimSpace(r.URL.Query().Get("show"))
	if value == "" {
		ctrl := controllerFrom(r.Context())
		ctrl.Back()
		err := s.ensureLoaded(r, ctrl)
		s.respond(w, r, ctrl, "back", err)
		return
	}
	s.selectShow(w, r, value)
}

func (s *Server) selectShow(w http.ResponseWriter, r *http.Request, rawID string) {
	ctrl := controllerFrom(r.Context())
	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		metrics.UIActionsTotal.WithLabelValues("select_show", "invalid").Inc()
		http.Error(w, "invalid show id", http.StatusBadRequest)
		return
	}
	err = ctrl.SelectShow(r.Context(), id)
	s.respond(w, r, ctrl, "select_show", err)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFrom(r.Context())
	ctrl.Back()
	err := s.ensureLoaded(r, ctrl)
	s.respond(w, r, ctrl, "back", err)
}

func (s *Server) handleSearchEpisodes(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFrom(r.Context())
	err := ctrl.Search(r.URL.Query().Get("q"))
	s.respond(w, r, ctrl, "search_episodes", err)
}

func (s *Server) handleEpisodeSelect(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFrom(r.Context())
	err := ctrl.SelectEpisode(strings.TrimSpace(r.URL.Query().Get("episode")))
	s.respond(w, r, ctrl, "select_episode", err)
}

// ensureLoaded loads the show list for sessions that have not seen it yet
func (s *Server) ensureLoaded(r *http.Request, ctrl *view.Controller) error {
	if ctrl.ShowsLoaded() {
		return nil
	}
	return ctrl.Load(r.Context())
}

// respond records the action outcome and renders the session's current page.
// Episode actions outside the episodes view redirect to the index.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, ctrl *view.Controller, action string, err error) {
	logger := hlog.FromRequest(r)

	if errors.Is(err, view.ErrWrongView) {
		metrics.UIActionsTotal.WithLabelValues(action, "wrong_view").Inc()
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	status := http.StatusOK
	switch {
	case err == nil:
		metrics.UIActionsTotal.WithLabelValues(action, "ok").Inc()
	case errors.Is(err, view.ErrStale):
		// a newer navigation of the same session already rendered its result
		metrics.UIActionsTotal.WithLabelValues(action, "stale").Inc()
		logger.Debug().Str("action", action).Msg("Rendering newer state for a superseded action")
	case errors.Is(err, &apperrors.ErrNotFound{}):
		metrics.UIActionsTotal.WithLabelValues(action, "not_found").Inc()
		logger.Warn().Err(err).Str("action", action).Msg("Requested resource not found")
		status = http.StatusNotFound
	default:
		metrics.UIActionsTotal.WithLabelValues(action, "error").Inc()
		logger.Error().Err(err).Str("action", action).Msg("Action failed")
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}
		status = http.StatusBadGateway
	}

	var buf bytes.Buffer
	if err := render.Page(&buf, ctrl.Snapshot()); err != nil {
		logger.Error().Err(err).Msg("Failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

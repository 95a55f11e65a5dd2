// Package web maps browser requests onto per-session view controller actions
// and answers each of them with a freshly rendered page.
package web

import (
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const defaultRequestTimeout = 30 * time.Second

type Server struct {
	logger   zerolog.Logger
	sessions *SessionStore
}

func NewServer(logger zerolog.Logger, sessions *SessionStore) *Server {
	return &Server{logger: logger, sessions: sessions}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	// Recoverer must wrap sentryhttp so the panic is reported before it is turned into a 500
	r.Use(middleware.Recoverer)
	r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	r.Use(middleware.Timeout(defaultRequestTimeout))
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("request_id", "Request-Id"))
	r.Use(hlog.RemoteAddrHandler("remote_ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(hlog.AccessHandler(accessLogFn))

	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.sessions.sessionMiddleware)

		r.Get("/", s.handleIndex)
		r.Get("/back", s.handleBack)
		r.Route("/shows", func(r chi.Router) {
			r.Get("/", s.handleSearchShows)
			r.Get("/select", s.handleShowSelect)
			r.Get("/{id}", s.handleShow)
		})
		r.Route("/episodes", func(r chi.Router) {
			r.Get("/", s.handleSearchEpisodes)
			r.Get("/select", s.handleEpisodeSelect)
		})
	})

	return r
}

func accessLogFn(r *http.Request, status, size int, duration time.Duration) {
	logger := hlog.FromRequest(r)
	logger.Info().
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("http")
}

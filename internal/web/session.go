package web

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/hlog"

	"github.com/Belphemur/ShowShelf/internal/metrics"
	"github.com/Belphemur/ShowShelf/internal/view"
)

// SessionCookieName is the cookie carrying the session id
const SessionCookieName = "showshelf_session"

// SessionStore keeps one view controller per browser session. Idle sessions
// expire after the configured TTL and the least recently used ones are
// evicted when the store is full.
type SessionStore struct {
	catalog  view.Catalog
	sessions *lru.LRU[string, *view.Controller]
	ttl      time.Duration
}

// NewSessionStore creates a store holding at most size sessions
func NewSessionStore(catalog view.Catalog, size int, ttl time.Duration) *SessionStore {
	if size <= 0 {
		size = 1000
	}
	onEvict := func(string, *view.Controller) {
		metrics.ActiveSessions.Dec()
	}
	return &SessionStore{
		catalog:  catalog,
		sessions: lru.NewLRU[string, *view.Controller](size, onEvict, ttl),
		ttl:      ttl,
	}
}

// Get returns the controller of session id, refreshing its recency
func (s *SessionStore) Get(id string) (*view.Controller, bool) {
	return s.sessions.Get(id)
}

// Create starts a new session with a fresh controller
func (s *SessionStore) Create() (string, *view.Controller, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", nil, err
	}
	ctrl := view.NewController(s.catalog)
	s.sessions.Add(id.String(), ctrl)
	metrics.ActiveSessions.Inc()
	return id.String(), ctrl, nil
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	return s.sessions.Len()
}

type controllerKey struct{}

// controllerFrom returns the session controller attached by the session middleware
func controllerFrom(ctx context.Context) *view.Controller {
	ctrl, _ := ctx.Value(controllerKey{}).(*view.Controller)
	return ctrl
}

// sessionMiddleware attaches the caller's controller to the request context,
// creating a session and setting the cookie when none is known.
func (s *SessionStore) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			if ctrl, ok := s.Get(cookie.Value); ok {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), controllerKey{}, ctrl)))
				return
			}
		}

		id, ctrl, err := s.Create()
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("Failed to create session")
			http.Error(w, "could not create session", http.StatusInternalServerError)
			return
		}
		hlog.FromRequest(r).Debug().Str("session", id).Msg("Created session")

		cookie := &http.Cookie{
			Name:     SessionCookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
		if s.ttl > 0 {
			cookie.MaxAge = int(s.ttl.Seconds())
		}
		http.SetCookie(w, cookie)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), controllerKey{}, ctrl)))
	})
}

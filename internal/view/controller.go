// Package view holds the per-session view controller that turns user actions
// into state changes and derives the lists to render.
package view

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowShelf/internal/apperrors"
	"github.com/Belphemur/ShowShelf/internal/config"
	"github.com/Belphemur/ShowShelf/internal/filter"
	"github.com/Belphemur/ShowShelf/internal/models"
)

// ErrStale is returned when an episode load finished after a newer navigation
// and its result was dropped.
var ErrStale = errors.New("view: result superseded by a newer action")

// ErrWrongView is returned when an action is not available in the current view.
var ErrWrongView = errors.New("view: action not available in the current view")

// Catalog is the subset of catalog.Catalog the controller needs
type Catalog interface {
	Shows(ctx context.Context) ([]models.Show, error)
	Episodes(ctx context.Context, showID int) ([]models.Episode, error)
}

// Controller owns the State of one browser session.
// Catalog lookups happen outside the lock; their results are applied only if
// no newer navigation happened in the meantime.
type Controller struct {
	catalog Catalog
	logger  zerolog.Logger

	mu       sync.Mutex
	state    State
	selected string
	shows    []models.Show
	episodes []models.Episode
	// nav is bumped by every navigation; a pending load compares it on return
	nav uint64
}

// NewController creates a controller in the initial Shows view
func NewController(catalog Catalog) *Controller {
	return &Controller{
		catalog:  catalog,
		logger:   config.GetLogger(),
		selected: AllEpisodes,
	}
}

// Load fetches the show list for the Shows view. On failure the previous
// state is kept and the message is replaced, never appended.
func (c *Controller) Load(ctx context.Context) error {
	shows, err := c.catalog.Shows(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state.Message = apperrors.UserMessage("shows", err)
		return err
	}
	c.shows = shows
	c.state.Message = ""
	return nil
}

// ShowsLoaded reports whether the show list has been loaded successfully
func (c *Controller) ShowsLoaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shows != nil
}

// SearchShows filters the show list by term.
func (c *Controller) SearchShows(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.ShowSearchTerm = term
}

// SelectShow switches to the Episodes view of showID. The search term is reset
// and the episode selector goes back to "all". On failure nothing but the
// message changes.
func (c *Controller) SelectShow(ctx context.Context, showID int) error {
	c.mu.Lock()
	c.nav++
	token := c.nav
	c.mu.Unlock()

	episodes, err := c.loadEpisodes(ctx, showID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.nav {
		c.logger.Debug().Int("showID", showID).Msg("Dropping episodes of a superseded selection")
		return ErrStale
	}
	if err != nil {
		c.state.Message = apperrors.UserMessage("episodes", err)
		return err
	}

	c.state.View = EpisodesView
	c.state.ShowID = showID
	c.state.SearchTerm = ""
	c.state.TermSource = TermNone
	c.state.Message = ""
	c.selected = AllEpisodes
	c.episodes = episodes
	return nil
}

// loadEpisodes makes sure showID was obtained from the show list before asking for its episodes.
func (c *Controller) loadEpisodes(ctx context.Context, showID int) ([]models.Episode, error) {
	shows, err := c.catalog.Shows(ctx)
	if err != nil {
		return nil, err
	}

	known := false
	for _, s := range shows {
		if s.ID == showID {
			known = true
			break
		}
	}
	if !known {
		return nil, apperrors.NewShowNotFoundError(showID)
	}

	c.mu.Lock()
	c.shows = shows
	c.mu.Unlock()

	return c.catalog.Episodes(ctx, showID)
}

// Back returns to the Shows view. The episode cache is left intact.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nav++
	c.state.View = ShowsView
	c.state.ShowID = 0
	c.state.SearchTerm = ""
	c.state.TermSource = TermNone
	c.state.Message = ""
	c.selected = AllEpisodes
	c.episodes = nil
}

// SelectEpisode applies a selector change. AllEpisodes clears the term and an
// episode id narrows the list to that episode. An id missing from the list
// yields an empty list, not an error.
func (c *Controller) SelectEpisode(value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.View != EpisodesView {
		return ErrWrongView
	}

	if value == "" || value == AllEpisodes {
		c.state.SearchTerm = ""
		c.state.TermSource = TermNone
		c.selected = AllEpisodes
		return nil
	}

	id, err := strconv.Atoi(value)
	if err != nil {
		return apperrors.NewNotFoundError("episode", value)
	}
	if _, ok := filter.EpisodeByID(c.episodes, id); !ok {
		c.logger.Debug().Int("episodeID", id).Int("showID", c.state.ShowID).Msg("Selected episode is not in the current list")
	}
	c.state.SearchTerm = value
	c.state.TermSource = TermSelected
	c.selected = value
	return nil
}

// Search sets the episode search term from the free-text box. It overrides a
// previous dropdown selection, so the selector returns to "all".
func (c *Controller) Search(term string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.View != EpisodesView {
		return ErrWrongView
	}

	c.state.SearchTerm = term
	c.state.TermSource = TermTyped
	if term == "" {
		c.state.TermSource = TermNone
	}
	c.selected = AllEpisodes
	return nil
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot derives everything the renderer needs from the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:           c.state,
		ShowsLoaded:     c.shows != nil,
		AllShows:        c.shows,
		TotalShows:      len(c.shows),
		SelectedEpisode: c.selected,
	}

	snap.Shows = filter.Shows(c.shows, c.state.ShowSearchTerm)
	snap.ShowCount = ShowCountText(len(snap.Shows), len(c.shows))

	if c.state.View != EpisodesView {
		return snap
	}

	for i := range c.shows {
		if c.shows[i].ID == c.state.ShowID {
			show := c.shows[i]
			snap.Show = &show
			break
		}
	}

	snap.AllEpisodes = c.episodes
	snap.Episodes = filter.Episodes(c.episodes, c.state.SearchTerm)
	snap.EpisodeCount = EpisodeCountText(len(snap.Episodes), len(c.episodes))
	if c.state.TermSource == TermTyped {
		snap.SearchInput = c.state.SearchTerm
		snap.CountVisible = true
	}
	return snap
}

// Package catalog memoizes the show list and per-show episode lists for the
// lifetime of the process.
//
// Each key is fetched at most once successfully. Concurrent callers for the
// same key share one in-flight request, and a failed fetch is forgotten so the
// next call retries.
package catalog

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Belphemur/ShowShelf/internal/client"
	"github.com/Belphemur/ShowShelf/internal/config"
	"github.com/Belphemur/ShowShelf/internal/models"
)

// Catalog is the memoizing front of the TVMaze client
type Catalog struct {
	client client.Client
	group  singleflight.Group

	mu       sync.RWMutex
	shows    []models.Show
	episodes map[int][]models.Episode
}

// New creates an empty catalog backed by c
func New(c client.Client) *Catalog {
	return &Catalog{
		client:   c,
		episodes: make(map[int][]models.Episode),
	}
}

// Shows returns the show list sorted by name. Repeat calls return the same slice.
func (c *Catalog) Shows(ctx context.Context) ([]models.Show, error) {
	c.mu.RLock()
	shows := c.shows
	c.mu.RUnlock()
	if shows != nil {
		return shows, nil
	}

	v, err, _ := c.do(ctx, "shows", func(ctx context.Context) (interface{}, error) {
		// A concurrent caller may have stored the list while we queued
		c.mu.RLock()
		cached := c.shows
		c.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		fetched, err := c.client.GetShows(ctx)
		if err != nil {
			return nil, err
		}
		if fetched == nil {
			fetched = []models.Show{}
		}
		sortShowsByName(fetched)

		c.mu.Lock()
		c.shows = fetched
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Msg("Failed to load show list")
		return nil, err
	}
	return v.([]models.Show), nil
}

// Episodes returns the episodes of showID in API order. Repeat calls return the same slice.
func (c *Catalog) Episodes(ctx context.Context, showID int) ([]models.Episode, error) {
	if episodes, ok := c.cachedEpisodes(showID); ok {
		return episodes, nil
	}

	v, err, shared := c.do(ctx, "episodes:"+strconv.Itoa(showID), func(ctx context.Context) (interface{}, error) {
		if episodes, ok := c.cachedEpisodes(showID); ok {
			return episodes, nil
		}

		fetched, err := c.client.GetEpisodes(ctx, showID)
		if err != nil {
			return nil, err
		}
		if fetched == nil {
			fetched = []models.Episode{}
		}

		c.mu.Lock()
		c.episodes[showID] = fetched
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Int("showID", showID).Bool("shared", shared).Msg("Failed to load episodes")
		return nil, err
	}
	return v.([]models.Episode), nil
}

// do runs fetch once per key across concurrent callers. The fetch is detached
// from the caller's cancellation so one caller leaving does not fail the others;
// the HTTP client timeout still bounds it. Each caller stops waiting when its
// own ctx is done.
func (c *Catalog) do(ctx context.Context, key string, fetch func(ctx context.Context) (interface{}, error)) (interface{}, error, bool) {
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		return fetch(fetchCtx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err, res.Shared
	case <-ctx.Done():
		return nil, ctx.Err(), false
	}
}

// HasShow reports whether showID is part of the loaded show list.
func (c *Catalog) HasShow(showID int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, s := range c.shows {
		if s.ID == showID {
			return true
		}
	}
	return false
}

func (c *Catalog) cachedEpisodes(showID int) ([]models.Episode, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	episodes, ok := c.episodes[showID]
	return episodes, ok
}

// sortShowsByName orders shows alphabetically, ignoring case, with English collation rules.
func sortShowsByName(shows []models.Show) {
	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(shows, func(i, j int) bool {
		return col.CompareString(shows[i].Name, shows[j].Name) < 0
	})
}

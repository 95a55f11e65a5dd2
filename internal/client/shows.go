package client

import (
	"context"

	"github.com/Belphemur/ShowShelf/internal/config"
	"github.com/Belphemur/ShowShelf/internal/models"
)

const showsCacheKey = "shows"

// GetShows fetches the show index from {base}/shows
func (c *client) GetShows(ctx context.Context) ([]models.Show, error) {
	logger := config.GetLogger()
	logger.Debug().Str("baseURL", c.baseURL).Msg("Fetching show list")

	var shows []models.Show
	if err := c.getJSON(ctx, "shows", "/shows", showsCacheKey, &shows); err != nil {
		return nil, err
	}

	logger.Info().Int("count", len(shows)).Msg("Fetched show list")
	return shows, nil
}

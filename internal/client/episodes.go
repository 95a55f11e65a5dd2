package client

import (
	"context"
	"fmt"

	"github.com/Belphemur/ShowShelf/internal/apperrors"
	"github.com/Belphemur/ShowShelf/internal/config"
	"github.com/Belphemur/ShowShelf/internal/models"
)

// GetEpisodes fetches the episode list of one show from {base}/shows/{id}/episodes
func (c *client) GetEpisodes(ctx context.Context, showID int) ([]models.Episode, error) {
	if showID <= 0 {
		return nil, apperrors.NewShowNotFoundError(showID)
	}

	logger := config.GetLogger()
	logger.Debug().Int("showID", showID).Msg("Fetching episodes")

	var episodes []models.Episode
	path := fmt.Sprintf("/shows/%d/episodes", showID)
	cacheKey := fmt.Sprintf("episodes:%d", showID)
	if err := c.getJSON(ctx, "episodes", path, cacheKey, &episodes); err != nil {
		return nil, err
	}

	logger.Info().Int("showID", showID).Int("count", len(episodes)).Msg("Fetched episodes")
	return episodes, nil
}

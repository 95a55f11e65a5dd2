package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Belphemur/ShowShelf/internal/cache"
	"github.com/Belphemur/ShowShelf/internal/config"
	"github.com/Belphemur/ShowShelf/internal/models"
)

// Client defines the interface for querying the TVMaze REST API
type Client interface {
	// GetShows fetches the full show index.
	GetShows(ctx context.Context) ([]models.Show, error)
	// GetEpisodes fetches every episode of the given show.
	GetEpisodes(ctx context.Context, showID int) ([]models.Episode, error)

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient *http.Client
	baseURL    string
	responses  cache.Cache
}

// NewClient creates a new client instance. responses may be nil, in which case
// every call reaches the API.
func NewClient(cfg *config.Config, responses cache.Cache) Client {
	logger := config.GetLogger()

	timeout := 30 * time.Second
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to keep its pooling and HTTP/2 settings
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = config.DefaultAPIBaseURL
	}

	return &client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newAPITransport(baseTransport, userAgent),
		},
		baseURL:   baseURL,
		responses: responses,
	}
}

// Close releases the response cache, if any.
func (c *client) Close() error {
	if c.responses == nil {
		return nil
	}
	return c.responses.Close()
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/Belphemur/ShowShelf/internal/apperrors"
	"github.com/Belphemur/ShowShelf/internal/config"
	"github.com/Belphemur/ShowShelf/internal/metrics"
)

// getJSON performs a GET on baseURL+path and decodes the JSON body into out.
// Successful bodies are stored in the response cache under cacheKey; failures
// are never cached.
func (c *client) getJSON(ctx context.Context, endpoint, path, cacheKey string, out any) error {
	logger := config.GetLogger()

	if c.responses != nil {
		if body, ok := c.responses.Get(cacheKey); ok {
			if err := json.Unmarshal(body, out); err == nil {
				logger.Debug().Str("key", cacheKey).Msg("Served from response cache")
				metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "cached").Inc()
				return nil
			}
			logger.Warn().Str("key", cacheKey).Msg("Discarding undecodable cached response")
		}
	}

	body, err := c.fetch(ctx, endpoint, c.baseURL+path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "decode_error").Inc()
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	if c.responses != nil {
		c.responses.Set(cacheKey, body)
	}
	return nil
}

// fetch returns the UTF-8 body of a successful GET.
func (c *client) fetch(ctx context.Context, endpoint, url string) ([]byte, error) {
	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, &apperrors.ErrNetwork{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "http_error").Inc()
		return nil, &apperrors.ErrHTTPStatus{URL: url, StatusCode: resp.StatusCode}
	}

	reader, err := utf8Reader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "decode_error").Inc()
		return nil, fmt.Errorf("failed to detect response charset: %w", err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, &apperrors.ErrNetwork{URL: url, Err: err}
	}
	return body, nil
}

// utf8Reader converts body to UTF-8 when the response declares another charset.
// JSON without a charset parameter is UTF-8 by definition and is passed through.
func utf8Reader(body io.Reader, contentType string) (io.Reader, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil || params["charset"] == "" {
		return body, nil
	}
	return charset.NewReader(body, contentType)
}

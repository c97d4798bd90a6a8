// Package nws is the api.weather.gov endpoint client: URL construction for
// the four ingested request shapes and a single-attempt HTTP GET.
package nws

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/weather-ingest/internal/domain"
)

// DefaultBaseURL is the production NWS API host.
const DefaultBaseURL = "https://api.weather.gov"

// StatusError reports a non-200 response. It carries the attempted URL so
// failure outcomes and logs can name exactly what was requested.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

// Client performs single-attempt GETs against the NWS API. No retry, no
// backoff: a failed attempt is surfaced immediately and the caller decides
// what to do with the location.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates an NWS API client. The NWS API asks every consumer to
// identify itself via User-Agent; there is no authentication.
func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		logger:     logger,
	}
}

// QuantitativeURL returns the raw gridpoint endpoint for a location.
func (c *Client) QuantitativeURL(loc domain.Location) string {
	return fmt.Sprintf("%s/gridpoints/%s/%d,%d", c.baseURL, loc.GridID, loc.GridX, loc.GridY)
}

// DailyForecastURL returns the daily forecast endpoint for a location.
func (c *Client) DailyForecastURL(loc domain.Location) string {
	return fmt.Sprintf("%s/gridpoints/%s/%d,%d/forecast", c.baseURL, loc.GridID, loc.GridX, loc.GridY)
}

// HourlyForecastURL returns the hourly forecast endpoint for a location.
func (c *Client) HourlyForecastURL(loc domain.Location) string {
	return fmt.Sprintf("%s/gridpoints/%s/%d,%d/forecast/hourly", c.baseURL, loc.GridID, loc.GridX, loc.GridY)
}

// ObservationURL returns the latest-observation endpoint for a station.
func (c *Client) ObservationURL(st domain.Station) string {
	return fmt.Sprintf("%s/stations/%s/observations/latest", c.baseURL, st.ID)
}

// Get performs exactly one GET against the given URL. It returns the body on
// 200, a *StatusError on any other status, or the transport error.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/geo+json")

	c.logger.Debug("nws request", "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused; the body is not part of
		// the failure outcome.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", url, err)
	}
	return body, nil
}

// Package ndbc fetches plain-text observation reports from the National Data
// Buoy Center feeds.
package ndbc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/couchcryptid/buoy-telemetry-service/internal/observability"
)

// DefaultBaseURL is the production NDBC feed host.
const DefaultBaseURL = "https://www.ndbc.noaa.gov"

// Client fetches the hourly all-stations report and per-station history
// files. A shared circuit breaker sheds requests while the feed host is
// failing, and the two endpoints carry separate timeouts since the history
// files are an order of magnitude larger.
type Client struct {
	baseURL          string
	currentClient    *http.Client
	historicalClient *http.Client
	breaker          *gobreaker.CircuitBreaker
	logger           *slog.Logger
	metrics          *observability.Metrics
}

// NewClient creates an NDBC feed client. An empty baseURL selects the
// production host.
func NewClient(baseURL string, currentTimeout, historicalTimeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "ndbc",
		Timeout: time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return &Client{
		baseURL:          baseURL,
		currentClient:    &http.Client{Timeout: currentTimeout},
		historicalClient: &http.Client{Timeout: historicalTimeout},
		breaker:          breaker,
		logger:           logger,
		metrics:          metrics,
	}
}

// FetchCurrentHour retrieves the all-stations report for the given UTC hour.
func (c *Client) FetchCurrentHour(ctx context.Context, hour int) (string, error) {
	path := fmt.Sprintf("/data/hourly2/hour_%02d.txt", hour)
	return c.fetch(ctx, c.currentClient, path, "current")
}

// FetchStationHistory retrieves the 45-day observation history for one station.
func (c *Client) FetchStationHistory(ctx context.Context, stationID string) (string, error) {
	path := fmt.Sprintf("/data/realtime2/%s.txt", stationID)
	return c.fetch(ctx, c.historicalClient, path, "historical")
}

func (c *Client) fetch(ctx context.Context, httpClient *http.Client, path, endpoint string) (string, error) {
	start := time.Now()
	body, err := c.breaker.Execute(func() (any, error) {
		return c.doRequest(ctx, httpClient, c.baseURL+path)
	})
	c.metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return "", fmt.Errorf("ndbc %s feed: %w", endpoint, err)
	}
	c.metrics.UpstreamRequests.WithLabelValues(endpoint, "success").Inc()
	return body.(string), nil
}

func (c *Client) doRequest(ctx context.Context, httpClient *http.Client, fullURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return string(body), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

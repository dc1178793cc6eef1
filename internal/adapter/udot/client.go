// Package udot fetches the four UDOT traffic feeds a report is built from.
package udot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
)

// DefaultBaseURL is the UDOT developer API root.
const DefaultBaseURL = "https://www.udottraffic.utah.gov/api/v2/get"

// Feed names. Each is also the endpoint's final path segment.
const (
	FeedRoadConditions  = "roadconditions"
	FeedMountainPasses  = "mountainpasses"
	FeedAlerts          = "alerts"
	FeedServiceVehicles = "servicevehicles"
)

// Client reads UDOT feeds. Every method returns the feed's records in feed
// order, or an error wrapping domain.ErrFeedUnavailable.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a UDOT feed client. timeout bounds each feed request; a
// feed that times out is reported unavailable like any other failure.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// RoadConditions fetches the roadconditions feed.
func (c *Client) RoadConditions(ctx context.Context) ([]domain.RawRoadCondition, error) {
	return getJSON[domain.RawRoadCondition](ctx, c, FeedRoadConditions)
}

// MountainPasses fetches the mountainpasses feed.
func (c *Client) MountainPasses(ctx context.Context) ([]domain.RawMountainPass, error) {
	return getJSON[domain.RawMountainPass](ctx, c, FeedMountainPasses)
}

// Advisories fetches the alerts feed.
func (c *Client) Advisories(ctx context.Context) ([]domain.RawAdvisory, error) {
	return getJSON[domain.RawAdvisory](ctx, c, FeedAlerts)
}

// ServiceVehicles fetches the servicevehicles feed.
func (c *Client) ServiceVehicles(ctx context.Context) ([]domain.RawServiceVehicle, error) {
	return getJSON[domain.RawServiceVehicle](ctx, c, FeedServiceVehicles)
}

func getJSON[T any](ctx context.Context, c *Client, feed string) ([]T, error) {
	params := url.Values{
		"key":    {c.apiKey},
		"format": {"json"},
	}
	fullURL := c.baseURL + "/" + feed + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: create request: %w", domain.ErrFeedUnavailable, feed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: request: %w", domain.ErrFeedUnavailable, feed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %s: udot API error: status %d: %s", domain.ErrFeedUnavailable, feed, resp.StatusCode, body)
	}

	var records []T
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %s: decode response: %w", domain.ErrFeedUnavailable, feed, err)
	}
	c.logger.Debug("feed fetched", "feed", feed, "records", len(records))
	return records, nil
}

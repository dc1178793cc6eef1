// Package nominatim reverse geocodes service vehicle positions with the
// OpenStreetMap Nominatim API, with optional in-memory and Redis caching.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/observability"
)

// Defaults for the public Nominatim instance. Its usage policy requires an
// identifying User-Agent on every request.
const (
	DefaultURL       = "https://nominatim.openstreetmap.org/reverse"
	DefaultUserAgent = "Traffic_Update"
)

// Client implements domain.Geocoder using the Nominatim reverse endpoint.
type Client struct {
	url        string
	userAgent  string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Nominatim reverse geocoding client.
func NewClient(endpoint, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		url:       endpoint,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// ReverseGeocode converts coordinates to a street, city, and county. Missing
// parts come back as the domain "not found" sentinels; only transport and
// decoding failures are errors.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.Address, error) {
	params := url.Values{
		"lat":            {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":            {strconv.FormatFloat(lon, 'f', -1, 64)},
		"format":         {"json"},
		"addressdetails": {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+params.Encode(), nil)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.Address{}, fmt.Errorf("%w: create request: %w", domain.ErrGeocodeUnavailable, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.Address{}, fmt.Errorf("%w: reverse geocode request: %w", domain.ErrGeocodeUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.Address{}, fmt.Errorf("%w: nominatim API error: status %d: %s", domain.ErrGeocodeUnavailable, resp.StatusCode, body)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.Address{}, fmt.Errorf("%w: decode response: %w", domain.ErrGeocodeUnavailable, err)
	}
	if r.Error != "" {
		c.logger.Debug("nominatim returned no address", "lat", lat, "lon", lon, "reason", r.Error)
	}

	addr := r.Address.toDomain()
	if addr.Resolved() {
		c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	} else {
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
	}
	return addr, nil
}

// Nominatim API response types.

type response struct {
	Address address `json:"address"`
	Error   string  `json:"error"`
}

type address struct {
	Road    string `json:"road"`
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	County  string `json:"county"`
}

// toDomain applies the fallbacks: the city falls back to town, then village.
func (a address) toDomain() domain.Address {
	return domain.Address{
		Street: firstNonEmpty(a.Road, domain.StreetNotFound),
		City:   firstNonEmpty(a.City, a.Town, a.Village, domain.CityNotFound),
		County: firstNonEmpty(a.County, domain.CountyNotFound),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

//go:build nominatim

package nominatim

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/observability"
)

// These tests hit the public Nominatim API. Set NOMINATIM_USER_AGENT to an
// identifying value as its usage policy requires.
// Run with: go test -tags=nominatim ./internal/adapter/nominatim/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	ua := os.Getenv("NOMINATIM_USER_AGENT")
	if ua == "" {
		t.Fatal("NOMINATIM_USER_AGENT must be set to run smoke tests")
	}
	return &Client{
		url:        DefaultURL,
		userAgent:  ua,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		metrics:    observability.NewMetricsForTesting(),
		logger:     testLogger(),
	}
}

func TestSmoke_ReverseGeocode_Town(t *testing.T) {
	c := smokeClient(t)

	// Commercial Street, Morgan, UT
	got, err := c.ReverseGeocode(context.Background(), 41.0361, -111.6769)
	require.NoError(t, err)

	assert.True(t, got.Resolved(), "expected street and city, got %+v", got)
	assert.Contains(t, got.County, "Morgan")
}

func TestSmoke_ReverseGeocode_Ocean(t *testing.T) {
	c := smokeClient(t)

	got, err := c.ReverseGeocode(context.Background(), 0, -140)
	require.NoError(t, err)

	assert.False(t, got.Resolved())
}

func TestSmoke_CachedGeocoder(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedGeocoder(c, 10, observability.NewMetricsForTesting())

	r1, err := cached.ReverseGeocode(context.Background(), 41.2230, -111.9738)
	require.NoError(t, err)

	r2, err := cached.ReverseGeocode(context.Background(), 41.2230, -111.9738)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}

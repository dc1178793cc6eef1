package nominatim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/observability"
)

// --- mock for cache tests ---

type countingGeocoder struct {
	mu     sync.Mutex
	calls  int
	result domain.Address
	err    error
}

func (m *countingGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.result, m.err
}

var morgan = domain.Address{Street: "Commercial Street", City: "Morgan", County: "Morgan County"}

// --- CachedGeocoder tests ---

func TestCachedGeocoder_CacheHit(t *testing.T) {
	inner := &countingGeocoder{result: morgan}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedGeocoder(inner, 10, metrics)

	r1, err := cached.ReverseGeocode(context.Background(), 41.0361, -111.6769)
	require.NoError(t, err)
	r2, err := cached.ReverseGeocode(context.Background(), 41.0361, -111.6769)
	require.NoError(t, err)

	assert.Equal(t, morgan, r1)
	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("memory", "hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("memory", "miss")), 0)
}

func TestCachedGeocoder_NearbyPointsShareEntry(t *testing.T) {
	inner := &countingGeocoder{result: morgan}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.ReverseGeocode(context.Background(), 41.03611, -111.67691)
	_, _ = cached.ReverseGeocode(context.Background(), 41.03613, -111.67693)

	assert.Equal(t, 1, inner.calls)
}

func TestCachedGeocoder_DifferentKeysMiss(t *testing.T) {
	inner := &countingGeocoder{result: morgan}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.ReverseGeocode(context.Background(), 41.03, -111.67)
	_, _ = cached.ReverseGeocode(context.Background(), 41.10, -111.70)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_UnresolvedNotCached(t *testing.T) {
	inner := &countingGeocoder{result: domain.Address{Street: domain.StreetNotFound, City: "Morgan"}}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.ReverseGeocode(context.Background(), 41.03, -111.67)
	_, _ = cached.ReverseGeocode(context.Background(), 41.03, -111.67)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_ErrorNotCached(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("boom")}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, err := cached.ReverseGeocode(context.Background(), 41.03, -111.67)
	require.Error(t, err)

	inner.err = nil
	inner.result = morgan
	got, err := cached.ReverseGeocode(context.Background(), 41.03, -111.67)
	require.NoError(t, err)
	assert.Equal(t, morgan, got)
	assert.Equal(t, 2, inner.calls)
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", domain.Address{City: "A"})
	c.put("b", domain.Address{City: "B"})

	got, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", got.City)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.Address{City: "A"})
	c.put("b", domain.Address{City: "B"})
	c.put("c", domain.Address{City: "C"}) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")
	_, ok = c.get("b")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.len())
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.Address{City: "A"})
	c.put("b", domain.Address{City: "B"})
	c.get("a")
	c.put("c", domain.Address{City: "C"})

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")
	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.Address{City: "A1"})
	c.put("a", domain.Address{City: "A2"})

	got, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", got.City)
	assert.Equal(t, 1, c.len())
}

func TestLRUCache_ZeroSizeHoldsOne(t *testing.T) {
	c := newLRUCache(0)

	c.put("a", domain.Address{City: "A"})
	c.put("b", domain.Address{City: "B"})

	assert.Equal(t, 1, c.len())
}

func TestLRUCache_Concurrent(t *testing.T) {
	c := newLRUCache(50)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := range 100 {
				key := fmt.Sprintf("%d-%d", worker, j%60)
				c.put(key, domain.Address{City: key})
				c.get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.len(), 50)
}

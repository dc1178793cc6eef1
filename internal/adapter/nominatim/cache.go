package nominatim

import (
	"container/list"
	"context"
	"fmt"
	"sync"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/observability"
)

// cacheKey rounds to 4 decimal places, about 11 m.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}

// CachedGeocoder wraps a Geocoder with an in-memory LRU cache. Only resolved
// addresses are cached so a "not found" answer is asked again next time.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	return &CachedGeocoder{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.Address, error) {
	key := cacheKey(lat, lon)
	if addr, ok := c.cache.get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("memory", "hit").Inc()
		return addr, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("memory", "miss").Inc()

	addr, err := c.inner.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return addr, err
	}
	if addr.Resolved() {
		c.cache.put(key, addr)
	}
	return addr, nil
}

// lruCache is a thread-safe LRU of addresses. The front of order is the most
// recently used entry.
type lruCache struct {
	maxEntries int

	mu      sync.Mutex
	order   *list.List
	entries map[string]*list.Element
}

type lruEntry struct {
	key  string
	addr domain.Address
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: max(maxEntries, 1),
		order:      list.New(),
		entries:    make(map[string]*list.Element),
	}
}

func (c *lruCache) get(key string) (domain.Address, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return domain.Address{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).addr, true
}

func (c *lruCache) put(key string, addr domain.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*lruEntry).addr = addr
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&lruEntry{key: key, addr: addr})
	for c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*lruEntry).key)
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

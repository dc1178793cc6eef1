package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/observability"
)

// RedisKeyPrefix namespaces cached addresses in a shared Redis.
const RedisKeyPrefix = "traffic_report:geocode:"

// RedisGeocoder wraps a Geocoder with a Redis cache shared between runs. A
// Redis failure is logged and the lookup falls through to the inner
// geocoder.
type RedisGeocoder struct {
	inner   domain.Geocoder
	rdb     redis.Cmdable
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewRedisGeocoder creates a Redis cache decorator. Entries expire after ttl.
func NewRedisGeocoder(inner domain.Geocoder, rdb redis.Cmdable, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger) *RedisGeocoder {
	return &RedisGeocoder{
		inner:   inner,
		rdb:     rdb,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

func (g *RedisGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.Address, error) {
	key := RedisKeyPrefix + cacheKey(lat, lon)

	if addr, ok := g.lookup(ctx, key); ok {
		g.metrics.GeocodeCache.WithLabelValues("redis", "hit").Inc()
		return addr, nil
	}
	g.metrics.GeocodeCache.WithLabelValues("redis", "miss").Inc()

	addr, err := g.inner.ReverseGeocode(ctx, lat, lon)
	if err != nil || !addr.Resolved() {
		return addr, err
	}

	data, err := json.Marshal(addr)
	if err != nil {
		return addr, nil
	}
	if err := g.rdb.Set(ctx, key, data, g.ttl).Err(); err != nil {
		g.logger.Warn("geocode cache write failed", "key", key, "error", err)
	}
	return addr, nil
}

func (g *RedisGeocoder) lookup(ctx context.Context, key string) (domain.Address, bool) {
	data, err := g.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Address{}, false
	}
	if err != nil {
		g.logger.Warn("geocode cache read failed", "key", key, "error", err)
		return domain.Address{}, false
	}

	var addr domain.Address
	if err := json.Unmarshal(data, &addr); err != nil || !addr.Resolved() {
		g.logger.Warn("discarding unreadable geocode cache entry", "key", key)
		return domain.Address{}, false
	}
	return addr, true
}

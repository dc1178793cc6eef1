package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/observability"
)

// Feed labels used in logs and metrics.
const (
	feedRoadConditions  = "roadconditions"
	feedMountainPasses  = "mountainpasses"
	feedAlerts          = "alerts"
	feedServiceVehicles = "servicevehicles"
)

// fetchFeeds fetches all four feeds concurrently. Each feed lands in its own
// field, so record order within a feed is the order the feed sent. A failed
// feed is logged and left nil.
func fetchFeeds(ctx context.Context, src FeedSource, logger *slog.Logger, metrics *observability.Metrics) domain.Feeds {
	var feeds domain.Feeds
	var wg sync.WaitGroup

	wg.Go(func() {
		feeds.RoadConditions = fetchFeed(ctx, feedRoadConditions, src.RoadConditions, logger, metrics)
	})
	wg.Go(func() {
		feeds.MountainPasses = fetchFeed(ctx, feedMountainPasses, src.MountainPasses, logger, metrics)
	})
	wg.Go(func() {
		feeds.Advisories = fetchFeed(ctx, feedAlerts, src.Advisories, logger, metrics)
	})
	wg.Go(func() {
		feeds.ServiceVehicles = fetchFeed(ctx, feedServiceVehicles, src.ServiceVehicles, logger, metrics)
	})

	wg.Wait()
	return feeds
}

func fetchFeed[T any](ctx context.Context, feed string, fetch func(context.Context) ([]T, error), logger *slog.Logger, metrics *observability.Metrics) []T {
	records, err := fetch(ctx)
	if err != nil {
		logger.Warn("feed unavailable, treating as empty", "feed", feed, "error", err)
		metrics.FeedErrors.WithLabelValues(feed).Inc()
		return nil
	}
	metrics.FeedRecords.WithLabelValues(feed).Add(float64(len(records)))
	return records
}

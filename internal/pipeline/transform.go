package pipeline

import (
	"context"
	"log/slog"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/observability"
)

// Report categories used as metric labels.
const (
	categoryRoads      = "roads"
	categoryPasses     = "passes"
	categoryAdvisories = "advisories"
	categoryVehicles   = "vehicles"
)

// ReportBuilder normalizes raw feeds, filters them against the policy, and
// composes the report sentences.
type ReportBuilder struct {
	filter   *domain.Filter
	composer *domain.Composer
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewReportBuilder creates a ReportBuilder. A nil geocoder leaves every
// vehicle out of the report.
func NewReportBuilder(filter *domain.Filter, composer *domain.Composer, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *ReportBuilder {
	return &ReportBuilder{
		filter:   filter,
		composer: composer,
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
	}
}

// Build turns one set of raw feeds into a report stamped with the filter's
// current time.
func (b *ReportBuilder) Build(ctx context.Context, feeds domain.Feeds) domain.Report {
	sel := domain.Selection{
		Roads:      b.filter.Roads(domain.NormalizeRoadConditions(feeds.RoadConditions)),
		Passes:     b.filter.Passes(domain.NormalizeMountainPasses(feeds.MountainPasses)),
		Advisories: b.filter.Advisories(domain.NormalizeAdvisories(feeds.Advisories)),
		Vehicles:   b.filter.Vehicles(ctx, domain.NormalizeServiceVehicles(feeds.ServiceVehicles), b.geocoder, b.logger),
	}
	b.record(sel)

	report := b.composer.Compose(sel, b.filter.Now())
	b.metrics.ReportSentences.Set(float64(len(report.Sentences)))
	return report
}

func (b *ReportBuilder) record(sel domain.Selection) {
	b.metrics.FactsIncluded.WithLabelValues(categoryRoads).Add(float64(len(sel.Roads)))
	b.metrics.FactsIncluded.WithLabelValues(categoryPasses).Add(float64(len(sel.Passes.Findings)))
	b.metrics.FactsIncluded.WithLabelValues(categoryAdvisories).Add(float64(len(sel.Advisories)))
	b.metrics.FactsIncluded.WithLabelValues(categoryVehicles).Add(float64(len(sel.Vehicles)))

	if len(sel.Roads) == 0 {
		b.metrics.FallbackSentences.WithLabelValues(categoryRoads).Inc()
	}
	if sel.Passes.AllClear {
		b.metrics.FallbackSentences.WithLabelValues(categoryPasses).Inc()
	}

	b.logger.Debug("facts selected",
		"roads", len(sel.Roads),
		"passes", len(sel.Passes.Findings),
		"advisories", len(sel.Advisories),
		"vehicles", len(sel.Vehicles),
	)
}

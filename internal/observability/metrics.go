package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "traffic_report"

// Metrics holds the Prometheus counters, histograms, and gauges for one report run.
type Metrics struct {
	// Feed metrics.
	FeedRecords *prometheus.CounterVec // labels: feed={roadconditions,mountainpasses,alerts,servicevehicles}
	FeedErrors  *prometheus.CounterVec // labels: feed

	// Report content metrics.
	FactsIncluded     *prometheus.CounterVec // labels: category={roads,passes,advisories,vehicles}
	FallbackSentences *prometheus.CounterVec // labels: category={roads,passes}
	ReportSentences   prometheus.Gauge

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: layer={memory,redis}, result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram

	// Audio metrics.
	TTSDuration    prometheus.Histogram
	RenderDuration prometheus.Histogram

	LastSuccess prometheus.Gauge
}

// NewMetrics creates all report metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_records_total",
			Help:      "Records received from each UDOT feed.",
		}, []string{"feed"}),
		FeedErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_errors_total",
			Help:      "UDOT feed fetches that failed and were treated as empty.",
		}, []string{"feed"}),
		FactsIncluded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "facts_included_total",
			Help:      "Facts that made it into the report, by category.",
		}, []string{"category"}),
		FallbackSentences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_sentences_total",
			Help:      "All-clear sentences emitted, by category.",
		}, []string{"category"}),
		ReportSentences: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "report_sentences",
			Help:      "Number of sentences in the last report, intro and outro included.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Reverse geocoding cache lookups by layer and result.",
		}, []string{"layer", "result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Nominatim request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		TTSDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tts_duration_seconds",
			Help:      "Speech synthesis request duration in seconds.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time to mix, encode, and tag the broadcast file.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that produced a broadcast file.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.FeedRecords,
		m.FeedErrors,
		m.FactsIncluded,
		m.FallbackSentences,
		m.ReportSentences,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.TTSDuration,
		m.RenderDuration,
		m.LastSuccess,
	}
}

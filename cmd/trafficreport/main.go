// Command trafficreport builds one UDOT traffic report, speaks it, mixes it
// over the station's music bed, and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/adapter/googletts"
	kafkaadapter "github.com/TannerNelson16/radio-traffic-report-udot/internal/adapter/kafka"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/adapter/nominatim"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/adapter/udot"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/audio"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/config"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/observability"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/pipeline"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "print the report text and skip speech, audio, and publishing")
	flag.Parse()
	os.Exit(run(*dryRun))
}

func run(dryRun bool) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger, runID := observability.WithRunID(sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat))

	interests, err := config.LoadInterests(cfg.InterestsFile)
	if err != nil {
		logger.Error("failed to load interests", "error", err)
		return 1
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	ctx, cancel := runContext(logger, cfg.ShutdownTimeout)
	defer cancel()

	geocoder, closeGeocoder := newGeocoder(cfg, metrics, logger)
	defer closeGeocoder()

	policy := cfg.Policy(interests)
	builder := pipeline.NewReportBuilder(
		domain.NewFilter(policy, clockwork.NewRealClock()),
		domain.NewComposer("", "", policy.Location()),
		geocoder,
		logger,
		metrics,
	)
	stages := pipeline.Stages{
		Feeds:   udot.NewClient(cfg.UDOTAPIKey, cfg.UDOTBaseURL, cfg.FeedTimeout, logger),
		Builder: builder,
	}

	if !dryRun {
		synth, err := googletts.New(ctx, googletts.Voice{
			LanguageCode: cfg.TTSLanguage,
			Name:         cfg.TTSVoice,
			Gender:       cfg.TTSGender,
		}, metrics, logger)
		if err != nil {
			logger.Error("failed to create speech synthesizer", "error", err)
			return 1
		}
		stages.Synthesizer = synth
		stages.Renderer = audio.NewRenderer(audio.Options{
			MusicGainDB: cfg.MusicGainDB,
			FadeIn:      cfg.FadeIn,
			FadeOut:     cfg.FadeOut,
			SampleRate:  cfg.OutputSampleRate,
			Tags:        audio.Tags{Artist: cfg.TagArtist, Title: cfg.TagTitle},
		}, audio.MP3Encoder{}, audio.ID3Tagger{}, logger)

		if cfg.PublishEnabled() {
			publisher := kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaReportTopic, logger)
			defer func() {
				if err := publisher.Close(); err != nil {
					logger.Error("kafka publisher close error", "error", err)
				}
			}()
			stages.Publisher = publisher
		}
	}

	engine := pipeline.New(stages, pipeline.Options{
		VoiceFile:  cfg.VoiceFile,
		MusicFile:  cfg.MusicFile,
		OutputFile: cfg.OutputFile,
		DryRun:     dryRun,
	}, logger, metrics)

	res, err := engine.Run(ctx, runID)
	pushMetrics(cfg, registry, logger)
	if err != nil {
		logger.Error("report run failed", "error", err)
		return 1
	}

	if dryRun {
		fmt.Println(res.Report.Narrative())
	}
	return 0
}

// runContext returns a context that survives SIGINT/SIGTERM for up to grace
// so an in-flight run can finish writing its output.
func runContext(logger *slog.Logger, grace time.Duration) (context.Context, context.CancelFunc) {
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer stop()
		select {
		case <-ctx.Done():
			return
		case <-sigCtx.Done():
		}
		logger.Info("shutdown signal received, finishing run", "timeout", grace)
		timer := time.NewTimer(grace)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
			logger.Warn("shutdown timeout exceeded, cancelling run")
			cancel()
		}
	}()
	return ctx, cancel
}

// newGeocoder builds Nominatim behind an optional Redis cache and the
// in-process LRU. The returned func releases the Redis connection.
func newGeocoder(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (domain.Geocoder, func()) {
	var geocoder domain.Geocoder = nominatim.NewClient(cfg.NominatimURL, cfg.NominatimUserAgent, cfg.GeocodeTimeout, metrics, logger)
	closeFn := func() {}

	if cfg.GeocodeRedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.GeocodeRedisAddr})
		geocoder = nominatim.NewRedisGeocoder(geocoder, rdb, cfg.GeocodeRedisTTL, metrics, logger)
		closeFn = func() {
			if err := rdb.Close(); err != nil {
				logger.Error("redis close error", "error", err)
			}
		}
		logger.Info("redis geocode cache enabled", "addr", cfg.GeocodeRedisAddr, "ttl", cfg.GeocodeRedisTTL)
	}

	geocoder = nominatim.NewCachedGeocoder(geocoder, cfg.GeocodeCacheSize, metrics)
	return geocoder, closeFn
}

func pushMetrics(cfg *config.Config, registry *prometheus.Registry, logger *slog.Logger) {
	if cfg.PushgatewayURL == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := observability.Push(ctx, cfg.PushgatewayURL, registry); err != nil {
		logger.Warn("metrics push failed", "error", err)
	}
}

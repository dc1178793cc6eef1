// Package pipeline runs one traffic report end to end: fetch the UDOT feeds,
// build the report, synthesize it, render the broadcast file, and publish.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/observability"
)

// FeedSource fetches the four UDOT feeds.
type FeedSource interface {
	RoadConditions(ctx context.Context) ([]domain.RawRoadCondition, error)
	MountainPasses(ctx context.Context) ([]domain.RawMountainPass, error)
	Advisories(ctx context.Context) ([]domain.RawAdvisory, error)
	ServiceVehicles(ctx context.Context) ([]domain.RawServiceVehicle, error)
}

// Synthesizer turns narrative text into encoded speech.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Renderer mixes the voice file over the music bed into the output file.
type Renderer interface {
	Render(voicePath, musicPath, outPath string) error
}

// Publisher sends a finished report downstream.
type Publisher interface {
	Publish(ctx context.Context, runID string, report domain.Report, outputFile string) error
}

// Stages are the collaborators an Engine drives. Publisher may be nil.
type Stages struct {
	Feeds       FeedSource
	Builder     *ReportBuilder
	Synthesizer Synthesizer
	Renderer    Renderer
	Publisher   Publisher
}

// Options name the files a run reads and writes.
type Options struct {
	VoiceFile  string
	MusicFile  string
	OutputFile string
	// DryRun stops after the report is composed.
	DryRun bool
}

// Result describes a finished run.
type Result struct {
	Report     domain.Report
	OutputFile string
	Published  bool
}

// Engine orchestrates a single report run.
type Engine struct {
	stages  Stages
	opts    Options
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Engine with the given stages and observability.
func New(stages Stages, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		stages:  stages,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

// Run produces one report. Feed and geocoding failures only thin out the
// report; speech synthesis and rendering failures end the run with an error.
// A publish failure is logged and the run still succeeds.
func (e *Engine) Run(ctx context.Context, runID string) (Result, error) {
	start := time.Now()
	e.logger.Info("report run started", "dry_run", e.opts.DryRun)

	feeds := fetchFeeds(ctx, e.stages.Feeds, e.logger, e.metrics)
	report := e.stages.Builder.Build(ctx, feeds)
	e.logger.Info("report composed", "sentences", len(report.Sentences))

	res := Result{Report: report}
	if e.opts.DryRun {
		return res, nil
	}

	if err := e.synthesize(ctx, report); err != nil {
		return res, err
	}

	renderStart := time.Now()
	if err := e.stages.Renderer.Render(e.opts.VoiceFile, e.opts.MusicFile, e.opts.OutputFile); err != nil {
		e.logger.Error("render failed", "output_file", e.opts.OutputFile, "error", err)
		return res, err
	}
	e.metrics.RenderDuration.Observe(time.Since(renderStart).Seconds())
	e.metrics.LastSuccess.SetToCurrentTime()
	res.OutputFile = e.opts.OutputFile

	if e.stages.Publisher != nil {
		if err := e.stages.Publisher.Publish(ctx, runID, report, res.OutputFile); err != nil {
			e.logger.Warn("publish report failed", "error", err)
		} else {
			res.Published = true
		}
	}

	e.logger.Info("report run complete",
		"output_file", res.OutputFile,
		"published", res.Published,
		"duration", time.Since(start),
	)
	return res, nil
}

// synthesize speaks the report and writes the voice file.
func (e *Engine) synthesize(ctx context.Context, report domain.Report) error {
	speech, err := e.stages.Synthesizer.Synthesize(ctx, report.Narrative())
	if err != nil {
		e.logger.Error("speech synthesis failed", "error", err)
		return fmt.Errorf("synthesize report: %w", err)
	}
	if err := os.WriteFile(e.opts.VoiceFile, speech, 0o644); err != nil {
		return fmt.Errorf("write voice file: %w", err)
	}
	e.logger.Debug("voice file written", "path", e.opts.VoiceFile, "bytes", len(speech))
	return nil
}

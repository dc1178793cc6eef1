// Package googletts turns report narratives into speech with the Google
// Cloud Text-to-Speech API.
package googletts

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/observability"
)

// Voice defaults.
const (
	DefaultLanguage = "en-US"
	DefaultVoice    = "en-US-Neural2-I"
	DefaultGender   = "MALE"
	audioEncoding   = "MP3"
)

// ErrEmptyText is returned when there is nothing to say.
var ErrEmptyText = errors.New("nothing to synthesize")

// Voice selects the speaker.
type Voice struct {
	LanguageCode string
	Name         string
	Gender       string // MALE, FEMALE, or NEUTRAL
}

// Synthesizer calls the text:synthesize endpoint and returns MP3 bytes.
// Credentials come from Application Default Credentials
// (GOOGLE_APPLICATION_CREDENTIALS) unless opts say otherwise.
type Synthesizer struct {
	svc     *texttospeech.Service
	voice   Voice
	metrics *observability.Metrics
	logger  *slog.Logger
}

// New creates a Synthesizer. Empty Voice fields take the defaults.
func New(ctx context.Context, voice Voice, metrics *observability.Metrics, logger *slog.Logger, opts ...option.ClientOption) (*Synthesizer, error) {
	svc, err := texttospeech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create text-to-speech client: %w", err)
	}
	if voice.LanguageCode == "" {
		voice.LanguageCode = DefaultLanguage
	}
	if voice.Name == "" {
		voice.Name = DefaultVoice
	}
	if voice.Gender == "" {
		voice.Gender = DefaultGender
	}
	return &Synthesizer{svc: svc, voice: voice, metrics: metrics, logger: logger}, nil
}

// Synthesize speaks text and returns the encoded MP3 audio.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: s.voice.LanguageCode,
			Name:         s.voice.Name,
			SsmlGender:   s.voice.Gender,
		},
		AudioConfig: &texttospeech.AudioConfig{AudioEncoding: audioEncoding},
	}

	start := time.Now()
	resp, err := s.svc.Text.Synthesize(req).Context(ctx).Do()
	s.metrics.TTSDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return nil, fmt.Errorf("synthesize speech: status %d: %s", gerr.Code, gerr.Message)
		}
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio content: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("synthesize speech: empty audio content")
	}

	s.logger.Debug("speech synthesized", "voice", s.voice.Name, "chars", len(text), "bytes", len(audio))
	return audio, nil
}

package audio

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep/v2"
)

// Options configure a Renderer.
type Options struct {
	MusicGainDB float64
	FadeIn      time.Duration
	FadeOut     time.Duration
	SampleRate  int
	Tags        Tags
}

// DefaultOptions match the station's broadcast settings.
func DefaultOptions() Options {
	return Options{
		MusicGainDB: -8,
		FadeIn:      time.Second,
		FadeOut:     1500 * time.Millisecond,
		SampleRate:  44100,
		Tags: Tags{
			Artist: "Morgan Valley Radio",
			Title:  "Traffic Update",
		},
	}
}

// Renderer turns a voice file and a music file into the tagged broadcast
// file.
type Renderer struct {
	opts    Options
	encoder Encoder
	tagger  Tagger
	logger  *slog.Logger
}

// NewRenderer creates a Renderer. A zero SampleRate uses the default.
func NewRenderer(opts Options, encoder Encoder, tagger Tagger, logger *slog.Logger) *Renderer {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultOptions().SampleRate
	}
	return &Renderer{opts: opts, encoder: encoder, tagger: tagger, logger: logger}
}

// Render mixes voicePath over musicPath and writes the result to outPath,
// replacing any previous file only once the new one is complete. Every
// failure wraps ErrRender.
func (r *Renderer) Render(voicePath, musicPath, outPath string) error {
	rate := beep.SampleRate(r.opts.SampleRate)

	voice, err := DecodeFile(voicePath, rate)
	if err != nil {
		return err
	}
	music, err := DecodeFile(musicPath, rate)
	if err != nil {
		return err
	}

	mixed, err := Mix(voice, music, MixOptions{
		MusicGainDB: r.opts.MusicGainDB,
		FadeIn:      rate.N(r.opts.FadeIn),
		FadeOut:     rate.N(r.opts.FadeOut),
	})
	if err != nil {
		return err
	}

	if err := r.write(mixed, outPath); err != nil {
		return err
	}

	r.logger.Info("broadcast rendered",
		"output", outPath,
		"duration", rate.D(mixed.Len()).Round(time.Millisecond),
		"music_tiles", TileCount(voice.Len(), music.Len()),
	)
	return nil
}

// write encodes and tags buf in a temp file beside outPath, then renames it
// into place.
func (r *Renderer) write(buf *beep.Buffer, outPath string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrRender, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := r.encoder.Encode(w, buf); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrRender, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrRender, tmp.Name(), err)
	}

	if r.tagger != nil {
		if err := r.tagger.Tag(tmp.Name(), r.opts.Tags); err != nil {
			return fmt.Errorf("%w: %w", ErrRender, err)
		}
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", ErrRender, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", ErrRender, outPath, err)
	}
	return nil
}

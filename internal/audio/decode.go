package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"
)

const resampleQuality = 4

// DecodeFile reads an MP3 or WAV file into memory at the given sample rate.
// The format is picked by extension; anything other than .wav is read as MP3.
func DecodeFile(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrRender, path, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		streamer, format, err = wav.Decode(f)
	} else {
		streamer, format, err = mp3.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: decode %s: %w", ErrRender, path, err)
	}
	defer streamer.Close()

	buf, err := bufferAt(streamer, format.SampleRate, rate)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrRender, path, err)
	}
	return buf, nil
}

// bufferAt drains s into a stereo buffer, resampling from `from` to `to`.
func bufferAt(s beep.Streamer, from, to beep.SampleRate) (*beep.Buffer, error) {
	var src beep.Streamer = s
	if from != to {
		src = beep.Resample(resampleQuality, from, to, s)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: to, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, err
	}
	return buf, nil
}

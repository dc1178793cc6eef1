package audio

import (
	"fmt"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

// TileCount is how many copies of a music track of musicLen samples are laid
// end to end under a voice track of voiceLen samples. The result always
// covers the voice, with at least one partial copy to spare.
func TileCount(voiceLen, musicLen int) int {
	if musicLen <= 0 {
		return 0
	}
	return voiceLen/musicLen + 1
}

// MixOptions are the music bed settings applied by Mix.
type MixOptions struct {
	MusicGainDB float64
	FadeIn      int // samples
	FadeOut     int // samples
}

// Mix lays voice over a tiled, attenuated, faded copy of music. Both buffers
// must share a sample rate. The result has exactly voice.Len() samples.
func Mix(voice, music *beep.Buffer, opts MixOptions) (*beep.Buffer, error) {
	if voice.Format().SampleRate != music.Format().SampleRate {
		return nil, fmt.Errorf("%w: sample rate mismatch: voice %d Hz, music %d Hz",
			ErrRender, voice.Format().SampleRate, music.Format().SampleRate)
	}
	n := voice.Len()
	if n == 0 {
		return nil, fmt.Errorf("%w: voice track is empty", ErrRender)
	}
	if music.Len() == 0 {
		return nil, fmt.Errorf("%w: music track is empty", ErrRender)
	}

	tiles := make([]beep.Streamer, TileCount(n, music.Len()))
	for i := range tiles {
		tiles[i] = music.Streamer(0, music.Len())
	}

	var bed beep.Streamer = beep.Take(n, beep.Seq(tiles...))
	bed = &effects.Volume{Streamer: bed, Base: 10, Volume: opts.MusicGainDB / 20}
	bed = newFader(bed, n, opts.FadeIn, opts.FadeOut)

	out := beep.NewBuffer(voice.Format())
	out.Append(beep.Take(n, beep.Mix(bed, voice.Streamer(0, n))))
	return out, nil
}

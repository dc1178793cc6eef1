package audio

import "github.com/gopxl/beep/v2"

// fader applies linear fade-in and fade-out envelopes to a stream of known
// length. Both envelopes are clamped to the stream length; where they overlap
// their gains multiply.
type fader struct {
	streamer beep.Streamer
	total    int
	in       int
	out      int
	pos      int
}

func newFader(s beep.Streamer, total, in, out int) *fader {
	return &fader{
		streamer: s,
		total:    total,
		in:       min(max(in, 0), total),
		out:      min(max(out, 0), total),
	}
}

func (f *fader) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := range n {
		g := f.gain(f.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

func (f *fader) Err() error {
	return f.streamer.Err()
}

// gain is the envelope at sample p.
func (f *fader) gain(p int) float64 {
	g := 1.0
	if p < f.in {
		g *= float64(p) / float64(f.in)
	}
	if tail := f.total - p; tail <= f.out {
		g *= float64(tail-1) / float64(f.out)
	}
	if g < 0 {
		return 0
	}
	return g
}

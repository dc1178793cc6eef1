package audio

import (
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = beep.SampleRate(100)

// sampleDelta covers 16-bit quantization inside beep.Buffer.
const sampleDelta = 1e-3

func testFormat(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}

// constant streams v on both channels forever.
type constant float64

func (c constant) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{float64(c), float64(c)}
	}
	return len(samples), true
}

func (constant) Err() error { return nil }

// sawtooth streams i/period on both channels, so every sample position
// within a period is recognizable.
type sawtooth struct {
	period int
	pos    int
}

func (s *sawtooth) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := float64(s.pos%s.period) / float64(s.period)
		samples[i] = [2]float64{v, v}
		s.pos++
	}
	return len(samples), true
}

func (*sawtooth) Err() error { return nil }

func bufferOf(rate beep.SampleRate, n int, s beep.Streamer) *beep.Buffer {
	buf := beep.NewBuffer(testFormat(rate))
	buf.Append(beep.Take(n, s))
	return buf
}

func samplesOf(buf *beep.Buffer) [][2]float64 {
	out := make([][2]float64, buf.Len())
	n, _ := buf.Streamer(0, buf.Len()).Stream(out)
	return out[:n]
}

func TestTileCount(t *testing.T) {
	tests := []struct {
		voice, music, want int
	}{
		{3000, 1000, 4},
		{2500, 1000, 3},
		{999, 1000, 1},
		{1000, 1000, 2},
		{10, 0, 0},
	}
	for _, tt := range tests {
		got := TileCount(tt.voice, tt.music)
		assert.Equal(t, tt.want, got, "TileCount(%d, %d)", tt.voice, tt.music)
		if tt.music > 0 {
			assert.Greater(t, got*tt.music, tt.voice, "tiles must cover the voice")
		}
	}
}

func TestMix_ThirtySecondVoiceTenSecondMusic(t *testing.T) {
	voice := bufferOf(testRate, testRate.N(30e9), constant(0))
	music := bufferOf(testRate, testRate.N(10e9), &sawtooth{period: 1000})

	out, err := Mix(voice, music, MixOptions{})
	require.NoError(t, err)

	require.Equal(t, 3000, out.Len(), "output must be exactly as long as the voice")
	assert.Equal(t, testRate.D(voice.Len()), testRate.D(out.Len()))

	got := samplesOf(out)
	for _, i := range []int{0, 1, 500, 999, 1000, 1001, 1999, 2000, 2500, 2999} {
		want := float64(i%1000) / 1000
		assert.InDelta(t, want, got[i][0], sampleDelta, "sample %d", i)
		assert.InDelta(t, want, got[i][1], sampleDelta, "sample %d", i)
	}
}

func TestMix_MusicLongerThanVoice(t *testing.T) {
	voice := bufferOf(testRate, 150, constant(0))
	music := bufferOf(testRate, 1000, &sawtooth{period: 1000})

	out, err := Mix(voice, music, MixOptions{})
	require.NoError(t, err)

	require.Equal(t, 150, out.Len())
	assert.InDelta(t, 0.149, samplesOf(out)[149][0], sampleDelta)
}

func TestMix_OverlayFromSampleZero(t *testing.T) {
	voice := bufferOf(testRate, 200, constant(0.25))
	music := bufferOf(testRate, 50, constant(0.5))

	out, err := Mix(voice, music, MixOptions{})
	require.NoError(t, err)

	got := samplesOf(out)
	require.Len(t, got, 200)
	for _, i := range []int{0, 49, 50, 199} {
		assert.InDelta(t, 0.75, got[i][0], sampleDelta, "sample %d", i)
	}
}

func TestMix_MusicGain(t *testing.T) {
	voice := bufferOf(testRate, 100, constant(0))
	music := bufferOf(testRate, 100, constant(0.8))

	out, err := Mix(voice, music, MixOptions{MusicGainDB: -20})
	require.NoError(t, err)

	assert.InDelta(t, 0.08, samplesOf(out)[10][0], sampleDelta)
}

func TestMix_FadeEnvelopes(t *testing.T) {
	voice := bufferOf(testRate, 3000, constant(0))
	music := bufferOf(testRate, 1000, constant(1))

	out, err := Mix(voice, music, MixOptions{
		FadeIn:  testRate.N(1e9),   // 100 samples
		FadeOut: testRate.N(1.5e9), // 150 samples
	})
	require.NoError(t, err)

	got := samplesOf(out)
	tests := []struct {
		sample int
		want   float64
	}{
		{0, 0},
		{50, 0.5},
		{99, 0.99},
		{100, 1},
		{1500, 1},
		{2849, 1},
		{2850, 149.0 / 150},
		{2924, 0.5},
		{2999, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, got[tt.sample][0], sampleDelta, "sample %d", tt.sample)
	}
}

func TestMix_FadeAppliedBeforeOverlay(t *testing.T) {
	voice := bufferOf(testRate, 300, constant(0.5))
	music := bufferOf(testRate, 300, constant(0.25))

	out, err := Mix(voice, music, MixOptions{FadeIn: 100, FadeOut: 100})
	require.NoError(t, err)

	got := samplesOf(out)
	assert.InDelta(t, 0.5, got[0][0], sampleDelta, "voice is not faded")
	assert.InDelta(t, 0.5, got[299][0], sampleDelta, "voice is not faded")
	assert.InDelta(t, 0.75, got[150][0], sampleDelta)
}

func TestMix_Errors(t *testing.T) {
	music := bufferOf(testRate, 100, constant(0.5))

	_, err := Mix(bufferOf(testRate, 0, constant(0)), music, MixOptions{})
	require.ErrorIs(t, err, ErrRender)
	assert.Contains(t, err.Error(), "voice track is empty")

	_, err = Mix(bufferOf(testRate, 100, constant(0)), bufferOf(testRate, 0, constant(0)), MixOptions{})
	require.ErrorIs(t, err, ErrRender)
	assert.Contains(t, err.Error(), "music track is empty")

	_, err = Mix(bufferOf(testRate, 100, constant(0)), bufferOf(2*testRate, 100, constant(0)), MixOptions{})
	require.ErrorIs(t, err, ErrRender)
	assert.Contains(t, err.Error(), "sample rate mismatch")
}

func TestFader_Gain(t *testing.T) {
	f := newFader(constant(1), 10, 4, 2)

	want := []float64{0, 0.25, 0.5, 0.75, 1, 1, 1, 1, 0.5, 0}
	for p, w := range want {
		assert.InDelta(t, w, f.gain(p), 1e-12, "sample %d", p)
	}
}

func TestFader_ClampsAndOverlaps(t *testing.T) {
	f := newFader(constant(1), 4, 10, 10)

	assert.Equal(t, 4, f.in)
	assert.Equal(t, 4, f.out)
	assert.InDelta(t, 0, f.gain(0), 1e-12)
	assert.InDelta(t, 0.5*0.25, f.gain(2), 1e-12)
	assert.InDelta(t, 0, f.gain(3), 1e-12)

	neg := newFader(constant(1), 4, -1, -1)
	assert.InDelta(t, 1, neg.gain(0), 1e-12)
	assert.InDelta(t, 1, neg.gain(3), 1e-12)
}

func TestFader_Stream(t *testing.T) {
	f := newFader(beep.Take(10, constant(1)), 10, 4, 2)

	samples := make([][2]float64, 16)
	n, ok := f.Stream(samples)

	assert.Equal(t, 10, n)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, samples[2][1], 1e-12)
	assert.InDelta(t, 0.5, samples[8][0], 1e-12)
	assert.NoError(t, f.Err())
}

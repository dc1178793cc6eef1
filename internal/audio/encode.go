package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/braheezy/shine-mp3/pkg/mp3"
	"github.com/gopxl/beep/v2"
)

// Encoder writes a mixed buffer to w in some container format.
type Encoder interface {
	Encode(w io.Writer, buf *beep.Buffer) error
}

// mp3FrameSamples is the number of samples per channel in one MPEG-1 Layer
// III frame. shine only emits whole frames.
const mp3FrameSamples = 1152

// MP3Encoder encodes stereo 16-bit MP3 with the pure-Go shine encoder. The
// tail is padded with silence to a whole frame, so the encoded audio is never
// shorter than buf.
type MP3Encoder struct{}

func (MP3Encoder) Encode(w io.Writer, buf *beep.Buffer) error {
	pcm := padToFrame(interleave(buf))
	enc := mp3.NewEncoder(int(buf.Format().SampleRate), 2)
	if err := enc.Write(w, pcm); err != nil {
		return fmt.Errorf("encode mp3: %w", err)
	}
	return nil
}

// interleave converts the buffer to interleaved L/R signed 16-bit PCM.
func interleave(buf *beep.Buffer) []int16 {
	pcm := make([]int16, 0, 2*buf.Len())
	s := buf.Streamer(0, buf.Len())
	var chunk [512][2]float64
	for {
		n, ok := s.Stream(chunk[:])
		for _, frame := range chunk[:n] {
			pcm = append(pcm, toInt16(frame[0]), toInt16(frame[1]))
		}
		if !ok {
			return pcm
		}
	}
}

// padToFrame appends silent stereo samples until pcm holds a whole number of
// frames.
func padToFrame(pcm []int16) []int16 {
	const frameLen = 2 * mp3FrameSamples
	if rem := len(pcm) % frameLen; rem != 0 {
		pcm = append(pcm, make([]int16, frameLen-rem)...)
	}
	return pcm
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}

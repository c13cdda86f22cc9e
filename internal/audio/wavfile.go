package audio

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/wav"
)

// WAVSource reads a whole WAV file up front and serves it as a Source,
// downmixed to mono.
type WAVSource struct {
	samples []float32
	rate    int
	pos     int
}

// OpenWAV decodes a WAV file into a source.
func OpenWAV(path string) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid wav file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("%s: no channels", path)
	}
	scale := math.Exp2(float64(dec.BitDepth - 1))
	frames := len(buf.Data) / channels
	samples := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}
		samples[i] = float32(sum / float64(channels) / scale)
	}

	return &WAVSource{samples: samples, rate: buf.Format.SampleRate}, nil
}

// ReadSamples copies decoded samples; io.EOF when exhausted.
func (w *WAVSource) ReadSamples(buf []float32) (int, error) {
	if w.pos >= len(w.samples) {
		return 0, io.EOF
	}
	n := copy(buf, w.samples[w.pos:])
	w.pos += n
	return n, nil
}

// SampleRate returns the file's rate.
func (w *WAVSource) SampleRate() int { return w.rate }

// Duration returns the file length in samples.
func (w *WAVSource) Duration() int { return len(w.samples) }

// Close is a no-op; the file is already fully read.
func (w *WAVSource) Close() error { return nil }

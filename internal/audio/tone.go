package audio

import "math"

// fadeSamples tapers tone edges to avoid clicks.
const fadeSamples = 441 // 10ms at 44.1kHz

// Tone generates pure sine reference tones.
type Tone struct {
	rate int
}

// NewTone creates a generator for the given sample rate.
func NewTone(sampleRate int) *Tone {
	return &Tone{rate: sampleRate}
}

// Generate returns a sine wave at frequency for the given duration in
// seconds, with short fades at both ends.
func (t *Tone) Generate(frequency, duration float64) []float32 {
	n := int(float64(t.rate) * duration)
	samples := make([]float32, n)
	for i := range samples {
		v := math.Sin(2 * math.Pi * frequency * float64(i) / float64(t.rate))
		samples[i] = float32(0.6 * v * fadeGain(i, n))
	}
	return samples
}

// Play generates and writes a tone through the sink.
func (t *Tone) Play(sink Sink, frequency, duration float64) error {
	return sink.WriteSamples(t.Generate(frequency, duration))
}

func fadeGain(i, n int) float64 {
	fade := fadeSamples
	if n < 2*fade {
		fade = n / 2
	}
	if fade == 0 {
		return 1
	}
	if i < fade {
		return float64(i) / float64(fade)
	}
	if i >= n-fade {
		return float64(n-1-i) / float64(fade)
	}
	return 1
}

// Package audio provides the capture and playback boundary: Source and
// Sink capabilities with live-device, WAV-file, and in-memory
// implementations, plus the capture pump that feeds the pitch detector.
package audio

import (
	"errors"
	"io"
)

// ErrDeviceUnavailable is returned when no usable audio device can be
// acquired.
var ErrDeviceUnavailable = errors.New("audio device unavailable")

// Source produces sample frames. Implementations: live microphone,
// WAV file, in-memory test buffer.
type Source interface {
	// ReadSamples fills buf and returns the number of samples written.
	// io.EOF signals a finite source is exhausted.
	ReadSamples(buf []float32) (int, error)
	// SampleRate returns the source's rate in Hz.
	SampleRate() int
	// Close releases the source.
	Close() error
}

// Sink consumes sample frames for playback.
type Sink interface {
	// WriteSamples plays the samples, blocking until they are
	// consumed.
	WriteSamples(samples []float32) error
	// SampleRate returns the sink's rate in Hz.
	SampleRate() int
	// Close releases the sink.
	Close() error
}

// MemorySource replays a fixed sample buffer. Test double for live
// capture.
type MemorySource struct {
	Samples []float32
	Rate    int
	// Loop makes the source endless by wrapping around.
	Loop bool

	pos int
}

// ReadSamples copies from the backing buffer.
func (m *MemorySource) ReadSamples(buf []float32) (int, error) {
	if m.pos >= len(m.Samples) {
		if !m.Loop || len(m.Samples) == 0 {
			return 0, io.EOF
		}
		m.pos = 0
	}
	n := copy(buf, m.Samples[m.pos:])
	m.pos += n
	return n, nil
}

// SampleRate returns the configured rate.
func (m *MemorySource) SampleRate() int { return m.Rate }

// Close is a no-op.
func (m *MemorySource) Close() error { return nil }

// MemorySink records written samples. Test double for the speaker.
type MemorySink struct {
	Rate    int
	Written []float32
}

// WriteSamples appends to the recording.
func (m *MemorySink) WriteSamples(samples []float32) error {
	m.Written = append(m.Written, samples...)
	return nil
}

// SampleRate returns the configured rate.
func (m *MemorySink) SampleRate() int { return m.Rate }

// Close is a no-op.
func (m *MemorySink) Close() error { return nil }

package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// captureChunk is the frame count per PortAudio read. Small enough to
// keep latency low, large enough to keep callback overhead down.
const captureChunk = 1024

// Capture reads from the system's default input device via PortAudio.
type Capture struct {
	stream *portaudio.Stream
	rate   int
	chunk  []float32
	// leftover holds samples read from the device but not yet handed
	// to the caller.
	leftover []float32
}

// OpenCapture initializes PortAudio and opens the default input
// stream. Returns ErrDeviceUnavailable (wrapped) when no input device
// exists.
func OpenCapture(sampleRate int) (*Capture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: initialize portaudio: %v", ErrDeviceUnavailable, err)
	}
	c := &Capture{
		rate:  sampleRate,
		chunk: make([]float32, captureChunk),
	}
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), captureChunk, c.chunk)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: open input stream: %v", ErrDeviceUnavailable, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: start input stream: %v", ErrDeviceUnavailable, err)
	}
	c.stream = stream
	return c, nil
}

// ReadSamples fills buf from the device, blocking until enough frames
// arrive.
func (c *Capture) ReadSamples(buf []float32) (int, error) {
	filled := 0
	for filled < len(buf) {
		if len(c.leftover) > 0 {
			n := copy(buf[filled:], c.leftover)
			c.leftover = c.leftover[n:]
			filled += n
			continue
		}
		if err := c.stream.Read(); err != nil {
			return filled, fmt.Errorf("read input stream: %w", err)
		}
		c.leftover = c.chunk
	}
	return filled, nil
}

// SampleRate returns the stream's rate.
func (c *Capture) SampleRate() int { return c.rate }

// Close stops the stream and tears down PortAudio.
func (c *Capture) Close() error {
	if c.stream != nil {
		c.stream.Stop()
		c.stream.Close()
		c.stream = nil
	}
	return portaudio.Terminate()
}

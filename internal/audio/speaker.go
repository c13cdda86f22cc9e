package audio

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

// Speaker plays samples through the default output device via oto.
type Speaker struct {
	ctx  *oto.Context
	rate int
}

// OpenSpeaker creates a playback context. Returns ErrDeviceUnavailable
// (wrapped) when the output device cannot be acquired; callers degrade
// gracefully (tuning works without playback).
func OpenSpeaker(sampleRate int) (*Speaker, error) {
	ctx, ready, err := oto.NewContext(sampleRate, 1, 2)
	if err != nil {
		return nil, fmt.Errorf("%w: open output context: %v", ErrDeviceUnavailable, err)
	}
	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		return nil, fmt.Errorf("%w: output context not ready", ErrDeviceUnavailable)
	}
	return &Speaker{ctx: ctx, rate: sampleRate}, nil
}

// WriteSamples converts to 16-bit PCM and blocks until playback ends.
func (s *Speaker) WriteSamples(samples []float32) error {
	data := make([]byte, len(samples)*2)
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		n := int16(v * 32767)
		data[2*i] = byte(n)
		data[2*i+1] = byte(n >> 8)
	}

	p := s.ctx.NewPlayer(bytes.NewReader(data))
	p.Play()
	for p.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return p.Close()
}

// SampleRate returns the playback rate.
func (s *Speaker) SampleRate() int { return s.rate }

// Close releases the player. The oto context itself has no teardown.
func (s *Speaker) Close() error { return nil }

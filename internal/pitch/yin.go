// Package pitch implements monophonic pitch estimation using the YIN
// algorithm (difference function + cumulative-mean normalization).
package pitch

import (
	"fmt"
	"math"
)

const (
	// DefaultBufferSize gives lag coverage down to A0 (27.5 Hz) at
	// 44.1 kHz with room to spare.
	DefaultBufferSize = 4096
	// DefaultSampleRate is the capture rate used throughout.
	DefaultSampleRate = 44100

	// defaultThreshold is YIN's absolute threshold on the normalized
	// difference function.
	defaultThreshold = 0.1
	// silenceFloor is the RMS level below which the buffer is treated
	// as silence and no detection is attempted.
	silenceFloor = 0.005

	// minFrequency / maxFrequency bound the search to the piano range
	// with margin. A0 is 27.5 Hz, C8 is ~4186 Hz.
	minFrequency = 20.0
	maxFrequency = 4500.0
)

// Result is a successful detection.
type Result struct {
	// Frequency is the estimated fundamental in Hz.
	Frequency float64
	// Confidence is 1 minus the normalized difference at the chosen
	// lag, clamped to [0, 1]. Higher is more reliable.
	Confidence float64
}

// Detector runs YIN over fixed-size buffers. It is stateless across
// calls: no history is carried, so dropped buffers upstream cannot
// corrupt a detection.
type Detector struct {
	sampleRate int
	bufferSize int
	threshold  float64

	// scratch buffers reused between calls; Detect is not safe for
	// concurrent use on one Detector.
	diff  []float64
	cmndf []float64
}

// NewDetector creates a detector for the given sample rate and buffer
// size.
func NewDetector(sampleRate, bufferSize int) *Detector {
	maxLag := bufferSize / 2
	return &Detector{
		sampleRate: sampleRate,
		bufferSize: bufferSize,
		threshold:  defaultThreshold,
		diff:       make([]float64, maxLag),
		cmndf:      make([]float64, maxLag),
	}
}

// BufferSize returns the buffer length Detect expects.
func (d *Detector) BufferSize() int { return d.bufferSize }

// SampleRate returns the configured sample rate.
func (d *Detector) SampleRate() int { return d.sampleRate }

// Detect estimates the fundamental frequency of samples. The second
// return is false when no pitch is present (silence or no candidate);
// that is a state, not an error. An error is returned only for a
// buffer of the wrong length, which is a caller bug.
func (d *Detector) Detect(samples []float32) (Result, bool, error) {
	if len(samples) != d.bufferSize {
		return Result{}, false, fmt.Errorf("buffer length %d, detector expects %d", len(samples), d.bufferSize)
	}

	if rms(samples) < silenceFloor {
		return Result{}, false, nil
	}

	maxLag := d.bufferSize / 2
	minLag := int(float64(d.sampleRate) / maxFrequency)
	if minLag < 2 {
		minLag = 2
	}
	lagLimit := int(float64(d.sampleRate) / minFrequency)
	if lagLimit > maxLag {
		lagLimit = maxLag
	}

	d.difference(samples, maxLag)
	d.normalize(maxLag)

	tau := d.firstBelowThreshold(minLag, lagLimit)
	penalized := false
	if tau < 0 {
		// No lag dipped below the threshold; fall back to the global
		// minimum with confidence penalized.
		tau = d.globalMinimum(minLag, lagLimit)
		penalized = true
	}
	if tau < 0 {
		return Result{}, false, nil
	}

	refined := d.refineLag(tau, maxLag)
	freq := float64(d.sampleRate) / refined
	if freq < minFrequency || freq > maxFrequency {
		return Result{}, false, nil
	}

	confidence := 1.0 - d.cmndf[tau]
	if penalized {
		confidence /= 2
	}
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return Result{Frequency: freq, Confidence: confidence}, true, nil
}

// difference fills d.diff with the squared-difference function for
// lags [0, maxLag).
func (d *Detector) difference(samples []float32, maxLag int) {
	for lag := 0; lag < maxLag; lag++ {
		var sum float64
		for i := 0; i < maxLag; i++ {
			delta := float64(samples[i]) - float64(samples[i+lag])
			sum += delta * delta
		}
		d.diff[lag] = sum
	}
}

// normalize fills d.cmndf with the cumulative-mean-normalized
// difference function, which keeps low-order lags from dominating.
func (d *Detector) normalize(maxLag int) {
	d.cmndf[0] = 1
	var runningSum float64
	for lag := 1; lag < maxLag; lag++ {
		runningSum += d.diff[lag]
		if runningSum == 0 {
			d.cmndf[lag] = 1
			continue
		}
		d.cmndf[lag] = d.diff[lag] * float64(lag) / runningSum
	}
}

// firstBelowThreshold scans ascending lags for the first local dip
// under the threshold, then walks down to the bottom of that dip.
// Returns -1 when nothing qualifies.
func (d *Detector) firstBelowThreshold(minLag, lagLimit int) int {
	for lag := minLag; lag < lagLimit; lag++ {
		if d.cmndf[lag] < d.threshold {
			for lag+1 < lagLimit && d.cmndf[lag+1] < d.cmndf[lag] {
				lag++
			}
			return lag
		}
	}
	return -1
}

// globalMinimum returns the lag with the smallest normalized
// difference in the search window, or -1 for an empty window.
func (d *Detector) globalMinimum(minLag, lagLimit int) int {
	best := -1
	bestVal := math.Inf(1)
	for lag := minLag; lag < lagLimit; lag++ {
		if d.cmndf[lag] < bestVal {
			bestVal = d.cmndf[lag]
			best = lag
		}
	}
	return best
}

// refineLag applies parabolic interpolation over the three points
// around tau for sub-sample accuracy.
func (d *Detector) refineLag(tau, maxLag int) float64 {
	if tau <= 0 || tau >= maxLag-1 {
		return float64(tau)
	}
	left := d.cmndf[tau-1]
	mid := d.cmndf[tau]
	right := d.cmndf[tau+1]
	denom := left + right - 2*mid
	if denom == 0 {
		return float64(tau)
	}
	shift := (left - right) / (2 * denom)
	if shift > 0.5 {
		shift = 0.5
	} else if shift < -0.5 {
		shift = -0.5
	}
	return float64(tau) + shift
}

func rms(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

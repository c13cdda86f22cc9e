package tuning

import "math"

// DefaultA4 is concert pitch.
const DefaultA4 = 440.0

// Temperament computes equal-temperament frequencies for a given A4
// reference. It carries no other state.
type Temperament struct {
	A4 float64
}

// NewTemperament returns a temperament anchored at the given A4
// reference frequency.
func NewTemperament(a4 float64) Temperament {
	if a4 <= 0 {
		a4 = DefaultA4
	}
	return Temperament{A4: a4}
}

// Frequency returns the equal-temperament frequency for a MIDI note
// number. A4 is MIDI 69.
func (t Temperament) Frequency(midi int) float64 {
	return t.A4 * math.Exp2(float64(midi-MidiA4)/12.0)
}

// Cents returns the deviation of measured from target in cents.
func Cents(measured, target float64) float64 {
	return 1200.0 * math.Log2(measured/target)
}

// FrequencyFromCents shifts target by the given cents offset.
func FrequencyFromCents(target, cents float64) float64 {
	return target * math.Exp2(cents/1200.0)
}

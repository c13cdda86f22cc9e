package tuning

import (
	"math"
	"testing"
)

func TestFrequencyAtA4(t *testing.T) {
	for _, a4 := range []float64{415, 432, 440, 442, 466} {
		temp := NewTemperament(a4)
		if got := temp.Frequency(MidiA4); math.Abs(got-a4) > 1e-9 {
			t.Errorf("Frequency(A4) with a4=%v = %v", a4, got)
		}
	}
}

func TestFrequencyStrictlyIncreasing(t *testing.T) {
	for _, a4 := range []float64{415, 440, 466} {
		temp := NewTemperament(a4)
		prev := temp.Frequency(MidiA0)
		for midi := MidiA0 + 1; midi <= MidiC8; midi++ {
			f := temp.Frequency(midi)
			if f <= prev {
				t.Fatalf("a4=%v: Frequency(%d)=%v not above Frequency(%d)=%v", a4, midi, f, midi-1, prev)
			}
			prev = f
		}
	}
}

func TestKnownFrequencies(t *testing.T) {
	temp := NewTemperament(440)
	cases := []struct {
		midi int
		want float64
	}{
		{MidiA0, 27.5},
		{60, 261.6256}, // middle C
		{MidiA4, 440.0},
		{MidiC8, 4186.009},
	}
	for _, c := range cases {
		if got := temp.Frequency(c.midi); math.Abs(got-c.want) > 0.01 {
			t.Errorf("Frequency(%d) = %v, want %v", c.midi, got, c.want)
		}
	}
}

func TestCentsRoundTrip(t *testing.T) {
	for _, target := range []float64{27.5, 261.63, 440, 4186} {
		for cents := -1200.0; cents <= 1200.0; cents += 37.5 {
			f := FrequencyFromCents(target, cents)
			got := Cents(f, target)
			if math.Abs(got-cents) > 1e-3 {
				t.Fatalf("round trip target=%v cents=%v gave %v", target, cents, got)
			}
		}
	}
}

func TestCentsSign(t *testing.T) {
	if c := Cents(439, 440); c >= 0 {
		t.Errorf("flat note should read negative cents, got %v", c)
	}
	if c := Cents(441, 440); c <= 0 {
		t.Errorf("sharp note should read positive cents, got %v", c)
	}
	if c := Cents(880, 440); math.Abs(c-1200) > 1e-9 {
		t.Errorf("octave = %v cents, want 1200", c)
	}
}

func TestNewTemperamentGuardsZero(t *testing.T) {
	temp := NewTemperament(0)
	if temp.A4 != DefaultA4 {
		t.Errorf("A4 = %v, want default %v", temp.A4, DefaultA4)
	}
}

package tuning

import (
	"math"
	"sort"
	"time"
)

// ProfiledNote is one measured key: where the piano actually sits
// before any tuning.
type ProfiledNote struct {
	Midi      int       `json:"midi"`
	Frequency float64   `json:"frequency"`
	Cents     float64   `json:"cents"`
	Timestamp time.Time `json:"timestamp"`
}

// PianoProfile holds measured baselines for the 88 keys, collected
// during calibration. Entries may be recorded or overwritten at any
// time; the profile never shrinks. Quick mode tunes against these
// baselines instead of absolute concert targets.
type PianoProfile struct {
	ID        string                   `json:"id"`
	Notes     [NoteCount]*ProfiledNote `json:"notes"`
	CreatedAt time.Time                `json:"created_at"`
}

// NewProfile creates an empty profile.
func NewProfile() *PianoProfile {
	now := time.Now().UTC()
	return &PianoProfile{
		ID:        now.Format(time.RFC3339Nano),
		CreatedAt: now,
	}
}

// Record stores (or overwrites) a measurement for a MIDI note. Numbers
// outside the piano range are ignored.
func (p *PianoProfile) Record(midi int, frequency, cents float64) {
	if midi < MidiA0 || midi > MidiC8 {
		return
	}
	p.Notes[midi-MidiA0] = &ProfiledNote{
		Midi:      midi,
		Frequency: frequency,
		Cents:     cents,
		Timestamp: time.Now().UTC(),
	}
}

// Lookup returns the measurement for a MIDI note, if one exists.
func (p *PianoProfile) Lookup(midi int) (*ProfiledNote, bool) {
	if midi < MidiA0 || midi > MidiC8 {
		return nil, false
	}
	n := p.Notes[midi-MidiA0]
	return n, n != nil
}

// IsComplete reports whether every key has been measured.
func (p *PianoProfile) IsComplete() bool {
	for _, n := range p.Notes {
		if n == nil {
			return false
		}
	}
	return true
}

// Progress returns (measured, total).
func (p *PianoProfile) Progress() (int, int) {
	count := 0
	for _, n := range p.Notes {
		if n != nil {
			count++
		}
	}
	return count, NoteCount
}

// AverageDeviation returns the mean absolute measured deviation in
// cents across recorded notes.
func (p *PianoProfile) AverageDeviation() float64 {
	var sum float64
	count := 0
	for _, n := range p.Notes {
		if n != nil {
			sum += math.Abs(n.Cents)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// WorstNotes returns up to n measurements ordered by absolute
// deviation, worst first.
func (p *PianoProfile) WorstNotes(n int) []*ProfiledNote {
	var recorded []*ProfiledNote
	for _, pn := range p.Notes {
		if pn != nil {
			recorded = append(recorded, pn)
		}
	}
	sort.Slice(recorded, func(i, j int) bool {
		return math.Abs(recorded[i].Cents) > math.Abs(recorded[j].Cents)
	})
	if len(recorded) > n {
		recorded = recorded[:n]
	}
	return recorded
}

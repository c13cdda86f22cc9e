package tuning

// Phase identifies which leg of the traversal an order entry belongs to.
type Phase int

const (
	// PhaseTemperament covers F3..F4, tuned first against absolute
	// targets to anchor the rest of the keyboard.
	PhaseTemperament Phase = iota
	// PhaseOctaveUp covers F#4..C8 ascending, each note tuned against
	// the note one octave below.
	PhaseOctaveUp
	// PhaseOctaveDown covers E3..A0 descending, each note tuned
	// against the note one octave above.
	PhaseOctaveDown
)

// String returns the phase name for display.
func (p Phase) String() string {
	switch p {
	case PhaseTemperament:
		return "Temperament"
	case PhaseOctaveUp:
		return "Octaves up"
	case PhaseOctaveDown:
		return "Octaves down"
	}
	return "Unknown"
}

// Entry is one step of the tuning traversal. Reference is nil for
// temperament entries; otherwise it points at the already-tuned note
// one octave away.
type Entry struct {
	Note      Note
	Phase     Phase
	Reference *Note
}

// Order is the fixed 88-note traversal. Tuning strictly low-to-high
// lets earlier work drift as frame tension changes, so the order
// anchors a mid-range temperament octave first and works outward:
//
//  1. Temperament octave F3..F4 ascending (13 notes, absolute targets)
//  2. F#4..C8 ascending, each referencing the note an octave below
//  3. E3..A0 descending, each referencing the note an octave above
//
// The sequence is pure data, computed once.
type Order struct {
	entries []Entry
}

// NewOrder builds the traversal.
func NewOrder() *Order {
	entries := make([]Entry, 0, NoteCount)

	for midi := MidiF3; midi <= MidiF4; midi++ {
		n, _ := NoteForMidi(midi)
		entries = append(entries, Entry{Note: n, Phase: PhaseTemperament})
	}
	for midi := MidiF4 + 1; midi <= MidiC8; midi++ {
		n, _ := NoteForMidi(midi)
		ref, _ := NoteForMidi(midi - 12)
		entries = append(entries, Entry{Note: n, Phase: PhaseOctaveUp, Reference: &ref})
	}
	for midi := MidiF3 - 1; midi >= MidiA0; midi-- {
		n, _ := NoteForMidi(midi)
		ref, _ := NoteForMidi(midi + 12)
		entries = append(entries, Entry{Note: n, Phase: PhaseOctaveDown, Reference: &ref})
	}

	return &Order{entries: entries}
}

// Len returns the number of entries, always 88.
func (o *Order) Len() int {
	return len(o.entries)
}

// EntryAt returns the entry at position i.
func (o *Order) EntryAt(i int) Entry {
	return o.entries[i]
}

// PositionOf returns the traversal position of a note.
func (o *Order) PositionOf(n Note) int {
	for i, e := range o.entries {
		if e.Note.Midi == n.Midi {
			return i
		}
	}
	return -1
}

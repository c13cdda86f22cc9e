// Package tuning holds the piano tuning domain: the 88-key note table,
// equal temperament math, the stretch curve, the tuning order, the
// per-note step machine, sessions, and piano profiles.
package tuning

import (
	"fmt"
	"strconv"
	"strings"
)

// NoteCount is the number of keys on a standard piano.
const NoteCount = 88

// MIDI note numbers for the keyboard range and landmarks.
const (
	MidiA0 = 21
	MidiF3 = 53
	MidiF4 = 65
	MidiA4 = 69
	MidiC8 = 108
)

// Note is one piano key. Notes are immutable and come from the static
// table below; Index is the ordinal position in the 88-key range
// (0 = A0, 87 = C8).
type Note struct {
	Midi    int
	Name    string
	Octave  int
	Strings int
	Index   int
}

// DisplayName returns the conventional name, e.g. "A4" or "C#5".
func (n Note) DisplayName() string {
	return fmt.Sprintf("%s%d", n.Name, n.Octave)
}

// IsTrichord reports whether the note is strung with three unison strings.
func (n Note) IsTrichord() bool {
	return n.Strings == 3
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// notes is the full 88-key table, built once at startup.
var notes [NoteCount]Note

func init() {
	for i := range notes {
		midi := MidiA0 + i
		notes[i] = Note{
			Midi:    midi,
			Name:    noteNames[midi%12],
			Octave:  midi/12 - 1,
			Strings: stringsForMidi(midi),
			Index:   i,
		}
	}
}

// stringsForMidi returns the string count for a key. The bottom octave
// uses single wound strings, the next stretch bichords, and everything
// from F2 up is a trichord.
func stringsForMidi(midi int) int {
	switch {
	case midi <= 32: // A0..G#1
		return 1
	case midi <= 40: // A1..E2
		return 2
	default: // F2..C8
		return 3
	}
}

// NoteAt returns the note at ordinal position index (0 = A0).
func NoteAt(index int) Note {
	return notes[index]
}

// NoteForMidi returns the note for a MIDI number in [21, 108].
func NoteForMidi(midi int) (Note, error) {
	if midi < MidiA0 || midi > MidiC8 {
		return Note{}, fmt.Errorf("midi %d outside piano range %d..%d", midi, MidiA0, MidiC8)
	}
	return notes[midi-MidiA0], nil
}

// ParseNote resolves a display name like "A4" or "c#5" to a note.
func ParseNote(name string) (Note, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	if len(s) < 2 {
		return Note{}, fmt.Errorf("invalid note name %q", name)
	}
	letter := s[:1]
	rest := s[1:]
	if strings.HasPrefix(rest, "#") {
		letter += "#"
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return Note{}, fmt.Errorf("invalid note name %q", name)
	}
	for _, n := range notes {
		if n.Name == letter && n.Octave == octave {
			return n, nil
		}
	}
	return Note{}, fmt.Errorf("note %q not on an 88-key piano", name)
}

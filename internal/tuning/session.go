package tuning

import (
	"math"
	"time"
)

// Mode selects what the session tunes toward.
type Mode string

const (
	// ModeConcert targets absolute concert pitch (A4 = 440 Hz or a
	// custom reference) with stretch compensation.
	ModeConcert Mode = "concert"
	// ModeQuick targets the piano's own current pitch center.
	ModeQuick Mode = "quick"
)

// CompletedNote records one finished note, in completion order.
type CompletedNote struct {
	Note       string    `json:"note"`
	FinalCents float64   `json:"final_cents"`
	Timestamp  time.Time `json:"timestamp"`
}

// Session is a tuning session. It is owned by the app's state machine
// and serialized wholesale on every state-affecting transition so an
// interrupted tuning can resume.
type Session struct {
	ID               string          `json:"id"`
	Mode             Mode            `json:"mode"`
	A4Reference      float64         `json:"a4_reference"`
	PianoOffsetCents float64         `json:"piano_offset_cents"`
	CurrentNoteIndex int             `json:"current_note_index"`
	CompletedNotes   []CompletedNote `json:"completed_notes"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NewSession creates a fresh session.
func NewSession(mode Mode, a4 float64) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:             now.Format(time.RFC3339Nano),
		Mode:           mode,
		A4Reference:    a4,
		CompletedNotes: []CompletedNote{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsComplete reports whether all 88 notes have been visited.
func (s *Session) IsComplete() bool {
	return s.CurrentNoteIndex >= NoteCount
}

// CompleteNote appends a completed note and advances the cursor.
func (s *Session) CompleteNote(name string, finalCents float64) {
	s.CompletedNotes = append(s.CompletedNotes, CompletedNote{
		Note:       name,
		FinalCents: finalCents,
		Timestamp:  time.Now().UTC(),
	})
	s.CurrentNoteIndex++
	s.UpdatedAt = time.Now().UTC()
}

// SkipNote records the note with a zero placeholder deviation and
// advances the cursor. Recording keeps len(CompletedNotes) equal to
// CurrentNoteIndex, which Reopen's trim relies on.
func (s *Session) SkipNote(name string) {
	s.CompletedNotes = append(s.CompletedNotes, CompletedNote{
		Note:      name,
		Timestamp: time.Now().UTC(),
	})
	s.CurrentNoteIndex++
	s.UpdatedAt = time.Now().UTC()
}

// Reopen steps the cursor back to the previous note and drops its
// completion record if one was written. No-op at the start.
func (s *Session) Reopen() bool {
	if s.CurrentNoteIndex == 0 {
		return false
	}
	s.CurrentNoteIndex--
	if n := len(s.CompletedNotes); n > s.CurrentNoteIndex {
		s.CompletedNotes = s.CompletedNotes[:n-1]
	}
	s.UpdatedAt = time.Now().UTC()
	return true
}

// AverageDeviation returns the mean absolute final deviation across
// completed notes, in cents.
func (s *Session) AverageDeviation() float64 {
	if len(s.CompletedNotes) == 0 {
		return 0
	}
	var sum float64
	for _, n := range s.CompletedNotes {
		sum += math.Abs(n.FinalCents)
	}
	return sum / float64(len(s.CompletedNotes))
}

// ProgressPercent returns completion as a percentage of 88 notes.
func (s *Session) ProgressPercent() float64 {
	return float64(s.CurrentNoteIndex) / float64(NoteCount) * 100.0
}

package tuning

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestNewSession(t *testing.T) {
	s := NewSession(ModeConcert, 442)
	if s.Mode != ModeConcert {
		t.Errorf("mode = %v", s.Mode)
	}
	if s.A4Reference != 442 {
		t.Errorf("a4 = %v", s.A4Reference)
	}
	if s.CurrentNoteIndex != 0 || len(s.CompletedNotes) != 0 {
		t.Error("new session should start empty")
	}
	if s.IsComplete() {
		t.Error("new session should not be complete")
	}
	if s.ID == "" {
		t.Error("session needs an id")
	}
}

func TestCompleteNoteAdvances(t *testing.T) {
	s := NewSession(ModeConcert, 440)
	s.CompleteNote("F3", 1.5)

	if s.CurrentNoteIndex != 1 {
		t.Errorf("index = %d, want 1", s.CurrentNoteIndex)
	}
	if len(s.CompletedNotes) != 1 || s.CompletedNotes[0].Note != "F3" {
		t.Fatalf("completed notes = %+v", s.CompletedNotes)
	}
	if s.CompletedNotes[0].FinalCents != 1.5 {
		t.Errorf("final cents = %v", s.CompletedNotes[0].FinalCents)
	}
	if !s.UpdatedAt.After(s.CreatedAt) && !s.UpdatedAt.Equal(s.CreatedAt) {
		t.Error("UpdatedAt should move forward")
	}
}

func TestIsCompleteAt88(t *testing.T) {
	s := NewSession(ModeConcert, 440)
	s.CurrentNoteIndex = 87
	if s.IsComplete() {
		t.Error("87 should not be complete")
	}
	s.CurrentNoteIndex = 88
	if !s.IsComplete() {
		t.Error("88 should be complete")
	}
}

func TestSkipNoteRecordsPlaceholder(t *testing.T) {
	s := NewSession(ModeQuick, 440)
	s.SkipNote("F3")
	if s.CurrentNoteIndex != 1 {
		t.Errorf("index = %d, want 1", s.CurrentNoteIndex)
	}
	if len(s.CompletedNotes) != 1 {
		t.Fatalf("completed = %+v, want a placeholder record", s.CompletedNotes)
	}
	if s.CompletedNotes[0].Note != "F3" || s.CompletedNotes[0].FinalCents != 0 {
		t.Errorf("placeholder = %+v", s.CompletedNotes[0])
	}
}

func TestReopenDropsCompletion(t *testing.T) {
	s := NewSession(ModeConcert, 440)
	if s.Reopen() {
		t.Error("Reopen at index 0 should be a no-op")
	}

	s.CompleteNote("F3", 1.0)
	s.CompleteNote("F#3", -2.0)
	if !s.Reopen() {
		t.Fatal("Reopen should succeed")
	}
	if s.CurrentNoteIndex != 1 {
		t.Errorf("index = %d, want 1", s.CurrentNoteIndex)
	}
	if len(s.CompletedNotes) != 1 || s.CompletedNotes[0].Note != "F3" {
		t.Errorf("completed notes = %+v", s.CompletedNotes)
	}
}

func TestReopenAfterSkipKeepsInvariant(t *testing.T) {
	s := NewSession(ModeConcert, 440)
	s.SkipNote("F3")
	s.Reopen()
	if s.CurrentNoteIndex != 0 || len(s.CompletedNotes) != 0 {
		t.Errorf("index = %d, completed = %d", s.CurrentNoteIndex, len(s.CompletedNotes))
	}
}

func TestReopenWithSkipInHistory(t *testing.T) {
	s := NewSession(ModeConcert, 440)
	s.CompleteNote("F3", 1.0)
	s.SkipNote("F#3")
	s.CompleteNote("G3", 2.0)

	if !s.Reopen() {
		t.Fatal("Reopen should succeed")
	}
	if s.CurrentNoteIndex != 2 {
		t.Errorf("index = %d, want 2", s.CurrentNoteIndex)
	}
	if len(s.CompletedNotes) != 2 {
		t.Fatalf("reopen left a stale record: %+v", s.CompletedNotes)
	}

	s.CompleteNote("G3", 2.5)
	if len(s.CompletedNotes) != 3 || s.CurrentNoteIndex != 3 {
		t.Fatalf("after re-complete: index = %d, completed = %+v",
			s.CurrentNoteIndex, s.CompletedNotes)
	}
	want := []string{"F3", "F#3", "G3"}
	for i, name := range want {
		if s.CompletedNotes[i].Note != name {
			t.Errorf("record %d = %q, want %q", i, s.CompletedNotes[i].Note, name)
		}
	}
	if s.CompletedNotes[2].FinalCents != 2.5 {
		t.Errorf("re-completed G3 cents = %v, want 2.5", s.CompletedNotes[2].FinalCents)
	}
}

func TestAverageDeviation(t *testing.T) {
	s := NewSession(ModeConcert, 440)
	if s.AverageDeviation() != 0 {
		t.Error("empty session average should be 0")
	}
	s.CompleteNote("F3", 2.0)
	s.CompleteNote("F#3", -4.0)
	s.CompleteNote("G3", 3.0)
	if got := s.AverageDeviation(); math.Abs(got-3.0) > 1e-9 {
		t.Errorf("average = %v, want 3.0", got)
	}
}

func TestProgressPercent(t *testing.T) {
	s := NewSession(ModeConcert, 440)
	s.CurrentNoteIndex = 44
	if got := s.ProgressPercent(); math.Abs(got-50) > 0.1 {
		t.Errorf("progress = %v, want ~50", got)
	}
}

func TestSessionJSONRoundTrip(t *testing.T) {
	s := NewSession(ModeQuick, 440)
	s.PianoOffsetCents = -12.5
	s.CompleteNote("F3", 1.5)
	s.CompleteNote("F#3", -0.5)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored Session
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(*s, restored) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", restored, *s)
	}
}

func TestSessionJSONFieldNames(t *testing.T) {
	s := NewSession(ModeConcert, 440)
	s.CompleteNote("A4", 0.5)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "mode", "a4_reference", "piano_offset_cents",
		"current_note_index", "completed_notes", "created_at", "updated_at"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing field %q", key)
		}
	}
	if raw["mode"] != "concert" {
		t.Errorf("mode serialized as %v", raw["mode"])
	}
}

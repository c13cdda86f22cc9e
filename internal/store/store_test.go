package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jwulff/onkey/internal/tuning"
)

func TestSaveAndReloadSession(t *testing.T) {
	s := New(t.TempDir())

	sess := tuning.NewSession(tuning.ModeConcert, 442)
	sess.CompleteNote("F3", 1.5)
	if err := s.SaveSession(sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	sessions, err := s.Sessions()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	got := sessions[0]
	if got.ID != sess.ID || got.A4Reference != 442 || len(got.CompletedNotes) != 1 {
		t.Errorf("reloaded session = %+v", got)
	}
}

func TestSaveOverwritesSameSession(t *testing.T) {
	s := New(t.TempDir())

	sess := tuning.NewSession(tuning.ModeConcert, 440)
	if err := s.SaveSession(sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	sess.CompleteNote("F3", 0.5)
	if err := s.SaveSession(sess); err != nil {
		t.Fatalf("second save: %v", err)
	}

	sessions, _ := s.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1 after overwrite", len(sessions))
	}
	if sessions[0].CurrentNoteIndex != 1 {
		t.Errorf("index = %d, want 1", sessions[0].CurrentNoteIndex)
	}
}

func TestResumeTargetPicksRecentIncomplete(t *testing.T) {
	s := New(t.TempDir())

	mk := func(index int, updated time.Time) *tuning.Session {
		sess := tuning.NewSession(tuning.ModeConcert, 440)
		sess.ID = updated.Format(time.RFC3339Nano)
		sess.CurrentNoteIndex = index
		sess.UpdatedAt = updated
		return sess
	}

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// Complete session updated most recently must lose to the newest
	// incomplete one.
	for _, sess := range []*tuning.Session{
		mk(88, base.Add(3*time.Hour)),
		mk(40, base.Add(1*time.Hour)),
		mk(70, base.Add(2*time.Hour)),
	} {
		if err := s.SaveSession(sess); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	got, err := s.ResumeTarget()
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if got.CurrentNoteIndex != 70 {
		t.Errorf("resume picked index %d, want 70", got.CurrentNoteIndex)
	}
}

func TestResumeTargetNoSessions(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.ResumeTarget(); !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}

	sess := tuning.NewSession(tuning.ModeConcert, 440)
	sess.CurrentNoteIndex = 88
	s.SaveSession(sess)
	if _, err := s.ResumeTarget(); !errors.Is(err, ErrNoSession) {
		t.Errorf("err with only complete sessions = %v, want ErrNoSession", err)
	}
}

func TestCorruptSessionSkipped(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	good := tuning.NewSession(tuning.ModeQuick, 440)
	if err := s.SaveSession(good); err != nil {
		t.Fatalf("save: %v", err)
	}
	bad := filepath.Join(s.SessionsDir(), "corrupt.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}

	sessions, err := s.Sessions()
	if err != nil {
		t.Fatalf("list with corrupt file: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("sessions = %d, want corrupt file skipped", len(sessions))
	}
}

func TestReset(t *testing.T) {
	s := New(t.TempDir())
	s.SaveSession(tuning.NewSession(tuning.ModeConcert, 440))

	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	sessions, err := s.Sessions()
	if err != nil {
		t.Fatalf("list after reset: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions = %d after reset", len(sessions))
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	if p, err := s.LatestProfile(); err != nil || p != nil {
		t.Fatalf("empty store LatestProfile = (%v, %v)", p, err)
	}

	first := tuning.NewProfile()
	first.ID = "2025-06-01T10-00-00Z"
	first.CreatedAt = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	first.Record(69, 441, 3.9)
	second := tuning.NewProfile()
	second.ID = "2025-06-02T10-00-00Z"
	second.CreatedAt = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	second.Record(69, 439, -3.9)

	for _, p := range []*tuning.PianoProfile{first, second} {
		if err := s.SaveProfile(p); err != nil {
			t.Fatalf("save profile: %v", err)
		}
	}

	latest, err := s.LatestProfile()
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	pn, ok := latest.Lookup(69)
	if !ok || pn.Frequency != 439 {
		t.Errorf("latest profile A4 = %+v, want the newer measurement", pn)
	}
}

func TestSessionFileNameHasNoColons(t *testing.T) {
	s := New(t.TempDir())
	sess := tuning.NewSession(tuning.ModeConcert, 440)
	if err := s.SaveSession(sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, _ := os.ReadDir(s.SessionsDir())
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}
	for _, r := range entries[0].Name() {
		if r == ':' {
			t.Errorf("file name %q contains a colon", entries[0].Name())
		}
	}
}

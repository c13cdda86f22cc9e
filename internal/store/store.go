// Package store persists sessions and piano profiles as JSON files,
// one per entity, under the user's config directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jwulff/onkey/internal/tuning"
)

// ErrNoSession is returned when no resumable session exists.
var ErrNoSession = errors.New("no resumable session")

// Store reads and writes JSON entities under a base directory.
type Store struct {
	dir string
}

// DefaultDir returns the default data directory.
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "onkey")
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// SessionsDir returns the directory holding session files.
func (s *Store) SessionsDir() string {
	return filepath.Join(s.dir, "sessions")
}

// ProfilesDir returns the directory holding profile files.
func (s *Store) ProfilesDir() string {
	return filepath.Join(s.dir, "profiles")
}

// SaveSession writes the session atomically: the JSON goes to a temp
// file first and is renamed into place, so a crash mid-write never
// leaves a truncated session behind.
func (s *Store) SaveSession(sess *tuning.Session) error {
	return s.writeJSON(s.sessionPath(sess.ID), sess)
}

// LoadSession reads one session file.
func (s *Store) LoadSession(path string) (*tuning.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var sess tuning.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", filepath.Base(path), err)
	}
	return &sess, nil
}

// Sessions lists all readable sessions, newest created first.
// Unreadable files are logged and skipped, never fatal.
func (s *Store) Sessions() ([]*tuning.Session, error) {
	paths, err := s.listJSON(s.SessionsDir())
	if err != nil {
		return nil, err
	}
	var sessions []*tuning.Session
	for _, path := range paths {
		sess, err := s.LoadSession(path)
		if err != nil {
			log.Warn("skipping unreadable session file", "path", path, "err", err)
			continue
		}
		sessions = append(sessions, sess)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// ResumeTarget returns the most recently updated incomplete session,
// or ErrNoSession when every stored session is finished (or none
// exist).
func (s *Store) ResumeTarget() (*tuning.Session, error) {
	sessions, err := s.Sessions()
	if err != nil {
		return nil, err
	}
	var best *tuning.Session
	for _, sess := range sessions {
		if sess.IsComplete() {
			continue
		}
		if best == nil || sess.UpdatedAt.After(best.UpdatedAt) {
			best = sess
		}
	}
	if best == nil {
		return nil, ErrNoSession
	}
	return best, nil
}

// Reset deletes all stored sessions.
func (s *Store) Reset() error {
	if err := os.RemoveAll(s.SessionsDir()); err != nil {
		return fmt.Errorf("remove sessions dir: %w", err)
	}
	return nil
}

// SaveProfile writes a piano profile atomically.
func (s *Store) SaveProfile(p *tuning.PianoProfile) error {
	return s.writeJSON(s.profilePath(p.ID), p)
}

// LatestProfile returns the most recently created profile, or nil when
// none exist.
func (s *Store) LatestProfile() (*tuning.PianoProfile, error) {
	paths, err := s.listJSON(s.ProfilesDir())
	if err != nil {
		return nil, err
	}
	var latest *tuning.PianoProfile
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("skipping unreadable profile file", "path", path, "err", err)
			continue
		}
		var p tuning.PianoProfile
		if err := json.Unmarshal(data, &p); err != nil {
			log.Warn("skipping corrupt profile file", "path", path, "err", err)
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = &p
		}
	}
	return latest, nil
}

func (s *Store) sessionPath(id string) string {
	return filepath.Join(s.SessionsDir(), safeName(id)+".json")
}

func (s *Store) profilePath(id string) string {
	return filepath.Join(s.ProfilesDir(), safeName(id)+".json")
}

// safeName makes an RFC3339 id usable as a file name.
func safeName(id string) string {
	return strings.ReplaceAll(id, ":", "-")
}

func (s *Store) writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func (s *Store) listJSON(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

package networth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/networth-report/networth/date"
)

// ErrNoSnapshot is returned when no snapshot exists for the requested
// date. Absence is an expected outcome, not a failure: callers decide
// whether a missing comparison matters.
var ErrNoSnapshot = errors.New("no snapshot for that date")

const (
	snapshotPrefix = "snapshot_"
	snapshotSuffix = ".json"
)

// Store persists one snapshot per calendar day as a JSON file in a
// single directory. Snapshot files contain the full account list, so
// both directory and files are created user-only.
type Store struct {
	dir string
}

// NewStore opens (creating if needed) the snapshot directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create snapshot directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(d date.Date) string {
	return filepath.Join(s.dir, snapshotPrefix+d.String()+snapshotSuffix)
}

// Save writes the snapshot to its date file, replacing any previous
// snapshot for that day.
func (s *Store) Save(snapshot *Snapshot) error {
	b, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode snapshot: %w", err)
	}
	path := s.path(snapshot.On())
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("could not write snapshot file %q: %w", path, err)
	}
	return nil
}

// Load reads the snapshot for a given day. It returns ErrNoSnapshot
// (wrapped) when the day has no file.
func (s *Store) Load(d date.Date) (*Snapshot, error) {
	b, err := os.ReadFile(s.path(d))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", d, ErrNoSnapshot)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read snapshot for %s: %w", d, err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(b, &snapshot); err != nil {
		return nil, fmt.Errorf("could not decode snapshot for %s: %w", d, err)
	}
	return &snapshot, nil
}

// Delete removes the snapshot for a given day. Deleting an absent day
// is not an error.
func (s *Store) Delete(d date.Date) error {
	err := os.Remove(s.path(d))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not delete snapshot for %s: %w", d, err)
	}
	return nil
}

// List returns the days that have a snapshot, in chronological order.
// Files that do not match the snapshot naming scheme are ignored.
func (s *Store) List() ([]date.Date, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("could not list snapshot directory %q: %w", s.dir, err)
	}
	var days []date.Date
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotSuffix) {
			continue
		}
		d, err := date.Parse(strings.TrimSuffix(strings.TrimPrefix(name, snapshotPrefix), snapshotSuffix))
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	slices.SortFunc(days, func(a, b date.Date) int { return a.Sub(b) })
	return days, nil
}

// Latest loads the most recent snapshot, or ErrNoSnapshot when the
// store is empty.
func (s *Store) Latest() (*Snapshot, error) {
	days, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, ErrNoSnapshot
	}
	return s.Load(days[len(days)-1])
}

// Cleanup deletes the snapshots that fall outside the retention
// policy, keeping today, yesterday, everything younger than
// retentionDays, and milestone dates. It returns the number of
// snapshots deleted.
func (s *Store) Cleanup(today date.Date, retentionDays int) (int, error) {
	days, err := s.List()
	if err != nil {
		return 0, err
	}
	retained, err := date.SelectRetained(days, today, retentionDays)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, d := range days {
		if slices.Contains(retained, d) {
			continue
		}
		if err := s.Delete(d); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

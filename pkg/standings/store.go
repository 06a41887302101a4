package standings

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Store owns the current points table as a single versioned snapshot.
// Readers get the published snapshot and keep it for as long as they need;
// Replace publishes a new one without touching the old.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store seeded with table.
func NewStore(table Table) (*Store, error) {
	s := &Store{}
	if _, err := s.Replace(table); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the published snapshot. Callers must not modify it.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Table returns a private copy of the current table.
func (s *Store) Table() Table {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	return snap.Entries.Clone()
}

// Replace validates table and publishes it as a new version.
func (s *Store) Replace(table Table) (*Snapshot, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Version:   uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Entries:   table.Clone(),
	}
	s.current.Store(snap)
	return snap, nil
}

// Restore publishes a table under a version assigned elsewhere, such as one
// read back from persistent storage.
func (s *Store) Restore(version string, createdAt time.Time, table Table) (*Snapshot, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Version:   version,
		CreatedAt: createdAt.UTC(),
		Entries:   table.Clone(),
	}
	s.current.Store(snap)
	return snap, nil
}

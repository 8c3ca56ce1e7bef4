// Package memory provides an in-memory storage.Gateway. It backs the
// registry tests (no database file, no cleanup) and is wired in when the
// configured storage path is ":memory:"-style ephemeral.
package memory

import (
	"context"
	"sync"

	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"
)

// Store keeps the persisted list in a slice behind a mutex.
//
// The two error fields let tests arm storage failures: a non-nil LoadErr
// or SaveErr is returned verbatim by the corresponding method. They are
// plain fields, not options, because only tests set them.
type Store struct {
	LoadErr error
	SaveErr error

	mu       sync.Mutex
	students []types.Student
	saved    bool
	saves    int
}

// New returns an empty Store: its first Load reports storage.ErrNoData,
// same as a fresh database file.
func New() *Store {
	return &Store{}
}

// Load implements storage.Gateway.
func (s *Store) Load(_ context.Context) ([]types.Student, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.saved {
		return nil, storage.ErrNoData
	}

	out := make([]types.Student, len(s.students))
	copy(out, s.students)
	return out, nil
}

// Save implements storage.Gateway.
func (s *Store) Save(_ context.Context, students []types.Student) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.students = make([]types.Student, len(students))
	copy(s.students, students)
	s.saved = true
	s.saves++
	return nil
}

// Saves reports how many successful writes have happened. Tests use it to
// assert the one-write-per-mutation contract.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Package storage defines the Gateway interface — the contract any
// persistence backend must satisfy to work with the registry.
//
// WHY AN INTERFACE?
// ─────────────────
// The registry should not know or care where the student list is kept.
// By depending only on this interface:
//
//   - Switching backends = implement the interface for the new store,
//     change one line in main.go. Zero registry changes.
//
//   - Writing tests = pass an in-memory fake that satisfies the
//     interface. No real database needed for unit tests.
//
// This is the Dependency Inversion Principle in practice.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-registry/internal/types"
)

// ErrNoData is returned by Load when nothing usable has been persisted
// yet — either the entry is absent (first run) or its contents cannot be
// parsed. The registry reacts the same way to both: seed the defaults.
var ErrNoData = errors.New("no persisted student data")

// Gateway is the persistence contract. The whole canonical list is the
// unit of storage: every Save replaces the previous list wholesale, and
// Load always returns a complete list. There are no per-record writes.
type Gateway interface {
	// Load returns the persisted student list, or ErrNoData when the
	// entry is absent or unreadable. Any other error is a real storage
	// failure (disk gone, permissions, ...).
	Load(ctx context.Context) ([]types.Student, error)

	// Save replaces the persisted list with students. The slice may be
	// empty — deleting the last record is a legitimate state.
	Save(ctx context.Context, students []types.Student) error
}

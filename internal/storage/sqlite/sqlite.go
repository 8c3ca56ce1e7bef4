// Package sqlite provides a SQLite-backed implementation of the
// storage.Gateway interface using Go's standard database/sql package.
//
// WHY SQLite FOR A SINGLE KEY?
// ────────────────────────────
// The registry persists exactly one durable entry: the key "studentsData"
// holding the full student list as a JSON array (the same shape the
// original dashboard kept in browser localStorage). SQLite gives that one
// entry real durability — atomic replace, survives crashes, a single file
// on disk — without a server process or any installation beyond the
// driver.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded — we never call anything from it directly.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-registry/internal/config"
	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	// Without this the sql.Open("sqlite3", ...) call would fail with
	// "unknown driver".
	_ "github.com/mattn/go-sqlite3"
)

// studentsKey is the single key-value entry the registry lives under.
// It matches the original dashboard's localStorage key, so the value
// shape is interchangeable between the two.
const studentsKey = "studentsData"

// SQLite is the concrete implementation of storage.Gateway.
// It holds a *sql.DB, which is a connection pool managed by database/sql
// and safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.StoragePath, creates the key-value
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet — it just validates
	// the driver name and data source name. The first actual connection
	// happens on the first query.
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe on every startup.
	//
	// Schema: a plain key-value table. The registry uses one row; keeping
	// the table generic costs nothing and leaves room for siblings like a
	// settings entry later.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS registry_kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Load reads and decodes the persisted student list.
//
// Both "row absent" and "row unparsable" come back as storage.ErrNoData:
// a corrupt entry must not stop the application from starting, so the
// registry treats it exactly like a first run and reseeds.
func (s *SQLite) Load(ctx context.Context) ([]types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT value FROM registry_kv WHERE key = ? LIMIT 1",
	)
	if err != nil {
		return nil, fmt.Errorf("Load: prepare: %w", err)
	}
	defer stmt.Close()

	var raw string
	err = stmt.QueryRowContext(ctx, studentsKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("Load: scan: %w", err)
	}

	var students []types.Student
	if err := json.Unmarshal([]byte(raw), &students); err != nil {
		// Unparsable content degrades to "nothing persisted".
		return nil, storage.ErrNoData
	}

	return students, nil
}

// Save encodes the full list and atomically replaces the stored entry.
// One Save per mutation; there is no batching or partial-field write.
func (s *SQLite) Save(ctx context.Context, students []types.Student) error {
	raw, err := json.Marshal(students)
	if err != nil {
		return fmt.Errorf("Save: encode students: %w", err)
	}

	stmt, err := s.Db.PrepareContext(ctx, `
		INSERT INTO registry_kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`)
	if err != nil {
		return fmt.Errorf("Save: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, studentsKey, string(raw)); err != nil {
		return fmt.Errorf("Save: exec: %w", err)
	}

	return nil
}

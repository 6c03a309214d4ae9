package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added partial index on active entries
const currentSchemaVersion = 1

// Store provides durable storage for the tracklog event log.
// Uses SQLite with WAL mode for concurrent read access.
//
// Writes are serialized: Append holds an internal mutex for the duration of
// a batch, so there is exactly one logical writer per process.
type Store struct {
	db    *sql.DB
	path  string
	clock *clock
	subs  *subscribers

	// writeMu serializes batches: Append and Rebuild hold it for the full
	// transaction plus subscriber notification.
	writeMu sync.Mutex
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically, and resumes the
// logical clock from the highest persisted seq.
//
// If the file exists but is unreadable or corrupt, Open does not fail: the
// damaged file is renamed to <path>.corrupt and a fresh, empty database is
// created in its place. The log is the only durable source of truth and a
// corrupt log cannot be repaired automatically, so starting empty is the
// only recovery that keeps the application usable.
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := open(path)
	if err != nil {
		if !isCorruptErr(err) {
			return nil, err
		}
		// Fail open: preserve the damaged file for diagnostics, start empty.
		backup := path + ".corrupt"
		slog.Warn("database unreadable, starting from empty log",
			"path", path,
			"backup", backup,
			"error", err,
		)
		if renameErr := os.Rename(path, backup); renameErr != nil {
			return nil, fmt.Errorf("move corrupt database aside: %w", renameErr)
		}
		db, err = open(path)
		if err != nil {
			return nil, err
		}
	}

	s := &Store{
		db:   db,
		path: path,
		subs: newSubscribers(),
	}

	// Resume the logical clock from the last persisted position.
	var lastSeq int64
	if err := db.QueryRow("SELECT COALESCE(MAX(seq), 0) FROM events").Scan(&lastSeq); err != nil {
		db.Close()
		return nil, fmt.Errorf("read last seq: %w", err)
	}
	s.clock = newClockAt(lastSeq)

	return s, nil
}

// open performs the raw open/pragma/schema sequence without recovery.
func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1) // Single writer to avoid SQLITE_BUSY errors
	db.SetMaxIdleConns(1) // Keep one connection ready

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection and terminates all subscriptions.
// Should be called when the store is no longer needed.
func (s *Store) Close() error {
	if s.subs != nil {
		s.subs.closeAll()
	}
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the filesystem path the store was opened at.
func (s *Store) Path() string {
	return s.path
}

// LastSeq returns the logical clock's current position: the seq of the most
// recently appended event, or 0 for an empty log.
func (s *Store) LastSeq() int64 {
	return s.clock.current()
}

// isCorruptErr reports whether err indicates an unreadable or corrupt
// database file, as opposed to an ordinary I/O or path error.
func isCorruptErr(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrCorrupt || se.Code == sqlite3.ErrNotADB
	}
	return false
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	// Apply migrations sequentially
	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
		version = 1
	}

	// Set version after all migrations
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 adds the partial active-entries index for databases created
// before it was part of schema.sql. New databases get it from the schema.
func migrateToV1(db *sql.DB) error {
	// CREATE INDEX IF NOT EXISTS is safe - no-op if index exists
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_entries_active_date
		ON entries(date DESC, created_seq ASC)
		WHERE deleted_at IS NULL
	`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}

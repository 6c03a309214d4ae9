package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/roach88/tracklog/internal/entry"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func day(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d.Add(12 * time.Hour)
}

func mustAppend(t *testing.T, s *Store, events ...entry.Event) {
	t.Helper()

	if err := s.Append(context.Background(), events...); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	// Open multiple times
	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	// Verify schema is intact
	for _, table := range []string{"events", "entries"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/test.db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := openTestStore(t)

	checks := map[string]string{
		"journal_mode": "wal",
		"synchronous":  "1", // NORMAL
		"foreign_keys": "1",
	}
	for name, expected := range checks {
		if err := s.verifyPragma(name, expected); err != nil {
			t.Errorf("pragma check failed: %v", err)
		}
	}
}

func TestOpen_ResumesClock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustAppend(t, s1,
		entry.NewCreated("00000000-0000-4000-8000-000000000001", day(t, "2026-08-03"), 60, "one"),
		entry.NewCreated("00000000-0000-4000-8000-000000000002", day(t, "2026-08-04"), 30, "two"),
	)
	if got := s1.LastSeq(); got != 2 {
		t.Fatalf("LastSeq() = %d, want 2", got)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	if got := s2.LastSeq(); got != 2 {
		t.Errorf("LastSeq() after reopen = %d, want 2", got)
	}

	// The next append continues the sequence, it never reuses seq values.
	mustAppend(t, s2, entry.NewCreated("00000000-0000-4000-8000-000000000003", day(t, "2026-08-05"), 45, "three"))
	if got := s2.LastSeq(); got != 3 {
		t.Errorf("LastSeq() after append = %d, want 3", got)
	}
}

func TestOpen_CorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	garbage := strings.Repeat("this is not a database ", 100)
	if err := os.WriteFile(path, []byte(garbage), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() on corrupt file failed: %v", err)
	}
	defer s.Close()

	// Store starts empty
	count, err := s.EventCount(context.Background())
	if err != nil {
		t.Fatalf("EventCount() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("EventCount() = %d, want 0", count)
	}

	// Damaged file is preserved for diagnostics
	backup, err := os.ReadFile(path + ".corrupt")
	if err != nil {
		t.Fatalf("backup file missing: %v", err)
	}
	if string(backup) != garbage {
		t.Error("backup file does not contain the original bytes")
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

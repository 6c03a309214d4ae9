package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/tracklog/internal/entry"
)

// entryColumns is the canonical select list for entry rows.
const entryColumns = "id, date, minutes, description, deleted_at, created_seq"

// ListActive returns all rows where deleted_at is NULL, ordered by date
// descending. Ties share a calendar timestamp and break by insertion order
// (created_seq ascending), so the listing is stable across replays.
//
// Returns an empty slice (not nil) if no active rows exist.
func (s *Store) ListActive(ctx context.Context) ([]entry.Entry, error) {
	return s.queryEntries(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE deleted_at IS NULL
		ORDER BY date DESC, created_seq ASC
	`)
}

// GetByDate returns the active row whose date falls on the same calendar
// day as day, in day's location. The comparison is date-only, not
// time-of-day: the lookup is a range scan over [start of day, next day) on
// the date index. When several active rows share the day, the earliest
// inserted row wins.
//
// The second return value is false when no row matches.
func (s *Store) GetByDate(ctx context.Context, day time.Time) (entry.Entry, bool, error) {
	start, end := entry.DayRange(day)

	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE deleted_at IS NULL AND date >= ? AND date < ?
		ORDER BY created_seq ASC
		LIMIT 1
	`, start.UnixMilli(), end.UnixMilli())

	e, err := scanEntryRow(row)
	if err == sql.ErrNoRows {
		return entry.Entry{}, false, nil
	}
	if err != nil {
		return entry.Entry{}, false, fmt.Errorf("get by date: %w", err)
	}
	return e, true, nil
}

// ListMonth returns active rows whose date falls within the given 1-indexed
// calendar month of year, in loc, ordered like ListActive.
func (s *Store) ListMonth(ctx context.Context, year int, month time.Month, loc *time.Location) ([]entry.Entry, error) {
	start, end := entry.MonthRange(year, month, loc)
	return s.queryEntries(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE deleted_at IS NULL AND date >= ? AND date < ?
		ORDER BY date DESC, created_seq ASC
	`, start.UnixMilli(), end.UnixMilli())
}

// Stats summarizes the entries table.
type Stats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Deleted int `json:"deleted"`
}

// GetStats counts all rows, active rows, and soft-deleted rows.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE deleted_at IS NULL),
		       COUNT(*) FILTER (WHERE deleted_at IS NOT NULL)
		FROM entries
	`).Scan(&st.Total, &st.Active, &st.Deleted)
	if err != nil {
		return Stats{}, fmt.Errorf("get stats: %w", err)
	}
	return st, nil
}

// ActiveIDs returns the ids of all active rows in insertion order.
// Used by reset operations to build their soft-delete batch.
func (s *Store) ActiveIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM entries
		WHERE deleted_at IS NULL
		ORDER BY created_seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("active ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}

	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

// HasAnyID reports whether any row, active or soft-deleted, carries one of
// the given ids. Used by the onboarding seed's already-seeded check.
func (s *Store) HasAnyID(ctx context.Context, ids []string) (bool, error) {
	if len(ids) == 0 {
		return false, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE id IN (`+placeholders+`)`,
		args...,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("has any id: %w", err)
	}
	return count > 0, nil
}

// queryEntries runs a query over the canonical column list and scans all
// rows. Returns an empty slice instead of nil.
func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]entry.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []entry.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	if entries == nil {
		entries = []entry.Entry{}
	}

	return entries, nil
}

// scanEntry scans a multi-row result into an Entry.
func scanEntry(rows *sql.Rows) (entry.Entry, error) {
	var (
		e          entry.Entry
		dateMs     int64
		deletedMs  sql.NullInt64
		createdSeq int64
	)
	if err := rows.Scan(&e.ID, &dateMs, &e.Minutes, &e.Description, &deletedMs, &createdSeq); err != nil {
		return entry.Entry{}, fmt.Errorf("scan entry: %w", err)
	}
	e.Date = time.UnixMilli(dateMs)
	if deletedMs.Valid {
		t := time.UnixMilli(deletedMs.Int64)
		e.DeletedAt = &t
	}
	return e, nil
}

// scanEntryRow scans a single-row result into an Entry.
// Returns sql.ErrNoRows unchanged so callers can map it to not-found.
func scanEntryRow(row *sql.Row) (entry.Entry, error) {
	var (
		e          entry.Entry
		dateMs     int64
		deletedMs  sql.NullInt64
		createdSeq int64
	)
	if err := row.Scan(&e.ID, &dateMs, &e.Minutes, &e.Description, &deletedMs, &createdSeq); err != nil {
		return entry.Entry{}, err
	}
	e.Date = time.UnixMilli(dateMs)
	if deletedMs.Valid {
		t := time.UnixMilli(deletedMs.Int64)
		e.DeletedAt = &t
	}
	return e, nil
}

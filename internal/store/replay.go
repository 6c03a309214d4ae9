package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/tracklog/internal/entry"
)

// ReadAllEvents returns the full log in append order (seq ascending).
// Used for replay verification and diagnostics.
//
// Returns an empty slice (not nil) for an empty log.
func (s *Store) ReadAllEvents(ctx context.Context) ([]entry.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, type, entry_id, payload, recorded_at
		FROM events
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []entry.Event
	for rows.Next() {
		var (
			seq        int64
			typ        string
			entryID    string
			payload    string
			recordedMs int64
		)
		if err := rows.Scan(&seq, &typ, &entryID, &payload, &recordedMs); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		ev, err := entry.DecodePayload(entry.Type(typ), entryID, payload)
		if err != nil {
			return nil, fmt.Errorf("event seq %d: %w", seq, err)
		}
		ev.Seq = seq
		ev.RecordedAt = time.UnixMilli(recordedMs)
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	if events == nil {
		events = []entry.Event{}
	}

	return events, nil
}

// EventCount returns the number of events in the log.
func (s *Store) EventCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// Rebuild discards the entries table and refolds the entire event log from
// seq 1, in a single transaction. Because materialization is a pure fold
// over the ordered log, the rebuilt table is identical to the incrementally
// maintained one; Rebuild exists to verify that property and to recover the
// cache after manual surgery on the database.
//
// Subscribers are notified once when the rebuild commits.
func (s *Store) Rebuild(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	events, err := s.ReadAllEvents(ctx)
	if err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("rebuild: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("rebuild: clear entries: %w", err)
	}

	for _, ev := range events {
		if err := materialize(ctx, tx, ev); err != nil {
			return fmt.Errorf("rebuild: seq %d: %w", ev.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("rebuild: commit: %w", err)
	}

	slog.Info("entries rebuilt from event log", "events", len(events))

	s.subs.broadcast(s.clock.current())

	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/tracklog/internal/entry"
)

// Append commits a batch of events to the log and folds each one into the
// entries table, all in a single transaction. Either the whole batch lands
// or none of it does; readers never observe a partially applied batch.
//
// Each event is stamped with the next logical clock seq. RecordedAt is
// filled with the current wall time when unset; it is informational only
// and never participates in ordering.
//
// After the transaction commits, every active subscription is notified
// exactly once for the batch, before the next batch can begin.
//
// A write rejected for lack of space is returned as ErrCapacityExceeded.
func (s *Store) Append(ctx context.Context, events ...entry.Event) error {
	if len(events) == 0 {
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append: begin tx: %w", wrapCapacity(err))
	}
	defer tx.Rollback() // No-op if committed

	now := time.Now()
	for i := range events {
		events[i].Seq = s.clock.next()
		if events[i].RecordedAt.IsZero() {
			events[i].RecordedAt = now
		}
		if err := insertEvent(ctx, tx, events[i]); err != nil {
			return fmt.Errorf("append: %w", wrapCapacity(err))
		}
		if err := materialize(ctx, tx, events[i]); err != nil {
			return fmt.Errorf("append: %w", wrapCapacity(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append: commit: %w", wrapCapacity(err))
	}

	slog.Debug("batch committed",
		"events", len(events),
		"last_seq", s.clock.current(),
	)

	// Notify while still holding the write lock: subscribers observe this
	// batch before the next one can begin.
	s.subs.broadcast(s.clock.current())

	return nil
}

// insertEvent writes one log row. The log is append-only: rows are never
// updated or deleted, and seq collisions are impossible because seq comes
// from the monotonic clock.
func insertEvent(ctx context.Context, tx *sql.Tx, ev entry.Event) error {
	payload, err := entry.MarshalPayload(ev)
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO events (seq, type, entry_id, payload, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		ev.Seq,
		string(ev.Type),
		ev.EntryID,
		payload,
		ev.RecordedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	return nil
}

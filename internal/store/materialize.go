package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/roach88/tracklog/internal/entry"
)

// applyFunc folds a single event into the entries table inside the batch
// transaction. Appliers must be total over schema-valid events: rows that
// don't exist are a no-op, duplicate creates are kept-first, and only a
// failure of the storage primitive itself may return an error.
type applyFunc func(ctx context.Context, tx *sql.Tx, ev entry.Event) error

// appliers is the dispatch table mapping each event variant to its pure
// state transition.
var appliers = map[entry.Type]applyFunc{
	entry.TypeCreated: applyCreated,
	entry.TypeUpdated: applyUpdated,
	entry.TypeDeleted: applyDeleted,
}

// materialize folds one event into relational state. Events with a type
// outside the known vocabulary are logged and skipped so that a log written
// by a newer version never crashes replay.
func materialize(ctx context.Context, tx *sql.Tx, ev entry.Event) error {
	apply, ok := appliers[ev.Type]
	if !ok {
		slog.Warn("skipping event of unknown type",
			"type", ev.Type,
			"entry_id", ev.EntryID,
			"seq", ev.Seq,
		)
		return nil
	}
	return apply(ctx, tx, ev)
}

// applyCreated inserts the row with deleted_at NULL.
//
// The log may legitimately contain duplicate-id creates (idempotent
// re-seeding), so conflicts keep the first row: ON CONFLICT(id) DO NOTHING.
// This keeps the final row count stable across repeated seeding.
func applyCreated(ctx context.Context, tx *sql.Tx, ev entry.Event) error {
	if ev.Created == nil {
		return fmt.Errorf("materialize %s: missing payload", ev.Type)
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO entries (id, date, minutes, description, deleted_at, created_seq)
		VALUES (?, ?, ?, ?, NULL, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		ev.EntryID,
		ev.Created.Date,
		ev.Created.Minutes,
		ev.Created.Description,
		ev.Seq,
	)
	if err != nil {
		return fmt.Errorf("materialize %s: %w", ev.Type, err)
	}
	return nil
}

// applyUpdated patches only the fields present in the payload. A missing
// row is a no-op: the UPDATE simply matches nothing.
func applyUpdated(ctx context.Context, tx *sql.Tx, ev entry.Event) error {
	if ev.Updated == nil {
		return fmt.Errorf("materialize %s: missing payload", ev.Type)
	}
	// COALESCE keeps the current value for absent (NULL) parameters.
	_, err := tx.ExecContext(ctx, `
		UPDATE entries
		SET date        = COALESCE(?, date),
		    minutes     = COALESCE(?, minutes),
		    description = COALESCE(?, description)
		WHERE id = ?
	`,
		ev.Updated.Date,
		ev.Updated.Minutes,
		ev.Updated.Description,
		ev.EntryID,
	)
	if err != nil {
		return fmt.Errorf("materialize %s: %w", ev.Type, err)
	}
	return nil
}

// applyDeleted sets deleted_at. A missing row is a no-op, which keeps
// delete idempotent at the command layer.
func applyDeleted(ctx context.Context, tx *sql.Tx, ev entry.Event) error {
	if ev.Deleted == nil {
		return fmt.Errorf("materialize %s: missing payload", ev.Type)
	}
	_, err := tx.ExecContext(ctx, `
		UPDATE entries SET deleted_at = ? WHERE id = ?
	`,
		ev.Deleted.DeletedAt,
		ev.EntryID,
	)
	if err != nil {
		return fmt.Errorf("materialize %s: %w", ev.Type, err)
	}
	return nil
}

package entry

import (
	"time"

	"golang.org/x/text/unicode/norm"
)

// Type is the stable, versioned tag of an event variant.
type Type string

const (
	// TypeCreated creates a new active row.
	TypeCreated Type = "v1.EntryCreated"
	// TypeUpdated patches the fields present in the payload.
	TypeUpdated Type = "v1.EntryUpdated"
	// TypeDeleted soft-deletes the row by setting deleted_at.
	TypeDeleted Type = "v1.EntryDeleted"
)

// Known reports whether t is part of the current event vocabulary.
func (t Type) Known() bool {
	switch t {
	case TypeCreated, TypeUpdated, TypeDeleted:
		return true
	}
	return false
}

// Event is one immutable record in the append-only log.
//
// Event is a tagged union: exactly one of Created, Updated, Deleted is
// non-nil, matching Type. Constructing an event performs no I/O; appending
// it to the store is a separate step.
//
// Seq is the logical position in the log, assigned by the store at append
// time (zero before then). All ordering uses Seq, never wall-clock time,
// so replay is deterministic.
type Event struct {
	Seq     int64
	Type    Type
	EntryID string

	// RecordedAt is informational only. It never participates in ordering.
	RecordedAt time.Time

	Created *CreatedPayload
	Updated *UpdatedPayload
	Deleted *DeletedPayload
}

// CreatedPayload carries the initial field values for a new entry.
// Dates are epoch milliseconds so the serialized payload is integer-only
// and byte-stable across replays.
type CreatedPayload struct {
	Date        int64  `json:"date"`
	Minutes     int    `json:"minutes"`
	Description string `json:"description"`
}

// UpdatedPayload is a partial patch. Absent fields are left untouched by
// the materializer.
type UpdatedPayload struct {
	Date        *int64  `json:"date,omitempty"`
	Minutes     *int    `json:"minutes,omitempty"`
	Description *string `json:"description,omitempty"`
}

// DeletedPayload marks the entry as soft-deleted at the given instant.
type DeletedPayload struct {
	DeletedAt int64 `json:"deletedAt"`
}

// NewCreated builds a v1.EntryCreated event.
// The description is NFC-normalized so materialized state is identical
// regardless of how the input text was composed.
func NewCreated(id string, date time.Time, minutes int, description string) Event {
	return Event{
		Type:    TypeCreated,
		EntryID: id,
		Created: &CreatedPayload{
			Date:        date.UnixMilli(),
			Minutes:     minutes,
			Description: norm.NFC.String(description),
		},
	}
}

// NewUpdated builds a v1.EntryUpdated event carrying only the fields set
// in the patch.
func NewUpdated(id string, patch Patch) Event {
	p := &UpdatedPayload{Minutes: patch.Minutes}
	if patch.Date != nil {
		ms := patch.Date.UnixMilli()
		p.Date = &ms
	}
	if patch.Description != nil {
		d := norm.NFC.String(*patch.Description)
		p.Description = &d
	}
	return Event{
		Type:    TypeUpdated,
		EntryID: id,
		Updated: p,
	}
}

// NewDeleted builds a v1.EntryDeleted event.
func NewDeleted(id string, deletedAt time.Time) Event {
	return Event{
		Type:    TypeDeleted,
		EntryID: id,
		Deleted: &DeletedPayload{DeletedAt: deletedAt.UnixMilli()},
	}
}

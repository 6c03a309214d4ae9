package entry

import "time"

// Entry is a materialized time-tracking row derived from the event log.
//
// The row is created by the first v1.EntryCreated event for its ID and is
// never physically removed afterwards: updates patch individual fields and
// deletes set DeletedAt. The entries table is a cache of the event log and
// can be rebuilt from it at any time.
type Entry struct {
	// ID is an opaque UUID v4 string, immutable once created.
	ID string

	// Date is the calendar timestamp of when the work occurred.
	Date time.Time

	// Minutes is the duration in whole minutes, always >= 1.
	// There is no upper bound; multi-day entries are allowed.
	Minutes int

	// Description is free text, up to MaxDescriptionLen characters.
	Description string

	// DeletedAt is nil for active rows. A non-nil value marks the row as
	// soft-deleted: excluded from default queries, retained for replay.
	DeletedAt *time.Time
}

// Active reports whether the entry has not been soft-deleted.
func (e Entry) Active() bool {
	return e.DeletedAt == nil
}

// Patch describes a partial update to an entry. Only non-nil fields are
// applied; nil fields leave the current value untouched.
type Patch struct {
	Date        *time.Time
	Minutes     *int
	Description *string
}

// IsZero reports whether the patch carries no changes.
func (p Patch) IsZero() bool {
	return p.Date == nil && p.Minutes == nil && p.Description == nil
}

// DayRange returns the half-open interval [start, end) covering the calendar
// day of t in t's location. Used for date-only comparisons: two timestamps
// fall on the same day iff they map into the same range.
func DayRange(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// MonthRange returns the half-open interval [start, end) covering the given
// 1-indexed calendar month in loc.
func MonthRange(year int, month time.Month, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

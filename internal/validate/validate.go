// Package validate holds the standalone invariant checks shared by the
// command layer and tests.
//
// Every check is a pure predicate over its inputs: no clock reads, no I/O.
// Callers pass the reference time explicitly where a bound depends on "now".
// Violations are reported as field-tagged *Error values so callers can
// localize the failure to a single input field.
package validate

import (
	"errors"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxDescriptionLen is the maximum description length in characters.
const MaxDescriptionLen = 10000

// Error is a validation failure tagged with the offending field.
type Error struct {
	Field   string // "id", "date", "minutes" or "description"
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is (or wraps) a validation error.
func IsValidation(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// ID checks that id matches the hyphenated UUID v4 shape exactly:
// 36 characters, version nibble 4, RFC 4122 variant.
func ID(id string) error {
	if id == "" {
		return &Error{Field: "id", Message: "must not be empty"}
	}
	if len(id) != 36 {
		return &Error{Field: "id", Message: "must be a UUID v4 string"}
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return &Error{Field: "id", Message: "must be a UUID v4 string"}
	}
	if u.Version() != 4 || u.Variant() != uuid.RFC4122 {
		return &Error{Field: "id", Message: "must be a UUID v4 string"}
	}
	return nil
}

// Date checks that d is a usable calendar date no later than the end of the
// current local day. now supplies the reference instant; anything up to
// 23:59:59.999 of now's day is allowed.
func Date(d, now time.Time) error {
	if d.IsZero() {
		return &Error{Field: "date", Message: "must be a valid date"}
	}
	_, endOfDay := dayRange(now)
	if !d.Before(endOfDay) {
		return &Error{Field: "date", Message: "must not be in the future"}
	}
	return nil
}

// Minutes checks that m is an integer duration of at least one minute.
// The argument is a float so non-integer input from parsing layers is
// rejected here rather than silently truncated. Values above 1440 are
// permitted: multi-day entries have no upper clamp.
func Minutes(m float64) error {
	if math.IsNaN(m) || math.IsInf(m, 0) || m != math.Trunc(m) {
		return &Error{Field: "minutes", Message: "must be an integer"}
	}
	if m < 1 {
		return &Error{Field: "minutes", Message: "must be at least 1"}
	}
	return nil
}

// Description checks the character-count bound. Empty is valid.
func Description(s string) error {
	if utf8.RuneCountInString(s) > MaxDescriptionLen {
		return &Error{Field: "description", Message: fmt.Sprintf("must be at most %d characters", MaxDescriptionLen)}
	}
	return nil
}

// Fields runs the composite entry validation: id (when non-empty), then
// date, minutes, description. It short-circuits on the first failure so the
// returned error names exactly one field.
func Fields(id string, date time.Time, minutes float64, description string, now time.Time) error {
	if id != "" {
		if err := ID(id); err != nil {
			return err
		}
	}
	if err := Date(date, now); err != nil {
		return err
	}
	if err := Minutes(minutes); err != nil {
		return err
	}
	return Description(description)
}

// dayRange mirrors entry.DayRange without importing it; validate stays a
// leaf package.
func dayRange(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

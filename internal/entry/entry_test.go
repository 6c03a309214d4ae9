package entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActive(t *testing.T) {
	e := Entry{ID: "x"}
	assert.True(t, e.Active())

	now := time.Now()
	e.DeletedAt = &now
	assert.False(t, e.Active())
}

func TestPatchIsZero(t *testing.T) {
	assert.True(t, Patch{}.IsZero())

	m := 30
	assert.False(t, Patch{Minutes: &m}.IsZero())

	empty := ""
	assert.False(t, Patch{Description: &empty}.IsZero(), "clearing the description is a change")
}

func TestDayRange(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	assert.NoError(t, err)

	at := time.Date(2026, time.August, 15, 23, 45, 0, 0, loc)
	start, end := DayRange(at)

	assert.Equal(t, time.Date(2026, time.August, 15, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, time.August, 16, 0, 0, 0, 0, loc), end)
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2026, time.December, time.UTC)
	assert.Equal(t, time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	// Rolls over the year boundary
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestTypeKnown(t *testing.T) {
	assert.True(t, TypeCreated.Known())
	assert.True(t, TypeUpdated.Known())
	assert.True(t, TypeDeleted.Known())
	assert.False(t, Type("v1.EntryRenamed").Known())
	assert.False(t, Type("").Known())
}

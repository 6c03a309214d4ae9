package validate

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.August, 15, 14, 30, 0, 0, time.UTC)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{"valid v4", "550e8400-e29b-41d4-a716-446655440000", true},
		{"valid v4 uppercase", "550E8400-E29B-41D4-A716-446655440000", true},
		{"empty", "", false},
		{"too short", "550e8400-e29b-41d4-a716", false},
		{"not hex", "zzzzzzzz-zzzz-4zzz-8zzz-zzzzzzzzzzzz", false},
		{"version 1", "550e8400-e29b-11d4-a716-446655440000", false},
		{"wrong variant", "550e8400-e29b-41d4-c716-446655440000", false},
		{"no hyphens", "550e8400e29b41d4a716446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ID(tt.id)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *Error
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "id", ve.Field)
		})
	}
}

func TestDate(t *testing.T) {
	endOfToday := time.Date(2026, time.August, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    time.Time
		wantMsg string
	}{
		{"zero value", time.Time{}, "must be a valid date"},
		{"today earlier", testNow.Add(-2 * time.Hour), ""},
		{"today later same day", testNow.Add(9 * time.Hour), ""},
		{"last millisecond of today", endOfToday.Add(-time.Millisecond), ""},
		{"midnight tomorrow", endOfToday, "must not be in the future"},
		{"next week", testNow.AddDate(0, 0, 7), "must not be in the future"},
		{"long past", time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Date(tt.date, testNow)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		name    string
		minutes float64
		wantMsg string
	}{
		{"one minute", 1, ""},
		{"full day", 1440, ""},
		{"above one day", 2880, ""},
		{"zero", 0, "must be at least 1"},
		{"negative", -30, "must be at least 1"},
		{"fractional", 1.5, "must be an integer"},
		{"fractional negative", -0.5, "must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Minutes(tt.minutes)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDescription(t *testing.T) {
	assert.NoError(t, Description(""))
	assert.NoError(t, Description("weekly planning"))
	assert.NoError(t, Description(strings.Repeat("x", MaxDescriptionLen)))

	err := Description(strings.Repeat("x", MaxDescriptionLen+1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most")
}

func TestDescription_CountsRunesNotBytes(t *testing.T) {
	// Multi-byte characters count once each
	s := strings.Repeat("ü", MaxDescriptionLen)
	assert.Greater(t, len(s), MaxDescriptionLen)
	assert.NoError(t, Description(s))
}

func TestFields_ShortCircuitOrder(t *testing.T) {
	badID := "not-a-uuid-string-at-all-really-nope"
	future := testNow.AddDate(0, 0, 3)

	// All fields invalid: id wins
	err := Fields(badID, future, 0.5, strings.Repeat("x", MaxDescriptionLen+1), testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid id")

	// Valid id: date wins next
	err = Fields("550e8400-e29b-41d4-a716-446655440000", future, 0.5, "", testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")

	// Valid date: minutes wins next
	err = Fields("", testNow, 0.5, "", testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid minutes")

	// Empty id is skipped (creation validates before generating one)
	err = Fields("", testNow, 60, "fine", testNow)
	assert.NoError(t, err)
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(Minutes(0)))
	assert.True(t, IsValidation(fmt.Errorf("wrapped: %w", Minutes(0))))
	assert.False(t, IsValidation(errors.New("disk on fire")))
	assert.False(t, IsValidation(nil))
}

func TestError_Message(t *testing.T) {
	err := Minutes(0)
	assert.Equal(t, "invalid minutes: must be at least 1", err.Error())
}

package tracker

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tracklog/internal/entry"
	"github.com/roach88/tracklog/internal/validate"
)

//go:embed seed_dev.yaml
var devSeedYAML []byte

// Reserved onboarding ids. SeedOnboardingData is a no-op if any row, active
// or soft-deleted, already carries one of these.
var onboardingIDs = []string{
	"00000000-0000-4000-8000-0000000a0001",
	"00000000-0000-4000-8000-0000000a0002",
	"00000000-0000-4000-8000-0000000a0003",
	"00000000-0000-4000-8000-0000000a0004",
}

// SeedResult is the structured outcome of every seed/reset operation.
// These operations never return a raw error: internal failures are caught
// at the boundary and reported in Error with Success false.
type SeedResult struct {
	Success bool   `json:"success"`
	Seeded  int    `json:"seeded,omitempty"`
	Cleared int    `json:"cleared,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

func seedFailure(err error) SeedResult {
	return SeedResult{Success: false, Error: err.Error()}
}

// devSeedFile is the strict-YAML shape of the embedded development batch.
type devSeedFile struct {
	Entries []devSeedEntry `yaml:"entries"`
}

type devSeedEntry struct {
	ID          string `yaml:"id"`
	DaysAgo     int    `yaml:"days_ago"`
	Minutes     int    `yaml:"minutes"`
	Description string `yaml:"description"`
}

// SeedDevelopmentData unconditionally appends the embedded development
// batch: seven realistic entries with deterministic reserved ids spanning
// the last seven days. Calling it again re-appends the same batch; the
// duplicate creates are tolerated by the materializer's keep-first policy,
// so repeated seeding leaves the row count unchanged. This is accepted
// behavior, not a bug.
func (s *Service) SeedDevelopmentData(ctx context.Context) SeedResult {
	batch, err := s.devSeedBatch()
	if err != nil {
		return seedFailure(err)
	}
	if err := s.store.Append(ctx, batch...); err != nil {
		return seedFailure(err)
	}
	return SeedResult{Success: true, Seeded: len(batch)}
}

// devSeedBatch parses the embedded fixture into a create batch, with dates
// anchored at noon so they stay on the intended calendar day in any zone.
func (s *Service) devSeedBatch() ([]entry.Event, error) {
	var file devSeedFile
	dec := yaml.NewDecoder(bytes.NewReader(devSeedYAML))
	dec.KnownFields(true) // Reject unknown fields
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse dev seed fixture: %w", err)
	}
	if len(file.Entries) == 0 {
		return nil, fmt.Errorf("dev seed fixture is empty")
	}

	now := s.now()
	batch := make([]entry.Event, 0, len(file.Entries))
	for _, e := range file.Entries {
		batch = append(batch, entry.NewCreated(e.ID, noonDaysAgo(now, e.DaysAgo), e.Minutes, e.Description))
	}
	return batch, nil
}

// SeedTestData resets the store to a known edge-case dataset: every
// currently-active row is soft-deleted, then a fixed batch covering the
// validation boundaries is appended (minimum and multi-day durations, empty
// and maximum-length descriptions, weekend dates, and one entry that is
// created and immediately soft-deleted).
//
// Returns the number of rows cleared and the number of entries seeded.
func (s *Service) SeedTestData(ctx context.Context) SeedResult {
	active, err := s.store.ActiveIDs(ctx)
	if err != nil {
		return seedFailure(err)
	}

	now := s.now()
	if len(active) > 0 {
		clear := make([]entry.Event, 0, len(active))
		for _, id := range active {
			clear = append(clear, entry.NewDeleted(id, now))
		}
		if err := s.store.Append(ctx, clear...); err != nil {
			return seedFailure(err)
		}
	}

	batch, seeded := testSeedBatch(now)
	if err := s.store.Append(ctx, batch...); err != nil {
		return seedFailure(err)
	}

	return SeedResult{Success: true, Seeded: seeded, Cleared: len(active)}
}

// testSeedBatch builds the edge-case events. The second return value is the
// number of distinct entries created, which excludes the trailing delete.
func testSeedBatch(now time.Time) ([]entry.Event, int) {
	const p = "00000000-0000-4000-8000-0000000e000"
	saturday, sunday := lastWeekend(now)

	creates := []entry.Event{
		entry.NewCreated(p+"1", noonDaysAgo(now, 1), 1, "Minimum duration entry"),
		entry.NewCreated(p+"2", noonDaysAgo(now, 2), 1440, "Exactly one full day"),
		entry.NewCreated(p+"3", noonDaysAgo(now, 3), 2880, "Multi-day entry, no upper clamp"),
		entry.NewCreated(p+"4", noonDaysAgo(now, 4), 30, ""),
		entry.NewCreated(p+"5", noonDaysAgo(now, 5), 45, strings.Repeat("x", validate.MaxDescriptionLen)),
		entry.NewCreated(p+"6", saturday, 120, "Weekend work, Saturday"),
		entry.NewCreated(p+"7", sunday, 60, "Weekend work, Sunday"),
		entry.NewCreated(p+"8", noonDaysAgo(now, 6), 75, "Created then soft-deleted"),
	}
	batch := append(creates, entry.NewDeleted(p+"8", now))
	return batch, len(creates)
}

// SeedOnboardingData appends a small tutorial batch on first run. If any
// reserved onboarding id already exists among all rows, active or deleted,
// the store has been seeded before and the call reports Skipped.
func (s *Service) SeedOnboardingData(ctx context.Context) SeedResult {
	seeded, err := s.store.HasAnyID(ctx, onboardingIDs)
	if err != nil {
		return seedFailure(err)
	}
	if seeded {
		return SeedResult{Success: true, Skipped: true}
	}

	now := s.now()
	descriptions := []string{
		"Welcome to tracklog! This is a sample entry.",
		"Use 'tracklog add' to record your own time.",
		"Entries are soft-deleted: 'tracklog rm' keeps history.",
		"Run 'tracklog list' to see your recent work.",
	}
	batch := make([]entry.Event, 0, len(onboardingIDs))
	for i, id := range onboardingIDs {
		batch = append(batch, entry.NewCreated(id, noonDaysAgo(now, i), 25+5*i, descriptions[i]))
	}
	if err := s.store.Append(ctx, batch...); err != nil {
		return seedFailure(err)
	}
	return SeedResult{Success: true, Seeded: len(batch)}
}

// ClearAllData soft-deletes every active row in one atomic batch, so
// readers never observe a partial reset. Clearing an empty store succeeds
// with zero cleared and appends nothing.
func (s *Service) ClearAllData(ctx context.Context) SeedResult {
	active, err := s.store.ActiveIDs(ctx)
	if err != nil {
		return seedFailure(err)
	}
	if len(active) == 0 {
		return SeedResult{Success: true, Cleared: 0}
	}

	now := s.now()
	batch := make([]entry.Event, 0, len(active))
	for _, id := range active {
		batch = append(batch, entry.NewDeleted(id, now))
	}
	if err := s.store.Append(ctx, batch...); err != nil {
		return seedFailure(err)
	}
	return SeedResult{Success: true, Cleared: len(batch)}
}

// noonDaysAgo returns noon local time n days before now. Anchoring at noon
// keeps the date on the intended calendar day across DST transitions.
func noonDaysAgo(now time.Time, n int) time.Time {
	y, m, d := now.AddDate(0, 0, -n).Date()
	return time.Date(y, m, d, 12, 0, 0, 0, now.Location())
}

// lastWeekend returns noon of the most recent Saturday and its following
// Sunday, both strictly before today.
func lastWeekend(now time.Time) (saturday, sunday time.Time) {
	day := noonDaysAgo(now, 1)
	for day.Weekday() != time.Sunday {
		day = day.AddDate(0, 0, -1)
	}
	return day.AddDate(0, 0, -1), day
}

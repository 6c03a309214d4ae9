package store

import (
	"context"
	"testing"
	"time"

	"github.com/roach88/tracklog/internal/entry"
)

func seedEntries(t *testing.T, s *Store) {
	t.Helper()

	mustAppend(t, s,
		entry.NewCreated("00000000-0000-4000-8000-000000000001", day(t, "2026-07-30"), 60, "july work"),
		entry.NewCreated("00000000-0000-4000-8000-000000000002", day(t, "2026-08-03"), 90, "monday"),
		entry.NewCreated("00000000-0000-4000-8000-000000000003", day(t, "2026-08-05"), 30, "wednesday"),
		entry.NewCreated("00000000-0000-4000-8000-000000000004", day(t, "2026-08-03"), 45, "monday again"),
	)
}

func TestListActive_OrdersByDateDescThenInsertion(t *testing.T) {
	s := openTestStore(t)
	seedEntries(t, s)

	entries, err := s.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive() failed: %v", err)
	}

	want := []string{"wednesday", "monday", "monday again", "july work"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, desc := range want {
		if entries[i].Description != desc {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Description, desc)
		}
	}
}

func TestListActive_EmptyIsNotNil(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive() failed: %v", err)
	}
	if entries == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestGetByDate_MatchesCalendarDayNotInstant(t *testing.T) {
	s := openTestStore(t)
	seedEntries(t, s)
	ctx := context.Background()

	// Query at a different time of day than the stored noon timestamp
	lookup := day(t, "2026-08-05").Add(9 * time.Hour) // 21:00 same day

	e, found, err := s.GetByDate(ctx, lookup)
	if err != nil {
		t.Fatalf("GetByDate() failed: %v", err)
	}
	if !found {
		t.Fatal("expected a match on 2026-08-05")
	}
	if e.Description != "wednesday" {
		t.Errorf("got %q, want %q", e.Description, "wednesday")
	}
}

func TestGetByDate_FirstInsertedWinsOnSharedDay(t *testing.T) {
	s := openTestStore(t)
	seedEntries(t, s)

	e, found, err := s.GetByDate(context.Background(), day(t, "2026-08-03"))
	if err != nil {
		t.Fatalf("GetByDate() failed: %v", err)
	}
	if !found {
		t.Fatal("expected a match on 2026-08-03")
	}
	if e.Description != "monday" {
		t.Errorf("got %q, want %q (earliest insertion wins)", e.Description, "monday")
	}
}

func TestGetByDate_NoMatch(t *testing.T) {
	s := openTestStore(t)
	seedEntries(t, s)

	_, found, err := s.GetByDate(context.Background(), day(t, "2026-08-09"))
	if err != nil {
		t.Fatalf("GetByDate() failed: %v", err)
	}
	if found {
		t.Error("expected no match on an empty day")
	}
}

func TestGetByDate_IgnoresDeleted(t *testing.T) {
	s := openTestStore(t)
	seedEntries(t, s)
	ctx := context.Background()

	mustAppend(t, s, entry.NewDeleted("00000000-0000-4000-8000-000000000003", time.Now()))

	_, found, err := s.GetByDate(ctx, day(t, "2026-08-05"))
	if err != nil {
		t.Fatalf("GetByDate() failed: %v", err)
	}
	if found {
		t.Error("soft-deleted entry must not be found by date")
	}
}

func TestListMonth_ScopesToCalendarMonth(t *testing.T) {
	s := openTestStore(t)
	seedEntries(t, s)

	entries, err := s.ListMonth(context.Background(), 2026, time.August, time.UTC)
	if err != nil {
		t.Fatalf("ListMonth() failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for _, e := range entries {
		if e.Date.In(time.UTC).Month() != time.August {
			t.Errorf("entry %q is outside August: %v", e.Description, e.Date)
		}
	}
}

func TestGetStats_CountsActiveAndDeleted(t *testing.T) {
	s := openTestStore(t)
	seedEntries(t, s)
	ctx := context.Background()

	mustAppend(t, s, entry.NewDeleted("00000000-0000-4000-8000-000000000001", time.Now()))

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Total != 4 || stats.Active != 3 || stats.Deleted != 1 {
		t.Errorf("stats = %+v, want total=4 active=3 deleted=1", stats)
	}
}

func TestActiveIDs_InsertionOrder(t *testing.T) {
	s := openTestStore(t)
	seedEntries(t, s)

	ids, err := s.ActiveIDs(context.Background())
	if err != nil {
		t.Fatalf("ActiveIDs() failed: %v", err)
	}

	want := []string{
		"00000000-0000-4000-8000-000000000001",
		"00000000-0000-4000-8000-000000000002",
		"00000000-0000-4000-8000-000000000003",
		"00000000-0000-4000-8000-000000000004",
	}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestHasAnyID(t *testing.T) {
	s := openTestStore(t)
	seedEntries(t, s)
	ctx := context.Background()

	found, err := s.HasAnyID(ctx, []string{
		"ffffffff-ffff-4fff-8fff-ffffffffffff",
		"00000000-0000-4000-8000-000000000002",
	})
	if err != nil {
		t.Fatalf("HasAnyID() failed: %v", err)
	}
	if !found {
		t.Error("expected a hit for a present id")
	}

	found, err = s.HasAnyID(ctx, []string{"ffffffff-ffff-4fff-8fff-ffffffffffff"})
	if err != nil {
		t.Fatalf("HasAnyID() failed: %v", err)
	}
	if found {
		t.Error("expected no hit for absent ids")
	}

	found, err = s.HasAnyID(ctx, nil)
	if err != nil {
		t.Fatalf("HasAnyID(nil) failed: %v", err)
	}
	if found {
		t.Error("empty id list must report false")
	}
}

func TestHasAnyID_SeesDeletedRows(t *testing.T) {
	s := openTestStore(t)
	seedEntries(t, s)
	ctx := context.Background()

	mustAppend(t, s, entry.NewDeleted("00000000-0000-4000-8000-000000000002", time.Now()))

	found, err := s.HasAnyID(ctx, []string{"00000000-0000-4000-8000-000000000002"})
	if err != nil {
		t.Fatalf("HasAnyID() failed: %v", err)
	}
	if !found {
		t.Error("soft-deleted rows must still count as present")
	}
}

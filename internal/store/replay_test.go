package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/roach88/tracklog/internal/entry"
)

func TestReadAllEvents_RoundTripsInSeqOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	minutes := 75
	mustAppend(t, s,
		entry.NewCreated(idA, day(t, "2026-08-03"), 60, "morning"),
		entry.NewUpdated(idA, entry.Patch{Minutes: &minutes}),
		entry.NewDeleted(idA, time.Now()),
	)

	events, err := s.ReadAllEvents(ctx)
	if err != nil {
		t.Fatalf("ReadAllEvents() failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	wantTypes := []entry.Type{entry.TypeCreated, entry.TypeUpdated, entry.TypeDeleted}
	for i, ev := range events {
		if ev.Seq != int64(i+1) {
			t.Errorf("events[%d].Seq = %d, want %d", i, ev.Seq, i+1)
		}
		if ev.Type != wantTypes[i] {
			t.Errorf("events[%d].Type = %s, want %s", i, ev.Type, wantTypes[i])
		}
		if ev.EntryID != idA {
			t.Errorf("events[%d].EntryID = %s, want %s", i, ev.EntryID, idA)
		}
	}

	if events[0].Created == nil || events[0].Created.Minutes != 60 {
		t.Errorf("created payload did not round-trip: %+v", events[0].Created)
	}
	if events[1].Updated == nil || events[1].Updated.Minutes == nil || *events[1].Updated.Minutes != 75 {
		t.Errorf("updated payload did not round-trip: %+v", events[1].Updated)
	}
	// Absent patch fields stay absent after the round trip
	if events[1].Updated.Date != nil || events[1].Updated.Description != nil {
		t.Errorf("partial patch grew fields: %+v", events[1].Updated)
	}
}

func TestReadAllEvents_EmptyIsNotNil(t *testing.T) {
	s := openTestStore(t)

	events, err := s.ReadAllEvents(context.Background())
	if err != nil {
		t.Fatalf("ReadAllEvents() failed: %v", err)
	}
	if events == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestRebuild_ReproducesIncrementalState(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	minutes := 200
	desc := "rewritten"
	mustAppend(t, s, entry.NewCreated(idA, day(t, "2026-08-03"), 60, "one"))
	mustAppend(t, s, entry.NewCreated(idB, day(t, "2026-08-04"), 90, "two"))
	mustAppend(t, s, entry.NewUpdated(idA, entry.Patch{Minutes: &minutes, Description: &desc}))
	mustAppend(t, s, entry.NewDeleted(idB, time.Now()))

	before, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() failed: %v", err)
	}
	statsBefore, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}

	if err := s.Rebuild(ctx); err != nil {
		t.Fatalf("Rebuild() failed: %v", err)
	}

	after, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() after rebuild failed: %v", err)
	}
	statsAfter, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() after rebuild failed: %v", err)
	}

	if !reflect.DeepEqual(before, after) {
		t.Errorf("rebuild changed the listing:\nbefore: %+v\nafter:  %+v", before, after)
	}
	if statsBefore != statsAfter {
		t.Errorf("rebuild changed stats: before %+v, after %+v", statsBefore, statsAfter)
	}
}

func TestRebuild_RepairsManualDrift(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	mustAppend(t, s, entry.NewCreated(idA, day(t, "2026-08-03"), 60, "truth"))

	// Tamper with the materialized table behind the log's back
	if _, err := s.db.Exec("UPDATE entries SET minutes = 999 WHERE id = ?", idA); err != nil {
		t.Fatalf("tamper: %v", err)
	}

	if err := s.Rebuild(ctx); err != nil {
		t.Fatalf("Rebuild() failed: %v", err)
	}

	entries, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Minutes != 60 {
		t.Errorf("rebuild did not restore the log's state: %+v", entries)
	}
}

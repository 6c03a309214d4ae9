package harness

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tracklog/internal/entry"
	"github.com/roach88/tracklog/internal/store"
	"github.com/roach88/tracklog/internal/testutil"
	"github.com/roach88/tracklog/internal/tracker"
	"github.com/roach88/tracklog/internal/validate"
)

// baseTime anchors every scenario run. Scenario dates must not be after
// this day or the no-future-date rule rejects them.
var baseTime = time.Date(2026, time.March, 6, 12, 0, 0, 0, time.UTC)

// Snapshot is the observable outcome of a scenario: the active listing,
// the full event log, and the counters. It is what golden files capture.
type Snapshot struct {
	Scenario string        `json:"scenario"`
	Entries  []EntryState  `json:"entries"`
	Events   []EventRecord `json:"events"`
	Stats    StatsState    `json:"stats"`
}

// EntryState is one active entry in the final listing.
type EntryState struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Minutes     int    `json:"minutes"`
	Description string `json:"description"`
}

// EventRecord is one event in the log, in seq order.
type EventRecord struct {
	Seq     int64  `json:"seq"`
	Type    string `json:"type"`
	EntryID string `json:"entry_id"`
}

// StatsState mirrors store.Stats.
type StatsState struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Deleted int `json:"deleted"`
}

// runner holds the live core for one scenario execution.
type runner struct {
	t       *testing.T
	store   *store.Store
	service *tracker.Service
	clock   *testutil.Clock
	gen     tracker.IDGenerator
	aliases map[string]string
}

// Run executes a scenario against a fresh store and returns the final
// snapshot. Step failures (unexpected errors, or missing expected errors)
// fail the test immediately.
func Run(t *testing.T, scenario *Scenario) *Snapshot {
	t.Helper()

	r := &runner{
		t:       t,
		store:   testutil.OpenStore(t),
		clock:   testutil.NewClock(baseTime),
		gen:     testutil.NewSeqIDGenerator(),
		aliases: map[string]string{},
	}
	r.service = tracker.New(r.store,
		tracker.WithIDGenerator(r.gen),
		tracker.WithNow(r.clock.Now),
	)

	ctx := context.Background()
	for i, step := range scenario.Steps {
		r.runStep(ctx, i+1, step)
	}

	return r.snapshot(ctx, scenario.Name)
}

func (r *runner) runStep(ctx context.Context, n int, step Step) {
	r.t.Helper()

	var err error
	switch step.Op {
	case OpCreate:
		err = r.create(ctx, step)
	case OpUpdate:
		err = r.update(ctx, step)
	case OpDelete:
		err = r.service.Delete(ctx, r.resolve(step.ID))
	case OpClear:
		result := r.service.ClearAllData(ctx)
		if !result.Success {
			r.t.Fatalf("step %d: clear failed: %s", n, result.Error)
		}
	case OpRebuild:
		err = r.store.Rebuild(ctx)
	case OpReopen:
		r.reopen()
	}

	if step.Error != "" {
		require.Error(r.t, err, "step %d: expected an error", n)
		require.Contains(r.t, err.Error(), step.Error, "step %d", n)
		return
	}
	require.NoError(r.t, err, "step %d (%s)", n, step.Op)
}

func (r *runner) create(ctx context.Context, step Step) error {
	date, err := r.parseDate(step.Date)
	if err != nil {
		return err
	}
	if err := validate.Minutes(*step.Minutes); err != nil {
		return err
	}
	desc := ""
	if step.Description != nil {
		desc = *step.Description
	}

	e, err := r.service.Create(ctx, date, int(*step.Minutes), desc)
	if err != nil {
		return err
	}
	if step.As != "" {
		r.aliases[step.As] = e.ID
	}
	return nil
}

func (r *runner) update(ctx context.Context, step Step) error {
	var patch entry.Patch
	if step.Date != "" {
		date, err := r.parseDate(step.Date)
		if err != nil {
			return err
		}
		patch.Date = &date
	}
	if step.Minutes != nil {
		if err := validate.Minutes(*step.Minutes); err != nil {
			return err
		}
		m := int(*step.Minutes)
		patch.Minutes = &m
	}
	patch.Description = step.Description

	return r.service.Update(ctx, r.resolve(step.ID), patch)
}

// reopen closes the store and opens the same file again, verifying that
// everything the snapshot sees survives a process restart.
func (r *runner) reopen() {
	r.t.Helper()

	path := r.store.Path()
	require.NoError(r.t, r.store.Close())

	st, err := store.Open(path)
	require.NoError(r.t, err)
	r.t.Cleanup(func() { _ = st.Close() })

	r.store = st
	r.service = tracker.New(st,
		tracker.WithIDGenerator(r.gen),
		tracker.WithNow(r.clock.Now),
	)
}

func (r *runner) resolve(id string) string {
	if bound, ok := r.aliases[id]; ok {
		return bound
	}
	return id
}

func (r *runner) parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(12 * time.Hour), nil
}

func (r *runner) snapshot(ctx context.Context, name string) *Snapshot {
	r.t.Helper()

	active, err := r.store.ListActive(ctx)
	require.NoError(r.t, err)
	events, err := r.store.ReadAllEvents(ctx)
	require.NoError(r.t, err)
	stats, err := r.store.GetStats(ctx)
	require.NoError(r.t, err)

	snap := &Snapshot{
		Scenario: name,
		Entries:  make([]EntryState, 0, len(active)),
		Events:   make([]EventRecord, 0, len(events)),
		Stats: StatsState{
			Total:   stats.Total,
			Active:  stats.Active,
			Deleted: stats.Deleted,
		},
	}
	for _, e := range active {
		snap.Entries = append(snap.Entries, EntryState{
			ID:          e.ID,
			Date:        e.Date.In(time.UTC).Format("2006-01-02"),
			Minutes:     e.Minutes,
			Description: e.Description,
		})
	}
	for _, ev := range events {
		snap.Events = append(snap.Events, EventRecord{
			Seq:     ev.Seq,
			Type:    string(ev.Type),
			EntryID: ev.EntryID,
		})
	}
	return snap
}

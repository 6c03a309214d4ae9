// Package tracker is the command layer of the time-tracking core: it
// validates input, translates intent into events, and appends them to the
// store. It never mutates materialized state directly; that happens only
// via the store's materializer.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/tracklog/internal/entry"
	"github.com/roach88/tracklog/internal/store"
	"github.com/roach88/tracklog/internal/validate"
)

// Service exposes the boundary-facing contract consumed by the CLI (and,
// eventually, any UI): commands, queries, and the seed/reset admin API.
type Service struct {
	store *store.Store
	ids   IDGenerator
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator overrides the entry id generator (for testing).
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Service) { s.ids = g }
}

// WithNow overrides the wall clock (for testing validation bounds and
// deterministic deleted_at stamps).
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service over the given store.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store: st,
		ids:   UUIDv4Generator{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates all fields, generates a fresh UUID v4 id, and appends a
// v1.EntryCreated event. On validation failure nothing is appended and the
// returned error is a field-tagged *validate.Error.
//
// Creating a second entry for a date that already has one inserts a second
// row; the core allows multiple entries per calendar date. Callers that
// want overwrite semantics should look up the existing id and Update it.
func (s *Service) Create(ctx context.Context, date time.Time, minutes int, description string) (entry.Entry, error) {
	if err := validate.Fields("", date, float64(minutes), description, s.now()); err != nil {
		return entry.Entry{}, err
	}

	id := s.ids.Generate()
	ev := entry.NewCreated(id, date, minutes, description)
	if err := s.store.Append(ctx, ev); err != nil {
		return entry.Entry{}, fmt.Errorf("create entry: %w", err)
	}

	// Echo back the materialized values (normalized description, millisecond
	// date precision) rather than the raw input.
	return entry.Entry{
		ID:          id,
		Date:        time.UnixMilli(ev.Created.Date),
		Minutes:     ev.Created.Minutes,
		Description: ev.Created.Description,
	}, nil
}

// Update validates only the fields supplied in the patch and appends a
// v1.EntryUpdated event carrying just those fields. The row is not required
// to exist: the log is authoritative and the materializer treats a missing
// row as a no-op. An empty patch appends nothing.
func (s *Service) Update(ctx context.Context, id string, patch entry.Patch) error {
	if err := validate.ID(id); err != nil {
		return err
	}
	if patch.Date != nil {
		if err := validate.Date(*patch.Date, s.now()); err != nil {
			return err
		}
	}
	if patch.Minutes != nil {
		if err := validate.Minutes(float64(*patch.Minutes)); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		if err := validate.Description(*patch.Description); err != nil {
			return err
		}
	}
	if patch.IsZero() {
		return nil
	}

	if err := s.store.Append(ctx, entry.NewUpdated(id, patch)); err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

// Delete appends a v1.EntryDeleted event stamping the entry as soft-deleted
// now. Idempotent: deleting a missing or already-deleted id succeeds
// silently, since the materializer treats not-found as a no-op. Only a
// storage failure produces an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Append(ctx, entry.NewDeleted(id, s.now())); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// ListActive returns all active entries, most recent date first.
func (s *Service) ListActive(ctx context.Context) ([]entry.Entry, error) {
	return s.store.ListActive(ctx)
}

// GetByDate returns the active entry for the given calendar day, if any.
func (s *Service) GetByDate(ctx context.Context, day time.Time) (entry.Entry, bool, error) {
	return s.store.GetByDate(ctx, day)
}

// ListMonth returns active entries within the given calendar month.
func (s *Service) ListMonth(ctx context.Context, year int, month time.Month) ([]entry.Entry, error) {
	return s.store.ListMonth(ctx, year, month, s.now().Location())
}

// Stats reports total, active and soft-deleted row counts.
func (s *Service) Stats(ctx context.Context) (store.Stats, error) {
	return s.store.GetStats(ctx)
}

// Subscribe registers a live-query subscription on the underlying store.
func (s *Service) Subscribe() *store.Subscription {
	return s.store.Subscribe()
}

// Unsubscribe cancels a subscription.
func (s *Service) Unsubscribe(sub *store.Subscription) {
	s.store.Unsubscribe(sub)
}

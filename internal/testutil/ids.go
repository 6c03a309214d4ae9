package testutil

import (
	"fmt"
	"sync"
)

// SeqIDGenerator generates well-formed version 4 UUIDs from a counter.
//
// The ids are deterministic, so the same test run against the same steps
// produces byte-identical event logs and golden snapshots. Unlike the
// fixed-list generator in the tracker package it never runs out.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SeqIDGenerator struct {
	mu sync.Mutex
	n  int64
}

// NewSeqIDGenerator creates a generator whose first id ends in ...000001.
func NewSeqIDGenerator() *SeqIDGenerator {
	return &SeqIDGenerator{}
}

// Generate returns the next id in sequence.
//
// Implements tracker.IDGenerator.
func (g *SeqIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("00000000-0000-4000-8000-%012x", g.n)
}

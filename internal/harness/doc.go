// Package harness runs scenario tests against the time-tracking core.
//
// A scenario is a YAML file describing a sequence of commands (create,
// update, delete, clear, rebuild, reopen) executed against a real store
// in a temp directory. After the steps run, the harness snapshots the
// active listing, the full event log, and the stats, and compares the
// snapshot against a golden file.
//
// # Scenario Format
//
//	name: update_then_delete
//	description: "updates apply in order, delete wins"
//	steps:
//	  - op: create
//	    date: 2026-03-02
//	    minutes: 90
//	    description: code review
//	    as: entry
//	  - op: update
//	    id: entry
//	    minutes: 120
//	  - op: delete
//	    id: entry
//
// Steps refer to earlier entries via the alias bound with "as". A step
// may declare "error:" with a substring the command must fail with; the
// harness fails if such a step succeeds.
//
// # Deterministic Execution
//
// Scenarios run with a seeded id generator (testutil.SeqIDGenerator) and
// a stepping wall clock (testutil.Clock), so the same scenario always
// produces a byte-identical snapshot. Golden files live in
// testdata/golden and are refreshed with:
//
//	go test ./internal/harness -update
package harness

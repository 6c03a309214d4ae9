// Package store provides SQLite-backed durable storage for the tracklog
// event log and its materialized entries table.
//
// The store implements an append-only log with:
//   - Events: the typed domain events (created/updated/deleted), the single
//     source of truth
//   - Entries: the relational cache folded from the log by the materializer
//   - Subscriptions: batch-level change notifications for live queries
//
// # Critical Patterns
//
// Logical identity and time:
//   - All ordering uses seq INTEGER (logical clock), NEVER timestamps
//   - Enables deterministic replay regardless of wall time
//
// Deterministic query results:
//   - Active listings always use: ORDER BY date DESC, created_seq ASC
//   - Ensures identical results across replays and rebuilds
//
// Batch atomicity:
//   - Append applies a whole batch in one transaction; readers never see a
//     partially applied batch, and subscribers get at most one notification
//     per committed batch
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// A corrupt or unreadable database file does not prevent startup: Open moves
// the damaged file aside and starts from an empty log (fail open).
package store

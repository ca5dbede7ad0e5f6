// Package store provides SQLite-backed history for balanced equations.
//
// The store is an append-only log with two tables:
//   - runs: one row per CLI invocation that recorded results
//   - records: one row per balanced equation, keyed by content-addressed ID
//
// # Ordering
//
// All ordering uses the seq column (a logical clock), never timestamps.
// Every list query ends with ORDER BY seq ASC, id COLLATE BINARY ASC so
// repeated reads return identical results.
//
// # Idempotency
//
// Record IDs are computed by ir.RecordID from the run, sequence and body.
// Writing the same record twice is a no-op (ON CONFLICT(id) DO NOTHING).
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: records.run_id must reference an existing run
package store

// Package activity is the append-only activity log of the quota ledger.
//
// Its only producer today is the action guard, which records an
// upsell-opportunity event when an organization crosses a soft cap. Events
// are best-effort telemetry: a failed or dropped write is logged by the
// caller and never blocks the rate-limited action itself.
//
// Storage backends: PostgresStorage (activity_log table) and MemoryStorage
// for tests. AsyncWriter wraps a batch-capable storage to take event
// persistence off the request path.
package activity

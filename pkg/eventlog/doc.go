// Package eventlog reads license-data events from the PostgreSQL event log
// the ingest pipeline writes to.
//
// The log is append-only from this package's point of view: Store offers
// read-only window queries (ingest failures, validation errors, successful
// ingest counts) keyed by compact, jurisdiction and a half-open time window.
// Event payloads live in a JSONB column and are decoded into the typed
// records consumed by pkg/report; a payload that fails to decode surfaces as
// ErrMalformedEvent rather than a silently dropped row.
//
// Connect establishes a pgxpool with linear-backoff retry, and Migrate
// applies the embedded goose migrations, so a fresh environment bootstraps
// from the binary alone.
package eventlog

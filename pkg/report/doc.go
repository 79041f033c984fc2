// Package report turns license-data event records into renderable email
// documents for the nightly and weekly jurisdiction notifications.
//
// Three mutually exclusive report variants exist, matching the decision made
// per jurisdiction per run by the notifier:
//
//   - BuildReport: the error summary, one section per ingest failure and per
//     validation error, sent whenever the prior day had events;
//   - BuildAllsWellReport: the weekly all-clear, sent when a week passed with
//     uploads and no errors;
//   - BuildNoUploadsReport: the weekly escalation for a silent jurisdiction.
//
// Each semantic unit (header, divider, ingest failure, validation error,
// footer) is built by a pure function returning a self-contained
// emaildoc.Fragment which the assembler splices onto the root layout.
// Builders assume well-formed records - validating event payloads is the
// event log reader's job - and are deterministic: per-field texts inside a
// section are sorted lexicographically, and the one cross-record ordering
// contract (validation errors by record number, then event time) lives in
// BuildReport.
package report

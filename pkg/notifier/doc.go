// Package notifier holds the per-jurisdiction, per-run notification decision
// for license-data reporting.
//
// For every configured (compact, jurisdiction) pair the Service inspects the
// event log and picks exactly one of four outcomes: send the error-summary
// report (any event in the prior day), send the weekly all's-well report
// (clean trailing week with uploads), send the weekly no-uploads escalation
// (silent trailing week, routed to jurisdiction and compact recipients
// both), or send nothing. The decision is a pure function of the event log
// over fixed windows - no state persists between runs, so replaying a window
// routes identically.
//
// Collaborators arrive through small interfaces (EventSource,
// AttachmentFetcher, the mailer sender pair, recipients.Source) so the
// decision logic tests against hand-rolled fakes without touching Postgres,
// Redis, S3 or a mail provider.
//
// A jurisdiction with zero configured recipients fails with ErrNoRecipients
// instead of skipping - and one jurisdiction's failure is logged and joined
// without aborting the remaining targets of the run.
package notifier

// Package mailer provides the outbound mail transports for jurisdiction
// notifications, behind two small interfaces matching the two shapes the
// downstream accepts:
//
//   - Sender takes a structured request (subject, recipients, rendered HTML)
//     and lets the provider build the wire format. Backed by Postmark in
//     production and DevSender locally.
//   - RawSender takes a finished RFC 2822 MIME payload - used for report
//     emails with attachments, where pkg/rawmail owns the wire format. Backed
//     by the SES v2 raw email API.
//
// All implementations validate parameters before sending and fail with the
// package's sentinel errors (ErrInvalidConfig, ErrInvalidParams,
// ErrFailedToSendEmail), checkable with errors.Is. DevSender writes .html +
// .json for structured mail and .eml for raw payloads into a local directory,
// so development runs never need provider credentials.
package mailer

// Package rawmail encodes a rendered HTML report plus zero or more named
// attachments into a single raw RFC 2822 / MIME multipart message, ready for
// a "send raw message" transport call.
//
// Compose is a pure transform: no state is retained across invocations, and
// each message gets a fresh multipart boundary. The structural contract with
// the downstream mail transport is strict - one multipart/mixed envelope, one
// text/html part, one part per attachment with Content-Disposition naming the
// file, From rendered as "Compact Connect <address>".
//
// Transfer encoding: the HTML body is quoted-printable; attachments (CSV
// exports, zip report bundles) are base64 wrapped at 76 columns, which
// round-trips byte-for-byte regardless of content.
//
// An attachment with empty content fails composition with
// ErrMissingAttachment rather than producing a hollow part; the caller must
// treat that as a hard failure of the whole notification.
package rawmail

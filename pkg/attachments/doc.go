// Package attachments sources report attachment content from the object
// store that holds transaction report bundles and CSV exports.
//
// The only implementation is S3Fetcher over an S3 (or S3-compatible) bucket.
// The S3Client interface keeps the AWS SDK behind a one-method seam so tests
// inject mocks via WithS3Client, following the same pattern as the rest of
// the AWS integrations in this codebase.
//
// A missing object or an empty body is a hard error: Fetch returns
// ErrMissingAttachment carrying the source key, and the notifier fails the
// whole notification rather than sending a report with a hollow attachment.
package attachments

package attachments

import "errors"

var (
	// ErrMissingAttachment is returned when the object store has no content
	// for a requested key - the object is absent or its body is empty. The
	// error always names the source key so the caller can surface which
	// attachment sank the notification.
	ErrMissingAttachment = errors.New("attachment source has no content")

	// ErrInvalidConfig is returned when required S3 configuration is missing.
	ErrInvalidConfig = errors.New("invalid attachment store configuration")

	// ErrFailedToLoadConfig is returned when the AWS SDK configuration could
	// not be assembled.
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")

	// ErrAccessDenied is returned when the object store rejects the read.
	ErrAccessDenied = errors.New("access denied by object store")

	// ErrFailedToFetch wraps transport-level failures reading an object.
	ErrFailedToFetch = errors.New("failed to fetch attachment object")
)

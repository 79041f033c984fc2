package rawmail

import "errors"

var (
	// ErrInvalidMessage is returned when a message is missing a sender,
	// recipients, subject or body. These are caller bugs, caught before any
	// bytes are produced.
	ErrInvalidMessage = errors.New("invalid mime message")

	// ErrMissingAttachment is returned when an attachment carries no content.
	// An empty attachment is never silently emitted - a report with a hollow
	// attachment is worse than no report, so composition fails hard and the
	// caller fails the whole notification.
	ErrMissingAttachment = errors.New("attachment has no content")
)

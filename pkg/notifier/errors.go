package notifier

import "errors"

var (
	// ErrNoRecipients is returned when a notification should go out but the
	// configuration store holds zero addresses for the intended recipient
	// class. Silent non-delivery would hide an operational risk, so this is a
	// configuration error, never a skip.
	ErrNoRecipients = errors.New("no recipients configured")

	// ErrInvalidService is returned by NewService when a required dependency
	// is missing.
	ErrInvalidService = errors.New("invalid notifier service configuration")
)

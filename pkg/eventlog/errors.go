package eventlog

import "errors"

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrFailedToApplyMigrations  = errors.New("failed to apply migrations")
	ErrFailedToQueryEvents      = errors.New("failed to query event log")
	ErrMalformedEvent           = errors.New("malformed event payload")
)

package recipients

import "errors"

var (
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady           = errors.New("redis connection is not ready")
	ErrMalformedEntry          = errors.New("malformed recipient entry")
	ErrFailedToReadConfig      = errors.New("failed to read recipient configuration")
)

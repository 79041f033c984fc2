package eventlog

// Bridge unexported payload decoding into the external test package.
var (
	DecodeIngestFailure   = decodeIngestFailure
	DecodeValidationError = decodeValidationError
)

package cli

// Error codes for structured error responses. These codes are stable and
// can be relied upon by scripts.
const (
	ErrConfigInvalid   = "CONFIG_INVALID"
	ErrParseFailed     = "PARSE_FAILED"
	ErrEncodeFailed    = "ENCODE_FAILED"
	ErrDocNotFound     = "DOC_NOT_FOUND"
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"
	ErrFileNotFound    = "FILE_NOT_FOUND"
	ErrFileWriteError  = "FILE_WRITE_ERROR"
	ErrInternal        = "INTERNAL"
)

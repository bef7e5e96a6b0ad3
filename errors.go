package colundi

import "github.com/pkg/errors"

// Error classes. Errors returned by this module wrap exactly one of these, so callers
// classify failures with errors.Is.
var (
	// ErrInvalidParameter reports a sample rate, duration, frequency or amplitude outside its
	// valid domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrMalformedInput reports a frequency list that cannot be parsed.
	ErrMalformedInput = errors.New("malformed input")

	// ErrResource reports a file or directory that cannot be read, created or written.
	ErrResource = errors.New("resource error")
)

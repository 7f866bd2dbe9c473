package exception

import "errors"

// Config errors
var (
	ErrUnknownInputFormat = errors.New("config: unknown input format")
	ErrMissingProfileAddr = errors.New("config: profiling enabled without server address")
)

package exception

import "errors"

// Batch errors
var (
	ErrInvalidRequest = errors.New("batch: invalid request")
	ErrEmptyValue     = errors.New("batch: empty value")
)

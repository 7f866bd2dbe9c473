package exception

import "errors"

// Fixed-point parsing errors
var (
	ErrSyntax     = errors.New("fixed point: invalid syntax")
	ErrOutOfRange = errors.New("fixed point: value out of range")
)

package session

import "errors"

// Sentinel kinds for session errors.
var (
	ErrSkipLimit         = errors.New("skip limit reached")
	ErrMalformedSnapshot = errors.New("malformed session snapshot")
)

package selector

import "errors"

// Sentinel kinds for selector errors.
var (
	ErrUnknownStrategy = errors.New("unknown strategy")
)

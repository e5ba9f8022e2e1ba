package archive

import "errors"

// Sentinel kinds for archive errors.
var (
	ErrNotFound          = errors.New("submission not found")
	ErrInvalidSubmission = errors.New("invalid submission")
)

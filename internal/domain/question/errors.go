package question

import "errors"

// Sentinel kinds for questionnaire errors. These allow errors.Is/As from
// callers.
var (
	ErrUnknownQuestion  = errors.New("unknown question id")
	ErrUnknownOption    = errors.New("unknown option value")
	ErrIncompleteAnswer = errors.New("incomplete answer")
	ErrInvalidBank      = errors.New("invalid question bank")
)

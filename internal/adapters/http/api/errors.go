package api

import (
	"errors"
	"net/http"

	submissionqueue "github.com/mirall/archetype/internal/adapters/mq/queue"
	"github.com/mirall/archetype/internal/adapters/sessionstore"
	"github.com/mirall/archetype/internal/domain/question"
	"github.com/mirall/archetype/internal/domain/selector"
	"github.com/mirall/archetype/internal/domain/session"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// writeDomainError maps known engine errors onto HTTP status codes. A
// session past its resumability window is gone, not merely missing, so
// clients can distinguish "retry with a new session" from a typo'd id.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessionstore.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, sessionstore.ErrExpired):
		writeError(w, http.StatusGone, "expired", err)
	case errors.Is(err, session.ErrMalformedSnapshot):
		writeError(w, http.StatusGone, "expired", err)
	case errors.Is(err, session.ErrSkipLimit):
		writeError(w, http.StatusConflict, "skip_limit", err)
	case errors.Is(err, question.ErrUnknownQuestion),
		errors.Is(err, question.ErrUnknownOption),
		errors.Is(err, question.ErrIncompleteAnswer),
		errors.Is(err, selector.ErrUnknownStrategy):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, submissionqueue.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

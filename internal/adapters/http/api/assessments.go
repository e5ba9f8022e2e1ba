// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// AssessmentsHandler handles the assessment session lifecycle.
type AssessmentsHandler struct {
	deps Dependencies
}

// NewAssessmentsHandler creates a new assessments handler.
func NewAssessmentsHandler(deps Dependencies) *AssessmentsHandler {
	return &AssessmentsHandler{deps: deps}
}

// startRequest mirrors the schema for POST /assessments. Both fields are
// optional: a blank session id starts a fresh session, a blank strategy
// uses the configured default.
type startRequest struct {
	SessionID string `json:"session_id"`
	Strategy  string `json:"strategy"`
}

// answerRequest mirrors the schema for POST /assessments/{id}/answers.
type answerRequest struct {
	QuestionID int      `json:"question_id"`
	Picks      []string `json:"picks"`
}

// skipRequest mirrors the schema for POST /assessments/{id}/skip.
type skipRequest struct {
	QuestionID int `json:"question_id"`
}

// HandleStart handles POST /assessments requests.
func (h *AssessmentsHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req startRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
	}

	started, err := h.deps.StartAssessment(r.Context(), strings.TrimSpace(req.SessionID), strings.TrimSpace(req.Strategy))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	status := http.StatusCreated
	if started.Resumed {
		status = http.StatusOK
	}
	writeJSON(w, status, started)
}

// HandleSession dispatches /assessments/{id}/{op} requests.
func (h *AssessmentsHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/assessments/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	sessionID, op := parts[0], parts[1]

	switch op {
	case "next":
		h.handleNext(w, r, sessionID)
	case "answers":
		h.handleAnswer(w, r, sessionID)
	case "skip":
		h.handleSkip(w, r, sessionID)
	case "result":
		h.handleResult(w, r, sessionID)
	case "submit":
		h.handleSubmit(w, r, sessionID)
	default:
		http.NotFound(w, r)
	}
}

// handleNext handles GET /assessments/{id}/next requests.
func (h *AssessmentsHandler) handleNext(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	next, err := h.deps.NextQuestion(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, next)
}

// handleAnswer handles POST /assessments/{id}/answers requests.
func (h *AssessmentsHandler) handleAnswer(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.QuestionID <= 0 || len(req.Picks) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := h.deps.RecordAnswer(r.Context(), sessionID, req.QuestionID, req.Picks); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

// handleSkip handles POST /assessments/{id}/skip requests.
func (h *AssessmentsHandler) handleSkip(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req skipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.QuestionID <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	res, err := h.deps.SkipQuestion(r.Context(), sessionID, req.QuestionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleResult handles GET /assessments/{id}/result requests.
func (h *AssessmentsHandler) handleResult(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	res, err := h.deps.Result(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleSubmit handles POST /assessments/{id}/submit requests.
func (h *AssessmentsHandler) handleSubmit(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	ack, err := h.deps.Submit(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ack)
}

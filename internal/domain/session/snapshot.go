package session

import (
	"fmt"
	"time"

	"github.com/mirall/archetype/internal/domain/question"
)

// Snapshot is the serializable session record the resumable store keeps.
// It is a complete, self-contained copy: restoring it and replaying the
// answer list reproduces the exact trait vector and ranking.
type Snapshot struct {
	ID            string                   `json:"id"`
	Strategy      string                   `json:"strategy"`
	Answers       []question.Answer        `json:"answers"`
	AnsweredCount int                      `json:"answered_count"`
	SkipsUsed     int                      `json:"skips_used"`
	SkippedIDs    []int                    `json:"skipped_ids,omitempty"`
	QueuedIDs     []int                    `json:"queued_ids,omitempty"`
	Calibrated    map[question.Family]bool `json:"calibrated,omitempty"`
	Submitted     bool                     `json:"submitted,omitempty"`
	SavedAt       time.Time                `json:"saved_at"`
}

// Validate checks structural integrity of a restored snapshot. Malformed
// records are discarded by the caller and the session restarts fresh.
func (sn Snapshot) Validate() error {
	if sn.ID == "" {
		return fmt.Errorf("%w: missing session id", ErrMalformedSnapshot)
	}
	if sn.SavedAt.IsZero() {
		return fmt.Errorf("%w: missing save timestamp", ErrMalformedSnapshot)
	}
	seen := make(map[int]struct{}, len(sn.Answers))
	for _, a := range sn.Answers {
		if _, dup := seen[a.QuestionID]; dup {
			return fmt.Errorf("%w: duplicate answer for question %d", ErrMalformedSnapshot, a.QuestionID)
		}
		seen[a.QuestionID] = struct{}{}
		if !a.Scores.Valid() {
			return fmt.Errorf("%w: answer %d carries a partial trait vector", ErrMalformedSnapshot, a.QuestionID)
		}
	}
	if sn.AnsweredCount != len(sn.Answers) {
		return fmt.Errorf("%w: answered count %d does not match %d answers",
			ErrMalformedSnapshot, sn.AnsweredCount, len(sn.Answers))
	}
	return nil
}

// Expired reports whether the snapshot is older than ttl as of now.
func (sn Snapshot) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(sn.SavedAt) > ttl
}

// Restore rebuilds a Session from a validated snapshot.
func Restore(sn Snapshot, opts ...Option) (*Session, error) {
	if err := sn.Validate(); err != nil {
		return nil, err
	}
	s := New(sn.ID, sn.Strategy, opts...)
	for _, a := range sn.Answers {
		s.Record(a)
	}
	s.skipsUsed = sn.SkipsUsed
	s.skippedIDs = append([]int(nil), sn.SkippedIDs...)
	s.queuedIDs = append([]int(nil), sn.QueuedIDs...)
	for f, v := range sn.Calibrated {
		if v {
			s.calibrated[f] = true
		}
	}
	s.submitted = sn.Submitted
	return s, nil
}

// Package model contains domain records passed between layers.
package model

import (
	"time"

	"github.com/mirall/archetype/internal/domain/question"
	"github.com/mirall/archetype/internal/domain/trait"
)

// Submission is the complete, self-contained record of a finished
// assessment, safe to retry verbatim: archiving is deduplicated by
// SessionID. Answers hold base questions only, with calibration effects
// already folded into their scores; calibration question ids never
// appear here.
type Submission struct {
	SessionID string            `json:"session_id"`
	Strategy  string            `json:"strategy"`
	Answers   []question.Answer `json:"answers"`

	// Traits is the final normalized (clamped) six-trait vector.
	Traits trait.Scores `json:"traits"`

	PrimaryID string    `json:"primary_id"`
	Decisive  bool      `json:"decisive"`
	CreatedAt time.Time `json:"created_at"`
}

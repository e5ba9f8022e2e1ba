// Package types holds the response shapes shared between the service
// layer and the HTTP API.
package types

import (
	"github.com/mirall/archetype/internal/domain/spectrum"
	"github.com/mirall/archetype/internal/domain/trait"
)

// Started acknowledges a new or resumed assessment session.
type Started struct {
	SessionID string `json:"session_id"`
	Strategy  string `json:"strategy"`
	Resumed   bool   `json:"resumed"`
}

// OptionView is an answer option as presented to clients. Trait deltas
// are deliberately absent: scoring internals never cross the API.
type OptionView struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// QuestionView is a question as presented to clients.
type QuestionView struct {
	ID       int          `json:"id"`
	Scenario string       `json:"scenario,omitempty"`
	Prompt   string       `json:"prompt"`
	Kind     string       `json:"kind"`
	Options  []OptionView `json:"options"`

	// PickCount is how many option values an answer must carry.
	PickCount int `json:"pick_count"`
}

// NextQuestion is the questionnaire loop response: either the next
// question or a completion marker, never both.
type NextQuestion struct {
	Complete bool          `json:"complete"`
	Question *QuestionView `json:"question,omitempty"`

	EstimatedRemaining int `json:"estimated_remaining"`
	AnsweredCount      int `json:"answered_count"`
	SkipsRemaining     int `json:"skips_remaining"`
}

// SkipResult reports a consumed skip and its replacement, when one
// exists.
type SkipResult struct {
	Replacement    *QuestionView `json:"replacement,omitempty"`
	SkipsRemaining int           `json:"skips_remaining"`
}

// Candidate is one ranked archetype in a result.
type Candidate struct {
	ArchetypeID string  `json:"archetype_id"`
	Name        string  `json:"name"`
	Tagline     string  `json:"tagline,omitempty"`
	Percent     float64 `json:"percent"`
	Rank        int     `json:"rank"`
}

// Result is the assessment outcome at any point in the session. A
// non-decisive result carries the spectrum and the trait that most
// separates the top two archetypes.
type Result struct {
	SessionID   string `json:"session_id"`
	PrimaryID   string `json:"primary_id"`
	PrimaryName string `json:"primary_name"`
	Tagline     string `json:"tagline,omitempty"`

	Decisive bool    `json:"decisive"`
	Gap      float64 `json:"gap"`

	// Traits is the clamped display vector.
	Traits     trait.Scores `json:"traits"`
	Candidates []Candidate  `json:"candidates"`

	DifferentiatingTrait string             `json:"differentiating_trait,omitempty"`
	Spectrum             *spectrum.Spectrum `json:"spectrum,omitempty"`
}

// SubmitAck acknowledges a submission. Duplicate submissions are
// acknowledged, not re-archived.
type SubmitAck struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

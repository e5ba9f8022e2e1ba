// Package question defines the questionnaire data model: questions,
// options, answer records, and the immutable question bank.
package question

import (
	"github.com/mirall/archetype/internal/domain/trait"
)

// Kind distinguishes single-pick questions from dual-pick ones.
type Kind string

const (
	// KindSingle requires exactly one option pick.
	KindSingle Kind = "single"
	// KindDual requires a most-like and a distinct second-like pick.
	KindDual Kind = "dual"
)

// Family tags which question family an entry belongs to. Dispatch on
// calibration behavior is by this enum, never by id-range inspection.
type Family string

const (
	// FamilyBase marks regular bank questions.
	FamilyBase Family = "base"
	// FamilyWeakSignal marks flat-profile calibration questions, merged
	// at half weight.
	FamilyWeakSignal Family = "weak_signal"
	// FamilyLowEnergy marks under-detected-archetype calibration
	// questions, merged at full weight.
	FamilyLowEnergy Family = "low_energy"
)

// CalibrationFamilies lists the families subject to calibration merge, in
// a fixed order for deterministic iteration.
func CalibrationFamilies() []Family {
	return []Family{FamilyWeakSignal, FamilyLowEnergy}
}

// Option is a selectable answer with its per-trait delta. Immutable after
// bank build.
type Option struct {
	Value  string       `json:"value" koanf:"value"`
	Text   string       `json:"text" koanf:"text"`
	Scores trait.Scores `json:"scores" koanf:"scores"`
	Tag    string       `json:"tag,omitempty" koanf:"tag"`
}

// Question is a single questionnaire entry.
type Question struct {
	ID       int      `json:"id" koanf:"id"`
	Scenario string   `json:"scenario" koanf:"scenario"`
	Prompt   string   `json:"prompt" koanf:"prompt"`
	Kind     Kind     `json:"kind" koanf:"kind"`
	Family   Family   `json:"family" koanf:"family"`
	Options  []Option `json:"options" koanf:"options"`

	// Discriminates lists the traits this question separates best. The
	// adaptive strategy and skip replacement key off it.
	Discriminates []trait.Key `json:"discriminates" koanf:"discriminates"`
}

// Option returns the option with the given value, or false when absent.
func (q Question) Option(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// DiscriminationOverlap counts how many discriminating traits q shares
// with other. Used to find a skip replacement targeting similar signal.
func (q Question) DiscriminationOverlap(other Question) int {
	n := 0
	for _, a := range q.Discriminates {
		for _, b := range other.Discriminates {
			if a == b {
				n++
			}
		}
	}
	return n
}

// Answer records a completed response to one question. For dual-kind
// questions both picks carry their own full recorded delta.
type Answer struct {
	QuestionID int    `json:"question_id"`
	Family     Family `json:"family"`

	// Picks holds the chosen option values: one for single-kind, two
	// (most-like then second-like) for dual-kind.
	Picks []string `json:"picks"`

	// Scores is the summed trait contribution of all picks.
	Scores trait.Scores `json:"scores"`
}

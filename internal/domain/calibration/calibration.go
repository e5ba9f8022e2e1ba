// Package calibration detects ambiguous mid-session patterns and owns
// the merge policy for calibration answers: weak-signal corroboration at
// half weight, low-energy correction at full weight.
package calibration

import (
	"context"

	"github.com/mirall/archetype/internal/domain/catalog"
	"github.com/mirall/archetype/internal/domain/match"
	"github.com/mirall/archetype/internal/domain/question"
	"github.com/mirall/archetype/internal/domain/session"
	"github.com/mirall/archetype/internal/domain/trait"
)

// Merge weights per family. Weak-signal answers corroborate rather than
// drive the profile, hence the documented half-weight discount.
const (
	WeakSignalWeight = 0.5
	LowEnergyWeight  = 1.0
)

// Default detection thresholds, in match percentage points. Product
// tuning constants; override via options.
const (
	DefaultFlatnessThreshold  = 6.0
	DefaultLowEnergyCloseness = 10.0
	DefaultMaxLowEnergyCount  = 3
)

// Checkpoint marks the two points where detection runs. Detection never
// runs after arbitrary answers.
type Checkpoint string

const (
	// CheckpointMid is evaluated once, after the designated mid-bank
	// question.
	CheckpointMid Checkpoint = "mid"
	// CheckpointEnd is evaluated once, after the last base question.
	CheckpointEnd Checkpoint = "end"
)

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithFlatnessThreshold overrides the weak-signal spread threshold.
func WithFlatnessThreshold(v float64) Option {
	return func(d *Detector) {
		if v > 0 {
			d.flatness = v
		}
	}
}

// WithLowEnergyCloseness overrides the low-energy closeness threshold.
func WithLowEnergyCloseness(v float64) Option {
	return func(d *Detector) {
		if v > 0 {
			d.closeness = v
		}
	}
}

// WithMaxLowEnergyCount caps how many low-energy questions are injected.
func WithMaxLowEnergyCount(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.maxLowEnergy = n
		}
	}
}

// Detector decides whether a calibration family should activate at a
// checkpoint.
type Detector struct {
	flatness     float64
	closeness    float64
	maxLowEnergy int
}

// NewDetector creates a Detector with default thresholds.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		flatness:     DefaultFlatnessThreshold,
		closeness:    DefaultLowEnergyCloseness,
		maxLowEnergy: DefaultMaxLowEnergyCount,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// MaxLowEnergyCount returns the injection cap for the low-energy family.
func (d *Detector) MaxLowEnergyCount() int { return d.maxLowEnergy }

// ShouldCalibrate reports which calibration family, if any, activates at
// the given checkpoint. A decisive ranking never calibrates, and each
// family fires at most once per session (re-detection is a no-op).
func (d *Detector) ShouldCalibrate(
	ctx context.Context,
	s *session.Session,
	res match.Result,
	cp Checkpoint,
	cat *catalog.Catalog,
) (question.Family, bool) {
	_ = ctx

	if res.Decisive {
		return "", false
	}

	switch cp {
	case CheckpointMid:
		if s.Calibrated(question.FamilyWeakSignal) {
			return "", false
		}
		// A profile too flat to separate the top two candidates.
		if res.Gap < d.flatness {
			return question.FamilyWeakSignal, true
		}
	case CheckpointEnd:
		if s.Calibrated(question.FamilyLowEnergy) {
			return "", false
		}
		if len(d.closeLowEnergy(res)) > 0 {
			return question.FamilyLowEnergy, true
		}
	}
	return "", false
}

// closeLowEnergy returns the low-energy archetypes trailing the top
// candidate within the closeness threshold, best first. The top candidate
// itself is excluded: if a low-energy archetype already leads, the base
// bank detected it fine.
func (d *Detector) closeLowEnergy(res match.Result) []match.Candidate {
	top := res.Primary()
	var out []match.Candidate
	for _, c := range res.Candidates[1:] {
		if !c.Archetype.LowEnergy {
			continue
		}
		if top.Percent-c.Percent <= d.closeness {
			out = append(out, c)
		}
	}
	return out
}

// Merge produces the final trait vector: base contributions unchanged,
// weak-signal sum added at half weight, low-energy sum added at full
// weight. Pure and idempotent; duplicate calibration answers cannot
// double-count because the session's answer map is keyed by question id.
func Merge(base, weakSignal, lowEnergy trait.Scores) trait.Scores {
	return base.Clone().
		AddScaled(weakSignal, WeakSignalWeight).
		AddScaled(lowEnergy, LowEnergyWeight)
}

// MergedScores computes the session's final raw trait vector.
func MergedScores(s *session.Session) trait.Scores {
	return Merge(
		s.BaseScores(),
		s.CalibrationScores(question.FamilyWeakSignal),
		s.CalibrationScores(question.FamilyLowEnergy),
	)
}

// FoldIntoBase rewrites the base answer list for submission: calibration
// question ids never leave the process, so each family's weighted sum is
// added into a designated base answer's scores. Weak-signal folds into
// the answer with checkpointID, low-energy into the final base answer.
// Base contributions themselves are never substituted.
func FoldIntoBase(answers []question.Answer, checkpointID int) []question.Answer {
	weak := session.FamilySum(answers, question.FamilyWeakSignal)
	low := session.FamilySum(answers, question.FamilyLowEnergy)

	var out []question.Answer
	for _, a := range answers {
		if a.Family != question.FamilyBase {
			continue
		}
		folded := a
		folded.Scores = a.Scores.Clone()
		folded.Picks = append([]string(nil), a.Picks...)
		out = append(out, folded)
	}
	if len(out) == 0 {
		return out
	}

	if !weak.IsZero() {
		target := len(out) - 1
		for i, a := range out {
			if a.QuestionID == checkpointID {
				target = i
				break
			}
		}
		out[target].Scores.AddScaled(weak, WeakSignalWeight)
	}
	if !low.IsZero() {
		out[len(out)-1].Scores.AddScaled(low, LowEnergyWeight)
	}
	return out
}

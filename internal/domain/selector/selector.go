// Package selector drives the adaptive question loop: given a session,
// pick the next question or decide the questionnaire is complete. Two
// strategies implement one interface and are chosen once at session
// start.
package selector

import (
	"context"
	"fmt"

	"github.com/mirall/archetype/internal/domain/calibration"
	"github.com/mirall/archetype/internal/domain/catalog"
	"github.com/mirall/archetype/internal/domain/match"
	"github.com/mirall/archetype/internal/domain/question"
	"github.com/mirall/archetype/internal/domain/session"
)

// Strategy names accepted at session start.
const (
	StrategyFixed    = "fixed"
	StrategyAdaptive = "adaptive"
)

// Defaults for loop shape. All overridable via options.
const (
	// DefaultCheckpointIndex is the base-answer count at which the
	// weak-signal checkpoint is evaluated.
	DefaultCheckpointIndex = 6
	// DefaultMaxSessionLength caps the adaptive strategy's base
	// questions even under adversarial answers.
	DefaultMaxSessionLength = 16
	// remainingFloor is the minimum claimed estimate while incomplete.
	remainingFloor = 1
)

// Strategy selects the next question for a session. Next returns (nil,
// nil) when the questionnaire is complete: the question source is
// exhausted and no calibration family is pending. Implementations are
// stateless across sessions; every per-session fact lives in the
// Session, so a shared Strategy instance serves all sessions.
type Strategy interface {
	// Name returns the strategy identifier recorded on sessions.
	Name() string

	// Next returns the question to present, or nil when complete.
	// Deterministic given the same answers-so-far.
	Next(ctx context.Context, s *session.Session) (*question.Question, error)

	// EstimatedRemaining estimates how many questions are still ahead.
	// Never below 1 while incomplete; 0 once complete.
	EstimatedRemaining(ctx context.Context, s *session.Session) int
}

// deps bundles what both strategies share.
type deps struct {
	bank     *question.Bank
	cat      *catalog.Catalog
	matcher  *match.Matcher
	detector *calibration.Detector

	checkpointIndex  int
	maxSessionLength int
}

// Option applies a configuration option to a strategy.
type Option func(*deps)

// WithCheckpointIndex overrides the weak-signal checkpoint position.
func WithCheckpointIndex(n int) Option {
	return func(d *deps) {
		if n > 0 {
			d.checkpointIndex = n
		}
	}
}

// WithMaxSessionLength overrides the adaptive base-question cap.
func WithMaxSessionLength(n int) Option {
	return func(d *deps) {
		if n > 0 {
			d.maxSessionLength = n
		}
	}
}

// New builds the named strategy.
func New(
	name string,
	bank *question.Bank,
	cat *catalog.Catalog,
	matcher *match.Matcher,
	detector *calibration.Detector,
	opts ...Option,
) (Strategy, error) {
	d := deps{
		bank:             bank,
		cat:              cat,
		matcher:          matcher,
		detector:         detector,
		checkpointIndex:  DefaultCheckpointIndex,
		maxSessionLength: DefaultMaxSessionLength,
	}
	for _, opt := range opts {
		opt(&d)
	}

	switch name {
	case StrategyFixed:
		return &Fixed{deps: d}, nil
	case StrategyAdaptive:
		return &Adaptive{deps: d}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// available reports whether a question can still be presented.
func available(s *session.Session, q question.Question) bool {
	return !s.Answered(q.ID) && !s.Skipped(q.ID)
}

// queuedNext serves the oldest queued replacement that is still
// presentable.
func (d *deps) queuedNext(s *session.Session) *question.Question {
	for _, id := range s.QueuedIDs() {
		q, err := d.bank.Get(id)
		if err != nil {
			continue
		}
		if available(s, q) {
			return &q
		}
	}
	return nil
}

// firstAvailable returns the first presentable question from the list.
func firstAvailable(s *session.Session, qs []question.Question) *question.Question {
	for _, q := range qs {
		if available(s, q) {
			return &q
		}
	}
	return nil
}

// rank computes the current standing from the merged trait vector.
func (d *deps) rank(ctx context.Context, s *session.Session) match.Result {
	return d.matcher.Rank(ctx, calibration.MergedScores(s), d.cat)
}

// runCheckpoint evaluates one calibration checkpoint and flags the
// session when a family activates. Re-evaluating an already-active
// family is a no-op inside the detector, so repeated calls are safe.
func (d *deps) runCheckpoint(ctx context.Context, s *session.Session, cp calibration.Checkpoint) {
	res := d.rank(ctx, s)
	if fam, ok := d.detector.ShouldCalibrate(ctx, s, res, cp, d.cat); ok {
		s.MarkCalibrated(fam)
	}
}

// pendingWeakSignal returns the single weak-signal question to serve
// while that family is active and unanswered.
func (d *deps) pendingWeakSignal(s *session.Session) *question.Question {
	if !s.Calibrated(question.FamilyWeakSignal) {
		return nil
	}
	if len(s.FamilyAnswers(question.FamilyWeakSignal)) > 0 {
		return nil
	}
	return firstAvailable(s, d.bank.Family(question.FamilyWeakSignal))
}

// pendingLowEnergy returns the next low-energy question while that
// family is active and under its injection cap.
func (d *deps) pendingLowEnergy(s *session.Session) *question.Question {
	if !s.Calibrated(question.FamilyLowEnergy) {
		return nil
	}
	if len(s.FamilyAnswers(question.FamilyLowEnergy)) >= d.detector.MaxLowEnergyCount() {
		return nil
	}
	return firstAvailable(s, d.bank.Family(question.FamilyLowEnergy))
}

// Skip consumes one skip for the presented question and queues a
// replacement targeting similar signal (largest discrimination overlap,
// id as tie-break) from the same family. Returns the replacement, or nil
// when no similar question remains. Exhausted skip budgets surface
// session.ErrSkipLimit; the presented question stays pending and the
// session can always complete by answering it.
func Skip(ctx context.Context, bank *question.Bank, s *session.Session, questionID int) (*question.Question, error) {
	_ = ctx

	skipped, err := bank.Get(questionID)
	if err != nil {
		return nil, err
	}
	if s.Answered(questionID) {
		return nil, fmt.Errorf("%w: question %d already answered", question.ErrUnknownQuestion, questionID)
	}
	if err := s.RecordSkip(questionID); err != nil {
		return nil, err
	}

	var best *question.Question
	bestOverlap := -1
	for _, q := range bank.ReplacementPool(skipped.Family) {
		if q.ID == questionID || !available(s, q) {
			continue
		}
		if overlap := skipped.DiscriminationOverlap(q); overlap > bestOverlap {
			bestOverlap = overlap
			candidate := q
			best = &candidate
		}
	}
	if best != nil {
		s.QueueQuestion(best.ID)
	}
	return best, nil
}

package selector

import (
	"context"
	"math"

	"github.com/mirall/archetype/internal/domain/calibration"
	"github.com/mirall/archetype/internal/domain/match"
	"github.com/mirall/archetype/internal/domain/question"
	"github.com/mirall/archetype/internal/domain/session"
)

// Adaptive re-ranks after every answer and serves whichever unanswered
// base question best separates the current top two candidates. It stops
// asking once the ranking turns decisive, the bank runs dry, or the
// session cap is hit.
type Adaptive struct {
	deps
}

// Name implements Strategy.
func (a *Adaptive) Name() string { return StrategyAdaptive }

// Next implements Strategy.
func (a *Adaptive) Next(ctx context.Context, s *session.Session) (*question.Question, error) {
	if s.BaseAnsweredCount() == a.checkpointIndex {
		a.runCheckpoint(ctx, s, calibration.CheckpointMid)
	}
	if q := a.pendingWeakSignal(s); q != nil {
		return q, nil
	}

	res := a.rank(ctx, s)
	if !res.Decisive && s.BaseAnsweredCount() < a.maxSessionLength {
		if q := a.queuedNext(s); q != nil {
			return q, nil
		}
		if q := a.bestDiscriminator(s, res); q != nil {
			return q, nil
		}
	}

	a.runCheckpoint(ctx, s, calibration.CheckpointEnd)
	if q := a.pendingLowEnergy(s); q != nil {
		return q, nil
	}
	return nil, nil
}

// bestDiscriminator picks the presentable base question whose declared
// discriminating traits carry the largest summed weight delta between
// the current top two archetypes. Bank declaration order breaks ties, so
// selection is deterministic for identical answers-so-far.
func (a *Adaptive) bestDiscriminator(s *session.Session, res match.Result) *question.Question {
	top := res.Primary().Archetype
	runner := res.RunnerUp().Archetype

	var best *question.Question
	bestScore := -1.0
	for _, q := range a.bank.Base() {
		if !available(s, q) {
			continue
		}
		var score float64
		for _, t := range q.Discriminates {
			delta := top.Weight(t) - runner.Weight(t)
			if delta < 0 {
				delta = -delta
			}
			score += delta
		}
		if score > bestScore {
			bestScore = score
			candidate := q
			best = &candidate
		}
	}
	return best
}

// EstimatedRemaining implements Strategy. The estimate shrinks as the
// gap between the top two candidates approaches the decisive threshold,
// never claims fewer than one question while incomplete, and never
// exceeds what the session cap still allows.
func (a *Adaptive) EstimatedRemaining(ctx context.Context, s *session.Session) int {
	res := a.rank(ctx, s)
	answered := s.BaseAnsweredCount()

	pendingCalibration := 0
	if a.pendingWeakSignal(s) != nil {
		pendingCalibration++
	}
	if s.Calibrated(question.FamilyLowEnergy) {
		left := a.detector.MaxLowEnergyCount() - len(s.FamilyAnswers(question.FamilyLowEnergy))
		if left > 0 {
			pendingCalibration += left
		}
	}

	baseDone := res.Decisive || answered >= a.maxSessionLength || a.noBaseAvailable(s)
	if baseDone {
		return pendingCalibration
	}

	left := a.maxSessionLength - answered
	frac := 1 - res.Gap/a.matcher.DecisiveGap()
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	est := int(math.Ceil(frac * float64(left)))
	if est < remainingFloor {
		est = remainingFloor
	}
	if est > left {
		est = left
	}
	return est + pendingCalibration
}

func (a *Adaptive) noBaseAvailable(s *session.Session) bool {
	for _, q := range a.bank.Base() {
		if available(s, q) {
			return false
		}
	}
	return true
}

package selector

import (
	"context"

	"github.com/mirall/archetype/internal/domain/calibration"
	"github.com/mirall/archetype/internal/domain/question"
	"github.com/mirall/archetype/internal/domain/session"
)

// Fixed walks a constant ordered bank of base questions. The weak-signal
// checkpoint is evaluated once mid-sequence and may splice in one
// calibration question; the low-energy checkpoint runs after the last
// base question and may append up to three more.
type Fixed struct {
	deps
}

// Name implements Strategy.
func (f *Fixed) Name() string { return StrategyFixed }

// Next implements Strategy.
func (f *Fixed) Next(ctx context.Context, s *session.Session) (*question.Question, error) {
	if s.BaseAnsweredCount() == f.checkpointIndex {
		f.runCheckpoint(ctx, s, calibration.CheckpointMid)
	}
	if q := f.pendingWeakSignal(s); q != nil {
		return q, nil
	}

	if s.BaseAnsweredCount() < f.bank.FixedLength() {
		if q := f.queuedNext(s); q != nil {
			return q, nil
		}
		if q := firstAvailable(s, f.bank.FixedSequence()); q != nil {
			return q, nil
		}
		// Skips drained the sequence and no replacements remain; the
		// base phase ends short rather than blocking completion.
	}

	f.runCheckpoint(ctx, s, calibration.CheckpointEnd)
	if q := f.pendingLowEnergy(s); q != nil {
		return q, nil
	}
	return nil, nil
}

// EstimatedRemaining implements Strategy. The fixed strategy counts what
// is literally left: presentable sequence questions, pending
// replacements, and any active calibration questions. Calibration that
// has not triggered yet is not speculated about.
func (f *Fixed) EstimatedRemaining(ctx context.Context, s *session.Session) int {
	_ = ctx

	remaining := 0
	if s.BaseAnsweredCount() < f.bank.FixedLength() {
		inSequence := make(map[int]struct{}, f.bank.FixedLength())
		for _, q := range f.bank.FixedSequence() {
			inSequence[q.ID] = struct{}{}
			if available(s, q) {
				remaining++
			}
		}
		counted := make(map[int]struct{})
		for _, id := range s.QueuedIDs() {
			if _, dup := counted[id]; dup {
				continue
			}
			if _, seq := inSequence[id]; seq {
				continue
			}
			q, err := f.bank.Get(id)
			if err != nil || !available(s, q) {
				continue
			}
			counted[id] = struct{}{}
			remaining++
		}
	}

	if f.pendingWeakSignal(s) != nil {
		remaining++
	}
	if s.Calibrated(question.FamilyLowEnergy) {
		left := f.detector.MaxLowEnergyCount() - len(s.FamilyAnswers(question.FamilyLowEnergy))
		avail := 0
		for _, q := range f.bank.Family(question.FamilyLowEnergy) {
			if available(s, q) {
				avail++
			}
		}
		if left > avail {
			left = avail
		}
		if left > 0 {
			remaining += left
		}
	}
	return remaining
}

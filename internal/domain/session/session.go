// Package session tracks one user's assessment in progress: the ordered
// answer list, skip budget, calibration state, and serializable
// snapshots for resumability.
package session

import (
	"fmt"
	"time"

	"github.com/mirall/archetype/internal/domain/question"
	"github.com/mirall/archetype/internal/domain/trait"
)

// DefaultMaxSkips bounds how many presented questions a user may decline.
const DefaultMaxSkips = 3

// Session is the mutable per-user assessment state. The final trait
// vector and ranking are a pure function of the ordered answer list, so
// a replayed session always reproduces the same result.
type Session struct {
	id       string
	strategy string

	answers []question.Answer
	index   map[int]int // question id -> position in answers

	answeredCount int
	skipsUsed     int
	maxSkips      int
	skippedIDs    []int
	queuedIDs     []int

	calibrated map[question.Family]bool
	submitted  bool
}

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithMaxSkips overrides the skip budget.
func WithMaxSkips(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxSkips = n
		}
	}
}

// New creates an empty session for the given id and strategy name.
func New(id, strategy string, opts ...Option) *Session {
	s := &Session{
		id:         id,
		strategy:   strategy,
		index:      make(map[int]int),
		maxSkips:   DefaultMaxSkips,
		calibrated: make(map[question.Family]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Strategy returns the strategy name chosen at session start.
func (s *Session) Strategy() string { return s.strategy }

// Record stores an answer. Answering an already-answered question id
// replaces the prior answer in place, which makes repeated identical
// submissions idempotent and keeps the ordered list stable.
func (s *Session) Record(ans question.Answer) {
	if pos, ok := s.index[ans.QuestionID]; ok {
		s.answers[pos] = ans
		return
	}
	s.index[ans.QuestionID] = len(s.answers)
	s.answers = append(s.answers, ans)
	s.answeredCount++
}

// Answered reports whether the question id has been answered.
func (s *Session) Answered(id int) bool {
	_, ok := s.index[id]
	return ok
}

// AnsweredCount returns the monotonically increasing count of distinct
// answered questions.
func (s *Session) AnsweredCount() int { return s.answeredCount }

// Answers returns a copy of the ordered answer list.
func (s *Session) Answers() []question.Answer {
	return append([]question.Answer(nil), s.answers...)
}

// FamilyAnswers returns the ordered answers belonging to one family.
func (s *Session) FamilyAnswers(f question.Family) []question.Answer {
	var out []question.Answer
	for _, a := range s.answers {
		if a.Family == f {
			out = append(out, a)
		}
	}
	return out
}

// BaseAnsweredCount counts answered base-family questions.
func (s *Session) BaseAnsweredCount() int {
	n := 0
	for _, a := range s.answers {
		if a.Family == question.FamilyBase {
			n++
		}
	}
	return n
}

// CanSkip reports whether the skip budget allows another skip.
func (s *Session) CanSkip() bool { return s.skipsUsed < s.maxSkips }

// RecordSkip consumes one skip for the given question id. Exhausting the
// budget disables further skips but never blocks completion.
func (s *Session) RecordSkip(questionID int) error {
	if !s.CanSkip() {
		return fmt.Errorf("%w: %d of %d used", ErrSkipLimit, s.skipsUsed, s.maxSkips)
	}
	s.skipsUsed++
	s.skippedIDs = append(s.skippedIDs, questionID)
	return nil
}

// SkipsUsed returns how many skips have been consumed.
func (s *Session) SkipsUsed() int { return s.skipsUsed }

// Skipped reports whether the question id was skipped earlier.
func (s *Session) Skipped(id int) bool {
	for _, q := range s.skippedIDs {
		if q == id {
			return true
		}
	}
	return false
}

// QueueQuestion schedules a replacement question to be served before the
// regular sequence continues. Queued ids already answered or skipped are
// ignored at serve time, so queueing is append-only.
func (s *Session) QueueQuestion(id int) {
	s.queuedIDs = append(s.queuedIDs, id)
}

// QueuedIDs returns the ordered replacement queue.
func (s *Session) QueuedIDs() []int {
	return append([]int(nil), s.queuedIDs...)
}

// MarkCalibrated flags a calibration family as triggered. Returns false
// when the family was already active: double-trigger is a defensive
// no-op, not an error.
func (s *Session) MarkCalibrated(f question.Family) bool {
	if s.calibrated[f] {
		return false
	}
	s.calibrated[f] = true
	return true
}

// Calibrated reports whether a family has been triggered this session.
func (s *Session) Calibrated(f question.Family) bool { return s.calibrated[f] }

// CalibrationActive reports whether any calibration family is triggered.
func (s *Session) CalibrationActive() bool {
	for _, f := range question.CalibrationFamilies() {
		if s.calibrated[f] {
			return true
		}
	}
	return false
}

// MarkSubmitted records that the session's result has been submitted.
func (s *Session) MarkSubmitted() { s.submitted = true }

// Submitted reports whether the session has been submitted.
func (s *Session) Submitted() bool { return s.submitted }

// Snapshot serializes the session for the resumable store. SavedAt is
// stamped now; stores reject snapshots past their expiry window.
func (s *Session) Snapshot() Snapshot {
	calibrated := make(map[question.Family]bool, len(s.calibrated))
	for f, v := range s.calibrated {
		calibrated[f] = v
	}
	return Snapshot{
		ID:            s.id,
		Strategy:      s.strategy,
		Answers:       s.Answers(),
		AnsweredCount: s.answeredCount,
		SkipsUsed:     s.skipsUsed,
		SkippedIDs:    append([]int(nil), s.skippedIDs...),
		QueuedIDs:     append([]int(nil), s.queuedIDs...),
		Calibrated:    calibrated,
		Submitted:     s.submitted,
		SavedAt:       time.Now().UTC(),
	}
}

// Accumulate folds the base-family answers of the ordered list into one
// raw trait vector. Calibration families are excluded here; their merge
// weights differ and are applied by the calibration package at result
// time. Idempotent and side-effect free.
func Accumulate(answers []question.Answer) trait.Scores {
	sum := trait.NewScores()
	for _, a := range answers {
		if a.Family != question.FamilyBase {
			continue
		}
		sum.Add(a.Scores)
	}
	return sum
}

// FamilySum folds the answers of one family into a raw trait vector.
func FamilySum(answers []question.Answer, f question.Family) trait.Scores {
	sum := trait.NewScores()
	for _, a := range answers {
		if a.Family == f {
			sum.Add(a.Scores)
		}
	}
	return sum
}

// BaseScores returns the session's raw base trait vector.
func (s *Session) BaseScores() trait.Scores {
	return Accumulate(s.answers)
}

// CalibrationScores returns the raw summed vector for one calibration
// family.
func (s *Session) CalibrationScores(f question.Family) trait.Scores {
	return FamilySum(s.answers, f)
}

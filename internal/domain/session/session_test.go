package session_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mirall/archetype/internal/domain/question"
	"github.com/mirall/archetype/internal/domain/session"
	"github.com/mirall/archetype/internal/domain/trait"
)

func baseAnswer(id int, deltas trait.Scores) question.Answer {
	scores := trait.NewScores().Add(deltas)
	return question.Answer{
		QuestionID: id,
		Family:     question.FamilyBase,
		Picks:      []string{"a"},
		Scores:     scores,
	}
}

func TestRecord(t *testing.T) {
	Convey("Given an empty session", t, func() {
		s := session.New("s-1", "fixed")

		Convey("When recording answers", func() {
			s.Record(baseAnswer(1, trait.Scores{trait.Affinity: 3}))
			s.Record(baseAnswer(2, trait.Scores{trait.Openness: 5}))

			Convey("Then counts and order reflect the recording", func() {
				So(s.AnsweredCount(), ShouldEqual, 2)
				So(s.Answered(1), ShouldBeTrue)
				So(s.Answered(3), ShouldBeFalse)
				answers := s.Answers()
				So(answers[0].QuestionID, ShouldEqual, 1)
				So(answers[1].QuestionID, ShouldEqual, 2)
			})

			Convey("And re-answering a question replaces in place", func() {
				s.Record(baseAnswer(1, trait.Scores{trait.Affinity: 7}))
				So(s.AnsweredCount(), ShouldEqual, 2)
				answers := s.Answers()
				So(answers[0].QuestionID, ShouldEqual, 1)
				So(answers[0].Scores[trait.Affinity], ShouldEqual, 7)
			})

			Convey("And repeating the identical answer changes nothing", func() {
				before := s.BaseScores()
				s.Record(baseAnswer(2, trait.Scores{trait.Openness: 5}))
				So(s.AnsweredCount(), ShouldEqual, 2)
				So(s.BaseScores().Equal(before), ShouldBeTrue)
			})
		})
	})
}

func TestAccumulate(t *testing.T) {
	Convey("Given answers across families", t, func() {
		answers := []question.Answer{
			baseAnswer(1, trait.Scores{trait.Affinity: 4}),
			baseAnswer(2, trait.Scores{trait.Affinity: 2, trait.Openness: 3}),
			{
				QuestionID: 101,
				Family:     question.FamilyWeakSignal,
				Picks:      []string{"a"},
				Scores:     trait.NewScores().Add(trait.Scores{trait.Affinity: 8}),
			},
		}

		Convey("Then Accumulate sums base answers only", func() {
			sum := session.Accumulate(answers)
			So(sum[trait.Affinity], ShouldEqual, 6)
			So(sum[trait.Openness], ShouldEqual, 3)
		})

		Convey("Then FamilySum isolates one family", func() {
			weak := session.FamilySum(answers, question.FamilyWeakSignal)
			So(weak[trait.Affinity], ShouldEqual, 8)
			So(weak[trait.Openness], ShouldEqual, 0)
		})
	})
}

func TestSkips(t *testing.T) {
	Convey("Given a session with the default skip budget", t, func() {
		s := session.New("s-1", "fixed")

		Convey("When skipping up to the budget", func() {
			So(s.RecordSkip(1), ShouldBeNil)
			So(s.RecordSkip(2), ShouldBeNil)
			So(s.RecordSkip(3), ShouldBeNil)

			Convey("Then the budget is exhausted", func() {
				So(s.CanSkip(), ShouldBeFalse)
				So(s.SkipsUsed(), ShouldEqual, 3)
				So(s.Skipped(2), ShouldBeTrue)
				So(s.Skipped(9), ShouldBeFalse)
			})

			Convey("And a fourth skip fails", func() {
				So(s.RecordSkip(4), ShouldWrap, session.ErrSkipLimit)
			})
		})
	})

	Convey("Given a custom skip budget", t, func() {
		s := session.New("s-1", "fixed", session.WithMaxSkips(1))

		Convey("Then only one skip is allowed", func() {
			So(s.RecordSkip(1), ShouldBeNil)
			So(s.RecordSkip(2), ShouldWrap, session.ErrSkipLimit)
		})
	})
}

func TestCalibrationFlags(t *testing.T) {
	Convey("Given a session", t, func() {
		s := session.New("s-1", "adaptive")

		Convey("Then no calibration is active initially", func() {
			So(s.CalibrationActive(), ShouldBeFalse)
		})

		Convey("When marking a family", func() {
			So(s.MarkCalibrated(question.FamilyWeakSignal), ShouldBeTrue)

			Convey("Then it reports active", func() {
				So(s.Calibrated(question.FamilyWeakSignal), ShouldBeTrue)
				So(s.CalibrationActive(), ShouldBeTrue)
			})

			Convey("And marking again is a no-op", func() {
				So(s.MarkCalibrated(question.FamilyWeakSignal), ShouldBeFalse)
			})
		})
	})
}

func TestSnapshot(t *testing.T) {
	Convey("Given a session with state worth keeping", t, func() {
		s := session.New("s-42", "adaptive", session.WithMaxSkips(3))
		s.Record(baseAnswer(1, trait.Scores{trait.Affinity: 4}))
		s.Record(baseAnswer(2, trait.Scores{trait.Extraversion: 6}))
		So(s.RecordSkip(3), ShouldBeNil)
		s.QueueQuestion(14)
		s.MarkCalibrated(question.FamilyWeakSignal)

		Convey("When snapshotting and restoring", func() {
			snap := s.Snapshot()
			restored, err := session.Restore(snap, session.WithMaxSkips(3))

			Convey("Then every fact round-trips", func() {
				So(err, ShouldBeNil)
				So(restored.ID(), ShouldEqual, "s-42")
				So(restored.Strategy(), ShouldEqual, "adaptive")
				So(restored.AnsweredCount(), ShouldEqual, 2)
				So(restored.SkipsUsed(), ShouldEqual, 1)
				So(restored.Skipped(3), ShouldBeTrue)
				So(restored.QueuedIDs(), ShouldResemble, []int{14})
				So(restored.Calibrated(question.FamilyWeakSignal), ShouldBeTrue)
				So(restored.BaseScores().Equal(s.BaseScores()), ShouldBeTrue)
			})
		})

		Convey("When the snapshot is tampered with", func() {
			snap := s.Snapshot()
			snap.AnsweredCount = 99

			Convey("Then restore rejects it", func() {
				_, err := session.Restore(snap)
				So(err, ShouldWrap, session.ErrMalformedSnapshot)
			})
		})

		Convey("When checking expiry", func() {
			snap := s.Snapshot()

			Convey("Then a fresh snapshot is not expired", func() {
				So(snap.Expired(time.Now(), time.Hour), ShouldBeFalse)
			})

			Convey("And an old one is", func() {
				So(snap.Expired(time.Now().Add(2*time.Hour), time.Hour), ShouldBeTrue)
			})
		})
	})
}

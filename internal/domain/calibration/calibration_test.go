package calibration_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mirall/archetype/internal/domain/calibration"
	"github.com/mirall/archetype/internal/domain/catalog"
	"github.com/mirall/archetype/internal/domain/match"
	"github.com/mirall/archetype/internal/domain/question"
	"github.com/mirall/archetype/internal/domain/session"
	"github.com/mirall/archetype/internal/domain/trait"
)

func vector(deltas trait.Scores) trait.Scores {
	return trait.NewScores().Add(deltas)
}

func baseAnswer(id int, deltas trait.Scores) question.Answer {
	return question.Answer{
		QuestionID: id,
		Family:     question.FamilyBase,
		Picks:      []string{"a"},
		Scores:     vector(deltas),
	}
}

func calibrationAnswer(id int, f question.Family, deltas trait.Scores) question.Answer {
	return question.Answer{
		QuestionID: id,
		Family:     f,
		Picks:      []string{"a"},
		Scores:     vector(deltas),
	}
}

func TestMerge(t *testing.T) {
	Convey("Given base and calibration sums", t, func() {
		base := vector(trait.Scores{trait.Openness: 20})
		weak := vector(trait.Scores{trait.Openness: 10})
		low := vector(trait.Scores{trait.Extraversion: -6, trait.EmotionalStability: 6})

		Convey("When merging", func() {
			merged := calibration.Merge(base, weak, low)

			Convey("Then weak-signal contributes at half weight", func() {
				So(merged[trait.Openness], ShouldEqual, 25)
			})

			Convey("And low-energy contributes at full weight", func() {
				So(merged[trait.Extraversion], ShouldEqual, -6)
				So(merged[trait.EmotionalStability], ShouldEqual, 6)
			})

			Convey("And the inputs are untouched", func() {
				So(base[trait.Openness], ShouldEqual, 20)
			})
		})

		Convey("When the half weight does not divide evenly", func() {
			odd := vector(trait.Scores{trait.Openness: 5})
			merged := calibration.Merge(base, odd, trait.NewScores())

			Convey("Then the scaled delta truncates toward zero", func() {
				So(merged[trait.Openness], ShouldEqual, 22)
			})
		})
	})
}

func TestMergedScores(t *testing.T) {
	Convey("Given a session with answers from all families", t, func() {
		s := session.New("s-1", "fixed")
		s.Record(baseAnswer(1, trait.Scores{trait.Affinity: 10}))
		s.Record(calibrationAnswer(101, question.FamilyWeakSignal, trait.Scores{trait.Affinity: 8}))
		s.Record(calibrationAnswer(201, question.FamilyLowEnergy, trait.Scores{trait.Extraversion: -5}))

		Convey("Then the merged vector applies each family's weight", func() {
			merged := calibration.MergedScores(s)
			So(merged[trait.Affinity], ShouldEqual, 14)
			So(merged[trait.Extraversion], ShouldEqual, -5)
		})

		Convey("And re-merging is idempotent", func() {
			first := calibration.MergedScores(s)
			second := calibration.MergedScores(s)
			So(first.Equal(second), ShouldBeTrue)
		})
	})
}

func TestShouldCalibrate(t *testing.T) {
	Convey("Given the default detector and catalog", t, func() {
		ctx := context.Background()
		cat, err := catalog.New(catalog.DefaultArchetypes())
		So(err, ShouldBeNil)
		m := match.New()
		d := calibration.NewDetector()

		Convey("When the mid-session profile is flat", func() {
			s := session.New("s-1", "fixed")
			res := m.Rank(ctx, vector(trait.Scores{trait.Affinity: 10}), cat)
			So(res.Gap, ShouldBeLessThan, calibration.DefaultFlatnessThreshold)

			Convey("Then the weak-signal family activates", func() {
				fam, ok := d.ShouldCalibrate(ctx, s, res, calibration.CheckpointMid, cat)
				So(ok, ShouldBeTrue)
				So(fam, ShouldEqual, question.FamilyWeakSignal)
			})

			Convey("And an already-active family never re-fires", func() {
				s.MarkCalibrated(question.FamilyWeakSignal)
				_, ok := d.ShouldCalibrate(ctx, s, res, calibration.CheckpointMid, cat)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the ranking is decisive", func() {
			s := session.New("s-1", "fixed")
			res := m.Rank(ctx, vector(trait.Scores{trait.Conscientiousness: 100}), cat)
			So(res.Decisive, ShouldBeTrue)

			Convey("Then nothing calibrates at either checkpoint", func() {
				_, ok := d.ShouldCalibrate(ctx, s, res, calibration.CheckpointMid, cat)
				So(ok, ShouldBeFalse)
				_, ok = d.ShouldCalibrate(ctx, s, res, calibration.CheckpointEnd, cat)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a low-energy archetype trails the leader closely", func() {
			s := session.New("s-1", "fixed")
			res := m.Rank(ctx, vector(trait.Scores{trait.EmotionalStability: 100}), cat)
			So(res.Decisive, ShouldBeFalse)

			Convey("Then the low-energy family activates at the end checkpoint", func() {
				fam, ok := d.ShouldCalibrate(ctx, s, res, calibration.CheckpointEnd, cat)
				So(ok, ShouldBeTrue)
				So(fam, ShouldEqual, question.FamilyLowEnergy)
			})

			Convey("But not at the mid checkpoint when the gap is wide enough", func() {
				// The end condition is about closeness to low-energy
				// archetypes, not flatness.
				if res.Gap >= calibration.DefaultFlatnessThreshold {
					_, ok := d.ShouldCalibrate(ctx, s, res, calibration.CheckpointMid, cat)
					So(ok, ShouldBeFalse)
				}
			})
		})
	})
}

func TestFoldIntoBase(t *testing.T) {
	Convey("Given answers with calibration contributions", t, func() {
		answers := []question.Answer{
			baseAnswer(1, trait.Scores{trait.Affinity: 4}),
			baseAnswer(2, trait.Scores{trait.Openness: 6}),
			baseAnswer(3, trait.Scores{trait.Extraversion: 2}),
			calibrationAnswer(101, question.FamilyWeakSignal, trait.Scores{trait.Openness: 10}),
			calibrationAnswer(201, question.FamilyLowEnergy, trait.Scores{trait.Extraversion: -6}),
		}

		Convey("When folding with question 2 as the checkpoint", func() {
			folded := calibration.FoldIntoBase(answers, 2)

			Convey("Then only base question ids remain", func() {
				So(len(folded), ShouldEqual, 3)
				So(folded[0].QuestionID, ShouldEqual, 1)
				So(folded[1].QuestionID, ShouldEqual, 2)
				So(folded[2].QuestionID, ShouldEqual, 3)
			})

			Convey("And the weak-signal half-weight lands on the checkpoint answer", func() {
				So(folded[1].Scores[trait.Openness], ShouldEqual, 11)
			})

			Convey("And the low-energy full weight lands on the last base answer", func() {
				So(folded[2].Scores[trait.Extraversion], ShouldEqual, -4)
			})

			Convey("And the originals are untouched", func() {
				So(answers[1].Scores[trait.Openness], ShouldEqual, 6)
				So(answers[2].Scores[trait.Extraversion], ShouldEqual, 2)
			})

			Convey("And the folded total matches the merged vector", func() {
				merged := calibration.Merge(
					session.Accumulate(answers),
					session.FamilySum(answers, question.FamilyWeakSignal),
					session.FamilySum(answers, question.FamilyLowEnergy),
				)
				So(session.Accumulate(folded).Equal(merged), ShouldBeTrue)
			})
		})

		Convey("When the checkpoint id is absent", func() {
			folded := calibration.FoldIntoBase(answers, 77)

			Convey("Then the weak-signal sum falls back to the last base answer", func() {
				So(folded[2].Scores[trait.Openness], ShouldEqual, 5)
			})
		})

		Convey("When no base answers exist", func() {
			onlyCal := []question.Answer{
				calibrationAnswer(101, question.FamilyWeakSignal, trait.Scores{trait.Openness: 10}),
			}

			Convey("Then the fold is empty", func() {
				So(len(calibration.FoldIntoBase(onlyCal, 1)), ShouldEqual, 0)
			})
		})
	})
}

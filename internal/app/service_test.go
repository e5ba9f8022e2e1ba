package service_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mirall/archetype/internal/adapters/archive"
	"github.com/mirall/archetype/internal/adapters/sessionstore"
	service "github.com/mirall/archetype/internal/app"
	"github.com/mirall/archetype/internal/config"
	"github.com/mirall/archetype/internal/domain/question"
	"github.com/mirall/archetype/internal/domain/selector"
	"github.com/mirall/archetype/internal/domain/session"
	"github.com/mirall/archetype/internal/domain/trait"
	"github.com/mirall/archetype/pkg/logger"
	"github.com/mirall/archetype/pkg/metrics"
)

func init() {
	logger.Init()
}

// answerAll walks a session to completion, always picking the first
// option(s) of each served question. Returns how many questions were
// answered.
func answerAll(ctx context.Context, svc *service.Service, sessionID string) int {
	answered := 0
	for i := 0; i < 32; i++ {
		next, err := svc.NextQuestion(ctx, sessionID)
		So(err, ShouldBeNil)
		if next.Complete {
			return answered
		}
		q := next.Question
		So(q, ShouldNotBeNil)
		picks := []string{q.Options[0].Value}
		if q.PickCount == 2 {
			picks = append(picks, q.Options[1].Value)
		}
		So(svc.RecordAnswer(ctx, sessionID, q.ID, picks), ShouldBeNil)
		answered++
	}
	return answered
}

func waitForArchived(ctx context.Context, store *archive.MemoryStore, want int) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if store.Count(ctx) >= want {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestAssessmentLifecycle(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		archived := archive.NewMemoryStore()
		svc := service.New(
			service.WithConfig(config.New()),
			service.WithArchive(archived),
		)
		So(svc.Start(ctx), ShouldBeNil)
		Reset(svc.Stop)

		Convey("When a full fixed assessment runs", func() {
			started, err := svc.StartAssessment(ctx, "", "")
			So(err, ShouldBeNil)
			So(started.SessionID, ShouldNotBeEmpty)
			So(started.Strategy, ShouldEqual, "fixed")
			So(started.Resumed, ShouldBeFalse)

			answered := answerAll(ctx, svc, started.SessionID)
			So(answered, ShouldBeGreaterThanOrEqualTo, 12)

			Convey("Then the result names a primary archetype", func() {
				res, err := svc.Result(ctx, started.SessionID)
				So(err, ShouldBeNil)
				So(res.PrimaryID, ShouldNotBeEmpty)
				So(res.PrimaryName, ShouldNotBeEmpty)
				So(len(res.Candidates), ShouldEqual, 8)
				So(res.Candidates[0].Rank, ShouldEqual, 1)
				for _, k := range trait.Keys() {
					So(res.Traits[k], ShouldBeGreaterThanOrEqualTo, trait.MinScore)
					So(res.Traits[k], ShouldBeLessThanOrEqualTo, trait.MaxScore)
				}
			})

			Convey("And the result is stable across reads", func() {
				first, err := svc.Result(ctx, started.SessionID)
				So(err, ShouldBeNil)
				second, err := svc.Result(ctx, started.SessionID)
				So(err, ShouldBeNil)
				So(second.PrimaryID, ShouldEqual, first.PrimaryID)
				So(second.Gap, ShouldEqual, first.Gap)
			})

			Convey("And submitting archives exactly once", func() {
				ack, err := svc.Submit(ctx, started.SessionID)
				So(err, ShouldBeNil)
				So(ack.Status, ShouldEqual, "accepted")
				So(ack.Duplicate, ShouldBeFalse)

				retry, err := svc.Submit(ctx, started.SessionID)
				So(err, ShouldBeNil)
				So(retry.Duplicate, ShouldBeTrue)

				So(waitForArchived(ctx, archived, 1), ShouldBeTrue)
				sub, err := archived.Get(ctx, started.SessionID)
				So(err, ShouldBeNil)
				So(sub.PrimaryID, ShouldNotBeEmpty)
				So(len(sub.Answers), ShouldBeGreaterThanOrEqualTo, 12)
				for _, a := range sub.Answers {
					So(a.Family, ShouldEqual, question.FamilyBase)
				}
			})

			Convey("And the same id resumes instead of restarting", func() {
				resumed, err := svc.StartAssessment(ctx, started.SessionID, "")
				So(err, ShouldBeNil)
				So(resumed.Resumed, ShouldBeTrue)
				So(resumed.Strategy, ShouldEqual, "fixed")
			})
		})

		Convey("When an adaptive assessment runs", func() {
			started, err := svc.StartAssessment(ctx, "", "adaptive")
			So(err, ShouldBeNil)
			So(started.Strategy, ShouldEqual, "adaptive")

			answered := answerAll(ctx, svc, started.SessionID)

			Convey("Then it completes within the session cap", func() {
				So(answered, ShouldBeGreaterThan, 0)
				So(answered, ShouldBeLessThanOrEqualTo, 20)
				res, err := svc.Result(ctx, started.SessionID)
				So(err, ShouldBeNil)
				So(res.PrimaryID, ShouldNotBeEmpty)
			})
		})

		Convey("When skipping the first question", func() {
			started, err := svc.StartAssessment(ctx, "", "")
			So(err, ShouldBeNil)
			next, err := svc.NextQuestion(ctx, started.SessionID)
			So(err, ShouldBeNil)
			So(next.Question.ID, ShouldEqual, 1)

			skip, err := svc.SkipQuestion(ctx, started.SessionID, 1)

			Convey("Then a replacement arrives and the budget shrinks", func() {
				So(err, ShouldBeNil)
				So(skip.Replacement, ShouldNotBeNil)
				So(skip.SkipsRemaining, ShouldEqual, 2)

				after, err := svc.NextQuestion(ctx, started.SessionID)
				So(err, ShouldBeNil)
				So(after.Question.ID, ShouldEqual, skip.Replacement.ID)
			})
		})

		Convey("When the strategy name is unknown", func() {
			_, err := svc.StartAssessment(ctx, "", "oracle")
			So(err, ShouldWrap, selector.ErrUnknownStrategy)
		})

		Convey("When the session id is unknown", func() {
			_, err := svc.NextQuestion(ctx, "ghost")
			So(err, ShouldWrap, sessionstore.ErrNotFound)

			_, err = svc.Result(ctx, "ghost")
			So(err, ShouldWrap, sessionstore.ErrNotFound)
		})

		Convey("When stats are read", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeTrue)
			So(stats["archetypes"], ShouldEqual, 8)
		})
	})
}

// calibrationCount reads the activation counter for one family off the
// shared registry; tests compare deltas because the registry is global.
func calibrationCount(family string) float64 {
	families, err := metrics.GetRegistry().Gather()
	So(err, ShouldBeNil)
	for _, mf := range families {
		if mf.GetName() != "archetype_engine_calibration_triggered_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetValue() == family {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestCalibrationActivationMetered(t *testing.T) {
	Convey("Given a stored session whose checkpoint profile is flat", t, func() {
		ctx := context.Background()
		store := sessionstore.NewMemoryStore()
		svc := service.New(
			service.WithConfig(config.New()),
			service.WithSessionStore(store),
		)
		So(svc.Start(ctx), ShouldBeNil)
		Reset(svc.Stop)

		sess := session.New("flat-1", "fixed", session.WithMaxSkips(3))
		for id := 1; id <= 6; id++ {
			sess.Record(question.Answer{
				QuestionID: id,
				Family:     question.FamilyBase,
				Picks:      []string{"a"},
				Scores:     trait.NewScores(),
			})
		}
		So(store.Save(ctx, sess.Snapshot()), ShouldBeNil)

		before := calibrationCount(string(question.FamilyWeakSignal))

		Convey("When the next question triggers the weak-signal family", func() {
			next, err := svc.NextQuestion(ctx, "flat-1")
			So(err, ShouldBeNil)
			So(next.Question, ShouldNotBeNil)
			So(next.Question.ID, ShouldEqual, 101)

			Convey("Then the activation is counted exactly once", func() {
				So(calibrationCount(string(question.FamilyWeakSignal))-before, ShouldEqual, 1.0)

				again, err := svc.NextQuestion(ctx, "flat-1")
				So(err, ShouldBeNil)
				So(again.Question.ID, ShouldEqual, 101)
				So(calibrationCount(string(question.FamilyWeakSignal))-before, ShouldEqual, 1.0)
			})
		})
	})
}

func TestExpiredSessionRestarts(t *testing.T) {
	Convey("Given a service over a store with a controllable clock", t, func() {
		ctx := context.Background()
		now := time.Now()
		clock := &now
		store := sessionstore.NewMemoryStore(
			sessionstore.WithTTL(time.Hour),
			sessionstore.WithClock(func() time.Time { return *clock }),
		)
		svc := service.New(
			service.WithConfig(config.New()),
			service.WithSessionStore(store),
		)
		So(svc.Start(ctx), ShouldBeNil)
		Reset(svc.Stop)

		started, err := svc.StartAssessment(ctx, "", "")
		So(err, ShouldBeNil)
		next, err := svc.NextQuestion(ctx, started.SessionID)
		So(err, ShouldBeNil)
		So(svc.RecordAnswer(ctx, started.SessionID, next.Question.ID,
			[]string{next.Question.Options[0].Value}), ShouldBeNil)

		Convey("When the session ages past the window", func() {
			*clock = now.Add(2 * time.Hour)

			Convey("Then reads fail with expiry", func() {
				_, err := svc.NextQuestion(ctx, started.SessionID)
				So(err, ShouldWrap, sessionstore.ErrExpired)
			})

			Convey("And restarting under the same id begins fresh", func() {
				restarted, err := svc.StartAssessment(ctx, started.SessionID, "")
				So(err, ShouldBeNil)
				So(restarted.Resumed, ShouldBeFalse)
				So(restarted.SessionID, ShouldEqual, started.SessionID)

				fresh, err := svc.NextQuestion(ctx, started.SessionID)
				So(err, ShouldBeNil)
				So(fresh.AnsweredCount, ShouldEqual, 0)
			})
		})
	})
}

package api_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/mirall/archetype/internal/adapters/http/api"
	submissionqueue "github.com/mirall/archetype/internal/adapters/mq/queue"
	"github.com/mirall/archetype/internal/adapters/sessionstore"
	"github.com/mirall/archetype/internal/domain/question"
	"github.com/mirall/archetype/internal/domain/session"
	"github.com/mirall/archetype/internal/domain/types"
)

// stubDeps scripts per-operation behavior so handler status mapping can
// be exercised without the full service.
type stubDeps struct {
	startFn  func(sessionID, strategy string) (types.Started, error)
	nextFn   func(sessionID string) (types.NextQuestion, error)
	answerFn func(sessionID string, questionID int, picks []string) error
	skipFn   func(sessionID string, questionID int) (types.SkipResult, error)
	resultFn func(sessionID string) (types.Result, error)
	submitFn func(sessionID string) (types.SubmitAck, error)
}

func (s *stubDeps) StartAssessment(_ context.Context, sessionID, strategy string) (types.Started, error) {
	return s.startFn(sessionID, strategy)
}

func (s *stubDeps) NextQuestion(_ context.Context, sessionID string) (types.NextQuestion, error) {
	return s.nextFn(sessionID)
}

func (s *stubDeps) RecordAnswer(_ context.Context, sessionID string, questionID int, picks []string) error {
	return s.answerFn(sessionID, questionID, picks)
}

func (s *stubDeps) SkipQuestion(_ context.Context, sessionID string, questionID int) (types.SkipResult, error) {
	return s.skipFn(sessionID, questionID)
}

func (s *stubDeps) Result(_ context.Context, sessionID string) (types.Result, error) {
	return s.resultFn(sessionID)
}

func (s *stubDeps) Submit(_ context.Context, sessionID string) (types.SubmitAck, error) {
	return s.submitFn(sessionID)
}

type stubStats struct{}

func (stubStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestServer(deps *stubDeps) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps, stubStats{}).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func doJSON(method, url string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return http.DefaultClient.Do(req)
}

func decode[T any](resp *http.Response) T {
	defer resp.Body.Close()
	var out T
	So(json.NewDecoder(resp.Body).Decode(&out), ShouldBeNil)
	return out
}

func TestHandleStart(t *testing.T) {
	Convey("Given the assessments routes", t, func() {
		deps := &stubDeps{
			startFn: func(sessionID, strategy string) (types.Started, error) {
				if sessionID == "old" {
					return types.Started{SessionID: "old", Strategy: "fixed", Resumed: true}, nil
				}
				return types.Started{SessionID: "new-id", Strategy: strategy}, nil
			},
		}
		srv := newTestServer(deps)
		Reset(srv.Close)

		Convey("When starting a fresh session", func() {
			resp, err := doJSON(http.MethodPost, srv.URL+"/assessments", map[string]string{"strategy": "adaptive"})
			So(err, ShouldBeNil)

			Convey("Then a new session is created", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				started := decode[types.Started](resp)
				So(started.SessionID, ShouldEqual, "new-id")
				So(started.Strategy, ShouldEqual, "adaptive")
			})
		})

		Convey("When resuming a stored session", func() {
			resp, err := doJSON(http.MethodPost, srv.URL+"/assessments", map[string]string{"session_id": "old"})
			So(err, ShouldBeNil)

			Convey("Then the existing session comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				started := decode[types.Started](resp)
				So(started.Resumed, ShouldBeTrue)
			})
		})

		Convey("When the body is not JSON", func() {
			resp, err := http.Post(srv.URL+"/assessments", "application/json", bytes.NewBufferString("{nope"))
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the method is wrong", func() {
			resp, err := http.Get(srv.URL + "/assessments")
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestSessionRoutes(t *testing.T) {
	Convey("Given scripted session operations", t, func() {
		deps := &stubDeps{
			nextFn: func(sessionID string) (types.NextQuestion, error) {
				switch sessionID {
				case "done":
					return types.NextQuestion{Complete: true, AnsweredCount: 12}, nil
				case "ghost":
					return types.NextQuestion{}, fmt.Errorf("%w: ghost", sessionstore.ErrNotFound)
				case "stale":
					return types.NextQuestion{}, fmt.Errorf("%w: stale", sessionstore.ErrExpired)
				}
				return types.NextQuestion{
					Question:           &types.QuestionView{ID: 1, Kind: "single", PickCount: 1},
					EstimatedRemaining: 11,
				}, nil
			},
			answerFn: func(sessionID string, questionID int, picks []string) error {
				if questionID == 999 {
					return fmt.Errorf("%w: 999", question.ErrUnknownQuestion)
				}
				return nil
			},
			skipFn: func(sessionID string, questionID int) (types.SkipResult, error) {
				if sessionID == "spent" {
					return types.SkipResult{}, fmt.Errorf("%w: no skips left", session.ErrSkipLimit)
				}
				return types.SkipResult{
					Replacement:    &types.QuestionView{ID: 14},
					SkipsRemaining: 2,
				}, nil
			},
			resultFn: func(sessionID string) (types.Result, error) {
				return types.Result{SessionID: sessionID, PrimaryID: "spark", Decisive: true}, nil
			},
			submitFn: func(sessionID string) (types.SubmitAck, error) {
				if sessionID == "crowded" {
					return types.SubmitAck{}, submissionqueue.ErrBackpressure
				}
				return types.SubmitAck{Status: "accepted"}, nil
			},
		}
		srv := newTestServer(deps)
		Reset(srv.Close)

		Convey("When fetching the next question", func() {
			resp, err := http.Get(srv.URL + "/assessments/s-1/next")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			next := decode[types.NextQuestion](resp)
			So(next.Question.ID, ShouldEqual, 1)
			So(next.EstimatedRemaining, ShouldEqual, 11)
		})

		Convey("When the questionnaire is complete", func() {
			resp, err := http.Get(srv.URL + "/assessments/done/next")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			next := decode[types.NextQuestion](resp)
			So(next.Complete, ShouldBeTrue)
			So(next.Question, ShouldBeNil)
		})

		Convey("When the session is unknown", func() {
			resp, err := http.Get(srv.URL + "/assessments/ghost/next")
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the session is expired", func() {
			resp, err := http.Get(srv.URL + "/assessments/stale/next")
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusGone)
		})

		Convey("When recording an answer", func() {
			resp, err := doJSON(http.MethodPost, srv.URL+"/assessments/s-1/answers",
				map[string]any{"question_id": 1, "picks": []string{"work_the_room"}})
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
		})

		Convey("When the answer names an unknown question", func() {
			resp, err := doJSON(http.MethodPost, srv.URL+"/assessments/s-1/answers",
				map[string]any{"question_id": 999, "picks": []string{"a"}})
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the answer carries no picks", func() {
			resp, err := doJSON(http.MethodPost, srv.URL+"/assessments/s-1/answers",
				map[string]any{"question_id": 1})
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When skipping", func() {
			resp, err := doJSON(http.MethodPost, srv.URL+"/assessments/s-1/skip",
				map[string]any{"question_id": 1})
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			skip := decode[types.SkipResult](resp)
			So(skip.Replacement.ID, ShouldEqual, 14)
			So(skip.SkipsRemaining, ShouldEqual, 2)
		})

		Convey("When the skip budget is spent", func() {
			resp, err := doJSON(http.MethodPost, srv.URL+"/assessments/spent/skip",
				map[string]any{"question_id": 1})
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusConflict)
		})

		Convey("When fetching the result", func() {
			resp, err := http.Get(srv.URL + "/assessments/s-1/result")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			res := decode[types.Result](resp)
			So(res.PrimaryID, ShouldEqual, "spark")
			So(res.Decisive, ShouldBeTrue)
		})

		Convey("When submitting", func() {
			resp, err := doJSON(http.MethodPost, srv.URL+"/assessments/s-1/submit", nil)
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
			ack := decode[types.SubmitAck](resp)
			So(ack.Status, ShouldEqual, "accepted")
		})

		Convey("When the pipeline is saturated", func() {
			resp, err := doJSON(http.MethodPost, srv.URL+"/assessments/crowded/submit", nil)
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusTooManyRequests)
		})

		Convey("When the path is malformed", func() {
			resp, err := http.Get(srv.URL + "/assessments//next")
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the operation is unknown", func() {
			resp, err := http.Get(srv.URL + "/assessments/s-1/teleport")
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestStatsAndHealth(t *testing.T) {
	Convey("Given the operational routes", t, func() {
		srv := newTestServer(&stubDeps{})
		Reset(srv.Close)

		Convey("When reading stats", func() {
			resp, err := http.Get(srv.URL + "/stats")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			stats := decode[map[string]any](resp)
			So(stats["started"], ShouldEqual, true)
		})

		Convey("When probing health", func() {
			resp, err := http.Get(srv.URL + "/healthz")
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})
	})
}

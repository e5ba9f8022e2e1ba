// Package service wires the assessment engine together and implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mirall/archetype/internal/adapters/archive"
	submissionqueue "github.com/mirall/archetype/internal/adapters/mq/queue"
	workerpool "github.com/mirall/archetype/internal/adapters/mq/worker"
	"github.com/mirall/archetype/internal/adapters/sessionstore"
	"github.com/mirall/archetype/internal/config"
	"github.com/mirall/archetype/internal/domain/calibration"
	"github.com/mirall/archetype/internal/domain/catalog"
	"github.com/mirall/archetype/internal/domain/dedupe"
	"github.com/mirall/archetype/internal/domain/match"
	"github.com/mirall/archetype/internal/domain/model"
	"github.com/mirall/archetype/internal/domain/question"
	"github.com/mirall/archetype/internal/domain/selector"
	"github.com/mirall/archetype/internal/domain/session"
	"github.com/mirall/archetype/internal/domain/spectrum"
	"github.com/mirall/archetype/internal/domain/types"
	"github.com/mirall/archetype/pkg/logger"
	"github.com/mirall/archetype/pkg/metrics"
)

// Service implements the API dependencies for the assessment system.
type Service struct {
	mu sync.RWMutex

	cfg *config.Config

	// Core components
	bank       *question.Bank
	cat        *catalog.Catalog
	matcher    *match.Matcher
	detector   *calibration.Detector
	strategies map[string]selector.Strategy

	sessions sessionstore.Store
	deduper  dedupe.Deduper
	queue    submissionqueue.Queue
	archiver archive.Store
	pool     *workerpool.Pool

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the service configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithSessionStore injects a session store, replacing the one Start
// would build from configuration.
func WithSessionStore(store sessionstore.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.sessions = store
		}
	}
}

// WithArchive injects an archive store.
func WithArchive(store archive.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.archiver = store
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: config.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components. Idempotent.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting assessment service...")

	bank, err := question.LoadBank(s.cfg.QuestionBankPath)
	if err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}
	s.bank = bank

	cat, err := catalog.Load(s.cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	s.cat = cat

	s.matcher = match.New(match.WithDecisiveGap(s.cfg.DecisiveGap))
	s.detector = calibration.NewDetector(
		calibration.WithFlatnessThreshold(s.cfg.FlatnessThreshold),
		calibration.WithLowEnergyCloseness(s.cfg.LowEnergyCloseness),
		calibration.WithMaxLowEnergyCount(s.cfg.MaxLowEnergyQuestions),
	)

	s.strategies = make(map[string]selector.Strategy)
	for _, name := range []string{selector.StrategyFixed, selector.StrategyAdaptive} {
		strat, err := selector.New(name, s.bank, s.cat, s.matcher, s.detector,
			selector.WithCheckpointIndex(s.cfg.CheckpointIndex),
			selector.WithMaxSessionLength(s.cfg.MaxSessionLength),
		)
		if err != nil {
			return err
		}
		s.strategies[name] = strat
	}

	if s.sessions == nil {
		store, err := s.buildSessionStore()
		if err != nil {
			return err
		}
		s.sessions = store
	}
	if s.archiver == nil {
		s.archiver = archive.NewMemoryStore()
	}
	s.deduper = dedupe.NewInMemory(dedupe.WithMaxSize(s.cfg.DedupeSize))
	s.queue = submissionqueue.NewInMemoryQueue(
		submissionqueue.WithCapacity(s.cfg.SubmissionQueueSize),
	)

	s.pool = workerpool.NewPool(s.queue, s.archiver,
		workerpool.WithWorkerCount(s.cfg.WorkerCount),
		workerpool.WithLogger(s.logger.Named("worker")),
	)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "assessment service started",
		logger.Int("questions", s.bank.Len()),
		logger.Int("archetypes", s.cat.Len()),
		logger.Int("workers", s.cfg.WorkerCount),
		logger.String("sessionStore", s.cfg.SessionStore),
	)
	return nil
}

func (s *Service) buildSessionStore() (sessionstore.Store, error) {
	ttl := time.Duration(s.cfg.SessionTTLHours) * time.Hour
	switch s.cfg.SessionStore {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: s.cfg.RedisAddr})
		return sessionstore.NewRedisStore(client, sessionstore.WithRedisTTL(ttl)), nil
	case config.StoreMemory:
		return sessionstore.NewMemoryStore(sessionstore.WithTTL(ttl)), nil
	default:
		return nil, fmt.Errorf("%w: session store %q", config.ErrInvalidConfig, s.cfg.SessionStore)
	}
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping assessment service...")

	if s.pool != nil {
		s.pool.Stop()
	}
	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.sessions != nil {
		_ = s.sessions.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "assessment service stopped")
}

// StartAssessment creates a session, or resumes one when sessionID names
// a stored, unexpired session. An expired or malformed record is
// discarded and the session restarts fresh under the same id.
func (s *Service) StartAssessment(ctx context.Context, sessionID, strategy string) (types.Started, error) {
	if strategy == "" {
		strategy = s.cfg.DefaultStrategy
	}
	if _, ok := s.strategies[strategy]; !ok {
		return types.Started{}, fmt.Errorf("%w: %q", selector.ErrUnknownStrategy, strategy)
	}

	if sessionID != "" {
		snap, err := s.sessions.Load(ctx, sessionID)
		switch {
		case err == nil:
			sess, rerr := session.Restore(snap, session.WithMaxSkips(s.cfg.MaxSkips))
			if rerr == nil {
				metrics.RecordSessionResumed()
				s.logger.Info(ctx, "session resumed",
					logger.String("sessionID", sessionID),
					logger.Int("answered", sess.AnsweredCount()),
				)
				return types.Started{SessionID: sessionID, Strategy: sess.Strategy(), Resumed: true}, nil
			}
			s.logger.Warn(ctx, "discarding malformed session record",
				logger.String("sessionID", sessionID), logger.Error(rerr))
			_ = s.sessions.Delete(ctx, sessionID)
		case errors.Is(err, sessionstore.ErrExpired):
			metrics.RecordSessionExpired()
			s.logger.Info(ctx, "session expired; restarting",
				logger.String("sessionID", sessionID))
		case errors.Is(err, sessionstore.ErrNotFound),
			errors.Is(err, session.ErrMalformedSnapshot):
			// Start fresh below.
		default:
			return types.Started{}, err
		}
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	sess := session.New(sessionID, strategy, session.WithMaxSkips(s.cfg.MaxSkips))
	if err := s.sessions.Save(ctx, sess.Snapshot()); err != nil {
		return types.Started{}, err
	}

	metrics.RecordSessionStarted()
	s.logger.Info(ctx, "session started",
		logger.String("sessionID", sessionID),
		logger.String("strategy", strategy),
	)
	return types.Started{SessionID: sessionID, Strategy: strategy}, nil
}

// NextQuestion returns the next question for the session, or a
// completion marker. Checkpoint evaluation may activate a calibration
// family as a side effect, so the session is saved afterwards.
func (s *Service) NextQuestion(ctx context.Context, sessionID string) (types.NextQuestion, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return types.NextQuestion{}, err
	}
	strat, err := s.strategy(sess)
	if err != nil {
		return types.NextQuestion{}, err
	}

	active := make(map[question.Family]bool, 2)
	for _, f := range question.CalibrationFamilies() {
		active[f] = sess.Calibrated(f)
	}

	q, err := strat.Next(ctx, sess)
	if err != nil {
		return types.NextQuestion{}, err
	}
	for _, f := range question.CalibrationFamilies() {
		if !active[f] && sess.Calibrated(f) {
			metrics.RecordCalibrationTriggered(string(f))
			s.logger.Info(ctx, "calibration activated",
				logger.String("sessionID", sessionID),
				logger.String("family", string(f)),
			)
		}
	}
	if err := s.sessions.Save(ctx, sess.Snapshot()); err != nil {
		return types.NextQuestion{}, err
	}

	out := types.NextQuestion{
		AnsweredCount:  sess.AnsweredCount(),
		SkipsRemaining: s.cfg.MaxSkips - sess.SkipsUsed(),
	}
	if q == nil {
		out.Complete = true
		return out, nil
	}
	out.Question = questionView(*q)
	out.EstimatedRemaining = strat.EstimatedRemaining(ctx, sess)
	metrics.RecordQuestionServed()
	return out, nil
}

// RecordAnswer validates the picks and records the answer. Re-answering
// a question id replaces the prior answer; repeating the same picks is a
// no-op, which makes client retries safe.
func (s *Service) RecordAnswer(ctx context.Context, sessionID string, questionID int, picks []string) error {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return err
	}

	ans, err := s.bank.BuildAnswer(questionID, picks...)
	if err != nil {
		return err
	}
	sess.Record(ans)
	if err := s.sessions.Save(ctx, sess.Snapshot()); err != nil {
		return err
	}

	metrics.RecordAnswerRecorded()
	s.logger.Debug(ctx, "answer recorded",
		logger.String("sessionID", sessionID),
		logger.Int("questionID", questionID),
	)
	return nil
}

// SkipQuestion consumes a skip and queues a similar replacement question
// when one remains. Exhausted budgets surface session.ErrSkipLimit.
func (s *Service) SkipQuestion(ctx context.Context, sessionID string, questionID int) (types.SkipResult, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return types.SkipResult{}, err
	}

	replacement, err := selector.Skip(ctx, s.bank, sess, questionID)
	if err != nil {
		return types.SkipResult{}, err
	}
	if err := s.sessions.Save(ctx, sess.Snapshot()); err != nil {
		return types.SkipResult{}, err
	}

	metrics.RecordSkip()
	out := types.SkipResult{
		SkipsRemaining: s.cfg.MaxSkips - sess.SkipsUsed(),
	}
	if replacement != nil {
		out.Replacement = questionView(*replacement)
	}
	return out, nil
}

// Result computes the current ranking from the session's merged trait
// vector. Pure read: calling it repeatedly returns identical output for
// the same answers.
func (s *Service) Result(ctx context.Context, sessionID string) (types.Result, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return types.Result{}, err
	}
	return s.computeResult(ctx, sess), nil
}

func (s *Service) computeResult(ctx context.Context, sess *session.Session) types.Result {
	merged := calibration.MergedScores(sess)

	start := time.Now()
	res := s.matcher.Rank(ctx, merged, s.cat)
	metrics.RecordMatchLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordResultComputed(res.Decisive)

	top := res.Primary()
	out := types.Result{
		SessionID:   sess.ID(),
		PrimaryID:   top.Archetype.ID,
		PrimaryName: top.Archetype.Name,
		Tagline:     top.Archetype.Tagline,
		Decisive:    res.Decisive,
		Gap:         res.Gap,
		Traits:      merged.Clamped(),
	}
	for _, c := range res.Candidates {
		out.Candidates = append(out.Candidates, types.Candidate{
			ArchetypeID: c.Archetype.ID,
			Name:        c.Archetype.Name,
			Tagline:     c.Archetype.Tagline,
			Percent:     c.Percent,
			Rank:        c.Rank,
		})
	}
	if !res.Decisive {
		out.DifferentiatingTrait = string(match.DifferentiatingTrait(
			top.Archetype, res.RunnerUp().Archetype))
		out.Spectrum = spectrum.Compute(res, s.cfg.MaxAdjacent)
	}
	return out
}

// Submit finalizes the session and hands the submission to the archiving
// pipeline. Calibration contributions are folded into base answers
// before anything leaves the process. Duplicate submissions by session
// id are acknowledged without re-archiving; a queue-full condition rolls
// the dedupe record back so the client can retry.
func (s *Service) Submit(ctx context.Context, sessionID string) (types.SubmitAck, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return types.SubmitAck{}, err
	}

	if s.deduper.SeenAndRecord(ctx, sessionID) {
		metrics.RecordSubmissionDuplicate()
		return types.SubmitAck{Status: "accepted", Duplicate: true}, nil
	}

	res := s.computeResult(ctx, sess)
	sub := model.Submission{
		SessionID: sessionID,
		Strategy:  sess.Strategy(),
		Answers:   calibration.FoldIntoBase(sess.Answers(), s.checkpointQuestionID(sess)),
		Traits:    res.Traits,
		PrimaryID: res.PrimaryID,
		Decisive:  res.Decisive,
		CreatedAt: time.Now().UTC(),
	}

	if !s.queue.Enqueue(ctx, sub) {
		s.deduper.Unrecord(ctx, sessionID)
		return types.SubmitAck{}, ErrBackpressure
	}

	sess.MarkSubmitted()
	if err := s.sessions.Save(ctx, sess.Snapshot()); err != nil {
		s.logger.Warn(ctx, "failed to persist submitted flag",
			logger.String("sessionID", sessionID), logger.Error(err))
	}

	metrics.RecordSubmissionAccepted()
	s.logger.Info(ctx, "submission accepted",
		logger.String("sessionID", sessionID),
		logger.String("primary", sub.PrimaryID),
		logger.Bool("decisive", sub.Decisive),
	)
	return types.SubmitAck{Status: "accepted"}, nil
}

// checkpointQuestionID returns the question id the weak-signal sum folds
// into: the base answer at the checkpoint position, or the last base
// answer for short sessions.
func (s *Service) checkpointQuestionID(sess *session.Session) int {
	base := sess.FamilyAnswers(question.FamilyBase)
	if len(base) == 0 {
		return 0
	}
	if len(base) >= s.cfg.CheckpointIndex {
		return base[s.cfg.CheckpointIndex-1].QuestionID
	}
	return base[len(base)-1].QuestionID
}

func (s *Service) loadSession(ctx context.Context, sessionID string) (*session.Session, error) {
	snap, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionstore.ErrExpired) {
			metrics.RecordSessionExpired()
		}
		return nil, err
	}
	return session.Restore(snap, session.WithMaxSkips(s.cfg.MaxSkips))
}

func (s *Service) strategy(sess *session.Session) (selector.Strategy, error) {
	strat, ok := s.strategies[sess.Strategy()]
	if !ok {
		return nil, fmt.Errorf("%w: %q", selector.ErrUnknownStrategy, sess.Strategy())
	}
	return strat, nil
}

func questionView(q question.Question) *types.QuestionView {
	pickCount := 1
	if q.Kind == question.KindDual {
		pickCount = 2
	}
	view := &types.QuestionView{
		ID:        q.ID,
		Scenario:  q.Scenario,
		Prompt:    q.Prompt,
		Kind:      string(q.Kind),
		PickCount: pickCount,
	}
	for _, o := range q.Options {
		view.Options = append(view.Options, types.OptionView{Value: o.Value, Text: o.Text})
	}
	return view
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.cfg.WorkerCount,
		"queueSize":   s.cfg.SubmissionQueueSize,
		"dedupeSize":  s.cfg.DedupeSize,
		"strategy":    s.cfg.DefaultStrategy,
	}
	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
		stats["archived"] = s.archiver.Count(ctx)
		stats["dedupeTracked"] = s.deduper.Size()
		stats["questionBankSize"] = s.bank.Len()
		stats["archetypes"] = s.cat.Len()
	}
	return stats
}

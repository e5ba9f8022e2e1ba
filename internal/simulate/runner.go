package simulate

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mirall/archetype/internal/domain/trait"
	"github.com/mirall/archetype/pkg/logger"
)

// maxLoopIterations guards against a server that never reports
// completion; one session should finish well under this.
const maxLoopIterations = 64

// Run executes the configured number of sessions and prints a summary.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get().Named("simulate")
	start := time.Now()

	var (
		started   int64
		completed int64
		failed    int64
		answered  int64
		skips     int64
		decisive  int64
		spectrum  int64
		submitted int64
		dups      int64
	)

	sessionChan := make(chan int, cfg.Workers)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			c := newClient(cfg.BaseURL, cfg.Timeout)
			for idx := range sessionChan {
				// Per-session seed keeps runs reproducible regardless of
				// worker interleaving.
				rng := rand.New(rand.NewSource(cfg.Seed + int64(idx)))
				target := trait.Keys()[idx%len(trait.Keys())]
				pk, err := newPicker(cfg.Persona, rng, target)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}

				atomic.AddInt64(&started, 1)
				res, err := runSession(ctx, c, cfg, pk, idx)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if cfg.Verbose {
						log.Warn(ctx, "session failed",
							logger.Int("session", idx), logger.Error(err))
					}
					continue
				}
				atomic.AddInt64(&completed, 1)
				atomic.AddInt64(&answered, int64(res.answered))
				atomic.AddInt64(&skips, int64(res.skips))
				if res.decisive {
					atomic.AddInt64(&decisive, 1)
				}
				if res.spectrum {
					atomic.AddInt64(&spectrum, 1)
				}
				if res.submitted {
					atomic.AddInt64(&submitted, 1)
				}
				if res.duplicate {
					atomic.AddInt64(&dups, 1)
				}
			}
		}(w)
	}

	go func() {
		defer close(sessionChan)
		for i := 0; i < cfg.Sessions; i++ {
			select {
			case <-ctx.Done():
				return
			case sessionChan <- i:
			}
		}
	}()

	wg.Wait()

	stats := &Stats{
		SessionsStarted:   int(started),
		SessionsCompleted: int(completed),
		SessionsFailed:    int(failed),
		QuestionsAnswered: int(answered),
		SkipsUsed:         int(skips),
		DecisiveResults:   int(decisive),
		SpectrumResults:   int(spectrum),
		Submitted:         int(submitted),
		Duplicates:        int(dups),
		Elapsed:           time.Since(start),
	}
	log.Info(ctx, "simulation finished",
		logger.Int("sessions", stats.SessionsStarted),
		logger.Int("completed", stats.SessionsCompleted),
		logger.Int("failed", stats.SessionsFailed),
		logger.Int("answered", stats.QuestionsAnswered),
		logger.Int("decisive", stats.DecisiveResults),
		logger.Int("spectrum", stats.SpectrumResults),
		logger.Int("duplicates", stats.Duplicates),
		logger.String("elapsed", stats.Elapsed.String()),
	)
	return stats, nil
}

// sessionResult summarizes one driven session.
type sessionResult struct {
	answered  int
	skips     int
	decisive  bool
	spectrum  bool
	submitted bool
	duplicate bool
}

// runSession walks one session through the full lifecycle: the question
// loop with optional skips, the result read, and a double submit to
// exercise the duplicate acknowledgement.
func runSession(ctx context.Context, c *client, cfg *Config, pk picker, idx int) (sessionResult, error) {
	var out sessionResult

	startedResp, err := c.start(ctx, cfg.Strategy)
	if err != nil {
		return out, err
	}
	sessionID := startedResp.SessionID

	for i := 0; i < maxLoopIterations; i++ {
		next, err := c.next(ctx, sessionID)
		if err != nil {
			return out, err
		}
		if next.Complete {
			break
		}

		q := next.Question
		if cfg.SkipEvery > 0 && out.answered > 0 && out.answered%cfg.SkipEvery == 0 &&
			next.SkipsRemaining > 0 && !alreadySkipped(&out, i) {
			if _, err := c.skip(ctx, sessionID, q.ID); err != nil {
				return out, err
			}
			out.skips++
			continue
		}

		if err := c.answer(ctx, sessionID, q.ID, pk.pick(*q)); err != nil {
			return out, err
		}
		out.answered++
	}

	res, err := c.result(ctx, sessionID)
	if err != nil {
		return out, err
	}
	out.decisive = res.Decisive
	out.spectrum = res.Spectrum != nil

	ack, err := c.submit(ctx, sessionID)
	if err != nil {
		return out, err
	}
	out.submitted = ack.Status == "accepted"

	// Every third session retries the submit to confirm idempotence.
	if idx%3 == 0 {
		retry, err := c.submit(ctx, sessionID)
		if err != nil {
			return out, fmt.Errorf("retry submit: %w", err)
		}
		out.duplicate = retry.Duplicate
	}
	return out, nil
}

// alreadySkipped spaces skips out so one session never burns its whole
// budget on consecutive questions.
func alreadySkipped(res *sessionResult, iteration int) bool {
	return res.skips > 0 && iteration%2 == 1
}

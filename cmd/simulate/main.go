package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/mirall/archetype/internal/simulate"
	"github.com/mirall/archetype/pkg/logger"
)

// Default configuration constants.
const (
	defaultSessions   = 100
	defaultSkipEvery  = 5
	defaultSeed       = 1
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		sessions  = flag.Int("sessions", defaultSessions, "Number of sessions to drive")
		workers   = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		strategy  = flag.String("strategy", "fixed", "Question strategy: fixed or adaptive")
		persona   = flag.String("persona", simulate.PersonaRandom, "Answer persona: random, biased, or flat")
		seed      = flag.Int64("seed", defaultSeed, "Random seed; identical seeds reproduce identical runs")
		skipEvery = flag.Int("skip-every", defaultSkipEvery, "Skip one question per N answers (0 disables)")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &simulate.Config{
		BaseURL:   *baseURL,
		Sessions:  *sessions,
		Workers:   *workers,
		Strategy:  *strategy,
		Persona:   *persona,
		Seed:      *seed,
		SkipEvery: *skipEvery,
		Timeout:   *timeout,
		Verbose:   *verbose,
	}
	if _, err := simulate.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("simulation failed: " + err.Error() + "\n")
	}
}

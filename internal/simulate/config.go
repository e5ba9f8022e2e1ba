// Package simulate drives full assessment sessions against a running
// service instance: start, question loop, result, submit. Personas make
// the answer traffic shaped rather than uniform noise, so calibration
// paths and decisiveness both get exercised.
package simulate

import "time"

// Persona names accepted by the generator.
const (
	// PersonaRandom picks options uniformly at random.
	PersonaRandom = "random"
	// PersonaBiased consistently favors options that raise one target
	// trait, producing decisive profiles.
	PersonaBiased = "biased"
	// PersonaFlat rotates across options, producing ambiguous profiles
	// that trigger calibration.
	PersonaFlat = "flat"
)

// Config controls a simulation run.
type Config struct {
	BaseURL   string
	Sessions  int
	Workers   int
	Strategy  string
	Persona   string
	Seed      int64
	SkipEvery int
	Timeout   time.Duration
	Verbose   bool
}

// Stats accumulates run results.
type Stats struct {
	SessionsStarted   int
	SessionsCompleted int
	SessionsFailed    int
	QuestionsAnswered int
	SkipsUsed         int
	DecisiveResults   int
	SpectrumResults   int
	Submitted         int
	Duplicates        int
	Elapsed           time.Duration
}

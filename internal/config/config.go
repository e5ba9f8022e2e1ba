// Package config defines service configuration structures and loading.
//
// Conventions:
// - Defaults live in New; Load layers file and env on top.
// - Tuning constants are named fields here, never inlined magic numbers.
package config

import (
	"runtime"
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QuestionBankPath and CatalogPath point at optional YAML overrides
	// for the compiled-in question bank and archetype catalog.
	QuestionBankPath string `koanf:"question_bank_path"`
	CatalogPath      string `koanf:"catalog_path"`

	// DefaultStrategy is used when a session does not name one:
	// "fixed" or "adaptive".
	DefaultStrategy string `koanf:"default_strategy"`

	// DecisiveGap is the percentage-point lead the top match needs over
	// the runner-up to count as decisive.
	DecisiveGap float64 `koanf:"decisive_gap"`

	// FlatnessThreshold is the top-2 spread below which the weak-signal
	// calibration fires at the mid checkpoint.
	FlatnessThreshold float64 `koanf:"flatness_threshold"`

	// LowEnergyCloseness is how close a low-energy archetype must trail
	// the top candidate for the low-energy calibration to fire.
	LowEnergyCloseness float64 `koanf:"low_energy_closeness"`

	// MaxLowEnergyQuestions caps low-energy calibration injections.
	MaxLowEnergyQuestions int `koanf:"max_low_energy_questions"`

	// CheckpointIndex is the base-answer count at which the weak-signal
	// checkpoint is evaluated.
	CheckpointIndex int `koanf:"checkpoint_index"`

	// MaxSessionLength caps adaptive-strategy base questions.
	MaxSessionLength int `koanf:"max_session_length"`

	// MaxSkips bounds how many questions a user may decline.
	MaxSkips int `koanf:"max_skips"`

	// MaxAdjacent caps the alternatives listed on the style spectrum.
	MaxAdjacent int `koanf:"max_adjacent"`

	// SessionTTLHours is the resumability window for saved sessions.
	SessionTTLHours int `koanf:"session_ttl_hours"`

	// SessionStore selects the snapshot backend: memory or redis.
	SessionStore string `koanf:"session_store"`

	// RedisAddr is the Redis endpoint when SessionStore is redis.
	RedisAddr string `koanf:"redis_addr"`

	// SubmissionQueueSize bounds the in-memory submission queue.
	SubmissionQueueSize int `koanf:"submission_queue_size"`

	// WorkerCount sets the number of archiver workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the submission deduplication window.
	DedupeSize int `koanf:"dedupe_size"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		DefaultStrategy:       "fixed",
		DecisiveGap:           8.0,
		FlatnessThreshold:     6.0,
		LowEnergyCloseness:    10.0,
		MaxLowEnergyQuestions: 3,
		CheckpointIndex:       6,
		MaxSessionLength:      16,
		MaxSkips:              3,
		MaxAdjacent:           2,
		SessionTTLHours:       7 * 24,
		SessionStore:          StoreMemory,
		RedisAddr:             "localhost:6379",
		SubmissionQueueSize:   10_000,
		WorkerCount:           runtime.NumCPU(),
		DedupeSize:            100_000,
	}
}

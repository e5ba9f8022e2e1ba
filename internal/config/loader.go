package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces this service's environment variables.
const envPrefix = "ARCHETYPE_"

// Load builds a Config by layering defaults, optional file, and env.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if ARCHETYPE_CONFIG is set
//  3. env (prefix ARCHETYPE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ARCHETYPE_ADDR, ARCHETYPE_DECISIVE_GAP, ...
	// Keys keep their underscores to match the koanf struct tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.DefaultStrategy {
	case "fixed", "adaptive":
	default:
		return fmt.Errorf("%w: default_strategy must be fixed or adaptive, got %q",
			ErrInvalidConfig, c.DefaultStrategy)
	}
	switch c.SessionStore {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("%w: session_store must be %s or %s, got %q",
			ErrInvalidConfig, StoreMemory, StoreRedis, c.SessionStore)
	}
	if c.DecisiveGap <= 0 || c.FlatnessThreshold <= 0 || c.LowEnergyCloseness <= 0 {
		return fmt.Errorf("%w: thresholds must be positive", ErrInvalidConfig)
	}
	if c.SessionTTLHours <= 0 {
		return fmt.Errorf("%w: session_ttl_hours must be positive", ErrInvalidConfig)
	}
	return nil
}

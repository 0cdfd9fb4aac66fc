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

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if PLANNER_CONFIG is set
//  3. env (prefix PLANNER_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("PLANNER_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PLANNER_ADDR, PLANNER_TICK_INTERVAL_MS, ...
	// Map env keys like PLANNER_TICK_INTERVAL_MS -> tick_interval_ms (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("PLANNER_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "planner_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations that cannot run.
func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.Collection == "" {
		return fmt.Errorf("%w: collection must not be empty", ErrInvalidConfig)
	}
	if c.TickIntervalMS <= 0 {
		return fmt.Errorf("%w: tick_interval_ms must be positive", ErrInvalidConfig)
	}
	if c.IntentQueueSize <= 0 {
		return fmt.Errorf("%w: intent_queue_size must be positive", ErrInvalidConfig)
	}
	if c.OutcomeBuffer <= 0 {
		return fmt.Errorf("%w: outcome_buffer must be positive", ErrInvalidConfig)
	}
	if c.ViewBuffer <= 0 {
		return fmt.Errorf("%w: view_buffer must be positive", ErrInvalidConfig)
	}
	if c.MaxListLimit <= 0 {
		return fmt.Errorf("%w: max_list_limit must be positive", ErrInvalidConfig)
	}
	return nil
}

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Collection names the remote document collection holding events.
	Collection string `koanf:"collection"`

	// TickIntervalMS sets the countdown refresh cadence in milliseconds.
	TickIntervalMS int `koanf:"tick_interval_ms"`

	// IntentQueueSize bounds the in-memory mutation intent queue.
	IntentQueueSize int `koanf:"intent_queue_size"`

	// OutcomeBuffer bounds the dispatcher outcome channel.
	OutcomeBuffer int `koanf:"outcome_buffer"`

	// ViewBuffer bounds each view subscriber channel.
	ViewBuffer int `koanf:"view_buffer"`

	// MaxListLimit caps GET /events?limit.
	MaxListLimit int `koanf:"max_list_limit"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and is
// currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		Collection:      "events",
		TickIntervalMS:  1000,
		IntentQueueSize: 256,
		OutcomeBuffer:   32,
		ViewBuffer:      4,
		MaxListLimit:    100,
	}
	return c
}

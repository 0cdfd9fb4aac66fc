package worker

import (
	"planner/pkg/logger"
)

// Option applies a configuration option to the Dispatcher.
type Option func(*Dispatcher)

// WithName sets the dispatcher name for identification and logging.
func WithName(name string) Option {
	return func(d *Dispatcher) {
		if name != "" {
			d.name = name
		}
	}
}

// WithLogger sets a custom logger for the dispatcher.
func WithLogger(logger logger.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithOutcomeBuffer sets the outcome channel buffer size.
func WithOutcomeBuffer(size int) Option {
	return func(d *Dispatcher) {
		if size > 0 {
			d.outcomes = make(chan Outcome, size)
		}
	}
}

// Package worker forwards queued mutation intents to the remote store.
//
// Dispatch is fire-and-forget for callers: the outcome of every remote
// call, success or failure, is published on a channel the application
// loop consumes, never returned synchronously.
package worker

import (
	"context"
	"fmt"
	"time"

	"planner/internal/adapters/mq/queue"
	"planner/internal/adapters/remote"
	"planner/pkg/logger"
	"planner/pkg/metrics"
)

// Default dispatcher configuration constants.
const (
	defaultOutcomeBuffer     = 32
	dispatcherShutdownWindow = 5 * time.Second
)

// Outcome reports the asynchronous result of a dispatched intent.
// Err is nil on success and wraps ErrRemoteWrite on failure.
type Outcome struct {
	Intent queue.Intent
	Err    error
}

// Queue defines how the dispatcher receives intents.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Intent
}

// Dispatcher drains the intent queue into the remote store.
// A single dispatcher goroutine keeps remote call order aligned with
// intent order.
type Dispatcher struct {
	queue      Queue
	store      remote.Store
	collection string
	name       string

	outcomes chan Outcome

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewDispatcher creates a dispatcher with configuration options.
func NewDispatcher(q Queue, store remote.Store, collection string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		queue:      q,
		store:      store,
		collection: collection,
		name:       "dispatcher",
		outcomes:   make(chan Outcome, defaultOutcomeBuffer),
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.Get().Named(d.name)
	}

	return d
}

// Outcomes returns the channel carrying dispatch results. Closed when
// the dispatcher stops.
func (d *Dispatcher) Outcomes() <-chan Outcome {
	return d.outcomes
}

// Run starts the dispatch loop. It returns when the queue closes, the
// context is canceled, or Shutdown is called.
func (d *Dispatcher) Run(ctx context.Context) {
	defer func() {
		close(d.outcomes)
		close(d.done)
	}()

	intentChan := d.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.shutdown:
			return
		case in, ok := <-intentChan:
			if !ok {
				return
			}
			d.dispatch(ctx, in)
		}
	}
}

// Shutdown gracefully stops the dispatcher.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	close(d.shutdown)

	select {
	case <-d.done:
		return nil
	case <-time.After(dispatcherShutdownWindow):
		return fmt.Errorf("dispatcher shutdown timed out")
	case <-ctx.Done():
		d.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// dispatch forwards a single intent and publishes its outcome. The
// local cache is never touched here; the snapshot subscription is the
// sole source of truth.
func (d *Dispatcher) dispatch(ctx context.Context, in queue.Intent) {
	var err error
	switch in.Op {
	case queue.OpCreate:
		_, err = d.store.Create(ctx, d.collection, remote.EncodeEvent(in.Event))
	case queue.OpDelete:
		err = d.store.Delete(ctx, d.collection, in.ID)
	default:
		err = fmt.Errorf("unknown op %q", in.Op)
	}

	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrRemoteWrite, in.Op, err)
		metrics.RecordRemoteWriteError()
		d.logger.Error(ctx, "remote write failed",
			logger.String("op", string(in.Op)),
			logger.Error(err),
		)
	}

	d.publish(Outcome{Intent: in, Err: err})
}

// publish delivers an outcome without ever blocking the dispatch loop.
// If the consumer lags, the oldest pending outcome is dropped.
func (d *Dispatcher) publish(o Outcome) {
	select {
	case d.outcomes <- o:
	default:
		select {
		case <-d.outcomes:
		default:
		}
		d.outcomes <- o
	}
}

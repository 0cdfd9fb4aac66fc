// Package service wires the sync and derivation engine together: the
// remote subscription feeding the event store, the shared scheduler
// tick driving re-projection, and the intent dispatcher carrying
// mutations back out.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	eventqueue "planner/internal/adapters/mq/queue"
	"planner/internal/adapters/mq/worker"
	"planner/internal/adapters/projector"
	"planner/internal/adapters/remote"
	eventstore "planner/internal/adapters/store"
	"planner/internal/domain/clock"
	"planner/internal/domain/countdown"
	"planner/internal/domain/model"
	"planner/internal/scheduler"
	"planner/pkg/logger"
	"planner/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultCollection    = "events"
	defaultQueueSize     = 256
	defaultOutcomeBuffer = 32
	defaultViewBuffer    = 4
	shutdownTimeout      = 5 * time.Second
)

// View is the presentation-ready state published after every change:
// ordered view-models, the active filter, the loading flag, and any
// non-blocking warning. Rebuilt each cycle, never persisted.
type View struct {
	Items   []projector.ViewModel
	Filter  projector.Filter
	Loading bool
	Warning string
}

// Service owns the event loop. All cache mutation and projection
// happens on the single run goroutine; the two event sources (remote
// snapshots, scheduler ticks) interleave there, so the cache sees no
// parallel writes.
type Service struct {
	mu sync.RWMutex

	// Core components
	remote     remote.Store
	store      *eventstore.EventStore
	queue      *eventqueue.InMemoryQueue
	dispatcher *worker.Dispatcher
	tick       scheduler.Ticker
	clock      clock.Clock

	// Configuration
	collection    string
	queueSize     int
	outcomeBuffer int
	viewBuffer    int
	tickInterval  time.Duration

	// Loop-owned state
	filter  projector.Filter
	loading bool
	subWarn string // sticky: subscription failure

	// Plumbing
	current     View
	filterCh    chan projector.Filter
	subscribers []chan View
	started     bool
	stopOnce    sync.Once
	cancel      context.CancelFunc
	done        chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCollection sets the remote collection name.
func WithCollection(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.collection = name
		}
	}
}

// WithClock sets the time source. Tests pin it.
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithTicker sets the projection tick source. Tests drive it manually.
func WithTicker(t scheduler.Ticker) Option {
	return func(s *Service) {
		if t != nil {
			s.tick = t
		}
	}
}

// WithTickInterval sets the interval for the default ticker.
func WithTickInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.tickInterval = d
		}
	}
}

// WithQueueSize bounds the mutation intent queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithOutcomeBuffer sets the dispatch outcome channel buffer.
func WithOutcomeBuffer(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.outcomeBuffer = size
		}
	}
}

// WithViewBuffer sets the per-subscriber view channel buffer.
func WithViewBuffer(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.viewBuffer = size
		}
	}
}

// New constructs a Service over the given remote store.
func New(store remote.Store, opts ...Option) *Service {
	s := &Service{
		remote:        store,
		collection:    defaultCollection,
		queueSize:     defaultQueueSize,
		outcomeBuffer: defaultOutcomeBuffer,
		viewBuffer:    defaultViewBuffer,
		tickInterval:  scheduler.DefaultInterval,
		clock:         clock.System(),
		filter:        projector.FilterAll,
		loading:       true,
		filterCh:      make(chan projector.Filter, 1),
		done:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start subscribes to the remote collection and launches the event
// loop. A subscription that cannot even be established is terminal.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("planner")
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	snapshots, err := s.remote.Subscribe(runCtx, s.collection)
	if err != nil {
		cancel()
		metrics.RecordSubscriptionError()
		return fmt.Errorf("%w: %w", ErrSubscription, err)
	}

	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.store = eventstore.New(s.queue)
	s.dispatcher = worker.NewDispatcher(
		s.queue,
		s.remote,
		s.collection,
		worker.WithLogger(s.logger.Named("dispatch")),
		worker.WithOutcomeBuffer(s.outcomeBuffer),
	)
	if s.tick == nil {
		s.tick = scheduler.NewInterval(s.tickInterval)
	}

	go s.dispatcher.Run(runCtx)
	go s.run(runCtx, snapshots)

	s.started = true
	s.current = View{Filter: s.filter, Loading: true}
	s.logger.Info(ctx, "planner service started",
		logger.String("collection", s.collection),
		logger.Int("queueSize", s.queueSize),
	)

	return nil
}

// Stop tears the service down: the subscription stops delivering, the
// scheduler tick stops, and pending intents are abandoned. Idempotent.
func (s *Service) Stop() {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return
	}

	s.stopOnce.Do(func() {
		ctx := context.Background()
		s.logger.Info(ctx, "stopping planner service...")

		s.cancel()
		s.tick.Stop()
		_ = s.queue.Close()

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := s.dispatcher.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "dispatcher shutdown", logger.Error(err))
		}

		select {
		case <-s.done:
		case <-shutdownCtx.Done():
			s.logger.Warn(ctx, "event loop shutdown timed out")
		}

		s.logger.Info(ctx, "planner service stopped")
	})
}

// CreateEvent validates the draft and queues a create intent. The
// cache is untouched until the resulting snapshot arrives.
func (s *Service) CreateEvent(ctx context.Context, draft model.Draft) error {
	return s.store.RequestCreate(ctx, draft)
}

// DeleteEvent queues a delete intent for id.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	return s.store.RequestDelete(ctx, id)
}

// SetFilter switches the projection filter. Non-blocking: a pending
// unprocessed change is simply replaced.
func (s *Service) SetFilter(mode projector.Filter) {
	for {
		select {
		case s.filterCh <- mode:
			return
		default:
			select {
			case <-s.filterCh:
			default:
			}
		}
	}
}

// Subscribe registers a view channel. The current view is delivered
// immediately so late subscribers never start blind.
func (s *Service) Subscribe() <-chan View {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan View, s.viewBuffer)
	ch <- s.current
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// View returns the most recently published view.
func (s *Service) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Loading reports whether the first snapshot is still pending.
func (s *Service) Loading() bool {
	return s.View().Loading
}

// run is the single-threaded event loop: the only goroutine that
// mutates the cache or recomputes projections.
func (s *Service) run(ctx context.Context, snapshots <-chan remote.Snapshot) {
	defer close(s.done)

	ticks := s.tick.Ticks()
	outcomes := s.dispatcher.Outcomes()

	for {
		select {
		case <-ctx.Done():
			return

		case snap, ok := <-snapshots:
			if !ok {
				if ctx.Err() != nil {
					return
				}
				// The live stream died. Freeze the cache at its last
				// state and surface a warning; if this happens before
				// the first snapshot, loading never clears.
				snapshots = nil
				s.subWarn = ErrSubscription.Error()
				metrics.RecordSubscriptionError()
				s.logger.Warn(ctx, "snapshot subscription terminated; cache frozen")
				s.publish("")
				continue
			}
			s.store.ApplySnapshot(remote.DecodeSnapshot(snap))
			s.loading = false
			s.publish("")

		case _, ok := <-ticks:
			if !ok {
				ticks = nil
				continue
			}
			s.publish("")

		case f := <-s.filterCh:
			s.filter = f
			s.publish("")

		case o, ok := <-outcomes:
			if !ok {
				outcomes = nil
				continue
			}
			if o.Err != nil {
				// Recoverable: reported, cache unaffected, user may retry.
				s.publish(o.Err.Error())
			}
		}
	}
}

// publish recomputes the view and fans it out. warning rides on this
// view only; a subscription warning stays until teardown.
func (s *Service) publish(warning string) {
	now := s.clock.Now()
	start := time.Now()
	items := projector.Project(s.store.Snapshot(), s.filter, now)
	metrics.RecordProjectionLatency(float64(time.Since(start).Microseconds()) / 1e3)

	upcoming := 0
	for _, v := range items {
		if v.Countdown.Status == countdown.StatusUpcoming {
			upcoming++
		}
	}
	metrics.UpdateUpcomingEvents(upcoming)
	metrics.UpdateActiveEvents(len(items) - upcoming)

	if warning == "" {
		warning = s.subWarn
	}

	view := View{
		Items:   items,
		Filter:  s.filter,
		Loading: s.loading,
		Warning: warning,
	}

	s.mu.Lock()
	s.current = view
	subs := make([]chan View, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- view:
		default:
			// Drop the oldest pending view; only the latest matters.
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
}

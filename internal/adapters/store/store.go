// Package store owns the authoritative local cache of events.
//
// The cache is mutated by remote snapshot notifications only: create
// and delete are forwarded to the remote store as intents and never
// touch local state, so a failed remote write leaves nothing to roll
// back. The next snapshot is the sole source of truth.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"planner/internal/adapters/mq/queue"
	"planner/internal/domain/model"
	"planner/pkg/metrics"

	"github.com/google/uuid"
)

// Intents is how the store hands mutation requests off for dispatch.
type Intents interface {
	Enqueue(ctx context.Context, in queue.Intent) bool
}

// EventStore holds the cached event collection and forwards mutation
// intents. Snapshot replacement is wholesale; there is no merge logic.
type EventStore struct {
	mu      sync.RWMutex
	byID    map[string]model.Event
	order   []string
	intents Intents
}

// Option applies a configuration option to the EventStore.
type Option func(*EventStore)

// New creates an empty store that dispatches intents to the given queue.
func New(intents Intents, opts ...Option) *EventStore {
	s := &EventStore{
		byID:    make(map[string]model.Event),
		intents: intents,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ApplySnapshot replaces the entire cache with the given events.
// Idempotent; the latest applied snapshot wins. Duplicate ids within a
// snapshot collapse to the last occurrence so the uniqueness invariant
// holds no matter what the remote delivers.
func (s *EventStore) ApplySnapshot(events []model.Event) {
	byID := make(map[string]model.Event, len(events))
	order := make([]string, 0, len(events))
	for _, e := range events {
		if _, seen := byID[e.ID]; !seen {
			order = append(order, e.ID)
		}
		byID[e.ID] = e
	}

	s.mu.Lock()
	s.byID = byID
	s.order = order
	s.mu.Unlock()

	metrics.RecordSnapshotApplied(len(order))
	metrics.UpdateEventsTracked(len(order))
}

// Snapshot returns the current cache contents in insertion order.
// The slice is a copy; callers cannot mutate the cache through it.
func (s *EventStore) Snapshot() []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]model.Event, 0, len(s.order))
	for _, id := range s.order {
		events = append(events, s.byID[id])
	}
	return events
}

// Len returns the number of cached events.
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// RequestCreate validates and normalizes a draft, then enqueues a
// create intent. The event carries a client-generated id that the
// remote store supersedes on persistence. The cache is not touched.
func (s *EventStore) RequestCreate(ctx context.Context, draft model.Draft) error {
	if err := validateDraft(draft); err != nil {
		metrics.RecordValidationError()
		return err
	}

	event := model.Event{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(draft.Title),
		Date:     draft.Date,
		Time:     draft.Time,
		Category: model.ParseCategory(draft.Category),
	}

	if !s.intents.Enqueue(ctx, queue.Intent{Op: queue.OpCreate, Event: event}) {
		return fmt.Errorf("create %q: %w", event.Title, queue.ErrQueueFull)
	}
	metrics.RecordCreateRequest()
	return nil
}

// RequestDelete enqueues a delete intent for id. Non-optimistic: the
// event stays cached until a snapshot without it arrives.
func (s *EventStore) RequestDelete(ctx context.Context, id string) error {
	if !s.intents.Enqueue(ctx, queue.Intent{Op: queue.OpDelete, ID: id}) {
		return fmt.Errorf("delete %q: %w", id, queue.ErrQueueFull)
	}
	metrics.RecordDeleteRequest()
	return nil
}

// validateDraft rejects drafts missing any of title, date, or time.
func validateDraft(d model.Draft) error {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(d.Time) == "" {
		missing = append(missing, "time")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// Package queue defines the contract for dispatching mutation intents.
//
// Create and delete requests are fire-and-forget from the core's point
// of view: they are queued here and forwarded to the remote store by a
// dispatch worker, with outcomes surfacing asynchronously.
package queue

import (
	"context"
	"sync"

	"planner/internal/domain/model"
	"planner/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 256
)

// Op distinguishes the two mutation kinds.
type Op string

// Mutation operations forwarded to the remote store.
const (
	OpCreate Op = "create"
	OpDelete Op = "delete"
)

// Intent is a single pending mutation. Event is set for OpCreate,
// ID for OpDelete.
type Intent struct {
	Op    Op
	Event model.Event
	ID    string
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an intent to the queue.
	// Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, in Intent) bool

	// Dequeue returns a channel delivering intents as they become
	// available. The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Intent

	// Len returns the current number of queued intents.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	intents  chan Intent
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.intents = make(chan Intent, q.capacity)
	metrics.UpdateIntentQueueSize(0)

	return q
}

// Enqueue adds an intent to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, in Intent) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}

	select {
	case q.intents <- in:
		metrics.UpdateIntentQueueSize(len(q.intents))
		return true
	case <-ctx.Done():
		return false
	default:
		return false // queue is full
	}
}

// Dequeue returns a channel delivering intents as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Intent {
	out := make(chan Intent)
	go func() {
		defer close(out)
		for in := range q.intents {
			select {
			case out <- in:
				metrics.UpdateIntentQueueSize(len(q.intents))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued intents.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	return len(q.intents)
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil // already closed
	}

	close(q.intents)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

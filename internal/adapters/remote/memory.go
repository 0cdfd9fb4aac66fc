package remote

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Default in-memory store configuration constants.
const (
	defaultSubscribeBuffer = 16
)

// collectionState holds one collection's documents in insertion order.
type collectionState struct {
	docs  map[string]map[string]any
	order []string
}

// InMemoryStore implements Store with process-local state. It mirrors
// the push semantics of a hosted document store: every mutation fans a
// complete snapshot out to all live subscribers.
type InMemoryStore struct {
	mu          sync.Mutex
	collections map[string]*collectionState
	subscribers map[string]map[int]chan Snapshot
	nextSubID   int
	buffer      int
	failCreate  error
	failDelete  error
	closed      bool
}

// NewInMemoryStore creates an in-memory store with configuration options.
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		collections: make(map[string]*collectionState),
		subscribers: make(map[string]map[int]chan Snapshot),
		buffer:      defaultSubscribeBuffer,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Subscribe registers a snapshot channel for the collection. The current
// snapshot is delivered immediately so subscribers never start blind.
func (s *InMemoryStore) Subscribe(ctx context.Context, collection string) (<-chan Snapshot, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}

	ch := make(chan Snapshot, s.buffer)
	id := s.nextSubID
	s.nextSubID++
	if s.subscribers[collection] == nil {
		s.subscribers[collection] = make(map[int]chan Snapshot)
	}
	s.subscribers[collection][id] = ch
	ch <- s.snapshotLocked(collection)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.unsubscribe(collection, id)
	}()

	return ch, nil
}

// Create persists a new document, assigns a uuid id, and publishes the
// updated snapshot to every subscriber.
func (s *InMemoryStore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrClosed
	}
	if s.failCreate != nil {
		return "", s.failCreate
	}

	state := s.collections[collection]
	if state == nil {
		state = &collectionState{docs: make(map[string]map[string]any)}
		s.collections[collection] = state
	}

	id := uuid.NewString()
	body := make(map[string]any, len(data))
	for k, v := range data {
		body[k] = v
	}
	state.docs[id] = body
	state.order = append(state.order, id)

	s.publishLocked(collection)
	return id, nil
}

// Delete removes a document and publishes the updated snapshot.
func (s *InMemoryStore) Delete(ctx context.Context, collection string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.failDelete != nil {
		return s.failDelete
	}

	state := s.collections[collection]
	if state == nil {
		return ErrNotFound
	}
	if _, ok := state.docs[id]; !ok {
		return ErrNotFound
	}

	delete(state.docs, id)
	for i, existing := range state.order {
		if existing == id {
			state.order = append(state.order[:i], state.order[i+1:]...)
			break
		}
	}

	s.publishLocked(collection)
	return nil
}

// Close tears down the store and closes all subscriber channels.
// Safe to call more than once.
func (s *InMemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for _, subs := range s.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
	s.subscribers = make(map[string]map[int]chan Snapshot)
	return nil
}

// snapshotLocked builds the full snapshot for a collection. Caller holds mu.
func (s *InMemoryStore) snapshotLocked(collection string) Snapshot {
	state := s.collections[collection]
	if state == nil {
		return Snapshot{}
	}

	snap := make(Snapshot, 0, len(state.order))
	for _, id := range state.order {
		body := make(map[string]any, len(state.docs[id]))
		for k, v := range state.docs[id] {
			body[k] = v
		}
		snap = append(snap, Document{ID: id, Data: body})
	}
	return snap
}

// publishLocked fans the current snapshot out to all subscribers.
// A slow subscriber loses its oldest pending snapshot rather than
// blocking the store; only the latest state matters.
func (s *InMemoryStore) publishLocked(collection string) {
	snap := s.snapshotLocked(collection)
	for _, ch := range s.subscribers[collection] {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (s *InMemoryStore) unsubscribe(collection string, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if subs := s.subscribers[collection]; subs != nil {
		if ch, ok := subs[id]; ok {
			delete(subs, id)
			close(ch)
		}
	}
}

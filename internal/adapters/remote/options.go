package remote

import "github.com/google/uuid"

// Option applies a configuration option to the InMemoryStore.
type Option func(*InMemoryStore)

// WithSubscribeBuffer sets the per-subscriber snapshot channel buffer.
func WithSubscribeBuffer(size int) Option {
	return func(s *InMemoryStore) {
		if size > 0 {
			s.buffer = size
		}
	}
}

// WithSeed preloads a collection with documents. Ids are assigned the
// same way Create assigns them.
func WithSeed(collection string, docs []map[string]any) Option {
	return func(s *InMemoryStore) {
		state := s.collections[collection]
		if state == nil {
			state = &collectionState{docs: make(map[string]map[string]any)}
			s.collections[collection] = state
		}
		for _, data := range docs {
			id := uuid.NewString()
			body := make(map[string]any, len(data))
			for k, v := range data {
				body[k] = v
			}
			state.docs[id] = body
			state.order = append(state.order, id)
		}
	}
}

// WithCreateFailure makes every Create call fail with err. Used to
// exercise remote-write error paths.
func WithCreateFailure(err error) Option {
	return func(s *InMemoryStore) {
		s.failCreate = err
	}
}

// WithDeleteFailure makes every Delete call fail with err.
func WithDeleteFailure(err error) Option {
	return func(s *InMemoryStore) {
		s.failDelete = err
	}
}

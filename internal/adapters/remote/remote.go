// Package remote defines the boundary to the persistent document store.
//
// The store delivers full-collection snapshots over a push subscription:
// every change produces the complete current set of documents, never a
// diff. Mutations are plain create/delete calls that may fail without
// affecting the subscription.
package remote

import (
	"context"

	"planner/internal/domain/model"
)

// Document is a persisted record: an identifier plus an untyped body.
type Document struct {
	ID   string
	Data map[string]any
}

// Snapshot is the complete current contents of a collection.
type Snapshot []Document

// Store provides subscription and mutation access to a document collection.
type Store interface {
	// Subscribe returns a channel delivering the current snapshot and a
	// fresh one after every subsequent mutation. The channel is closed
	// when the store is closed or ctx is canceled.
	Subscribe(ctx context.Context, collection string) (<-chan Snapshot, error)

	// Create persists a new document and returns its assigned id.
	Create(ctx context.Context, collection string, data map[string]any) (string, error)

	// Delete removes the document with the given id.
	// Returns ErrNotFound if no such document exists.
	Delete(ctx context.Context, collection string, id string) error
}

// DecodeEvent maps a document onto the Event domain model. The document
// id becomes the event id; unknown or missing categories collapse to
// the personal default.
func DecodeEvent(doc Document) model.Event {
	return model.Event{
		ID:       doc.ID,
		Title:    stringField(doc.Data, "title"),
		Date:     stringField(doc.Data, "date"),
		Time:     stringField(doc.Data, "time"),
		Category: model.ParseCategory(stringField(doc.Data, "category")),
	}
}

// DecodeSnapshot decodes every document in a snapshot.
func DecodeSnapshot(snap Snapshot) []model.Event {
	events := make([]model.Event, len(snap))
	for i, doc := range snap {
		events[i] = DecodeEvent(doc)
	}
	return events
}

// EncodeEvent maps an event onto a document body. The id is excluded;
// the store owns identifier assignment.
func EncodeEvent(e model.Event) map[string]any {
	return map[string]any{
		"title":    e.Title,
		"date":     e.Date,
		"time":     e.Time,
		"category": e.Category.String(),
	}
}

func stringField(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	s, _ := data[key].(string)
	return s
}

// Package gateway is the boundary over the document database, blob storage and
// the signed-in identity. Implementations live in internal/repos.
package gateway

import (
	"context"
	"time"
)

// Fields is the native shape of a document body. Values decode the way
// encoding/json decodes them: float64, string, bool, []any, map[string]any.
type Fields map[string]any

// Document is one stored record as returned by the gateway.
type Document struct {
	ID        string
	Fields    Fields
	CreatedAt time.Time
}

// Query selects documents from one collection by a single equality filter.
type Query struct {
	Collection string
	Field      string
	Value      any
	OrderBy    string
	Descending bool
}

// Snapshot is one complete result set. It replaces any earlier snapshot.
type Snapshot struct {
	Documents []Document
	Err       error
}

// Subscription is a live query. Cancel stops delivery and is safe to call twice.
type Subscription interface {
	Cancel()
}

type Gateway interface {
	// CreateDocument stores fields under a new server-assigned id and stamps createdAt.
	CreateDocument(ctx context.Context, collection string, fields Fields) (string, error)
	// DeleteDocument removes a document. Deleting an absent id succeeds.
	DeleteDocument(ctx context.Context, collection, id string) error
	// GetDocument returns domain.ErrNotFound when the id is absent.
	GetDocument(ctx context.Context, collection, id string) (Document, error)
	// MergeDocument writes the given keys only, creating the document if needed.
	MergeDocument(ctx context.Context, collection, id string, fields Fields) error
	// Subscribe delivers an initial snapshot and one after every write to the
	// collection, in order, until the subscription or ctx is cancelled.
	Subscribe(ctx context.Context, q Query, fn func(Snapshot)) (Subscription, error)
	// UploadBlob stores data at path and returns a public URL.
	UploadBlob(ctx context.Context, path string, data []byte) (string, error)
}

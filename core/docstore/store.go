package docstore

import "context"

// Store is the read-only document and queue lookup the engine consumes.
type Store interface {
	// GetDocument returns the document with the given id, or a typed
	// NotFound error if no such document exists.
	GetDocument(ctx context.Context, id string) (*Document, error)

	// GetQueue returns the queue with the given id, or a typed NotFound
	// error if no such queue exists.
	GetQueue(ctx context.Context, id string) (*Queue, error)

	// QueueMembers returns the ordered document ids of a queue, or a typed
	// NotFound error if no such queue exists.
	QueueMembers(ctx context.Context, queueID string) ([]string, error)
}

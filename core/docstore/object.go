package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/minio/minio-go/v7"

	apperrors "recon-engine/core/errors"
	"recon-engine/core/storage"
)

// Object key layout inside the bucket.
const (
	documentPrefix = "documents/"
	queuePrefix    = "queues/"
	objectSuffix   = ".json"
)

// Object is a Store reading documents and queue manifests as JSON objects
// from a bucket. Upstream ingestion writes one object per document under
// documents/<id>.json and one manifest per queue under queues/<id>.json.
type Object struct {
	client storage.Client
	bucket string
}

// NewObject creates an object-storage-backed store.
func NewObject(client storage.Client, bucket string) *Object {
	return &Object{client: client, bucket: bucket}
}

// GetDocument implements Store.
func (s *Object) GetDocument(ctx context.Context, id string) (*Document, error) {
	var doc Document
	if err := s.readJSON(ctx, documentPrefix+id+objectSuffix, &doc, "document", id); err != nil {
		return nil, err
	}
	if doc.ID == "" {
		doc.ID = id
	}
	return &doc, nil
}

// GetQueue implements Store.
func (s *Object) GetQueue(ctx context.Context, id string) (*Queue, error) {
	var queue Queue
	if err := s.readJSON(ctx, queuePrefix+id+objectSuffix, &queue, "queue", id); err != nil {
		return nil, err
	}
	if queue.ID == "" {
		queue.ID = id
	}
	return &queue, nil
}

// QueueMembers implements Store.
func (s *Object) QueueMembers(ctx context.Context, queueID string) ([]string, error) {
	queue, err := s.GetQueue(ctx, queueID)
	if err != nil {
		return nil, err
	}
	return queue.DocumentIDs, nil
}

// readJSON fetches and decodes one object, translating a missing key into
// the engine's typed NotFound error.
func (s *Object) readJSON(ctx context.Context, objectName string, out any, resource, id string) error {
	reader, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return apperrors.NewNotFoundError(resource, id)
		}
		return fmt.Errorf("failed to fetch %s: %w", objectName, err)
	}
	defer reader.Close()

	if err := json.NewDecoder(reader).Decode(out); err != nil {
		// Minio reports missing objects lazily, on first read.
		if isNoSuchKey(err) {
			return apperrors.NewNotFoundError(resource, id)
		}
		return fmt.Errorf("failed to decode %s: %w", objectName, err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

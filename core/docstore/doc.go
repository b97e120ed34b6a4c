// Package docstore provides read access to business documents and queues.
//
// The reconciliation engine never owns document content; it references
// documents by id and queues by id through the Store interface. Ingestion
// and mutation of documents happen upstream, outside this service.
//
// # Implementations
//
//   - Memory: map-backed store for tests, fixtures, and the validate command.
//   - DB: gorm/MySQL-backed store (documents with JSON payloads, queue
//     membership tables).
//   - Object: object-storage-backed store reading JSON documents and queue
//     manifests from a bucket.
//   - Cached: TTL + singleflight read-through wrapper for any Store.
//
// All lookups return a typed NotFound error for unknown ids; an absent field
// inside a document is not an error (see core/fieldpath).
package docstore

package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	apperrors "recon-engine/core/errors"
)

// Memory is a map-backed Store for tests, fixtures, and offline rule
// validation. Safe for concurrent readers and writers.
type Memory struct {
	mu     sync.RWMutex
	docs   map[string]*Document
	queues map[string]*Queue
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		docs:   make(map[string]*Document),
		queues: make(map[string]*Queue),
	}
}

// AddDocument registers a document. Later adds with the same id overwrite.
func (m *Memory) AddDocument(doc *Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = doc
}

// AddQueue registers a queue. Later adds with the same id overwrite.
func (m *Memory) AddQueue(queue *Queue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queues[queue.ID] = queue
}

// GetDocument implements Store.
func (m *Memory) GetDocument(ctx context.Context, id string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("document", id)
	}
	return doc, nil
}

// GetQueue implements Store.
func (m *Memory) GetQueue(ctx context.Context, id string) (*Queue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	queue, ok := m.queues[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("queue", id)
	}
	return queue, nil
}

// QueueMembers implements Store.
func (m *Memory) QueueMembers(ctx context.Context, queueID string) ([]string, error) {
	queue, err := m.GetQueue(ctx, queueID)
	if err != nil {
		return nil, err
	}
	members := make([]string, len(queue.DocumentIDs))
	copy(members, queue.DocumentIDs)
	return members, nil
}

// fixture is the JSON layout accepted by LoadFixture.
type fixture struct {
	Documents []json.RawMessage `json:"documents"`
	Queues    []*Queue          `json:"queues"`
}

// LoadFixture populates the store from a JSON fixture of the form
// {"documents": [...], "queues": [...]}, where each document is a flat
// record carrying its own id and type.
func (m *Memory) LoadFixture(r io.Reader) error {
	var f fixture
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return fmt.Errorf("failed to decode fixture: %w", err)
	}

	for _, raw := range f.Documents {
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("failed to decode fixture document: %w", err)
		}
		if doc.ID == "" {
			return fmt.Errorf("fixture document missing id")
		}
		if !doc.Type.IsValid() {
			return fmt.Errorf("fixture document %s has invalid type %q", doc.ID, doc.Type)
		}
		m.AddDocument(&doc)
	}

	for _, queue := range f.Queues {
		if queue.ID == "" {
			return fmt.Errorf("fixture queue missing id")
		}
		if !queue.DocType.IsValid() {
			return fmt.Errorf("fixture queue %s has invalid doc type %q", queue.ID, queue.DocType)
		}
		m.AddQueue(queue)
	}

	return nil
}

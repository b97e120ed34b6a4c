package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "recon-engine/core/errors"
)

// documentRecord is the gorm model for ingested documents. The business
// fields live in a JSON payload column; only id and type are promoted to
// columns for lookup and validation.
type documentRecord struct {
	ID      string `gorm:"column:id;primaryKey;size:64"`
	DocType string `gorm:"column:doc_type;size:8;index"`
	Payload []byte `gorm:"column:payload;type:json"`
}

// TableName overrides the gorm default.
func (documentRecord) TableName() string {
	return "documents"
}

// queueRecord is the gorm model for document queues.
type queueRecord struct {
	ID      string `gorm:"column:id;primaryKey;size:64"`
	Name    string `gorm:"column:name;size:255"`
	DocType string `gorm:"column:doc_type;size:8"`
}

// TableName overrides the gorm default.
func (queueRecord) TableName() string {
	return "queues"
}

// queueMemberRecord maps a queue to one of its documents. Position preserves
// the queue's ingestion order, which the engine relies on for deterministic
// candidate pools.
type queueMemberRecord struct {
	QueueID    string `gorm:"column:queue_id;primaryKey;size:64"`
	DocumentID string `gorm:"column:document_id;primaryKey;size:64"`
	Position   int    `gorm:"column:position"`
}

// TableName overrides the gorm default.
func (queueMemberRecord) TableName() string {
	return "queue_members"
}

// DB is a Store reading documents and queues from a relational database.
type DB struct {
	db *gorm.DB
}

// NewDB creates a database-backed store.
func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

// Migrate creates or updates the backing tables.
func (s *DB) Migrate() error {
	return s.db.AutoMigrate(&documentRecord{}, &queueRecord{}, &queueMemberRecord{})
}

// GetDocument implements Store.
func (s *DB) GetDocument(ctx context.Context, id string) (*Document, error) {
	var record documentRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("document", id)
		}
		return nil, fmt.Errorf("failed to load document %s: %w", id, err)
	}

	var fields map[string]any
	if len(record.Payload) > 0 {
		if err := json.Unmarshal(record.Payload, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode document %s payload: %w", id, err)
		}
	}
	if fields == nil {
		fields = map[string]any{}
	}
	// id/type columns win over any stale copies inside the payload.
	delete(fields, "id")
	delete(fields, "type")

	return &Document{ID: record.ID, Type: DocType(record.DocType), Fields: fields}, nil
}

// GetQueue implements Store.
func (s *DB) GetQueue(ctx context.Context, id string) (*Queue, error) {
	var record queueRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("queue", id)
		}
		return nil, fmt.Errorf("failed to load queue %s: %w", id, err)
	}

	members, err := s.QueueMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Queue{
		ID:          record.ID,
		Name:        record.Name,
		DocType:     DocType(record.DocType),
		DocumentIDs: members,
	}, nil
}

// QueueMembers implements Store.
func (s *DB) QueueMembers(ctx context.Context, queueID string) ([]string, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&queueRecord{}).Where("id = ?", queueID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check queue %s: %w", queueID, err)
	}
	if count == 0 {
		return nil, apperrors.NewNotFoundError("queue", queueID)
	}

	var members []queueMemberRecord
	if err := s.db.WithContext(ctx).
		Where("queue_id = ?", queueID).
		Order("position ASC").
		Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to load members of queue %s: %w", queueID, err)
	}

	ids := make([]string, 0, len(members))
	for _, member := range members {
		ids = append(ids, member.DocumentID)
	}
	return ids, nil
}

package docstore

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	apperrors "recon-engine/core/errors"
)

func setupMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return NewDB(gormDB), mock
}

func TestDB_GetDocument(t *testing.T) {
	store, mock := setupMockDB(t)

	payload := `{"poNumber": "PO123", "totalAmount": 1234, "id": "stale", "type": "stale"}`
	rows := sqlmock.NewRows([]string{"id", "doc_type", "payload"}).
		AddRow("po-1", "PO", []byte(payload))
	mock.ExpectQuery("SELECT \\* FROM `documents` WHERE id = \\?").
		WithArgs("po-1", 1).
		WillReturnRows(rows)

	doc, err := store.GetDocument(context.Background(), "po-1")
	require.NoError(t, err)
	assert.Equal(t, "po-1", doc.ID)
	assert.Equal(t, DocTypePO, doc.Type)
	assert.Equal(t, "PO123", doc.Fields["poNumber"])
	assert.Equal(t, float64(1234), doc.Fields["totalAmount"])
	// Column values win over stale envelope keys in the payload.
	assert.NotContains(t, doc.Fields, "id")
	assert.NotContains(t, doc.Fields, "type")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_GetDocumentNotFound(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `documents` WHERE id = \\?").
		WithArgs("nope", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doc_type", "payload"}))

	_, err := store.GetDocument(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_GetDocumentBadPayload(t *testing.T) {
	store, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "doc_type", "payload"}).
		AddRow("po-1", "PO", []byte("{not json"))
	mock.ExpectQuery("SELECT \\* FROM `documents` WHERE id = \\?").
		WithArgs("po-1", 1).
		WillReturnRows(rows)

	_, err := store.GetDocument(context.Background(), "po-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDB_GetQueue(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `queues` WHERE id = \\?").
		WithArgs("q-po", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "doc_type"}).
			AddRow("q-po", "PO Queue", "PO"))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `queues` WHERE id = \\?").
		WithArgs("q-po").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT \\* FROM `queue_members` WHERE queue_id = \\? ORDER BY position ASC").
		WithArgs("q-po").
		WillReturnRows(sqlmock.NewRows([]string{"queue_id", "document_id", "position"}).
			AddRow("q-po", "po-1", 0).
			AddRow("q-po", "po-2", 1))

	queue, err := store.GetQueue(context.Background(), "q-po")
	require.NoError(t, err)
	assert.Equal(t, "PO Queue", queue.Name)
	assert.Equal(t, DocTypePO, queue.DocType)
	assert.Equal(t, []string{"po-1", "po-2"}, queue.DocumentIDs)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_QueueMembersUnknownQueue(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `queues` WHERE id = \\?").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := store.QueueMembers(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_QueueMembersEmptyQueue(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `queues` WHERE id = \\?").
		WithArgs("q-empty").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT \\* FROM `queue_members` WHERE queue_id = \\? ORDER BY position ASC").
		WithArgs("q-empty").
		WillReturnRows(sqlmock.NewRows([]string{"queue_id", "document_id", "position"}))

	members, err := store.QueueMembers(context.Background(), "q-empty")
	require.NoError(t, err)
	assert.Empty(t, members)
}

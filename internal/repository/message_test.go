package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestMessageRepository_GetBetween(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "sender_id", "recipient_id", "text", "read"}).
		AddRow(1, "user_1", "user_2", "hey", true).
		AddRow(2, "user_2", "user_1", "hi back", false)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "messages" WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $3 AND recipient_id = $4) ORDER BY created_at ASC`)).
		WithArgs("user_1", "user_2", "user_2", "user_1").
		WillReturnRows(rows)

	messages, err := repo.GetBetween(ctx, "user_1", "user_2")
	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, "hey", messages[0].Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_GetAllForUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "sender_id", "recipient_id", "text"}).
		AddRow(1, "user_1", "user_2", "to bob").
		AddRow(2, "user_3", "user_1", "from carol")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "messages" WHERE sender_id = $1 OR recipient_id = $2 ORDER BY created_at ASC`)).
		WithArgs("user_1", "user_1").
		WillReturnRows(rows)

	messages, err := repo.GetAllForUser(ctx, "user_1")
	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_MarkConversationRead(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "messages" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := repo.MarkConversationRead(ctx, "user_1", "user_2")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_UnreadCount(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "messages" WHERE recipient_id = $1 AND read = false`)).
		WithArgs("user_1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.UnreadCount(ctx, "user_1")
	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
